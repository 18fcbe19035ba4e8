package ai

import (
	"fmt"
	"strings"
)

// FormatContinuation rebuilds an assistant turn from completion segments so a paused
// response can be resent. Tool payloads are reduced to short markers.
func FormatContinuation(segments []Segment) string {
	parts := make([]string, 0, len(segments))
	for _, s := range segments {
		parts = append(parts, formatSegment(s))
	}
	return strings.Join(parts, " ")
}

func formatSegment(s Segment) string {
	switch s.Kind {
	case SegmentText:
		return s.Text
	case SegmentToolUse:
		return fmt.Sprintf("[Tool: %s]", s.ToolName)
	case SegmentToolResult:
		return fmt.Sprintf("[Tool Result: %s]", s.ToolUseID)
	case SegmentUnknown:
		return fmt.Sprintf("[%s]", s.Type)
	default:
		panic(fmt.Sprintf("ai: unhandled segment kind %d", s.Kind))
	}
}
