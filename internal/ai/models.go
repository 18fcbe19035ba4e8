package ai

import "strings"

// Role of a conversation message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one turn of the conversation sent to the completion endpoint.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// MCPServer describes a remote tool server the model may call while generating.
type MCPServer struct {
	Type string `json:"type"`
	URL  string `json:"url"`
	Name string `json:"name"`
}

// CompletionRequest is the provider-neutral request shape.
type CompletionRequest struct {
	Model      string      `json:"model"`
	MaxTokens  int         `json:"max_tokens"`
	Messages   []Message   `json:"messages"`
	MCPServers []MCPServer `json:"mcp_servers,omitempty"`
}

// StopReason is the completion-stop condition reported by the endpoint.
type StopReason string

const (
	StopEndTurn   StopReason = "end_turn"
	StopMaxTokens StopReason = "max_tokens"
	StopPauseTurn StopReason = "pause_turn"
	StopToolUse   StopReason = "tool_use"
	StopRefusal   StopReason = "refusal"
	StopOther     StopReason = "other"
)

// ParseStopReason maps a wire value onto a known StopReason; unknown values become StopOther.
func ParseStopReason(v string) StopReason {
	switch r := StopReason(strings.TrimSpace(v)); r {
	case StopEndTurn, StopMaxTokens, StopPauseTurn, StopToolUse, StopRefusal:
		return r
	default:
		return StopOther
	}
}

// Paused reports whether the endpoint expects the caller to continue the turn.
func (r StopReason) Paused() bool {
	return r == StopPauseTurn
}

// SegmentKind tags the variant held by a Segment.
type SegmentKind int

const (
	SegmentText SegmentKind = iota
	SegmentToolUse
	SegmentToolResult
	// SegmentUnknown carries any content type the client does not model.
	SegmentUnknown
)

// Segment is one content block of a completion. Only the fields of its Kind are set:
// Text for SegmentText, ToolName for SegmentToolUse, ToolUseID for SegmentToolResult,
// Type for SegmentUnknown.
type Segment struct {
	Kind      SegmentKind `json:"kind"`
	Text      string      `json:"text,omitempty"`
	ToolName  string      `json:"toolName,omitempty"`
	ToolUseID string      `json:"toolUseId,omitempty"`
	Type      string      `json:"type,omitempty"`
}

func TextSegment(text string) Segment { return Segment{Kind: SegmentText, Text: text} }

func ToolUseSegment(name string) Segment { return Segment{Kind: SegmentToolUse, ToolName: name} }

func ToolResultSegment(toolUseID string) Segment {
	return Segment{Kind: SegmentToolResult, ToolUseID: toolUseID}
}

func UnknownSegment(typ string) Segment { return Segment{Kind: SegmentUnknown, Type: typ} }

// Usage reports token consumption when the backend provides it.
type Usage struct {
	InputTokens  int `json:"inputTokens"`
	OutputTokens int `json:"outputTokens"`
}

// CompletionResult is produced once per endpoint call and never modified afterwards.
type CompletionResult struct {
	StopReason StopReason `json:"stopReason"`
	Segments   []Segment  `json:"segments"`
	Model      string     `json:"model,omitempty"`
	Usage      Usage      `json:"usage"`
}

// Text concatenates the text segments in order.
func (r *CompletionResult) Text() string {
	if r == nil {
		return ""
	}
	var b strings.Builder
	for _, s := range r.Segments {
		if s.Kind == SegmentText {
			b.WriteString(s.Text)
		}
	}
	return b.String()
}
