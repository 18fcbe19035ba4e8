package ai

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrMalformedDocument is returned when no JSON object can be isolated from model output
// or the isolated span does not parse.
var ErrMalformedDocument = errors.New("malformed document")

var fencePattern = regexp.MustCompile("(?s)```[A-Za-z0-9_-]*\\s*(.*?)\\s*```")

// ExtractJSON finds the first text segment holding a JSON object, salvages the object and
// decodes it into v. It returns the salvaged JSON text.
func ExtractJSON(segments []Segment, v any) (string, error) {
	for _, s := range segments {
		if s.Kind != SegmentText || !strings.Contains(s.Text, "{") || !strings.Contains(s.Text, "}") {
			continue
		}
		raw, err := SalvageJSON(s.Text)
		if err != nil {
			return "", err
		}
		if err := json.Unmarshal([]byte(raw), v); err != nil {
			return raw, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
		}
		return raw, nil
	}
	return "", fmt.Errorf("%w: no text segment contains a JSON object", ErrMalformedDocument)
}

// SalvageJSON isolates the JSON object embedded in text, tolerating code fences and
// surrounding prose. The returned span is valid JSON.
func SalvageJSON(text string) (string, error) {
	body := stripFence(text)
	first := strings.IndexByte(body, '{')
	last := strings.LastIndexByte(body, '}')
	if first < 0 || last < first {
		return "", fmt.Errorf("%w: no braces found", ErrMalformedDocument)
	}
	span := strings.TrimSpace(body[first : last+1])
	if !json.Valid([]byte(span)) {
		return "", fmt.Errorf("%w: isolated span is not valid JSON", ErrMalformedDocument)
	}
	return span, nil
}

// stripFence returns the body of the first fenced block that holds an object, or the
// trimmed text without a leading/trailing fence marker.
func stripFence(text string) string {
	if m := fencePattern.FindStringSubmatch(text); m != nil && strings.Contains(m[1], "{") {
		return m[1]
	}
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```") {
		if nl := strings.IndexByte(text, '\n'); nl >= 0 {
			text = text[nl+1:]
		} else {
			text = strings.TrimLeft(text, "`")
		}
	}
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}
