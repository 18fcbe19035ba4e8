package ai

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSalvageJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "bare object", in: `{"a":1}`, want: `{"a":1}`},
		{name: "json fence", in: "```json\n{\"a\":1}\n```", want: `{"a":1}`},
		{name: "untagged fence", in: "```\n{\"a\":1}\n```", want: `{"a":1}`},
		{name: "prose around fence", in: "Here is your plan:\n```json\n{\"a\":{\"b\":2}}\n```\nEnjoy!", want: `{"a":{"b":2}}`},
		{name: "prose without fence", in: "Sure! {\"a\":[1,2]} Hope that helps.", want: `{"a":[1,2]}`},
		{name: "unterminated fence", in: "```json\n{\"a\":1}", want: `{"a":1}`},
		{name: "whitespace padded", in: "   \n\t{ \"a\": 1 }\n  ", want: `{ "a": 1 }`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SalvageJSON(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSalvageJSON_Malformed(t *testing.T) {
	for _, in := range []string{"no json here", "} backwards {", `{"a": }`, ""} {
		_, err := SalvageJSON(in)
		assert.ErrorIs(t, err, ErrMalformedDocument, "input %q", in)
	}
}

func TestExtractJSON_UsesFirstSegmentWithObject(t *testing.T) {
	segments := []Segment{
		ToolUseSegment("search_experiences"),
		TextSegment("Let me look that up."),
		ToolResultSegment("toolu_01"),
		TextSegment("```json\n{\"name\":\"first\"}\n```"),
		TextSegment(`{"name":"second"}`),
	}

	var got struct {
		Name string `json:"name"`
	}
	raw, err := ExtractJSON(segments, &got)
	require.NoError(t, err)
	assert.Equal(t, `{"name":"first"}`, raw)
	assert.Equal(t, "first", got.Name)
}

func TestExtractJSON_NoObject(t *testing.T) {
	var v map[string]any
	_, err := ExtractJSON([]Segment{TextSegment("no json here")}, &v)
	require.ErrorIs(t, err, ErrMalformedDocument)
	assert.Nil(t, v)
}

func TestExtractJSON_RoundTrip(t *testing.T) {
	original := map[string]any{
		"itinerary": map[string]any{
			"day1": map[string]any{
				"morning": map[string]any{"timeSlot": "09:00-12:00", "experienceId": float64(3909)},
			},
			"optimizationNotes": map[string]any{"logistics": "Walk between museums."},
		},
	}
	b, err := json.MarshalIndent(original, "", "  ")
	require.NoError(t, err)
	text := "I've planned your trip below.\n```json\n" + string(b) + "\n```\nLet me know if you want changes."

	var got map[string]any
	_, err = ExtractJSON([]Segment{TextSegment(text)}, &got)
	require.NoError(t, err)
	assert.Equal(t, original, got)
}
