package itinerary

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tourplan/internal/ai"
)

func TestDocument_RoundTripThroughExtractor(t *testing.T) {
	original := FallbackDocument()
	b, err := json.MarshalIndent(envelope{Itinerary: original}, "", "  ")
	require.NoError(t, err)

	text := "Here is the optimised plan for your stay.\n```json\n" + string(b) + "\n```\nHave a great trip!"
	got, err := extractDocument(&ai.CompletionResult{Segments: []ai.Segment{ai.TextSegment(text)}})
	require.NoError(t, err)
	assert.Equal(t, original, got)
}

func TestDocument_DaysSortedNumerically(t *testing.T) {
	raw := `{"day10": {}, "day2": {"morning": {"experienceId": 5}}, "day1": null, "summary": "ignored", "day01": {}}`

	var doc ItineraryDocument
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))

	require.Len(t, doc.Days, 3)
	assert.Equal(t, []int{1, 2, 10}, []int{doc.Days[0].Index, doc.Days[1].Index, doc.Days[2].Index})
	assert.Equal(t, NumericID(5), doc.Days[1].Morning.ExperienceID)
	assert.Nil(t, doc.Days[0].Morning)
}

func TestDocument_MarshalKeepsDayOrder(t *testing.T) {
	doc := ItineraryDocument{Days: []DaySlots{
		{Index: 1, Morning: &PlannedSlot{TimeSlot: "09:00"}},
		{Index: 2},
		{Index: 10},
	}}
	b, err := json.Marshal(doc)
	require.NoError(t, err)

	s := string(b)
	assert.Less(t, strings.Index(s, `"day1"`), strings.Index(s, `"day2"`))
	assert.Less(t, strings.Index(s, `"day2"`), strings.Index(s, `"day10"`))
	assert.Contains(t, s, `"optimizationNotes"`)
}

func TestDocument_LooseFieldTypes(t *testing.T) {
	raw := `{"itinerary": {"day1": {"morning": {
		"timeSlot": "9AM", "experienceId": "3909", "vendorId": 17, "tourId": null, "variantId": 12.0
	}}}}`

	doc, err := decodeDocument(raw)
	require.NoError(t, err)
	slot := doc.Days[0].Morning
	assert.Equal(t, NumericID(3909), slot.ExperienceID)
	assert.Equal(t, LooseString("17"), slot.VendorID)
	assert.Equal(t, NumericID(0), slot.TourID)
	assert.Equal(t, NumericID(12), slot.VariantID)

	tests := []struct {
		name  string
		raw   string
		check func(t *testing.T, day DaySlots)
	}{
		{
			name: "numeric duration",
			raw:  `{"day1": {"morning": {"experienceId": 7, "duration": 3, "timeSlot": 9}}}`,
			check: func(t *testing.T, day DaySlots) {
				assert.Equal(t, "3", day.Morning.Duration)
				assert.Equal(t, "9", day.Morning.TimeSlot)
				assert.Equal(t, NumericID(7), day.Morning.ExperienceID)
			},
		},
		{
			name: "non numeric experience id is free time",
			raw:  `{"day1": {"afternoon": {"experienceId": "N/A", "tourId": {"id": 4}, "variantId": [1]}}}`,
			check: func(t *testing.T, day DaySlots) {
				require.NotNil(t, day.Afternoon)
				assert.True(t, day.Afternoon.IsFree())
				assert.Equal(t, NumericID(0), day.Afternoon.TourID)
				assert.Equal(t, NumericID(0), day.Afternoon.VariantID)
			},
		},
		{
			name: "array and object text fields are dropped",
			raw:  `{"day1": {"morning": {"experienceId": 7, "notes": ["a"], "location": {"city": "Paris"}, "variantName": true}}}`,
			check: func(t *testing.T, day DaySlots) {
				assert.Equal(t, "", day.Morning.Notes)
				assert.Equal(t, "", day.Morning.Location)
				assert.Equal(t, "true", day.Morning.VariantName)
			},
		},
		{
			name: "slot that is not an object is absent",
			raw:  `{"day1": {"morning": {"experienceId": 7}, "evening": "Free time", "afternoon": 0}}`,
			check: func(t *testing.T, day DaySlots) {
				assert.NotNil(t, day.Morning)
				assert.Nil(t, day.Afternoon)
				assert.Nil(t, day.Evening)
			},
		},
		{
			name: "day that is not an object has no slots",
			raw:  `{"day1": "rest day"}`,
			check: func(t *testing.T, day DaySlots) {
				assert.Equal(t, DaySlots{Index: 1}, day)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := decodeDocument(tt.raw)
			require.NoError(t, err)
			require.Len(t, doc.Days, 1)
			tt.check(t, doc.Days[0])
		})
	}
}

func TestDocument_NonObjectItineraryIsEmpty(t *testing.T) {
	doc, err := decodeDocument(`{"itinerary": "coming soon"}`)
	require.NoError(t, err)
	assert.Empty(t, doc.Days)

	_, err = decodeDocument(`{"itinerary": {"day1": }`)
	assert.Error(t, err)
}

func TestDocument_BareDocumentWithoutEnvelope(t *testing.T) {
	doc, err := decodeDocument(`{"day1": {"evening": {"experienceId": 0}}}`)
	require.NoError(t, err)
	require.Len(t, doc.Days, 1)
	assert.True(t, doc.Days[0].Evening.IsFree())
}

func TestDocument_ExperienceIDs(t *testing.T) {
	doc := FallbackDocument()
	doc.Days[1].Evening = &PlannedSlot{ExperienceID: 3909}
	assert.Equal(t, []int64{3909, 6235, 23604, 8008, 8006}, doc.ExperienceIDs())

	var nilDoc *ItineraryDocument
	assert.Nil(t, nilDoc.ExperienceIDs())
}

func TestFallbackDocument_IsFreshCopy(t *testing.T) {
	a := FallbackDocument()
	a.Days[0].Morning.TimeSlot = "changed"
	assert.Equal(t, "09:00-12:00", FallbackDocument().Days[0].Morning.TimeSlot)
	assert.True(t, FallbackDocument().Days[1].Evening.IsFree())
}
