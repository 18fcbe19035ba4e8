package itinerary

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

const notesKey = "optimizationNotes"

var dayKeyPattern = regexp.MustCompile(`^day([1-9][0-9]*)$`)

// NumericID decodes ids the model may emit as numbers, numeric strings or null. Anything
// else decodes as 0, which reads as free time.
type NumericID int64

func (id *NumericID) UnmarshalJSON(b []byte) error {
	*id = 0
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return nil
	}
	switch x := v.(type) {
	case float64:
		*id = NumericID(x)
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(x), 64); err == nil {
			*id = NumericID(f)
		}
	}
	return nil
}

// LooseString decodes any JSON scalar as text. Null, arrays and objects decode as "".
type LooseString string

func (ls *LooseString) UnmarshalJSON(b []byte) error {
	*ls = ""
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil
	}
	switch x := v.(type) {
	case string:
		*ls = LooseString(x)
	case json.Number:
		*ls = LooseString(x.String())
	case bool:
		*ls = LooseString(strconv.FormatBool(x))
	}
	return nil
}

// slotWire mirrors PlannedSlot with every field tolerant of the wrong JSON type.
type slotWire struct {
	TimeSlot      LooseString `json:"timeSlot"`
	ExperienceID  NumericID   `json:"experienceId"`
	VendorID      LooseString `json:"vendorId"`
	TourID        NumericID   `json:"tourId"`
	VariantID     NumericID   `json:"variantId"`
	TourGroupName LooseString `json:"tourGroupName"`
	VariantName   LooseString `json:"variantName"`
	Duration      LooseString `json:"duration"`
	Location      LooseString `json:"location"`
	Notes         LooseString `json:"notes"`
}

func (s *PlannedSlot) UnmarshalJSON(b []byte) error {
	var w slotWire
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	*s = PlannedSlot{
		TimeSlot:      string(w.TimeSlot),
		ExperienceID:  w.ExperienceID,
		VendorID:      w.VendorID,
		TourID:        w.TourID,
		VariantID:     w.VariantID,
		TourGroupName: string(w.TourGroupName),
		VariantName:   string(w.VariantName),
		Duration:      string(w.Duration),
		Location:      string(w.Location),
		Notes:         string(w.Notes),
	}
	return nil
}

type dayWire struct {
	Morning   *PlannedSlot `json:"morning,omitempty"`
	Afternoon *PlannedSlot `json:"afternoon,omitempty"`
	Evening   *PlannedSlot `json:"evening,omitempty"`
}

func isObject(raw json.RawMessage) bool {
	t := bytes.TrimSpace(raw)
	return len(t) > 0 && t[0] == '{'
}

// decodeSlot returns nil for anything that is not a JSON object.
func decodeSlot(raw json.RawMessage) *PlannedSlot {
	if !isObject(raw) {
		return nil
	}
	var slot PlannedSlot
	if err := json.Unmarshal(raw, &slot); err != nil {
		return nil
	}
	return &slot
}

// decodeDay reads the three periods of a day. A day that is not an object has no slots.
func decodeDay(index int, raw json.RawMessage) DaySlots {
	day := DaySlots{Index: index}
	if !isObject(raw) {
		return day
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return day
	}
	day.Morning = decodeSlot(fields[string(Morning)])
	day.Afternoon = decodeSlot(fields[string(Afternoon)])
	day.Evening = decodeSlot(fields[string(Evening)])
	return day
}

// MarshalJSON writes the document as {"day1": {...}, "day2": {...}, "optimizationNotes": {...}}
// with day keys in ascending order.
func (d ItineraryDocument) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for _, day := range d.Days {
		b, err := json.Marshal(dayWire{Morning: day.Morning, Afternoon: day.Afternoon, Evening: day.Evening})
		if err != nil {
			return nil, err
		}
		fmt.Fprintf(&buf, `"day%d":`, day.Index)
		buf.Write(b)
		buf.WriteByte(',')
	}
	notes, err := json.Marshal(d.Notes)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(&buf, "%q:", notesKey)
	buf.Write(notes)
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads dayN keys into Days sorted by N. Keys that are not day keys or the
// notes object are ignored. A value that is not an object decodes as an empty document.
func (d *ItineraryDocument) UnmarshalJSON(b []byte) error {
	if !isObject(b) {
		*d = ItineraryDocument{}
		return nil
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(b, &fields); err != nil {
		return err
	}

	doc := ItineraryDocument{}
	for key, raw := range fields {
		if key == notesKey {
			// Notes are advisory; a malformed notes object is dropped rather than failing the plan.
			_ = json.Unmarshal(raw, &doc.Notes)
			continue
		}
		m := dayKeyPattern.FindStringSubmatch(key)
		if m == nil {
			continue
		}
		idx, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		doc.Days = append(doc.Days, decodeDay(idx, raw))
	}
	sort.Slice(doc.Days, func(i, j int) bool { return doc.Days[i].Index < doc.Days[j].Index })
	*d = doc
	return nil
}

// envelope is the top-level object the model is asked to return.
type envelope struct {
	Itinerary *ItineraryDocument `json:"itinerary"`
}

// decodeDocument accepts either the {"itinerary": {...}} envelope or a bare document.
func decodeDocument(raw string) (*ItineraryDocument, error) {
	var env envelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		return nil, err
	}
	if env.Itinerary != nil {
		return env.Itinerary, nil
	}
	var doc ItineraryDocument
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}
