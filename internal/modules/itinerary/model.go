// README: Itinerary domain types (trip request, ordered days, planned slots) and validation.
package itinerary

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"tourplan/internal/types"
)

var (
	ErrBadRequest       = errors.New("bad request")
	ErrNoAttractions    = errors.New("at least one attraction is required")
	ErrNoAdults         = errors.New("at least one adult is required")
	ErrInvalidTravelers = errors.New("traveler counts must not be negative")
	ErrInvalidDateRange = errors.New("end date must be after start date")
)

// Travelers is the group composition for a trip.
type Travelers struct {
	Adults   int `json:"adults"`
	Children int `json:"children"`
	Infants  int `json:"infants"`
	Seniors  int `json:"seniors"`
}

// Total is the head count used for pricing.
func (t Travelers) Total() int {
	return t.Adults + t.Children + t.Infants + t.Seniors
}

// TripRequest is the user's input for one planning session.
type TripRequest struct {
	Attractions []string   `json:"attractions"`
	StartDate   types.Date `json:"startDate"`
	EndDate     types.Date `json:"endDate"`
	Travelers   Travelers  `json:"travelers"`
}

// Validate normalizes attraction names and checks the request invariants. Returned errors
// wrap ErrBadRequest.
func (r *TripRequest) Validate() error {
	attractions := r.Attractions[:0:0]
	for _, a := range r.Attractions {
		if a = strings.TrimSpace(a); a != "" {
			attractions = append(attractions, a)
		}
	}
	r.Attractions = attractions

	switch {
	case len(r.Attractions) == 0:
		return fmt.Errorf("%w: %w", ErrBadRequest, ErrNoAttractions)
	case r.Travelers.Adults < 0 || r.Travelers.Children < 0 || r.Travelers.Infants < 0 || r.Travelers.Seniors < 0:
		return fmt.Errorf("%w: %w", ErrBadRequest, ErrInvalidTravelers)
	case r.Travelers.Adults < 1:
		return fmt.Errorf("%w: %w", ErrBadRequest, ErrNoAdults)
	case r.StartDate.IsZero() || r.EndDate.IsZero() || !r.EndDate.After(r.StartDate.Time):
		return fmt.Errorf("%w: %w", ErrBadRequest, ErrInvalidDateRange)
	}
	return nil
}

// DayCount is the trip length in whole days, rounded up.
func (r TripRequest) DayCount() int {
	d := r.EndDate.Sub(r.StartDate.Time)
	if d <= 0 {
		return 0
	}
	return int(math.Ceil(d.Hours() / 24))
}

// Period names one of the three slots of a day.
type Period string

const (
	Morning   Period = "morning"
	Afternoon Period = "afternoon"
	Evening   Period = "evening"
)

// Periods lists the slots of a day in display order.
var Periods = []Period{Morning, Afternoon, Evening}

// Label is the display name of the period.
func (p Period) Label() string {
	switch p {
	case Morning:
		return "Morning"
	case Afternoon:
		return "Afternoon"
	case Evening:
		return "Evening"
	}
	return string(p)
}

// PlannedSlot is one scheduled experience. ExperienceID <= 0 means free time.
type PlannedSlot struct {
	TimeSlot      string      `json:"timeSlot"`
	ExperienceID  NumericID   `json:"experienceId"`
	VendorID      LooseString `json:"vendorId"`
	TourID        NumericID   `json:"tourId"`
	VariantID     NumericID   `json:"variantId"`
	TourGroupName string      `json:"tourGroupName"`
	VariantName   string      `json:"variantName"`
	Duration      string      `json:"duration"`
	Location      string      `json:"location"`
	Notes         string      `json:"notes"`
}

// IsFree reports whether the slot carries no booking.
func (s *PlannedSlot) IsFree() bool {
	return s == nil || s.ExperienceID <= 0
}

// DaySlots holds the optional slots of one day. Index starts at 1.
type DaySlots struct {
	Index     int          `json:"index"`
	Morning   *PlannedSlot `json:"morning,omitempty"`
	Afternoon *PlannedSlot `json:"afternoon,omitempty"`
	Evening   *PlannedSlot `json:"evening,omitempty"`
}

// Slot returns the slot for p, or nil when the day leaves it empty.
func (d DaySlots) Slot(p Period) *PlannedSlot {
	switch p {
	case Morning:
		return d.Morning
	case Afternoon:
		return d.Afternoon
	case Evening:
		return d.Evening
	}
	return nil
}

// OptimizationNotes are advisory remarks from the planner. They are never authoritative.
type OptimizationNotes struct {
	CrowdAvoidance    string `json:"crowdAvoidance"`
	Logistics         string `json:"logistics"`
	ValueOptimization string `json:"valueOptimization"`
	ExperienceVariety string `json:"experienceVariety"`
}

// ItineraryDocument is the generated plan. Days are kept in ascending Index order.
type ItineraryDocument struct {
	Days  []DaySlots
	Notes OptimizationNotes
}

// ExperienceIDs returns the distinct booked experience ids in day and period order.
func (d *ItineraryDocument) ExperienceIDs() []int64 {
	if d == nil {
		return nil
	}
	seen := make(map[int64]struct{})
	var ids []int64
	for _, day := range d.Days {
		for _, p := range Periods {
			slot := day.Slot(p)
			if slot.IsFree() {
				continue
			}
			id := int64(slot.ExperienceID)
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	return ids
}

// Result is the outcome of one itinerary generation.
type Result struct {
	Success   bool               `json:"success"`
	Itinerary *ItineraryDocument `json:"itinerary"`
	RawText   string             `json:"rawText"`
	Fallback  bool               `json:"fallback"`
	Error     string             `json:"error,omitempty"`
	Attempts  int                `json:"attempts"`
	// GeneratedAt is set by the orchestrator when the result is produced.
	GeneratedAt time.Time `json:"generatedAt"`
}
