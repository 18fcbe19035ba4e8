package service

import (
	"tourplan/internal/maps"
	"tourplan/internal/modules/itinerary"
	"tourplan/internal/modules/pricing"
)

// Plan is the rendered itinerary of a session.
type Plan struct {
	SessionID       string                      `json:"sessionId"`
	Fallback        bool                        `json:"fallback"`
	CatalogResolved bool                        `json:"catalogResolved"`
	Days            []DayPlan                   `json:"days"`
	Notes           itinerary.OptimizationNotes `json:"optimizationNotes"`
	Cost            pricing.TripCostSummary     `json:"cost"`
}

type DayPlan struct {
	Index   int        `json:"index"`
	Date    string     `json:"date"`
	Weekday string     `json:"weekday"`
	Slots   []SlotView `json:"slots"`
	Legs    []maps.Leg `json:"legs,omitempty"`
}

// SlotView is one period of a day. Free periods carry only the period and label.
type SlotView struct {
	Period itinerary.Period       `json:"period"`
	Label  string                 `json:"label"`
	Booked bool                   `json:"booked"`
	Name   string                 `json:"name,omitempty"`
	Image  string                 `json:"image,omitempty"`
	Slot   *itinerary.PlannedSlot `json:"slot,omitempty"`
	Quote  *pricing.Quote         `json:"quote,omitempty"`
}
