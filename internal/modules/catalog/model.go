// README: Catalog domain types (experiences, variants, tours) and the per-tour inventory index.
package catalog

import (
	"errors"
	"time"
)

var (
	ErrNoExperienceIDs       = errors.New("no experience IDs provided")
	ErrNoExperiencesResolved = errors.New("failed to fetch any experiences")
	ErrUnexpectedStatus      = errors.New("unexpected status")
)

// Image is one picture of an experience.
type Image struct {
	URL         string `json:"url"`
	Alt         string `json:"alt,omitempty"`
	Description string `json:"description,omitempty"`
}

// Tour is the schedulable unit inventory is indexed by.
type Tour struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Duration      int64  `json:"duration,omitempty"`
	InventoryType string `json:"inventoryType,omitempty"`
	MinPax        int    `json:"minPax,omitempty"`
	MaxPax        int    `json:"maxPax,omitempty"`
}

// Variant is a bookable configuration of an experience. Its prices are informational;
// authoritative prices come from inventory.
type Variant struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Info          string  `json:"info,omitempty"`
	Price         float64 `json:"price"`
	OriginalPrice float64 `json:"originalPrice"`
	Currency      string  `json:"currency"`
	Tours         []Tour  `json:"tours"`
}

// Entry is a resolved experience with the inventory of its selected variant.
type Entry struct {
	ID              int64          `json:"id"`
	Name            string         `json:"name"`
	Description     string         `json:"description"`
	Currency        string         `json:"currency"`
	CurrencySymbol  string         `json:"currencySymbol,omitempty"`
	City            string         `json:"city,omitempty"`
	Image           string         `json:"image"`
	Images          []Image        `json:"images,omitempty"`
	Variants        []Variant      `json:"variants"`
	SelectedVariant int64          `json:"selectedVariant"`
	Inventory       InventoryIndex `json:"inventory,omitempty"`
	FetchedAt       time.Time      `json:"fetchedAt"`
}

// Variant returns the selected variant, the first one when the selection is unknown, or nil.
func (e *Entry) Variant() *Variant {
	if e == nil || len(e.Variants) == 0 {
		return nil
	}
	for i := range e.Variants {
		if e.Variants[i].ID == e.SelectedVariant {
			return &e.Variants[i]
		}
	}
	return &e.Variants[0]
}

// PersonPrice is the price for one person type within a price profile.
type PersonPrice struct {
	Type                             string  `json:"type"`
	RetailPrice                      float64 `json:"retailPrice"`
	ListingPrice                     float64 `json:"listingPrice"`
	ExtraCharges                     float64 `json:"extraCharges"`
	IsPricingInclusiveOfExtraCharges bool    `json:"isPricingInclusiveOfExtraCharges"`
	Discount                         float64 `json:"discount"`
}

// PriceProfile lists per-person-type prices for a window.
type PriceProfile struct {
	PriceProfileType string        `json:"priceProfileType"`
	Persons          []PersonPrice `json:"persons"`
	People           int           `json:"people"`
}

type PaxAvailability struct {
	Remaining    int      `json:"remaining"`
	Availability string   `json:"availability"`
	PaxTypes     []string `json:"paxTypes"`
}

type PaxValidationRule struct {
	DisplayName string `json:"displayName"`
	Description string `json:"description"`
	MinPax      int    `json:"minPax"`
	MaxPax      int    `json:"maxPax"`
	AgeFrom     int    `json:"ageFrom"`
	AgeTo       *int   `json:"ageTo"`
}

// AvailabilityWindow is one bookable date and time opening.
type AvailabilityWindow struct {
	StartDate       string                       `json:"startDate"`
	StartTime       string                       `json:"startTime"`
	EndTime         string                       `json:"endTime"`
	TourID          int64                        `json:"tourId"`
	VendorID        int64                        `json:"vendorId"`
	PriceProfile    PriceProfile                 `json:"priceProfile"`
	PaxAvailability []PaxAvailability            `json:"paxAvailability"`
	PaxValidation   map[string]PaxValidationRule `json:"paxValidation"`
}

// InventoryIndex maps tour id to calendar date (YYYY-MM-DD) to windows in service order.
// An index is built once and replaced wholesale on refetch.
type InventoryIndex map[int64]map[string][]AvailabilityWindow

// BuildInventoryIndex groups windows by tour and start date, keeping their order.
func BuildInventoryIndex(windows []AvailabilityWindow) InventoryIndex {
	ix := make(InventoryIndex)
	for _, w := range windows {
		byDate, ok := ix[w.TourID]
		if !ok {
			byDate = make(map[string][]AvailabilityWindow)
			ix[w.TourID] = byDate
		}
		byDate[w.StartDate] = append(byDate[w.StartDate], w)
	}
	return ix
}

// Windows returns the windows of a tour on a date, or nil.
func (ix InventoryIndex) Windows(tourID int64, date string) []AvailabilityWindow {
	return ix[tourID][date]
}

// IndexByID maps entries by experience id. The pointers refer into entries.
func IndexByID(entries []Entry) map[int64]*Entry {
	out := make(map[int64]*Entry, len(entries))
	for i := range entries {
		out[entries[i].ID] = &entries[i]
	}
	return out
}
