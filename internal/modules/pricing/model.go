// README: Pricing results for planned slots and the trip cost summary.
package pricing

import (
	"tourplan/internal/modules/catalog"
	"tourplan/internal/types"
)

// PriceUnavailable is displayed when a slot cannot be priced from inventory.
const PriceUnavailable = "Price unavailable"

// DefaultDiscountPercent is the flat trip discount.
const DefaultDiscountPercent = 10

// Quote is the resolved per-person price of one planned slot.
type Quote struct {
	Available   bool                        `json:"available"`
	Unit        types.Money                 `json:"unit"`
	Display     string                      `json:"display"`
	BookingDate string                      `json:"bookingDate"`
	Window      *catalog.AvailabilityWindow `json:"window,omitempty"`
}

// TripCostSummary is derived from the itinerary, catalog and travelers on every request.
type TripCostSummary struct {
	OriginalTotal   types.Money `json:"originalTotal"`
	Discount        types.Money `json:"discount"`
	DiscountedTotal types.Money `json:"discountedTotal"`
	PerPerson       types.Money `json:"perPerson"`
	Currency        string      `json:"currency"`
	Travelers       int         `json:"travelers"`
	PricedSlots     int         `json:"pricedSlots"`
	UnpricedSlots   int         `json:"unpricedSlots"`
}
