package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tourplan/internal/modules/catalog"
	"tourplan/internal/modules/itinerary"
	"tourplan/internal/types"
)

var tripStart = types.NewDate(2026, 10, 20)

func window(date, start string, listing, retail float64) catalog.AvailabilityWindow {
	return catalog.AvailabilityWindow{
		StartDate: date,
		StartTime: start,
		TourID:    100,
		PriceProfile: catalog.PriceProfile{Persons: []catalog.PersonPrice{
			{Type: "ADULT", ListingPrice: listing, RetailPrice: retail},
		}},
	}
}

func entryWith(id int64, currency string, windows ...catalog.AvailabilityWindow) *catalog.Entry {
	return &catalog.Entry{
		ID:              id,
		Currency:        currency,
		Variants:        []catalog.Variant{{ID: 10, Tours: []catalog.Tour{{ID: 100}}}},
		SelectedVariant: 10,
		Inventory:       catalog.BuildInventoryIndex(windows),
	}
}

func TestPriceFor(t *testing.T) {
	svc := NewService()
	entry := entryWith(1, "EUR",
		window("2026-10-21", "09:00", 40, 45),
		window("2026-10-21", "14:00", 56.45, 60),
		window("2026-10-22", "10:00", 0, 33.2),
	)

	tests := []struct {
		name     string
		slot     *itinerary.PlannedSlot
		day      int
		entry    *catalog.Entry
		want     string
		wantDate string
	}{
		{name: "matches normalized start", slot: &itinerary.PlannedSlot{TimeSlot: "2:00 PM - 4:00 PM"}, day: 2, entry: entry, want: "€56", wantDate: "2026-10-21"},
		{name: "falls back to first window", slot: &itinerary.PlannedSlot{TimeSlot: "18:00-20:00"}, day: 2, entry: entry, want: "€40", wantDate: "2026-10-21"},
		{name: "retail when listing absent", slot: &itinerary.PlannedSlot{TimeSlot: "10:00"}, day: 3, entry: entry, want: "€33", wantDate: "2026-10-22"},
		{name: "no inventory on date", slot: &itinerary.PlannedSlot{TimeSlot: "09:00"}, day: 1, entry: entry, want: PriceUnavailable, wantDate: "2026-10-20"},
		{name: "no entry", slot: &itinerary.PlannedSlot{TimeSlot: "09:00"}, day: 2, entry: nil, want: PriceUnavailable, wantDate: "2026-10-21"},
		{name: "no variants", slot: &itinerary.PlannedSlot{TimeSlot: "09:00"}, day: 2, entry: &catalog.Entry{ID: 1}, want: PriceUnavailable, wantDate: "2026-10-21"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := svc.PriceFor(tt.slot, tt.day, tt.entry, tripStart)
			assert.Equal(t, tt.want, q.Display)
			assert.Equal(t, tt.wantDate, q.BookingDate)
			assert.Equal(t, tt.want != PriceUnavailable, q.Available)
		})
	}
}

func TestPriceFor_UsesCatalogSymbol(t *testing.T) {
	entry := entryWith(1, "AED", window("2026-10-20", "09:00", 120.5, 0))
	entry.CurrencySymbol = "د.إ"
	q := NewService().PriceFor(&itinerary.PlannedSlot{TimeSlot: "09:00"}, 1, entry, tripStart)
	assert.Equal(t, "د.إ121", q.Display)
	assert.Equal(t, int64(12050), q.Unit.Amount)
}

func TestComputeTripCost(t *testing.T) {
	entries := map[int64]*catalog.Entry{
		1: entryWith(1, "USD", window("2026-10-20", "09:00", 50, 0)),
		2: entryWith(2, "USD", window("2026-10-21", "14:00", 30, 0)),
	}
	doc := &itinerary.ItineraryDocument{Days: []itinerary.DaySlots{
		{
			Index:     1,
			Morning:   &itinerary.PlannedSlot{TimeSlot: "09:00-12:00", ExperienceID: 1},
			Afternoon: &itinerary.PlannedSlot{TimeSlot: "14:00-16:00"},
		},
		{
			Index:     2,
			Afternoon: &itinerary.PlannedSlot{TimeSlot: "14:00-16:00", ExperienceID: 2},
			Evening:   &itinerary.PlannedSlot{ExperienceID: 0, TourGroupName: "Free evening"},
		},
	}}

	sum := NewService().ComputeTripCost(doc, entries, tripStart, 2)

	assert.Equal(t, types.Money{Amount: 16000, Currency: "USD"}, sum.OriginalTotal)
	assert.Equal(t, types.Money{Amount: 1600, Currency: "USD"}, sum.Discount)
	assert.Equal(t, types.Money{Amount: 14400, Currency: "USD"}, sum.DiscountedTotal)
	assert.Equal(t, types.Money{Amount: 7200, Currency: "USD"}, sum.PerPerson)
	assert.Equal(t, "USD", sum.Currency)
	assert.Equal(t, 2, sum.Travelers)
	assert.Equal(t, 2, sum.PricedSlots)
	assert.Equal(t, 0, sum.UnpricedSlots)
}

func TestComputeTripCost_UnpricedAndEmpty(t *testing.T) {
	entries := map[int64]*catalog.Entry{3: entryWith(3, "EUR")}
	doc := &itinerary.ItineraryDocument{Days: []itinerary.DaySlots{
		{Index: 1, Morning: &itinerary.PlannedSlot{TimeSlot: "09:00", ExperienceID: 3}},
		{Index: 2, Morning: &itinerary.PlannedSlot{TimeSlot: "09:00", ExperienceID: 4}},
	}}

	sum := NewService().ComputeTripCost(doc, entries, tripStart, 3)
	assert.Equal(t, int64(0), sum.OriginalTotal.Amount)
	assert.Equal(t, "EUR", sum.Currency)
	assert.Equal(t, 2, sum.UnpricedSlots)

	empty := NewService().ComputeTripCost(nil, nil, tripStart, 1)
	assert.Equal(t, TripCostSummary{Travelers: 1}, empty)
}

func TestFormatPrice(t *testing.T) {
	require.Equal(t, "$57", FormatPrice(types.Money{Amount: 5650}, "$"))
	assert.Equal(t, "£0", FormatPrice(types.Money{Amount: 49}, "£"))
	assert.Equal(t, "€", CurrencySymbol("eur", ""))
	assert.Equal(t, "BRL ", CurrencySymbol("BRL", ""))
	assert.Equal(t, "$", CurrencySymbol("", ""))
}
