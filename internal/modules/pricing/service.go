// README: Pricing service resolves planned slots against inventory and aggregates the trip cost.
package pricing

import (
	"tourplan/internal/modules/catalog"
	"tourplan/internal/modules/itinerary"
	"tourplan/internal/types"
)

type Service struct {
	discountPercent int64
}

func NewService() *Service {
	return &Service{discountPercent: DefaultDiscountPercent}
}

// PriceFor resolves the per-person price of slot on day dayIndex (1-based) of a trip
// starting at start. The window whose start time matches the slot is preferred; otherwise
// the first window of the booking date is used.
func (s *Service) PriceFor(slot *itinerary.PlannedSlot, dayIndex int, entry *catalog.Entry, start types.Date) Quote {
	q := Quote{Display: PriceUnavailable, BookingDate: start.AddDays(dayIndex - 1).String()}
	if slot == nil || entry == nil {
		return q
	}
	variant := entry.Variant()
	if variant == nil || len(variant.Tours) == 0 {
		return q
	}

	windows := entry.Inventory.Windows(variant.Tours[0].ID, q.BookingDate)
	if len(windows) == 0 {
		return q
	}

	window := &windows[0]
	target := NormalizeTime(slot.TimeSlot)
	for i := range windows {
		if NormalizeTime(windows[i].StartTime) == target {
			window = &windows[i]
			break
		}
	}

	persons := window.PriceProfile.Persons
	if len(persons) == 0 {
		return q
	}
	amount := persons[0].ListingPrice
	if amount <= 0 {
		amount = persons[0].RetailPrice
	}
	if amount <= 0 {
		return q
	}

	q.Available = true
	q.Window = window
	q.Unit = types.MoneyFromFloat(amount, entry.Currency)
	q.Display = FormatPrice(q.Unit, CurrencySymbol(entry.Currency, entry.CurrencySymbol))
	return q
}

// ComputeTripCost sums price times travelers over every booked slot, then applies the flat
// discount. Free slots and slots without a price are left out of the total.
func (s *Service) ComputeTripCost(doc *itinerary.ItineraryDocument, entries map[int64]*catalog.Entry, start types.Date, travelers int) TripCostSummary {
	sum := TripCostSummary{Travelers: travelers}
	if doc == nil {
		return sum
	}

	var total types.Money
	for _, day := range doc.Days {
		for _, p := range itinerary.Periods {
			slot := day.Slot(p)
			if slot.IsFree() {
				continue
			}
			q := s.PriceFor(slot, day.Index, entries[int64(slot.ExperienceID)], start)
			if !q.Available {
				sum.UnpricedSlots++
				continue
			}
			sum.PricedSlots++
			total = total.Add(q.Unit.Mul(travelers))
		}
	}

	sum.Currency = total.Currency
	if sum.Currency == "" {
		sum.Currency = firstCurrency(entries)
		total.Currency = sum.Currency
	}
	sum.OriginalTotal = total
	sum.Discount = total.Percent(s.discountPercent)
	sum.DiscountedTotal = types.Money{Amount: total.Amount - sum.Discount.Amount, Currency: total.Currency}
	sum.PerPerson = sum.DiscountedTotal.Div(travelers)
	return sum
}

// firstCurrency picks the currency of the lowest experience id so empty totals are stable.
func firstCurrency(entries map[int64]*catalog.Entry) string {
	cur, best := "USD", int64(0)
	for id, e := range entries {
		if e == nil || e.Currency == "" {
			continue
		}
		if best == 0 || id < best {
			cur, best = e.Currency, id
		}
	}
	return cur
}
