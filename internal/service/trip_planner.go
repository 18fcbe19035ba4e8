// README: TripPlanner ties sessions, itinerary generation, catalog resolution and pricing into the plan view.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"tourplan/internal/maps"
	"tourplan/internal/modules/catalog"
	"tourplan/internal/modules/itinerary"
	"tourplan/internal/modules/pricing"
	"tourplan/internal/modules/session"
	"tourplan/internal/types"
)

var (
	ErrNoItinerary = errors.New("session has no itinerary")
	ErrNoCatalog   = errors.New("session has no catalog")
)

// Generator produces itineraries. *itinerary.Service implements it.
type Generator interface {
	Generate(ctx context.Context, sessionID string, req itinerary.TripRequest, bypassTimeout bool) (*itinerary.Result, error)
}

// CatalogFetcher resolves experience ids. *catalog.Service implements it.
type CatalogFetcher interface {
	FetchCatalog(ctx context.Context, ids []int64) ([]catalog.Entry, error)
}

// LegEstimator estimates travel between two places. *maps.RouteService implements it.
type LegEstimator interface {
	EstimateLeg(ctx context.Context, origin, destination string) (maps.Leg, error)
}

// TripPlanner orchestrates the per-session flow: request, itinerary, catalog, plan.
type TripPlanner struct {
	sessions  session.Store
	generator Generator
	catalog   CatalogFetcher
	pricing   *pricing.Service
	legs      LegEstimator
	logger    *slog.Logger
	now       func() time.Time
}

// NewTripPlanner creates a TripPlanner. legs and logger may be nil.
func NewTripPlanner(sessions session.Store, generator Generator, fetcher CatalogFetcher, legs LegEstimator, logger *slog.Logger) *TripPlanner {
	if logger == nil {
		logger = slog.Default()
	}
	return &TripPlanner{
		sessions:  sessions,
		generator: generator,
		catalog:   fetcher,
		pricing:   pricing.NewService(),
		legs:      legs,
		logger:    logger,
		now:       time.Now,
	}
}

// NewSession validates trip and stores a fresh session for it.
func (p *TripPlanner) NewSession(ctx context.Context, trip itinerary.TripRequest) (*session.Session, error) {
	if err := trip.Validate(); err != nil {
		return nil, err
	}
	sess := session.New(trip, p.now().UTC())
	if err := p.sessions.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	p.logger.InfoContext(ctx, "session created",
		slog.String("session_id", sess.ID),
		slog.Int("days", trip.DayCount()),
		slog.Int("travelers", trip.Travelers.Total()))
	return sess, nil
}

func (p *TripPlanner) Session(ctx context.Context, id string) (*session.Session, error) {
	return p.sessions.Get(ctx, id)
}

func (p *TripPlanner) EndSession(ctx context.Context, id string) error {
	return p.sessions.Delete(ctx, id)
}

// GenerateItinerary runs the conversation for the session's trip and stores the outcome,
// successful or not. A previously resolved catalog is discarded. If the session ended while
// the conversation ran, the outcome is dropped and session.ErrNotFound returned.
func (p *TripPlanner) GenerateItinerary(ctx context.Context, id string, bypassTimeout bool) (*session.Session, error) {
	sess, err := p.sessions.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	res, err := p.generator.Generate(ctx, sess.ID, sess.Trip, bypassTimeout)
	if err != nil {
		return nil, err
	}
	sess.SetResult(res, p.now().UTC())
	if err := p.sessions.Update(ctx, sess); err != nil {
		return nil, fmt.Errorf("update session: %w", err)
	}
	return sess, nil
}

// ResolveCatalog fetches the catalog entries referenced by the session's itinerary.
func (p *TripPlanner) ResolveCatalog(ctx context.Context, id string) (*session.Session, error) {
	sess, err := p.sessions.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	doc := sess.Itinerary()
	if doc == nil {
		return nil, ErrNoItinerary
	}
	entries, err := p.catalog.FetchCatalog(ctx, doc.ExperienceIDs())
	if err != nil {
		return nil, err
	}
	sess.SetCatalog(entries, p.now().UTC())
	if err := p.sessions.Update(ctx, sess); err != nil {
		return nil, fmt.Errorf("update session: %w", err)
	}
	return sess, nil
}

// BuildPlan assembles the day-by-day view and the trip cost for a session. Without a
// resolved catalog every booked slot shows as unpriced.
func (p *TripPlanner) BuildPlan(ctx context.Context, id string) (*Plan, error) {
	sess, err := p.sessions.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	doc := sess.Itinerary()
	if doc == nil {
		return nil, ErrNoItinerary
	}

	entries := catalog.IndexByID(sess.Catalog)
	start := sess.Trip.StartDate
	plan := &Plan{
		SessionID:       sess.ID,
		Fallback:        sess.Result.Fallback,
		CatalogResolved: len(sess.Catalog) > 0,
		Notes:           doc.Notes,
		Cost:            p.pricing.ComputeTripCost(doc, entries, start, sess.Trip.Travelers.Total()),
	}
	for _, day := range doc.Days {
		dp := p.dayPlan(day, start, entries)
		if p.legs != nil {
			dp.Legs = p.travelLegs(ctx, sess.ID, dp)
		}
		plan.Days = append(plan.Days, dp)
	}
	return plan, nil
}

func (p *TripPlanner) dayPlan(day itinerary.DaySlots, start types.Date, entries map[int64]*catalog.Entry) DayPlan {
	date := start.AddDays(day.Index - 1)
	dp := DayPlan{Index: day.Index, Date: date.String(), Weekday: date.Weekday().String()}
	for _, period := range itinerary.Periods {
		slot := day.Slot(period)
		view := SlotView{Period: period, Label: period.Label(), Slot: slot}
		if !slot.IsFree() {
			view.Booked = true
			entry := entries[int64(slot.ExperienceID)]
			if entry != nil {
				view.Name = entry.Name
				view.Image = entry.Image
			} else {
				view.Name = slot.TourGroupName
			}
			q := p.pricing.PriceFor(slot, day.Index, entry, start)
			view.Quote = &q
		}
		dp.Slots = append(dp.Slots, view)
	}
	return dp
}

// travelLegs estimates travel between consecutive booked slots that name a location.
// Estimation failures leave the leg out.
func (p *TripPlanner) travelLegs(ctx context.Context, sessionID string, day DayPlan) []maps.Leg {
	var legs []maps.Leg
	prev := ""
	for _, s := range day.Slots {
		if !s.Booked || s.Slot.Location == "" {
			continue
		}
		if prev != "" && prev != s.Slot.Location {
			leg, err := p.legs.EstimateLeg(ctx, prev, s.Slot.Location)
			if err != nil {
				p.logger.WarnContext(ctx, "travel leg unavailable",
					slog.String("session_id", sessionID),
					slog.Int("day", day.Index),
					slog.Any("error", err))
			} else {
				legs = append(legs, leg)
			}
		}
		prev = s.Slot.Location
	}
	return legs
}
