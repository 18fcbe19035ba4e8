// README: Planning session state: the trip request, the generated itinerary and the resolved catalog.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"tourplan/internal/modules/catalog"
	"tourplan/internal/modules/itinerary"
)

var ErrNotFound = errors.New("session not found")

// Session is the unit of state a client works against. The itinerary result and catalog
// are replaced wholesale on regeneration or refetch.
type Session struct {
	ID        string                `json:"id"`
	Trip      itinerary.TripRequest `json:"trip"`
	Result    *itinerary.Result     `json:"result,omitempty"`
	Catalog   []catalog.Entry       `json:"catalog,omitempty"`
	CreatedAt time.Time             `json:"createdAt"`
	UpdatedAt time.Time             `json:"updatedAt"`
}

// New starts a session for a validated trip request.
func New(trip itinerary.TripRequest, now time.Time) *Session {
	return &Session{
		ID:        uuid.NewString(),
		Trip:      trip,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// SetResult stores a generation result and drops any catalog resolved for an older itinerary.
func (s *Session) SetResult(res *itinerary.Result, now time.Time) {
	s.Result = res
	s.Catalog = nil
	s.UpdatedAt = now
}

func (s *Session) SetCatalog(entries []catalog.Entry, now time.Time) {
	s.Catalog = entries
	s.UpdatedAt = now
}

// Itinerary returns the current document or nil.
func (s *Session) Itinerary() *itinerary.ItineraryDocument {
	if s == nil || s.Result == nil {
		return nil
	}
	return s.Result.Itinerary
}

// Store persists sessions. Implementations must return ErrNotFound for unknown or expired ids.
// Save creates or replaces; Update replaces only a live session so an ended one stays ended.
type Store interface {
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Update(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id string) error
}
