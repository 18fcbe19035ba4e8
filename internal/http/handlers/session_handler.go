// README: Session handlers: create, inspect and end a planning session, generate its itinerary, resolve its catalog, render its plan.
package handlers

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"tourplan/internal/modules/itinerary"
	"tourplan/internal/modules/session"
	"tourplan/internal/service"
	"tourplan/internal/types"
)

// Planner is the session workflow. *service.TripPlanner implements it.
type Planner interface {
	NewSession(ctx context.Context, trip itinerary.TripRequest) (*session.Session, error)
	Session(ctx context.Context, id string) (*session.Session, error)
	EndSession(ctx context.Context, id string) error
	GenerateItinerary(ctx context.Context, id string, bypassTimeout bool) (*session.Session, error)
	ResolveCatalog(ctx context.Context, id string) (*session.Session, error)
	BuildPlan(ctx context.Context, id string) (*service.Plan, error)
}

// InteractionLister reads the completion log. *itinerary.InteractionStore implements it.
type InteractionLister interface {
	ListBySession(ctx context.Context, sessionID string) ([]itinerary.Interaction, error)
}

type SessionHandler struct {
	planner      Planner
	interactions InteractionLister
	logger       *slog.Logger
}

// NewSessionHandler builds the handler. interactions may be nil when no database is configured.
func NewSessionHandler(planner Planner, interactions InteractionLister, logger *slog.Logger) *SessionHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionHandler{planner: planner, interactions: interactions, logger: logger}
}

type createSessionReq struct {
	Attractions []string   `json:"attractions"`
	StartDate   types.Date `json:"startDate"`
	EndDate     types.Date `json:"endDate"`
	Adults      int        `json:"adults"`
	Children    int        `json:"children"`
	Infants     int        `json:"infants"`
	Seniors     int        `json:"seniors"`
}

type generateReq struct {
	BypassTimeout bool `json:"bypassTimeout"`
}

// Create handles POST /api/sessions.
func (h *SessionHandler) Create(c *gin.Context) {
	var req createSessionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	trip := itinerary.TripRequest{
		Attractions: req.Attractions,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Travelers: itinerary.Travelers{
			Adults:   req.Adults,
			Children: req.Children,
			Infants:  req.Infants,
			Seniors:  req.Seniors,
		},
	}
	sess, err := h.planner.NewSession(c.Request.Context(), trip)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, gin.H{
		"id":        sess.ID,
		"trip":      sess.Trip,
		"dayCount":  sess.Trip.DayCount(),
		"travelers": sess.Trip.Travelers.Total(),
	})
}

// Get handles GET /api/sessions/:id.
func (h *SessionHandler) Get(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	sess, err := h.planner.Session(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, sess)
}

// Delete handles DELETE /api/sessions/:id.
func (h *SessionHandler) Delete(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	if err := h.planner.EndSession(c.Request.Context(), id); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Generate handles POST /api/sessions/:id/itinerary. A result without a usable itinerary
// is still returned, with 422, so the client can show the raw text.
func (h *SessionHandler) Generate(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	var req generateReq
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	sess, err := h.planner.GenerateItinerary(c.Request.Context(), id, req.BypassTimeout)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	status := http.StatusOK
	if !sess.Result.Success {
		status = http.StatusUnprocessableEntity
	}
	writeJSON(c, status, sess.Result)
}

// ResolveCatalog handles POST /api/sessions/:id/catalog.
func (h *SessionHandler) ResolveCatalog(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	sess, err := h.planner.ResolveCatalog(c.Request.Context(), id)
	if err != nil {
		if !errors.Is(err, service.ErrNoItinerary) && !errors.Is(err, session.ErrNotFound) {
			h.logger.WarnContext(c.Request.Context(), "catalog resolution failed",
				slog.String("session_id", id),
				slog.Any("error", err))
		}
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{
		"sessionId": sess.ID,
		"count":     len(sess.Catalog),
		"catalog":   sess.Catalog,
	})
}

// Plan handles GET /api/sessions/:id/plan.
func (h *SessionHandler) Plan(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	plan, err := h.planner.BuildPlan(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, plan)
}

// Interactions handles GET /api/sessions/:id/interactions.
func (h *SessionHandler) Interactions(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	if h.interactions == nil {
		writeError(c, http.StatusNotFound, "interaction log not configured")
		return
	}
	if _, err := h.planner.Session(c.Request.Context(), id); err != nil {
		writeServiceError(c, err)
		return
	}
	list, err := h.interactions.ListBySession(c.Request.Context(), id)
	if err != nil {
		h.logger.ErrorContext(c.Request.Context(), "list interactions",
			slog.String("session_id", id),
			slog.Any("error", err))
		writeServiceError(c, err)
		return
	}
	if list == nil {
		list = []itinerary.Interaction{}
	}
	writeJSON(c, http.StatusOK, gin.H{"sessionId": id, "interactions": list})
}
