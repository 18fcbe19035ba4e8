// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"tourplan/internal/modules/catalog"
	"tourplan/internal/modules/itinerary"
	"tourplan/internal/modules/session"
	"tourplan/internal/service"
)

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// isValidID accepts session ids as issued (UUIDs).
func isValidID(v string) bool {
	_, err := uuid.Parse(v)
	return err == nil
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

func writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, itinerary.ErrBadRequest):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, session.ErrNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrNoItinerary), errors.Is(err, service.ErrNoCatalog):
		writeError(c, http.StatusConflict, err.Error())
	case errors.Is(err, catalog.ErrNoExperienceIDs):
		writeError(c, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, catalog.ErrNoExperiencesResolved):
		writeError(c, http.StatusBadGateway, err.Error())
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		writeError(c, http.StatusGatewayTimeout, "request cancelled")
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}

// sessionID reads and validates the :id path parameter, writing a 400 when it is unusable.
func sessionID(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if id == "" || !isValidID(id) {
		writeError(c, http.StatusBadRequest, "invalid session id")
		return "", false
	}
	return id, true
}
