// README: Completion relay handler; forwards a raw request through the configured completion client.
package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"tourplan/internal/ai"
)

type CompletionHandler struct {
	client    ai.CompletionClient
	model     string
	maxTokens int
	timeout   time.Duration
}

// NewCompletionHandler builds the relay. model and maxTokens fill requests that set neither;
// a zero timeout leaves the request context as is.
func NewCompletionHandler(client ai.CompletionClient, model string, maxTokens int, timeout time.Duration) *CompletionHandler {
	return &CompletionHandler{client: client, model: model, maxTokens: maxTokens, timeout: timeout}
}

// Complete handles POST /api/completions.
func (h *CompletionHandler) Complete(c *gin.Context) {
	var req ai.CompletionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if len(req.Messages) == 0 {
		writeError(c, http.StatusBadRequest, "missing messages")
		return
	}
	if req.Model == "" {
		req.Model = h.model
	}
	if req.MaxTokens <= 0 {
		req.MaxTokens = h.maxTokens
	}

	ctx := c.Request.Context()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	res, err := h.client.Complete(ctx, req)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, ai.ErrCommunication) {
			status = http.StatusBadGateway
		}
		writeJSON(c, status, errorResponse{
			Error:   "Failed to fetch from " + h.client.Name() + " API",
			Details: err.Error(),
		})
		return
	}
	writeJSON(c, http.StatusOK, res)
}
