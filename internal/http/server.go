// README: API gateway; builds the gin engine and delegates to the planner and completion client.
package http

import (
	"log/slog"
	"time"

	"tourplan/internal/ai"
	"tourplan/internal/http/handlers"
)

type ServerDeps struct {
	Planner      handlers.Planner
	Interactions handlers.InteractionLister
	Completions  ai.CompletionClient
	Model        string
	MaxTokens    int
	RelayTimeout time.Duration
	Environment  string
	Logger       *slog.Logger
}

type Server struct {
	sessions    *handlers.SessionHandler
	completions *handlers.CompletionHandler
	health      *handlers.HealthHandler
	logger      *slog.Logger
}

func NewServer(deps ServerDeps) *Server {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	provider := ""
	if deps.Completions != nil {
		provider = deps.Completions.Name()
	}
	return &Server{
		sessions:    handlers.NewSessionHandler(deps.Planner, deps.Interactions, logger),
		completions: handlers.NewCompletionHandler(deps.Completions, deps.Model, deps.MaxTokens, deps.RelayTimeout),
		health:      handlers.NewHealthHandler(deps.Environment, provider),
		logger:      logger,
	}
}
