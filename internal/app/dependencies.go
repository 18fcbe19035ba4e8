// README: Dependency wiring shared by the API server and the CLI.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"tourplan/internal/ai"
	"tourplan/internal/config"
	"tourplan/internal/infra"
	"tourplan/internal/maps"
	"tourplan/internal/modules/catalog"
	"tourplan/internal/modules/itinerary"
	"tourplan/internal/modules/session"
	"tourplan/internal/service"
)

// Dependencies holds all application dependencies
type Dependencies struct {
	Config config.Config
	Logger *slog.Logger

	DB    *pgxpool.Pool
	Redis *redis.Client

	Completions  ai.CompletionClient
	Interactions *itinerary.InteractionStore
	Sessions     session.Store
	Itinerary    *itinerary.Service
	Catalog      *catalog.Service
	Legs         *maps.RouteService
	Planner      *service.TripPlanner

	closers []func() error
}

// InitDependencies connects optional backing stores and builds the services. Postgres is
// used only when a DSN is set, Redis only when an address is set, Maps only with a key.
func InitDependencies(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Dependencies, error) {
	if logger == nil {
		logger = slog.Default()
	}
	deps := &Dependencies{Config: cfg, Logger: logger}

	if err := deps.initDatabase(ctx); err != nil {
		deps.Close()
		return nil, fmt.Errorf("failed to init database: %w", err)
	}
	if err := deps.initSessions(ctx); err != nil {
		deps.Close()
		return nil, fmt.Errorf("failed to init sessions: %w", err)
	}
	if err := deps.initCompletions(ctx); err != nil {
		deps.Close()
		return nil, fmt.Errorf("failed to init completion client: %w", err)
	}
	if err := deps.initServices(); err != nil {
		deps.Close()
		return nil, fmt.Errorf("failed to init services: %w", err)
	}

	logger.Info("all dependencies initialized successfully",
		slog.String("provider", deps.Completions.Name()),
		slog.Bool("interaction_log", deps.Interactions != nil),
		slog.Bool("redis_sessions", deps.Redis != nil),
		slog.Bool("travel_legs", deps.Legs != nil))
	return deps, nil
}

func (d *Dependencies) initDatabase(ctx context.Context) error {
	if d.Config.DB.DSN == "" {
		return nil
	}
	pool, err := infra.NewDB(ctx, d.Config.DB.DSN)
	if err != nil {
		return err
	}
	d.DB = pool
	d.closers = append(d.closers, func() error { pool.Close(); return nil })

	if err := infra.Migrate(ctx, pool); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	d.Interactions = itinerary.NewInteractionStore(pool)
	d.Logger.Info("database connected and migrations completed successfully")
	return nil
}

func (d *Dependencies) initSessions(ctx context.Context) error {
	if d.Config.Redis.Addr == "" {
		d.Sessions = session.NewMemoryStore(d.Config.Redis.SessionTTL)
		return nil
	}
	rdb, err := infra.NewRedis(ctx, d.Config.Redis.Addr)
	if err != nil {
		return err
	}
	d.Redis = rdb
	d.closers = append(d.closers, rdb.Close)
	d.Sessions = session.NewRedisStore(rdb, d.Config.Redis.SessionTTL)
	return nil
}

func (d *Dependencies) initCompletions(ctx context.Context) error {
	llm := d.Config.LLM
	switch llm.Provider {
	case config.ProviderGemini:
		client, err := ai.NewGeminiClient(ctx, llm.GeminiKey, llm.GeminiModel)
		if err != nil {
			return err
		}
		d.Completions = client
		d.closers = append(d.closers, client.Close)
	case config.ProviderAnthropic:
		d.Completions = ai.NewAnthropicClient(ai.AnthropicConfig{
			Endpoint: llm.Endpoint,
			APIKey:   llm.AnthropicKey,
		})
	default:
		return fmt.Errorf("unknown provider %q", llm.Provider)
	}
	return nil
}

func (d *Dependencies) initServices() error {
	llm := d.Config.LLM
	var recorder itinerary.Recorder
	if d.Interactions != nil {
		recorder = d.Interactions
	}
	var mcp []ai.MCPServer
	if llm.MCPServerURL != "" {
		mcp = []ai.MCPServer{{Type: "url", URL: llm.MCPServerURL, Name: llm.MCPServerName}}
	}
	d.Itinerary = itinerary.NewService(d.Completions, itinerary.Config{
		Model:      llm.Model,
		MaxTokens:  llm.MaxTokens,
		MCPServers: mcp,
		Retry: itinerary.RetryPolicy{
			MaxAttempts:    llm.MaxAttempts,
			PauseDelay:     llm.PauseDelay,
			RequestTimeout: llm.RequestTimeout,
			Sleep:          itinerary.SleepContext,
		},
	}, recorder, d.Logger)

	cat := d.Config.Catalog
	var limiter *rate.Limiter
	if cat.RPS > 0 {
		limiter = rate.NewLimiter(rate.Limit(cat.RPS), max(cat.Burst, 1))
	}
	client := catalog.NewClient(cat.BaseURL, &http.Client{Timeout: 15 * time.Second}, limiter)
	d.Catalog = catalog.NewService(client, catalog.Config{
		Concurrency:   cat.Concurrency,
		InventoryDays: cat.InventoryDays,
		CacheTTL:      cat.CacheTTL,
	}, d.Logger)

	var legs service.LegEstimator
	if d.Config.Maps.APIKey != "" {
		rs, err := maps.NewRouteService(d.Config.Maps.APIKey, d.Config.Maps.Mode)
		if err != nil {
			return err
		}
		d.Legs = rs
		legs = rs
	}

	d.Planner = service.NewTripPlanner(d.Sessions, d.Itinerary, d.Catalog, legs, d.Logger)
	return nil
}

// Close releases connections in reverse order of acquisition.
func (d *Dependencies) Close() error {
	var errs []error
	for i := len(d.closers) - 1; i >= 0; i-- {
		if err := d.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	d.closers = nil
	return errors.Join(errs...)
}
