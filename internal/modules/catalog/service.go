// README: Catalog service resolves experience ids into entries with a forward inventory window, in parallel.
package catalog

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/errgroup"

	"tourplan/internal/metrics"
	"tourplan/internal/types"
)

// Source is the remote catalog. *Client implements it.
type Source interface {
	GetExperience(ctx context.Context, id int64) (*Entry, error)
	GetInventory(ctx context.Context, experienceID, variantID int64, from, to types.Date) (InventoryIndex, error)
}

type Config struct {
	// Concurrency caps in-flight experience lookups.
	Concurrency int
	// InventoryDays is the forward inventory window from today.
	InventoryDays int
	// CacheTTL keeps resolved entries; zero disables caching.
	CacheTTL time.Duration
}

func DefaultConfig() Config {
	return Config{Concurrency: 8, InventoryDays: 7, CacheTTL: 5 * time.Minute}
}

type Service struct {
	source Source
	cfg    Config
	cache  *cache.Cache
	logger *slog.Logger
	now    func() time.Time
}

func NewService(source Source, cfg Config, logger *slog.Logger) *Service {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = DefaultConfig().Concurrency
	}
	if cfg.InventoryDays <= 0 {
		cfg.InventoryDays = DefaultConfig().InventoryDays
	}
	if logger == nil {
		logger = slog.Default()
	}
	s := &Service{source: source, cfg: cfg, logger: logger, now: time.Now}
	if cfg.CacheTTL > 0 {
		s.cache = cache.New(cfg.CacheTTL, 2*cfg.CacheTTL)
	}
	return s
}

// FetchCatalog resolves ids concurrently. Failed ids are logged and dropped; the result keeps
// the order of ids. It fails only when ids is empty, ctx is done, or nothing resolved.
func (s *Service) FetchCatalog(ctx context.Context, ids []int64) ([]Entry, error) {
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return nil, ErrNoExperienceIDs
	}

	results := make([]*Entry, len(ids))
	var g errgroup.Group
	g.SetLimit(s.cfg.Concurrency)
	for i, id := range ids {
		g.Go(func() error {
			results[i] = s.resolve(ctx, id)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(results))
	for _, e := range results {
		if e != nil {
			entries = append(entries, *e)
		}
	}
	if len(entries) == 0 {
		return nil, ErrNoExperiencesResolved
	}
	return entries, nil
}

// resolve fetches one experience and its inventory. It returns nil when the experience
// cannot be fetched; an inventory failure keeps the entry without availability.
func (s *Service) resolve(ctx context.Context, id int64) *Entry {
	key := strconv.FormatInt(id, 10)
	if s.cache != nil {
		if v, ok := s.cache.Get(key); ok {
			metrics.CatalogLookups.WithLabelValues("cached").Inc()
			e := v.(Entry)
			return &e
		}
	}

	entry, err := s.source.GetExperience(ctx, id)
	if err != nil {
		s.logger.WarnContext(ctx, "dropping experience",
			slog.Int64("experience_id", id),
			slog.Any("error", err))
		metrics.CatalogLookups.WithLabelValues("dropped").Inc()
		return nil
	}
	metrics.CatalogLookups.WithLabelValues("fetched").Inc()

	now := s.now().UTC()
	entry.FetchedAt = now
	inventoryOK := true
	if v := entry.Variant(); v != nil {
		from := types.DateOf(now)
		ix, err := s.source.GetInventory(ctx, entry.ID, v.ID, from, from.AddDays(s.cfg.InventoryDays))
		if err != nil {
			inventoryOK = false
			s.logger.WarnContext(ctx, "inventory unavailable",
				slog.Int64("experience_id", id),
				slog.Int64("variant_id", v.ID),
				slog.Any("error", err))
			metrics.InventoryFailures.Inc()
		} else {
			entry.Inventory = ix
		}
	}

	if s.cache != nil && inventoryOK {
		s.cache.Set(key, *entry, cache.DefaultExpiration)
	}
	return entry
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id <= 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
