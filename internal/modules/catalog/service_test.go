package catalog

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tourplan/internal/types"
)

// fakeSource serves entries from memory and counts calls.
type fakeSource struct {
	mu             sync.Mutex
	entries        map[int64]Entry
	failInventory  map[int64]bool
	experienceHits map[int64]int
	lastFrom       types.Date
	lastTo         types.Date
}

func newFakeSource(ids ...int64) *fakeSource {
	f := &fakeSource{entries: map[int64]Entry{}, failInventory: map[int64]bool{}, experienceHits: map[int64]int{}}
	for _, id := range ids {
		f.entries[id] = Entry{
			ID:              id,
			Name:            "exp",
			Variants:        []Variant{{ID: id * 10, Tours: []Tour{{ID: id * 100}}}},
			SelectedVariant: id * 10,
		}
	}
	return f
}

func (f *fakeSource) GetExperience(_ context.Context, id int64) (*Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.experienceHits[id]++
	e, ok := f.entries[id]
	if !ok {
		return nil, errors.New("404 Not Found")
	}
	return &e, nil
}

func (f *fakeSource) GetInventory(_ context.Context, experienceID, variantID int64, from, to types.Date) (InventoryIndex, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastFrom, f.lastTo = from, to
	if f.failInventory[experienceID] {
		return nil, errors.New("timeout")
	}
	return BuildInventoryIndex([]AvailabilityWindow{{TourID: experienceID * 100, StartDate: from.String(), StartTime: "10:00"}}), nil
}

func newTestService(src Source, ttl time.Duration) *Service {
	s := NewService(src, Config{Concurrency: 2, InventoryDays: 7, CacheTTL: ttl}, nil)
	s.now = func() time.Time { return time.Date(2026, 10, 16, 22, 30, 0, 0, time.UTC) }
	return s
}

func TestFetchCatalog_PartialFailure(t *testing.T) {
	src := newFakeSource(1, 3)
	entries, err := newTestService(src, 0).FetchCatalog(context.Background(), []int64{3, 2, 1})
	require.NoError(t, err)

	require.Len(t, entries, 2)
	assert.Equal(t, int64(3), entries[0].ID)
	assert.Equal(t, int64(1), entries[1].ID)
	assert.Len(t, entries[0].Inventory.Windows(300, "2026-10-16"), 1)
	assert.Equal(t, "2026-10-16", src.lastFrom.String())
	assert.Equal(t, "2026-10-23", src.lastTo.String())
}

func TestFetchCatalog_AllFail(t *testing.T) {
	_, err := newTestService(newFakeSource(), 0).FetchCatalog(context.Background(), []int64{1, 2})
	assert.ErrorIs(t, err, ErrNoExperiencesResolved)
}

func TestFetchCatalog_NoIDs(t *testing.T) {
	svc := newTestService(newFakeSource(1), 0)
	_, err := svc.FetchCatalog(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNoExperienceIDs)
	_, err = svc.FetchCatalog(context.Background(), []int64{0, -4})
	assert.ErrorIs(t, err, ErrNoExperienceIDs)
}

func TestFetchCatalog_InventoryFailureKeepsEntry(t *testing.T) {
	src := newFakeSource(5)
	src.failInventory[5] = true
	svc := newTestService(src, time.Minute)

	entries, err := svc.FetchCatalog(context.Background(), []int64{5})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Nil(t, entries[0].Inventory)

	// Entries without inventory are not cached.
	_, err = svc.FetchCatalog(context.Background(), []int64{5})
	require.NoError(t, err)
	assert.Equal(t, 2, src.experienceHits[5])
}

func TestFetchCatalog_CachesAndDeduplicates(t *testing.T) {
	src := newFakeSource(7)
	svc := newTestService(src, time.Minute)

	for i := 0; i < 3; i++ {
		entries, err := svc.FetchCatalog(context.Background(), []int64{7, 7})
		require.NoError(t, err)
		require.Len(t, entries, 1)
	}
	assert.Equal(t, 1, src.experienceHits[7])
}

func TestFetchCatalog_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := newTestService(newFakeSource(1), 0).FetchCatalog(ctx, []int64{1})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEntry_Variant(t *testing.T) {
	e := &Entry{Variants: []Variant{{ID: 1}, {ID: 2}}, SelectedVariant: 2}
	assert.Equal(t, int64(2), e.Variant().ID)
	e.SelectedVariant = 99
	assert.Equal(t, int64(1), e.Variant().ID)
	var nilEntry *Entry
	assert.Nil(t, nilEntry.Variant())
}
