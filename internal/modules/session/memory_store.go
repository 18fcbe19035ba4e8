package session

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

// MemoryStore is a process-local Store used when Redis is not configured. Values are
// stored encoded so callers never share state with the store.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]memItem
	ttl   time.Duration
	now   func() time.Time
}

type memItem struct {
	data    []byte
	expires time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{items: make(map[string]memItem), ttl: ttl, now: time.Now}
}

func (m *MemoryStore) Get(_ context.Context, id string) (*Session, error) {
	m.mu.RLock()
	item, ok := m.items[id]
	m.mu.RUnlock()
	if !ok || m.expired(item) {
		return nil, ErrNotFound
	}
	var sess Session
	if err := json.Unmarshal(item.data, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

func (m *MemoryStore) Save(_ context.Context, sess *Session) error {
	item, err := m.encode(sess)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.items[sess.ID] = item
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Update(_ context.Context, sess *Session) error {
	item, err := m.encode(sess)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.items[sess.ID]
	if !ok || m.expired(cur) {
		delete(m.items, sess.ID)
		return ErrNotFound
	}
	m.items[sess.ID] = item
	return nil
}

func (m *MemoryStore) encode(sess *Session) (memItem, error) {
	b, err := json.Marshal(sess)
	if err != nil {
		return memItem{}, err
	}
	item := memItem{data: b}
	if m.ttl > 0 {
		item.expires = m.now().Add(m.ttl)
	}
	return item, nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	item, ok := m.items[id]
	if !ok || m.expired(item) {
		delete(m.items, id)
		return ErrNotFound
	}
	delete(m.items, id)
	return nil
}

func (m *MemoryStore) expired(item memItem) bool {
	return !item.expires.IsZero() && !m.now().Before(item.expires)
}
