package cache

import (
	"context"
	"encoding/json"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Cache stores JSON-encoded values by key.
type Cache interface {
	// Get decodes the cached value into dest. ok is false on a miss.
	Get(ctx context.Context, key string, dest any) (ok bool, err error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// DefaultMaxEntries bounds a Memory cache built by NewMemory.
const DefaultMaxEntries = 10000

const memorySweepInterval = time.Minute

type memoryItem struct {
	data      []byte
	expiresAt time.Time
}

func (i memoryItem) expired(now time.Time) bool {
	return !i.expiresAt.IsZero() && now.After(i.expiresAt)
}

// Memory is an in-process Cache used when no redis is configured. It holds
// at most maxEntries keys, evicting the least recently used; Run drops
// expired keys that are never read again.
type Memory struct {
	items *lru.Cache[string, memoryItem]
	now   func() time.Time
}

func NewMemory() *Memory {
	return NewMemorySize(DefaultMaxEntries)
}

func NewMemorySize(maxEntries int) *Memory {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	items, _ := lru.New[string, memoryItem](maxEntries)
	return &Memory{items: items, now: time.Now}
}

func (m *Memory) Get(_ context.Context, key string, dest any) (bool, error) {
	item, ok := m.items.Get(key)
	if !ok {
		return false, nil
	}
	if item.expired(m.now()) {
		m.items.Remove(key)
		return false, nil
	}
	if err := json.Unmarshal(item.data, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (m *Memory) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	item := memoryItem{data: b}
	if ttl > 0 {
		item.expiresAt = m.now().Add(ttl)
	}
	m.items.Add(key, item)
	return nil
}

func (m *Memory) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		m.items.Remove(k)
	}
	return nil
}

// Len reports how many keys are held, expired or not.
func (m *Memory) Len() int {
	return m.items.Len()
}

// Run sweeps expired keys until ctx is done.
func (m *Memory) Run(ctx context.Context) {
	ticker := time.NewTicker(memorySweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.sweep()
		}
	}
}

func (m *Memory) sweep() int {
	now := m.now()
	removed := 0
	for _, k := range m.items.Keys() {
		if item, ok := m.items.Peek(k); ok && item.expired(now) {
			m.items.Remove(k)
			removed++
		}
	}
	return removed
}
