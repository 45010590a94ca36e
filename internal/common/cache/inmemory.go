package cache

import (
	"context"
	"sync"
	"time"
)

const defaultSweepInterval = time.Minute

// InMemoryClient is a process local Client used when no redis is configured.
// Values are kept as is, so callers must not mutate what they store.
type InMemoryClient[T any] struct {
	mu      sync.RWMutex
	entries map[string]entry[T]

	stop     chan struct{}
	stopOnce sync.Once
}

type entry[T any] struct {
	value     T
	expiresAt time.Time
}

func (e entry[T]) expiredAt(now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}

func NewInMemoryClient[T any]() *InMemoryClient[T] {
	m := &InMemoryClient[T]{
		entries: make(map[string]entry[T]),
		stop:    make(chan struct{}),
	}

	go m.sweep(defaultSweepInterval)
	return m
}

func (m *InMemoryClient[T]) Get(ctx context.Context, key string) (result T, err error) {
	m.mu.RLock()
	e, found := m.entries[key]
	m.mu.RUnlock()

	if !found || e.expiredAt(time.Now()) {
		return result, ErrNotExists
	}

	return e.value, nil
}

func (m *InMemoryClient[T]) Set(ctx context.Context, key string, object T, ttl time.Duration) error {
	e := entry[T]{value: object}
	if ttl > 0 {
		e.expiresAt = time.Now().Add(ttl)
	}

	m.mu.Lock()
	m.entries[key] = e
	m.mu.Unlock()
	return nil
}

func (m *InMemoryClient[T]) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
	return nil
}

func (m *InMemoryClient[T]) GetOrSet(ctx context.Context, opts GetOrSetOpts[T]) (T, error) {
	return getOrSet[T](ctx, m, opts)
}

func (m *InMemoryClient[T]) sweep(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case now := <-ticker.C:
			m.mu.Lock()
			for k, e := range m.entries {
				if e.expiredAt(now) {
					delete(m.entries, k)
				}
			}
			m.mu.Unlock()
		case <-m.stop:
			return
		}
	}
}

// Close stops the sweeper. It is safe to call more than once.
func (m *InMemoryClient[T]) Close() {
	m.stopOnce.Do(func() { close(m.stop) })
}
