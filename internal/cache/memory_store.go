package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"mentorsurvey/internal/model"
)

type memoryEntry struct {
	mu      sync.Mutex
	session *model.Session
	touched time.Time
	removed bool
}

// MemoryStore is a process-local SessionStore. Callers always receive deep
// copies, so nothing they hold aliases stored state.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]*memoryEntry
	now     func() time.Time
}

type MemoryOption func(*MemoryStore)

func WithMemoryClock(now func() time.Time) MemoryOption {
	return func(m *MemoryStore) {
		m.now = now
	}
}

func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	m := &MemoryStore{
		entries: make(map[string]*memoryEntry),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *MemoryStore) entry(id string) (*memoryEntry, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[id]
	return e, ok
}

func (m *MemoryStore) Get(_ context.Context, id string) (*model.Session, error) {
	e, ok := m.entry(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.removed {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return e.session.Clone(), nil
}

func (m *MemoryStore) Put(_ context.Context, s *model.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if old, ok := m.entries[s.ID]; ok {
		old.mu.Lock()
		old.removed = true
		old.mu.Unlock()
	}
	m.entries[s.ID] = &memoryEntry{session: s.Clone(), touched: m.now()}
	return nil
}

func (m *MemoryStore) Add(_ context.Context, s *model.Session) (*model.Session, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.entries[s.ID]; ok {
		e.mu.Lock()
		defer e.mu.Unlock()
		if !e.removed {
			return e.session.Clone(), false, nil
		}
	}
	m.entries[s.ID] = &memoryEntry{session: s.Clone(), touched: m.now()}
	return s.Clone(), true, nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	e, ok := m.entries[id]
	delete(m.entries, id)
	m.mu.Unlock()
	if ok {
		e.mu.Lock()
		e.removed = true
		e.mu.Unlock()
	}
	return nil
}

func (m *MemoryStore) Update(ctx context.Context, id string, fn UpdateFunc) (*model.Session, error) {
	e, ok := m.entry(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.removed {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	working := e.session.Clone()
	if err := fn(working); err != nil {
		return nil, err
	}
	e.session = working
	e.touched = m.now()
	return working.Clone(), nil
}

// ExpireIdle drops in-progress sessions not written since olderThan ago and
// returns how many were removed. Finished sessions are kept until the
// process exits.
func (m *MemoryStore) ExpireIdle(olderThan time.Duration) int {
	cutoff := m.now().Add(-olderThan)

	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	for id, e := range m.entries {
		// an entry held by Update is in use
		if !e.mu.TryLock() {
			continue
		}
		if e.session.Status == model.SessionInProgress && e.touched.Before(cutoff) {
			e.removed = true
			delete(m.entries, id)
			removed++
		}
		e.mu.Unlock()
	}
	return removed
}

// StartCleanup runs ExpireIdle every interval until ctx is cancelled.
// report, when set, receives the number of sessions removed by each sweep.
func (m *MemoryStore) StartCleanup(ctx context.Context, interval, ttl time.Duration, report func(removed int)) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			n := m.ExpireIdle(ttl)
			if report != nil {
				report(n)
			}
		case <-ctx.Done():
			return nil
		}
	}
}

// Len reports the number of stored sessions.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
