package store

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ChaiWithJai/gtm-agent/internal/model/session"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionBusy     = errors.New("session is already processing a request")
)

// DefaultIdleTTL is how long an untouched session survives before the
// janitor evicts it.
const DefaultIdleTTL = 30 * time.Minute

// Store owns every live session and serializes access per identifier.
// Each entry carries its own lock so unrelated sessions never contend.
type Store struct {
	mu      sync.RWMutex
	entries map[string]*entry
	idleTTL time.Duration
}

type entry struct {
	mu      sync.Mutex
	session *session.Session
	touched time.Time
}

// New bootstraps an in-memory store. A non-positive idleTTL falls back
// to DefaultIdleTTL.
func New(idleTTL time.Duration) *Store {
	if idleTTL <= 0 {
		idleTTL = DefaultIdleTTL
	}
	return &Store{
		entries: make(map[string]*entry),
		idleTTL: idleTTL,
	}
}

// Create provisions a fresh session and returns its identifier.
func (s *Store) Create() string {
	id := uuid.NewString()
	s.mu.Lock()
	s.entries[id] = &entry{
		session: session.New(id),
		touched: time.Now(),
	}
	s.mu.Unlock()
	return id
}

// With acquires the session's exclusive lock, hands the mutable session
// to fn, and releases the lock on every exit path. A concurrent caller
// against the same identifier is rejected immediately with
// ErrSessionBusy rather than queued, so the owning request stays
// responsible for its own stream.
func (s *Store) With(id string, fn func(*session.Session) error) error {
	s.mu.RLock()
	e, ok := s.entries[id]
	s.mu.RUnlock()
	if !ok {
		return ErrSessionNotFound
	}

	if !e.mu.TryLock() {
		return ErrSessionBusy
	}
	defer e.mu.Unlock()

	e.touched = time.Now()
	return fn(e.session)
}

// Get returns a consistent snapshot for stream recovery. A session mid
// transition reports busy; the client retries once the owning request
// finishes.
func (s *Store) Get(id string) (session.Snapshot, error) {
	s.mu.RLock()
	e, ok := s.entries[id]
	s.mu.RUnlock()
	if !ok {
		return session.Snapshot{}, ErrSessionNotFound
	}

	if !e.mu.TryLock() {
		return session.Snapshot{}, ErrSessionBusy
	}
	defer e.mu.Unlock()

	return e.session.Snapshot(), nil
}

// Len reports the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// StartEvictor runs the idle-session janitor until ctx is cancelled.
func (s *Store) StartEvictor(ctx context.Context) {
	interval := s.idleTTL / 2
	if interval < time.Second {
		interval = time.Second
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.evictIdle(time.Now())
			}
		}
	}()
}

// evictIdle removes sessions untouched for longer than the idle TTL.
// Entries whose lock is held have a request in flight and are skipped
// until the next sweep.
func (s *Store) evictIdle(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, e := range s.entries {
		if !e.mu.TryLock() {
			continue
		}
		stale := now.Sub(e.touched) > s.idleTTL
		e.mu.Unlock()
		if stale {
			delete(s.entries, id)
			log.Printf("[store] evicted idle session %s", id)
		}
	}
}
