package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/eld-planner/backend/internal/domain"
)

// Registry holds the live sessions of every client, keyed by a random id.
type Registry struct {
	deps Deps

	mu       sync.RWMutex
	sessions map[uuid.UUID]*Controller
}

// NewRegistry returns an empty Registry whose sessions share deps.
func NewRegistry(deps Deps) *Registry {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &Registry{
		deps:     deps,
		sessions: make(map[uuid.UUID]*Controller),
	}
}

// Create starts a session and loads its locations. The session is only
// registered when loading succeeds.
func (r *Registry) Create(ctx context.Context) (uuid.UUID, *Controller, error) {
	c := NewController(r.deps)
	if err := c.LoadLocations(ctx); err != nil {
		return uuid.Nil, nil, fmt.Errorf("session.Registry.Create: %w", err)
	}

	id := uuid.New()
	r.mu.Lock()
	r.sessions[id] = c
	r.mu.Unlock()
	return id, c, nil
}

// Get returns the session with the given id or domain.ErrNotFound.
func (r *Registry) Get(id uuid.UUID) (*Controller, error) {
	r.mu.RLock()
	c, ok := r.sessions[id]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("session.Registry.Get: session %s: %w", id, domain.ErrNotFound)
	}
	return c, nil
}

// Delete ends a session. Deleting an unknown id returns domain.ErrNotFound.
func (r *Registry) Delete(id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return fmt.Errorf("session.Registry.Delete: session %s: %w", id, domain.ErrNotFound)
	}
	delete(r.sessions, id)
	return nil
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Sweep removes sessions unused for longer than idle and returns how many
// it removed. Sessions with a submission in flight are kept.
func (r *Registry) Sweep(idle time.Duration) int {
	cutoff := r.deps.Now().Add(-idle)

	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for id, c := range r.sessions {
		if c.State().Busy() || c.LastActive().After(cutoff) {
			continue
		}
		delete(r.sessions, id)
		n++
	}
	return n
}

// RunSweeper calls Sweep every interval until ctx is done.
func (r *Registry) RunSweeper(ctx context.Context, interval, idle time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := r.Sweep(idle); n > 0 {
				slog.Info("expired idle sessions", "count", n, "remaining", r.Len())
			}
		}
	}
}
