package session

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/verte-zerg/scramble/internal/engine"
)

// ErrNotFound is returned for unknown session ids.
var ErrNotFound = errors.New("session not found")

type entry struct {
	mu sync.Mutex
	s  *Session

	// lastUsed is unix nanoseconds of the latest access.
	lastUsed atomic.Int64
}

func (e *entry) touch(now time.Time) {
	e.lastUsed.Store(now.UnixNano())
}

// Registry holds many independent sessions sharing one provider. Each
// session is mutated by one caller at a time; sessions never share state.
// Idle sessions are dropped by Sweep.
type Registry struct {
	provider Provider
	lang     string
	opts     []Option

	now func() time.Time

	mu       sync.RWMutex
	sessions map[string]*entry
}

// NewRegistry returns an empty registry. opts apply to every session.
func NewRegistry(provider Provider, lang string, opts ...Option) *Registry {
	return &Registry{
		provider: provider,
		lang:     lang,
		opts:     opts,
		now:      time.Now,
		sessions: make(map[string]*entry),
	}
}

// Create starts a new session and returns its id.
func (r *Registry) Create() (string, Snapshot, error) {
	s := New(r.provider, r.lang, r.opts...)
	if err := s.Start(); err != nil {
		return "", Snapshot{}, err
	}
	id := uuid.NewString()
	e := &entry{s: s}
	e.touch(r.now())
	r.mu.Lock()
	r.sessions[id] = e
	r.mu.Unlock()
	return id, s.Snapshot(), nil
}

// Submit evaluates raw in the session id.
func (r *Registry) Submit(id, raw string) (engine.Result, Snapshot, error) {
	e, err := r.lookup(id)
	if err != nil {
		return engine.Result{}, Snapshot{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	res, err := e.s.Submit(raw)
	if err != nil {
		return engine.Result{}, Snapshot{}, err
	}
	return res, e.s.Snapshot(), nil
}

// Restart picks a new root word for the session id.
func (r *Registry) Restart(id string) (Snapshot, error) {
	e, err := r.lookup(id)
	if err != nil {
		return Snapshot{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.s.Restart(); err != nil {
		return Snapshot{}, err
	}
	return e.s.Snapshot(), nil
}

// Get returns the current state of the session id.
func (r *Registry) Get(id string) (Snapshot, error) {
	e, err := r.lookup(id)
	if err != nil {
		return Snapshot{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.s.Snapshot(), nil
}

// Delete forgets the session id.
func (r *Registry) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return ErrNotFound
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

func (r *Registry) lookup(id string) (*entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	e.touch(r.now())
	return e, nil
}

// Sweep forgets sessions not accessed for longer than maxIdle and returns
// how many were removed. A non-positive maxIdle removes nothing.
func (r *Registry) Sweep(maxIdle time.Duration) int {
	if maxIdle <= 0 {
		return 0
	}
	cutoff := r.now().Add(-maxIdle).UnixNano()
	r.mu.Lock()
	defer r.mu.Unlock()
	removed := 0
	for id, e := range r.sessions {
		if e.lastUsed.Load() < cutoff {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed
}
