package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"navicampus/internal/config"
	"navicampus/internal/floorplan"
	"navicampus/internal/graph"
)

// Store hands out one Controller per connected client, keyed by an opaque
// session ID. Idle sessions are pruned lazily once their TTL elapses.
type Store struct {
	reg    *floorplan.Registry
	cfg    *config.Config
	graphs *graph.MergedCache
	ttl    time.Duration

	mu       sync.Mutex
	sessions map[string]*entry

	now func() time.Time // swapped in tests
}

type entry struct {
	ctl      *Controller
	lastSeen time.Time
}

// NewStore creates an empty session store.
func NewStore(reg *floorplan.Registry, cfg *config.Config, graphs *graph.MergedCache) *Store {
	ttl := time.Duration(cfg.SessionTTLMinutes) * time.Minute
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Store{
		reg:      reg,
		cfg:      cfg,
		graphs:   graphs,
		ttl:      ttl,
		sessions: make(map[string]*entry),
		now:      time.Now,
	}
}

// Create starts a new session on the given floor and returns its ID.
func (s *Store) Create(startFloor int) (string, *Controller) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked()

	id := uuid.NewString()
	ctl := New(s.reg, s.cfg, s.graphs, startFloor)
	s.sessions[id] = &entry{ctl: ctl, lastSeen: s.now()}
	return id, ctl
}

// Get returns the controller for a session ID and refreshes its TTL.
func (s *Store) Get(id string) (*Controller, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked()

	e, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	e.lastSeen = s.now()
	return e.ctl, true
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *Store) pruneLocked() {
	cutoff := s.now().Add(-s.ttl)
	for id, e := range s.sessions {
		if e.lastSeen.Before(cutoff) {
			delete(s.sessions, id)
		}
	}
}
