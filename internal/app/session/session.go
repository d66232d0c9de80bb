// Package session keeps one in-memory record per logged-in browser: the
// backend client holding that login's cookies plus the nine state containers.
// Nothing here survives a restart; every entry is rebuildable from the
// backend by logging in again.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/campusgate/student-portal/internal/app/stores"
	"github.com/campusgate/student-portal/internal/backend"
)

// Session is one login's portal-side state.
type Session struct {
	ID        string
	CreatedAt time.Time
	lastSeen  time.Time

	Client *backend.Client
	Stores *stores.Set
}

// Registry maps portal session cookies to sessions. Expiry is checked on
// access; there is no background sweeper.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	proto    *backend.Client
	logger   zerolog.Logger
}

// NewRegistry creates a registry issuing sessions cloned from the prototype
// backend client.
func NewRegistry(proto *backend.Client, ttl time.Duration, logger zerolog.Logger) *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		proto:    proto,
		logger:   logger.With().Str("component", "session").Logger(),
	}
}

// Issue creates a fresh session with its own cookie jar and container set.
func (r *Registry) Issue() *Session {
	now := time.Now()
	client := r.proto.Clone()
	s := &Session{
		ID:        uuid.NewString(),
		CreatedAt: now,
		lastSeen:  now,
		Client:    client,
		Stores:    stores.NewSet(client, r.logger),
	}

	r.mu.Lock()
	r.sessions[s.ID] = s
	r.mu.Unlock()

	r.logger.Debug().Str("sessionId", s.ID).Msg("Session issued")
	return s
}

// Get resolves a session id, refreshing its last-seen time. Expired sessions
// are dropped on the spot and reported as missing.
func (r *Registry) Get(id string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		return nil, false
	}
	if time.Since(s.lastSeen) > r.ttl {
		delete(r.sessions, id)
		r.logger.Debug().Str("sessionId", id).Msg("Session expired")
		return nil, false
	}
	s.lastSeen = time.Now()
	return s, true
}

// Drop removes a session (logout).
func (r *Registry) Drop(id string) {
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()
}

// Len reports the number of live entries, expired ones included until their
// next access.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
