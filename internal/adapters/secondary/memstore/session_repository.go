package memstore

import (
	"context"
	"sync"
	"time"

	"github.com/tcpl/ticket-dashboard-backend/internal/core/domain"
	apperrors "github.com/tcpl/ticket-dashboard-backend/internal/core/errors"
	"github.com/tcpl/ticket-dashboard-backend/internal/core/ports"
)

// SessionRepository is an in-memory session store. Sessions idle past the
// TTL are removed by a background sweep; the reserved default session is
// exempt so the fallback dataset survives for the process lifetime.
type SessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]*domain.Session
	ttl      time.Duration
}

var _ ports.SessionRepository = (*SessionRepository)(nil)

// Config holds session store configuration
type Config struct {
	TTL           time.Duration // How long an idle session is kept; 0 disables expiry
	SweepInterval time.Duration // How often expired sessions are collected
}

// NewSessionRepository creates a new in-memory session store and starts its
// expiry sweep when a TTL is configured.
func NewSessionRepository(cfg Config) *SessionRepository {
	repo := &SessionRepository{
		sessions: make(map[string]*domain.Session),
		ttl:      cfg.TTL,
	}
	if cfg.TTL > 0 && cfg.SweepInterval > 0 {
		go repo.sweep(cfg.SweepInterval)
	}
	return repo
}

// Save stores a session, replacing any previous session with the same id.
func (r *SessionRepository) Save(_ context.Context, session *domain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.ID] = session
	return nil
}

// Get returns a session by id and touches its last-access time. A session
// idle past the TTL that the sweep has not collected yet is removed here and
// reported as expired rather than handed out.
func (r *SessionRepository) Get(_ context.Context, id string) (*domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[id]
	if !ok {
		return nil, apperrors.ErrSessionNotFound
	}
	if r.ttl > 0 && id != domain.DefaultSessionID && time.Since(session.LastAccess) > r.ttl {
		delete(r.sessions, id)
		return nil, apperrors.ErrSessionExpired
	}
	session.LastAccess = time.Now().UTC()
	return session, nil
}

// Delete removes a session. Deleting an unknown id is not an error.
func (r *SessionRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
	return nil
}

// Count returns the number of live sessions.
func (r *SessionRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions), nil
}

// PurgeExpired removes sessions idle past the TTL and returns how many went.
func (r *SessionRepository) PurgeExpired() int {
	if r.ttl <= 0 {
		return 0
	}
	cutoff := time.Now().UTC().Add(-r.ttl)

	r.mu.Lock()
	defer r.mu.Unlock()

	purged := 0
	for id, session := range r.sessions {
		if id == domain.DefaultSessionID {
			continue
		}
		if session.LastAccess.Before(cutoff) {
			delete(r.sessions, id)
			purged++
		}
	}
	return purged
}

// sweep collects expired sessions on a fixed interval.
func (r *SessionRepository) sweep(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		r.PurgeExpired()
	}
}
