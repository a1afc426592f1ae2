// Package memory provides the in-memory session store
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/proteinempire/ingredients/internal/domain/substitution"
	"github.com/proteinempire/ingredients/internal/ports/outbound"
)

// sessionItem pairs a stored session with its expiry
type sessionItem struct {
	session   *substitution.Session
	expiresAt time.Time
}

// SessionRepository implements an in-memory session store with TTL.
// Every save refreshes the TTL; a background goroutine sweeps expired
// entries.
type SessionRepository struct {
	data  map[uuid.UUID]sessionItem
	mutex sync.RWMutex
	ttl   time.Duration
	stop  chan struct{}
	once  sync.Once
}

// NewSessionRepository creates an in-memory session store. A zero cleanup
// interval defaults to five minutes.
func NewSessionRepository(ttl, cleanupInterval time.Duration) *SessionRepository {
	if cleanupInterval <= 0 {
		cleanupInterval = 5 * time.Minute
	}
	repo := &SessionRepository{
		data: make(map[uuid.UUID]sessionItem),
		ttl:  ttl,
		stop: make(chan struct{}),
	}

	go repo.cleanup(cleanupInterval)

	return repo
}

var _ outbound.SessionRepository = (*SessionRepository)(nil)

// Save stores a session and refreshes its TTL
func (r *SessionRepository) Save(ctx context.Context, id uuid.UUID, session *substitution.Session) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.data[id] = sessionItem{
		session:   session,
		expiresAt: time.Now().Add(r.ttl),
	}
	return nil
}

// Find retrieves a session, or (nil, nil) when unknown or expired
func (r *SessionRepository) Find(ctx context.Context, id uuid.UUID) (*substitution.Session, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	item, exists := r.data[id]
	if !exists || time.Now().After(item.expiresAt) {
		return nil, nil
	}
	return item.session, nil
}

// Delete removes a session; deleting an unknown ID is not an error
func (r *SessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	delete(r.data, id)
	return nil
}

// Len returns the number of stored sessions, expired entries included
func (r *SessionRepository) Len() int {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return len(r.data)
}

// Close stops the cleanup goroutine
func (r *SessionRepository) Close() {
	r.once.Do(func() { close(r.stop) })
}

// cleanup removes expired sessions
func (r *SessionRepository) cleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.mutex.Lock()
			now := time.Now()
			for id, item := range r.data {
				if now.After(item.expiresAt) {
					delete(r.data, id)
				}
			}
			r.mutex.Unlock()
		case <-r.stop:
			return
		}
	}
}
