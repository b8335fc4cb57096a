package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/suchimauz/dental-clinic-gateway/internal/config"
	"github.com/suchimauz/dental-clinic-gateway/internal/core/domain"
	"github.com/suchimauz/dental-clinic-gateway/internal/core/ports/out"
)

// MemoryStore - серверные сессии в памяти процесса. Шлюз один, стораджа нет,
// поэтому map под мьютексом достаточно; протухшие сессии выметает тикер.
type MemoryStore struct {
	sessions map[uuid.UUID]*domain.SessionUser
	ttl      time.Duration
	mu       sync.RWMutex
	logger   out.LoggerPort
	done     chan struct{}
}

func NewMemoryStore(cfg *config.Config, logger out.LoggerPort) *MemoryStore {
	store := &MemoryStore{
		sessions: make(map[uuid.UUID]*domain.SessionUser),
		ttl:      cfg.SessionTTL(),
		logger:   logger.WithModule("SessionStore"),
		done:     make(chan struct{}),
	}

	go store.sweep()

	return store
}

func (s *MemoryStore) Put(ctx context.Context, user *domain.SessionUser) uuid.UUID {
	sessionID := uuid.New()

	s.mu.Lock()
	defer s.mu.Unlock()

	user.SessionID = sessionID
	s.sessions[sessionID] = user

	s.logger.Debug("session.put", out.LogFields{
		"sessionId": sessionID,
		"email":     user.Email,
	})

	return sessionID
}

func (s *MemoryStore) Get(ctx context.Context, sessionID uuid.UUID) (*domain.SessionUser, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, exists := s.sessions[sessionID]
	if !exists {
		return nil, false
	}

	if time.Since(user.CreatedAt) > s.ttl {
		return nil, false
	}

	return user, true
}

func (s *MemoryStore) Delete(ctx context.Context, sessionID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, sessionID)
}

func (s *MemoryStore) Close() {
	close(s.done)
}

func (s *MemoryStore) sweep() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.mu.Lock()
			for id, user := range s.sessions {
				if time.Since(user.CreatedAt) > s.ttl {
					delete(s.sessions, id)
				}
			}
			s.mu.Unlock()
		}
	}
}
