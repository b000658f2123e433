// File: internal/infra/memstore/session.go
package memstore

import (
	"context"
	"sync"

	"vaultvpn-bot/internal/domain"
	"vaultvpn-bot/internal/domain/model"
	"vaultvpn-bot/internal/domain/ports/repository"
)

var _ repository.SessionRepository = (*SessionStore)(nil)

// SessionStore keeps per-chat conversation state in process memory. State is
// deliberately not persisted across restarts.
type SessionStore struct {
	mu    sync.RWMutex
	store map[int64]*model.Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{store: make(map[int64]*model.Session)}
}

func (s *SessionStore) Find(ctx context.Context, chatID int64) (*model.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.store[chatID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *sess
	return &cp, nil
}

func (s *SessionStore) Save(ctx context.Context, chatID int64, sess *model.Session) error {
	if sess == nil {
		return domain.ErrInvalidArgument
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *sess
	s.store[chatID] = &cp
	return nil
}

func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.store)
}
