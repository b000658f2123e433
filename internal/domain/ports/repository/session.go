package repository

import (
	"context"

	"vaultvpn-bot/internal/domain/model"
)

// SessionRepository stores transient per-chat conversation state.
type SessionRepository interface {
	// Find returns domain.ErrNotFound when the chat has no session yet.
	Find(ctx context.Context, chatID int64) (*model.Session, error)
	Save(ctx context.Context, chatID int64, s *model.Session) error
}
