// File: internal/infra/redis/session_repo.go
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"vaultvpn-bot/internal/domain"
	"vaultvpn-bot/internal/domain/model"
	"vaultvpn-bot/internal/domain/ports/repository"
)

var _ repository.SessionRepository = (*SessionRepo)(nil)

// SessionRepo keeps per-chat conversation state in Redis so a restart does
// not drop users mid-purchase. Entries expire on their own; an abandoned
// menu never needs cleanup.
type SessionRepo struct {
	client RedisClient
	ttl    time.Duration
}

func NewSessionRepo(client RedisClient, ttl time.Duration) *SessionRepo {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &SessionRepo{client: client, ttl: ttl}
}

func sessionKey(chatID int64) string {
	return fmt.Sprintf("conv_state:%d", chatID)
}

type sessionDoc struct {
	PlanKey string `json:"plan_key,omitempty"`
	Lang    string `json:"lang,omitempty"`
}

func (s *SessionRepo) Find(ctx context.Context, chatID int64) (*model.Session, error) {
	data, err := s.client.Get(ctx, sessionKey(chatID))
	if err != nil {
		if IsNil(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	var doc sessionDoc
	if err := json.Unmarshal([]byte(data), &doc); err != nil {
		return nil, err
	}
	return &model.Session{PlanKey: doc.PlanKey, Lang: doc.Lang}, nil
}

func (s *SessionRepo) Save(ctx context.Context, chatID int64, sess *model.Session) error {
	data, err := json.Marshal(sessionDoc{PlanKey: sess.PlanKey, Lang: sess.Lang})
	if err != nil {
		return err
	}
	return s.client.Set(ctx, sessionKey(chatID), data, s.ttl)
}
