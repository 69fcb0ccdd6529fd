package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/law-manager/lawauth/internal/core/domain"
)

// SessionStore keeps provider sessions in Redis. Each session lives under
// session:<token> and expires with the session itself.
type SessionStore struct {
	client *redis.Client
	now    func() time.Time
}

func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client, now: time.Now}
}

type sessionRecord struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	ExpiresAt int64  `json:"expires_at"`
	CreatedAt int64  `json:"created_at"`
	IPAddress string `json:"ip_address,omitempty"`
	UserAgent string `json:"user_agent,omitempty"`
}

func encodeSession(s *domain.ProviderSession) ([]byte, error) {
	return json.Marshal(sessionRecord{
		ID:        s.ID,
		UserID:    s.UserID,
		ExpiresAt: s.ExpiresAt.UnixMilli(),
		CreatedAt: s.CreatedAt.UnixMilli(),
		IPAddress: s.IPAddress,
		UserAgent: s.UserAgent,
	})
}

func decodeSession(token string, raw []byte) (*domain.ProviderSession, error) {
	var rec sessionRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, err
	}
	return &domain.ProviderSession{
		ID:        rec.ID,
		Token:     token,
		UserID:    rec.UserID,
		ExpiresAt: time.UnixMilli(rec.ExpiresAt).UTC(),
		CreatedAt: time.UnixMilli(rec.CreatedAt).UTC(),
		IPAddress: rec.IPAddress,
		UserAgent: rec.UserAgent,
	}, nil
}

func (s *SessionStore) Create(ctx context.Context, sess *domain.ProviderSession) error {
	ttl := sess.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return fmt.Errorf("store session: already expired")
	}
	val, err := encodeSession(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.client.Set(ctx, key(sess.Token), val, ttl).Err(); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}

func (s *SessionStore) FindByToken(ctx context.Context, token string) (*domain.ProviderSession, error) {
	raw, err := s.client.Get(ctx, key(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("load session: %w", err)
	}
	sess, err := decodeSession(token, raw)
	if err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return sess, nil
}

func (s *SessionStore) Delete(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, key(token)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func key(token string) string {
	return "session:" + token
}
