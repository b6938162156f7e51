package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/learnpath/backend/internal/models"
)

const keyPrefix = "learnpath:session:"

func finalizedKey(id string) string {
	return keyPrefix + id + ":finalized"
}

type redisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a session store in Redis. Idle sessions expire after ttl.
func NewRedisStore(client *redis.Client, ttl time.Duration) *redisStore {
	return &redisStore{
		client: client,
		ttl:    ttl,
	}
}

func (s *redisStore) Initialize(ctx context.Context, ps *models.PlaySession) error {
	prepare(ps, time.Now().UTC())
	return s.Save(ctx, ps)
}

func (s *redisStore) Load(ctx context.Context, userID int, id string) (*models.PlaySession, error) {
	raw, err := s.client.Get(ctx, keyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, models.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var ps models.PlaySession
	if err := json.Unmarshal(raw, &ps); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	if ps.UserID != userID {
		return nil, models.ErrSessionNotFound
	}

	return &ps, nil
}

func (s *redisStore) Save(ctx context.Context, ps *models.PlaySession) error {
	raw, err := json.Marshal(ps)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	if err := s.client.Set(ctx, keyPrefix+ps.ID, raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// MarkFinalized sets a separate marker key with SETNX so that Clear does not reopen the claim
func (s *redisStore) MarkFinalized(ctx context.Context, id string) (bool, error) {
	claimed, err := s.client.SetNX(ctx, finalizedKey(id), 1, s.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to mark session finalized: %w", err)
	}
	return claimed, nil
}

func (s *redisStore) Clear(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, keyPrefix+id).Err(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
