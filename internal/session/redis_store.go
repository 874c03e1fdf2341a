package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/shopping-lists/internal/utils"
)

// sessionData is the JSON payload stored for each session key.
type sessionData struct {
	UserID    uint64    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// RedisStore keeps sessions in Redis under session:<sha256(token)> with a
// TTL, so any number of API instances can share them.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisStore creates a store from an existing Redis client.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: "session:",
		ttl:    ttlOrDefault(ttl),
	}
}

func (s *RedisStore) key(token string) string {
	return s.prefix + utils.HashToken(token)
}

func (s *RedisStore) Create(ctx context.Context, userID uint64) (string, error) {
	token, err := utils.NewOpaqueToken()
	if err != nil {
		return "", err
	}
	payload, err := json.Marshal(sessionData{UserID: userID, CreatedAt: time.Now().UTC()})
	if err != nil {
		return "", fmt.Errorf("marshal session: %w", err)
	}
	if err := s.client.Set(ctx, s.key(token), payload, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("save session: %w: %w", ErrUnavailable, err)
	}
	return token, nil
}

func (s *RedisStore) Lookup(ctx context.Context, token string) (uint64, error) {
	if token == "" {
		return 0, ErrNotFound
	}
	raw, err := s.client.Get(ctx, s.key(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("lookup session: %w: %w", ErrUnavailable, err)
	}
	var data sessionData
	if err := json.Unmarshal(raw, &data); err != nil || data.UserID == 0 {
		return 0, ErrNotFound
	}
	return data.UserID, nil
}

func (s *RedisStore) Delete(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, s.key(token)).Err(); err != nil {
		return fmt.Errorf("delete session: %w: %w", ErrUnavailable, err)
	}
	return nil
}
