// Package sessionstore holds in-progress wizard sessions between user events.
// Sessions are JSON blobs with a TTL; nothing in the store ever reserves a
// slot, so losing one costs the member a restart and nothing else.
package sessionstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/focus-space/FS-BookingService/internal/wizard"
)

const keyPrefix = "wizard:session:"

// RedisStore keeps wizard sessions in Redis.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

// Get loads and unmarshals a session.
func (s *RedisStore) Get(ctx context.Context, id string) (*wizard.Wizard, error) {
	data, err := s.client.Get(ctx, keyPrefix+id).Result()
	if err == redis.Nil {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get: %v", ErrInternal, err)
	}

	var w wizard.Wizard
	if err := json.Unmarshal([]byte(data), &w); err != nil {
		return nil, fmt.Errorf("%w: Get - unmarshal session: %v", ErrInternal, err)
	}
	return &w, nil
}

// Save marshals and stores a session, refreshing its TTL.
func (s *RedisStore) Save(ctx context.Context, id string, w *wizard.Wizard) error {
	data, err := json.Marshal(w)
	if err != nil {
		return fmt.Errorf("%w: Save - marshal session: %v", ErrInternal, err)
	}
	if err := s.client.Set(ctx, keyPrefix+id, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("%w: Save: %v", ErrInternal, err)
	}
	return nil
}

// Delete removes a session. Deleting an absent session is not an error.
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, keyPrefix+id).Err(); err != nil {
		return fmt.Errorf("%w: Delete: %v", ErrInternal, err)
	}
	return nil
}
