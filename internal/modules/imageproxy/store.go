// README: Image cache backed by Redis, keyed by backend and prompt digest.
package imageproxy

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/redis/go-redis/v9"
)

const cacheKeyPrefix = "imageproxy:"

type Store struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewStore(redis *redis.Client, ttl time.Duration) *Store {
	return &Store{redis: redis, ttl: ttl}
}

// Get returns the cached locator for prompt, and whether one was found.
func (s *Store) Get(ctx context.Context, backend Backend, prompt string) (string, bool, error) {
	val, err := s.redis.Get(ctx, cacheKey(backend, prompt)).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (s *Store) Put(ctx context.Context, backend Backend, prompt, url string) error {
	return s.redis.Set(ctx, cacheKey(backend, prompt), url, s.ttl).Err()
}

func cacheKey(backend Backend, prompt string) string {
	sum := sha256.Sum256([]byte(prompt))
	return cacheKeyPrefix + string(backend) + ":" + hex.EncodeToString(sum[:])
}
