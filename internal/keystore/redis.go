package keystore

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "recipes:credential"

// Redis stores credentials as plain Redis strings without expiry.
type Redis struct {
	client *redis.Client
}

// NewRedis creates a backend on an existing Redis client
func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

func (r *Redis) key(profile string) string {
	return fmt.Sprintf("%s:%s", redisKeyPrefix, profile)
}

func (r *Redis) Put(ctx context.Context, profile, value string) error {
	// Zero expiration keeps the key until it is overwritten.
	if err := r.client.Set(ctx, r.key(profile), value, 0).Err(); err != nil {
		return fmt.Errorf("failed to save credential to Redis: %w", err)
	}
	return nil
}

func (r *Redis) Fetch(ctx context.Context, profile string) (string, error) {
	value, err := r.client.Get(ctx, r.key(profile)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get credential from Redis: %w", err)
	}
	return value, nil
}
