package persist

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/Iron-Ham/cerebro/internal/errors"
)

// DefaultRedisPrefix namespaces Cerebro keys in a shared Redis.
const DefaultRedisPrefix = "cerebro:"

// RedisStore keeps values as plain Redis strings under prefix+key.
type RedisStore struct {
	client *redis.Client
	prefix string
	owned  bool
}

// NewRedisStore wraps an existing client. The caller keeps ownership of the
// client; Close does not close it.
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

// DialRedis connects to the server described by url (redis://host:port/db)
// and verifies the connection with a PING.
func DialRedis(ctx context.Context, url, prefix string) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to reach redis: %w", err)
	}
	return &RedisStore{client: client, prefix: prefix, owned: true}, nil
}

// Save sets the value for key with no expiry.
func (r *RedisStore) Save(ctx context.Context, key string, data []byte) error {
	if err := r.client.Set(ctx, r.prefix+key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save key %q: %w", key, err)
	}
	return nil
}

// Load returns the value for key.
func (r *RedisStore) Load(ctx context.Context, key string) ([]byte, error) {
	data, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load key %q: %w", key, err)
	}
	return data, nil
}

// Delete removes key.
func (r *RedisStore) Delete(ctx context.Context, key string) error {
	n, err := r.client.Del(ctx, r.prefix+key).Result()
	if err != nil {
		return fmt.Errorf("failed to delete key %q: %w", key, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Close closes the client if the store created it.
func (r *RedisStore) Close() error {
	if !r.owned {
		return nil
	}
	return r.client.Close()
}
