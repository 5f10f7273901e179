package props

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/tenantkit/pkg/tenant"
)

// defaultKeyPrefix namespaces property hashes in a shared Redis instance.
const defaultKeyPrefix = "props:"

// Redis is a Store keeping one Redis hash per tenant. Isolation comes from
// the tenant ID being baked into the hash key; the store never touches a key
// for one tenant while serving another.
type Redis struct {
	client    *redis.Client
	keyPrefix string
}

// RedisOption configures a Redis store.
type RedisOption func(*Redis)

// WithKeyPrefix overrides the hash key prefix.
func WithKeyPrefix(prefix string) RedisOption {
	return func(r *Redis) {
		if prefix != "" {
			r.keyPrefix = prefix
		}
	}
}

// NewRedis creates a Redis-backed store over an existing client.
func NewRedis(client *redis.Client, opts ...RedisOption) *Redis {
	r := &Redis{
		client:    client,
		keyPrefix: defaultKeyPrefix,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Redis) key(id tenant.ID) string {
	return r.keyPrefix + id.String()
}

func (r *Redis) Get(ctx context.Context, id tenant.ID, name string) (string, bool, error) {
	if name == "" {
		return "", false, ErrEmptyName
	}

	v, err := r.client.HGet(ctx, r.key(id), name).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("props: get %s/%s: %w", id, name, err)
	}
	return v, true, nil
}

func (r *Redis) Set(ctx context.Context, id tenant.ID, name, value string) error {
	if name == "" {
		return ErrEmptyName
	}

	if err := r.client.HSet(ctx, r.key(id), name, value).Err(); err != nil {
		return fmt.Errorf("props: set %s/%s: %w", id, name, err)
	}
	return nil
}

func (r *Redis) Delete(ctx context.Context, id tenant.ID, name string) error {
	if name == "" {
		return ErrEmptyName
	}

	if err := r.client.HDel(ctx, r.key(id), name).Err(); err != nil {
		return fmt.Errorf("props: delete %s/%s: %w", id, name, err)
	}
	return nil
}
