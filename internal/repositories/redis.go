package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisKeyPrefix namespaces session keys so the database can be shared.
const RedisKeyPrefix = "glass:session:"

// RedisSessionRepository implements [scs.Store] and [scs.CtxStore] on Redis string keys.
type RedisSessionRepository struct {
	client *redis.Client
	prefix string
}

// NewRedisSessionRepository creates a new [RedisSessionRepository] with the given client.
func NewRedisSessionRepository(client *redis.Client) *RedisSessionRepository {
	return &RedisSessionRepository{client: client, prefix: RedisKeyPrefix}
}

func (r *RedisSessionRepository) key(token string) string {
	return r.prefix + token
}

func (r *RedisSessionRepository) Find(token string) ([]byte, bool, error) {
	return r.FindCtx(context.Background(), token)
}

func (r *RedisSessionRepository) Commit(token string, b []byte, expiry time.Time) error {
	return r.CommitCtx(context.Background(), token, b, expiry)
}

func (r *RedisSessionRepository) Delete(token string) error {
	return r.DeleteCtx(context.Background(), token)
}

func (r *RedisSessionRepository) FindCtx(ctx context.Context, token string) ([]byte, bool, error) {
	b, err := r.client.Get(ctx, r.key(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, storeError("find", err)
	}
	return b, true, nil
}

// CommitCtx stores b with a TTL that runs out at expiry. A past expiry deletes the key.
func (r *RedisSessionRepository) CommitCtx(ctx context.Context, token string, b []byte, expiry time.Time) error {
	ttl := time.Until(expiry)
	if ttl <= 0 {
		return r.DeleteCtx(ctx, token)
	}

	if err := r.client.Set(ctx, r.key(token), b, ttl).Err(); err != nil {
		return storeError("commit", err)
	}
	return nil
}

func (r *RedisSessionRepository) DeleteCtx(ctx context.Context, token string) error {
	if err := r.client.Del(ctx, r.key(token)).Err(); err != nil {
		return storeError("delete", err)
	}
	return nil
}

// Ping checks that the server is reachable.
func (r *RedisSessionRepository) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return storeError("ping", err)
	}
	return nil
}
