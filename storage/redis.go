package storage

import (
	"context"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	perrors "github.com/jrsteele09/go-marketplace-client/internal/errors"
)

// RedisRepo shares the slots between processes, e.g. a BFF fleet serving one user.
type RedisRepo struct {
	client *redis.Client
	cfg    RedisConfig
}

func NewRedis(cfg RedisConfig) (*RedisRepo, error) {
	if cfg.Addr == "" {
		return nil, errors.New("[NewRedis] redis address required")
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Username: cfg.Username,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		_ = client.Close()
		return nil, errors.Wrap(err, "[NewRedis] ping")
	}
	return NewRedisWithClient(client, cfg), nil
}

func NewRedisWithClient(client *redis.Client, cfg RedisConfig) *RedisRepo {
	if cfg.Prefix == "" {
		cfg.Prefix = "portal:session:"
	}
	return &RedisRepo{client: client, cfg: cfg}
}

func (r *RedisRepo) key(k string) string {
	return r.cfg.Prefix + k
}

func (r *RedisRepo) Get(ctx context.Context, key string) (string, error) {
	v, err := r.client.Get(ctx, r.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", perrors.Wrapf(perrors.ErrStorageKeyNotFound, "%s", key)
	}
	if err != nil {
		return "", errors.Wrapf(err, "[RedisRepo.Get] %s", key)
	}
	return v, nil
}

// Set writes the slot. A zero TTL keeps it until Delete.
func (r *RedisRepo) Set(ctx context.Context, key, value string) error {
	return errors.Wrapf(r.client.Set(ctx, r.key(key), value, r.cfg.TTL).Err(), "[RedisRepo.Set] %s", key)
}

func (r *RedisRepo) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = r.key(k)
	}
	return errors.Wrap(r.client.Del(ctx, full...).Err(), "[RedisRepo.Delete]")
}

func (r *RedisRepo) Close() error {
	return r.client.Close()
}
