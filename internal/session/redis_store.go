package session

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
)

const KeyPrefix = "mv-user:"

type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Connect abre o cliente a partir de uma URL redis:// e testa a conexão.
func Connect(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

func (s *RedisStore) Save(ctx context.Context, key string, id Identity, ttl time.Duration) error {
	data, err := encode(id)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, KeyPrefix+key, data, ttl).Err()
}

func (s *RedisStore) Load(ctx context.Context, key string) (Identity, bool, error) {
	data, err := s.client.Get(ctx, KeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return Identity{}, false, nil
	}
	if err != nil {
		return Identity{}, false, err
	}

	id, ok := decode(data)
	return id, ok, nil
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, KeyPrefix+key).Err()
}
