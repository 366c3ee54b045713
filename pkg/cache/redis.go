package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"

	"github.com/raywall/backend-faker/pkg/responder"
)

// RedisClient é o subconjunto do *redis.Client usado pelo store.
type RedisClient interface {
	HGet(ctx context.Context, key, field string) *redis.StringCmd
	HSet(ctx context.Context, key string, values ...interface{}) *redis.IntCmd
	HGetAll(ctx context.Context, key string) *redis.MapStringStringCmd
}

// RedisStore guarda um hash por path (chave prefix+path), com um campo
// por id contendo a resposta em JSON. Permite que várias instâncias do
// servidor compartilhem as mesmas respostas.
type RedisStore struct {
	client RedisClient
	prefix string
}

func NewRedisStore(client RedisClient, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

// NewRedisClient cria o cliente a partir do endereço, senha e banco.
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

func (s *RedisStore) key(path string) string {
	return s.prefix + path
}

func (s *RedisStore) Get(ctx context.Context, path, id string) (*responder.Response, bool, error) {
	val, err := s.client.HGet(ctx, s.key(path), id).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis hget %s: %w", s.key(path), err)
	}

	resp, err := decode(val)
	if err != nil {
		return nil, false, err
	}
	return resp, true, nil
}

func (s *RedisStore) Put(ctx context.Context, path, id string, resp *responder.Response) error {
	raw, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("erro json marshal: %w", err)
	}
	if err := s.client.HSet(ctx, s.key(path), id, string(raw)).Err(); err != nil {
		return fmt.Errorf("redis hset %s: %w", s.key(path), err)
	}
	return nil
}

func (s *RedisStore) List(ctx context.Context, path string) ([]*responder.Response, error) {
	all, err := s.client.HGetAll(ctx, s.key(path)).Result()
	if err != nil {
		return nil, fmt.Errorf("redis hgetall %s: %w", s.key(path), err)
	}

	ids := make([]string, 0, len(all))
	for id := range all {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]*responder.Response, 0, len(ids))
	for _, id := range ids {
		resp, err := decode(all[id])
		if err != nil {
			return nil, err
		}
		out = append(out, resp)
	}
	return out, nil
}

func decode(raw string) (*responder.Response, error) {
	var resp responder.Response
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		return nil, fmt.Errorf("resposta inválida no redis: %w", err)
	}
	return &resp, nil
}
