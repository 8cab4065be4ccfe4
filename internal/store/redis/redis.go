package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/dom/unique-nails/internal/store"
	goredis "github.com/redis/go-redis/v9"
)

// scanBatch is the COUNT hint passed to SCAN when iterating a prefix.
const scanBatch = 100

type Store struct {
	client *goredis.Client
}

// New connects to the Redis instance at url. A non-empty token replaces
// the password from the URL, matching hosted KV providers that hand out
// the endpoint and the credential separately.
func New(ctx context.Context, url, token string) (*Store, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	if token != "" {
		opts.Password = token
	}

	client := goredis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return &Store{client: client}, nil
}

// NewFromClient wraps an existing client.
func NewFromClient(client *goredis.Client) *Store {
	return &Store{client: client}
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	v, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, goredis.Nil) {
		return "", store.ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return v, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	return s.client.Set(ctx, key, value, 0).Err()
}

func (s *Store) SetNX(ctx context.Context, key, value string) (bool, error) {
	return s.client.SetNX(ctx, key, value, 0).Result()
}

func (s *Store) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return s.client.Del(ctx, keys...).Err()
}

func (s *Store) Exists(ctx context.Context, key string) (bool, error) {
	n, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Keys walks the keyspace with SCAN so a large store never blocks the
// server the way KEYS would. SCAN may return a key more than once.
func (s *Store) Keys(ctx context.Context, prefix string) ([]string, error) {
	seen := make(map[string]struct{})
	var keys []string

	iter := s.client.Scan(ctx, 0, prefix+"*", scanBatch).Iterator()
	for iter.Next(ctx) {
		k := iter.Val()
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		keys = append(keys, k)
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("scan %q: %w", prefix, err)
	}
	return keys, nil
}

func (s *Store) SAdd(ctx context.Context, key, member string) error {
	return s.client.SAdd(ctx, key, member).Err()
}

func (s *Store) SRem(ctx context.Context, key, member string) error {
	return s.client.SRem(ctx, key, member).Err()
}

func (s *Store) SMembers(ctx context.Context, key string) ([]string, error) {
	return s.client.SMembers(ctx, key).Result()
}

func (s *Store) RPush(ctx context.Context, key, value string) error {
	return s.client.RPush(ctx, key, value).Err()
}

func (s *Store) LRem(ctx context.Context, key, value string) error {
	return s.client.LRem(ctx, key, 0, value).Err()
}

func (s *Store) LRange(ctx context.Context, key string) ([]string, error) {
	return s.client.LRange(ctx, key, 0, -1).Result()
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *Store) Close() error {
	return s.client.Close()
}
