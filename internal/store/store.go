package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key holds no string value.
var ErrNotFound = errors.New("key not found")

// Store is a flat key-value store with string values, lists and sets.
// Every call is a single round trip and no call spans more than one key
// atomically, except Del which may remove several keys at once.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	// SetNX writes value only if key is absent and reports whether it wrote.
	SetNX(ctx context.Context, key, value string) (bool, error)
	Del(ctx context.Context, keys ...string) error
	Exists(ctx context.Context, key string) (bool, error)
	// Keys returns every key starting with prefix, in no particular order.
	Keys(ctx context.Context, prefix string) ([]string, error)

	SAdd(ctx context.Context, key, member string) error
	SRem(ctx context.Context, key, member string) error
	SMembers(ctx context.Context, key string) ([]string, error)

	RPush(ctx context.Context, key, value string) error
	// LRem removes every occurrence of value from the list.
	LRem(ctx context.Context, key, value string) error
	LRange(ctx context.Context, key string) ([]string, error)

	Ping(ctx context.Context) error
	Close() error
}
