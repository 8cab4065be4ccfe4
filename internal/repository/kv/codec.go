package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sort"

	"github.com/dom/unique-nails/internal/domain"
	"github.com/dom/unique-nails/internal/store"
)

func getRecord[T any](ctx context.Context, s store.Store, key string, parse func(string) (*T, error), missing string) (*T, error) {
	data, err := s.Get(ctx, key)
	if errors.Is(err, store.ErrNotFound) {
		return nil, domain.NotFound(missing)
	}
	if err != nil {
		return nil, domain.StoreError("get", key, err)
	}
	v, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}

func putRecord(ctx context.Context, s store.Store, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.Set(ctx, key, string(data)); err != nil {
		return domain.StoreError("set", key, err)
	}
	return nil
}

func deleteKeys(ctx context.Context, s store.Store, keys ...string) error {
	if err := s.Del(ctx, keys...); err != nil {
		return domain.StoreError("del", fmt.Sprint(keys), err)
	}
	return nil
}

// loadAll fetches each key in turn, one round trip at a time. Keys that
// vanished between listing and fetching are skipped, as are records that
// no longer parse.
func loadAll[T any](ctx context.Context, s store.Store, op string, keys []string, parse func(string) (*T, error)) ([]*T, error) {
	sort.Strings(keys)

	out := make([]*T, 0, len(keys))
	for _, key := range keys {
		data, err := s.Get(ctx, key)
		if errors.Is(err, store.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, domain.StoreError("get", key, err)
		}
		v, err := parse(data)
		if err != nil {
			log.Printf("ERROR [%s] skipping %s: %v", op, key, err)
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

func scanKeys(ctx context.Context, s store.Store, prefix string) ([]string, error) {
	keys, err := s.Keys(ctx, prefix)
	if err != nil {
		return nil, domain.StoreError("scan", prefix, err)
	}
	return keys, nil
}
