// Package storetest holds the behaviour every store.Store backend must share.
package storetest

import (
	"context"
	"sort"
	"testing"

	"github.com/dom/unique-nails/internal/store"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Run exercises s. Each subtest works under its own random key prefix so a
// single backend instance can be shared.
func Run(t *testing.T, s store.Store) {
	t.Helper()
	ctx := context.Background()

	ns := func() string { return "t" + uuid.New().String()[:8] + ":" }

	t.Run("get missing key", func(t *testing.T) {
		_, err := s.Get(ctx, ns()+"missing")
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("set then get", func(t *testing.T) {
		k := ns() + "a"
		require.NoError(t, s.Set(ctx, k, "one"))
		require.NoError(t, s.Set(ctx, k, "two"))

		v, err := s.Get(ctx, k)
		require.NoError(t, err)
		assert.Equal(t, "two", v)
	})

	t.Run("setnx writes once", func(t *testing.T) {
		k := ns() + "once"
		ok, err := s.SetNX(ctx, k, "first")
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = s.SetNX(ctx, k, "second")
		require.NoError(t, err)
		assert.False(t, ok)

		v, err := s.Get(ctx, k)
		require.NoError(t, err)
		assert.Equal(t, "first", v)
	})

	t.Run("del is idempotent", func(t *testing.T) {
		p := ns()
		require.NoError(t, s.Set(ctx, p+"x", "1"))
		require.NoError(t, s.RPush(ctx, p+"l", "1"))
		require.NoError(t, s.Del(ctx, p+"x", p+"l", p+"never"))
		require.NoError(t, s.Del(ctx, p+"x"))

		exists, err := s.Exists(ctx, p+"x")
		require.NoError(t, err)
		assert.False(t, exists)

		exists, err = s.Exists(ctx, p+"l")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("keys by prefix", func(t *testing.T) {
		p := ns()
		require.NoError(t, s.Set(ctx, p+"user:1", "a"))
		require.NoError(t, s.Set(ctx, p+"user:2", "b"))
		require.NoError(t, s.Set(ctx, p+"design:1", "c"))
		require.NoError(t, s.SAdd(ctx, p+"user-set", "m"))

		keys, err := s.Keys(ctx, p+"user:")
		require.NoError(t, err)
		sort.Strings(keys)
		assert.Equal(t, []string{p + "user:1", p + "user:2"}, keys)

		keys, err = s.Keys(ctx, p+"user")
		require.NoError(t, err)
		assert.Len(t, keys, 3)
	})

	t.Run("set membership", func(t *testing.T) {
		k := ns() + "set"
		require.NoError(t, s.SAdd(ctx, k, "a"))
		require.NoError(t, s.SAdd(ctx, k, "a"))
		require.NoError(t, s.SAdd(ctx, k, "b"))

		members, err := s.SMembers(ctx, k)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"a", "b"}, members)

		require.NoError(t, s.SRem(ctx, k, "a"))
		require.NoError(t, s.SRem(ctx, k, "zzz"))
		members, err = s.SMembers(ctx, k)
		require.NoError(t, err)
		assert.Equal(t, []string{"b"}, members)
	})

	t.Run("list order and removal", func(t *testing.T) {
		k := ns() + "list"
		for _, v := range []string{"a", "b", "a", "c"} {
			require.NoError(t, s.RPush(ctx, k, v))
		}

		values, err := s.LRange(ctx, k)
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b", "a", "c"}, values)

		require.NoError(t, s.LRem(ctx, k, "a"))
		values, err = s.LRange(ctx, k)
		require.NoError(t, err)
		assert.Equal(t, []string{"b", "c"}, values)
	})

	t.Run("empty collections", func(t *testing.T) {
		p := ns()
		members, err := s.SMembers(ctx, p+"none")
		require.NoError(t, err)
		assert.Empty(t, members)

		values, err := s.LRange(ctx, p+"none")
		require.NoError(t, err)
		assert.Empty(t, values)
	})

	t.Run("ping", func(t *testing.T) {
		assert.NoError(t, s.Ping(ctx))
	})
}
