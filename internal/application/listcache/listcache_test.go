package listcache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/profile-studio/internal/testutil/memstore"
	"github.com/khoahotran/profile-studio/pkg/logger"
)

var testKey = Key{Scope: "scope", View: "all"}

func TestLoad_ReadThrough(t *testing.T) {
	ctx := context.Background()
	cache := memstore.NewCache()
	calls := 0
	load := func(context.Context) ([]string, error) {
		calls++
		return []string{"a", "b"}, nil
	}

	for range 3 {
		got, err := Load(ctx, cache, logger.NewNop(), testKey, time.Minute, load)
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, got)
	}
	assert.Equal(t, 1, calls)
	assert.Equal(t, 2, cache.Hits())
}

func TestLoad_NilCacheAlwaysLoads(t *testing.T) {
	calls := 0
	for range 2 {
		_, err := Load(context.Background(), nil, logger.NewNop(), testKey, time.Minute, func(context.Context) (int, error) {
			calls++
			return calls, nil
		})
		require.NoError(t, err)
	}
	assert.Equal(t, 2, calls)
}

func TestLoad_LoaderErrorIsNotCached(t *testing.T) {
	cache := memstore.NewCache()
	boom := errors.New("boom")

	_, err := Load(context.Background(), cache, logger.NewNop(), testKey, time.Minute, func(context.Context) (int, error) {
		return 0, boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, cache.Len())
}

func TestLoad_CacheDownSkipsCaching(t *testing.T) {
	cache := memstore.NewCache()
	cache.Err = errors.New("redis down")

	got, err := Load(context.Background(), cache, logger.NewNop(), testKey, time.Minute, func(context.Context) (int, error) {
		return 7, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 7, got)
	assert.Equal(t, 0, cache.Len())
}

func TestInvalidate_DropsEveryViewOfTheScope(t *testing.T) {
	ctx := context.Background()
	cache := memstore.NewCache()
	log := logger.NewNop()
	user, sess := uuid.New(), uuid.New()
	otherSess := uuid.New()

	version := 1
	load := func(context.Context) (int, error) { return version, nil }
	for _, k := range []Key{VariantsKey(user, sess, false), VariantsKey(user, sess, true), VariantsKey(user, otherSess, false)} {
		_, err := Load(ctx, cache, log, k, time.Minute, load)
		require.NoError(t, err)
	}

	version = 2
	Invalidate(ctx, cache, log, VariantsScope(user, sess))

	for _, fav := range []bool{false, true} {
		got, err := Load(ctx, cache, log, VariantsKey(user, sess, fav), time.Minute, load)
		require.NoError(t, err)
		assert.Equal(t, 2, got)
	}
	got, err := Load(ctx, cache, log, VariantsKey(user, otherSess, false), time.Minute, load)
	require.NoError(t, err)
	assert.Equal(t, 1, got)
}

// A loader that read the store before a write must not leave its result
// behind for readers that arrive after the write.
func TestLoad_ResultFromBeforeInvalidateIsNotServed(t *testing.T) {
	ctx := context.Background()
	cache := memstore.NewCache()
	log := logger.NewNop()

	loaded := make(chan struct{})
	release := make(chan struct{})
	done := make(chan []string)
	go func() {
		got, err := Load(ctx, cache, log, testKey, time.Minute, func(context.Context) ([]string, error) {
			close(loaded)
			<-release
			return []string{"before"}, nil
		})
		assert.NoError(t, err)
		done <- got
	}()

	<-loaded
	Invalidate(ctx, cache, log, testKey.Scope)
	close(release)
	assert.Equal(t, []string{"before"}, <-done)

	got, err := Load(ctx, cache, log, testKey, time.Minute, func(context.Context) ([]string, error) {
		return []string{"after"}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"after"}, got)
}

func TestInvalidate_FailureDoesNotPanic(t *testing.T) {
	cache := memstore.NewCache()
	cache.Err = errors.New("redis down")
	Invalidate(context.Background(), cache, logger.NewNop(), "scope")
	Invalidate(context.Background(), nil, logger.NewNop(), "scope")
}

func TestKeysAreScopedByUser(t *testing.T) {
	sess := uuid.New()
	assert.NotEqual(t, VariantsKey(uuid.New(), sess, false), VariantsKey(uuid.New(), sess, false))
	assert.NotEqual(t, SessionsKey(uuid.New()), SessionsKey(uuid.New()))
	assert.NotEqual(t, EntryKey(testKey, 0), EntryKey(testKey, 1))
}
