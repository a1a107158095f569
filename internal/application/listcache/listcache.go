package listcache

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/khoahotran/profile-studio/internal/application/service"
	"github.com/khoahotran/profile-studio/pkg/logger"
)

const bumpAttempts = 3

// Key names one cached view of a list. Writes invalidate a whole Scope at once
// by advancing its generation; entries written under an older generation are never read.
type Key struct {
	Scope string
	View  string
}

func SessionsScope(userID uuid.UUID) string {
	return fmt.Sprintf("profile:sessions:user:%s", userID)
}

func VariantsScope(userID, sessionID uuid.UUID) string {
	return fmt.Sprintf("profile:variants:user:%s:session:%s", userID, sessionID)
}

func SessionsKey(userID uuid.UUID) Key {
	return Key{Scope: SessionsScope(userID), View: "all"}
}

func VariantsKey(userID, sessionID uuid.UUID, favoritesOnly bool) Key {
	return Key{Scope: VariantsScope(userID, sessionID), View: fmt.Sprintf("fav:%t", favoritesOnly)}
}

// GenerationKey is the counter a scope's writes increment.
func GenerationKey(scope string) string {
	return scope + ":gen"
}

// EntryKey is where a view is stored for a given generation of its scope.
func EntryKey(k Key, gen int64) string {
	return fmt.Sprintf("%s:g%d:%s", k.Scope, gen, k.View)
}

// Load returns the cached value for key, or calls load and caches its result.
// The generation is read before the store so a result computed before a
// concurrent write lands on a key no later reader will use.
// Cache failures are logged and never fail the request. A nil cache disables caching.
func Load[T any](ctx context.Context, c service.ListCache, log logger.Logger, key Key, ttl time.Duration, load func(context.Context) (T, error)) (T, error) {
	if c == nil {
		return load(ctx)
	}

	gen, err := c.Generation(ctx, GenerationKey(key.Scope))
	if err != nil {
		log.Warn("List cache generation read failed", zap.String("scope", key.Scope), zap.Error(err))
		return load(ctx)
	}
	entry := EntryKey(key, gen)

	var cached T
	hit, err := c.GetJSON(ctx, entry, &cached)
	if err != nil {
		log.Warn("List cache read failed", zap.String("key", entry), zap.Error(err))
	}
	if hit {
		return cached, nil
	}

	val, err := load(ctx)
	if err != nil {
		return val, err
	}

	if err := c.SetJSON(ctx, entry, val, ttl); err != nil {
		log.Warn("List cache write failed", zap.String("key", entry), zap.Error(err))
	}
	return val, nil
}

// Invalidate advances the generation of every scope. A bump that still fails
// after retrying leaves the old entries live until their TTL and is logged as an error.
func Invalidate(ctx context.Context, c service.ListCache, log logger.Logger, scopes ...string) {
	if c == nil {
		return
	}
	for _, scope := range scopes {
		_, err := backoff.Retry(ctx, func() (struct{}, error) {
			return struct{}{}, c.Bump(ctx, GenerationKey(scope))
		},
			backoff.WithBackOff(backoff.NewConstantBackOff(20*time.Millisecond)),
			backoff.WithMaxTries(bumpAttempts),
		)
		if err != nil {
			log.Error("List cache invalidation failed", err, zap.String("scope", scope))
		}
	}
}
