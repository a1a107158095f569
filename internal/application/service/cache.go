package service

import (
	"context"
	"time"
)

// ListCache stores list results as JSON. A miss returns (false, nil).
// Generation returns 0 for a counter that was never bumped.
type ListCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Generation(ctx context.Context, key string) (int64, error)
	Bump(ctx context.Context, key string) error
}
