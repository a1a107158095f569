// Package access holds the ownership checks every profile operation goes through.
//
// Ownership of the parent session is the whole access model: a variant is
// reachable only through a session owned by the caller. Lookups that miss for
// any reason, including "exists but belongs to someone else", surface as the
// same NotFound so callers cannot tell other users' records from missing ones.
package access

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/khoahotran/profile-studio/internal/domain/session"
	"github.com/khoahotran/profile-studio/internal/domain/variant"
	"github.com/khoahotran/profile-studio/pkg/apperror"
	"github.com/khoahotran/profile-studio/pkg/auth"
)

const (
	ResourceSession = "profile session"
	ResourceVariant = "bio variant"
)

// Owned runs an owner-scoped lookup and normalises a miss into NotFound for resource/id.
func Owned[T any](ctx context.Context, resource string, id uuid.UUID, lookup func(context.Context) (*T, error)) (*T, error) {
	rec, err := lookup(ctx)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.NewNotFound(resource, id.String())
		}
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			return nil, err
		}
		return nil, apperror.NewInternal("ownership lookup failed", err)
	}
	if rec == nil {
		return nil, apperror.NewNotFound(resource, id.String())
	}
	return rec, nil
}

type Guard struct {
	sessions session.Repository
	variants variant.Repository
}

func NewGuard(sessions session.Repository, variants variant.Repository) *Guard {
	return &Guard{sessions: sessions, variants: variants}
}

// Session resolves a session owned by caller. Caller must already be verified.
func (g *Guard) Session(ctx context.Context, sessionID uuid.UUID, caller *auth.Caller) (*session.ProfileSession, error) {
	return Owned(ctx, ResourceSession, sessionID, func(ctx context.Context) (*session.ProfileSession, error) {
		return g.sessions.FindByID(ctx, sessionID, caller.UserID)
	})
}

// Variant resolves a variant of sessionID where the session is owned by caller.
// Both links are checked by a single store lookup.
func (g *Guard) Variant(ctx context.Context, variantID, sessionID uuid.UUID, caller *auth.Caller) (*variant.BioVariant, error) {
	return Owned(ctx, ResourceVariant, variantID, func(ctx context.Context) (*variant.BioVariant, error) {
		return g.variants.FindOwned(ctx, variantID, sessionID, caller.UserID)
	})
}
