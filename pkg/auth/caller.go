package auth

import (
	"github.com/google/uuid"

	"github.com/khoahotran/profile-studio/pkg/apperror"
)

// Caller is the authenticated identity a request acts on behalf of.
type Caller struct {
	UserID uuid.UUID
	Email  string
}

// RequireCaller fails with Unauthorized when no identity is present.
// Every use case calls it before touching a repository.
func RequireCaller(c *Caller) (*Caller, error) {
	if c == nil || c.UserID == uuid.Nil {
		return nil, apperror.NewUnauthorized("no authenticated caller in request", nil)
	}
	return c, nil
}
