package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/oapi-codegen/nullable"
)

// ProfileSession is a snapshot of a user's current profile text and goals.
type ProfileSession struct {
	ID              uuid.UUID `json:"id"`
	UserID          uuid.UUID `json:"user_id"`
	CurrentHeadline *string   `json:"current_headline"`
	CurrentAbout    *string   `json:"current_about"`
	CurrentTitle    *string   `json:"current_title"`
	Industry        *string   `json:"industry"`
	Location        *string   `json:"location"`
	Goals           *string   `json:"goals"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

var (
	ErrEmptyPatch   = errors.New("at least one field must be provided")
	ErrMissingOwner = errors.New("session owner is required")
)

func (s *ProfileSession) Validate() error {
	if s.UserID == uuid.Nil {
		return ErrMissingOwner
	}
	return nil
}

// Patch is a sparse update. Omitted fields are left untouched; null clears the column.
type Patch struct {
	CurrentHeadline nullable.Nullable[string]
	CurrentAbout    nullable.Nullable[string]
	CurrentTitle    nullable.Nullable[string]
	Industry        nullable.Nullable[string]
	Location        nullable.Nullable[string]
	Goals           nullable.Nullable[string]
}

func (p Patch) IsEmpty() bool {
	return !p.CurrentHeadline.IsSpecified() &&
		!p.CurrentAbout.IsSpecified() &&
		!p.CurrentTitle.IsSpecified() &&
		!p.Industry.IsSpecified() &&
		!p.Location.IsSpecified() &&
		!p.Goals.IsSpecified()
}

func (p Patch) Validate() error {
	if p.IsEmpty() {
		return ErrEmptyPatch
	}
	return nil
}

// Apply copies the present fields onto s. UpdatedAt is the caller's job.
func (p Patch) Apply(s *ProfileSession) {
	applyField(&s.CurrentHeadline, p.CurrentHeadline)
	applyField(&s.CurrentAbout, p.CurrentAbout)
	applyField(&s.CurrentTitle, p.CurrentTitle)
	applyField(&s.Industry, p.Industry)
	applyField(&s.Location, p.Location)
	applyField(&s.Goals, p.Goals)
}

func applyField(dst **string, v nullable.Nullable[string]) {
	if !v.IsSpecified() {
		return
	}
	var text *string
	if s, err := v.Get(); err == nil {
		text = &s
	}
	*dst = text
}

type Repository interface {
	Save(ctx context.Context, s *ProfileSession) error
	FindByID(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*ProfileSession, error)
	Update(ctx context.Context, id uuid.UUID, userID uuid.UUID, patch Patch, updatedAt time.Time) (*ProfileSession, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*ProfileSession, error)
}

// Timestamp precision matches the store (Postgres timestamptz).
const Precision = time.Microsecond

// NextUpdatedAt returns now, bumped past prev if the clock has not moved at store precision.
func NextUpdatedAt(prev, now time.Time) time.Time {
	now = now.UTC().Truncate(Precision)
	if !now.After(prev) {
		return prev.Add(Precision)
	}
	return now
}
