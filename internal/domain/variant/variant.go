package variant

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/oapi-codegen/nullable"
)

// BioVariant is one candidate headline/about text derived from a profile session.
type BioVariant struct {
	ID           uuid.UUID `json:"id"`
	SessionID    uuid.UUID `json:"session_id"`
	VariantLabel *string   `json:"variant_label"`
	Headline     *string   `json:"headline"`
	AboutText    string    `json:"about_text"`
	Tone         *string   `json:"tone"`
	LengthHint   *string   `json:"length_hint"`
	IsFavorite   bool      `json:"is_favorite"`
	CreatedAt    time.Time `json:"created_at"`
}

var (
	ErrAboutTextRequired = errors.New("aboutText is required and must not be empty or whitespace-only")
	ErrFavoriteNull      = errors.New("isFavorite must be a boolean")
	ErrEmptyPatch        = errors.New("at least one field must be provided")
	ErrMissingSession    = errors.New("sessionId is required")
)

func (v *BioVariant) Validate() error {
	if v.SessionID == uuid.Nil {
		return ErrMissingSession
	}
	if strings.TrimSpace(v.AboutText) == "" {
		return ErrAboutTextRequired
	}
	return nil
}

type Patch struct {
	VariantLabel nullable.Nullable[string]
	Headline     nullable.Nullable[string]
	AboutText    nullable.Nullable[string]
	Tone         nullable.Nullable[string]
	LengthHint   nullable.Nullable[string]
	IsFavorite   nullable.Nullable[bool]
}

func (p Patch) IsEmpty() bool {
	return !p.VariantLabel.IsSpecified() &&
		!p.Headline.IsSpecified() &&
		!p.AboutText.IsSpecified() &&
		!p.Tone.IsSpecified() &&
		!p.LengthHint.IsSpecified() &&
		!p.IsFavorite.IsSpecified()
}

func (p Patch) Validate() error {
	if p.IsEmpty() {
		return ErrEmptyPatch
	}
	if p.AboutText.IsSpecified() {
		text, err := p.AboutText.Get()
		if err != nil || strings.TrimSpace(text) == "" {
			return ErrAboutTextRequired
		}
	}
	if p.IsFavorite.IsNull() {
		return ErrFavoriteNull
	}
	return nil
}

// Apply copies the present fields onto v. Call Validate first.
func (p Patch) Apply(v *BioVariant) {
	applyField(&v.VariantLabel, p.VariantLabel)
	applyField(&v.Headline, p.Headline)
	applyField(&v.Tone, p.Tone)
	applyField(&v.LengthHint, p.LengthHint)
	if text, err := p.AboutText.Get(); err == nil {
		v.AboutText = text
	}
	if fav, err := p.IsFavorite.Get(); err == nil {
		v.IsFavorite = fav
	}
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
	Save(ctx context.Context, v *BioVariant) error
	// FindOwned returns the variant only if it belongs to sessionID and that session belongs to userID.
	FindOwned(ctx context.Context, id, sessionID, userID uuid.UUID) (*BioVariant, error)
	Update(ctx context.Context, id, sessionID, userID uuid.UUID, patch Patch) (*BioVariant, error)
	ListBySession(ctx context.Context, sessionID uuid.UUID, favoritesOnly bool) ([]*BioVariant, error)
}
