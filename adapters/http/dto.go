package http

import (
	"time"

	"github.com/oapi-codegen/nullable"

	"github.com/khoahotran/profile-studio/internal/domain/session"
	"github.com/khoahotran/profile-studio/internal/domain/variant"
)

// Profile session DTOs

type CreateSessionRequest struct {
	CurrentHeadline *string `json:"currentHeadline"`
	CurrentAbout    *string `json:"currentAbout"`
	CurrentTitle    *string `json:"currentTitle"`
	Industry        *string `json:"industry"`
	Location        *string `json:"location"`
	Goals           *string `json:"goals"`
}

type UpdateSessionRequest struct {
	CurrentHeadline nullable.Nullable[string] `json:"currentHeadline"`
	CurrentAbout    nullable.Nullable[string] `json:"currentAbout"`
	CurrentTitle    nullable.Nullable[string] `json:"currentTitle"`
	Industry        nullable.Nullable[string] `json:"industry"`
	Location        nullable.Nullable[string] `json:"location"`
	Goals           nullable.Nullable[string] `json:"goals"`
}

func (r *UpdateSessionRequest) ToPatch() session.Patch {
	return session.Patch{
		CurrentHeadline: r.CurrentHeadline,
		CurrentAbout:    r.CurrentAbout,
		CurrentTitle:    r.CurrentTitle,
		Industry:        r.Industry,
		Location:        r.Location,
		Goals:           r.Goals,
	}
}

type SessionDTO struct {
	ID              string    `json:"id"`
	UserID          string    `json:"userId"`
	CurrentHeadline *string   `json:"currentHeadline"`
	CurrentAbout    *string   `json:"currentAbout"`
	CurrentTitle    *string   `json:"currentTitle"`
	Industry        *string   `json:"industry"`
	Location        *string   `json:"location"`
	Goals           *string   `json:"goals"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func ToSessionDTO(s *session.ProfileSession) SessionDTO {
	return SessionDTO{
		ID:              s.ID.String(),
		UserID:          s.UserID.String(),
		CurrentHeadline: s.CurrentHeadline,
		CurrentAbout:    s.CurrentAbout,
		CurrentTitle:    s.CurrentTitle,
		Industry:        s.Industry,
		Location:        s.Location,
		Goals:           s.Goals,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

func ToSessionDTOs(items []*session.ProfileSession) []SessionDTO {
	dtos := make([]SessionDTO, len(items))
	for i, s := range items {
		dtos[i] = ToSessionDTO(s)
	}
	return dtos
}

// Bio variant DTOs

type AddVariantRequest struct {
	VariantLabel *string `json:"variantLabel"`
	Headline     *string `json:"headline"`
	AboutText    string  `json:"aboutText"`
	Tone         *string `json:"tone"`
	LengthHint   *string `json:"lengthHint"`
	IsFavorite   *bool   `json:"isFavorite"`
}

type UpdateVariantRequest struct {
	VariantLabel nullable.Nullable[string] `json:"variantLabel"`
	Headline     nullable.Nullable[string] `json:"headline"`
	AboutText    nullable.Nullable[string] `json:"aboutText"`
	Tone         nullable.Nullable[string] `json:"tone"`
	LengthHint   nullable.Nullable[string] `json:"lengthHint"`
	IsFavorite   nullable.Nullable[bool]   `json:"isFavorite"`
}

func (r *UpdateVariantRequest) ToPatch() variant.Patch {
	return variant.Patch{
		VariantLabel: r.VariantLabel,
		Headline:     r.Headline,
		AboutText:    r.AboutText,
		Tone:         r.Tone,
		LengthHint:   r.LengthHint,
		IsFavorite:   r.IsFavorite,
	}
}

type VariantDTO struct {
	ID           string    `json:"id"`
	SessionID    string    `json:"sessionId"`
	VariantLabel *string   `json:"variantLabel"`
	Headline     *string   `json:"headline"`
	AboutText    string    `json:"aboutText"`
	Tone         *string   `json:"tone"`
	LengthHint   *string   `json:"lengthHint"`
	IsFavorite   bool      `json:"isFavorite"`
	CreatedAt    time.Time `json:"createdAt"`
}

func ToVariantDTO(v *variant.BioVariant) VariantDTO {
	return VariantDTO{
		ID:           v.ID.String(),
		SessionID:    v.SessionID.String(),
		VariantLabel: v.VariantLabel,
		Headline:     v.Headline,
		AboutText:    v.AboutText,
		Tone:         v.Tone,
		LengthHint:   v.LengthHint,
		IsFavorite:   v.IsFavorite,
		CreatedAt:    v.CreatedAt,
	}
}

func ToVariantDTOs(items []*variant.BioVariant) []VariantDTO {
	dtos := make([]VariantDTO, len(items))
	for i, v := range items {
		dtos[i] = ToVariantDTO(v)
	}
	return dtos
}
