package activity

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventSessionCreated EventType = "session.created"
	EventSessionUpdated EventType = "session.updated"
	EventVariantAdded   EventType = "variant.added"
	EventVariantUpdated EventType = "variant.updated"
)

// ProfileEvent is published after every successful write.
type ProfileEvent struct {
	ID         uuid.UUID  `json:"id"`
	EventType  EventType  `json:"event_type"`
	UserID     uuid.UUID  `json:"user_id"`
	SessionID  uuid.UUID  `json:"session_id"`
	VariantID  *uuid.UUID `json:"variant_id,omitempty"`
	OccurredAt time.Time  `json:"occurred_at"`
}

func NewSessionEvent(t EventType, userID, sessionID uuid.UUID, at time.Time) ProfileEvent {
	return ProfileEvent{
		ID:         uuid.New(),
		EventType:  t,
		UserID:     userID,
		SessionID:  sessionID,
		OccurredAt: at,
	}
}

func NewVariantEvent(t EventType, userID, sessionID, variantID uuid.UUID, at time.Time) ProfileEvent {
	e := NewSessionEvent(t, userID, sessionID, at)
	e.VariantID = &variantID
	return e
}

func (t EventType) Valid() bool {
	switch t {
	case EventSessionCreated, EventSessionUpdated, EventVariantAdded, EventVariantUpdated:
		return true
	}
	return false
}

type Repository interface {
	// Append is idempotent on the event ID.
	Append(ctx context.Context, e ProfileEvent) error
}
