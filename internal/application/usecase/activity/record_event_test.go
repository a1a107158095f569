package activity

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/profile-studio/internal/domain/activity"
	"github.com/khoahotran/profile-studio/internal/testutil/memstore"
	"github.com/khoahotran/profile-studio/pkg/logger"
)

func TestRecordEvent_AppendsOnce(t *testing.T) {
	store := memstore.New()
	uc := NewRecordEventUseCase(store.Activity(), logger.NewNop())

	e := activity.NewVariantEvent(activity.EventVariantAdded, uuid.New(), uuid.New(), uuid.New(), time.Now().UTC())
	require.NoError(t, uc.Execute(context.Background(), e))
	require.NoError(t, uc.Execute(context.Background(), e))

	events := store.Events()
	require.Len(t, events, 1)
	assert.Equal(t, e.ID, events[0].ID)
	assert.Equal(t, activity.EventVariantAdded, events[0].EventType)
}

func TestRecordEvent_SkipsMalformed(t *testing.T) {
	store := memstore.New()
	uc := NewRecordEventUseCase(store.Activity(), logger.NewNop())

	bad := []activity.ProfileEvent{
		{ID: uuid.New(), EventType: "session.deleted", UserID: uuid.New(), SessionID: uuid.New()},
		{ID: uuid.New(), EventType: activity.EventSessionCreated, SessionID: uuid.New()},
		{EventType: activity.EventSessionCreated, UserID: uuid.New(), SessionID: uuid.New()},
	}
	for _, e := range bad {
		assert.NoError(t, uc.Execute(context.Background(), e))
	}
	assert.Empty(t, store.Events())
	assert.Equal(t, 0, store.Calls())
}
