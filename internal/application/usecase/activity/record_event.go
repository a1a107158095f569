package activity

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/khoahotran/profile-studio/internal/domain/activity"
	"github.com/khoahotran/profile-studio/pkg/logger"
)

type RecordEventUseCase struct {
	activityRepo activity.Repository
	logger       logger.Logger
}

func NewRecordEventUseCase(repo activity.Repository, log logger.Logger) *RecordEventUseCase {
	return &RecordEventUseCase{activityRepo: repo, logger: log}
}

// Execute appends e to the activity log. Malformed events are dropped with a warning
// so the consumer can commit past them.
func (uc *RecordEventUseCase) Execute(ctx context.Context, e activity.ProfileEvent) error {
	if !e.EventType.Valid() || e.ID == uuid.Nil || e.UserID == uuid.Nil || e.SessionID == uuid.Nil {
		uc.logger.Warn("Skipping malformed profile event",
			zap.String("event_id", e.ID.String()),
			zap.String("event_type", string(e.EventType)),
		)
		return nil
	}

	if err := uc.activityRepo.Append(ctx, e); err != nil {
		return fmt.Errorf("append activity %s failed: %w", e.ID, err)
	}

	uc.logger.Info("Recorded profile event",
		zap.String("event_id", e.ID.String()),
		zap.String("event_type", string(e.EventType)),
		zap.String("user_id", e.UserID.String()),
	)
	return nil
}
