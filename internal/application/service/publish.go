package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/khoahotran/profile-studio/internal/domain/activity"
	"github.com/khoahotran/profile-studio/pkg/logger"
)

const publishTimeout = 5 * time.Second

// PublishAsync fires e in the background. Failures are logged; the request has already succeeded.
func PublishAsync(pub EventPublisher, log logger.Logger, e activity.ProfileEvent) {
	if pub == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()
		if err := pub.PublishProfileEvent(ctx, e); err != nil {
			log.Error("Failed to publish profile event", err,
				zap.String("event_type", string(e.EventType)),
				zap.String("session_id", e.SessionID.String()),
			)
		}
	}()
}
