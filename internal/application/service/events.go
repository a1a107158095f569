package service

import (
	"context"

	"github.com/khoahotran/profile-studio/internal/domain/activity"
)

type EventPublisher interface {
	PublishProfileEvent(ctx context.Context, e activity.ProfileEvent) error
}
