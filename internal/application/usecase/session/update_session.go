package session

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/khoahotran/profile-studio/internal/application/access"
	"github.com/khoahotran/profile-studio/internal/application/listcache"
	"github.com/khoahotran/profile-studio/internal/application/service"
	"github.com/khoahotran/profile-studio/internal/domain/activity"
	"github.com/khoahotran/profile-studio/internal/domain/session"
	"github.com/khoahotran/profile-studio/pkg/apperror"
	"github.com/khoahotran/profile-studio/pkg/auth"
	"github.com/khoahotran/profile-studio/pkg/logger"
)

type UpdateSessionUseCase struct {
	sessionRepo session.Repository
	guard       *access.Guard
	cache       service.ListCache
	events      service.EventPublisher
	logger      logger.Logger
}

func NewUpdateSessionUseCase(repo session.Repository, guard *access.Guard, cache service.ListCache, events service.EventPublisher, log logger.Logger) *UpdateSessionUseCase {
	return &UpdateSessionUseCase{
		sessionRepo: repo,
		guard:       guard,
		cache:       cache,
		events:      events,
		logger:      log,
	}
}

type UpdateSessionInput struct {
	Caller    *auth.Caller
	SessionID uuid.UUID
	Patch     session.Patch
}

type UpdateSessionOutput struct {
	Session *session.ProfileSession
}

func (uc *UpdateSessionUseCase) Execute(ctx context.Context, input UpdateSessionInput) (*UpdateSessionOutput, error) {
	ctx, span := tracer.Start(ctx, "UpdateSession")
	defer span.End()
	span.SetAttributes(attribute.String("session_id", input.SessionID.String()))

	caller, err := auth.RequireCaller(input.Caller)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if input.SessionID == uuid.Nil {
		return nil, apperror.NewInvalidInput("id is required", nil)
	}
	if err := input.Patch.Validate(); err != nil {
		return nil, apperror.NewInvalidInput(err.Error(), err)
	}

	existing, err := uc.guard.Session(ctx, input.SessionID, caller)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	updatedAt := session.NextUpdatedAt(existing.UpdatedAt, time.Now())
	updated, err := uc.sessionRepo.Update(ctx, existing.ID, caller.UserID, input.Patch, updatedAt)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	listcache.Invalidate(ctx, uc.cache, uc.logger, listcache.SessionsScope(caller.UserID))
	service.PublishAsync(uc.events, uc.logger, activity.NewSessionEvent(activity.EventSessionUpdated, caller.UserID, updated.ID, updatedAt))

	return &UpdateSessionOutput{Session: updated}, nil
}
