package session

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/khoahotran/profile-studio/internal/application/listcache"
	"github.com/khoahotran/profile-studio/internal/application/service"
	"github.com/khoahotran/profile-studio/internal/domain/activity"
	"github.com/khoahotran/profile-studio/internal/domain/session"
	"github.com/khoahotran/profile-studio/pkg/apperror"
	"github.com/khoahotran/profile-studio/pkg/auth"
	"github.com/khoahotran/profile-studio/pkg/logger"
)

var tracer = otel.Tracer("session_usecase")

type CreateSessionUseCase struct {
	sessionRepo session.Repository
	cache       service.ListCache
	events      service.EventPublisher
	logger      logger.Logger
}

func NewCreateSessionUseCase(repo session.Repository, cache service.ListCache, events service.EventPublisher, log logger.Logger) *CreateSessionUseCase {
	return &CreateSessionUseCase{
		sessionRepo: repo,
		cache:       cache,
		events:      events,
		logger:      log,
	}
}

type CreateSessionInput struct {
	Caller          *auth.Caller
	CurrentHeadline *string
	CurrentAbout    *string
	CurrentTitle    *string
	Industry        *string
	Location        *string
	Goals           *string
}

type CreateSessionOutput struct {
	Session *session.ProfileSession
}

func (uc *CreateSessionUseCase) Execute(ctx context.Context, input CreateSessionInput) (*CreateSessionOutput, error) {
	ctx, span := tracer.Start(ctx, "CreateSession")
	defer span.End()

	caller, err := auth.RequireCaller(input.Caller)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	now := time.Now().UTC().Truncate(session.Precision)
	s := &session.ProfileSession{
		ID:              uuid.New(),
		UserID:          caller.UserID,
		CurrentHeadline: input.CurrentHeadline,
		CurrentAbout:    input.CurrentAbout,
		CurrentTitle:    input.CurrentTitle,
		Industry:        input.Industry,
		Location:        input.Location,
		Goals:           input.Goals,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.Validate(); err != nil {
		return nil, apperror.NewInvalidInput("profile session validation failed", err)
	}

	if err := uc.sessionRepo.Save(ctx, s); err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(attribute.String("session_id", s.ID.String()))

	listcache.Invalidate(ctx, uc.cache, uc.logger, listcache.SessionsScope(caller.UserID))
	service.PublishAsync(uc.events, uc.logger, activity.NewSessionEvent(activity.EventSessionCreated, caller.UserID, s.ID, now))

	uc.logger.Info("Profile session created", zap.String("session_id", s.ID.String()), zap.String("user_id", caller.UserID.String()))
	return &CreateSessionOutput{Session: s}, nil
}
