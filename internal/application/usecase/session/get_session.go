package session

import (
	"context"

	"github.com/google/uuid"

	"github.com/khoahotran/profile-studio/internal/application/access"
	"github.com/khoahotran/profile-studio/internal/domain/session"
	"github.com/khoahotran/profile-studio/pkg/auth"
)

type GetSessionUseCase struct {
	guard *access.Guard
}

func NewGetSessionUseCase(guard *access.Guard) *GetSessionUseCase {
	return &GetSessionUseCase{guard: guard}
}

type GetSessionInput struct {
	Caller    *auth.Caller
	SessionID uuid.UUID
}

type GetSessionOutput struct {
	Session *session.ProfileSession
}

func (uc *GetSessionUseCase) Execute(ctx context.Context, input GetSessionInput) (*GetSessionOutput, error) {
	ctx, span := tracer.Start(ctx, "GetSession")
	defer span.End()

	caller, err := auth.RequireCaller(input.Caller)
	if err != nil {
		return nil, err
	}
	s, err := uc.guard.Session(ctx, input.SessionID, caller)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return &GetSessionOutput{Session: s}, nil
}
