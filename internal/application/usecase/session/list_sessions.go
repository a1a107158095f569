package session

import (
	"context"
	"time"

	"github.com/khoahotran/profile-studio/internal/application/listcache"
	"github.com/khoahotran/profile-studio/internal/application/service"
	"github.com/khoahotran/profile-studio/internal/domain/session"
	"github.com/khoahotran/profile-studio/pkg/auth"
	"github.com/khoahotran/profile-studio/pkg/logger"
)

type ListSessionsUseCase struct {
	sessionRepo session.Repository
	cache       service.ListCache
	cacheTTL    time.Duration
	logger      logger.Logger
}

func NewListSessionsUseCase(repo session.Repository, cache service.ListCache, cacheTTL time.Duration, log logger.Logger) *ListSessionsUseCase {
	return &ListSessionsUseCase{
		sessionRepo: repo,
		cache:       cache,
		cacheTTL:    cacheTTL,
		logger:      log,
	}
}

type ListSessionsInput struct {
	Caller *auth.Caller
}

type ListSessionsOutput struct {
	Items []*session.ProfileSession
	Total int
}

func (uc *ListSessionsUseCase) Execute(ctx context.Context, input ListSessionsInput) (*ListSessionsOutput, error) {
	ctx, span := tracer.Start(ctx, "ListSessions")
	defer span.End()

	caller, err := auth.RequireCaller(input.Caller)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	items, err := listcache.Load(ctx, uc.cache, uc.logger, listcache.SessionsKey(caller.UserID), uc.cacheTTL,
		func(ctx context.Context) ([]*session.ProfileSession, error) {
			return uc.sessionRepo.ListByUser(ctx, caller.UserID)
		})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if items == nil {
		items = []*session.ProfileSession{}
	}
	return &ListSessionsOutput{Items: items, Total: len(items)}, nil
}
