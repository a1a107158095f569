package variant

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/khoahotran/profile-studio/internal/application/access"
	"github.com/khoahotran/profile-studio/internal/application/listcache"
	"github.com/khoahotran/profile-studio/internal/application/service"
	"github.com/khoahotran/profile-studio/internal/domain/activity"
	"github.com/khoahotran/profile-studio/internal/domain/session"
	"github.com/khoahotran/profile-studio/internal/domain/variant"
	"github.com/khoahotran/profile-studio/pkg/apperror"
	"github.com/khoahotran/profile-studio/pkg/auth"
	"github.com/khoahotran/profile-studio/pkg/logger"
)

var tracer = otel.Tracer("variant_usecase")

type VariantUseCase struct {
	repo     variant.Repository
	guard    *access.Guard
	cache    service.ListCache
	events   service.EventPublisher
	cacheTTL time.Duration
	logger   logger.Logger
}

func NewVariantUseCase(r variant.Repository, guard *access.Guard, cache service.ListCache, events service.EventPublisher, cacheTTL time.Duration, log logger.Logger) *VariantUseCase {
	return &VariantUseCase{
		repo:     r,
		guard:    guard,
		cache:    cache,
		events:   events,
		cacheTTL: cacheTTL,
		logger:   log,
	}
}

type AddVariantInput struct {
	Caller       *auth.Caller
	SessionID    uuid.UUID
	VariantLabel *string
	Headline     *string
	AboutText    string
	Tone         *string
	LengthHint   *string
	IsFavorite   *bool
}

func (uc *VariantUseCase) AddVariant(ctx context.Context, in AddVariantInput) (*variant.BioVariant, error) {
	ctx, span := tracer.Start(ctx, "AddVariant")
	defer span.End()

	caller, err := auth.RequireCaller(in.Caller)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	v := &variant.BioVariant{
		ID:           uuid.New(),
		SessionID:    in.SessionID,
		VariantLabel: in.VariantLabel,
		Headline:     in.Headline,
		AboutText:    in.AboutText,
		Tone:         in.Tone,
		LengthHint:   in.LengthHint,
		IsFavorite:   in.IsFavorite != nil && *in.IsFavorite,
		CreatedAt:    time.Now().UTC().Truncate(session.Precision),
	}
	if err := v.Validate(); err != nil {
		return nil, apperror.NewInvalidInput(err.Error(), err)
	}

	if _, err := uc.guard.Session(ctx, in.SessionID, caller); err != nil {
		span.RecordError(err)
		return nil, err
	}

	if err := uc.repo.Save(ctx, v); err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(attribute.String("variant_id", v.ID.String()))

	uc.afterWrite(ctx, activity.EventVariantAdded, caller, v)
	return v, nil
}

type UpdateVariantInput struct {
	Caller    *auth.Caller
	VariantID uuid.UUID
	SessionID uuid.UUID
	Patch     variant.Patch
}

func (uc *VariantUseCase) UpdateVariant(ctx context.Context, in UpdateVariantInput) (*variant.BioVariant, error) {
	ctx, span := tracer.Start(ctx, "UpdateVariant")
	defer span.End()

	caller, err := auth.RequireCaller(in.Caller)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if in.VariantID == uuid.Nil {
		return nil, apperror.NewInvalidInput("id is required", nil)
	}
	if in.SessionID == uuid.Nil {
		return nil, apperror.NewInvalidInput(variant.ErrMissingSession.Error(), variant.ErrMissingSession)
	}
	if err := in.Patch.Validate(); err != nil {
		return nil, apperror.NewInvalidInput(err.Error(), err)
	}

	existing, err := uc.guard.Variant(ctx, in.VariantID, in.SessionID, caller)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	updated, err := uc.repo.Update(ctx, existing.ID, existing.SessionID, caller.UserID, in.Patch)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.NewNotFound(access.ResourceVariant, in.VariantID.String())
		}
		span.RecordError(err)
		return nil, err
	}

	uc.afterWrite(ctx, activity.EventVariantUpdated, caller, updated)
	return updated, nil
}

type ListVariantsInput struct {
	Caller        *auth.Caller
	SessionID     uuid.UUID
	FavoritesOnly bool
}

type ListVariantsOutput struct {
	Items []*variant.BioVariant
	Total int
}

func (uc *VariantUseCase) ListVariants(ctx context.Context, in ListVariantsInput) (*ListVariantsOutput, error) {
	ctx, span := tracer.Start(ctx, "ListVariants")
	defer span.End()
	span.SetAttributes(attribute.Bool("favorites_only", in.FavoritesOnly))

	caller, err := auth.RequireCaller(in.Caller)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	if _, err := uc.guard.Session(ctx, in.SessionID, caller); err != nil {
		span.RecordError(err)
		return nil, err
	}

	key := listcache.VariantsKey(caller.UserID, in.SessionID, in.FavoritesOnly)
	items, err := listcache.Load(ctx, uc.cache, uc.logger, key, uc.cacheTTL,
		func(ctx context.Context) ([]*variant.BioVariant, error) {
			return uc.repo.ListBySession(ctx, in.SessionID, in.FavoritesOnly)
		})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if items == nil {
		items = []*variant.BioVariant{}
	}
	return &ListVariantsOutput{Items: items, Total: len(items)}, nil
}

func (uc *VariantUseCase) GetVariant(ctx context.Context, caller *auth.Caller, variantID, sessionID uuid.UUID) (*variant.BioVariant, error) {
	ctx, span := tracer.Start(ctx, "GetVariant")
	defer span.End()

	c, err := auth.RequireCaller(caller)
	if err != nil {
		return nil, err
	}
	return uc.guard.Variant(ctx, variantID, sessionID, c)
}

func (uc *VariantUseCase) afterWrite(ctx context.Context, t activity.EventType, caller *auth.Caller, v *variant.BioVariant) {
	listcache.Invalidate(ctx, uc.cache, uc.logger, listcache.VariantsScope(caller.UserID, v.SessionID))
	service.PublishAsync(uc.events, uc.logger, activity.NewVariantEvent(t, caller.UserID, v.SessionID, v.ID, time.Now().UTC()))
	uc.logger.Info("Bio variant written",
		zap.String("event", string(t)),
		zap.String("variant_id", v.ID.String()),
		zap.String("session_id", v.SessionID.String()),
	)
}
