package persistence

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/khoahotran/profile-studio/internal/domain/activity"
	"github.com/khoahotran/profile-studio/pkg/apperror"
	"github.com/khoahotran/profile-studio/pkg/logger"
)

type postgresActivityRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresActivityRepo(db *pgxpool.Pool, logger logger.Logger) activity.Repository {
	return &postgresActivityRepo{db: db, logger: logger}
}

func (r *postgresActivityRepo) Append(ctx context.Context, e activity.ProfileEvent) error {
	query := `
		INSERT INTO activity_log (id, event_type, user_id, session_id, variant_id, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO NOTHING
	`
	tag, err := r.db.Exec(ctx, query, e.ID, string(e.EventType), e.UserID, e.SessionID, e.VariantID, e.OccurredAt)
	if err != nil {
		return apperror.NewInternal("failed to append activity", err)
	}
	if tag.RowsAffected() == 0 {
		r.logger.Debug("Activity already recorded", zap.String("event_id", e.ID.String()))
	}
	return nil
}
