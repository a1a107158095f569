package persistence

import (
	"context"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oapi-codegen/nullable"
	"go.uber.org/zap"

	"github.com/khoahotran/profile-studio/internal/domain/session"
	"github.com/khoahotran/profile-studio/pkg/apperror"
	"github.com/khoahotran/profile-studio/pkg/logger"
)

const sessionColumns = "id, user_id, current_headline, current_about, current_title, industry, location, goals, created_at, updated_at"

type postgresSessionRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresSessionRepo(db *pgxpool.Pool, logger logger.Logger) session.Repository {
	return &postgresSessionRepo{db: db, logger: logger}
}

func scanSession(row pgx.Row) (*session.ProfileSession, error) {
	s := &session.ProfileSession{}
	err := row.Scan(
		&s.ID,
		&s.UserID,
		&s.CurrentHeadline,
		&s.CurrentAbout,
		&s.CurrentTitle,
		&s.Industry,
		&s.Location,
		&s.Goals,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("profile session", "")
		}
		return nil, apperror.NewInternal("failed to scan profile session row", err)
	}
	return s, nil
}

func scanSessions(rows pgx.Rows) ([]*session.ProfileSession, error) {
	defer rows.Close()
	sessions := make([]*session.ProfileSession, 0)
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating profile session rows", err)
	}
	return sessions, nil
}

func (r *postgresSessionRepo) Save(ctx context.Context, s *session.ProfileSession) error {
	query := `
		INSERT INTO profile_sessions (id, user_id, current_headline, current_about, current_title, industry, location, goals, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.db.Exec(ctx, query,
		s.ID, s.UserID, s.CurrentHeadline, s.CurrentAbout, s.CurrentTitle,
		s.Industry, s.Location, s.Goals, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		switch pgErrorCode(err) {
		case pgUniqueViolation:
			return apperror.NewConflict("profile session", "id", s.ID.String())
		case pgForeignKeyViolation:
			return apperror.NewUnauthorized("session owner does not exist", err)
		}
		return apperror.NewInternal("failed to save profile session", err)
	}
	return nil
}

func (r *postgresSessionRepo) FindByID(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*session.ProfileSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM profile_sessions WHERE id = $1 AND user_id = $2`
	row := r.db.QueryRow(ctx, query, id, userID)
	return scanSession(row)
}

// Update writes only the columns present in patch, scoped to the owner, and returns the new row.
func (r *postgresSessionRepo) Update(ctx context.Context, id uuid.UUID, userID uuid.UUID, patch session.Patch, updatedAt time.Time) (*session.ProfileSession, error) {
	set := sessionPatchColumns(patch)
	set["updated_at"] = updatedAt

	sql, args, err := psql.Update("profile_sessions").
		SetMap(set).
		Where(sq.Eq{"id": id, "user_id": userID}).
		Suffix("RETURNING " + sessionColumns).
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build profile session update", err)
	}

	s, err := scanSession(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.NewNotFound("profile session", id.String())
		}
		r.logger.Error("Profile session update failed", err, zap.String("session_id", id.String()))
		return nil, err
	}
	return s, nil
}

func (r *postgresSessionRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*session.ProfileSession, error) {
	sql, args, err := psql.Select(sessionColumns).
		From("profile_sessions").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build list profile sessions query", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, apperror.NewInternal("failed to query profile sessions by user", err)
	}
	return scanSessions(rows)
}

func sessionPatchColumns(p session.Patch) map[string]any {
	set := map[string]any{}
	putText(set, "current_headline", p.CurrentHeadline)
	putText(set, "current_about", p.CurrentAbout)
	putText(set, "current_title", p.CurrentTitle)
	putText(set, "industry", p.Industry)
	putText(set, "location", p.Location)
	putText(set, "goals", p.Goals)
	return set
}

// putText adds column to set when v is present; null maps to SQL NULL.
func putText(set map[string]any, column string, v nullable.Nullable[string]) {
	if !v.IsSpecified() {
		return
	}
	var text *string
	if s, err := v.Get(); err == nil {
		text = &s
	}
	set[column] = text
}
