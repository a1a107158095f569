package persistence

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/khoahotran/profile-studio/internal/domain/variant"
	"github.com/khoahotran/profile-studio/pkg/apperror"
	"github.com/khoahotran/profile-studio/pkg/logger"
)

const variantColumns = "id, session_id, variant_label, headline, about_text, tone, length_hint, is_favorite, created_at"

type postgresVariantRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresVariantRepo(db *pgxpool.Pool, logger logger.Logger) variant.Repository {
	return &postgresVariantRepo{db: db, logger: logger}
}

func scanVariant(row pgx.Row) (*variant.BioVariant, error) {
	v := &variant.BioVariant{}
	err := row.Scan(
		&v.ID, &v.SessionID, &v.VariantLabel, &v.Headline,
		&v.AboutText, &v.Tone, &v.LengthHint, &v.IsFavorite, &v.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("bio variant", "")
		}
		return nil, apperror.NewInternal("failed to scan bio variant row", err)
	}
	return v, nil
}

func scanVariants(rows pgx.Rows) ([]*variant.BioVariant, error) {
	defer rows.Close()
	variants := make([]*variant.BioVariant, 0)
	for rows.Next() {
		v, err := scanVariant(rows)
		if err != nil {
			return nil, err
		}
		variants = append(variants, v)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating bio variant rows", err)
	}
	return variants, nil
}

func (r *postgresVariantRepo) Save(ctx context.Context, v *variant.BioVariant) error {
	query := `
		INSERT INTO bio_variants (id, session_id, variant_label, headline, about_text, tone, length_hint, is_favorite, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.Exec(ctx, query,
		v.ID, v.SessionID, v.VariantLabel, v.Headline, v.AboutText,
		v.Tone, v.LengthHint, v.IsFavorite, v.CreatedAt,
	)
	if err != nil {
		switch pgErrorCode(err) {
		case pgForeignKeyViolation:
			return apperror.NewNotFound("profile session", v.SessionID.String())
		case pgUniqueViolation:
			return apperror.NewConflict("bio variant", "id", v.ID.String())
		}
		return apperror.NewInternal("failed to save bio variant", err)
	}
	return nil
}

func (r *postgresVariantRepo) FindOwned(ctx context.Context, id, sessionID, userID uuid.UUID) (*variant.BioVariant, error) {
	query := `
		SELECT v.id, v.session_id, v.variant_label, v.headline, v.about_text, v.tone, v.length_hint, v.is_favorite, v.created_at
		FROM bio_variants v
		JOIN profile_sessions s ON s.id = v.session_id
		WHERE v.id = $1 AND v.session_id = $2 AND s.user_id = $3
	`
	row := r.db.QueryRow(ctx, query, id, sessionID, userID)
	return scanVariant(row)
}

func (r *postgresVariantRepo) Update(ctx context.Context, id, sessionID, userID uuid.UUID, patch variant.Patch) (*variant.BioVariant, error) {
	set := variantPatchColumns(patch)

	sql, args, err := psql.Update("bio_variants").
		SetMap(set).
		Where(sq.Eq{"id": id, "session_id": sessionID}).
		Where("session_id IN (SELECT id FROM profile_sessions WHERE user_id = ?)", userID).
		Suffix("RETURNING " + variantColumns).
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build bio variant update", err)
	}

	v, err := scanVariant(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.NewNotFound("bio variant", id.String())
		}
		return nil, err
	}
	return v, nil
}

func (r *postgresVariantRepo) ListBySession(ctx context.Context, sessionID uuid.UUID, favoritesOnly bool) ([]*variant.BioVariant, error) {
	where := sq.Eq{"session_id": sessionID}
	if favoritesOnly {
		where["is_favorite"] = true
	}

	sql, args, err := psql.Select(variantColumns).
		From("bio_variants").
		Where(where).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build list bio variants query", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, apperror.NewInternal("failed to query bio variants by session", err)
	}
	return scanVariants(rows)
}

func variantPatchColumns(p variant.Patch) map[string]any {
	set := map[string]any{}
	putText(set, "variant_label", p.VariantLabel)
	putText(set, "headline", p.Headline)
	putText(set, "tone", p.Tone)
	putText(set, "length_hint", p.LengthHint)
	if text, err := p.AboutText.Get(); err == nil {
		set["about_text"] = text
	}
	if fav, err := p.IsFavorite.Get(); err == nil {
		set["is_favorite"] = fav
	}
	return set
}
