package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bivex/school-access/internal/domain/entity"
	domainErrors "github.com/bivex/school-access/internal/domain/errors"
	"github.com/bivex/school-access/internal/domain/repository"
)

type accessCodeRepositoryImpl struct {
	db *pgxpool.Pool
}

// NewAccessCodeRepository creates a new access code repository implementation
func NewAccessCodeRepository(db *pgxpool.Pool) repository.AccessCodeRepository {
	return &accessCodeRepositoryImpl{db: db}
}

func (r *accessCodeRepositoryImpl) Create(ctx context.Context, code *entity.AccessCode) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO access_codes (id, code, status, issued_by, school_id, activated_at, revoked_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		code.ID, code.Code, string(code.Status), code.IssuedBy,
		code.SchoolID, code.ActivatedAt, code.RevokedAt, code.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create access code: %w", err)
	}
	return nil
}

func (r *accessCodeRepositoryImpl) GetByCode(ctx context.Context, code string) (*entity.AccessCode, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, code, status, issued_by, school_id, activated_at, revoked_at, created_at
		FROM access_codes
		WHERE code = $1`,
		code,
	)

	ac, err := scanAccessCode(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("access code not found: %w", domainErrors.ErrAccessCodeNotFound)
		}
		return nil, fmt.Errorf("failed to get access code: %w", err)
	}
	return ac, nil
}

// MarkActivated stamps the first redemption. The WHERE clause keeps the
// update conditional on the row still being unused, so when two
// requests race on the same code exactly one succeeds.
func (r *accessCodeRepositoryImpl) MarkActivated(ctx context.Context, id uuid.UUID, schoolID uuid.UUID, activatedAt time.Time) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE access_codes
		SET status = $2, school_id = $3, activated_at = $4
		WHERE id = $1 AND status = $5`,
		id, string(entity.CodeStatusActive), schoolID, activatedAt, string(entity.CodeStatusUnused),
	)
	if err != nil {
		return fmt.Errorf("failed to activate access code: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrAccessCodeConsumed
	}
	return nil
}

func (r *accessCodeRepositoryImpl) Revoke(ctx context.Context, id uuid.UUID, now time.Time) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE access_codes SET status = $2, revoked_at = $3 WHERE id = $1`,
		id, string(entity.CodeStatusRevoked), now,
	)
	if err != nil {
		return fmt.Errorf("failed to revoke access code: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrAccessCodeNotFound
	}
	return nil
}

func (r *accessCodeRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM access_codes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete access code: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrAccessCodeNotFound
	}
	return nil
}

func (r *accessCodeRepositoryImpl) List(ctx context.Context, limit, offset int) ([]*entity.AccessCode, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, code, status, issued_by, school_id, activated_at, revoked_at, created_at
		FROM access_codes
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list access codes: %w", err)
	}
	defer rows.Close()

	var codes []*entity.AccessCode
	for rows.Next() {
		code, err := scanAccessCode(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan access code: %w", err)
		}
		codes = append(codes, code)
	}
	return codes, rows.Err()
}

func (r *accessCodeRepositoryImpl) ExpireLapsed(ctx context.Context, now time.Time) (int64, error) {
	cutoff := now.Add(-entity.AccessCodeValidityWindow)
	tag, err := r.db.Exec(ctx, `
		UPDATE access_codes
		SET status = $2
		WHERE status = $3 AND activated_at IS NOT NULL AND activated_at <= $1`,
		cutoff, string(entity.CodeStatusExpired), string(entity.CodeStatusActive),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to expire lapsed access codes: %w", err)
	}
	return tag.RowsAffected(), nil
}

func scanAccessCode(row pgx.Row) (*entity.AccessCode, error) {
	var code entity.AccessCode
	var status string
	if err := row.Scan(
		&code.ID, &code.Code, &status, &code.IssuedBy,
		&code.SchoolID, &code.ActivatedAt, &code.RevokedAt, &code.CreatedAt,
	); err != nil {
		return nil, err
	}
	code.Status = entity.AccessCodeStatus(status)
	return &code, nil
}
