package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bivex/school-access/internal/domain/entity"
	domainErrors "github.com/bivex/school-access/internal/domain/errors"
	"github.com/bivex/school-access/internal/domain/repository"
)

type profileRequestRepositoryImpl struct {
	db *pgxpool.Pool
}

// NewProfileRequestRepository creates a new profile request repository implementation
func NewProfileRequestRepository(db *pgxpool.Pool) repository.ProfileRequestRepository {
	return &profileRequestRepositoryImpl{db: db}
}

func (r *profileRequestRepositoryImpl) Create(ctx context.Context, request *entity.ProfileRequest) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO profile_requests (id, school_id, teacher_id, status, message, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		request.ID, request.SchoolID, request.TeacherID, string(request.Status),
		request.Message, request.CreatedAt, request.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create profile request: %w", err)
	}
	return nil
}

func (r *profileRequestRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*entity.ProfileRequest, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, school_id, teacher_id, status, message, created_at, updated_at
		FROM profile_requests WHERE id = $1`,
		id,
	)

	request, err := scanProfileRequest(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("profile request not found: %w", domainErrors.ErrProfileRequestNotFound)
		}
		return nil, fmt.Errorf("failed to get profile request: %w", err)
	}
	return request, nil
}

func (r *profileRequestRepositoryImpl) ListBySchool(ctx context.Context, schoolID uuid.UUID, limit, offset int) ([]*entity.ProfileRequest, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, school_id, teacher_id, status, message, created_at, updated_at
		FROM profile_requests WHERE school_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`,
		schoolID, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list profile requests: %w", err)
	}
	defer rows.Close()

	return collectProfileRequests(rows)
}

func (r *profileRequestRepositoryImpl) List(ctx context.Context, limit, offset int) ([]*entity.ProfileRequest, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, school_id, teacher_id, status, message, created_at, updated_at
		FROM profile_requests
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list profile requests: %w", err)
	}
	defer rows.Close()

	return collectProfileRequests(rows)
}

func (r *profileRequestRepositoryImpl) Update(ctx context.Context, request *entity.ProfileRequest) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE profile_requests SET status = $2, updated_at = $3 WHERE id = $1`,
		request.ID, string(request.Status), request.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update profile request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrProfileRequestNotFound
	}
	return nil
}

func (r *profileRequestRepositoryImpl) CountPending(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM profile_requests WHERE status = $1`,
		string(entity.RequestPending),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count pending requests: %w", err)
	}
	return count, nil
}

func collectProfileRequests(rows pgx.Rows) ([]*entity.ProfileRequest, error) {
	var requests []*entity.ProfileRequest
	for rows.Next() {
		request, err := scanProfileRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan profile request: %w", err)
		}
		requests = append(requests, request)
	}
	return requests, rows.Err()
}

func scanProfileRequest(row pgx.Row) (*entity.ProfileRequest, error) {
	var request entity.ProfileRequest
	var status string
	if err := row.Scan(
		&request.ID, &request.SchoolID, &request.TeacherID, &status,
		&request.Message, &request.CreatedAt, &request.UpdatedAt,
	); err != nil {
		return nil, err
	}
	request.Status = entity.ProfileRequestStatus(status)
	return &request, nil
}
