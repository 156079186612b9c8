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
	"github.com/bivex/school-access/internal/domain/valueobject"
)

type schoolRepositoryImpl struct {
	db *pgxpool.Pool
}

// NewSchoolRepository creates a new school repository implementation
func NewSchoolRepository(db *pgxpool.Pool) repository.SchoolRepository {
	return &schoolRepositoryImpl{db: db}
}

func (r *schoolRepositoryImpl) Create(ctx context.Context, school *entity.School) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO schools (id, email, password_hash, name, role, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		school.ID, school.Email, school.PasswordHash.String(), school.Name, string(school.Role), school.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create school: %w", err)
	}
	return nil
}

func (r *schoolRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*entity.School, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, email, password_hash, name, role, created_at, deleted_at
		FROM schools WHERE id = $1 AND deleted_at IS NULL`,
		id,
	)
	return scanSchoolRow(row)
}

func (r *schoolRepositoryImpl) GetByEmail(ctx context.Context, email string) (*entity.School, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, email, password_hash, name, role, created_at, deleted_at
		FROM schools WHERE email = $1 AND deleted_at IS NULL`,
		email,
	)
	return scanSchoolRow(row)
}

func (r *schoolRepositoryImpl) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM schools WHERE email = $1 AND deleted_at IS NULL)`,
		email,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check school existence: %w", err)
	}
	return exists, nil
}

func (r *schoolRepositoryImpl) List(ctx context.Context, limit, offset int) ([]*entity.School, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, email, password_hash, name, role, created_at, deleted_at
		FROM schools WHERE deleted_at IS NULL
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list schools: %w", err)
	}
	defer rows.Close()

	var schools []*entity.School
	for rows.Next() {
		school, err := scanSchool(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan school: %w", err)
		}
		schools = append(schools, school)
	}
	return schools, rows.Err()
}

func (r *schoolRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM schools WHERE deleted_at IS NULL`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count schools: %w", err)
	}
	return count, nil
}

func scanSchoolRow(row pgx.Row) (*entity.School, error) {
	school, err := scanSchool(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("school not found: %w", domainErrors.ErrSchoolNotFound)
		}
		return nil, fmt.Errorf("failed to get school: %w", err)
	}
	return school, nil
}

func scanSchool(row pgx.Row) (*entity.School, error) {
	var school entity.School
	var hash, role string
	if err := row.Scan(
		&school.ID, &school.Email, &hash, &school.Name, &role,
		&school.CreatedAt, &school.DeletedAt,
	); err != nil {
		return nil, err
	}
	school.PasswordHash = valueobject.PasswordHashFromStored(hash)
	school.Role = entity.Role(role)
	return &school, nil
}
