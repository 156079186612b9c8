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

type teacherRepositoryImpl struct {
	db *pgxpool.Pool
}

// NewTeacherRepository creates a new teacher repository implementation
func NewTeacherRepository(db *pgxpool.Pool) repository.TeacherRepository {
	return &teacherRepositoryImpl{db: db}
}

func (r *teacherRepositoryImpl) Create(ctx context.Context, teacher *entity.Teacher) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO teachers (id, full_name, subjects, region, experience_years, hourly_rate, bio, visible, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		teacher.ID, teacher.FullName, teacher.Subjects, teacher.Region,
		teacher.ExperienceYears, teacher.HourlyRate, teacher.Bio, teacher.Visible,
		teacher.CreatedAt, teacher.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create teacher: %w", err)
	}
	return nil
}

func (r *teacherRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*entity.Teacher, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, full_name, subjects, region, experience_years, hourly_rate, bio, visible, created_at, updated_at, deleted_at
		FROM teachers WHERE id = $1 AND deleted_at IS NULL`,
		id,
	)

	teacher, err := scanTeacher(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("teacher not found: %w", domainErrors.ErrTeacherNotFound)
		}
		return nil, fmt.Errorf("failed to get teacher: %w", err)
	}
	return teacher, nil
}

func (r *teacherRepositoryImpl) ListVisible(ctx context.Context, filter repository.TeacherFilter) ([]*entity.Teacher, error) {
	limit := filter.Limit
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, full_name, subjects, region, experience_years, hourly_rate, bio, visible, created_at, updated_at, deleted_at
		FROM teachers
		WHERE visible = TRUE AND deleted_at IS NULL
		  AND ($1 = '' OR $1 = ANY(subjects))
		  AND ($2 = '' OR region = $2)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4`,
		filter.Subject, filter.Region, limit, filter.Offset,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list teachers: %w", err)
	}
	defer rows.Close()

	return collectTeachers(rows)
}

func (r *teacherRepositoryImpl) ListAll(ctx context.Context, limit, offset int) ([]*entity.Teacher, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, full_name, subjects, region, experience_years, hourly_rate, bio, visible, created_at, updated_at, deleted_at
		FROM teachers WHERE deleted_at IS NULL
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list teachers: %w", err)
	}
	defer rows.Close()

	return collectTeachers(rows)
}

func (r *teacherRepositoryImpl) Update(ctx context.Context, teacher *entity.Teacher) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE teachers
		SET full_name = $2, subjects = $3, region = $4, experience_years = $5,
		    hourly_rate = $6, bio = $7, visible = $8, updated_at = now()
		WHERE id = $1 AND deleted_at IS NULL`,
		teacher.ID, teacher.FullName, teacher.Subjects, teacher.Region,
		teacher.ExperienceYears, teacher.HourlyRate, teacher.Bio, teacher.Visible,
	)
	if err != nil {
		return fmt.Errorf("failed to update teacher: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrTeacherNotFound
	}
	return nil
}

func (r *teacherRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE teachers SET deleted_at = now() WHERE id = $1 AND deleted_at IS NULL`,
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete teacher: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrTeacherNotFound
	}
	return nil
}

func (r *teacherRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM teachers WHERE deleted_at IS NULL`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count teachers: %w", err)
	}
	return count, nil
}

func collectTeachers(rows pgx.Rows) ([]*entity.Teacher, error) {
	var teachers []*entity.Teacher
	for rows.Next() {
		teacher, err := scanTeacher(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan teacher: %w", err)
		}
		teachers = append(teachers, teacher)
	}
	return teachers, rows.Err()
}

func scanTeacher(row pgx.Row) (*entity.Teacher, error) {
	var teacher entity.Teacher
	if err := row.Scan(
		&teacher.ID, &teacher.FullName, &teacher.Subjects, &teacher.Region,
		&teacher.ExperienceYears, &teacher.HourlyRate, &teacher.Bio, &teacher.Visible,
		&teacher.CreatedAt, &teacher.UpdatedAt, &teacher.DeletedAt,
	); err != nil {
		return nil, err
	}
	return &teacher, nil
}
