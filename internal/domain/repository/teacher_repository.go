package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/bivex/school-access/internal/domain/entity"
)

// TeacherFilter narrows school-facing teacher listings
type TeacherFilter struct {
	Subject string
	Region  string
	Limit   int
	Offset  int
}

// TeacherRepository defines the interface for listing data access
type TeacherRepository interface {
	// Create stores a new teacher listing
	Create(ctx context.Context, teacher *entity.Teacher) error

	// GetByID retrieves a teacher by ID
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Teacher, error)

	// ListVisible returns listed teachers matching the filter
	ListVisible(ctx context.Context, filter TeacherFilter) ([]*entity.Teacher, error)

	// ListAll returns all teachers including hidden ones (admin)
	ListAll(ctx context.Context, limit, offset int) ([]*entity.Teacher, error)

	// Update updates a teacher listing
	Update(ctx context.Context, teacher *entity.Teacher) error

	// Delete soft-deletes a teacher listing
	Delete(ctx context.Context, id uuid.UUID) error

	// Count returns the number of non-deleted listings
	Count(ctx context.Context) (int64, error)
}
