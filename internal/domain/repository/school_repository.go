package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/bivex/school-access/internal/domain/entity"
)

// SchoolRepository defines the interface for account data access
type SchoolRepository interface {
	// Create creates a new school account
	Create(ctx context.Context, school *entity.School) error

	// GetByID retrieves an account by ID
	GetByID(ctx context.Context, id uuid.UUID) (*entity.School, error)

	// GetByEmail retrieves an account by email
	GetByEmail(ctx context.Context, email string) (*entity.School, error)

	// ExistsByEmail checks whether an account with this email exists
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// List returns accounts newest first
	List(ctx context.Context, limit, offset int) ([]*entity.School, error)

	// Count returns the number of non-deleted accounts
	Count(ctx context.Context) (int64, error)
}
