package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/bivex/school-access/internal/domain/entity"
)

// ProfileRequestRepository defines the interface for contact request data access
type ProfileRequestRepository interface {
	// Create stores a new pending request
	Create(ctx context.Context, request *entity.ProfileRequest) error

	// GetByID retrieves a request by ID
	GetByID(ctx context.Context, id uuid.UUID) (*entity.ProfileRequest, error)

	// ListBySchool returns a school's own requests newest first
	ListBySchool(ctx context.Context, schoolID uuid.UUID, limit, offset int) ([]*entity.ProfileRequest, error)

	// List returns all requests newest first (admin)
	List(ctx context.Context, limit, offset int) ([]*entity.ProfileRequest, error)

	// Update persists a resolved request
	Update(ctx context.Context, request *entity.ProfileRequest) error

	// CountPending returns the number of pending requests
	CountPending(ctx context.Context) (int64, error)
}
