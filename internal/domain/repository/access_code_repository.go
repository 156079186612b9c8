package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/bivex/school-access/internal/domain/entity"
)

// AccessCodeRepository defines the interface for trial code data access
type AccessCodeRepository interface {
	// Create stores a freshly issued code
	Create(ctx context.Context, code *entity.AccessCode) error

	// GetByCode retrieves a code by its opaque token
	GetByCode(ctx context.Context, code string) (*entity.AccessCode, error)

	// MarkActivated stamps the first redemption. The update is
	// conditional on the row still being unused, so concurrent
	// redemptions race safely: exactly one wins.
	MarkActivated(ctx context.Context, id uuid.UUID, schoolID uuid.UUID, activatedAt time.Time) error

	// Revoke terminates a code
	Revoke(ctx context.Context, id uuid.UUID, now time.Time) error

	// Delete removes a code entirely
	Delete(ctx context.Context, id uuid.UUID) error

	// List returns codes newest first
	List(ctx context.Context, limit, offset int) ([]*entity.AccessCode, error)

	// ExpireLapsed flips active codes whose 24h window has elapsed to
	// expired and returns how many rows changed
	ExpireLapsed(ctx context.Context, now time.Time) (int64, error)
}
