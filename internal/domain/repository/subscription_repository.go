package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/bivex/school-access/internal/domain/entity"
)

// SubscriptionRepository defines the interface for subscription data access
type SubscriptionRepository interface {
	// Create creates a new subscription
	Create(ctx context.Context, subscription *entity.Subscription) error

	// GetCurrentBySchoolID retrieves the newest non-deleted subscription
	// for a school, regardless of status
	GetCurrentBySchoolID(ctx context.Context, schoolID uuid.UUID) (*entity.Subscription, error)

	// Cancel marks the subscription canceled with the school's reason
	Cancel(ctx context.Context, id uuid.UUID, reason string, now time.Time) error

	// ExpireLapsed flips active/trial rows whose end has passed to
	// expired and returns how many rows changed
	ExpireLapsed(ctx context.Context, now time.Time) (int64, error)

	// CountByStatus returns subscription counts keyed by status
	CountByStatus(ctx context.Context) (map[string]int64, error)
}
