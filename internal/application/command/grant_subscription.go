package command

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bivex/school-access/internal/application/dto"
	"github.com/bivex/school-access/internal/domain/entity"
	domainErrors "github.com/bivex/school-access/internal/domain/errors"
	"github.com/bivex/school-access/internal/domain/repository"
	"github.com/bivex/school-access/internal/domain/valueobject"
	"github.com/bivex/school-access/internal/infrastructure/cache"
	"github.com/bivex/school-access/internal/infrastructure/logging"
)

// GrantSubscriptionCommand is the admin operation assigning a plan to a
// school. Monthly and yearly plans default to recurring (no fixed end)
// unless a duration is given; trial_access always gets the 24h window.
type GrantSubscriptionCommand struct {
	subscriptionRepo repository.SubscriptionRepository
	schoolRepo       repository.SchoolRepository
	statusCache      *cache.StatusCache
	logger           *zap.Logger
	now              func() time.Time
}

// NewGrantSubscriptionCommand creates a new grant command
func NewGrantSubscriptionCommand(
	subscriptionRepo repository.SubscriptionRepository,
	schoolRepo repository.SchoolRepository,
	statusCache *cache.StatusCache,
	now func() time.Time,
) *GrantSubscriptionCommand {
	if now == nil {
		now = time.Now
	}
	return &GrantSubscriptionCommand{
		subscriptionRepo: subscriptionRepo,
		schoolRepo:       schoolRepo,
		statusCache:      statusCache,
		logger:           logging.Logger,
		now:              now,
	}
}

// Execute executes the grant command
func (c *GrantSubscriptionCommand) Execute(ctx context.Context, schoolID uuid.UUID, req *dto.GrantSubscriptionRequest) (*dto.SubscriptionResponse, error) {
	plan, err := valueobject.NewPlanType(req.Plan)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domainErrors.ErrInvalidInput, err)
	}

	if _, err := c.schoolRepo.GetByID(ctx, schoolID); err != nil {
		return nil, err
	}

	now := c.now()
	current, err := c.subscriptionRepo.GetCurrentBySchoolID(ctx, schoolID)
	if err != nil && !errors.Is(err, domainErrors.ErrSubscriptionNotFound) {
		return nil, fmt.Errorf("failed to load current subscription: %w", err)
	}
	if current != nil && current.IsCurrent(now) {
		return nil, domainErrors.ErrActiveSubscriptionExists
	}

	var sub *entity.Subscription
	if plan == valueobject.PlanTrialAccess {
		sub = entity.NewTrialSubscription(schoolID, now, entity.AccessCodeValidityWindow)
	} else {
		var endAt *time.Time
		if req.DurationDays > 0 {
			end := now.AddDate(0, 0, req.DurationDays)
			endAt = &end
		}
		sub = entity.NewSubscription(schoolID, plan, now, endAt)
	}

	if err := c.subscriptionRepo.Create(ctx, sub); err != nil {
		return nil, fmt.Errorf("failed to create subscription: %w", err)
	}

	if err := c.statusCache.Invalidate(ctx, schoolID); err != nil {
		c.logger.Warn("failed to invalidate status cache after grant",
			zap.String("school_id", schoolID.String()),
			zap.Error(err),
		)
	}

	c.logger.Info("subscription granted",
		zap.String("school_id", schoolID.String()),
		zap.String("plan", plan.String()),
	)

	return subscriptionToDTO(sub), nil
}

func subscriptionToDTO(sub *entity.Subscription) *dto.SubscriptionResponse {
	resp := &dto.SubscriptionResponse{
		ID:           sub.ID.String(),
		SchoolID:     sub.SchoolID.String(),
		Status:       sub.Status.String(),
		Plan:         sub.Plan.String(),
		CancelReason: sub.CancelReason,
	}
	if sub.StartedAt != nil {
		resp.StartedAt = sub.StartedAt.UTC().Format(time.RFC3339)
	}
	if sub.EndAt != nil {
		resp.EndAt = sub.EndAt.UTC().Format(time.RFC3339)
	}
	return resp
}
