package command

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bivex/school-access/internal/application/dto"
	domainErrors "github.com/bivex/school-access/internal/domain/errors"
	"github.com/bivex/school-access/internal/domain/repository"
	"github.com/bivex/school-access/internal/infrastructure/cache"
	"github.com/bivex/school-access/internal/infrastructure/logging"
)

// CancelSubscriptionCommand cancels a school's current subscription
type CancelSubscriptionCommand struct {
	subscriptionRepo repository.SubscriptionRepository
	statusCache      *cache.StatusCache
	logger           *zap.Logger
	now              func() time.Time
}

// NewCancelSubscriptionCommand creates a new cancel command
func NewCancelSubscriptionCommand(
	subscriptionRepo repository.SubscriptionRepository,
	statusCache *cache.StatusCache,
	now func() time.Time,
) *CancelSubscriptionCommand {
	if now == nil {
		now = time.Now
	}
	return &CancelSubscriptionCommand{
		subscriptionRepo: subscriptionRepo,
		statusCache:      statusCache,
		logger:           logging.Logger,
		now:              now,
	}
}

// Execute executes the cancel command
func (c *CancelSubscriptionCommand) Execute(ctx context.Context, schoolID uuid.UUID, req *dto.CancelSubscriptionRequest) error {
	now := c.now()

	sub, err := c.subscriptionRepo.GetCurrentBySchoolID(ctx, schoolID)
	if err != nil {
		return err
	}
	if !sub.Status.GrantsAccess() {
		return fmt.Errorf("%w: nothing to cancel", domainErrors.ErrSubscriptionNotActive)
	}

	if err := c.subscriptionRepo.Cancel(ctx, sub.ID, req.Reason, now); err != nil {
		return err
	}

	if err := c.statusCache.Invalidate(ctx, schoolID); err != nil {
		c.logger.Warn("failed to invalidate status cache after cancellation",
			zap.String("school_id", schoolID.String()),
			zap.Error(err),
		)
	}

	c.logger.Info("subscription canceled",
		zap.String("school_id", schoolID.String()),
		zap.String("subscription_id", sub.ID.String()),
		zap.String("reason", req.Reason),
	)
	return nil
}
