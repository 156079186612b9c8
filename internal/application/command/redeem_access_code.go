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
	"github.com/bivex/school-access/internal/domain/evaluator"
	"github.com/bivex/school-access/internal/domain/repository"
	"github.com/bivex/school-access/internal/infrastructure/cache"
	"github.com/bivex/school-access/internal/infrastructure/logging"
	"github.com/bivex/school-access/internal/infrastructure/metrics"
)

// RedeemAccessCodeCommand redeems a trial code for a 24-hour trial
// subscription. First redemption wins: the activation is a conditional
// update, so concurrent requests on the same code resolve to exactly
// one trial.
type RedeemAccessCodeCommand struct {
	codeRepo         repository.AccessCodeRepository
	subscriptionRepo repository.SubscriptionRepository
	statusCache      *cache.StatusCache
	logger           *zap.Logger
	now              func() time.Time
}

// NewRedeemAccessCodeCommand creates a new redeem command
func NewRedeemAccessCodeCommand(
	codeRepo repository.AccessCodeRepository,
	subscriptionRepo repository.SubscriptionRepository,
	statusCache *cache.StatusCache,
	now func() time.Time,
) *RedeemAccessCodeCommand {
	if now == nil {
		now = time.Now
	}
	return &RedeemAccessCodeCommand{
		codeRepo:         codeRepo,
		subscriptionRepo: subscriptionRepo,
		statusCache:      statusCache,
		logger:           logging.Logger,
		now:              now,
	}
}

// Execute executes the redeem command
func (c *RedeemAccessCodeCommand) Execute(ctx context.Context, schoolID uuid.UUID, req *dto.RedeemAccessCodeRequest) (*dto.RedeemAccessCodeResponse, error) {
	now := c.now()

	code, err := c.codeRepo.GetByCode(ctx, req.Code)
	if err != nil {
		metrics.CodeRedemptions.WithLabelValues("not_found").Inc()
		return nil, err
	}

	// A school already holding access has nothing to gain from a trial
	current, err := c.subscriptionRepo.GetCurrentBySchoolID(ctx, schoolID)
	if err != nil && !errors.Is(err, domainErrors.ErrSubscriptionNotFound) {
		return nil, fmt.Errorf("failed to load current subscription: %w", err)
	}
	if current != nil && current.IsCurrent(now) {
		metrics.CodeRedemptions.WithLabelValues("already_subscribed").Inc()
		return nil, fmt.Errorf("%w: school already has access", domainErrors.ErrActiveSubscriptionExists)
	}

	if err := code.Redeem(schoolID, now); err != nil {
		metrics.CodeRedemptions.WithLabelValues(redeemOutcome(err)).Inc()
		return nil, err
	}

	if err := c.codeRepo.MarkActivated(ctx, code.ID, schoolID, now); err != nil {
		metrics.CodeRedemptions.WithLabelValues(redeemOutcome(err)).Inc()
		return nil, err
	}

	trial := entity.NewTrialSubscription(schoolID, now, entity.AccessCodeValidityWindow)
	if err := c.subscriptionRepo.Create(ctx, trial); err != nil {
		return nil, fmt.Errorf("failed to create trial subscription: %w", err)
	}

	if err := c.statusCache.Invalidate(ctx, schoolID); err != nil {
		c.logger.Warn("failed to invalidate status cache after redemption",
			zap.String("school_id", schoolID.String()),
			zap.Error(err),
		)
	}

	metrics.CodeRedemptions.WithLabelValues("redeemed").Inc()
	c.logger.Info("access code redeemed",
		zap.String("school_id", schoolID.String()),
		zap.String("code_id", code.ID.String()),
	)

	return &dto.RedeemAccessCodeResponse{
		ExpiresAt: trial.EndAt.UTC().Format(time.RFC3339),
		View:      evaluator.Evaluate(trial.Snapshot(), now),
	}, nil
}

func redeemOutcome(err error) string {
	switch {
	case errors.Is(err, entity.ErrCodeAlreadyRedeemed), errors.Is(err, domainErrors.ErrAccessCodeConsumed):
		return "already_redeemed"
	case errors.Is(err, entity.ErrCodeRevoked):
		return "revoked"
	case errors.Is(err, entity.ErrCodeExpired):
		return "expired"
	default:
		return "error"
	}
}
