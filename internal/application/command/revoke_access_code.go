package command

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bivex/school-access/internal/domain/repository"
	"github.com/bivex/school-access/internal/infrastructure/cache"
	"github.com/bivex/school-access/internal/infrastructure/logging"
)

// RevokeAccessCodeCommand terminates a trial code. If the code already
// backed a trial, the cached status view for that school is dropped so
// the next read re-evaluates.
type RevokeAccessCodeCommand struct {
	codeRepo    repository.AccessCodeRepository
	statusCache *cache.StatusCache
	logger      *zap.Logger
	now         func() time.Time
}

// NewRevokeAccessCodeCommand creates a new revoke command
func NewRevokeAccessCodeCommand(
	codeRepo repository.AccessCodeRepository,
	statusCache *cache.StatusCache,
	now func() time.Time,
) *RevokeAccessCodeCommand {
	if now == nil {
		now = time.Now
	}
	return &RevokeAccessCodeCommand{
		codeRepo:    codeRepo,
		statusCache: statusCache,
		logger:      logging.Logger,
		now:         now,
	}
}

// Execute executes the revoke command
func (c *RevokeAccessCodeCommand) Execute(ctx context.Context, codeValue string) error {
	code, err := c.codeRepo.GetByCode(ctx, codeValue)
	if err != nil {
		return err
	}

	if err := c.codeRepo.Revoke(ctx, code.ID, c.now()); err != nil {
		return err
	}

	if code.SchoolID != nil {
		if err := c.statusCache.Invalidate(ctx, *code.SchoolID); err != nil {
			c.logger.Warn("failed to invalidate status cache after revocation",
				zap.String("school_id", code.SchoolID.String()),
				zap.Error(err),
			)
		}
	}

	c.logger.Info("access code revoked", zap.String("code_id", code.ID.String()))
	return nil
}

// ExecuteByID revokes a code by its ID rather than its token
func (c *RevokeAccessCodeCommand) ExecuteByID(ctx context.Context, id uuid.UUID) error {
	return c.codeRepo.Revoke(ctx, id, c.now())
}
