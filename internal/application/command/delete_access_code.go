package command

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bivex/school-access/internal/domain/repository"
	"github.com/bivex/school-access/internal/infrastructure/logging"
)

// DeleteAccessCodeCommand removes a trial code entirely. Any trial
// subscription the code already granted is untouched; deletion only
// takes the code itself out of circulation.
type DeleteAccessCodeCommand struct {
	codeRepo repository.AccessCodeRepository
	logger   *zap.Logger
}

// NewDeleteAccessCodeCommand creates a new delete command
func NewDeleteAccessCodeCommand(codeRepo repository.AccessCodeRepository) *DeleteAccessCodeCommand {
	return &DeleteAccessCodeCommand{
		codeRepo: codeRepo,
		logger:   logging.Logger,
	}
}

// Execute executes the delete command
func (c *DeleteAccessCodeCommand) Execute(ctx context.Context, id uuid.UUID) error {
	if err := c.codeRepo.Delete(ctx, id); err != nil {
		return err
	}

	c.logger.Info("access code deleted", zap.String("code_id", id.String()))
	return nil
}
