package command

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bivex/school-access/internal/application/dto"
	"github.com/bivex/school-access/internal/domain/entity"
	"github.com/bivex/school-access/internal/domain/repository"
	"github.com/bivex/school-access/internal/infrastructure/logging"
)

// ResolveProfileRequestCommand is the admin decision on a pending
// contact request
type ResolveProfileRequestCommand struct {
	requestRepo repository.ProfileRequestRepository
	logger      *zap.Logger
	now         func() time.Time
}

// NewResolveProfileRequestCommand creates a new resolve command
func NewResolveProfileRequestCommand(requestRepo repository.ProfileRequestRepository, now func() time.Time) *ResolveProfileRequestCommand {
	if now == nil {
		now = time.Now
	}
	return &ResolveProfileRequestCommand{
		requestRepo: requestRepo,
		logger:      logging.Logger,
		now:         now,
	}
}

// Execute executes the resolve command
func (c *ResolveProfileRequestCommand) Execute(ctx context.Context, id uuid.UUID, req *dto.ResolveProfileRequestRequest) (*dto.ProfileRequestResponse, error) {
	request, err := c.requestRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := request.Resolve(entity.ProfileRequestStatus(req.Status), c.now()); err != nil {
		return nil, err
	}

	if err := c.requestRepo.Update(ctx, request); err != nil {
		return nil, err
	}

	c.logger.Info("profile request resolved",
		zap.String("request_id", request.ID.String()),
		zap.String("status", string(request.Status)),
	)
	return profileRequestToDTO(request), nil
}
