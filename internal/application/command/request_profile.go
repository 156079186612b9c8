package command

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bivex/school-access/internal/application/dto"
	"github.com/bivex/school-access/internal/domain/entity"
	domainErrors "github.com/bivex/school-access/internal/domain/errors"
	"github.com/bivex/school-access/internal/domain/repository"
	"github.com/bivex/school-access/internal/infrastructure/logging"
)

// RequestProfileCommand files a school's request to contact a teacher.
// The route is subscription-gated, so only schools with access get here.
type RequestProfileCommand struct {
	requestRepo repository.ProfileRequestRepository
	teacherRepo repository.TeacherRepository
	logger      *zap.Logger
}

// NewRequestProfileCommand creates a new request command
func NewRequestProfileCommand(
	requestRepo repository.ProfileRequestRepository,
	teacherRepo repository.TeacherRepository,
) *RequestProfileCommand {
	return &RequestProfileCommand{
		requestRepo: requestRepo,
		teacherRepo: teacherRepo,
		logger:      logging.Logger,
	}
}

// Execute executes the request command
func (c *RequestProfileCommand) Execute(ctx context.Context, schoolID, teacherID uuid.UUID, req *dto.RequestProfileRequest) (*dto.ProfileRequestResponse, error) {
	teacher, err := c.teacherRepo.GetByID(ctx, teacherID)
	if err != nil {
		return nil, err
	}
	if !teacher.IsListed() {
		return nil, domainErrors.ErrTeacherNotFound
	}

	request := entity.NewProfileRequest(schoolID, teacherID, req.Message)
	if err := c.requestRepo.Create(ctx, request); err != nil {
		return nil, fmt.Errorf("failed to create profile request: %w", err)
	}

	c.logger.Info("profile request filed",
		zap.String("school_id", schoolID.String()),
		zap.String("teacher_id", teacherID.String()),
	)

	return profileRequestToDTO(request), nil
}

func profileRequestToDTO(request *entity.ProfileRequest) *dto.ProfileRequestResponse {
	return &dto.ProfileRequestResponse{
		ID:        request.ID.String(),
		SchoolID:  request.SchoolID.String(),
		TeacherID: request.TeacherID.String(),
		Status:    string(request.Status),
		Message:   request.Message,
		CreatedAt: request.CreatedAt.UTC().Format(time.RFC3339),
	}
}
