package command

import (
	"context"
	"fmt"

	"github.com/bivex/school-access/internal/application/dto"
	appMiddleware "github.com/bivex/school-access/internal/application/middleware"
	"github.com/bivex/school-access/internal/domain/entity"
	domainErrors "github.com/bivex/school-access/internal/domain/errors"
	"github.com/bivex/school-access/internal/domain/repository"
	"github.com/bivex/school-access/internal/domain/valueobject"
)

// RegisterSchoolCommand handles school account registration
type RegisterSchoolCommand struct {
	schoolRepo    repository.SchoolRepository
	jwtMiddleware *appMiddleware.JWTMiddleware
}

// NewRegisterSchoolCommand creates a new register command
func NewRegisterSchoolCommand(schoolRepo repository.SchoolRepository, jwtMiddleware *appMiddleware.JWTMiddleware) *RegisterSchoolCommand {
	return &RegisterSchoolCommand{
		schoolRepo:    schoolRepo,
		jwtMiddleware: jwtMiddleware,
	}
}

// Execute executes the register command
func (c *RegisterSchoolCommand) Execute(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	exists, err := c.schoolRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check account existence: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("%w: email already registered", domainErrors.ErrSchoolAlreadyExists)
	}

	hash, err := valueobject.NewPasswordHash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domainErrors.ErrInvalidInput, err)
	}

	school := entity.NewSchool(req.Email, hash, req.Name)
	if err := c.schoolRepo.Create(ctx, school); err != nil {
		return nil, fmt.Errorf("failed to create school: %w", err)
	}

	accessToken, _, err := c.jwtMiddleware.GenerateAccessToken(school.ID.String(), string(school.Role))
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	return &dto.RegisterResponse{
		SchoolID:    school.ID.String(),
		AccessToken: accessToken,
		ExpiresIn:   c.jwtMiddleware.AccessTTLSeconds(),
	}, nil
}
