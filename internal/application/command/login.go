package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/bivex/school-access/internal/application/dto"
	appMiddleware "github.com/bivex/school-access/internal/application/middleware"
	domainErrors "github.com/bivex/school-access/internal/domain/errors"
	"github.com/bivex/school-access/internal/domain/repository"
)

// LoginCommand handles credential login for school accounts
type LoginCommand struct {
	schoolRepo    repository.SchoolRepository
	jwtMiddleware *appMiddleware.JWTMiddleware
}

// NewLoginCommand creates a new login command
func NewLoginCommand(schoolRepo repository.SchoolRepository, jwtMiddleware *appMiddleware.JWTMiddleware) *LoginCommand {
	return &LoginCommand{
		schoolRepo:    schoolRepo,
		jwtMiddleware: jwtMiddleware,
	}
}

// Execute executes the login command. Unknown email and wrong password
// both surface as ErrInvalidCredentials.
func (c *LoginCommand) Execute(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	school, err := c.schoolRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, domainErrors.ErrSchoolNotFound) {
			return nil, domainErrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to load account: %w", err)
	}

	if err := school.PasswordHash.Verify(req.Password); err != nil {
		return nil, domainErrors.ErrInvalidCredentials
	}

	accessToken, _, err := c.jwtMiddleware.GenerateAccessToken(school.ID.String(), string(school.Role))
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	return &dto.LoginResponse{
		SchoolID:    school.ID.String(),
		AccessToken: accessToken,
		ExpiresIn:   c.jwtMiddleware.AccessTTLSeconds(),
	}, nil
}
