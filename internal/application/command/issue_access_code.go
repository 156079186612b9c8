package command

import (
	"context"
	"crypto/rand"
	"encoding/base32"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bivex/school-access/internal/application/dto"
	"github.com/bivex/school-access/internal/domain/entity"
	"github.com/bivex/school-access/internal/domain/repository"
	"github.com/bivex/school-access/internal/infrastructure/logging"
)

var codeEncoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// IssueAccessCodeCommand mints an unused trial code for an admin to
// hand out
type IssueAccessCodeCommand struct {
	codeRepo repository.AccessCodeRepository
	logger   *zap.Logger
}

// NewIssueAccessCodeCommand creates a new issue command
func NewIssueAccessCodeCommand(codeRepo repository.AccessCodeRepository) *IssueAccessCodeCommand {
	return &IssueAccessCodeCommand{
		codeRepo: codeRepo,
		logger:   logging.Logger,
	}
}

// Execute executes the issue command
func (c *IssueAccessCodeCommand) Execute(ctx context.Context, issuedBy uuid.UUID) (*dto.IssueAccessCodeResponse, error) {
	token, err := generateCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate code: %w", err)
	}

	code := entity.NewAccessCode(token, issuedBy)
	if err := c.codeRepo.Create(ctx, code); err != nil {
		return nil, err
	}

	c.logger.Info("access code issued",
		zap.String("code_id", code.ID.String()),
		zap.String("issued_by", issuedBy.String()),
	)

	return &dto.IssueAccessCodeResponse{
		ID:   code.ID.String(),
		Code: code.Code,
	}, nil
}

// generateCode returns a 16-character base32 token from 10 random bytes
func generateCode() (string, error) {
	buf := make([]byte, 10)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return codeEncoding.EncodeToString(buf), nil
}
