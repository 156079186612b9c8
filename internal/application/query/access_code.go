package query

import (
	"context"
	"time"

	"github.com/bivex/school-access/internal/application/dto"
	"github.com/bivex/school-access/internal/domain/entity"
	"github.com/bivex/school-access/internal/domain/repository"
)

// AccessCodeQuery serves the admin code listing. Statuses are derived
// at read time, so a lapsed code reads as expired even before the
// sweep catches the stored row up.
type AccessCodeQuery struct {
	codeRepo repository.AccessCodeRepository
	now      func() time.Time
}

// NewAccessCodeQuery creates a new access code query
func NewAccessCodeQuery(codeRepo repository.AccessCodeRepository, now func() time.Time) *AccessCodeQuery {
	if now == nil {
		now = time.Now
	}
	return &AccessCodeQuery{
		codeRepo: codeRepo,
		now:      now,
	}
}

// List returns codes newest first
func (q *AccessCodeQuery) List(ctx context.Context, limit, offset int) ([]*dto.AccessCodeResponse, error) {
	codes, err := q.codeRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	now := q.now()
	out := make([]*dto.AccessCodeResponse, 0, len(codes))
	for _, code := range codes {
		out = append(out, accessCodeToDTO(code, now))
	}
	return out, nil
}

func accessCodeToDTO(code *entity.AccessCode, now time.Time) *dto.AccessCodeResponse {
	resp := &dto.AccessCodeResponse{
		ID:        code.ID.String(),
		Code:      code.Code,
		Status:    string(code.EffectiveStatus(now)),
		CreatedAt: code.CreatedAt.UTC().Format(time.RFC3339),
	}
	if code.SchoolID != nil {
		resp.SchoolID = code.SchoolID.String()
	}
	if code.ActivatedAt != nil {
		resp.ActivatedAt = code.ActivatedAt.UTC().Format(time.RFC3339)
	}
	if exp := code.ExpiresAt(); exp != nil {
		resp.ExpiresAt = exp.UTC().Format(time.RFC3339)
	}
	return resp
}
