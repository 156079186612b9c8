package query

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/bivex/school-access/internal/application/dto"
	"github.com/bivex/school-access/internal/domain/entity"
	"github.com/bivex/school-access/internal/domain/repository"
)

// ProfileRequestQuery serves contact request listings
type ProfileRequestQuery struct {
	requestRepo repository.ProfileRequestRepository
}

// NewProfileRequestQuery creates a new profile request query
func NewProfileRequestQuery(requestRepo repository.ProfileRequestRepository) *ProfileRequestQuery {
	return &ProfileRequestQuery{requestRepo: requestRepo}
}

// ListBySchool returns a school's own requests newest first
func (q *ProfileRequestQuery) ListBySchool(ctx context.Context, schoolID uuid.UUID, limit, offset int) ([]*dto.ProfileRequestResponse, error) {
	requests, err := q.requestRepo.ListBySchool(ctx, schoolID, limit, offset)
	if err != nil {
		return nil, err
	}
	return requestsToDTO(requests), nil
}

// List returns all requests newest first (admin)
func (q *ProfileRequestQuery) List(ctx context.Context, limit, offset int) ([]*dto.ProfileRequestResponse, error) {
	requests, err := q.requestRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	return requestsToDTO(requests), nil
}

func requestsToDTO(requests []*entity.ProfileRequest) []*dto.ProfileRequestResponse {
	out := make([]*dto.ProfileRequestResponse, 0, len(requests))
	for _, r := range requests {
		out = append(out, &dto.ProfileRequestResponse{
			ID:        r.ID.String(),
			SchoolID:  r.SchoolID.String(),
			TeacherID: r.TeacherID.String(),
			Status:    string(r.Status),
			Message:   r.Message,
			CreatedAt: r.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return out
}
