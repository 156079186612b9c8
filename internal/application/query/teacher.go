package query

import (
	"context"

	"github.com/google/uuid"

	"github.com/bivex/school-access/internal/application/dto"
	"github.com/bivex/school-access/internal/domain/entity"
	domainErrors "github.com/bivex/school-access/internal/domain/errors"
	"github.com/bivex/school-access/internal/domain/repository"
)

// TeacherQuery serves marketplace listings. School-facing reads only
// surface visible teachers; the admin variant sees everything.
type TeacherQuery struct {
	teacherRepo repository.TeacherRepository
}

// NewTeacherQuery creates a new teacher query
func NewTeacherQuery(teacherRepo repository.TeacherRepository) *TeacherQuery {
	return &TeacherQuery{teacherRepo: teacherRepo}
}

// ListVisible returns listed teachers matching the filter
func (q *TeacherQuery) ListVisible(ctx context.Context, filter repository.TeacherFilter) ([]*dto.TeacherResponse, error) {
	teachers, err := q.teacherRepo.ListVisible(ctx, filter)
	if err != nil {
		return nil, err
	}
	return teachersToDTO(teachers), nil
}

// GetListed returns a single teacher, hiding unlisted ones
func (q *TeacherQuery) GetListed(ctx context.Context, id uuid.UUID) (*dto.TeacherResponse, error) {
	teacher, err := q.teacherRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !teacher.IsListed() {
		return nil, domainErrors.ErrTeacherNotFound
	}
	return teacherToResponse(teacher), nil
}

// ListAll returns every non-deleted teacher including hidden ones
func (q *TeacherQuery) ListAll(ctx context.Context, limit, offset int) ([]*dto.TeacherResponse, error) {
	teachers, err := q.teacherRepo.ListAll(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	return teachersToDTO(teachers), nil
}

func teachersToDTO(teachers []*entity.Teacher) []*dto.TeacherResponse {
	out := make([]*dto.TeacherResponse, 0, len(teachers))
	for _, t := range teachers {
		out = append(out, teacherToResponse(t))
	}
	return out
}

func teacherToResponse(teacher *entity.Teacher) *dto.TeacherResponse {
	return &dto.TeacherResponse{
		ID:              teacher.ID.String(),
		FullName:        teacher.FullName,
		Subjects:        teacher.Subjects,
		Region:          teacher.Region,
		ExperienceYears: teacher.ExperienceYears,
		HourlyRate:      teacher.HourlyRate,
		Bio:             teacher.Bio,
		Visible:         teacher.Visible,
	}
}
