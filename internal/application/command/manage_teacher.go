package command

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bivex/school-access/internal/application/dto"
	"github.com/bivex/school-access/internal/domain/entity"
	"github.com/bivex/school-access/internal/domain/repository"
	"github.com/bivex/school-access/internal/infrastructure/logging"
)

// ManageTeacherCommand covers the admin CRUD over teacher listings
type ManageTeacherCommand struct {
	teacherRepo repository.TeacherRepository
	logger      *zap.Logger
}

// NewManageTeacherCommand creates a new manage command
func NewManageTeacherCommand(teacherRepo repository.TeacherRepository) *ManageTeacherCommand {
	return &ManageTeacherCommand{
		teacherRepo: teacherRepo,
		logger:      logging.Logger,
	}
}

// Create stores a new visible listing
func (c *ManageTeacherCommand) Create(ctx context.Context, req *dto.CreateTeacherRequest) (*dto.TeacherResponse, error) {
	teacher := entity.NewTeacher(req.FullName, req.Subjects, req.Region, req.ExperienceYears, req.HourlyRate, req.Bio)
	if err := c.teacherRepo.Create(ctx, teacher); err != nil {
		return nil, err
	}

	c.logger.Info("teacher listing created", zap.String("teacher_id", teacher.ID.String()))
	return teacherToDTO(teacher), nil
}

// Update edits an existing listing, including its visibility
func (c *ManageTeacherCommand) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateTeacherRequest) (*dto.TeacherResponse, error) {
	teacher, err := c.teacherRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	teacher.FullName = req.FullName
	teacher.Subjects = req.Subjects
	teacher.Region = req.Region
	teacher.ExperienceYears = req.ExperienceYears
	teacher.HourlyRate = req.HourlyRate
	teacher.Bio = req.Bio
	teacher.Visible = req.Visible

	if err := c.teacherRepo.Update(ctx, teacher); err != nil {
		return nil, err
	}
	return teacherToDTO(teacher), nil
}

// Delete soft-deletes a listing
func (c *ManageTeacherCommand) Delete(ctx context.Context, id uuid.UUID) error {
	if err := c.teacherRepo.Delete(ctx, id); err != nil {
		return err
	}
	c.logger.Info("teacher listing deleted", zap.String("teacher_id", id.String()))
	return nil
}

func teacherToDTO(teacher *entity.Teacher) *dto.TeacherResponse {
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
