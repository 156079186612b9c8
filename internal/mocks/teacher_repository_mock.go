package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/bivex/school-access/internal/domain/entity"
	"github.com/bivex/school-access/internal/domain/repository"
)

// MockTeacherRepository is a mock implementation of TeacherRepository
type MockTeacherRepository struct {
	mock.Mock
}

// NewMockTeacherRepository creates a new mock teacher repository
func NewMockTeacherRepository() *MockTeacherRepository {
	return &MockTeacherRepository{}
}

func (m *MockTeacherRepository) Create(ctx context.Context, teacher *entity.Teacher) error {
	args := m.Called(ctx, teacher)
	return args.Error(0)
}

func (m *MockTeacherRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Teacher, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Teacher), args.Error(1)
}

func (m *MockTeacherRepository) ListVisible(ctx context.Context, filter repository.TeacherFilter) ([]*entity.Teacher, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Teacher), args.Error(1)
}

func (m *MockTeacherRepository) ListAll(ctx context.Context, limit, offset int) ([]*entity.Teacher, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Teacher), args.Error(1)
}

func (m *MockTeacherRepository) Update(ctx context.Context, teacher *entity.Teacher) error {
	args := m.Called(ctx, teacher)
	return args.Error(0)
}

func (m *MockTeacherRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTeacherRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
