package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/bivex/school-access/internal/domain/entity"
)

// MockSchoolRepository is a mock implementation of SchoolRepository
type MockSchoolRepository struct {
	mock.Mock
}

// NewMockSchoolRepository creates a new mock school repository
func NewMockSchoolRepository() *MockSchoolRepository {
	return &MockSchoolRepository{}
}

func (m *MockSchoolRepository) Create(ctx context.Context, school *entity.School) error {
	args := m.Called(ctx, school)
	return args.Error(0)
}

func (m *MockSchoolRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.School, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.School), args.Error(1)
}

func (m *MockSchoolRepository) GetByEmail(ctx context.Context, email string) (*entity.School, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.School), args.Error(1)
}

func (m *MockSchoolRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockSchoolRepository) List(ctx context.Context, limit, offset int) ([]*entity.School, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.School), args.Error(1)
}

func (m *MockSchoolRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
