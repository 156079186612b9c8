package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/bivex/school-access/internal/domain/entity"
)

// MockProfileRequestRepository is a mock implementation of ProfileRequestRepository
type MockProfileRequestRepository struct {
	mock.Mock
}

// NewMockProfileRequestRepository creates a new mock profile request repository
func NewMockProfileRequestRepository() *MockProfileRequestRepository {
	return &MockProfileRequestRepository{}
}

func (m *MockProfileRequestRepository) Create(ctx context.Context, request *entity.ProfileRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockProfileRequestRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.ProfileRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ProfileRequest), args.Error(1)
}

func (m *MockProfileRequestRepository) ListBySchool(ctx context.Context, schoolID uuid.UUID, limit, offset int) ([]*entity.ProfileRequest, error) {
	args := m.Called(ctx, schoolID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.ProfileRequest), args.Error(1)
}

func (m *MockProfileRequestRepository) List(ctx context.Context, limit, offset int) ([]*entity.ProfileRequest, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.ProfileRequest), args.Error(1)
}

func (m *MockProfileRequestRepository) Update(ctx context.Context, request *entity.ProfileRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockProfileRequestRepository) CountPending(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
