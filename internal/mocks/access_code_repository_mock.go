package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/bivex/school-access/internal/domain/entity"
)

// MockAccessCodeRepository is a mock implementation of AccessCodeRepository
type MockAccessCodeRepository struct {
	mock.Mock
}

// NewMockAccessCodeRepository creates a new mock access code repository
func NewMockAccessCodeRepository() *MockAccessCodeRepository {
	return &MockAccessCodeRepository{}
}

func (m *MockAccessCodeRepository) Create(ctx context.Context, code *entity.AccessCode) error {
	args := m.Called(ctx, code)
	return args.Error(0)
}

func (m *MockAccessCodeRepository) GetByCode(ctx context.Context, code string) (*entity.AccessCode, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.AccessCode), args.Error(1)
}

func (m *MockAccessCodeRepository) MarkActivated(ctx context.Context, id uuid.UUID, schoolID uuid.UUID, activatedAt time.Time) error {
	args := m.Called(ctx, id, schoolID, activatedAt)
	return args.Error(0)
}

func (m *MockAccessCodeRepository) Revoke(ctx context.Context, id uuid.UUID, now time.Time) error {
	args := m.Called(ctx, id, now)
	return args.Error(0)
}

func (m *MockAccessCodeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAccessCodeRepository) List(ctx context.Context, limit, offset int) ([]*entity.AccessCode, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.AccessCode), args.Error(1)
}

func (m *MockAccessCodeRepository) ExpireLapsed(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}
