package command

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bivex/school-access/internal/application/dto"
	"github.com/bivex/school-access/internal/domain/entity"
	domainErrors "github.com/bivex/school-access/internal/domain/errors"
	"github.com/bivex/school-access/internal/domain/valueobject"
	"github.com/bivex/school-access/internal/mocks"
)

func TestCancelSubscription_Success(t *testing.T) {
	subRepo := mocks.NewMockSubscriptionRepository()
	schoolID := uuid.New()
	now := fixedNow()

	end := now.Add(20 * 24 * time.Hour)
	sub := entity.NewSubscription(schoolID, valueobject.PlanMonthly, now.Add(-10*24*time.Hour), &end)

	subRepo.On("GetCurrentBySchoolID", mock.Anything, schoolID).Return(sub, nil)
	subRepo.On("Cancel", mock.Anything, sub.ID, "too expensive", now).Return(nil)

	cmd := NewCancelSubscriptionCommand(subRepo, newTestStatusCache(), fixedNow)
	err := cmd.Execute(context.Background(), schoolID, &dto.CancelSubscriptionRequest{Reason: "too expensive"})

	require.NoError(t, err)
	subRepo.AssertExpectations(t)
}

func TestCancelSubscription_NoSubscription(t *testing.T) {
	subRepo := mocks.NewMockSubscriptionRepository()
	schoolID := uuid.New()

	subRepo.On("GetCurrentBySchoolID", mock.Anything, schoolID).Return(nil, domainErrors.ErrSubscriptionNotFound)

	cmd := NewCancelSubscriptionCommand(subRepo, newTestStatusCache(), fixedNow)
	err := cmd.Execute(context.Background(), schoolID, &dto.CancelSubscriptionRequest{Reason: "whatever"})

	assert.ErrorIs(t, err, domainErrors.ErrSubscriptionNotFound)
}

func TestCancelSubscription_AlreadyTerminated(t *testing.T) {
	subRepo := mocks.NewMockSubscriptionRepository()
	schoolID := uuid.New()
	now := fixedNow()

	end := now.Add(-24 * time.Hour)
	sub := entity.NewSubscription(schoolID, valueobject.PlanMonthly, now.Add(-40*24*time.Hour), &end)
	sub.Status = valueobject.StatusExpired

	subRepo.On("GetCurrentBySchoolID", mock.Anything, schoolID).Return(sub, nil)

	cmd := NewCancelSubscriptionCommand(subRepo, newTestStatusCache(), fixedNow)
	err := cmd.Execute(context.Background(), schoolID, &dto.CancelSubscriptionRequest{Reason: "late"})

	assert.ErrorIs(t, err, domainErrors.ErrSubscriptionNotActive)
	subRepo.AssertNotCalled(t, "Cancel", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
