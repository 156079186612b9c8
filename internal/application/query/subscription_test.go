package query

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bivex/school-access/internal/domain/entity"
	domainErrors "github.com/bivex/school-access/internal/domain/errors"
	"github.com/bivex/school-access/internal/domain/gate"
	"github.com/bivex/school-access/internal/domain/valueobject"
	"github.com/bivex/school-access/internal/infrastructure/cache"
	"github.com/bivex/school-access/internal/mocks"
)

func newTestStatusCache() *cache.StatusCache {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	return cache.NewStatusCache(client, zap.NewNop())
}

func fixedNow() time.Time {
	return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
}

func TestGetStatus_ActiveSubscription(t *testing.T) {
	subRepo := mocks.NewMockSubscriptionRepository()
	schoolID := uuid.New()
	now := fixedNow()

	started := now.Add(-15 * 24 * time.Hour)
	end := now.Add(15 * 24 * time.Hour)
	sub := entity.NewSubscription(schoolID, valueobject.PlanMonthly, started, &end)
	subRepo.On("GetCurrentBySchoolID", mock.Anything, schoolID).Return(sub, nil)

	q := NewSubscriptionQuery(subRepo, newTestStatusCache(), fixedNow)
	resp, err := q.GetStatus(context.Background(), schoolID)

	require.NoError(t, err)
	assert.Equal(t, "active", resp.SubscriptionStatus)
	assert.Equal(t, "monthly", resp.SubscriptionPlan)
	assert.Equal(t, started.UTC().Format(time.RFC3339), resp.SubscriptionStartedAt)
	assert.Equal(t, end.UTC().Format(time.RFC3339), resp.SubscriptionEndAt)
	assert.Equal(t, valueobject.StatusActive, resp.View.Status)
	assert.True(t, resp.View.HasAccess)
	assert.Equal(t, 50, resp.View.ProgressPct)
	assert.Equal(t, "15d 0h", resp.View.Label)
}

func TestGetStatus_NoSubscriptionRow(t *testing.T) {
	subRepo := mocks.NewMockSubscriptionRepository()
	schoolID := uuid.New()

	subRepo.On("GetCurrentBySchoolID", mock.Anything, schoolID).Return(nil, domainErrors.ErrSubscriptionNotFound)

	q := NewSubscriptionQuery(subRepo, newTestStatusCache(), fixedNow)
	resp, err := q.GetStatus(context.Background(), schoolID)

	require.NoError(t, err)
	assert.Equal(t, "no_subscription", resp.SubscriptionStatus)
	assert.Empty(t, resp.SubscriptionEndAt)
	assert.Equal(t, valueobject.StatusNone, resp.View.Status)
	assert.False(t, resp.View.HasAccess)
	assert.Equal(t, "Not Subscribed", resp.View.Label)
}

func TestCheckAccess_GrantsForTrial(t *testing.T) {
	subRepo := mocks.NewMockSubscriptionRepository()
	schoolID := uuid.New()
	now := fixedNow()

	trial := entity.NewTrialSubscription(schoolID, now.Add(-time.Hour), 24*time.Hour)
	subRepo.On("GetCurrentBySchoolID", mock.Anything, schoolID).Return(trial, nil)

	q := NewSubscriptionQuery(subRepo, newTestStatusCache(), fixedNow)
	resp := q.CheckAccess(context.Background(), schoolID)

	assert.True(t, resp.Granted)
	assert.Empty(t, resp.Reason)
}

func TestCheckAccess_LoadErrorLocks(t *testing.T) {
	subRepo := mocks.NewMockSubscriptionRepository()
	schoolID := uuid.New()

	subRepo.On("GetCurrentBySchoolID", mock.Anything, schoolID).Return(nil, errors.New("connection reset"))

	q := NewSubscriptionQuery(subRepo, newTestStatusCache(), fixedNow)
	resp := q.CheckAccess(context.Background(), schoolID)

	assert.False(t, resp.Granted)
	assert.Equal(t, gate.ReasonNoActiveSubscription, resp.Reason)
	assert.False(t, resp.View.HasAccess)
}

func TestCheckAccess_ExpiredLocks(t *testing.T) {
	subRepo := mocks.NewMockSubscriptionRepository()
	schoolID := uuid.New()
	now := fixedNow()

	end := now.Add(-time.Minute)
	sub := entity.NewSubscription(schoolID, valueobject.PlanMonthly, now.Add(-31*24*time.Hour), &end)
	subRepo.On("GetCurrentBySchoolID", mock.Anything, schoolID).Return(sub, nil)

	q := NewSubscriptionQuery(subRepo, newTestStatusCache(), fixedNow)
	resp := q.CheckAccess(context.Background(), schoolID)

	assert.False(t, resp.Granted)
	assert.Equal(t, gate.ReasonNoActiveSubscription, resp.Reason)
}
