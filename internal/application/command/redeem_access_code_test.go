package command

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bivex/school-access/internal/application/dto"
	"github.com/bivex/school-access/internal/domain/entity"
	domainErrors "github.com/bivex/school-access/internal/domain/errors"
	"github.com/bivex/school-access/internal/domain/valueobject"
	"github.com/bivex/school-access/internal/infrastructure/cache"
	"github.com/bivex/school-access/internal/mocks"
)

// newTestStatusCache returns a cache backed by an unreachable Redis.
// Cache writes fail fast and the commands only log them.
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

func TestRedeemAccessCode_Success(t *testing.T) {
	codeRepo := mocks.NewMockAccessCodeRepository()
	subRepo := mocks.NewMockSubscriptionRepository()
	schoolID := uuid.New()
	adminID := uuid.New()
	now := fixedNow()

	code := entity.NewAccessCode("WXYZABCD12345678", adminID)
	codeRepo.On("GetByCode", mock.Anything, code.Code).Return(code, nil)
	codeRepo.On("MarkActivated", mock.Anything, code.ID, schoolID, now).Return(nil)
	subRepo.On("GetCurrentBySchoolID", mock.Anything, schoolID).Return(nil, domainErrors.ErrSubscriptionNotFound)
	subRepo.On("Create", mock.Anything, mock.MatchedBy(func(sub *entity.Subscription) bool {
		return sub.SchoolID == schoolID &&
			sub.Status == valueobject.StatusTrial &&
			sub.Plan == valueobject.PlanTrialAccess &&
			sub.EndAt != nil && sub.EndAt.Equal(now.Add(24*time.Hour))
	})).Return(nil)

	cmd := NewRedeemAccessCodeCommand(codeRepo, subRepo, newTestStatusCache(), fixedNow)
	resp, err := cmd.Execute(context.Background(), schoolID, &dto.RedeemAccessCodeRequest{Code: code.Code})

	require.NoError(t, err)
	assert.Equal(t, "2025-06-16T12:00:00Z", resp.ExpiresAt)
	assert.True(t, resp.View.HasAccess)
	assert.Equal(t, valueobject.StatusTrial, resp.View.Status)
	codeRepo.AssertExpectations(t)
	subRepo.AssertExpectations(t)
}

func TestRedeemAccessCode_SecondRedemptionFails(t *testing.T) {
	codeRepo := mocks.NewMockAccessCodeRepository()
	subRepo := mocks.NewMockSubscriptionRepository()
	schoolID := uuid.New()
	now := fixedNow()

	code := entity.NewAccessCode("WXYZABCD12345678", uuid.New())
	firstSchool := uuid.New()
	require.NoError(t, code.Redeem(firstSchool, now.Add(-time.Hour)))

	codeRepo.On("GetByCode", mock.Anything, code.Code).Return(code, nil)
	subRepo.On("GetCurrentBySchoolID", mock.Anything, schoolID).Return(nil, domainErrors.ErrSubscriptionNotFound)

	cmd := NewRedeemAccessCodeCommand(codeRepo, subRepo, newTestStatusCache(), fixedNow)
	_, err := cmd.Execute(context.Background(), schoolID, &dto.RedeemAccessCodeRequest{Code: code.Code})

	assert.ErrorIs(t, err, entity.ErrCodeAlreadyRedeemed)
	codeRepo.AssertNotCalled(t, "MarkActivated", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	subRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRedeemAccessCode_RaceLoserGetsConflict(t *testing.T) {
	// The entity check passes but the conditional update finds the row
	// already activated by a concurrent request.
	codeRepo := mocks.NewMockAccessCodeRepository()
	subRepo := mocks.NewMockSubscriptionRepository()
	schoolID := uuid.New()
	now := fixedNow()

	code := entity.NewAccessCode("WXYZABCD12345678", uuid.New())
	codeRepo.On("GetByCode", mock.Anything, code.Code).Return(code, nil)
	codeRepo.On("MarkActivated", mock.Anything, code.ID, schoolID, now).Return(domainErrors.ErrAccessCodeConsumed)
	subRepo.On("GetCurrentBySchoolID", mock.Anything, schoolID).Return(nil, domainErrors.ErrSubscriptionNotFound)

	cmd := NewRedeemAccessCodeCommand(codeRepo, subRepo, newTestStatusCache(), fixedNow)
	_, err := cmd.Execute(context.Background(), schoolID, &dto.RedeemAccessCodeRequest{Code: code.Code})

	assert.ErrorIs(t, err, domainErrors.ErrAccessCodeConsumed)
	subRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRedeemAccessCode_RevokedCode(t *testing.T) {
	codeRepo := mocks.NewMockAccessCodeRepository()
	subRepo := mocks.NewMockSubscriptionRepository()
	schoolID := uuid.New()

	code := entity.NewAccessCode("WXYZABCD12345678", uuid.New())
	code.Revoke(fixedNow().Add(-time.Hour))

	codeRepo.On("GetByCode", mock.Anything, code.Code).Return(code, nil)
	subRepo.On("GetCurrentBySchoolID", mock.Anything, schoolID).Return(nil, domainErrors.ErrSubscriptionNotFound)

	cmd := NewRedeemAccessCodeCommand(codeRepo, subRepo, newTestStatusCache(), fixedNow)
	_, err := cmd.Execute(context.Background(), schoolID, &dto.RedeemAccessCodeRequest{Code: code.Code})

	assert.ErrorIs(t, err, entity.ErrCodeRevoked)
}

func TestRedeemAccessCode_UnknownCode(t *testing.T) {
	codeRepo := mocks.NewMockAccessCodeRepository()
	subRepo := mocks.NewMockSubscriptionRepository()

	codeRepo.On("GetByCode", mock.Anything, "NOPE").Return(nil, domainErrors.ErrAccessCodeNotFound)

	cmd := NewRedeemAccessCodeCommand(codeRepo, subRepo, newTestStatusCache(), fixedNow)
	_, err := cmd.Execute(context.Background(), uuid.New(), &dto.RedeemAccessCodeRequest{Code: "NOPE"})

	assert.ErrorIs(t, err, domainErrors.ErrAccessCodeNotFound)
}

func TestRedeemAccessCode_AlreadySubscribed(t *testing.T) {
	codeRepo := mocks.NewMockAccessCodeRepository()
	subRepo := mocks.NewMockSubscriptionRepository()
	schoolID := uuid.New()
	now := fixedNow()

	code := entity.NewAccessCode("WXYZABCD12345678", uuid.New())
	end := now.Add(30 * 24 * time.Hour)
	current := entity.NewSubscription(schoolID, valueobject.PlanMonthly, now.Add(-time.Hour), &end)

	codeRepo.On("GetByCode", mock.Anything, code.Code).Return(code, nil)
	subRepo.On("GetCurrentBySchoolID", mock.Anything, schoolID).Return(current, nil)

	cmd := NewRedeemAccessCodeCommand(codeRepo, subRepo, newTestStatusCache(), fixedNow)
	_, err := cmd.Execute(context.Background(), schoolID, &dto.RedeemAccessCodeRequest{Code: code.Code})

	assert.ErrorIs(t, err, domainErrors.ErrActiveSubscriptionExists)
	codeRepo.AssertNotCalled(t, "MarkActivated", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
