package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bivex/school-access/internal/application/command"
	"github.com/bivex/school-access/internal/application/query"
	"github.com/bivex/school-access/internal/domain/entity"
	domainErrors "github.com/bivex/school-access/internal/domain/errors"
	"github.com/bivex/school-access/internal/domain/valueobject"
	"github.com/bivex/school-access/internal/infrastructure/cache"
	"github.com/bivex/school-access/internal/mocks"
)

func fixedNow() time.Time {
	return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
}

func newTestStatusCache() *cache.StatusCache {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	return cache.NewStatusCache(client, zap.NewNop())
}

// fakeAuth stands in for the JWT middleware in handler tests
func fakeAuth(schoolID uuid.UUID) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("school_id", schoolID.String())
		c.Next()
	}
}

func newSubscriptionRouter(schoolID uuid.UUID, subRepo *mocks.MockSubscriptionRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)

	statusCache := newTestStatusCache()
	subscriptionQuery := query.NewSubscriptionQuery(subRepo, statusCache, fixedNow)
	cancelCmd := command.NewCancelSubscriptionCommand(subRepo, statusCache, fixedNow)
	handler := NewSubscriptionHandler(subscriptionQuery, cancelCmd)

	router := gin.New()
	authed := router.Group("", fakeAuth(schoolID))
	authed.GET("/subscription/status", handler.GetStatus)
	authed.GET("/subscription/access", handler.CheckAccess)
	authed.POST("/subscription/cancel", handler.Cancel)
	return router
}

func TestGetStatusEndpoint_ActiveSubscription(t *testing.T) {
	subRepo := mocks.NewMockSubscriptionRepository()
	schoolID := uuid.New()
	now := fixedNow()

	end := now.Add(10 * 24 * time.Hour)
	sub := entity.NewSubscription(schoolID, valueobject.PlanYearly, now.Add(-355*24*time.Hour), &end)
	subRepo.On("GetCurrentBySchoolID", mock.Anything, schoolID).Return(sub, nil)

	router := newSubscriptionRouter(schoolID, subRepo)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/subscription/status", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data struct {
			SubscriptionStatus string `json:"subscription_status"`
			SubscriptionPlan   string `json:"subscription_plan"`
			SubscriptionEndAt  string `json:"subscription_end_at"`
			View               struct {
				Status    string `json:"status"`
				HasAccess bool   `json:"has_access"`
				Label     string `json:"time_remaining_label"`
			} `json:"view"`
		} `json:"data"`
		Meta struct {
			RequestID string `json:"request_id"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "active", body.Data.SubscriptionStatus)
	assert.Equal(t, "yearly", body.Data.SubscriptionPlan)
	assert.Equal(t, end.UTC().Format(time.RFC3339), body.Data.SubscriptionEndAt)
	assert.Equal(t, "active", body.Data.View.Status)
	assert.True(t, body.Data.View.HasAccess)
	assert.Equal(t, "10d 0h", body.Data.View.Label)
	assert.NotEmpty(t, body.Meta.RequestID)
}

func TestCheckAccessEndpoint_NoSubscription(t *testing.T) {
	subRepo := mocks.NewMockSubscriptionRepository()
	schoolID := uuid.New()

	subRepo.On("GetCurrentBySchoolID", mock.Anything, schoolID).Return(nil, domainErrors.ErrSubscriptionNotFound)

	router := newSubscriptionRouter(schoolID, subRepo)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/subscription/access", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data struct {
			Granted bool   `json:"granted"`
			Reason  string `json:"reason"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Data.Granted)
	assert.Equal(t, "no_active_subscription", body.Data.Reason)
}

func TestCancelEndpoint_RequiresReason(t *testing.T) {
	subRepo := mocks.NewMockSubscriptionRepository()
	schoolID := uuid.New()

	router := newSubscriptionRouter(schoolID, subRepo)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/subscription/cancel", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	subRepo.AssertNotCalled(t, "Cancel", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCancelEndpoint_Success(t *testing.T) {
	subRepo := mocks.NewMockSubscriptionRepository()
	schoolID := uuid.New()
	now := fixedNow()

	end := now.Add(5 * 24 * time.Hour)
	sub := entity.NewSubscription(schoolID, valueobject.PlanMonthly, now.Add(-25*24*time.Hour), &end)
	subRepo.On("GetCurrentBySchoolID", mock.Anything, schoolID).Return(sub, nil)
	subRepo.On("Cancel", mock.Anything, sub.ID, "switching providers", now).Return(nil)

	router := newSubscriptionRouter(schoolID, subRepo)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/subscription/cancel", strings.NewReader(`{"reason":"switching providers"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	subRepo.AssertExpectations(t)
}
