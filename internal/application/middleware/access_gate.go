package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bivex/school-access/internal/domain/entity"
	domainErrors "github.com/bivex/school-access/internal/domain/errors"
	"github.com/bivex/school-access/internal/domain/gate"
	"github.com/bivex/school-access/internal/domain/repository"
	"github.com/bivex/school-access/internal/infrastructure/logging"
	"github.com/bivex/school-access/internal/infrastructure/metrics"
)

// AccessGate blocks subscription-gated routes for schools without a
// current subscription or trial. Load errors lock, they never grant.
type AccessGate struct {
	subscriptionRepo repository.SubscriptionRepository
	now              func() time.Time
}

// NewAccessGate creates a new access gate middleware
func NewAccessGate(subscriptionRepo repository.SubscriptionRepository, now func() time.Time) *AccessGate {
	if now == nil {
		now = time.Now
	}
	return &AccessGate{
		subscriptionRepo: subscriptionRepo,
		now:              now,
	}
}

// RequireAccess returns a Gin middleware enforcing the subscription gate.
// It runs after Authenticate, which has already set school_id.
func (g *AccessGate) RequireAccess() gin.HandlerFunc {
	return func(c *gin.Context) {
		idStr, exists := c.Get("school_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "UNAUTHORIZED", "message": "Missing authentication"})
			c.Abort()
			return
		}

		schoolID, err := uuid.Parse(idStr.(string))
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "UNAUTHORIZED", "message": "Invalid account ID in token"})
			c.Abort()
			return
		}

		now := g.now()
		decision := g.decide(c, schoolID, now)

		metrics.ObserveGate(decision.Granted, decision.Reason)
		if !decision.Granted {
			c.JSON(http.StatusForbidden, gin.H{
				"error":   "ACCESS_LOCKED",
				"message": "An active subscription is required",
				"reason":  decision.Reason,
				"view":    decision.View,
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

func (g *AccessGate) decide(c *gin.Context, schoolID uuid.UUID, now time.Time) gate.Decision {
	sub, err := g.subscriptionRepo.GetCurrentBySchoolID(c.Request.Context(), schoolID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrSubscriptionNotFound) {
			return gate.Decide(entity.EmptySnapshot(), now)
		}
		logging.CaptureError(err, "failed to load subscription for gate",
			zap.String("school_id", schoolID.String()),
		)
		return gate.Locked(now)
	}
	return gate.Decide(sub.EffectiveSnapshot(now), now)
}
