package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bivex/school-access/internal/domain/entity"
	domainErrors "github.com/bivex/school-access/internal/domain/errors"
	"github.com/bivex/school-access/internal/interfaces/http/response"
)

// respondRedeemError maps redemption failures onto HTTP statuses. A
// consumed or already-redeemed code is a conflict; a lapsed or revoked
// one is gone.
func respondRedeemError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domainErrors.ErrAccessCodeNotFound):
		response.NotFound(c, "Access code not found")
	case errors.Is(err, entity.ErrCodeAlreadyRedeemed), errors.Is(err, domainErrors.ErrAccessCodeConsumed):
		response.Conflict(c, "Access code has already been redeemed")
	case errors.Is(err, domainErrors.ErrActiveSubscriptionExists):
		response.Conflict(c, "School already has access")
	case errors.Is(err, entity.ErrCodeRevoked):
		response.Error(c, http.StatusGone, "CODE_REVOKED", "Access code has been revoked")
	case errors.Is(err, entity.ErrCodeExpired):
		response.Error(c, http.StatusGone, "CODE_EXPIRED", "Access code has expired")
	default:
		response.InternalError(c, "Failed to redeem access code")
	}
}
