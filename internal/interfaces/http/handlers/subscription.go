package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/bivex/school-access/internal/application/command"
	"github.com/bivex/school-access/internal/application/dto"
	"github.com/bivex/school-access/internal/application/query"
	domainErrors "github.com/bivex/school-access/internal/domain/errors"
	"github.com/bivex/school-access/internal/interfaces/http/response"
)

// SubscriptionHandler handles the school-facing subscription endpoints
type SubscriptionHandler struct {
	subscriptionQuery *query.SubscriptionQuery
	cancelCmd         *command.CancelSubscriptionCommand
}

// NewSubscriptionHandler creates a new subscription handler
func NewSubscriptionHandler(
	subscriptionQuery *query.SubscriptionQuery,
	cancelCmd *command.CancelSubscriptionCommand,
) *SubscriptionHandler {
	return &SubscriptionHandler{
		subscriptionQuery: subscriptionQuery,
		cancelCmd:         cancelCmd,
	}
}

// GetStatus returns the raw subscription snapshot and its evaluated view
// @Summary Get the subscription status
// @Tags subscription
// @Produce json
// @Security Bearer
// @Success 200 {object} response.SuccessResponse{data=dto.SubscriptionStatusResponse}
// @Failure 401 {object} response.ErrorResponse
// @Router /subscription/status [get]
func (h *SubscriptionHandler) GetStatus(c *gin.Context) {
	schoolID, ok := schoolIDFromContext(c)
	if !ok {
		return
	}

	resp, err := h.subscriptionQuery.GetStatus(c.Request.Context(), schoolID)
	if err != nil {
		response.InternalError(c, "Failed to evaluate subscription status")
		return
	}

	response.OK(c, resp)
}

// CheckAccess returns the access gate decision
// @Summary Check marketplace access
// @Tags subscription
// @Produce json
// @Security Bearer
// @Success 200 {object} response.SuccessResponse{data=dto.AccessDecisionResponse}
// @Failure 401 {object} response.ErrorResponse
// @Router /subscription/access [get]
func (h *SubscriptionHandler) CheckAccess(c *gin.Context) {
	schoolID, ok := schoolIDFromContext(c)
	if !ok {
		return
	}

	response.OK(c, h.subscriptionQuery.CheckAccess(c.Request.Context(), schoolID))
}

// Cancel cancels the current subscription
// @Summary Cancel the current subscription
// @Tags subscription
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body dto.CancelSubscriptionRequest true "Cancellation reason"
// @Success 204
// @Failure 401 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /subscription/cancel [post]
func (h *SubscriptionHandler) Cancel(c *gin.Context) {
	schoolID, ok := schoolIDFromContext(c)
	if !ok {
		return
	}

	var req dto.CancelSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "A cancellation reason is required")
		return
	}

	if err := h.cancelCmd.Execute(c.Request.Context(), schoolID, &req); err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrSubscriptionNotFound),
			errors.Is(err, domainErrors.ErrSubscriptionNotActive):
			response.NotFound(c, "No active subscription found")
		default:
			response.InternalError(c, "Failed to cancel subscription")
		}
		return
	}

	response.NoContent(c)
}
