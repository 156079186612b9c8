package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bivex/school-access/internal/application/command"
	"github.com/bivex/school-access/internal/application/dto"
	"github.com/bivex/school-access/internal/application/query"
	"github.com/bivex/school-access/internal/domain/entity"
	domainErrors "github.com/bivex/school-access/internal/domain/errors"
	"github.com/bivex/school-access/internal/interfaces/http/response"
)

// AdminHandler handles the back-office endpoints
type AdminHandler struct {
	issueCodeCmd   *command.IssueAccessCodeCommand
	revokeCodeCmd  *command.RevokeAccessCodeCommand
	deleteCodeCmd  *command.DeleteAccessCodeCommand
	grantCmd       *command.GrantSubscriptionCommand
	teacherCmd     *command.ManageTeacherCommand
	resolveCmd     *command.ResolveProfileRequestCommand
	codeQuery      *query.AccessCodeQuery
	teacherQuery   *query.TeacherQuery
	requestQuery   *query.ProfileRequestQuery
	dashboardQuery *query.DashboardQuery
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(
	issueCodeCmd *command.IssueAccessCodeCommand,
	revokeCodeCmd *command.RevokeAccessCodeCommand,
	deleteCodeCmd *command.DeleteAccessCodeCommand,
	grantCmd *command.GrantSubscriptionCommand,
	teacherCmd *command.ManageTeacherCommand,
	resolveCmd *command.ResolveProfileRequestCommand,
	codeQuery *query.AccessCodeQuery,
	teacherQuery *query.TeacherQuery,
	requestQuery *query.ProfileRequestQuery,
	dashboardQuery *query.DashboardQuery,
) *AdminHandler {
	return &AdminHandler{
		issueCodeCmd:   issueCodeCmd,
		revokeCodeCmd:  revokeCodeCmd,
		deleteCodeCmd:  deleteCodeCmd,
		grantCmd:       grantCmd,
		teacherCmd:     teacherCmd,
		resolveCmd:     resolveCmd,
		codeQuery:      codeQuery,
		teacherQuery:   teacherQuery,
		requestQuery:   requestQuery,
		dashboardQuery: dashboardQuery,
	}
}

// IssueAccessCode mints a trial code
// @Summary Issue a trial access code
// @Tags admin
// @Produce json
// @Security Bearer
// @Success 201 {object} response.SuccessResponse{data=dto.IssueAccessCodeResponse}
// @Router /admin/access-codes [post]
func (h *AdminHandler) IssueAccessCode(c *gin.Context) {
	adminID, ok := c.Get("admin_id")
	if !ok {
		response.Unauthorized(c, "Missing admin context")
		return
	}

	resp, err := h.issueCodeCmd.Execute(c.Request.Context(), adminID.(uuid.UUID))
	if err != nil {
		response.InternalError(c, "Failed to issue access code")
		return
	}

	response.Created(c, resp)
}

// ListAccessCodes returns issued codes newest first
// @Summary List trial access codes
// @Tags admin
// @Produce json
// @Security Bearer
// @Success 200 {object} response.SuccessResponse{data=[]dto.AccessCodeResponse}
// @Router /admin/access-codes [get]
func (h *AdminHandler) ListAccessCodes(c *gin.Context) {
	codes, err := h.codeQuery.List(c.Request.Context(), queryInt(c, "limit", 50), queryInt(c, "offset", 0))
	if err != nil {
		response.InternalError(c, "Failed to list access codes")
		return
	}
	response.OK(c, codes)
}

// RevokeAccessCode terminates a code by ID
// @Summary Revoke a trial access code
// @Tags admin
// @Produce json
// @Security Bearer
// @Param id path string true "Code ID"
// @Success 204
// @Failure 404 {object} response.ErrorResponse
// @Router /admin/access-codes/{id}/revoke [post]
func (h *AdminHandler) RevokeAccessCode(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid code ID")
		return
	}

	if err := h.revokeCodeCmd.ExecuteByID(c.Request.Context(), id); err != nil {
		if errors.Is(err, domainErrors.ErrAccessCodeNotFound) {
			response.NotFound(c, "Access code not found")
			return
		}
		response.InternalError(c, "Failed to revoke access code")
		return
	}

	response.NoContent(c)
}

// DeleteAccessCode removes a code entirely
// @Summary Delete a trial access code
// @Tags admin
// @Produce json
// @Security Bearer
// @Param id path string true "Code ID"
// @Success 204
// @Failure 404 {object} response.ErrorResponse
// @Router /admin/access-codes/{id} [delete]
func (h *AdminHandler) DeleteAccessCode(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid code ID")
		return
	}

	if err := h.deleteCodeCmd.Execute(c.Request.Context(), id); err != nil {
		if errors.Is(err, domainErrors.ErrAccessCodeNotFound) {
			response.NotFound(c, "Access code not found")
			return
		}
		response.InternalError(c, "Failed to delete access code")
		return
	}

	response.NoContent(c)
}

// GrantSubscription assigns a plan to the school in the route
// @Summary Grant a subscription to a school
// @Tags admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "School ID"
// @Param request body dto.GrantSubscriptionRequest true "Grant payload"
// @Success 201 {object} response.SuccessResponse{data=dto.SubscriptionResponse}
// @Failure 404 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse
// @Router /admin/schools/{id}/grant [post]
func (h *AdminHandler) GrantSubscription(c *gin.Context) {
	schoolID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid school ID")
		return
	}

	var req dto.GrantSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid grant payload")
		return
	}

	resp, err := h.grantCmd.Execute(c.Request.Context(), schoolID, &req)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrSchoolNotFound):
			response.NotFound(c, "School not found")
		case errors.Is(err, domainErrors.ErrActiveSubscriptionExists):
			response.Conflict(c, "School already has an active subscription")
		case errors.Is(err, domainErrors.ErrInvalidInput):
			response.BadRequest(c, err.Error())
		default:
			response.InternalError(c, "Failed to grant subscription")
		}
		return
	}

	response.Created(c, resp)
}

// CreateTeacher stores a new teacher listing
// @Summary Create a teacher listing
// @Tags admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body dto.CreateTeacherRequest true "Listing payload"
// @Success 201 {object} response.SuccessResponse{data=dto.TeacherResponse}
// @Router /admin/teachers [post]
func (h *AdminHandler) CreateTeacher(c *gin.Context) {
	var req dto.CreateTeacherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid listing payload")
		return
	}

	resp, err := h.teacherCmd.Create(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c, "Failed to create teacher")
		return
	}

	response.Created(c, resp)
}

// ListTeachers returns all listings including hidden ones
// @Summary List all teacher listings
// @Tags admin
// @Produce json
// @Security Bearer
// @Success 200 {object} response.SuccessResponse{data=[]dto.TeacherResponse}
// @Router /admin/teachers [get]
func (h *AdminHandler) ListTeachers(c *gin.Context) {
	teachers, err := h.teacherQuery.ListAll(c.Request.Context(), queryInt(c, "limit", 50), queryInt(c, "offset", 0))
	if err != nil {
		response.InternalError(c, "Failed to list teachers")
		return
	}
	response.OK(c, teachers)
}

// UpdateTeacher edits a listing
// @Summary Update a teacher listing
// @Tags admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "Teacher ID"
// @Param request body dto.UpdateTeacherRequest true "Listing payload"
// @Success 200 {object} response.SuccessResponse{data=dto.TeacherResponse}
// @Failure 404 {object} response.ErrorResponse
// @Router /admin/teachers/{id} [put]
func (h *AdminHandler) UpdateTeacher(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid teacher ID")
		return
	}

	var req dto.UpdateTeacherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid listing payload")
		return
	}

	resp, err := h.teacherCmd.Update(c.Request.Context(), id, &req)
	if err != nil {
		if errors.Is(err, domainErrors.ErrTeacherNotFound) {
			response.NotFound(c, "Teacher not found")
			return
		}
		response.InternalError(c, "Failed to update teacher")
		return
	}

	response.OK(c, resp)
}

// DeleteTeacher soft-deletes a listing
// @Summary Delete a teacher listing
// @Tags admin
// @Produce json
// @Security Bearer
// @Param id path string true "Teacher ID"
// @Success 204
// @Failure 404 {object} response.ErrorResponse
// @Router /admin/teachers/{id} [delete]
func (h *AdminHandler) DeleteTeacher(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid teacher ID")
		return
	}

	if err := h.teacherCmd.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, domainErrors.ErrTeacherNotFound) {
			response.NotFound(c, "Teacher not found")
			return
		}
		response.InternalError(c, "Failed to delete teacher")
		return
	}

	response.NoContent(c)
}

// ListProfileRequests returns all contact requests
// @Summary List contact requests
// @Tags admin
// @Produce json
// @Security Bearer
// @Success 200 {object} response.SuccessResponse{data=[]dto.ProfileRequestResponse}
// @Router /admin/requests [get]
func (h *AdminHandler) ListProfileRequests(c *gin.Context) {
	requests, err := h.requestQuery.List(c.Request.Context(), queryInt(c, "limit", 50), queryInt(c, "offset", 0))
	if err != nil {
		response.InternalError(c, "Failed to list requests")
		return
	}
	response.OK(c, requests)
}

// ResolveProfileRequest approves or declines a pending request
// @Summary Resolve a contact request
// @Tags admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "Request ID"
// @Param request body dto.ResolveProfileRequestRequest true "Decision"
// @Success 200 {object} response.SuccessResponse{data=dto.ProfileRequestResponse}
// @Failure 404 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse
// @Router /admin/requests/{id} [patch]
func (h *AdminHandler) ResolveProfileRequest(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid request ID")
		return
	}

	var req dto.ResolveProfileRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid decision payload")
		return
	}

	resp, err := h.resolveCmd.Execute(c.Request.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrProfileRequestNotFound):
			response.NotFound(c, "Request not found")
		case errors.Is(err, entity.ErrRequestAlreadyResolved):
			response.Conflict(c, "Request has already been resolved")
		default:
			response.InternalError(c, "Failed to resolve request")
		}
		return
	}

	response.OK(c, resp)
}

// DashboardMetrics returns back-office counters
// @Summary Get dashboard metrics
// @Tags admin
// @Produce json
// @Security Bearer
// @Success 200 {object} response.SuccessResponse{data=dto.DashboardMetricsResponse}
// @Router /admin/dashboard/metrics [get]
func (h *AdminHandler) DashboardMetrics(c *gin.Context) {
	metrics, err := h.dashboardQuery.Metrics(c.Request.Context())
	if err != nil {
		response.InternalError(c, "Failed to load dashboard metrics")
		return
	}
	response.OK(c, metrics)
}
