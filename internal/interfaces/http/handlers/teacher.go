package handlers

import (
	"errors"
	"io"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bivex/school-access/internal/application/command"
	"github.com/bivex/school-access/internal/application/dto"
	"github.com/bivex/school-access/internal/application/query"
	domainErrors "github.com/bivex/school-access/internal/domain/errors"
	"github.com/bivex/school-access/internal/domain/repository"
	"github.com/bivex/school-access/internal/interfaces/http/response"
)

// TeacherHandler handles the subscription-gated marketplace endpoints
type TeacherHandler struct {
	teacherQuery *query.TeacherQuery
	requestQuery *query.ProfileRequestQuery
	requestCmd   *command.RequestProfileCommand
}

// NewTeacherHandler creates a new teacher handler
func NewTeacherHandler(
	teacherQuery *query.TeacherQuery,
	requestQuery *query.ProfileRequestQuery,
	requestCmd *command.RequestProfileCommand,
) *TeacherHandler {
	return &TeacherHandler{
		teacherQuery: teacherQuery,
		requestQuery: requestQuery,
		requestCmd:   requestCmd,
	}
}

// List returns visible teachers matching the filter
// @Summary Browse teacher listings
// @Tags teachers
// @Produce json
// @Security Bearer
// @Param subject query string false "Filter by subject"
// @Param region query string false "Filter by region"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} response.SuccessResponse{data=[]dto.TeacherResponse}
// @Failure 403 {object} response.ErrorResponse
// @Router /teachers [get]
func (h *TeacherHandler) List(c *gin.Context) {
	filter := repository.TeacherFilter{
		Subject: c.Query("subject"),
		Region:  c.Query("region"),
		Limit:   queryInt(c, "limit", 50),
		Offset:  queryInt(c, "offset", 0),
	}

	teachers, err := h.teacherQuery.ListVisible(c.Request.Context(), filter)
	if err != nil {
		response.InternalError(c, "Failed to list teachers")
		return
	}

	response.OK(c, teachers)
}

// Get returns one listed teacher
// @Summary Get a teacher listing
// @Tags teachers
// @Produce json
// @Security Bearer
// @Param id path string true "Teacher ID"
// @Success 200 {object} response.SuccessResponse{data=dto.TeacherResponse}
// @Failure 404 {object} response.ErrorResponse
// @Router /teachers/{id} [get]
func (h *TeacherHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid teacher ID")
		return
	}

	teacher, err := h.teacherQuery.GetListed(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domainErrors.ErrTeacherNotFound) {
			response.NotFound(c, "Teacher not found")
			return
		}
		response.InternalError(c, "Failed to load teacher")
		return
	}

	response.OK(c, teacher)
}

// RequestProfile files a contact request for the teacher in the route
// @Summary Request contact with a teacher
// @Tags teachers
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "Teacher ID"
// @Param request body dto.RequestProfileRequest false "Optional message"
// @Success 201 {object} response.SuccessResponse{data=dto.ProfileRequestResponse}
// @Failure 404 {object} response.ErrorResponse
// @Router /teachers/{id}/request [post]
func (h *TeacherHandler) RequestProfile(c *gin.Context) {
	schoolID, ok := schoolIDFromContext(c)
	if !ok {
		return
	}

	teacherID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid teacher ID")
		return
	}

	// Body is optional, an empty request just files without a message
	var req dto.RequestProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.BadRequest(c, "Invalid request payload")
		return
	}

	resp, err := h.requestCmd.Execute(c.Request.Context(), schoolID, teacherID, &req)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrTeacherNotFound):
			response.NotFound(c, "Teacher not found")
		case errors.Is(err, domainErrors.ErrInvalidInput):
			response.BadRequest(c, err.Error())
		default:
			response.InternalError(c, "Failed to file profile request")
		}
		return
	}

	response.Created(c, resp)
}

// ListRequests returns the school's own contact requests
// @Summary List own contact requests
// @Tags teachers
// @Produce json
// @Security Bearer
// @Success 200 {object} response.SuccessResponse{data=[]dto.ProfileRequestResponse}
// @Router /teachers/requests [get]
func (h *TeacherHandler) ListRequests(c *gin.Context) {
	schoolID, ok := schoolIDFromContext(c)
	if !ok {
		return
	}

	requests, err := h.requestQuery.ListBySchool(c.Request.Context(), schoolID, queryInt(c, "limit", 50), queryInt(c, "offset", 0))
	if err != nil {
		response.InternalError(c, "Failed to list requests")
		return
	}

	response.OK(c, requests)
}

func queryInt(c *gin.Context, key string, fallback int) int {
	v, err := strconv.Atoi(c.DefaultQuery(key, strconv.Itoa(fallback)))
	if err != nil || v < 0 {
		return fallback
	}
	return v
}
