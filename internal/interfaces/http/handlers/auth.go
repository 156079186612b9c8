package handlers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bivex/school-access/internal/application/command"
	"github.com/bivex/school-access/internal/application/dto"
	domainErrors "github.com/bivex/school-access/internal/domain/errors"
	"github.com/bivex/school-access/internal/domain/repository"
	"github.com/bivex/school-access/internal/interfaces/http/response"
)

// AuthHandler handles registration, login and code redemption
type AuthHandler struct {
	registerCmd *command.RegisterSchoolCommand
	loginCmd    *command.LoginCommand
	redeemCmd   *command.RedeemAccessCodeCommand
	schoolRepo  repository.SchoolRepository
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(
	registerCmd *command.RegisterSchoolCommand,
	loginCmd *command.LoginCommand,
	redeemCmd *command.RedeemAccessCodeCommand,
	schoolRepo repository.SchoolRepository,
) *AuthHandler {
	return &AuthHandler{
		registerCmd: registerCmd,
		loginCmd:    loginCmd,
		redeemCmd:   redeemCmd,
		schoolRepo:  schoolRepo,
	}
}

// Register creates a school account
// @Summary Register a school account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Registration payload"
// @Success 201 {object} response.SuccessResponse{data=dto.RegisterResponse}
// @Failure 400 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid registration payload")
		return
	}

	resp, err := h.registerCmd.Execute(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrSchoolAlreadyExists):
			response.Conflict(c, "Email already registered")
		case errors.Is(err, domainErrors.ErrInvalidInput):
			response.BadRequest(c, err.Error())
		default:
			response.InternalError(c, "Failed to register account")
		}
		return
	}

	response.Created(c, resp)
}

// Login authenticates a school account
// @Summary Log in with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} response.SuccessResponse{data=dto.LoginResponse}
// @Failure 401 {object} response.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid login payload")
		return
	}

	resp, err := h.loginCmd.Execute(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, domainErrors.ErrInvalidCredentials) {
			response.Unauthorized(c, "Invalid email or password")
			return
		}
		response.InternalError(c, "Failed to log in")
		return
	}

	response.OK(c, resp)
}

// RedeemAccessCode exchanges a trial code for a 24-hour trial
// @Summary Redeem a trial access code
// @Tags auth
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body dto.RedeemAccessCodeRequest true "Code payload"
// @Success 200 {object} response.SuccessResponse{data=dto.RedeemAccessCodeResponse}
// @Failure 404 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse
// @Failure 410 {object} response.ErrorResponse
// @Router /auth/use-access-code [post]
func (h *AuthHandler) RedeemAccessCode(c *gin.Context) {
	schoolID, ok := schoolIDFromContext(c)
	if !ok {
		return
	}

	var req dto.RedeemAccessCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid code payload")
		return
	}

	resp, err := h.redeemCmd.Execute(c.Request.Context(), schoolID, &req)
	if err != nil {
		respondRedeemError(c, err)
		return
	}

	response.OK(c, resp)
}

// Me returns the authenticated account profile
// @Summary Get the current account
// @Tags auth
// @Produce json
// @Security Bearer
// @Success 200 {object} response.SuccessResponse{data=dto.SchoolResponse}
// @Failure 401 {object} response.ErrorResponse
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	schoolID, ok := schoolIDFromContext(c)
	if !ok {
		return
	}

	school, err := h.schoolRepo.GetByID(c.Request.Context(), schoolID)
	if err != nil {
		response.NotFound(c, "Account not found")
		return
	}

	response.OK(c, &dto.SchoolResponse{
		ID:        school.ID.String(),
		Email:     school.Email,
		Name:      school.Name,
		Role:      string(school.Role),
		CreatedAt: school.CreatedAt.UTC().Format(time.RFC3339),
	})
}

func schoolIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	idStr := c.GetString("school_id")
	if idStr == "" {
		response.Unauthorized(c, "Account not authenticated")
		return uuid.Nil, false
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		response.Unauthorized(c, "Invalid account ID in token")
		return uuid.Nil, false
	}
	return id, true
}
