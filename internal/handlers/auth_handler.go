package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"taxidesk/internal/middleware"
	"taxidesk/internal/repositories/interfaces"
	"taxidesk/internal/services"
	"taxidesk/internal/utils"
	"taxidesk/pkg/logger"
)

type AuthHandler struct {
	auth   *services.AuthService
	logger *logger.Logger
}

func NewAuthHandler(auth *services.AuthService, log *logger.Logger) *AuthHandler {
	return &AuthHandler{
		auth:   auth,
		logger: log.WithField("handler", "auth"),
	}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}

	resp, err := h.auth.Login(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) || errors.Is(err, services.ErrUserInactive) {
			utils.ErrorResponse(c, 401, "UNAUTHORIZED", err.Error())
			return
		}
		h.logger.WithError(err).Error("login failed")
		utils.InternalServerErrorResponse(c)
		return
	}
	utils.SuccessResponse(c, "Logged in successfully", resp)
}

// CreateUser is admin-only; it provisions dashboard logins.
func (h *AuthHandler) CreateUser(c *gin.Context) {
	var req services.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}

	user, err := h.auth.CreateUser(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, interfaces.ErrDuplicate) {
			utils.BadRequestResponse(c, utils.ErrUserExists)
			return
		}
		utils.BadRequestResponse(c, err.Error())
		return
	}
	utils.CreatedResponse(c, "User created successfully", user)
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}

	err := h.auth.ChangePassword(c.Request.Context(), middleware.GetUserID(c), req.CurrentPassword, req.NewPassword)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			utils.ErrorResponse(c, 401, "UNAUTHORIZED", err.Error())
			return
		}
		respondRepoError(c, err, "user")
		return
	}
	utils.SuccessResponse(c, "Password changed successfully", nil)
}

// Me returns the logged-in user for the profile menu.
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.auth.GetUser(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondRepoError(c, err, "user")
		return
	}
	utils.SuccessResponse(c, "", user)
}
