package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rallypoint/rallypoint-api/internal/dto"
	apierrors "github.com/rallypoint/rallypoint-api/internal/errors"
	"github.com/rallypoint/rallypoint-api/internal/middleware"
	"github.com/rallypoint/rallypoint-api/internal/models"
	"github.com/rallypoint/rallypoint-api/internal/services"
	"github.com/rallypoint/rallypoint-api/internal/token"
	"github.com/rallypoint/rallypoint-api/internal/utils"
)

// UserHandler coordinates profile and admin user management handlers.
type UserHandler struct {
	userService         *services.UserService
	registrationService *services.RegistrationService
	tokens              *token.Issuer
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService, registrationService *services.RegistrationService, tokens *token.Issuer) *UserHandler {
	return &UserHandler{
		userService:         userService,
		registrationService: registrationService,
		tokens:              tokens,
	}
}

// GetProfile returns the authenticated user's profile.
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	user, err := h.userService.GetUser(userID)
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// UpdateProfile applies a partial update to the caller's profile and
// returns a fresh session token alongside the updated projection.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type UpdateProfileRequest struct {
		Name           *string           `json:"name"`
		Email          *string           `json:"email" binding:"omitempty,email"`
		MobileNumber   *string           `json:"mobile_number"`
		ProfilePicture *string           `json:"profile_picture"`
		Skills         *utils.StringList `json:"skills"`
		Availability   *utils.StringList `json:"availability"`

		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password" binding:"omitempty,min=6"`
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input := services.UpdateProfileInput{
		Name:            req.Name,
		Email:           req.Email,
		MobileNumber:    req.MobileNumber,
		ProfilePicture:  req.ProfilePicture,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	}
	if req.Skills != nil {
		input.Skills = req.Skills.Normalize()
	}
	if req.Availability != nil {
		input.Availability = req.Availability.Normalize()
	}

	user, err := h.userService.UpdateProfile(userID, input)
	if err != nil {
		respondUserError(c, err)
		return
	}

	sessionToken, err := h.tokens.Generate(user.ID, string(user.Role))
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, dto.AuthResponse{
		User:  dto.ToUserDTO(*user),
		Token: sessionToken,
	})
}

// MyEvents lists events the caller has joined.
func (h *UserHandler) MyEvents(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	events, err := h.registrationService.ListMyEvents(userID)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"events": events})
}

// MyWaitlist lists events the caller is waitlisted for.
func (h *UserHandler) MyWaitlist(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	events, err := h.registrationService.ListMyWaitlist(userID)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"events": events})
}

// ListUsers returns all users with their computed volunteer hours.
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.ListUsersWithHours()
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	result := make([]dto.AdminUserDTO, len(users))
	for i, user := range users {
		result[i] = dto.ToAdminUserDTO(user)
	}

	c.JSON(http.StatusOK, gin.H{"users": result})
}

// UpdateUserStatus approves or rejects an account.
func (h *UserHandler) UpdateUserStatus(c *gin.Context) {
	type UpdateStatusRequest struct {
		Status models.AccountStatus `json:"status" binding:"required"`
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.userService.SetStatus(c.Param("id"), req.Status)
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User status updated to " + string(user.Status),
	})
}

// UpdateUser applies an admin-side partial update, including role changes.
func (h *UserHandler) UpdateUser(c *gin.Context) {
	type AdminUpdateRequest struct {
		Name         *string               `json:"name"`
		Email        *string               `json:"email" binding:"omitempty,email"`
		MobileNumber *string               `json:"mobile_number"`
		Role         *models.Role          `json:"role"`
		Status       *models.AccountStatus `json:"status"`
	}

	var req AdminUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.userService.UpdateUser(c.Param("id"), services.AdminUpdateInput{
		Name:         req.Name,
		Email:        req.Email,
		MobileNumber: req.MobileNumber,
		Role:         req.Role,
		Status:       req.Status,
	})
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// DeleteUser removes a user.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	if err := h.userService.DeleteUser(c.Param("id")); err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User removed"})
}

func respondUserError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, "User not found")
	case errors.Is(err, services.ErrEmailTaken):
		apierrors.Conflict(c, "User already exists")
	case errors.Is(err, services.ErrCurrentPasswordRequired):
		apierrors.BadRequest(c, "Please provide your current password to make changes.")
	case errors.Is(err, services.ErrCurrentPasswordWrong):
		apierrors.Unauthorized(c, "Incorrect current password.")
	case errors.Is(err, services.ErrInvalidStatus):
		apierrors.BadRequest(c, "Invalid status")
	case errors.Is(err, services.ErrInvalidRole):
		apierrors.BadRequest(c, "Invalid role")
	default:
		apierrors.InternalError(c, "")
	}
}
