package dto

import (
	"time"

	"github.com/rallypoint/rallypoint-api/internal/models"
	"github.com/rallypoint/rallypoint-api/internal/repository"
)

// UserDTO is the public user projection. It never carries the password
// hash or the reset-token fields.
type UserDTO struct {
	ID             string               `json:"id"`
	Name           string               `json:"name"`
	Email          string               `json:"email"`
	MobileNumber   string               `json:"mobile_number,omitempty"`
	Role           models.Role          `json:"role"`
	Status         models.AccountStatus `json:"status"`
	Skills         []string             `json:"skills,omitempty"`
	Availability   []string             `json:"availability,omitempty"`
	ProfilePicture string               `json:"profile_picture,omitempty"`
	CreatedAt      time.Time            `json:"created_at"`
}

// AdminUserDTO is the admin list projection with computed hours.
type AdminUserDTO struct {
	UserDTO
	VolunteerHours float64 `json:"volunteer_hours"`
}

// AuthResponse carries the public user projection and a session token.
type AuthResponse struct {
	User  UserDTO `json:"user"`
	Token string  `json:"token"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:             user.ID,
		Name:           user.Name,
		Email:          user.Email,
		MobileNumber:   user.MobileNumber,
		Role:           user.Role,
		Status:         user.Status,
		Skills:         user.Skills,
		Availability:   user.Availability,
		ProfilePicture: user.ProfilePicture,
		CreatedAt:      user.CreatedAt,
	}
}

// ToAdminUserDTO converts a user with computed hours to the admin projection
func ToAdminUserDTO(user repository.UserWithHours) AdminUserDTO {
	return AdminUserDTO{
		UserDTO:        ToUserDTO(user.User),
		VolunteerHours: user.VolunteerHours,
	}
}
