package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rallypoint/rallypoint-api/internal/models"
	"github.com/rallypoint/rallypoint-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound            = errors.New("user not found")
	ErrCurrentPasswordRequired = errors.New("please provide your current password to make changes")
	ErrCurrentPasswordWrong    = errors.New("incorrect current password")
	ErrInvalidStatus           = errors.New("invalid status")
	ErrInvalidRole             = errors.New("invalid role")
)

// UserService provides profile and admin user management logic.
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

// GetUser retrieves a user by ID.
func (s *UserService) GetUser(id string) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// UpdateProfileInput carries a partial profile update. Nil fields keep
// their previous values.
type UpdateProfileInput struct {
	Name           *string
	Email          *string
	MobileNumber   *string
	ProfilePicture *string
	Skills         []string
	Availability   []string

	CurrentPassword string
	NewPassword     string
}

// UpdateProfile applies a partial update to the caller's own record.
// Changing the password requires the current password to verify first.
func (s *UserService) UpdateProfile(userID string, input UpdateProfileInput) (*models.User, error) {
	user, err := s.GetUser(userID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		user.Name = strings.TrimSpace(*input.Name)
	}
	if input.Email != nil {
		email := strings.TrimSpace(*input.Email)
		if email != user.Email {
			if _, err := s.userRepo.FindByEmail(email); err == nil {
				return nil, ErrEmailTaken
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("failed to check email: %w", err)
			}
			user.Email = email
		}
	}
	if input.MobileNumber != nil {
		user.MobileNumber = strings.TrimSpace(*input.MobileNumber)
	}
	if input.ProfilePicture != nil {
		user.ProfilePicture = *input.ProfilePicture
	}
	if input.Skills != nil {
		user.Skills = input.Skills
	}
	if input.Availability != nil {
		user.Availability = input.Availability
	}

	if input.NewPassword != "" {
		if input.CurrentPassword == "" {
			return nil, ErrCurrentPasswordRequired
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.CurrentPassword)); err != nil {
			return nil, ErrCurrentPasswordWrong
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, ErrHashPassword
		}
		user.PasswordHash = string(hashed)
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

// ListUsersWithHours returns all users newest-first with their computed
// approved volunteer hours.
func (s *UserService) ListUsersWithHours() ([]repository.UserWithHours, error) {
	users, err := s.userRepo.ListWithVolunteerHours()
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// SetStatus updates a user's approval status. Only approved and rejected
// are accepted; accounts cannot be moved back to pending.
func (s *UserService) SetStatus(userID string, status models.AccountStatus) (*models.User, error) {
	if status != models.StatusApproved && status != models.StatusRejected {
		return nil, ErrInvalidStatus
	}

	user, err := s.GetUser(userID)
	if err != nil {
		return nil, err
	}

	user.Status = status
	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update status: %w", err)
	}

	return user, nil
}

// AdminUpdateInput carries a partial admin-side user update.
type AdminUpdateInput struct {
	Name         *string
	Email        *string
	MobileNumber *string
	Role         *models.Role
	Status       *models.AccountStatus
}

// UpdateUser applies a partial update to any user, including role changes.
func (s *UserService) UpdateUser(userID string, input AdminUpdateInput) (*models.User, error) {
	user, err := s.GetUser(userID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		user.Name = strings.TrimSpace(*input.Name)
	}
	if input.Email != nil {
		email := strings.TrimSpace(*input.Email)
		if email != user.Email {
			if _, err := s.userRepo.FindByEmail(email); err == nil {
				return nil, ErrEmailTaken
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("failed to check email: %w", err)
			}
			user.Email = email
		}
	}
	if input.MobileNumber != nil {
		user.MobileNumber = strings.TrimSpace(*input.MobileNumber)
	}
	if input.Role != nil {
		if *input.Role != models.RoleVolunteer && *input.Role != models.RoleAdmin {
			return nil, ErrInvalidRole
		}
		user.Role = *input.Role
	}
	if input.Status != nil {
		if *input.Status != models.StatusPending &&
			*input.Status != models.StatusApproved &&
			*input.Status != models.StatusRejected {
			return nil, ErrInvalidStatus
		}
		user.Status = *input.Status
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

// DeleteUser removes a user.
func (s *UserService) DeleteUser(userID string) error {
	if _, err := s.GetUser(userID); err != nil {
		return err
	}
	if err := s.userRepo.Delete(userID); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}
