package repository

import (
	"time"

	"github.com/rallypoint/rallypoint-api/internal/models"
	"gorm.io/gorm"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db       *gorm.DB
	hourLogs HourLogRepository
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{
		db:       db,
		hourLogs: NewHourLogRepository(db),
	}
}

// Create creates a new user
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(id string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user by email
func (r *GormUserRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByResetToken finds a user with a matching, unexpired reset token.
// The strict > comparison makes the token invalid exactly at expiry.
func (r *GormUserRepository) FindByResetToken(digest string, now time.Time) (*models.User, error) {
	var user models.User
	err := r.db.Where("reset_password_token = ? AND reset_password_expires > ?", digest, now).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Update persists all fields of the user
func (r *GormUserRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

// Delete soft deletes a user
func (r *GormUserRepository) Delete(id string) error {
	return r.db.Delete(&models.User{}, "id = ?", id).Error
}

// ListWithVolunteerHours lists users newest-first with their computed
// approved-hours totals.
func (r *GormUserRepository) ListWithVolunteerHours() ([]UserWithHours, error) {
	var users []models.User
	if err := r.db.Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, err
	}

	totals, err := r.hourLogs.ApprovedHoursByVolunteer()
	if err != nil {
		return nil, err
	}

	result := make([]UserWithHours, len(users))
	for i, user := range users {
		result[i] = UserWithHours{
			User:           user,
			VolunteerHours: totals[user.ID],
		}
	}
	return result, nil
}
