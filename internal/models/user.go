package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Role string

const (
	RoleVolunteer Role = "volunteer"
	RoleAdmin     Role = "admin"
)

type AccountStatus string

const (
	StatusPending  AccountStatus = "pending"
	StatusApproved AccountStatus = "approved"
	StatusRejected AccountStatus = "rejected"
)

type User struct {
	ID           string        `gorm:"primaryKey;type:uuid" json:"id"`
	Name         string        `gorm:"type:varchar(255);not null" json:"name"`
	Email        string        `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	MobileNumber string        `gorm:"type:varchar(32)" json:"mobile_number"`
	PasswordHash string        `gorm:"type:varchar(255);not null" json:"-"`
	Role         Role          `gorm:"type:varchar(20);not null;default:'volunteer'" json:"role"`
	Status       AccountStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`

	Skills         []string `gorm:"serializer:json" json:"skills"`
	Availability   []string `gorm:"serializer:json" json:"availability"`
	ProfilePicture string   `json:"profile_picture"`

	// Reset state is only populated between a forgot-password request and
	// its consumption or expiry. Never serialized.
	ResetPasswordToken   string     `gorm:"index" json:"-"`
	ResetPasswordExpires *time.Time `json:"-"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Registrations []Registration  `gorm:"foreignKey:VolunteerID" json:"-"`
	Waitlist      []WaitlistEntry `gorm:"foreignKey:VolunteerID" json:"-"`
	HourLogs      []HourLog       `gorm:"foreignKey:VolunteerID" json:"-"`
}

// BeforeCreate ensures a UUID is present before persisting.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
