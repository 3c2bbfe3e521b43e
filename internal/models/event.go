package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Event struct {
	ID          string    `gorm:"primaryKey;type:uuid" json:"id"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Date        time.Time `gorm:"not null;index" json:"date"`
	Location    string    `gorm:"type:varchar(255)" json:"location"`
	Tags        []string  `gorm:"serializer:json" json:"tags"`
	BannerImage string    `json:"banner_image"`

	// SlotsAvailable is the total capacity. The live registration count is
	// derived by counting rows, never stored.
	SlotsAvailable int `gorm:"not null" json:"slots_available"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Registrations []Registration  `gorm:"foreignKey:EventID" json:"-"`
	Waitlist      []WaitlistEntry `gorm:"foreignKey:EventID" json:"-"`
}

// BeforeCreate ensures a UUID is present before persisting.
func (e *Event) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}
