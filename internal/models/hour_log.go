package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type HourLogStatus string

const (
	HourLogPending  HourLogStatus = "pending"
	HourLogApproved HourLogStatus = "approved"
	HourLogRejected HourLogStatus = "rejected"
)

// HourLog records volunteer hours claimed against an event. Only approved
// logs count toward a volunteer's computed hour total.
type HourLog struct {
	ID          string        `gorm:"primaryKey;type:uuid" json:"id"`
	VolunteerID string        `gorm:"type:uuid;not null;index" json:"volunteer_id"`
	EventID     string        `gorm:"type:uuid;not null;index" json:"event_id"`
	Hours       float64       `gorm:"not null" json:"hours"`
	Description string        `gorm:"type:text" json:"description"`
	Status      HourLogStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`

	// Relations
	Event     Event `gorm:"foreignKey:EventID" json:"event,omitempty"`
	Volunteer User  `gorm:"foreignKey:VolunteerID" json:"volunteer,omitempty"`
}

// BeforeCreate ensures a UUID is present before persisting.
func (h *HourLog) BeforeCreate(tx *gorm.DB) error {
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	return nil
}
