package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WaitlistEntry records a volunteer waiting on a full event. JoinedAt
// preserves queue order even though unregister does not promote anyone.
type WaitlistEntry struct {
	ID          string    `gorm:"primaryKey;type:uuid" json:"id"`
	EventID     string    `gorm:"type:uuid;not null;uniqueIndex:idx_waitlist_event_volunteer" json:"event_id"`
	VolunteerID string    `gorm:"type:uuid;not null;uniqueIndex:idx_waitlist_event_volunteer" json:"volunteer_id"`
	JoinedAt    time.Time `gorm:"not null" json:"joined_at"`

	// Relations
	Event     Event `gorm:"foreignKey:EventID" json:"event,omitempty"`
	Volunteer User  `gorm:"foreignKey:VolunteerID" json:"volunteer,omitempty"`
}

// BeforeCreate ensures a UUID is present before persisting.
func (w *WaitlistEntry) BeforeCreate(tx *gorm.DB) error {
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	return nil
}
