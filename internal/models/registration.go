package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Registration links a volunteer to an event they joined. A row existing
// means the volunteer holds a slot; rows are deleted on unregister and
// never mutated. Hard deletes keep the composite unique index honest
// across join/unregister/rejoin cycles.
type Registration struct {
	ID          string    `gorm:"primaryKey;type:uuid" json:"id"`
	EventID     string    `gorm:"type:uuid;not null;uniqueIndex:idx_registrations_event_volunteer" json:"event_id"`
	VolunteerID string    `gorm:"type:uuid;not null;uniqueIndex:idx_registrations_event_volunteer" json:"volunteer_id"`
	CreatedAt   time.Time `json:"created_at"`

	// Relations
	Event     Event `gorm:"foreignKey:EventID" json:"event,omitempty"`
	Volunteer User  `gorm:"foreignKey:VolunteerID" json:"volunteer,omitempty"`
}

// BeforeCreate ensures a UUID is present before persisting.
func (r *Registration) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
