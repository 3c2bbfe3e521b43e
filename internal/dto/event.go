package dto

import (
	"time"

	"github.com/rallypoint/rallypoint-api/internal/services"
)

// EventDTO represents an event in API responses, including derived
// capacity figures.
type EventDTO struct {
	ID                string    `json:"id"`
	Title             string    `json:"title"`
	Description       string    `json:"description"`
	Date              time.Time `json:"date"`
	Location          string    `json:"location"`
	Tags              []string  `json:"tags,omitempty"`
	BannerImage       string    `json:"banner_image,omitempty"`
	SlotsAvailable    int       `json:"slots_available"`
	RegistrationCount int64     `json:"registration_count"`
	Remaining         int       `json:"remaining"`
	Full              bool      `json:"full"`
	CreatedAt         time.Time `json:"created_at"`
}

// EventListResponse represents a paginated list of events
type EventListResponse struct {
	Events     []EventDTO `json:"events"`
	Page       int        `json:"page"`
	PageSize   int        `json:"page_size"`
	TotalCount int64      `json:"total_count"`
}

// ToEventDTO converts an event with stats to its API projection
func ToEventDTO(event services.EventWithStats) EventDTO {
	return EventDTO{
		ID:                event.ID,
		Title:             event.Title,
		Description:       event.Description,
		Date:              event.Date,
		Location:          event.Location,
		Tags:              event.Tags,
		BannerImage:       event.BannerImage,
		SlotsAvailable:    event.SlotsAvailable,
		RegistrationCount: event.RegistrationCount,
		Remaining:         event.Remaining,
		Full:              event.Full(),
		CreatedAt:         event.CreatedAt,
	}
}
