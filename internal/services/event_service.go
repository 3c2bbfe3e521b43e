package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rallypoint/rallypoint-api/internal/models"
	"github.com/rallypoint/rallypoint-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrEventNotFound     = errors.New("event not found")
	ErrInvalidEventTitle = errors.New("event title cannot be empty")
	ErrInvalidCapacity   = errors.New("slots available must be at least 1")
)

// EventWithStats pairs an event with its derived capacity figures.
type EventWithStats struct {
	models.Event
	RegistrationCount int64
	Remaining         int
}

// Full reports whether the event has no remaining capacity.
func (e *EventWithStats) Full() bool {
	return e.Remaining == 0
}

// EventService provides event catalog logic.
type EventService struct {
	eventRepo repository.EventRepository
}

// NewEventService creates a new EventService.
func NewEventService(eventRepo repository.EventRepository) *EventService {
	return &EventService{
		eventRepo: eventRepo,
	}
}

// CreateEventInput represents parameters to create a new event.
type CreateEventInput struct {
	Title          string
	Description    string
	Date           time.Time
	Location       string
	Tags           []string
	BannerImage    string
	SlotsAvailable int
}

// CreateEvent creates a new event.
func (s *EventService) CreateEvent(input CreateEventInput) (*models.Event, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrInvalidEventTitle
	}
	if input.SlotsAvailable < 1 {
		return nil, ErrInvalidCapacity
	}

	event := &models.Event{
		Title:          strings.TrimSpace(input.Title),
		Description:    input.Description,
		Date:           input.Date,
		Location:       input.Location,
		Tags:           input.Tags,
		BannerImage:    input.BannerImage,
		SlotsAvailable: input.SlotsAvailable,
	}

	if err := s.eventRepo.Create(event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	return event, nil
}

// GetEvent returns an event with its derived registration count.
func (s *EventService) GetEvent(id string) (*EventWithStats, error) {
	event, err := s.eventRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to find event: %w", err)
	}

	count, err := s.eventRepo.CountRegistrations(id)
	if err != nil {
		return nil, fmt.Errorf("failed to count registrations: %w", err)
	}

	return withStats(*event, count), nil
}

// ListEvents returns events soonest-first with derived capacity figures.
func (s *EventService) ListEvents(filter repository.EventFilter) ([]EventWithStats, int64, error) {
	events, total, err := s.eventRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list events: %w", err)
	}

	ids := make([]string, len(events))
	for i, event := range events {
		ids[i] = event.ID
	}

	counts, err := s.eventRepo.CountRegistrationsForEvents(ids)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count registrations: %w", err)
	}

	result := make([]EventWithStats, len(events))
	for i, event := range events {
		result[i] = *withStats(event, counts[event.ID])
	}
	return result, total, nil
}

// UpdateEventInput carries a partial event update.
type UpdateEventInput struct {
	Title          *string
	Description    *string
	Date           *time.Time
	Location       *string
	Tags           []string
	BannerImage    *string
	SlotsAvailable *int
}

// UpdateEvent applies a partial update to an event.
func (s *EventService) UpdateEvent(id string, input UpdateEventInput) (*models.Event, error) {
	event, err := s.eventRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to find event: %w", err)
	}

	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, ErrInvalidEventTitle
		}
		event.Title = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		event.Description = *input.Description
	}
	if input.Date != nil {
		event.Date = *input.Date
	}
	if input.Location != nil {
		event.Location = *input.Location
	}
	if input.Tags != nil {
		event.Tags = input.Tags
	}
	if input.BannerImage != nil {
		event.BannerImage = *input.BannerImage
	}
	if input.SlotsAvailable != nil {
		if *input.SlotsAvailable < 1 {
			return nil, ErrInvalidCapacity
		}
		event.SlotsAvailable = *input.SlotsAvailable
	}

	if err := s.eventRepo.Update(event); err != nil {
		return nil, fmt.Errorf("failed to update event: %w", err)
	}

	return event, nil
}

// DeleteEvent removes an event and its registration/waitlist rows.
func (s *EventService) DeleteEvent(id string) error {
	if _, err := s.eventRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEventNotFound
		}
		return fmt.Errorf("failed to find event: %w", err)
	}

	if err := s.eventRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	return nil
}

func withStats(event models.Event, count int64) *EventWithStats {
	remaining := event.SlotsAvailable - int(count)
	if remaining < 0 {
		remaining = 0
	}
	return &EventWithStats{
		Event:             event,
		RegistrationCount: count,
		Remaining:         remaining,
	}
}
