package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/rallypoint/rallypoint-api/internal/models"
	"github.com/rallypoint/rallypoint-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrEventFull         = errors.New("event is full")
	ErrAlreadyRegistered = errors.New("already registered for this event")
	ErrNotRegistered     = errors.New("not registered for this event")
	ErrAlreadyWaitlisted = errors.New("already on the waitlist for this event")
)

// RegistrationService implements the event registration ledger.
type RegistrationService struct {
	registrationRepo repository.RegistrationRepository
	eventRepo        repository.EventRepository
}

// NewRegistrationService creates a new RegistrationService.
func NewRegistrationService(registrationRepo repository.RegistrationRepository, eventRepo repository.EventRepository) *RegistrationService {
	return &RegistrationService{
		registrationRepo: registrationRepo,
		eventRepo:        eventRepo,
	}
}

// Join registers the volunteer for the event, enforcing capacity
// atomically at the storage layer. Callers must treat ErrEventFull as
// possible even after an optimistic client-side check.
func (s *RegistrationService) Join(volunteerID, eventID string) error {
	err := s.registrationRepo.Join(eventID, volunteerID)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrEventNotFound
	case errors.Is(err, repository.ErrAlreadyRegistered):
		return ErrAlreadyRegistered
	case errors.Is(err, repository.ErrEventFull):
		return ErrEventFull
	default:
		return fmt.Errorf("failed to join event: %w", err)
	}
}

// Unregister removes the volunteer's registration. It does not promote
// anyone from the waitlist into the vacated slot.
func (s *RegistrationService) Unregister(volunteerID, eventID string) error {
	err := s.registrationRepo.Unregister(eventID, volunteerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotRegistered
		}
		return fmt.Errorf("failed to unregister: %w", err)
	}
	return nil
}

// JoinWaitlist puts the volunteer on the event's waitlist.
func (s *RegistrationService) JoinWaitlist(volunteerID, eventID string) error {
	if _, err := s.eventRepo.FindByID(eventID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEventNotFound
		}
		return fmt.Errorf("failed to find event: %w", err)
	}

	err := s.registrationRepo.JoinWaitlist(eventID, volunteerID, time.Now())
	if err != nil {
		if errors.Is(err, repository.ErrAlreadyWaitlisted) {
			return ErrAlreadyWaitlisted
		}
		return fmt.Errorf("failed to join waitlist: %w", err)
	}
	return nil
}

// ListMyEvents returns the events the volunteer has joined.
func (s *RegistrationService) ListMyEvents(volunteerID string) ([]models.Event, error) {
	events, err := s.registrationRepo.ListEventsForVolunteer(volunteerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list registrations: %w", err)
	}
	return events, nil
}

// ListMyWaitlist returns the events the volunteer is waitlisted for.
func (s *RegistrationService) ListMyWaitlist(volunteerID string) ([]models.Event, error) {
	events, err := s.registrationRepo.ListWaitlistEventsForVolunteer(volunteerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list waitlist: %w", err)
	}
	return events, nil
}
