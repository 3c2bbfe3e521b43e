package services

import (
	"errors"
	"fmt"

	"github.com/rallypoint/rallypoint-api/internal/models"
	"github.com/rallypoint/rallypoint-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrHourLogNotFound = errors.New("hour log not found")
	ErrInvalidHours    = errors.New("hours must be greater than zero")
)

// HourLogService records volunteer hours and handles admin review.
type HourLogService struct {
	hourLogRepo repository.HourLogRepository
	eventRepo   repository.EventRepository
}

// NewHourLogService creates a new HourLogService.
func NewHourLogService(hourLogRepo repository.HourLogRepository, eventRepo repository.EventRepository) *HourLogService {
	return &HourLogService{
		hourLogRepo: hourLogRepo,
		eventRepo:   eventRepo,
	}
}

// LogHoursInput represents a volunteer's hour claim.
type LogHoursInput struct {
	EventID     string
	Hours       float64
	Description string
}

// LogHours creates a pending hour log for the volunteer.
func (s *HourLogService) LogHours(volunteerID string, input LogHoursInput) (*models.HourLog, error) {
	if input.Hours <= 0 {
		return nil, ErrInvalidHours
	}

	if _, err := s.eventRepo.FindByID(input.EventID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to find event: %w", err)
	}

	log := &models.HourLog{
		VolunteerID: volunteerID,
		EventID:     input.EventID,
		Hours:       input.Hours,
		Description: input.Description,
		Status:      models.HourLogPending,
	}

	if err := s.hourLogRepo.Create(log); err != nil {
		return nil, fmt.Errorf("failed to create hour log: %w", err)
	}

	return log, nil
}

// ListMine returns the volunteer's hour logs newest-first.
func (s *HourLogService) ListMine(volunteerID string) ([]models.HourLog, error) {
	logs, err := s.hourLogRepo.ListByVolunteer(volunteerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list hour logs: %w", err)
	}
	return logs, nil
}

// ListAll returns every hour log newest-first.
func (s *HourLogService) ListAll() ([]models.HourLog, error) {
	logs, err := s.hourLogRepo.ListAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list hour logs: %w", err)
	}
	return logs, nil
}

// SetStatus approves or rejects an hour log.
func (s *HourLogService) SetStatus(id string, status models.HourLogStatus) (*models.HourLog, error) {
	if status != models.HourLogApproved && status != models.HourLogRejected {
		return nil, ErrInvalidStatus
	}

	log, err := s.hourLogRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHourLogNotFound
		}
		return nil, fmt.Errorf("failed to find hour log: %w", err)
	}

	log.Status = status
	if err := s.hourLogRepo.Update(log); err != nil {
		return nil, fmt.Errorf("failed to update hour log: %w", err)
	}

	return log, nil
}
