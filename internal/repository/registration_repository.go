package repository

import (
	"errors"
	"time"

	"github.com/rallypoint/rallypoint-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrEventFull is returned when a join would exceed the event's capacity.
	ErrEventFull = errors.New("registration repository: event is full")
	// ErrAlreadyRegistered is returned when the volunteer already holds a slot.
	ErrAlreadyRegistered = errors.New("registration repository: already registered")
	// ErrAlreadyWaitlisted is returned when the volunteer is already on the waitlist.
	ErrAlreadyWaitlisted = errors.New("registration repository: already waitlisted")
)

// GormRegistrationRepository is a GORM implementation of RegistrationRepository
type GormRegistrationRepository struct {
	db *gorm.DB
}

// NewRegistrationRepository creates a new RegistrationRepository
func NewRegistrationRepository(db *gorm.DB) RegistrationRepository {
	return &GormRegistrationRepository{db: db}
}

// Join registers a volunteer inside a single transaction that locks the
// event row before recounting, so two concurrent joins at the last slot
// serialize and the loser sees ErrEventFull instead of overbooking.
func (r *GormRegistrationRepository) Join(eventID, volunteerID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		eventQuery := tx
		// SQLite serializes writers on its own and rejects FOR UPDATE.
		if tx.Dialector.Name() != "sqlite" {
			eventQuery = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var event models.Event
		if err := eventQuery.First(&event, "id = ?", eventID).Error; err != nil {
			return err
		}

		var existing models.Registration
		err := tx.Where("event_id = ? AND volunteer_id = ?", eventID, volunteerID).
			First(&existing).Error
		if err == nil {
			return ErrAlreadyRegistered
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		var count int64
		if err := tx.Model(&models.Registration{}).
			Where("event_id = ?", eventID).
			Count(&count).Error; err != nil {
			return err
		}
		if count >= int64(event.SlotsAvailable) {
			return ErrEventFull
		}

		registration := &models.Registration{
			EventID:     eventID,
			VolunteerID: volunteerID,
		}
		if err := tx.Create(registration).Error; err != nil {
			return err
		}

		// Joining clears any waitlist entry for the same pair.
		return tx.Where("event_id = ? AND volunteer_id = ?", eventID, volunteerID).
			Delete(&models.WaitlistEntry{}).Error
	})
}

// Unregister removes a registration. Waitlisted volunteers are not
// promoted into the vacated slot.
func (r *GormRegistrationRepository) Unregister(eventID, volunteerID string) error {
	result := r.db.Where("event_id = ? AND volunteer_id = ?", eventID, volunteerID).
		Delete(&models.Registration{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FindRegistration finds a specific registration
func (r *GormRegistrationRepository) FindRegistration(eventID, volunteerID string) (*models.Registration, error) {
	var registration models.Registration
	err := r.db.Where("event_id = ? AND volunteer_id = ?", eventID, volunteerID).
		First(&registration).Error
	if err != nil {
		return nil, err
	}
	return &registration, nil
}

// ListEventsForVolunteer lists events the volunteer joined, soonest first
func (r *GormRegistrationRepository) ListEventsForVolunteer(volunteerID string) ([]models.Event, error) {
	var events []models.Event
	err := r.db.Joins("JOIN registrations ON registrations.event_id = events.id").
		Where("registrations.volunteer_id = ?", volunteerID).
		Order("events.date ASC").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

// JoinWaitlist adds a waitlist entry. The ledger does not check whether
// the event is actually full; it trusts the caller.
func (r *GormRegistrationRepository) JoinWaitlist(eventID, volunteerID string, joinedAt time.Time) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var existing models.WaitlistEntry
		err := tx.Where("event_id = ? AND volunteer_id = ?", eventID, volunteerID).
			First(&existing).Error
		if err == nil {
			return ErrAlreadyWaitlisted
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		entry := &models.WaitlistEntry{
			EventID:     eventID,
			VolunteerID: volunteerID,
			JoinedAt:    joinedAt,
		}
		return tx.Create(entry).Error
	})
}

// ListWaitlistEventsForVolunteer lists events the volunteer is waiting on
func (r *GormRegistrationRepository) ListWaitlistEventsForVolunteer(volunteerID string) ([]models.Event, error) {
	var events []models.Event
	err := r.db.Joins("JOIN waitlist_entries ON waitlist_entries.event_id = events.id").
		Where("waitlist_entries.volunteer_id = ?", volunteerID).
		Order("events.date ASC").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}
