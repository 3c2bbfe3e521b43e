package repository

import (
	"github.com/rallypoint/rallypoint-api/internal/models"
	"gorm.io/gorm"
)

// GormEventRepository is a GORM implementation of EventRepository
type GormEventRepository struct {
	db *gorm.DB
}

// NewEventRepository creates a new EventRepository
func NewEventRepository(db *gorm.DB) EventRepository {
	return &GormEventRepository{db: db}
}

// Create creates a new event
func (r *GormEventRepository) Create(event *models.Event) error {
	return r.db.Create(event).Error
}

// FindByID finds an event by ID
func (r *GormEventRepository) FindByID(id string) (*models.Event, error) {
	var event models.Event
	if err := r.db.First(&event, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

// List retrieves events with filtering and pagination, soonest first
func (r *GormEventRepository) List(filter EventFilter) ([]models.Event, int64, error) {
	query := r.db.Model(&models.Event{})

	// Tags are stored as a JSON array; a substring match keeps the filter
	// portable across the supported drivers.
	if filter.Tag != "" {
		query = query.Where("tags LIKE ?", "%\""+filter.Tag+"\"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var events []models.Event
	err := query.Order("date ASC").
		Offset(filter.Offset).
		Limit(filter.Limit).
		Find(&events).Error
	if err != nil {
		return nil, 0, err
	}

	return events, total, nil
}

// Update persists all fields of the event
func (r *GormEventRepository) Update(event *models.Event) error {
	return r.db.Save(event).Error
}

// Delete removes an event along with its registrations and waitlist entries
func (r *GormEventRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", id).Delete(&models.Registration{}).Error; err != nil {
			return err
		}

		if err := tx.Where("event_id = ?", id).Delete(&models.WaitlistEntry{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Event{}, "id = ?", id).Error
	})
}

// CountRegistrations counts active registrations for one event
func (r *GormEventRepository) CountRegistrations(eventID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Registration{}).
		Where("event_id = ?", eventID).
		Count(&count).Error
	return count, err
}

// CountRegistrationsForEvents counts active registrations per event id
func (r *GormEventRepository) CountRegistrationsForEvents(eventIDs []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(eventIDs))
	if len(eventIDs) == 0 {
		return counts, nil
	}

	type row struct {
		EventID string
		Total   int64
	}

	var rows []row
	err := r.db.Model(&models.Registration{}).
		Select("event_id, COUNT(*) AS total").
		Where("event_id IN ?", eventIDs).
		Group("event_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, r := range rows {
		counts[r.EventID] = r.Total
	}
	return counts, nil
}
