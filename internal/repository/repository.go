package repository

import (
	"time"

	"github.com/rallypoint/rallypoint-api/internal/models"
)

// UserWithHours is a user row augmented with the sum of their approved
// volunteer hours.
type UserWithHours struct {
	models.User
	VolunteerHours float64
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id string) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// FindByResetToken finds a user whose stored reset-token digest matches
	// and whose expiry is still in the future.
	FindByResetToken(digest string, now time.Time) (*models.User, error)

	// Update persists all fields of the user
	Update(user *models.User) error

	// Delete soft deletes a user
	Delete(id string) error

	// ListWithVolunteerHours lists all users newest-first, each with the
	// sum of their approved hour logs.
	ListWithVolunteerHours() ([]UserWithHours, error)
}

// EventFilter holds filtering options for listing events
type EventFilter struct {
	Tag    string
	Page   int
	Limit  int
	Offset int
}

// EventRepository defines the interface for event data access
type EventRepository interface {
	// Create creates a new event
	Create(event *models.Event) error

	// FindByID finds an event by ID
	FindByID(id string) (*models.Event, error)

	// List retrieves events with filtering and pagination, date ascending
	List(filter EventFilter) ([]models.Event, int64, error)

	// Update persists all fields of the event
	Update(event *models.Event) error

	// Delete removes an event along with its registrations and waitlist
	Delete(id string) error

	// CountRegistrations counts active registrations for one event
	CountRegistrations(eventID string) (int64, error)

	// CountRegistrationsForEvents counts active registrations per event id
	CountRegistrationsForEvents(eventIDs []string) (map[string]int64, error)
}

// RegistrationRepository defines the interface for the registration ledger
type RegistrationRepository interface {
	// Join atomically registers a volunteer for an event, enforcing
	// capacity. Returns ErrAlreadyRegistered or ErrEventFull.
	Join(eventID, volunteerID string) error

	// Unregister removes a registration; gorm.ErrRecordNotFound if absent
	Unregister(eventID, volunteerID string) error

	// FindRegistration finds a specific registration
	FindRegistration(eventID, volunteerID string) (*models.Registration, error)

	// ListEventsForVolunteer lists events the volunteer joined, date ascending
	ListEventsForVolunteer(volunteerID string) ([]models.Event, error)

	// JoinWaitlist adds a waitlist entry. Returns ErrAlreadyWaitlisted.
	JoinWaitlist(eventID, volunteerID string, joinedAt time.Time) error

	// ListWaitlistEventsForVolunteer lists events the volunteer is waiting on
	ListWaitlistEventsForVolunteer(volunteerID string) ([]models.Event, error)
}

// HourLogRepository defines the interface for hour log data access
type HourLogRepository interface {
	// Create creates a new hour log
	Create(log *models.HourLog) error

	// FindByID finds an hour log by ID
	FindByID(id string) (*models.HourLog, error)

	// ListByVolunteer lists a volunteer's hour logs newest-first
	ListByVolunteer(volunteerID string) ([]models.HourLog, error)

	// ListAll lists all hour logs newest-first
	ListAll() ([]models.HourLog, error)

	// Update persists all fields of the hour log
	Update(log *models.HourLog) error

	// ApprovedHoursByVolunteer sums approved hours grouped by volunteer id
	ApprovedHoursByVolunteer() (map[string]float64, error)
}
