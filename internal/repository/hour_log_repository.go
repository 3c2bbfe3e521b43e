package repository

import (
	"github.com/rallypoint/rallypoint-api/internal/models"
	"gorm.io/gorm"
)

// GormHourLogRepository is a GORM implementation of HourLogRepository
type GormHourLogRepository struct {
	db *gorm.DB
}

// NewHourLogRepository creates a new HourLogRepository
func NewHourLogRepository(db *gorm.DB) HourLogRepository {
	return &GormHourLogRepository{db: db}
}

// Create creates a new hour log
func (r *GormHourLogRepository) Create(log *models.HourLog) error {
	return r.db.Create(log).Error
}

// FindByID finds an hour log by ID
func (r *GormHourLogRepository) FindByID(id string) (*models.HourLog, error) {
	var log models.HourLog
	if err := r.db.First(&log, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &log, nil
}

// ListByVolunteer lists a volunteer's hour logs newest-first
func (r *GormHourLogRepository) ListByVolunteer(volunteerID string) ([]models.HourLog, error) {
	var logs []models.HourLog
	err := r.db.Where("volunteer_id = ?", volunteerID).
		Order("created_at DESC").
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}

// ListAll lists all hour logs newest-first
func (r *GormHourLogRepository) ListAll() ([]models.HourLog, error) {
	var logs []models.HourLog
	if err := r.db.Order("created_at DESC").Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

// Update persists all fields of the hour log
func (r *GormHourLogRepository) Update(log *models.HourLog) error {
	return r.db.Save(log).Error
}

// ApprovedHoursByVolunteer sums approved hours grouped by volunteer id
func (r *GormHourLogRepository) ApprovedHoursByVolunteer() (map[string]float64, error) {
	type row struct {
		VolunteerID string
		TotalHours  float64
	}

	var rows []row
	err := r.db.Model(&models.HourLog{}).
		Select("volunteer_id, COALESCE(SUM(hours), 0) AS total_hours").
		Where("status = ?", models.HourLogApproved).
		Group("volunteer_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	totals := make(map[string]float64, len(rows))
	for _, r := range rows {
		totals[r.VolunteerID] = r.TotalHours
	}
	return totals, nil
}
