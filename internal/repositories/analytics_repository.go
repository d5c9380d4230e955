package repositories

import (
	"time"

	"conectacg_backend/internal/models"

	"gorm.io/gorm"
)

// EventCount is one row of the admin event breakdown.
type EventCount struct {
	Type  string `json:"type"`
	Count int64  `json:"count"`
}

type AnalyticsRepository interface {
	CreateEvent(event *models.Event) error
	CreateSearchHistory(history *models.SearchHistory) error
	EventBreakdownSince(since time.Time) ([]EventCount, error)
	CountUsers() (int64, error)
	CountActivePlans() (int64, error)
}

type analyticsRepository struct {
	db *gorm.DB
}

func NewAnalyticsRepository(db *gorm.DB) AnalyticsRepository {
	return &analyticsRepository{db: db}
}

func (r *analyticsRepository) CreateEvent(event *models.Event) error {
	return r.db.Create(event).Error
}

func (r *analyticsRepository) CreateSearchHistory(history *models.SearchHistory) error {
	return r.db.Create(history).Error
}

func (r *analyticsRepository) EventBreakdownSince(since time.Time) ([]EventCount, error) {
	var rows []EventCount
	err := r.db.Model(&models.Event{}).
		Select("type, count(*) as count").
		Where("created_at >= ?", since).
		Group("type").
		Order("count DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *analyticsRepository) CountUsers() (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).Count(&count).Error
	return count, err
}

func (r *analyticsRepository) CountActivePlans() (int64, error) {
	var count int64
	err := r.db.Model(&models.Plan{}).Where("is_active = ?", true).Count(&count).Error
	return count, err
}
