package repositories

import (
	"time"

	"conectacg_backend/internal/models"

	"gorm.io/gorm"
)

type AlertRepository interface {
	Create(alert *models.PriceAlert) error
	FindByID(id string) (*models.PriceAlert, error)
	FindByUser(userID string) ([]models.PriceAlert, error)
	FindActive() ([]models.PriceAlert, error)
	CountActiveByUser(userID string) (int64, error)
	Delete(id string) error
	StampTriggered(id string, at time.Time) error
}

type alertRepository struct {
	db *gorm.DB
}

func NewAlertRepository(db *gorm.DB) AlertRepository {
	return &alertRepository{db: db}
}

func (r *alertRepository) Create(alert *models.PriceAlert) error {
	return r.db.Create(alert).Error
}

func (r *alertRepository) FindByID(id string) (*models.PriceAlert, error) {
	var alert models.PriceAlert
	if err := r.db.First(&alert, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &alert, nil
}

func (r *alertRepository) FindByUser(userID string) ([]models.PriceAlert, error) {
	var alerts []models.PriceAlert
	err := r.db.
		Preload("Plan", func(db *gorm.DB) *gorm.DB { return db.Select("id", "name", "price") }).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&alerts).Error
	return alerts, err
}

func (r *alertRepository) FindActive() ([]models.PriceAlert, error) {
	var alerts []models.PriceAlert
	err := r.db.
		Preload("User", func(db *gorm.DB) *gorm.DB { return db.Select("id", "email") }).
		Where("is_active = ?", true).
		Find(&alerts).Error
	return alerts, err
}

func (r *alertRepository) CountActiveByUser(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.PriceAlert{}).
		Where("user_id = ? AND is_active = ?", userID, true).
		Count(&count).Error
	return count, err
}

func (r *alertRepository) Delete(id string) error {
	return r.db.Delete(&models.PriceAlert{}, "id = ?", id).Error
}

func (r *alertRepository) StampTriggered(id string, at time.Time) error {
	return r.db.Model(&models.PriceAlert{}).
		Where("id = ?", id).
		Update("last_triggered_at", at).Error
}
