package repositories

import (
	"time"

	"conectacg_backend/internal/models"

	"gorm.io/gorm"
)

type LeadRepository interface {
	Create(lead *models.Lead) error
	FindByID(id string) (*models.Lead, error)
	UpdateStatus(id string, status models.LeadStatus) error
	MarkNotified(id string, at time.Time) error
	FindByProvider(providerID string, status models.LeadStatus, page, limit int) ([]models.Lead, int64, error)
	CountByProviderSince(providerID string, since time.Time) (int64, error)
	CountByProvider(providerID string) (int64, error)
	CountByStatus(providerID string) (map[models.LeadStatus]int64, error)
	CountSince(since time.Time) (int64, error)
}

type leadRepository struct {
	db *gorm.DB
}

func NewLeadRepository(db *gorm.DB) LeadRepository {
	return &leadRepository{db: db}
}

func (r *leadRepository) Create(lead *models.Lead) error {
	return r.db.Create(lead).Error
}

func (r *leadRepository) FindByID(id string) (*models.Lead, error) {
	var lead models.Lead
	if err := r.db.First(&lead, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &lead, nil
}

func (r *leadRepository) UpdateStatus(id string, status models.LeadStatus) error {
	return r.db.Model(&models.Lead{}).Where("id = ?", id).Update("status", status).Error
}

// MarkNotified stamps the lead as notified. This records the attempt, not
// delivery.
func (r *leadRepository) MarkNotified(id string, at time.Time) error {
	return r.db.Model(&models.Lead{}).Where("id = ?", id).Updates(map[string]interface{}{
		"notification_sent":    true,
		"provider_notified_at": at,
	}).Error
}

func (r *leadRepository) FindByProvider(providerID string, status models.LeadStatus, page, limit int) ([]models.Lead, int64, error) {
	query := r.db.Model(&models.Lead{}).Where("provider_id = ?", providerID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var leads []models.Lead
	err := query.
		Preload("Plan", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "download_speed", "price")
		}).
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&leads).Error
	return leads, total, err
}

func (r *leadRepository) CountByProviderSince(providerID string, since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.Lead{}).
		Where("provider_id = ? AND created_at >= ?", providerID, since).
		Count(&count).Error
	return count, err
}

func (r *leadRepository) CountByProvider(providerID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Lead{}).Where("provider_id = ?", providerID).Count(&count).Error
	return count, err
}

func (r *leadRepository) CountByStatus(providerID string) (map[models.LeadStatus]int64, error) {
	type row struct {
		Status models.LeadStatus
		Count  int64
	}
	var rows []row
	err := r.db.Model(&models.Lead{}).
		Select("status, count(*) as count").
		Where("provider_id = ?", providerID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[models.LeadStatus]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Count
	}
	return counts, nil
}

func (r *leadRepository) CountSince(since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.Lead{}).Where("created_at >= ?", since).Count(&count).Error
	return count, err
}
