package repositories

import (
	"conectacg_backend/internal/models"

	"gorm.io/gorm"
)

type CityRepository interface {
	FindActiveBySlug(slug string) (*models.City, error)
	FindActive() ([]models.City, error)
}

type cityRepository struct {
	db *gorm.DB
}

func NewCityRepository(db *gorm.DB) CityRepository {
	return &cityRepository{db: db}
}

func (r *cityRepository) FindActiveBySlug(slug string) (*models.City, error) {
	var city models.City
	if err := r.db.First(&city, "slug = ? AND is_active = ?", slug, true).Error; err != nil {
		return nil, err
	}
	return &city, nil
}

func (r *cityRepository) FindActive() ([]models.City, error) {
	var cities []models.City
	err := r.db.Where("is_active = ?", true).Find(&cities).Error
	return cities, err
}
