package repositories

import (
	"errors"

	"conectacg_backend/internal/models"

	"gorm.io/gorm"
)

type FavoriteRepository interface {
	Find(userID, planID string) (*models.Favorite, error)
	Create(favorite *models.Favorite) error
	Delete(id string) error
	CountByUser(userID string) (int64, error)
	IsFavorited(userID, planID string) (bool, error)
	FindByUser(userID string) ([]models.Favorite, error)
}

type favoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

func (r *favoriteRepository) Find(userID, planID string) (*models.Favorite, error) {
	var favorite models.Favorite
	err := r.db.First(&favorite, "user_id = ? AND plan_id = ?", userID, planID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &favorite, nil
}

func (r *favoriteRepository) Create(favorite *models.Favorite) error {
	return r.db.Create(favorite).Error
}

func (r *favoriteRepository) Delete(id string) error {
	return r.db.Delete(&models.Favorite{}, "id = ?", id).Error
}

func (r *favoriteRepository) CountByUser(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Favorite{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *favoriteRepository) IsFavorited(userID, planID string) (bool, error) {
	fav, err := r.Find(userID, planID)
	if err != nil {
		return false, err
	}
	return fav != nil, nil
}

func (r *favoriteRepository) FindByUser(userID string) ([]models.Favorite, error) {
	var favorites []models.Favorite
	err := r.db.
		Preload("Plan").
		Preload("Plan.Provider").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&favorites).Error
	return favorites, err
}
