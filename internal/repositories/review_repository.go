package repositories

import (
	"errors"

	"conectacg_backend/internal/models"

	"gorm.io/gorm"
)

type ReviewRepository interface {
	Create(review *models.Review) error
	Exists(userID, planID string) (bool, error)
	FindRecentByPlan(planID string, limit int) ([]models.Review, error)
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(review *models.Review) error {
	return r.db.Create(review).Error
}

func (r *reviewRepository) Exists(userID, planID string) (bool, error) {
	var review models.Review
	err := r.db.Select("id").First(&review, "user_id = ? AND plan_id = ?", userID, planID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *reviewRepository) FindRecentByPlan(planID string, limit int) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.
		Preload("User", func(db *gorm.DB) *gorm.DB { return db.Select("id", "name") }).
		Where("plan_id = ?", planID).
		Order("created_at DESC").
		Limit(limit).
		Find(&reviews).Error
	return reviews, err
}
