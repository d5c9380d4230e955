package services

import (
	"context"
	"errors"

	"conectacg_backend/internal/apperrors"
	"conectacg_backend/internal/models"
	"conectacg_backend/internal/repositories"

	"gorm.io/gorm"
)

// specialistThreshold is the favorite count that earns the SPECIALIST badge.
const specialistThreshold = 3

type FavoriteService interface {
	Toggle(ctx context.Context, userID, planID string) (favorited bool, err error)
	List(userID string) ([]models.Favorite, error)
}

type favoriteService struct {
	favorites repositories.FavoriteRepository
	plans     repositories.PlanRepository
	users     repositories.UserRepository
	analytics repositories.AnalyticsRepository
}

func NewFavoriteService(
	favorites repositories.FavoriteRepository,
	plans repositories.PlanRepository,
	users repositories.UserRepository,
	analytics repositories.AnalyticsRepository,
) FavoriteService {
	return &favoriteService{
		favorites: favorites,
		plans:     plans,
		users:     users,
		analytics: analytics,
	}
}

// Toggle flips the favorite state of a plan for a user and reports the new
// state. Crossing the specialist threshold awards the badge; the award is
// idempotent so re-crossing after unfavoriting is harmless.
func (s *favoriteService) Toggle(ctx context.Context, userID, planID string) (bool, error) {
	plan, err := s.plans.FindActiveByID(planID)
	if err != nil {
		return false, notFoundOr(err, apperrors.ErrPlanNotFound)
	}

	existing, err := s.favorites.Find(userID, plan.ID)
	if err != nil {
		return false, apperrors.InternalError(err)
	}

	if existing != nil {
		if err := s.favorites.Delete(existing.ID); err != nil {
			return false, apperrors.InternalError(err)
		}
		recordEvent(ctx, s.analytics, models.EventFavoriteRemoved, &userID)
		return false, nil
	}

	err = s.favorites.Create(&models.Favorite{UserID: userID, PlanID: plan.ID})
	if err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
		return false, apperrors.InternalError(err)
	}
	recordEvent(ctx, s.analytics, models.EventFavoriteAdded, &userID)

	count, err := s.favorites.CountByUser(userID)
	if err == nil && count >= specialistThreshold {
		bestEffort(ctx, "specialist badge", func() error {
			return s.users.AwardBadge(userID, models.BadgeSpecialist)
		})
	}
	return true, nil
}

func (s *favoriteService) List(userID string) ([]models.Favorite, error) {
	favorites, err := s.favorites.FindByUser(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return favorites, nil
}
