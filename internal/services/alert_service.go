package services

import (
	"context"
	"time"

	"conectacg_backend/internal/apperrors"
	"conectacg_backend/internal/email"
	"conectacg_backend/internal/logger"
	"conectacg_backend/internal/models"
	"conectacg_backend/internal/repositories"
	"conectacg_backend/internal/services/dto"
)

// maxActiveAlerts caps standing alerts per user.
const maxActiveAlerts = 5

// alertCooldown keeps an alert from re-firing on every batch run while its
// matches are unchanged.
const alertCooldown = 24 * time.Hour

type AlertService interface {
	Create(ctx context.Context, userID string, req *dto.CreateAlertRequest) (*models.PriceAlert, error)
	List(userID string) ([]models.PriceAlert, error)
	Delete(userID, alertID string) error
	ProcessAlerts(ctx context.Context) (int, error)
}

type alertService struct {
	alerts    repositories.AlertRepository
	plans     repositories.PlanRepository
	analytics repositories.AnalyticsRepository
	mailer    email.Mailer
}

// NewAlertService wires the price-alert flows. mailer may be nil; the batch
// then only stamps matches without sending.
func NewAlertService(
	alerts repositories.AlertRepository,
	plans repositories.PlanRepository,
	analytics repositories.AnalyticsRepository,
	mailer email.Mailer,
) AlertService {
	return &alertService{
		alerts:    alerts,
		plans:     plans,
		analytics: analytics,
		mailer:    mailer,
	}
}

func (s *alertService) Create(ctx context.Context, userID string, req *dto.CreateAlertRequest) (*models.PriceAlert, error) {
	active, err := s.alerts.CountActiveByUser(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if active >= maxActiveAlerts {
		return nil, apperrors.ErrAlertLimitReached
	}

	if req.PlanID != nil {
		if _, err := s.plans.FindActiveByID(*req.PlanID); err != nil {
			return nil, notFoundOr(err, apperrors.ErrPlanNotFound)
		}
	}

	alert := &models.PriceAlert{
		UserID:   userID,
		Cep:      normalizeCep(req.Cep),
		MaxPrice: req.MaxPrice,
		MinSpeed: req.MinSpeed,
		PlanID:   req.PlanID,
		IsActive: true,
	}
	if err := s.alerts.Create(alert); err != nil {
		return nil, apperrors.InternalError(err)
	}

	recordEvent(ctx, s.analytics, models.EventAlertCreated, &userID)
	return alert, nil
}

func (s *alertService) List(userID string) ([]models.PriceAlert, error) {
	alerts, err := s.alerts.FindByUser(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return alerts, nil
}

func (s *alertService) Delete(userID, alertID string) error {
	alert, err := s.alerts.FindByID(alertID)
	if err != nil {
		return notFoundOr(err, apperrors.ErrAlertNotFound)
	}
	if alert.UserID != userID {
		return apperrors.ErrForbidden
	}
	if err := s.alerts.Delete(alert.ID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// ProcessAlerts runs the daily matching batch. Each active alert is matched
// against the current active plans; matches trigger one email and a
// LastTriggeredAt stamp. Failures are logged per alert and the batch keeps
// going. Returns how many alerts fired.
func (s *alertService) ProcessAlerts(ctx context.Context) (int, error) {
	alerts, err := s.alerts.FindActive()
	if err != nil {
		return 0, apperrors.InternalError(err)
	}
	if len(alerts) == 0 {
		return 0, nil
	}

	plans, err := s.plans.FindActive()
	if err != nil {
		return 0, apperrors.InternalError(err)
	}

	now := time.Now()
	fired := 0
	for i := range alerts {
		alert := &alerts[i]
		if alert.LastTriggeredAt != nil && now.Sub(*alert.LastTriggeredAt) < alertCooldown {
			continue
		}

		matches := matchAlert(alert, plans, now)
		if len(matches) == 0 {
			continue
		}

		if s.mailer != nil && alert.User.Email != "" {
			if err := s.mailer.SendPriceAlert(alert.User.Email, matches, alert); err != nil {
				logger.WithError(err).Warn("price alert email failed", "alertId", alert.ID)
			}
		}
		bestEffort(ctx, "alert trigger stamp", func() error {
			return s.alerts.StampTriggered(alert.ID, now)
		})
		fired++
	}
	return fired, nil
}

// matchAlert filters plans against one alert's criteria. An active promotion
// counts as the plan's price.
func matchAlert(alert *models.PriceAlert, plans []models.Plan, now time.Time) []models.Plan {
	prefix := cepPrefix(alert.Cep)

	var matches []models.Plan
	for i := range plans {
		plan := plans[i]
		if alert.PlanID != nil && plan.ID != *alert.PlanID {
			continue
		}
		if prefix != "" && !plan.ServesCep(prefix) {
			continue
		}

		price := plan.Price
		if plan.PromotionActive(now) {
			price = *plan.PromotionPrice
		}
		if price > alert.MaxPrice {
			continue
		}
		if alert.MinSpeed != nil && plan.DownloadSpeed < *alert.MinSpeed {
			continue
		}
		matches = append(matches, plan)
	}
	return matches
}
