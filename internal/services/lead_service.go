package services

import (
	"context"
	"strings"
	"time"

	"conectacg_backend/internal/apperrors"
	"conectacg_backend/internal/email"
	"conectacg_backend/internal/logger"
	"conectacg_backend/internal/models"
	"conectacg_backend/internal/repositories"
	"conectacg_backend/internal/services/dto"
)

// WebhookPoster posts a JSON payload to a provider-configured URL.
type WebhookPoster interface {
	Post(ctx context.Context, url string, payload interface{}) error
}

type LeadService interface {
	CreateLead(ctx context.Context, planID string, userID *string, req *dto.CreateLeadRequest) (*models.Lead, error)
	GetLeadsByProvider(providerID string, status models.LeadStatus, page, limit int) (*dto.LeadListResponse, error)
	UpdateLeadStatus(providerID, leadID string, status models.LeadStatus) (*models.Lead, error)
}

type leadService struct {
	leads     repositories.LeadRepository
	plans     repositories.PlanRepository
	analytics repositories.AnalyticsRepository
	webhooks  WebhookPoster
	mailer    email.Mailer
}

// NewLeadService wires the lead pipeline. mailer may be nil when SMTP is not
// configured; the email channel is then skipped.
func NewLeadService(
	leads repositories.LeadRepository,
	plans repositories.PlanRepository,
	analytics repositories.AnalyticsRepository,
	webhooks WebhookPoster,
	mailer email.Mailer,
) LeadService {
	return &leadService{
		leads:     leads,
		plans:     plans,
		analytics: analytics,
		webhooks:  webhooks,
		mailer:    mailer,
	}
}

// CreateLead captures purchase interest in an active plan. Only the lead row
// itself is a critical write; conversion bookkeeping and the provider
// notification are best-effort and never fail the request.
//
// The notification picks one channel: the provider's webhook if configured,
// otherwise its contact email, otherwise nothing. NotificationSent is set
// after the attempt regardless of outcome.
func (s *leadService) CreateLead(ctx context.Context, planID string, userID *string, req *dto.CreateLeadRequest) (*models.Lead, error) {
	plan, err := s.plans.FindActiveByID(planID)
	if err != nil {
		return nil, notFoundOr(err, apperrors.ErrPlanNotFound)
	}

	lead := &models.Lead{
		PlanID:     plan.ID,
		ProviderID: plan.ProviderID,
		UserID:     userID,
		Name:       strings.TrimSpace(req.Name),
		Phone:      strings.TrimSpace(req.Phone),
		Cep:        normalizeCep(req.Cep),
		Status:     models.LeadStatusNew,
	}
	if err := s.leads.Create(lead); err != nil {
		return nil, apperrors.InternalError(err)
	}

	bestEffort(ctx, "lead conversion row", func() error {
		return s.plans.CreateConversion(&models.PlanConversion{PlanID: plan.ID, UserID: userID})
	})
	bestEffort(ctx, "lead conversion counter", func() error {
		return s.plans.IncrementCounter(plan.ID, "conversion_count")
	})
	bestEffort(ctx, "lead daily metric", func() error {
		return s.plans.IncrementDailyMetric(plan.ID, "leads", time.Now())
	})
	recordEvent(ctx, s.analytics, models.EventLeadCaptured, userID)

	s.notifyProvider(ctx, lead, plan)

	bestEffort(ctx, "lead notified stamp", func() error {
		return s.leads.MarkNotified(lead.ID, time.Now())
	})
	lead.NotificationSent = true

	return lead, nil
}

// notifyProvider attempts exactly one notification channel and swallows its
// failure. There is no retry and no dead-letter.
func (s *leadService) notifyProvider(ctx context.Context, lead *models.Lead, plan *models.Plan) {
	account := plan.Provider.Account
	if account == nil {
		return
	}

	if account.WebhookURL != nil && *account.WebhookURL != "" {
		payload := map[string]interface{}{
			"event": "lead.created",
			"lead": map[string]interface{}{
				"id":        lead.ID,
				"name":      lead.Name,
				"phone":     lead.Phone,
				"cep":       lead.Cep,
				"planId":    plan.ID,
				"planName":  plan.Name,
				"createdAt": lead.CreatedAt,
			},
		}
		if err := s.webhooks.Post(ctx, *account.WebhookURL, payload); err != nil {
			logger.WithError(err).Warn("lead webhook failed",
				"leadId", lead.ID, "providerId", lead.ProviderID)
		}
		return
	}

	if s.mailer != nil && account.ContactEmail != nil && *account.ContactEmail != "" {
		if err := s.mailer.SendLeadNotification(*account.ContactEmail, lead, plan.Name, plan.Provider.Name); err != nil {
			logger.WithError(err).Warn("lead email failed",
				"leadId", lead.ID, "providerId", lead.ProviderID)
		}
	}
}

func (s *leadService) GetLeadsByProvider(providerID string, status models.LeadStatus, page, limit int) (*dto.LeadListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	leads, total, err := s.leads.FindByProvider(providerID, status, page, limit)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &dto.LeadListResponse{
		Leads:      leads,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

// UpdateLeadStatus moves a lead between pipeline statuses. Only the owning
// provider may touch it; there is no transition graph.
func (s *leadService) UpdateLeadStatus(providerID, leadID string, status models.LeadStatus) (*models.Lead, error) {
	if !models.ValidLeadStatus(status) {
		return nil, apperrors.NewBadRequestError("Status de lead inválido")
	}

	lead, err := s.leads.FindByID(leadID)
	if err != nil {
		return nil, notFoundOr(err, apperrors.ErrLeadNotFound)
	}
	if lead.ProviderID != providerID {
		return nil, apperrors.ErrForbidden
	}

	if err := s.leads.UpdateStatus(lead.ID, status); err != nil {
		return nil, apperrors.InternalError(err)
	}
	lead.Status = status
	return lead, nil
}
