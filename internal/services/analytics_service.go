package services

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"conectacg_backend/internal/apperrors"
	"conectacg_backend/internal/models"
	"conectacg_backend/internal/repositories"
	"conectacg_backend/internal/services/dto"

	"gorm.io/datatypes"
)

type AnalyticsService interface {
	Track(ctx context.Context, req *dto.TrackEventRequest, userID *string, ip, userAgent string) error
	AdminStats() (*dto.AdminStatsResponse, error)
}

type analyticsService struct {
	analytics repositories.AnalyticsRepository
	leads     repositories.LeadRepository
	providers repositories.ProviderRepository
}

func NewAnalyticsService(
	analytics repositories.AnalyticsRepository,
	leads repositories.LeadRepository,
	providers repositories.ProviderRepository,
) AnalyticsService {
	return &analyticsService{
		analytics: analytics,
		leads:     leads,
		providers: providers,
	}
}

// Track records one client-side event. Only allowlisted types are accepted;
// server-side event types cannot be injected through this endpoint.
func (s *analyticsService) Track(ctx context.Context, req *dto.TrackEventRequest, userID *string, ip, userAgent string) error {
	if !models.TrackableEvents[req.Type] {
		return apperrors.New(apperrors.CodeEventTypeNotAllowed, "Tipo de evento não suportado", http.StatusBadRequest)
	}

	event := &models.Event{
		Type:      req.Type,
		UserID:    userID,
		SessionID: req.SessionID,
	}
	if ip != "" {
		event.IP = &ip
	}
	if userAgent != "" {
		event.UserAgent = &userAgent
	}
	if len(req.Payload) > 0 {
		raw, err := json.Marshal(req.Payload)
		if err != nil {
			return apperrors.NewBadRequestError("Payload de evento inválido")
		}
		event.Payload = datatypes.JSON(raw)
	}

	if err := s.analytics.CreateEvent(event); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// AdminStats aggregates the platform-wide numbers for super admins.
func (s *analyticsService) AdminStats() (*dto.AdminStatsResponse, error) {
	stats := &dto.AdminStatsResponse{}
	var err error

	if stats.Users, err = s.analytics.CountUsers(); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if stats.Providers, err = s.providers.Count(); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if stats.Plans, err = s.analytics.CountActivePlans(); err != nil {
		return nil, apperrors.InternalError(err)
	}

	since := time.Now().AddDate(0, 0, -30)
	if stats.LeadsThisMonth, err = s.leads.CountSince(since); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if stats.EventBreakdown, err = s.analytics.EventBreakdownSince(since); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return stats, nil
}
