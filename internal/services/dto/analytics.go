package dto

import "conectacg_backend/internal/repositories"

type TrackEventRequest struct {
	Type      string                 `json:"type" validate:"required"`
	SessionID *string                `json:"sessionId,omitempty"`
	Payload   map[string]interface{} `json:"payload,omitempty"`
}

// AdminStatsResponse is the platform-wide aggregate for super admins.
type AdminStatsResponse struct {
	Users          int64                     `json:"users"`
	Providers      int64                     `json:"providers"`
	Plans          int64                     `json:"plans"`
	LeadsThisMonth int64                     `json:"leadsThisMonth"`
	EventBreakdown []repositories.EventCount `json:"eventBreakdown"`
}
