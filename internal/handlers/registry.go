package handlers

import (
	"conectacg_backend/internal/middleware"
	"conectacg_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// AppHandlers groups every HTTP handler behind one registration point.
type AppHandlers struct {
	Auth      *AuthHandler
	Plans     *PlanHandler
	Favorites *FavoriteHandler
	Alerts    *AlertHandler
	Analytics *AnalyticsHandler
	Providers *ProviderHandler
	Webhooks  *WebhookHandler
}

func NewAppHandlers(svc *services.ServiceContainer, limiter *middleware.RateLimiter) *AppHandlers {
	base := NewBaseHandler()

	return &AppHandlers{
		Auth:      NewAuthHandler(base, svc.Auth, limiter),
		Plans:     NewPlanHandler(base, svc.Plans, svc.Leads, limiter),
		Favorites: NewFavoriteHandler(base, svc.Favorites),
		Alerts:    NewAlertHandler(base, svc.Alerts),
		Analytics: NewAnalyticsHandler(base, svc.Analytics),
		Providers: NewProviderHandler(base, svc.Providers, svc.Leads, svc.Billing, limiter),
		Webhooks:  NewWebhookHandler(base, svc.Billing),
	}
}

// RegisterAll mounts every handler group on the API root.
func (h *AppHandlers) RegisterAll(rg *gin.RouterGroup) {
	h.Auth.RegisterRoutes(rg)
	h.Plans.RegisterRoutes(rg)
	h.Favorites.RegisterRoutes(rg)
	h.Alerts.RegisterRoutes(rg)
	h.Analytics.RegisterRoutes(rg)
	h.Providers.RegisterRoutes(rg)
	h.Webhooks.RegisterRoutes(rg)
}
