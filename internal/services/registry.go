package services

import (
	"conectacg_backend/internal/config"
	"conectacg_backend/internal/email"
	"conectacg_backend/internal/repositories"

	"gorm.io/gorm"
)

// ServiceContainer wires every service over a shared set of repositories.
// Handlers receive it whole and pick what they need.
type ServiceContainer struct {
	Auth      AuthService
	Plans     PlanService
	Leads     LeadService
	Favorites FavoriteService
	Alerts    AlertService
	Providers ProviderService
	Billing   BillingService
	Analytics AnalyticsService
}

// NewServiceContainer builds the full dependency graph. mailer may be nil
// when SMTP is not configured.
func NewServiceContainer(db *gorm.DB, cfg *config.Config, mailer email.Mailer, webhooks WebhookPoster) *ServiceContainer {
	users := repositories.NewUserRepository(db)
	cities := repositories.NewCityRepository(db)
	plans := repositories.NewPlanRepository(db)
	reviews := repositories.NewReviewRepository(db)
	leads := repositories.NewLeadRepository(db)
	favorites := repositories.NewFavoriteRepository(db)
	alerts := repositories.NewAlertRepository(db)
	providers := repositories.NewProviderRepository(db)
	analytics := repositories.NewAnalyticsRepository(db)

	defaultCity := cfg.Marketplace.DefaultCitySlug

	return &ServiceContainer{
		Auth:      NewAuthService(users, analytics),
		Plans:     NewPlanService(plans, cities, reviews, favorites, users, analytics, defaultCity),
		Leads:     NewLeadService(leads, plans, analytics, webhooks, mailer),
		Favorites: NewFavoriteService(favorites, plans, users, analytics),
		Alerts:    NewAlertService(alerts, plans, analytics, mailer),
		Providers: NewProviderService(db, providers, plans, leads, users, cities, defaultCity),
		Billing:   NewBillingService(providers, cfg.Billing.CallbackSecret, cfg.Billing.CheckoutURL, cfg.Billing.PortalURL),
		Analytics: NewAnalyticsService(analytics, leads, providers),
	}
}
