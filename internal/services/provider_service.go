package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"conectacg_backend/internal/apperrors"
	"conectacg_backend/internal/auth"
	"conectacg_backend/internal/models"
	"conectacg_backend/internal/repositories"
	"conectacg_backend/internal/services/dto"

	"gorm.io/gorm"
)

const dashboardTopPlans = 5

type ProviderService interface {
	RegisterProvider(ctx context.Context, req *dto.RegisterProviderRequest) (*dto.RegisterProviderResponse, error)
	GetDashboard(providerID string) (*dto.DashboardResponse, error)

	ListPlans(providerID string) ([]models.Plan, error)
	CreatePlan(ctx context.Context, providerID string, req *dto.CreatePlanRequest) (*models.Plan, error)
	UpdatePlan(ctx context.Context, providerID, planID string, req *dto.UpdatePlanRequest) (*models.Plan, error)
	DeactivatePlan(providerID, planID string) error
}

type providerService struct {
	db        *gorm.DB
	providers repositories.ProviderRepository
	plans     repositories.PlanRepository
	leads     repositories.LeadRepository
	users     repositories.UserRepository
	cities    repositories.CityRepository

	defaultCitySlug string
}

func NewProviderService(
	db *gorm.DB,
	providers repositories.ProviderRepository,
	plans repositories.PlanRepository,
	leads repositories.LeadRepository,
	users repositories.UserRepository,
	cities repositories.CityRepository,
	defaultCitySlug string,
) ProviderService {
	return &providerService{
		db:              db,
		providers:       providers,
		plans:           plans,
		leads:           leads,
		users:           users,
		cities:          cities,
		defaultCitySlug: defaultCitySlug,
	}
}

// RegisterProvider creates the provider, its FREE billing account, the admin
// user and the membership row in one transaction. A duplicate slug or email
// is a conflict.
func (s *providerService) RegisterProvider(ctx context.Context, req *dto.RegisterProviderRequest) (*dto.RegisterProviderResponse, error) {
	slug := strings.ToLower(strings.TrimSpace(req.Slug))

	exists, err := s.providers.SlugExists(slug)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if exists {
		return nil, apperrors.ErrSlugAlreadyExists
	}

	adminEmail := strings.ToLower(strings.TrimSpace(req.AdminEmail))
	if _, err := s.users.FindByEmail(adminEmail); err == nil {
		return nil, apperrors.ErrEmailAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.InternalError(err)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	provider := &models.Provider{
		Name:    strings.TrimSpace(req.ProviderName),
		Slug:    slug,
		Cnpj:    req.Cnpj,
		Website: req.Website,
	}
	adminName := strings.TrimSpace(req.AdminName)
	user := &models.User{
		Name:     adminName,
		Email:    adminEmail,
		Password: hash,
		Role:     models.UserRoleProviderAdmin,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(provider).Error; err != nil {
			return err
		}
		account := &models.ProviderAccount{
			ProviderID:   provider.ID,
			Tier:         models.TierFree,
			IsActive:     true,
			ContactName:  &adminName,
			ContactEmail: &adminEmail,
			ContactPhone: req.ContactPhone,
		}
		if err := tx.Create(account).Error; err != nil {
			return err
		}
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		return tx.Create(&models.ProviderUser{
			ProviderID: provider.ID,
			UserID:     user.ID,
			Role:       models.UserRoleProviderAdmin,
		}).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.NewConflictError(apperrors.CodeSlugAlreadyExists, "Operadora ou e-mail já cadastrado")
		}
		return nil, apperrors.InternalError(err)
	}

	return &dto.RegisterProviderResponse{
		Provider: provider,
		User:     userResponse(user),
	}, nil
}

// GetDashboard aggregates the provider's lead funnel and plan performance.
func (s *providerService) GetDashboard(providerID string) (*dto.DashboardResponse, error) {
	provider, err := s.providers.FindByIDWithAccount(providerID)
	if err != nil {
		return nil, notFoundOr(err, apperrors.ErrAccountNotFound)
	}

	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	metrics := dto.DashboardMetrics{Tier: models.TierFree}
	if provider.Account != nil {
		metrics.Tier = provider.Account.Tier
	}

	if metrics.LeadsToday, err = s.leads.CountByProviderSince(providerID, midnight); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if metrics.LeadsWeek, err = s.leads.CountByProviderSince(providerID, now.AddDate(0, 0, -7)); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if metrics.LeadsMonth, err = s.leads.CountByProviderSince(providerID, now.AddDate(0, 0, -30)); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if metrics.TotalLeads, err = s.leads.CountByProvider(providerID); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if metrics.LeadsByStatus, err = s.leads.CountByStatus(providerID); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if metrics.TotalPlans, err = s.providers.CountActivePlans(providerID); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if metrics.TopPlans, err = s.plans.FindTopByConversions(providerID, dashboardTopPlans); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.DashboardResponse{Provider: provider, Metrics: metrics}, nil
}

func (s *providerService) ListPlans(providerID string) ([]models.Plan, error) {
	plans, err := s.plans.FindByProvider(providerID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return plans, nil
}

func (s *providerService) CreatePlan(ctx context.Context, providerID string, req *dto.CreatePlanRequest) (*models.Plan, error) {
	citySlug := req.CitySlug
	if citySlug == "" {
		citySlug = s.defaultCitySlug
	}
	city, err := s.cities.FindActiveBySlug(citySlug)
	if err != nil {
		return nil, notFoundOr(err, apperrors.ErrCityNotFound)
	}

	promoExpires, err := parsePromotionExpiry(req.PromotionExpiresAt)
	if err != nil {
		return nil, err
	}

	plan := &models.Plan{
		ProviderID:       providerID,
		CityID:           city.ID,
		Name:             strings.TrimSpace(req.Name),
		DownloadSpeed:    req.DownloadSpeed,
		UploadSpeed:      req.UploadSpeed,
		Price:            req.Price,
		Fidelidade:       req.Fidelidade,
		Capacidade:       req.Capacidade,
		ServicosInclusos: models.StringList(req.ServicosInclusos),
		IndicadoPara:     models.StringList(req.IndicadoPara),
		Categorias:       models.StringList(req.Categorias),
		CepsAtendidos:    models.StringList(normalizeCepPrefixes(req.CepsAtendidos)),
		PromotionPrice:   req.PromotionPrice,
		PromotionLabel:   req.PromotionLabel,
		IsActive:         true,
	}
	plan.PromotionExpiresAt = promoExpires

	if err := s.plans.Create(plan); err != nil {
		return nil, apperrors.InternalError(err)
	}

	bestEffort(ctx, "price snapshot", func() error {
		return s.plans.CreateSnapshot(&models.PriceSnapshot{PlanID: plan.ID, Price: plan.Price})
	})
	return plan, nil
}

func (s *providerService) UpdatePlan(ctx context.Context, providerID, planID string, req *dto.UpdatePlanRequest) (*models.Plan, error) {
	plan, err := s.plans.FindByID(planID)
	if err != nil {
		return nil, notFoundOr(err, apperrors.ErrPlanNotFound)
	}
	if plan.ProviderID != providerID {
		return nil, apperrors.ErrForbidden
	}

	priceChanged := false
	if req.Name != nil {
		plan.Name = strings.TrimSpace(*req.Name)
	}
	if req.DownloadSpeed != nil {
		plan.DownloadSpeed = *req.DownloadSpeed
	}
	if req.UploadSpeed != nil {
		plan.UploadSpeed = *req.UploadSpeed
	}
	if req.Price != nil && *req.Price != plan.Price {
		plan.Price = *req.Price
		priceChanged = true
	}
	if req.Fidelidade != nil {
		plan.Fidelidade = *req.Fidelidade
	}
	if req.Capacidade != nil {
		plan.Capacidade = req.Capacidade
	}
	if req.ServicosInclusos != nil {
		plan.ServicosInclusos = models.StringList(req.ServicosInclusos)
	}
	if req.IndicadoPara != nil {
		plan.IndicadoPara = models.StringList(req.IndicadoPara)
	}
	if req.Categorias != nil {
		plan.Categorias = models.StringList(req.Categorias)
	}
	if req.CepsAtendidos != nil {
		plan.CepsAtendidos = models.StringList(normalizeCepPrefixes(req.CepsAtendidos))
	}
	if req.PromotionPrice != nil {
		plan.PromotionPrice = req.PromotionPrice
	}
	if req.PromotionExpiresAt != nil {
		expires, err := parsePromotionExpiry(req.PromotionExpiresAt)
		if err != nil {
			return nil, err
		}
		plan.PromotionExpiresAt = expires
	}
	if req.PromotionLabel != nil {
		plan.PromotionLabel = req.PromotionLabel
	}
	if req.IsActive != nil {
		plan.IsActive = *req.IsActive
	}

	if err := s.plans.Save(plan); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if priceChanged {
		bestEffort(ctx, "price snapshot", func() error {
			return s.plans.CreateSnapshot(&models.PriceSnapshot{PlanID: plan.ID, Price: plan.Price})
		})
	}
	return plan, nil
}

// DeactivatePlan soft-deletes; plans are never removed from the catalog's
// history.
func (s *providerService) DeactivatePlan(providerID, planID string) error {
	plan, err := s.plans.FindByID(planID)
	if err != nil {
		return notFoundOr(err, apperrors.ErrPlanNotFound)
	}
	if plan.ProviderID != providerID {
		return apperrors.ErrForbidden
	}

	plan.IsActive = false
	if err := s.plans.Save(plan); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func parsePromotionExpiry(raw *string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, *raw)
	if err != nil {
		return nil, apperrors.NewBadRequestError("Data de expiração da promoção inválida")
	}
	return &t, nil
}

func normalizeCepPrefixes(raw []string) []string {
	prefixes := make([]string, 0, len(raw))
	for _, c := range raw {
		if p := cepPrefix(c); p != "" {
			prefixes = append(prefixes, p)
		}
	}
	return prefixes
}
