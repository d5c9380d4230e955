package dto

import "conectacg_backend/internal/models"

type RegisterProviderRequest struct {
	ProviderName string  `json:"providerName" validate:"required,min=2"`
	Slug         string  `json:"slug" validate:"required,min=2,max=60"`
	Cnpj         *string `json:"cnpj,omitempty"`
	Website      *string `json:"website,omitempty" validate:"omitempty,url"`
	AdminName    string  `json:"adminName" validate:"required,min=2"`
	AdminEmail   string  `json:"adminEmail" validate:"required,email"`
	Password     string  `json:"password" validate:"required,min=8"`
	ContactPhone *string `json:"contactPhone,omitempty"`
}

type RegisterProviderResponse struct {
	Provider *models.Provider `json:"provider"`
	User     UserResponse     `json:"user"`
}

// DashboardMetrics is the B2B dashboard aggregate.
type DashboardMetrics struct {
	LeadsToday    int64                       `json:"leadsToday"`
	LeadsWeek     int64                       `json:"leadsWeek"`
	LeadsMonth    int64                       `json:"leadsMonth"`
	TotalPlans    int64                       `json:"totalPlans"`
	TotalLeads    int64                       `json:"totalLeads"`
	LeadsByStatus map[models.LeadStatus]int64 `json:"leadsByStatus"`
	TopPlans      []models.Plan               `json:"topPlans"`
	Tier          models.BillingTier          `json:"tier"`
}

type CheckoutRequest struct {
	Tier string `json:"tier" validate:"required,is-billing-tier"`
}

type DashboardResponse struct {
	Provider *models.Provider `json:"provider"`
	Metrics  DashboardMetrics `json:"metrics"`
}
