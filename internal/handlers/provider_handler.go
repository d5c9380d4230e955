package handlers

import (
	"time"

	"conectacg_backend/internal/apperrors"
	"conectacg_backend/internal/middleware"
	"conectacg_backend/internal/models"
	"conectacg_backend/internal/services"
	"conectacg_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

// ProviderHandler serves the B2B surface: provider registration, dashboard,
// plan management, the lead inbox and billing redirects.
type ProviderHandler struct {
	*BaseHandler
	providers services.ProviderService
	leads     services.LeadService
	billing   services.BillingService
	limiter   *middleware.RateLimiter
}

func NewProviderHandler(
	base *BaseHandler,
	providers services.ProviderService,
	leads services.LeadService,
	billing services.BillingService,
	limiter *middleware.RateLimiter,
) *ProviderHandler {
	return &ProviderHandler{
		BaseHandler: base,
		providers:   providers,
		leads:       leads,
		billing:     billing,
		limiter:     limiter,
	}
}

func (h *ProviderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/b2b")
	group.POST("/register", h.limiter.Limit("b2b-register", 5, time.Hour), h.Register)

	authed := group.Group("", middleware.AuthMiddleware(), middleware.RequireProviderAccess())
	authed.GET("/dashboard", h.Dashboard)
	authed.GET("/plans", h.ListPlans)
	authed.POST("/plans", h.CreatePlan)
	authed.PUT("/plans/:planId", h.UpdatePlan)
	authed.DELETE("/plans/:planId", h.DeactivatePlan)
	authed.GET("/leads", h.ListLeads)
	authed.PATCH("/leads/:leadId", h.UpdateLeadStatus)
	authed.POST("/billing/checkout", h.Checkout)
	authed.POST("/billing/portal", h.Portal)
}

// providerScope resolves which provider the request acts on: the token's
// claim, or an explicit providerId query for super admins.
func (h *ProviderHandler) providerScope(c *gin.Context) (string, bool) {
	providerID := middleware.GetProviderID(c)
	if providerID == "" && models.UserRole(c.GetString("role")) == models.UserRoleSuperAdmin {
		providerID = c.Query("providerId")
	}
	if providerID == "" {
		apperrors.HandleError(c, apperrors.NewForbiddenError("Sem acesso a nenhuma operadora"))
		return "", false
	}
	return providerID, true
}

func (h *ProviderHandler) Register(c *gin.Context) {
	var req dto.RegisterProviderRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.providers.RegisterProvider(c.Request.Context(), &req)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

func (h *ProviderHandler) Dashboard(c *gin.Context) {
	providerID, ok := h.providerScope(c)
	if !ok {
		return
	}

	resp, err := h.providers.GetDashboard(providerID)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OK(c, resp)
}

func (h *ProviderHandler) ListPlans(c *gin.Context) {
	providerID, ok := h.providerScope(c)
	if !ok {
		return
	}

	plans, err := h.providers.ListPlans(providerID)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OK(c, gin.H{"plans": plans})
}

func (h *ProviderHandler) CreatePlan(c *gin.Context) {
	providerID, ok := h.providerScope(c)
	if !ok {
		return
	}

	var req dto.CreatePlanRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	plan, err := h.providers.CreatePlan(c.Request.Context(), providerID, &req)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.Created(c, plan)
}

func (h *ProviderHandler) UpdatePlan(c *gin.Context) {
	providerID, ok := h.providerScope(c)
	if !ok {
		return
	}

	var req dto.UpdatePlanRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	plan, err := h.providers.UpdatePlan(c.Request.Context(), providerID, c.Param("planId"), &req)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OK(c, plan)
}

func (h *ProviderHandler) DeactivatePlan(c *gin.Context) {
	providerID, ok := h.providerScope(c)
	if !ok {
		return
	}

	if err := h.providers.DeactivatePlan(providerID, c.Param("planId")); err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OK(c, gin.H{"deactivated": true})
}

func (h *ProviderHandler) ListLeads(c *gin.Context) {
	providerID, ok := h.providerScope(c)
	if !ok {
		return
	}

	page, limit := h.ParsePagination(c)
	status := models.LeadStatus(c.Query("status"))
	if status != "" && !models.ValidLeadStatus(status) {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Status de lead inválido"))
		return
	}

	resp, err := h.leads.GetLeadsByProvider(providerID, status, page, limit)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OK(c, resp)
}

func (h *ProviderHandler) UpdateLeadStatus(c *gin.Context) {
	providerID, ok := h.providerScope(c)
	if !ok {
		return
	}

	var req dto.UpdateLeadRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	lead, err := h.leads.UpdateLeadStatus(providerID, c.Param("leadId"), models.LeadStatus(req.Status))
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OK(c, lead)
}

func (h *ProviderHandler) Checkout(c *gin.Context) {
	providerID, ok := h.providerScope(c)
	if !ok {
		return
	}

	var req dto.CheckoutRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	url, err := h.billing.CheckoutURL(providerID, models.BillingTier(req.Tier))
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OK(c, gin.H{"url": url})
}

func (h *ProviderHandler) Portal(c *gin.Context) {
	providerID, ok := h.providerScope(c)
	if !ok {
		return
	}

	url, err := h.billing.PortalURL(providerID)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OK(c, gin.H{"url": url})
}
