package handlers

import (
	"time"

	"conectacg_backend/internal/apperrors"
	"conectacg_backend/internal/middleware"
	"conectacg_backend/internal/services"
	"conectacg_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type PlanHandler struct {
	*BaseHandler
	plans   services.PlanService
	leads   services.LeadService
	limiter *middleware.RateLimiter
}

func NewPlanHandler(base *BaseHandler, plans services.PlanService, leads services.LeadService, limiter *middleware.RateLimiter) *PlanHandler {
	return &PlanHandler{BaseHandler: base, plans: plans, leads: leads, limiter: limiter}
}

func (h *PlanHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/plans", middleware.OptionalAuthMiddleware())
	group.GET("", h.limiter.Limit("search", 60, time.Minute), h.Query)
	group.GET("/:id", h.GetByID)
	group.POST("/:id/click", h.Click)
	group.POST("/:id/lead", h.limiter.Limit("lead", 10, time.Hour), h.CreateLead)

	authed := group.Group("", middleware.AuthMiddleware())
	authed.POST("/recommend", h.Recommend)
	authed.POST("/:id/review", h.CreateReview)
}

func (h *PlanHandler) Query(c *gin.Context) {
	query := dto.PlanQuery{
		Cep:        c.Query("cep"),
		Category:   c.Query("category"),
		CitySlug:   c.Query("city"),
		UserID:     middleware.GetUserID(c),
		IsLoggedIn: middleware.IsAuthenticated(c),
	}

	resp, err := h.plans.QueryPlans(c.Request.Context(), query)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OK(c, resp)
}

func (h *PlanHandler) GetByID(c *gin.Context) {
	view, err := h.plans.GetPlanByID(
		c.Request.Context(),
		c.Param("id"),
		middleware.GetUserID(c),
		middleware.IsAuthenticated(c),
	)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OK(c, view)
}

func (h *PlanHandler) Click(c *gin.Context) {
	var userID *string
	if id := middleware.GetUserID(c); id != "" {
		userID = &id
	}

	if err := h.plans.RegisterClick(c.Request.Context(), c.Param("id"), userID, c.ClientIP()); err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OK(c, gin.H{"registered": true})
}

func (h *PlanHandler) CreateLead(c *gin.Context) {
	var req dto.CreateLeadRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	var userID *string
	if id := middleware.GetUserID(c); id != "" {
		userID = &id
	}

	lead, err := h.leads.CreateLead(c.Request.Context(), c.Param("id"), userID, &req)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.Created(c, gin.H{
		"lead":    lead,
		"message": "Interesse registrado! A operadora entrará em contato.",
	})
}

func (h *PlanHandler) CreateReview(c *gin.Context) {
	var req dto.CreateReviewRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	review, err := h.plans.CreateReview(c.Request.Context(), middleware.GetUserID(c), c.Param("id"), &req)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.Created(c, review)
}

func (h *PlanHandler) Recommend(c *gin.Context) {
	var req dto.RecommendRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	views, err := h.plans.Recommend(c.Request.Context(), middleware.GetUserID(c), &req)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OK(c, gin.H{"plans": views})
}
