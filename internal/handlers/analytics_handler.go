package handlers

import (
	"conectacg_backend/internal/apperrors"
	"conectacg_backend/internal/middleware"
	"conectacg_backend/internal/models"
	"conectacg_backend/internal/services"
	"conectacg_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type AnalyticsHandler struct {
	*BaseHandler
	analytics services.AnalyticsService
}

func NewAnalyticsHandler(base *BaseHandler, analytics services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{BaseHandler: base, analytics: analytics}
}

func (h *AnalyticsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/analytics")
	group.POST("/track", middleware.OptionalAuthMiddleware(), h.Track)

	admin := group.Group("/admin", middleware.AuthMiddleware(), middleware.RequireRoles(models.UserRoleSuperAdmin))
	admin.GET("/stats", h.AdminStats)
}

func (h *AnalyticsHandler) Track(c *gin.Context) {
	var req dto.TrackEventRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	var userID *string
	if id := middleware.GetUserID(c); id != "" {
		userID = &id
	}

	err := h.analytics.Track(c.Request.Context(), &req, userID, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OK(c, gin.H{"tracked": true})
}

func (h *AnalyticsHandler) AdminStats(c *gin.Context) {
	stats, err := h.analytics.AdminStats()
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OK(c, stats)
}
