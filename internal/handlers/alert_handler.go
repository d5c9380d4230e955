package handlers

import (
	"conectacg_backend/internal/apperrors"
	"conectacg_backend/internal/middleware"
	"conectacg_backend/internal/services"
	"conectacg_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type AlertHandler struct {
	*BaseHandler
	alerts services.AlertService
}

func NewAlertHandler(base *BaseHandler, alerts services.AlertService) *AlertHandler {
	return &AlertHandler{BaseHandler: base, alerts: alerts}
}

func (h *AlertHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/alerts", middleware.AuthMiddleware())
	group.POST("", h.Create)
	group.GET("", h.List)
	group.DELETE("/:id", h.Delete)
}

func (h *AlertHandler) Create(c *gin.Context) {
	var req dto.CreateAlertRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	alert, err := h.alerts.Create(c.Request.Context(), middleware.GetUserID(c), &req)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.Created(c, alert)
}

func (h *AlertHandler) List(c *gin.Context) {
	alerts, err := h.alerts.List(middleware.GetUserID(c))
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OK(c, gin.H{"alerts": alerts})
}

func (h *AlertHandler) Delete(c *gin.Context) {
	if err := h.alerts.Delete(middleware.GetUserID(c), c.Param("id")); err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OK(c, gin.H{"deleted": true})
}
