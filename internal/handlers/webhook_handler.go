package handlers

import (
	"io"

	"conectacg_backend/internal/apperrors"
	"conectacg_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// WebhookHandler receives billing-gateway callbacks. It is the only write
// path for provider tier changes.
type WebhookHandler struct {
	*BaseHandler
	billing services.BillingService
}

func NewWebhookHandler(base *BaseHandler, billing services.BillingService) *WebhookHandler {
	return &WebhookHandler{BaseHandler: base, billing: billing}
}

func (h *WebhookHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/webhooks")
	group.POST("/billing", h.Billing)
}

func (h *WebhookHandler) Billing(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Corpo da requisição inválido"))
		return
	}

	signature := c.GetHeader("X-Billing-Signature")
	if err := h.billing.HandleCallback(payload, signature); err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OK(c, gin.H{"received": true})
}
