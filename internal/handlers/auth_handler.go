package handlers

import (
	"time"

	"conectacg_backend/internal/apperrors"
	"conectacg_backend/internal/middleware"
	"conectacg_backend/internal/services"
	"conectacg_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	*BaseHandler
	auth    services.AuthService
	limiter *middleware.RateLimiter
}

func NewAuthHandler(base *BaseHandler, auth services.AuthService, limiter *middleware.RateLimiter) *AuthHandler {
	return &AuthHandler{BaseHandler: base, auth: auth, limiter: limiter}
}

func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/auth")
	group.POST("/register", h.limiter.Limit("auth", 10, 15*time.Minute), h.Register)
	group.POST("/login", h.limiter.Limit("auth", 10, 15*time.Minute), h.Login)
	group.POST("/refresh", h.Refresh)

	authed := group.Group("", middleware.AuthMiddleware())
	authed.POST("/logout", h.Logout)
	authed.GET("/me", h.Me)
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.auth.Register(c.Request.Context(), &req)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.auth.Login(c.Request.Context(), &req)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OK(c, resp)
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	pair, err := h.auth.Refresh(req.RefreshToken)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OK(c, pair)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.auth.Logout(middleware.GetUserID(c)); err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OK(c, gin.H{"message": "Sessão encerrada"})
}

func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.auth.Me(middleware.GetUserID(c))
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OK(c, user)
}
