package handlers

import (
	"conectacg_backend/internal/apperrors"
	"conectacg_backend/internal/middleware"
	"conectacg_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type FavoriteHandler struct {
	*BaseHandler
	favorites services.FavoriteService
}

func NewFavoriteHandler(base *BaseHandler, favorites services.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{BaseHandler: base, favorites: favorites}
}

func (h *FavoriteHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/favorites", middleware.AuthMiddleware())
	group.GET("", h.List)
	group.POST("/:planId/toggle", h.Toggle)
}

func (h *FavoriteHandler) Toggle(c *gin.Context) {
	favorited, err := h.favorites.Toggle(c.Request.Context(), middleware.GetUserID(c), c.Param("planId"))
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OK(c, gin.H{"favorited": favorited})
}

func (h *FavoriteHandler) List(c *gin.Context) {
	favorites, err := h.favorites.List(middleware.GetUserID(c))
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OK(c, gin.H{"favorites": favorites})
}
