package middleware

import (
	"net/http"
	"strings"

	"conectacg_backend/internal/auth"
	"conectacg_backend/internal/logger"
	"conectacg_backend/internal/models"

	"github.com/gin-gonic/gin"
)

const (
	ctxUserID     = "userID"
	ctxRole       = "role"
	ctxProviderID = "providerID"
)

// AuthMiddleware rejects requests without a valid bearer token.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := bearerClaims(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Autenticação necessária"})
			return
		}
		setClaims(c, claims)
		c.Next()
	}
}

// OptionalAuthMiddleware attaches claims when a valid token is present and
// silently continues as a visitor otherwise. Used on the catalog paths
// where auth state only changes masking.
func OptionalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, ok := bearerClaims(c); ok {
			setClaims(c, claims)
		}
		c.Next()
	}
}

// RequireRoles limits a route to the given roles.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	roleSet := make(map[models.UserRole]bool, len(roles))
	for _, r := range roles {
		roleSet[r] = true
	}

	return func(c *gin.Context) {
		role := models.UserRole(c.GetString(ctxRole))
		if !roleSet[role] {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "error": "Sem permissão"})
			return
		}
		c.Next()
	}
}

// RequireProviderAccess limits a route to users bound to a provider.
// Super admins pass through; everyone else must carry a providerId claim.
func RequireProviderAccess() gin.HandlerFunc {
	return func(c *gin.Context) {
		role := models.UserRole(c.GetString(ctxRole))
		if role == models.UserRoleSuperAdmin {
			c.Next()
			return
		}
		if c.GetString(ctxProviderID) == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "error": "Sem acesso a nenhuma operadora"})
			return
		}
		c.Next()
	}
}

func bearerClaims(c *gin.Context) (*auth.Claims, bool) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return nil, false
	}
	claims, err := auth.ParseToken(strings.TrimPrefix(header, "Bearer "))
	if err != nil {
		return nil, false
	}
	return claims, true
}

func setClaims(c *gin.Context, claims *auth.Claims) {
	c.Set(ctxUserID, claims.UserID)
	c.Set(ctxRole, claims.Role)
	c.Set(ctxProviderID, claims.ProviderID)
	c.Request = c.Request.WithContext(logger.WithUserID(c.Request.Context(), claims.UserID))
}

// GetUserID returns the authenticated user ID, or "" for visitors.
func GetUserID(c *gin.Context) string {
	return c.GetString(ctxUserID)
}

// GetProviderID returns the provider the user administers, or "".
func GetProviderID(c *gin.Context) string {
	return c.GetString(ctxProviderID)
}

// IsAuthenticated reports whether the request carries a valid user.
func IsAuthenticated(c *gin.Context) bool {
	return c.GetString(ctxUserID) != ""
}
