package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sweetworks/sweetshop-api/internal/token"
)

const (
	ContextUserID = "userID"
	ContextShopID = "shopID"
	ContextRole   = "userRole"
)

// AuthMiddleware validates the bearer token and attaches whichever
// identity it carries (customer or shop) to the request context.
func AuthMiddleware(tokens *token.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing_authorization_header"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_authorization_header"})
			return
		}

		if strings.TrimSpace(parts[1]) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing_token"})
			return
		}

		claims, err := tokens.Parse(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token"})
			return
		}

		if claims.UserID != nil {
			c.Set(ContextUserID, *claims.UserID)
		}
		if claims.ShopID != nil {
			c.Set(ContextShopID, *claims.ShopID)
		}
		c.Set(ContextRole, claims.Role)

		c.Next()
	}
}

// ShopID returns the shop identity from the context, if the request was
// authenticated as a shop.
func ShopID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(ContextShopID)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

// UserID returns the customer identity from the context, if present.
func UserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}
