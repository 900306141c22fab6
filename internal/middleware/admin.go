package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sweetworks/sweetshop-api/internal/models"
)

// RequireAdmin gates admin-only operations. The role comparison is
// case-insensitive to match tokens issued before roles were normalized.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, _ := c.MustGet(ContextRole).(string)

		if !strings.EqualFold(role, models.RoleAdmin) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin_role_required"})
			return
		}

		c.Next()
	}
}
