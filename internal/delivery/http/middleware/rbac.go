package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ibasrj23/PilihJagoanMu/internal/domain/entity"
)

// RoleMiddleware gates a route on the caller's role. super_admin passes
// every gate.
func RoleMiddleware(allowedRoles ...entity.UserRole) gin.HandlerFunc {
	roleSet := make(map[entity.UserRole]bool)
	for _, r := range allowedRoles {
		roleSet[r] = true
	}

	return func(c *gin.Context) {
		roleVal, exists := c.Get("role")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "role not found in context"})
			c.Abort()
			return
		}

		roleStr, ok := roleVal.(string)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid role format"})
			c.Abort()
			return
		}

		userRole := entity.UserRole(roleStr)

		if userRole == entity.RoleSuperAdmin {
			c.Next()
			return
		}

		if !roleSet[userRole] {
			c.JSON(http.StatusForbidden, gin.H{
				"error":         "insufficient permissions",
				"required_role": allowedRoles,
				"current_role":  userRole,
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// AdminOnly allows super_admin and admin.
func AdminOnly() gin.HandlerFunc {
	return RoleMiddleware(entity.RoleSuperAdmin, entity.RoleAdmin)
}
