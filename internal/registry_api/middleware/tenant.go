package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	// TenantIDHeader is the HTTP header carrying the caller's tenant
	TenantIDHeader = "X-Tenant-ID"

	// TenantIDKey is the key used to store the tenant ID in the context
	TenantIDKey = "tenant_id"
)

// TenantID middleware requires a tenant on every registry request. Every
// query and mutation is scoped to this tenant; a request without one has
// no registry to operate on.
func TenantID() gin.HandlerFunc {
	return func(c *gin.Context) {
		tenantID := c.GetHeader(TenantIDHeader)
		if tenantID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{
					"code":    "MISSING_TENANT",
					"message": "The " + TenantIDHeader + " header is required",
				},
			})
			return
		}

		c.Set(TenantIDKey, tenantID)

		c.Next()
	}
}

// GetTenantID retrieves the tenant ID from the gin context if present
func GetTenantID(c *gin.Context) string {
	if id, exists := c.Get(TenantIDKey); exists {
		if tenantID, ok := id.(string); ok {
			return tenantID
		}
	}
	return ""
}
