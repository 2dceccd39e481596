package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestTenantIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("RejectsRequestWithoutTenantHeader", func(t *testing.T) {
		router := gin.New()
		router.Use(TenantID())
		handlerCalled := false
		router.GET("/test", func(c *gin.Context) {
			handlerCalled = true
			c.Status(http.StatusOK)
		})

		req, _ := http.NewRequest(http.MethodGet, "/test", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Contains(t, rr.Body.String(), "MISSING_TENANT")
		assert.False(t, handlerCalled, "handler must not run without a tenant")
	})

	t.Run("StoresTenantIDInContext", func(t *testing.T) {
		router := gin.New()
		router.Use(TenantID())
		var capturedTenantID string
		router.GET("/test", func(c *gin.Context) {
			capturedTenantID = c.GetString(TenantIDKey)
			c.Status(http.StatusOK)
		})

		req, _ := http.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set(TenantIDHeader, "tenant-acme")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "tenant-acme", capturedTenantID)
	})
}

func TestGetTenantID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("ReturnsIDFromContextIfExists", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Set(TenantIDKey, "tenant-acme")

		assert.Equal(t, "tenant-acme", GetTenantID(c))
	})

	t.Run("ReturnsEmptyStringIfNoIDInContext", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		assert.Empty(t, GetTenantID(c))
	})

	t.Run("ReturnsEmptyStringIfIDInContextIsNotString", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Set(TenantIDKey, 12345)

		assert.Empty(t, GetTenantID(c))
	})
}
