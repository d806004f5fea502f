package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"retail_backend/pkg/utils"
)

func newProtectedRouter(allowedRoles ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	group := engine.Group("/", AuthMiddleware())
	if len(allowedRoles) > 0 {
		group.Use(RoleAuthMiddleware(allowedRoles...))
	}
	group.GET("/protected", func(c *gin.Context) {
		employeeID := c.GetInt64("employeeID")
		c.JSON(http.StatusOK, gin.H{"employee_id": employeeID})
	})
	return engine
}

func doRequest(engine *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, req)
	return recorder
}

func TestAuthMiddlewareAcceptsValidToken(t *testing.T) {
	utils.ConfigureJWT("test-secret", 15*time.Minute, 24*time.Hour)
	storeID := int64(10)
	token, err := utils.GenerateAccessToken(7, "aibek", "seller", &storeID)
	assert.NoError(t, err)

	recorder := doRequest(newProtectedRouter(), "Bearer "+token)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"employee_id":7`)
}

func TestAuthMiddlewareRejectsMissingOrMalformedHeader(t *testing.T) {
	utils.ConfigureJWT("test-secret", 15*time.Minute, 24*time.Hour)
	engine := newProtectedRouter()

	assert.Equal(t, http.StatusUnauthorized, doRequest(engine, "").Code)
	assert.Equal(t, http.StatusUnauthorized, doRequest(engine, "Token abc").Code)
	assert.Equal(t, http.StatusUnauthorized, doRequest(engine, "Bearer garbage").Code)
}

func TestRoleAuthMiddleware(t *testing.T) {
	utils.ConfigureJWT("test-secret", 15*time.Minute, 24*time.Hour)
	sellerToken, err := utils.GenerateAccessToken(7, "aibek", "seller", nil)
	assert.NoError(t, err)
	adminToken, err := utils.GenerateAccessToken(1, "boss", "admin", nil)
	assert.NoError(t, err)

	adminOnly := newProtectedRouter("admin")
	assert.Equal(t, http.StatusForbidden, doRequest(adminOnly, "Bearer "+sellerToken).Code)
	assert.Equal(t, http.StatusOK, doRequest(adminOnly, "Bearer "+adminToken).Code)

	both := newProtectedRouter("admin", "seller")
	assert.Equal(t, http.StatusOK, doRequest(both, "Bearer "+sellerToken).Code)
}
