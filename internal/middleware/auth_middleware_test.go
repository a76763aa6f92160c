package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"taxidesk/internal/models"
	"taxidesk/internal/utils"
)

const testSecret = "test-secret"

func authedRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/protected", AuthRequired(testSecret), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func doRequest(router *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthRequiredRejectsMissingToken(t *testing.T) {
	router := authedRouter(t)
	w := doRequest(router, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRequiredRejectsBadToken(t *testing.T) {
	router := authedRouter(t)
	w := doRequest(router, "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRequiredRejectsWrongSecret(t *testing.T) {
	token, err := utils.GenerateToken("other-secret", primitive.NewObjectID().Hex(), "Admin", "", time.Hour)
	require.NoError(t, err)

	router := authedRouter(t)
	w := doRequest(router, token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRequiredLoadsIdentity(t *testing.T) {
	userID := primitive.NewObjectID()
	vendorID := primitive.NewObjectID()
	token, err := utils.GenerateToken(testSecret, userID.Hex(), "Vendor", vendorID.Hex(), time.Hour)
	require.NoError(t, err)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", AuthRequired(testSecret), func(c *gin.Context) {
		assert.Equal(t, userID, GetUserID(c))
		assert.Equal(t, models.RoleVendor, GetUserRole(c))
		scope := GetVendorScope(c)
		require.NotNil(t, scope)
		assert.Equal(t, vendorID, *scope)
		c.Status(http.StatusOK)
	})

	w := doRequest(router, token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestVendorScopeNilForAdmins(t *testing.T) {
	token, err := utils.GenerateToken(testSecret, primitive.NewObjectID().Hex(), "Admin", "", time.Hour)
	require.NoError(t, err)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", AuthRequired(testSecret), func(c *gin.Context) {
		assert.Nil(t, GetVendorScope(c))
		c.Status(http.StatusOK)
	})

	w := doRequest(router, token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminRequired(t *testing.T) {
	vendorToken, err := utils.GenerateToken(testSecret, primitive.NewObjectID().Hex(), "Vendor", primitive.NewObjectID().Hex(), time.Hour)
	require.NoError(t, err)
	adminToken, err := utils.GenerateToken(testSecret, primitive.NewObjectID().Hex(), "Admin", "", time.Hour)
	require.NoError(t, err)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", AuthRequired(testSecret), AdminRequired(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	assert.Equal(t, http.StatusForbidden, doRequest(router, vendorToken).Code)
	assert.Equal(t, http.StatusOK, doRequest(router, adminToken).Code)
}
