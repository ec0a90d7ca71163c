package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acadex/acadex/internal/app/models"
	"github.com/acadex/acadex/internal/pkg/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newAuthTestRouter(t *testing.T, accessExp time.Duration) (*gin.Engine, *auth.JWTService) {
	t.Helper()
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  accessExp,
		RefreshTokenExp: time.Hour,
		TokenIssuer:     "acadex.test",
	})
	m := NewAuthMiddleware(jwtService)

	router := gin.New()
	protected := router.Group("", m.JWTAuth())
	protected.GET("/whoami", func(c *gin.Context) {
		id, _ := CallerID(c)
		tenantValue, _ := CallerTenant(c)
		role, _ := CallerRole(c)
		c.JSON(http.StatusOK, gin.H{"id": id, "tenant": tenantValue, "role": role})
	})
	protected.GET("/admin-only", m.RoleRequired(models.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router, jwtService
}

func tokenFor(t *testing.T, jwtService *auth.JWTService, user *models.User) string {
	t.Helper()
	access, _, _, _, err := jwtService.GenerateTokenPair(user)
	require.NoError(t, err)
	return access
}

func TestJWTAuthSetsCallerContext(t *testing.T) {
	router, jwtService := newAuthTestRouter(t, time.Hour)
	token := tokenFor(t, jwtService, &models.User{
		ID: 7, Email: "demo.student@example.com", RoleType: models.RoleStudent,
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id":7`)
	assert.Contains(t, w.Body.String(), `"tenant":"DEMO"`)
	assert.Contains(t, w.Body.String(), `"role":"STUDENT"`)
}

func TestJWTAuthRejectsMissingHeader(t *testing.T) {
	router, _ := newAuthTestRouter(t, time.Hour)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/whoami", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthRejectsExpiredToken(t *testing.T) {
	router, jwtService := newAuthTestRouter(t, -time.Minute)
	token := tokenFor(t, jwtService, &models.User{
		ID: 1, Email: "a@b.edu", RoleType: models.RoleStudent,
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "AUTH_003")
}

func TestRoleRequiredBlocksWrongRole(t *testing.T) {
	router, jwtService := newAuthTestRouter(t, time.Hour)
	token := tokenFor(t, jwtService, &models.User{
		ID: 2, Email: "s@u.edu", RoleType: models.RoleStudent,
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin-only", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRoleRequiredAllowsMatchingRole(t *testing.T) {
	router, jwtService := newAuthTestRouter(t, time.Hour)
	token := tokenFor(t, jwtService, &models.User{
		ID: 3, Email: "admin@acadex.edu", RoleType: models.RoleAdmin,
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin-only", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
