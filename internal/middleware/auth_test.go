package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func authTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	authed := r.Group("", RequireAuth(testSecret))
	authed.GET("/me", func(c *gin.Context) {
		c.JSON(200, gin.H{"profileId": GetProfileID(c), "role": GetRole(c)})
	})
	admin := r.Group("", RequireAuth(testSecret), RequireAdmin())
	admin.POST("/admin", func(c *gin.Context) {
		c.Status(200)
	})
	return r
}

func TestRequireAuth_NoToken(t *testing.T) {
	r := authTestRouter()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_InvalidToken(t *testing.T) {
	r := authTestRouter()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_BearerToken(t *testing.T) {
	token, err := GenerateToken(42, "user@example.com", RoleRegular, testSecret, time.Hour)
	require.NoError(t, err)

	r := authTestRouter()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"profileId":42`)
	assert.Contains(t, w.Body.String(), `"role":"regular"`)
}

func TestRequireAuth_CookieToken(t *testing.T) {
	token, err := GenerateToken(7, "user@example.com", RoleRegular, testSecret, time.Hour)
	require.NoError(t, err)

	r := authTestRouter()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: token})
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"profileId":7`)
}

func TestRequireAuth_WrongSecret(t *testing.T) {
	token, err := GenerateToken(1, "user@example.com", RoleRegular, "other-secret", time.Hour)
	require.NoError(t, err)

	r := authTestRouter()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAdmin(t *testing.T) {
	tests := []struct {
		name string
		role string
		want int
	}{
		{"管理员放行", RoleAdministrator, http.StatusOK},
		{"普通用户拒绝", RoleRegular, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := GenerateToken(1, "user@example.com", tt.role, testSecret, time.Hour)
			require.NoError(t, err)

			r := authTestRouter()
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/admin", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestShouldRefresh(t *testing.T) {
	newClaims := func(issued time.Time, expiry time.Duration) *Claims {
		return &Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				IssuedAt:  jwt.NewNumericDate(issued),
				ExpiresAt: jwt.NewNumericDate(issued.Add(expiry)),
			},
		}
	}

	// 刚签发，不刷新
	assert.False(t, shouldRefresh(newClaims(time.Now(), time.Hour)))
	// 消耗过半，刷新
	assert.True(t, shouldRefresh(newClaims(time.Now().Add(-40*time.Minute), time.Hour)))
	// 缺少时间声明，不刷新
	assert.False(t, shouldRefresh(&Claims{}))
}

func TestGetProfileID_Unauthenticated(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Equal(t, 0, GetProfileID(c))
	assert.Equal(t, "", GetRole(c))
}
