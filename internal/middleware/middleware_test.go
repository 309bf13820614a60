package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gym_backend/internal/auth"
	"gym_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newEngine(mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mw...)
	r.GET("/ping", func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			c.String(http.StatusOK, "anonymous")
			return
		}
		c.String(http.StatusOK, claims.Role)
	})
	return r
}

func get(r http.Handler, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	token, err := tokens.Generate(1, auth.RoleAdmin, 3, "Admin")
	require.NoError(t, err)

	r := newEngine(AuthMiddleware(tokens))

	t.Run("без токена", func(t *testing.T) {
		w := get(r, "/ping", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("битый токен", func(t *testing.T) {
		w := get(r, "/ping", map[string]string{"Authorization": "Bearer garbage"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "INVALID_TOKEN")
	})

	t.Run("заголовок", func(t *testing.T) {
		w := get(r, "/ping", map[string]string{"Authorization": "Bearer " + token})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, auth.RoleAdmin, w.Body.String())
	})

	t.Run("query access_token", func(t *testing.T) {
		w := get(r, "/ping?access_token="+token, nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("чужой секрет", func(t *testing.T) {
		other, err := auth.NewTokenManager("another-secret", time.Hour).Generate(1, auth.RoleAdmin, 3, "Admin")
		require.NoError(t, err)
		w := get(r, "/ping", map[string]string{"Authorization": "Bearer " + other})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func withClaims(claims *auth.Claims) gin.HandlerFunc {
	return func(c *gin.Context) {
		SetClaims(c, claims)
		c.Next()
	}
}

func TestRequirePermission(t *testing.T) {
	staff := newEngine(withClaims(&auth.Claims{UserID: 2, Role: auth.RoleStaff}), RequirePermission("users:write"))
	assert.Equal(t, http.StatusForbidden, get(staff, "/ping", nil).Code)

	admin := newEngine(withClaims(&auth.Claims{UserID: 1, Role: auth.RoleAdmin}), RequirePermission("users:write"))
	assert.Equal(t, http.StatusOK, get(admin, "/ping", nil).Code)

	anonymous := newEngine(RequirePermission("gym:read"))
	assert.Equal(t, http.StatusForbidden, get(anonymous, "/ping", nil).Code)
}

func TestRequireRoles(t *testing.T) {
	r := newEngine(withClaims(&auth.Claims{Role: auth.RoleStaff}), RequireRoles(auth.RoleAdmin, auth.RoleStaff))
	assert.Equal(t, http.StatusOK, get(r, "/ping", nil).Code)

	r = newEngine(withClaims(&auth.Claims{Role: "guest"}), RequireRoles(auth.RoleAdmin))
	assert.Equal(t, http.StatusForbidden, get(r, "/ping", nil).Code)
}

func TestRequestIDMiddleware(t *testing.T) {
	r := newEngine(RequestIDMiddleware())

	w := get(r, "/ping", map[string]string{requestIDHeader: "abc-123"})
	assert.Equal(t, "abc-123", w.Header().Get(requestIDHeader))

	w = get(r, "/ping", nil)
	assert.Len(t, w.Header().Get(requestIDHeader), 36)
}

func TestCORSMiddleware(t *testing.T) {
	r := newEngine(CORSMiddleware([]string{"http://localhost:3000"}))

	req := httptest.NewRequest(http.MethodOptions, "/ping", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))

	w = get(r, "/ping", map[string]string{"Origin": "http://evil.example"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestDBMiddlewareQueryTimeout(t *testing.T) {
	db, err := gorm.Open(postgres.New(postgres.Config{DSN: "host=127.0.0.1 user=test dbname=test"}), &gorm.Config{DisableAutomaticPing: true})
	require.NoError(t, err)

	var withDeadline, withoutDeadline bool
	check := func(dst *bool) gin.HandlerFunc {
		return func(c *gin.Context) {
			conn := c.MustGet(string(contextkeys.DBContextKey)).(*gorm.DB)
			_, *dst = conn.Statement.Context.Deadline()
			c.Status(http.StatusOK)
		}
	}

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/timeout", DBMiddleware(db, time.Second), check(&withDeadline))
	r.GET("/plain", DBMiddleware(db, 0), check(&withoutDeadline))

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/timeout", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/plain", nil))

	assert.True(t, withDeadline)
	assert.False(t, withoutDeadline)
}
