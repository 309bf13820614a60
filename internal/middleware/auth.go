package middleware

import (
	"strconv"
	"strings"

	"gym_backend/internal/auth"
	"gym_backend/internal/logger"
	"gym_backend/pkg/apperrors"
	"gym_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware - проверка JWT из заголовка Authorization: Bearer <token>.
// Браузерный WebSocket не умеет ставить заголовки, поэтому для него
// допускается query-параметр access_token.
func AuthMiddleware(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := bearerToken(c)
		if tokenStr == "" {
			apperrors.HandleError(c, apperrors.ErrUnauthorized)
			return
		}

		claims, err := tokens.Parse(tokenStr)
		if err != nil {
			logger.CtxWarn(c.Request.Context(), "Invalid token", "error", err, "path", c.Request.URL.Path)
			apperrors.HandleError(c, apperrors.ErrInvalidToken)
			return
		}

		SetClaims(c, claims)
		c.Next()
	}
}

// SetClaims сохраняет claims в gin.Context и user_id/gym_id в контексте логгера
func SetClaims(c *gin.Context, claims *auth.Claims) {
	c.Set(string(contextkeys.ClaimsContextKey), claims)

	ctx := logger.WithUserID(c.Request.Context(), strconv.FormatUint(uint64(claims.UserID), 10))
	ctx = logger.WithGymID(ctx, strconv.FormatUint(uint64(claims.GymID), 10))
	c.Request = c.Request.WithContext(ctx)
}

// RequirePermission - доступ только ролям с разрешением (см. auth.Permissions)
func RequirePermission(permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !auth.CanPerformAction(GetClaims(c), permission) {
			logger.CtxWarn(c.Request.Context(), "Access denied", "permission", permission, "path", c.Request.URL.Path)
			apperrors.HandleError(c, apperrors.ErrForbidden)
			return
		}
		c.Next()
	}
}

// RequireRoles - доступ только перечисленным ролям
func RequireRoles(roles ...string) gin.HandlerFunc {
	roleSet := make(map[string]bool, len(roles))
	for _, r := range roles {
		roleSet[r] = true
	}

	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil || !roleSet[claims.Role] {
			apperrors.HandleError(c, apperrors.ErrForbidden)
			return
		}
		c.Next()
	}
}

// GetClaims извлекает claims из контекста (nil, если запрос без токена)
func GetClaims(c *gin.Context) *auth.Claims {
	val, exists := c.Get(string(contextkeys.ClaimsContextKey))
	if !exists {
		return nil
	}
	claims, _ := val.(*auth.Claims)
	return claims
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	return c.Query("access_token")
}
