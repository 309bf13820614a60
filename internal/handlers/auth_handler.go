package handlers

import (
	"net/http"

	"gym_backend/internal/dto"
	"gym_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	*BaseHandler
	authService services.AuthService
}

func NewAuthHandler(base *BaseHandler, authService services.AuthService) *AuthHandler {
	return &AuthHandler{
		BaseHandler: base,
		authService: authService,
	}
}

// RegisterRoutes - публичные маршруты (без токена)
func (h *AuthHandler) RegisterRoutes(r *gin.RouterGroup) {
	auth := r.Group("/auth")
	{
		auth.POST("/login", h.Login)
	}
}

// RegisterProtectedRoutes - маршруты, требующие AuthMiddleware
func (h *AuthHandler) RegisterProtectedRoutes(r *gin.RouterGroup) {
	r.GET("/auth/me", h.Me)
}

// Login godoc
// @Summary Вход сотрудника
// @Description Возвращает JWT, gymId и имя. gymId используется клиентом как фильтр списков
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body dto.LoginRequest true "Email и пароль"
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} apperrors.AppError
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.authService.Login(h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Me godoc
// @Summary Текущий сотрудник
// @Tags auth
// @Produce json
// @Success 200 {object} dto.UserResponse
// @Security BearerAuth
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	claims, ok := h.GetClaims(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, dto.UserResponse{
		ID:    claims.UserID,
		Name:  claims.Name,
		Role:  claims.Role,
		GymID: claims.GymID,
	})
}
