package handlers

import (
	"net/http"

	"gym_backend/internal/dto"
	"gym_backend/internal/middleware"
	"gym_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	*BaseHandler
	authService services.AuthService
}

func NewUserHandler(base *BaseHandler, authService services.AuthService) *UserHandler {
	return &UserHandler{
		BaseHandler: base,
		authService: authService,
	}
}

func (h *UserHandler) RegisterRoutes(r *gin.RouterGroup) {
	users := r.Group("/users")
	users.Use(middleware.RequirePermission("users:write"))
	{
		users.POST("", h.Create)
	}
}

// Create godoc
// @Summary Создать сотрудника
// @Description Только для администратора. Роль по умолчанию staff
// @Tags users
// @Accept json
// @Produce json
// @Param user body dto.CreateUserRequest true "Сотрудник"
// @Success 201 {object} dto.UserResponse
// @Failure 403 {object} apperrors.AppError
// @Failure 409 {object} apperrors.AppError "Email уже занят"
// @Security BearerAuth
// @Router /users [post]
func (h *UserHandler) Create(c *gin.Context) {
	var req dto.CreateUserRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	user, err := h.authService.CreateUser(h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}
