package handlers

import (
	"net/http"

	"gym_backend/internal/dto"
	"gym_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type SubscriptionHandler struct {
	*BaseHandler
	subscriptionService services.SubscriptionService
}

func NewSubscriptionHandler(base *BaseHandler, subscriptionService services.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{
		BaseHandler:         base,
		subscriptionService: subscriptionService,
	}
}

func (h *SubscriptionHandler) RegisterRoutes(r *gin.RouterGroup) {
	subs := r.Group("/subscriptions")
	{
		subs.GET("", h.List)
		subs.POST("", h.Create)
		subs.GET("/:id", h.Get)
		subs.PUT("/:id", h.Update)
		subs.PATCH("/:id", h.Update)
		subs.DELETE("/:id", h.Delete)
	}
}

// List godoc
// @Summary Список подписок
// @Description Подписки с именем участника, названием и ценой плана, именем тренера
// @Tags subscriptions
// @Produce json
// @Param gymId query int false "ID зала (по участнику)"
// @Param memberId query int false "ID участника"
// @Param status query string false "Active | Expired | Cancelled"
// @Success 200 {array} dto.SubscriptionResponse
// @Security BearerAuth
// @Router /subscriptions [get]
func (h *SubscriptionHandler) List(c *gin.Context) {
	var query dto.SubscriptionQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	subs, err := h.subscriptionService.List(h.GetDB(c), &query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, subs)
}

func (h *SubscriptionHandler) Get(c *gin.Context) {
	id, ok := ParseParamUint(c, "id")
	if !ok {
		return
	}

	sub, err := h.subscriptionService.Get(h.GetDB(c), id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, sub)
}

// Create godoc
// @Summary Новая подписка
// @Description Без endDate срок считается по плану
// @Tags subscriptions
// @Accept json
// @Produce json
// @Param subscription body dto.CreateSubscriptionRequest true "Подписка"
// @Success 201 {object} dto.SubscriptionResponse
// @Failure 400 {object} apperrors.AppError
// @Security BearerAuth
// @Router /subscriptions [post]
func (h *SubscriptionHandler) Create(c *gin.Context) {
	var req dto.CreateSubscriptionRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	sub, err := h.subscriptionService.Create(h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, sub)
}

// @Summary Частичное обновление подписки
// @Tags subscriptions
// @Router /subscriptions/{id} [put]
func (h *SubscriptionHandler) Update(c *gin.Context) {
	id, ok := ParseParamUint(c, "id")
	if !ok {
		return
	}
	patch, ok := h.ReadPatch(c, dto.SubscriptionUpdateFields, nil)
	if !ok {
		return
	}

	sub, err := h.subscriptionService.Update(h.GetDB(c), id, patch)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, sub)
}

// @Summary Удалить подписку
// @Description Вместе со связанными транзакциями
// @Tags subscriptions
// @Router /subscriptions/{id} [delete]
func (h *SubscriptionHandler) Delete(c *gin.Context) {
	id, ok := ParseParamUint(c, "id")
	if !ok {
		return
	}

	if err := h.subscriptionService.Delete(h.GetDB(c), id); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
