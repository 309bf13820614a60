package handlers

import (
	"net/http"

	"gym_backend/internal/dto"
	"gym_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type EquipmentHandler struct {
	*BaseHandler
	equipmentService services.EquipmentService
}

func NewEquipmentHandler(base *BaseHandler, equipmentService services.EquipmentService) *EquipmentHandler {
	return &EquipmentHandler{
		BaseHandler:      base,
		equipmentService: equipmentService,
	}
}

func (h *EquipmentHandler) RegisterRoutes(r *gin.RouterGroup) {
	equipment := r.Group("/equipment")
	{
		equipment.GET("", h.List)
		equipment.POST("", h.Create)
		equipment.GET("/:id", h.Get)
		equipment.PUT("/:id", h.Update)
		equipment.PATCH("/:id", h.Update)
		equipment.DELETE("/:id", h.Delete)
	}
}

// List godoc
// @Summary Список оборудования
// @Description Оборудование зала; без gymId - всех залов
// @Tags equipment
// @Produce json
// @Param gymId query int false "ID зала"
// @Success 200 {array} dto.EquipmentResponse
// @Failure 401 {object} apperrors.AppError
// @Security BearerAuth
// @Router /equipment [get]
func (h *EquipmentHandler) List(c *gin.Context) {
	var query dto.GymQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	items, err := h.equipmentService.List(h.GetDB(c), query.GymID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, items)
}

// Get godoc
// @Summary Оборудование по ID
// @Tags equipment
// @Produce json
// @Param id path int true "ID оборудования"
// @Success 200 {object} dto.EquipmentResponse
// @Failure 404 {object} apperrors.AppError
// @Security BearerAuth
// @Router /equipment/{id} [get]
func (h *EquipmentHandler) Get(c *gin.Context) {
	id, ok := ParseParamUint(c, "id")
	if !ok {
		return
	}

	item, err := h.equipmentService.Get(h.GetDB(c), id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

// Create godoc
// @Summary Добавить оборудование
// @Description Статус по умолчанию Available, состояние Good
// @Tags equipment
// @Accept json
// @Produce json
// @Param equipment body dto.CreateEquipmentRequest true "Оборудование"
// @Success 201 {object} dto.EquipmentResponse
// @Failure 400 {object} apperrors.AppError "Не заполнено обязательное поле"
// @Security BearerAuth
// @Router /equipment [post]
func (h *EquipmentHandler) Create(c *gin.Context) {
	var req dto.CreateEquipmentRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	item, err := h.equipmentService.Create(h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, item)
}

// Update godoc
// @Summary Частичное обновление оборудования
// @Description Принимаются только поля из allow-list; пустая строка сбрасывает поле в null
// @Tags equipment
// @Accept json
// @Produce json
// @Param id path int true "ID оборудования"
// @Param equipment body object true "Изменяемые поля"
// @Success 200 {object} dto.EquipmentResponse
// @Failure 400 {object} apperrors.AppError "Нет обновляемых полей"
// @Failure 404 {object} apperrors.AppError
// @Security BearerAuth
// @Router /equipment/{id} [put]
func (h *EquipmentHandler) Update(c *gin.Context) {
	id, ok := ParseParamUint(c, "id")
	if !ok {
		return
	}
	patch, ok := h.ReadPatch(c, dto.EquipmentUpdateFields, nil)
	if !ok {
		return
	}

	item, err := h.equipmentService.Update(h.GetDB(c), id, patch)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

// Delete godoc
// @Summary Удалить оборудование
// @Tags equipment
// @Param id path int true "ID оборудования"
// @Success 204
// @Failure 404 {object} apperrors.AppError
// @Security BearerAuth
// @Router /equipment/{id} [delete]
func (h *EquipmentHandler) Delete(c *gin.Context) {
	id, ok := ParseParamUint(c, "id")
	if !ok {
		return
	}

	if err := h.equipmentService.Delete(h.GetDB(c), id); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
