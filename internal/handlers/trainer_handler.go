package handlers

import (
	"net/http"

	"gym_backend/internal/dto"
	"gym_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type TrainerHandler struct {
	*BaseHandler
	trainerService services.TrainerService
	uploadService  services.UploadService
}

func NewTrainerHandler(base *BaseHandler, trainerService services.TrainerService, uploadService services.UploadService) *TrainerHandler {
	return &TrainerHandler{
		BaseHandler:    base,
		trainerService: trainerService,
		uploadService:  uploadService,
	}
}

func (h *TrainerHandler) RegisterRoutes(r *gin.RouterGroup) {
	trainers := r.Group("/trainers")
	{
		trainers.GET("", h.List)
		trainers.POST("", h.Create)
		trainers.GET("/:id", h.Get)
		trainers.PUT("/:id", h.Update)
		trainers.PATCH("/:id", h.Update)
		trainers.DELETE("/:id", h.Delete)
	}
}

// List godoc
// @Summary Список тренеров
// @Tags trainers
// @Produce json
// @Param gymId query int false "ID зала"
// @Success 200 {array} dto.TrainerResponse
// @Security BearerAuth
// @Router /trainers [get]
func (h *TrainerHandler) List(c *gin.Context) {
	var query dto.GymQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	trainers, err := h.trainerService.List(h.GetDB(c), query.GymID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, trainers)
}

// @Summary Тренер по ID
// @Tags trainers
// @Router /trainers/{id} [get]
func (h *TrainerHandler) Get(c *gin.Context) {
	id, ok := ParseParamUint(c, "id")
	if !ok {
		return
	}

	trainer, err := h.trainerService.Get(h.GetDB(c), id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, trainer)
}

// @Summary Добавить тренера
// @Tags trainers
// @Accept json,mpfd
// @Param trainer body dto.CreateTrainerRequest true "Тренер"
// @Success 201 {object} dto.TrainerResponse
// @Router /trainers [post]
func (h *TrainerHandler) Create(c *gin.Context) {
	var req dto.CreateTrainerRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	url, ok := uploadAvatar(h.BaseHandler, c, h.uploadService)
	if !ok {
		return
	}
	if url != "" {
		req.ProfilePic = &url
	}

	trainer, err := h.trainerService.Create(h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, trainer)
}

// @Summary Частичное обновление тренера
// @Tags trainers
// @Router /trainers/{id} [put]
func (h *TrainerHandler) Update(c *gin.Context) {
	id, ok := ParseParamUint(c, "id")
	if !ok {
		return
	}

	url, ok := uploadAvatar(h.BaseHandler, c, h.uploadService)
	if !ok {
		return
	}
	patch, ok := h.ReadPatch(c, dto.TrainerUpdateFields, avatarPatch(url))
	if !ok {
		return
	}

	trainer, err := h.trainerService.Update(h.GetDB(c), id, patch)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, trainer)
}

// @Summary Удалить тренера
// @Description 409, если тренер указан в подписках
// @Tags trainers
// @Router /trainers/{id} [delete]
func (h *TrainerHandler) Delete(c *gin.Context) {
	id, ok := ParseParamUint(c, "id")
	if !ok {
		return
	}

	if err := h.trainerService.Delete(h.GetDB(c), id); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
