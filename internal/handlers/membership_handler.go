package handlers

import (
	"net/http"

	"gym_backend/internal/dto"
	"gym_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type MembershipHandler struct {
	*BaseHandler
	membershipService services.MembershipService
}

func NewMembershipHandler(base *BaseHandler, membershipService services.MembershipService) *MembershipHandler {
	return &MembershipHandler{
		BaseHandler:       base,
		membershipService: membershipService,
	}
}

func (h *MembershipHandler) RegisterRoutes(r *gin.RouterGroup) {
	memberships := r.Group("/memberships")
	{
		memberships.GET("", h.List)
		memberships.POST("", h.Create)
		memberships.GET("/:id", h.Get)
		memberships.PUT("/:id", h.Update)
		memberships.PATCH("/:id", h.Update)
		memberships.DELETE("/:id", h.Delete)
	}
}

// @Summary Список планов
// @Tags memberships
// @Param gymId query int false "ID зала"
// @Success 200 {array} dto.MembershipResponse
// @Router /memberships [get]
func (h *MembershipHandler) List(c *gin.Context) {
	var query dto.GymQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	plans, err := h.membershipService.List(h.GetDB(c), query.GymID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, plans)
}

func (h *MembershipHandler) Get(c *gin.Context) {
	id, ok := ParseParamUint(c, "id")
	if !ok {
		return
	}

	plan, err := h.membershipService.Get(h.GetDB(c), id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, plan)
}

// @Summary Добавить план
// @Tags memberships
// @Param membership body dto.CreateMembershipRequest true "План"
// @Success 201 {object} dto.MembershipResponse
// @Router /memberships [post]
func (h *MembershipHandler) Create(c *gin.Context) {
	var req dto.CreateMembershipRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	plan, err := h.membershipService.Create(h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, plan)
}

func (h *MembershipHandler) Update(c *gin.Context) {
	id, ok := ParseParamUint(c, "id")
	if !ok {
		return
	}
	patch, ok := h.ReadPatch(c, dto.MembershipUpdateFields, nil)
	if !ok {
		return
	}

	plan, err := h.membershipService.Update(h.GetDB(c), id, patch)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, plan)
}

// @Summary Удалить план
// @Description 409, если на план есть подписки
// @Tags memberships
// @Router /memberships/{id} [delete]
func (h *MembershipHandler) Delete(c *gin.Context) {
	id, ok := ParseParamUint(c, "id")
	if !ok {
		return
	}

	if err := h.membershipService.Delete(h.GetDB(c), id); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
