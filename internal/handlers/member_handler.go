package handlers

import (
	"net/http"

	"gym_backend/internal/dto"
	"gym_backend/internal/services"
	"gym_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type MemberHandler struct {
	*BaseHandler
	memberService services.MemberService
	reportService services.ReportService
	uploadService services.UploadService
}

func NewMemberHandler(
	base *BaseHandler,
	memberService services.MemberService,
	reportService services.ReportService,
	uploadService services.UploadService,
) *MemberHandler {
	return &MemberHandler{
		BaseHandler:   base,
		memberService: memberService,
		reportService: reportService,
		uploadService: uploadService,
	}
}

func (h *MemberHandler) RegisterRoutes(r *gin.RouterGroup) {
	members := r.Group("/members")
	{
		members.GET("", h.List)
		members.POST("", h.Create)
		members.GET("/reports", h.Dashboard)
		members.GET("/reports/:kind", h.Report)
		members.GET("/:id", h.Get)
		members.PUT("/:id", h.Update)
		members.PATCH("/:id", h.Update)
		members.DELETE("/:id", h.Delete)
	}
}

// List godoc
// @Summary Список участников
// @Description Участники с текущим планом (plan) и датой следующей оплаты (nextBillDate)
// @Tags members
// @Produce json
// @Param gymId query int false "ID зала"
// @Success 200 {array} dto.MemberResponse
// @Security BearerAuth
// @Router /members [get]
func (h *MemberHandler) List(c *gin.Context) {
	var query dto.GymQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	members, err := h.memberService.List(h.GetDB(c), query.GymID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, members)
}

// Get godoc
// @Summary Участник по ID
// @Tags members
// @Produce json
// @Param id path int true "ID участника"
// @Success 200 {object} dto.MemberResponse
// @Failure 404 {object} apperrors.AppError
// @Security BearerAuth
// @Router /members/{id} [get]
func (h *MemberHandler) Get(c *gin.Context) {
	id, ok := ParseParamUint(c, "id")
	if !ok {
		return
	}

	member, err := h.memberService.Get(h.GetDB(c), id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, member)
}

// Create godoc
// @Summary Добавить участника
// @Description JSON или multipart/form-data (файл profilePic). С membershipId создается подписка: endDate = joinDate + срок плана
// @Tags members
// @Accept json,mpfd
// @Produce json
// @Param member body dto.CreateMemberRequest true "Участник"
// @Success 201 {object} dto.MemberResponse
// @Failure 400 {object} apperrors.AppError
// @Security BearerAuth
// @Router /members [post]
func (h *MemberHandler) Create(c *gin.Context) {
	var req dto.CreateMemberRequest
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

	member, err := h.memberService.Create(h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, member)
}

// Update godoc
// @Summary Частичное обновление участника
// @Tags members
// @Accept json,mpfd
// @Produce json
// @Param id path int true "ID участника"
// @Param member body object true "Изменяемые поля"
// @Success 200 {object} dto.MemberResponse
// @Failure 400 {object} apperrors.AppError
// @Failure 404 {object} apperrors.AppError
// @Security BearerAuth
// @Router /members/{id} [put]
func (h *MemberHandler) Update(c *gin.Context) {
	id, ok := ParseParamUint(c, "id")
	if !ok {
		return
	}

	url, ok := uploadAvatar(h.BaseHandler, c, h.uploadService)
	if !ok {
		return
	}
	patch, ok := h.ReadPatch(c, dto.MemberUpdateFields, avatarPatch(url))
	if !ok {
		return
	}

	member, err := h.memberService.Update(h.GetDB(c), id, patch)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, member)
}

// Delete godoc
// @Summary Удалить участника
// @Description Вместе с подписками и их транзакциями, в одной транзакции БД
// @Tags members
// @Param id path int true "ID участника"
// @Success 204
// @Failure 404 {object} apperrors.AppError
// @Security BearerAuth
// @Router /members/{id} [delete]
func (h *MemberHandler) Delete(c *gin.Context) {
	id, ok := ParseParamUint(c, "id")
	if !ok {
		return
	}

	if err := h.memberService.Delete(h.GetDB(c), id); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Report godoc
// @Summary Отчет по участникам
// @Tags members
// @Produce json
// @Param kind path string true "monthly-joined | expiring-3-days | expiring-4-7-days | expired | inactive"
// @Param gymId query int false "ID зала"
// @Success 200 {object} dto.ReportResponse
// @Failure 400 {object} apperrors.AppError "Неизвестный отчет"
// @Security BearerAuth
// @Router /members/reports/{kind} [get]
func (h *MemberHandler) Report(c *gin.Context) {
	var query dto.GymQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	kind := dto.ReportKind(c.Param("kind"))
	if !kind.Valid() {
		h.HandleServiceError(c, apperrors.ErrInvalidReportKind)
		return
	}

	report, err := h.reportService.Report(h.GetDB(c), kind, query.GymID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// Dashboard godoc
// @Summary Карточки отчетов для дашборда
// @Tags members
// @Produce json
// @Param gymId query int false "ID зала"
// @Success 200 {array} dto.ReportCard
// @Security BearerAuth
// @Router /members/reports [get]
func (h *MemberHandler) Dashboard(c *gin.Context) {
	var query dto.GymQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	cards, err := h.reportService.Dashboard(h.GetDB(c), query.GymID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, cards)
}
