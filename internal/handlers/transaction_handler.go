package handlers

import (
	"net/http"

	"gym_backend/internal/dto"
	"gym_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type TransactionHandler struct {
	*BaseHandler
	transactionService services.TransactionService
}

func NewTransactionHandler(base *BaseHandler, transactionService services.TransactionService) *TransactionHandler {
	return &TransactionHandler{
		BaseHandler:        base,
		transactionService: transactionService,
	}
}

func (h *TransactionHandler) RegisterRoutes(r *gin.RouterGroup) {
	txs := r.Group("/transactions")
	{
		txs.GET("", h.List)
		txs.POST("", h.Create)
		txs.GET("/summary", h.Summary)
		txs.GET("/:id", h.Get)
		txs.PUT("/:id", h.Update)
		txs.PATCH("/:id", h.Update)
		txs.DELETE("/:id", h.Delete)
	}
}

// List godoc
// @Summary Список транзакций
// @Tags transactions
// @Produce json
// @Param gymId query int false "ID зала"
// @Param subscriptionId query int false "ID подписки"
// @Param category query string false "Income | Expense"
// @Success 200 {array} dto.TransactionResponse
// @Security BearerAuth
// @Router /transactions [get]
func (h *TransactionHandler) List(c *gin.Context) {
	var query dto.TransactionQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	txs, err := h.transactionService.List(h.GetDB(c), &query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, txs)
}

// Summary godoc
// @Summary Итоги: доход, расход, прибыль
// @Tags transactions
// @Produce json
// @Param gymId query int false "ID зала"
// @Success 200 {object} dto.TransactionSummary
// @Security BearerAuth
// @Router /transactions/summary [get]
func (h *TransactionHandler) Summary(c *gin.Context) {
	var query dto.TransactionQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	summary, err := h.transactionService.Summary(h.GetDB(c), &query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

func (h *TransactionHandler) Get(c *gin.Context) {
	id, ok := ParseParamUint(c, "id")
	if !ok {
		return
	}

	tx, err := h.transactionService.Get(h.GetDB(c), id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, tx)
}

// Create godoc
// @Summary Новая транзакция
// @Description Категория по умолчанию: Income при income > 0, иначе Expense
// @Tags transactions
// @Accept json
// @Produce json
// @Param transaction body dto.CreateTransactionRequest true "Транзакция"
// @Success 201 {object} dto.TransactionResponse
// @Security BearerAuth
// @Router /transactions [post]
func (h *TransactionHandler) Create(c *gin.Context) {
	var req dto.CreateTransactionRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	tx, err := h.transactionService.Create(h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, tx)
}

func (h *TransactionHandler) Update(c *gin.Context) {
	id, ok := ParseParamUint(c, "id")
	if !ok {
		return
	}
	patch, ok := h.ReadPatch(c, dto.TransactionUpdateFields, nil)
	if !ok {
		return
	}

	tx, err := h.transactionService.Update(h.GetDB(c), id, patch)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, tx)
}

func (h *TransactionHandler) Delete(c *gin.Context) {
	id, ok := ParseParamUint(c, "id")
	if !ok {
		return
	}

	if err := h.transactionService.Delete(h.GetDB(c), id); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
