package dto

import (
	"gym_backend/internal/models"
	"gym_backend/internal/validator"
)

type CreateTransactionRequest struct {
	SubscriptionID *uint   `json:"subscriptionId" form:"subscriptionId"`
	Bill           string  `json:"bill" form:"bill"`
	Income         float64 `json:"income" form:"income" validate:"gte=0"`
	Expense        float64 `json:"expense" form:"expense" validate:"gte=0"`
	Category       string  `json:"category" form:"category" validate:"omitempty,tx-category"`
	GymID          uint    `json:"gymId" form:"gymId" validate:"required"`
}

// ToModel: без категории - Income, если есть доход, иначе Expense
func (r *CreateTransactionRequest) ToModel() *models.Transaction {
	tx := &models.Transaction{
		SubscriptionID: r.SubscriptionID,
		Bill:           r.Bill,
		Income:         r.Income,
		Expense:        r.Expense,
		Category:       models.TransactionCategory(r.Category),
		GymID:          r.GymID,
	}
	if tx.SubscriptionID != nil && *tx.SubscriptionID == 0 {
		tx.SubscriptionID = nil
	}
	if tx.Category == "" {
		tx.Category = DefaultCategory(r.Income)
	}
	return tx
}

func DefaultCategory(income float64) models.TransactionCategory {
	if income > 0 {
		return models.TransactionCategoryIncome
	}
	return models.TransactionCategoryExpense
}

type TransactionQuery struct {
	GymID          *uint  `form:"gymId"`
	SubscriptionID *uint  `form:"subscriptionId"`
	Category       string `form:"category" validate:"omitempty,tx-category"`
}

type TransactionResponse struct {
	ID             uint    `json:"id"`
	SubscriptionID *uint   `json:"subscriptionId"`
	Bill           string  `json:"bill"`
	Income         float64 `json:"income"`
	Expense        float64 `json:"expense"`
	Category       string  `json:"category"`
	GymID          uint    `json:"gymId"`
	CreatedAt      string  `json:"createdAt"`
}

func NewTransactionResponse(t *models.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:             t.ID,
		SubscriptionID: t.SubscriptionID,
		Bill:           t.Bill,
		Income:         t.Income,
		Expense:        t.Expense,
		Category:       string(t.Category),
		GymID:          t.GymID,
		CreatedAt:      formatTimestamp(t.CreatedAt),
	}
}

func NewTransactionListResponse(items []models.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(items))
	for i := range items {
		out = append(out, NewTransactionResponse(&items[i]))
	}
	return out
}

// TransactionSummary - итоги для страницы финансов
type TransactionSummary struct {
	IncomeTotal  float64 `json:"incomeTotal"`
	ExpenseTotal float64 `json:"expenseTotal"`
	ProfitTotal  float64 `json:"profitTotal"`
	Count        int64   `json:"count"`
}

var TransactionUpdateFields = AllowList{
	"subscriptionId": {Column: "subscription_id", Kind: KindUint, Positive: true},
	"bill":           {Column: "bill", Kind: KindString},
	"income":         {Column: "income", Kind: KindNumber, NotNull: true, NonNegative: true},
	"expense":        {Column: "expense", Kind: KindNumber, NotNull: true, NonNegative: true},
	"category":       {Column: "category", Kind: KindString, NotNull: true, Enum: validator.TagTxCategory},
	"gymId":          {Column: "gym_id", Kind: KindUint, NotNull: true, Positive: true},
}
