package repositories

import (
	"gym_backend/internal/models"
	"gym_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type TransactionFilter struct {
	GymID          *uint
	SubscriptionID *uint
	Category       string
}

// TransactionTotals - суммы по фильтру
type TransactionTotals struct {
	IncomeTotal  float64
	ExpenseTotal float64
	Count        int64
}

type TransactionRepository interface {
	Create(db *gorm.DB, t *models.Transaction) error
	FindByID(db *gorm.DB, id uint) (*models.Transaction, error)
	List(db *gorm.DB, filter TransactionFilter) ([]models.Transaction, error)
	Update(db *gorm.DB, id uint, patch map[string]interface{}) error
	Delete(db *gorm.DB, id uint) error
	DeleteBySubscriptionIDs(db *gorm.DB, ids []uint) (int64, error)
	Totals(db *gorm.DB, filter TransactionFilter) (*TransactionTotals, error)
}

type TransactionRepositoryImpl struct{}

func NewTransactionRepository() TransactionRepository {
	return &TransactionRepositoryImpl{}
}

func (r *TransactionRepositoryImpl) Create(db *gorm.DB, t *models.Transaction) error {
	return apperrors.TranslateDBError(db.Omit("Subscription").Create(t).Error, nil)
}

func (r *TransactionRepositoryImpl) FindByID(db *gorm.DB, id uint) (*models.Transaction, error) {
	return findByID[models.Transaction](db, id, apperrors.ErrTransactionNotFound)
}

func (r *TransactionRepositoryImpl) List(db *gorm.DB, filter TransactionFilter) ([]models.Transaction, error) {
	var items []models.Transaction
	err := r.filtered(db, filter).Order("created_at DESC, id DESC").Find(&items).Error
	return items, err
}

func (r *TransactionRepositoryImpl) Update(db *gorm.DB, id uint, patch map[string]interface{}) error {
	return updateByID(db, &models.Transaction{}, id, patch, apperrors.ErrTransactionNotFound)
}

func (r *TransactionRepositoryImpl) Delete(db *gorm.DB, id uint) error {
	return deleteByID(db, &models.Transaction{}, id, apperrors.ErrTransactionNotFound)
}

func (r *TransactionRepositoryImpl) DeleteBySubscriptionIDs(db *gorm.DB, ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := db.Where("subscription_id IN ?", ids).Delete(&models.Transaction{})
	return res.RowsAffected, res.Error
}

func (r *TransactionRepositoryImpl) Totals(db *gorm.DB, filter TransactionFilter) (*TransactionTotals, error) {
	var totals TransactionTotals
	err := r.filtered(db, filter).
		Select("COALESCE(SUM(income), 0) AS income_total, COALESCE(SUM(expense), 0) AS expense_total, COUNT(*) AS count").
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}
	return &totals, nil
}

func (r *TransactionRepositoryImpl) filtered(db *gorm.DB, filter TransactionFilter) *gorm.DB {
	q := db.Model(&models.Transaction{}).Scopes(byGym("gym_id", filter.GymID))
	if filter.SubscriptionID != nil {
		q = q.Where("subscription_id = ?", *filter.SubscriptionID)
	}
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	return q
}
