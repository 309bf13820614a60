package repositories

import (
	"time"

	"gym_backend/internal/models"
	"gym_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type MemberRepository interface {
	Create(db *gorm.DB, m *models.Member) error
	FindByID(db *gorm.DB, id uint) (*models.Member, error)
	Exists(db *gorm.DB, id uint) (bool, error)
	List(db *gorm.DB, gymID *uint) ([]models.Member, error)
	Update(db *gorm.DB, id uint, patch map[string]interface{}) error
	Delete(db *gorm.DB, id uint) error
	GymIDs(db *gorm.DB) ([]uint, error)

	// Отчеты
	ListJoinedBetween(db *gorm.DB, gymID *uint, from, to time.Time) ([]models.Member, error)
	ListByStatus(db *gorm.DB, gymID *uint, status models.MemberStatus) ([]models.Member, error)
	ListPlanEndingBetween(db *gorm.DB, gymID *uint, from, to time.Time) ([]models.Member, error)
	ListExpired(db *gorm.DB, gymID *uint, today time.Time) ([]models.Member, error)
}

type MemberRepositoryImpl struct{}

func NewMemberRepository() MemberRepository {
	return &MemberRepositoryImpl{}
}

func (r *MemberRepositoryImpl) Create(db *gorm.DB, m *models.Member) error {
	return apperrors.TranslateDBError(db.Create(m).Error, nil)
}

func (r *MemberRepositoryImpl) FindByID(db *gorm.DB, id uint) (*models.Member, error) {
	return findByID[models.Member](db, id, apperrors.ErrMemberNotFound)
}

func (r *MemberRepositoryImpl) Exists(db *gorm.DB, id uint) (bool, error) {
	return existsByID(db, &models.Member{}, id)
}

func (r *MemberRepositoryImpl) List(db *gorm.DB, gymID *uint) ([]models.Member, error) {
	var members []models.Member
	err := r.ordered(db, gymID).Find(&members).Error
	return members, err
}

func (r *MemberRepositoryImpl) Update(db *gorm.DB, id uint, patch map[string]interface{}) error {
	return updateByID(db, &models.Member{}, id, patch, apperrors.ErrMemberNotFound)
}

// Delete удаляет только строку members; зависимые строки удаляет сервис
// в той же транзакции.
func (r *MemberRepositoryImpl) Delete(db *gorm.DB, id uint) error {
	return deleteByID(db, &models.Member{}, id, apperrors.ErrMemberNotFound)
}

// GymIDs - залы, в которых есть участники
func (r *MemberRepositoryImpl) GymIDs(db *gorm.DB) ([]uint, error) {
	var ids []uint
	err := db.Model(&models.Member{}).Distinct().Order("gym_id").Pluck("gym_id", &ids).Error
	return ids, err
}

// ============================================
// Отчеты
// ============================================

// ListJoinedBetween - join_date в [from, to)
func (r *MemberRepositoryImpl) ListJoinedBetween(db *gorm.DB, gymID *uint, from, to time.Time) ([]models.Member, error) {
	var members []models.Member
	err := r.ordered(db, gymID).
		Where("join_date >= ? AND join_date < ?", models.NewDate(from), models.NewDate(to)).
		Find(&members).Error
	return members, err
}

func (r *MemberRepositoryImpl) ListByStatus(db *gorm.DB, gymID *uint, status models.MemberStatus) ([]models.Member, error) {
	var members []models.Member
	err := r.ordered(db, gymID).Where("status = ?", status).Find(&members).Error
	return members, err
}

// ListPlanEndingBetween - участники, у которых самая поздняя активная
// подписка заканчивается в [from, to] (то же значение, что nextBillDate)
func (r *MemberRepositoryImpl) ListPlanEndingBetween(db *gorm.DB, gymID *uint, from, to time.Time) ([]models.Member, error) {
	sub := db.Session(&gorm.Session{NewDB: true}).
		Model(&models.MemberSubscription{}).
		Select("member_id").
		Where("status = ?", models.SubscriptionStatusActive).
		Group("member_id").
		Having("MAX(end_date) BETWEEN ? AND ?", models.NewDate(from), models.NewDate(to))

	var members []models.Member
	err := r.ordered(db, gymID).Where("id IN (?)", sub).Find(&members).Error
	return members, err
}

// ListExpired - есть закончившиеся подписки и нет активной, действующей на сегодня
func (r *MemberRepositoryImpl) ListExpired(db *gorm.DB, gymID *uint, today time.Time) ([]models.Member, error) {
	day := models.NewDate(today)
	base := db.Session(&gorm.Session{NewDB: true})

	ended := base.Model(&models.MemberSubscription{}).
		Select("member_id").
		Where("end_date < ?", day)
	current := base.Model(&models.MemberSubscription{}).
		Select("member_id").
		Where("status = ? AND end_date >= ?", models.SubscriptionStatusActive, day)

	var members []models.Member
	err := r.ordered(db, gymID).
		Where("id IN (?)", ended).
		Where("id NOT IN (?)", current).
		Find(&members).Error
	return members, err
}

func (r *MemberRepositoryImpl) ordered(db *gorm.DB, gymID *uint) *gorm.DB {
	return db.Model(&models.Member{}).
		Scopes(byGym("gym_id", gymID)).
		Order("join_date DESC, id DESC")
}
