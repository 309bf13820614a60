package repositories

import (
	"time"

	"gym_backend/internal/models"
	"gym_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// SubscriptionFilter - необязательные фильтры списка подписок
type SubscriptionFilter struct {
	GymID    *uint
	MemberID *uint
	Status   string
}

type SubscriptionRepository interface {
	Create(db *gorm.DB, s *models.MemberSubscription) error
	FindByID(db *gorm.DB, id uint) (*models.MemberSubscription, error)
	FindDetail(db *gorm.DB, id uint) (*models.SubscriptionDetail, error)
	ListDetails(db *gorm.DB, filter SubscriptionFilter) ([]models.SubscriptionDetail, error)
	Update(db *gorm.DB, id uint, patch map[string]interface{}) error
	Delete(db *gorm.DB, id uint) error

	IDsByMember(db *gorm.DB, memberID uint) ([]uint, error)
	DeleteByMember(db *gorm.DB, memberID uint) (int64, error)
	CurrentPlans(db *gorm.DB, memberIDs []uint) (map[uint]*models.CurrentPlan, error)
	ExpireEndedBefore(db *gorm.DB, day time.Time) (int64, error)
}

type SubscriptionRepositoryImpl struct{}

func NewSubscriptionRepository() SubscriptionRepository {
	return &SubscriptionRepositoryImpl{}
}

const subscriptionDetailSelect = `
	ms.id, ms.member_id, ms.membership_id, ms.trainer_id, ms.pt_schedule,
	ms.start_date, ms.end_date, ms.status,
	m.name AS member_name, m.gym_id AS member_gym_id,
	mem.title AS membership_title, mem.price AS membership_price, mem.gym_id AS membership_gym_id,
	t.name AS trainer_name`

// detailQuery - общий join для чтения подписок
func (r *SubscriptionRepositoryImpl) detailQuery(db *gorm.DB) *gorm.DB {
	return db.Table("member_subscriptions AS ms").
		Select(subscriptionDetailSelect).
		Joins("INNER JOIN members m ON ms.member_id = m.id").
		Joins("INNER JOIN memberships mem ON ms.membership_id = mem.id").
		Joins("LEFT JOIN trainers t ON ms.trainer_id = t.id")
}

func (r *SubscriptionRepositoryImpl) Create(db *gorm.DB, s *models.MemberSubscription) error {
	return apperrors.TranslateDBError(db.Omit("Member", "Membership", "Trainer").Create(s).Error, nil)
}

func (r *SubscriptionRepositoryImpl) FindByID(db *gorm.DB, id uint) (*models.MemberSubscription, error) {
	return findByID[models.MemberSubscription](db, id, apperrors.ErrSubscriptionNotFound)
}

func (r *SubscriptionRepositoryImpl) FindDetail(db *gorm.DB, id uint) (*models.SubscriptionDetail, error) {
	var rows []models.SubscriptionDetail
	if err := r.detailQuery(db).Where("ms.id = ?", id).Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, apperrors.ErrSubscriptionNotFound
	}
	return &rows[0], nil
}

// ListDetails: gymId совпадает с залом участника ИЛИ плана
func (r *SubscriptionRepositoryImpl) ListDetails(db *gorm.DB, filter SubscriptionFilter) ([]models.SubscriptionDetail, error) {
	q := r.detailQuery(db)
	if filter.GymID != nil {
		q = q.Where("(m.gym_id = ? OR mem.gym_id = ?)", *filter.GymID, *filter.GymID)
	}
	if filter.MemberID != nil {
		q = q.Where("ms.member_id = ?", *filter.MemberID)
	}
	if filter.Status != "" {
		q = q.Where("ms.status = ?", filter.Status)
	}

	rows := []models.SubscriptionDetail{}
	err := q.Order("ms.start_date DESC, ms.id DESC").Scan(&rows).Error
	return rows, err
}

func (r *SubscriptionRepositoryImpl) Update(db *gorm.DB, id uint, patch map[string]interface{}) error {
	return updateByID(db, &models.MemberSubscription{}, id, patch, apperrors.ErrSubscriptionNotFound)
}

func (r *SubscriptionRepositoryImpl) Delete(db *gorm.DB, id uint) error {
	return deleteByID(db, &models.MemberSubscription{}, id, apperrors.ErrSubscriptionNotFound)
}

func (r *SubscriptionRepositoryImpl) IDsByMember(db *gorm.DB, memberID uint) ([]uint, error) {
	var ids []uint
	err := db.Model(&models.MemberSubscription{}).Where("member_id = ?", memberID).Pluck("id", &ids).Error
	return ids, err
}

func (r *SubscriptionRepositoryImpl) DeleteByMember(db *gorm.DB, memberID uint) (int64, error) {
	res := db.Where("member_id = ?", memberID).Delete(&models.MemberSubscription{})
	return res.RowsAffected, apperrors.TranslateDBError(res.Error, nil)
}

type currentPlanRow struct {
	MemberID       uint
	SubscriptionID uint
	Title          string
	EndDate        time.Time
}

// CurrentPlans возвращает для каждого участника активную подписку
// с самой поздней датой окончания. Участники без нее в карту не попадают.
func (r *SubscriptionRepositoryImpl) CurrentPlans(db *gorm.DB, memberIDs []uint) (map[uint]*models.CurrentPlan, error) {
	plans := make(map[uint]*models.CurrentPlan, len(memberIDs))
	if len(memberIDs) == 0 {
		return plans, nil
	}

	var rows []currentPlanRow
	err := db.Table("member_subscriptions AS ms").
		Select("ms.member_id, ms.id AS subscription_id, mem.title, ms.end_date").
		Joins("INNER JOIN memberships mem ON ms.membership_id = mem.id").
		Where("ms.status = ? AND ms.member_id IN ?", models.SubscriptionStatusActive, memberIDs).
		Order("ms.member_id, ms.end_date DESC, ms.id DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		if _, seen := plans[row.MemberID]; seen {
			continue
		}
		plans[row.MemberID] = &models.CurrentPlan{
			MemberID:       row.MemberID,
			SubscriptionID: row.SubscriptionID,
			Title:          row.Title,
			EndDate:        models.DateOf(row.EndDate),
		}
	}
	return plans, nil
}

// ExpireEndedBefore переводит активные подписки с end_date < day в Expired
func (r *SubscriptionRepositoryImpl) ExpireEndedBefore(db *gorm.DB, day time.Time) (int64, error) {
	res := db.Model(&models.MemberSubscription{}).
		Where("status = ? AND end_date < ?", models.SubscriptionStatusActive, models.NewDate(day)).
		Update("status", models.SubscriptionStatusExpired)
	return res.RowsAffected, res.Error
}
