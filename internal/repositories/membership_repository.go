package repositories

import (
	"gym_backend/internal/models"
	"gym_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type MembershipRepository interface {
	Create(db *gorm.DB, m *models.Membership) error
	FindByID(db *gorm.DB, id uint) (*models.Membership, error)
	List(db *gorm.DB, gymID *uint) ([]models.Membership, error)
	Update(db *gorm.DB, id uint, patch map[string]interface{}) error
	Delete(db *gorm.DB, id uint) error
}

type MembershipRepositoryImpl struct{}

func NewMembershipRepository() MembershipRepository {
	return &MembershipRepositoryImpl{}
}

func (r *MembershipRepositoryImpl) Create(db *gorm.DB, m *models.Membership) error {
	return apperrors.TranslateDBError(db.Create(m).Error, nil)
}

func (r *MembershipRepositoryImpl) FindByID(db *gorm.DB, id uint) (*models.Membership, error) {
	return findByID[models.Membership](db, id, apperrors.ErrMembershipNotFound)
}

func (r *MembershipRepositoryImpl) List(db *gorm.DB, gymID *uint) ([]models.Membership, error) {
	var items []models.Membership
	err := db.Scopes(byGym("gym_id", gymID)).Order("price ASC, id ASC").Find(&items).Error
	return items, err
}

func (r *MembershipRepositoryImpl) Update(db *gorm.DB, id uint, patch map[string]interface{}) error {
	return updateByID(db, &models.Membership{}, id, patch, apperrors.ErrMembershipNotFound)
}

func (r *MembershipRepositoryImpl) Delete(db *gorm.DB, id uint) error {
	return deleteByID(db, &models.Membership{}, id, apperrors.ErrMembershipNotFound)
}
