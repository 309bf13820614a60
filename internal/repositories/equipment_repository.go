package repositories

import (
	"gym_backend/internal/models"
	"gym_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type EquipmentRepository interface {
	Create(db *gorm.DB, e *models.Equipment) error
	FindByID(db *gorm.DB, id uint) (*models.Equipment, error)
	List(db *gorm.DB, gymID *uint) ([]models.Equipment, error)
	Update(db *gorm.DB, id uint, patch map[string]interface{}) error
	Delete(db *gorm.DB, id uint) error
}

type EquipmentRepositoryImpl struct{}

func NewEquipmentRepository() EquipmentRepository {
	return &EquipmentRepositoryImpl{}
}

func (r *EquipmentRepositoryImpl) Create(db *gorm.DB, e *models.Equipment) error {
	return apperrors.TranslateDBError(db.Create(e).Error, nil)
}

func (r *EquipmentRepositoryImpl) FindByID(db *gorm.DB, id uint) (*models.Equipment, error) {
	return findByID[models.Equipment](db, id, apperrors.ErrEquipmentNotFound)
}

// List - сначала с датой покупки (новые выше), затем без даты
func (r *EquipmentRepositoryImpl) List(db *gorm.DB, gymID *uint) ([]models.Equipment, error) {
	var items []models.Equipment
	err := db.Scopes(byGym("gym_id", gymID)).
		Order("purchase_date IS NULL, purchase_date DESC, id DESC").
		Find(&items).Error
	return items, err
}

func (r *EquipmentRepositoryImpl) Update(db *gorm.DB, id uint, patch map[string]interface{}) error {
	return updateByID(db, &models.Equipment{}, id, patch, apperrors.ErrEquipmentNotFound)
}

func (r *EquipmentRepositoryImpl) Delete(db *gorm.DB, id uint) error {
	return deleteByID(db, &models.Equipment{}, id, apperrors.ErrEquipmentNotFound)
}
