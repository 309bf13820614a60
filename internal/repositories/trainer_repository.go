package repositories

import (
	"gym_backend/internal/models"
	"gym_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type TrainerRepository interface {
	Create(db *gorm.DB, t *models.Trainer) error
	FindByID(db *gorm.DB, id uint) (*models.Trainer, error)
	List(db *gorm.DB, gymID *uint) ([]models.Trainer, error)
	Update(db *gorm.DB, id uint, patch map[string]interface{}) error
	Delete(db *gorm.DB, id uint) error
}

type TrainerRepositoryImpl struct{}

func NewTrainerRepository() TrainerRepository {
	return &TrainerRepositoryImpl{}
}

func (r *TrainerRepositoryImpl) Create(db *gorm.DB, t *models.Trainer) error {
	return apperrors.TranslateDBError(db.Create(t).Error, nil)
}

func (r *TrainerRepositoryImpl) FindByID(db *gorm.DB, id uint) (*models.Trainer, error) {
	return findByID[models.Trainer](db, id, apperrors.ErrTrainerNotFound)
}

func (r *TrainerRepositoryImpl) List(db *gorm.DB, gymID *uint) ([]models.Trainer, error) {
	var items []models.Trainer
	err := db.Scopes(byGym("gym_id", gymID)).Order("name ASC, id ASC").Find(&items).Error
	return items, err
}

func (r *TrainerRepositoryImpl) Update(db *gorm.DB, id uint, patch map[string]interface{}) error {
	return updateByID(db, &models.Trainer{}, id, patch, apperrors.ErrTrainerNotFound)
}

// Delete: тренер, на которого ссылаются подписки, не удаляется (409)
func (r *TrainerRepositoryImpl) Delete(db *gorm.DB, id uint) error {
	return deleteByID(db, &models.Trainer{}, id, apperrors.ErrTrainerNotFound)
}
