package repositories

import (
	"gym_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// byGym - фильтр по залу; nil означает "все залы"
func byGym(column string, gymID *uint) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if gymID == nil {
			return db
		}
		return db.Where(column+" = ?", *gymID)
	}
}

func findByID[T any](db *gorm.DB, id uint, notFound *apperrors.AppError) (*T, error) {
	var out T
	if err := db.First(&out, id).Error; err != nil {
		return nil, apperrors.TranslateDBError(err, notFound)
	}
	return &out, nil
}

func existsByID(db *gorm.DB, model interface{}, id uint) (bool, error) {
	var count int64
	if err := db.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// updateByID проверяет существование отдельно: в MySQL RowsAffected = 0,
// если новые значения совпадают со старыми.
func updateByID(db *gorm.DB, model interface{}, id uint, patch map[string]interface{}, notFound *apperrors.AppError) error {
	ok, err := existsByID(db, model, id)
	if err != nil {
		return err
	}
	if !ok {
		return notFound
	}
	err = db.Model(model).Where("id = ?", id).Updates(patch).Error
	return apperrors.TranslateDBError(err, notFound)
}

func deleteByID(db *gorm.DB, model interface{}, id uint, notFound *apperrors.AppError) error {
	res := db.Delete(model, id)
	if res.Error != nil {
		return apperrors.TranslateDBError(res.Error, notFound)
	}
	if res.RowsAffected == 0 {
		return notFound
	}
	return nil
}
