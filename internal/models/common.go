package models

import (
	"time"
)

// BaseModel - целочисленный автоинкрементный ключ (совместим с postgres и mysql)
type BaseModel struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}
