package models

import (
	"gorm.io/datatypes"
)

type Equipment struct {
	BaseModel
	Name                   string             `gorm:"size:255;not null"`
	Category               *string            `gorm:"size:64"`
	Location               *string            `gorm:"size:255"`
	Status                 EquipmentStatus    `gorm:"size:32;not null;default:Available"`
	Condition              EquipmentCondition `gorm:"size:32;not null;default:Good"`
	Image                  *string            `gorm:"size:512"`
	Description            *string            `gorm:"type:text"`
	PurchasePrice          *float64           `gorm:"type:decimal(12,2)"`
	PurchaseDate           *datatypes.Date
	MaintenanceDate        *datatypes.Date
	MaintenanceCost        float64 `gorm:"type:decimal(12,2);not null;default:0"`
	MonthlyMaintenanceCost float64 `gorm:"type:decimal(12,2);not null;default:0"`
	GymID                  uint    `gorm:"not null;index"`
}

func (Equipment) TableName() string { return "equipment" }
