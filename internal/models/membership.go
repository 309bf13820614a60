package models

// Membership - тарифный план зала
type Membership struct {
	BaseModel
	Title            string  `gorm:"size:255;not null"`
	Price            float64 `gorm:"type:decimal(12,2);not null"`
	DurationInMonths int     `gorm:"not null;default:1"`
	PackageType      string  `gorm:"size:32;not null;default:Normal"`
	GymID            uint    `gorm:"not null;index"`
}

func (Membership) TableName() string { return "memberships" }
