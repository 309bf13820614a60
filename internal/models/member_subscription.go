package models

import (
	"gorm.io/datatypes"
)

// MemberSubscription связывает участника, план и (опционально) тренера.
// Внешние ключи создаются без ON DELETE CASCADE: зависимые строки удаляются явно.
type MemberSubscription struct {
	BaseModel
	MemberID     uint               `gorm:"not null;index"`
	MembershipID uint               `gorm:"not null;index"`
	TrainerID    *uint              `gorm:"index"`
	PTSchedule   *string            `gorm:"column:pt_schedule;size:255"`
	StartDate    datatypes.Date     `gorm:"not null"`
	EndDate      datatypes.Date     `gorm:"not null;index"`
	Status       SubscriptionStatus `gorm:"size:16;not null;default:Active;index"`

	Member     *Member     `gorm:"foreignKey:MemberID;constraint:OnDelete:RESTRICT"`
	Membership *Membership `gorm:"foreignKey:MembershipID;constraint:OnDelete:RESTRICT"`
	Trainer    *Trainer    `gorm:"foreignKey:TrainerID;constraint:OnDelete:RESTRICT"`
}

func (MemberSubscription) TableName() string { return "member_subscriptions" }

// SubscriptionDetail - строка выборки подписки с участником, планом и тренером
type SubscriptionDetail struct {
	ID              uint
	MemberID        uint
	MembershipID    uint
	TrainerID       *uint
	PTSchedule      *string `gorm:"column:pt_schedule"`
	StartDate       datatypes.Date
	EndDate         datatypes.Date
	Status          SubscriptionStatus
	MemberName      string
	MemberGymID     uint
	MembershipTitle string
	MembershipPrice float64
	MembershipGymID uint
	TrainerName     *string
}
