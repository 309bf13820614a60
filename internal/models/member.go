package models

import (
	"time"

	"gorm.io/datatypes"
)

type Member struct {
	BaseModel
	Name       string         `gorm:"size:255;not null"`
	MobileNo   string         `gorm:"size:32;not null"`
	Address    *string        `gorm:"size:512"`
	ProfilePic *string        `gorm:"size:512"`
	JoinDate   datatypes.Date `gorm:"not null;index"`
	Status     MemberStatus   `gorm:"size:16;not null;default:Active"`
	GymID      uint           `gorm:"not null;index"`
}

func (Member) TableName() string { return "members" }

// CurrentPlan - производные поля участника из активной подписки
// с самой поздней датой окончания (не хранятся в members)
type CurrentPlan struct {
	MemberID       uint
	SubscriptionID uint
	Title          string
	EndDate        time.Time
}
