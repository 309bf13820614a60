package models

type Transaction struct {
	BaseModel
	SubscriptionID *uint               `gorm:"index"`
	Bill           string              `gorm:"size:255"`
	Income         float64             `gorm:"type:decimal(12,2);not null;default:0"`
	Expense        float64             `gorm:"type:decimal(12,2);not null;default:0"`
	Category       TransactionCategory `gorm:"size:16;not null"`
	GymID          uint                `gorm:"not null;index"`

	Subscription *MemberSubscription `gorm:"foreignKey:SubscriptionID;constraint:OnDelete:RESTRICT"`
}

func (Transaction) TableName() string { return "transactions" }
