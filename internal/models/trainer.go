package models

type Trainer struct {
	BaseModel
	Name       string  `gorm:"size:255;not null"`
	MobileNo   string  `gorm:"size:32;not null"`
	Sex        string  `gorm:"size:16;not null"`
	Degree     string  `gorm:"size:255;not null"`
	Salary     float64 `gorm:"type:decimal(12,2);not null;default:0"`
	ProfilePic *string `gorm:"size:512"`
	GymID      uint    `gorm:"not null;index"`
}

func (Trainer) TableName() string { return "trainers" }
