package models

// User - сотрудник зала с доступом к API
type User struct {
	BaseModel
	Email        string   `gorm:"size:255;not null;uniqueIndex"`
	PasswordHash string   `gorm:"size:255;not null"`
	Name         string   `gorm:"size:255;not null"`
	Role         UserRole `gorm:"size:16;not null;default:staff"`
	GymID        uint     `gorm:"not null;index"`
}

func (User) TableName() string { return "users" }
