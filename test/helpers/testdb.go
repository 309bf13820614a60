package helpers

import (
	"os"
	"sync"
	"testing"
	"time"

	"gym_backend/internal/database"
	"gym_backend/internal/models"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var (
	sharedDB   *gorm.DB
	sharedErr  error
	sharedOnce sync.Once
)

// OpenTestDB открывает общую тестовую БД один раз на пакет.
// Без TEST_DATABASE_URL тест пропускается.
// TEST_DATABASE_DRIVER: postgres (по умолчанию) или mysql (DSN с parseTime=true).
func OpenTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL is not set")
	}

	sharedOnce.Do(func() {
		dialector, err := database.Dialector(os.Getenv("TEST_DATABASE_DRIVER"), dsn)
		if err != nil {
			sharedErr = err
			return
		}
		sharedDB, sharedErr = gorm.Open(dialector, &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		})
		if sharedErr != nil {
			return
		}
		sharedErr = database.AutoMigrate(sharedDB)
	})
	if sharedErr != nil {
		t.Fatalf("Не удалось подготовить тестовую БД: %v", sharedErr)
	}
	return sharedDB
}

// WithTx - транзакция, которая откатывается по окончании теста
func WithTx(t *testing.T, db *gorm.DB) *gorm.DB {
	t.Helper()

	tx := db.Begin()
	if tx.Error != nil {
		t.Fatalf("Не удалось начать транзакцию: %v", tx.Error)
	}
	t.Cleanup(func() { tx.Rollback() })
	return tx
}

// CreateMembership создает план в транзакции
func CreateMembership(t *testing.T, tx *gorm.DB, gymID uint, title string, months int, price float64) *models.Membership {
	t.Helper()

	m := &models.Membership{
		Title:            title,
		Price:            price,
		DurationInMonths: months,
		PackageType:      models.DefaultPackageType,
		GymID:            gymID,
	}
	if err := tx.Create(m).Error; err != nil {
		t.Fatalf("Не удалось создать план %s: %v", title, err)
	}
	return m
}

// CreateMember создает участника без подписок
func CreateMember(t *testing.T, tx *gorm.DB, gymID uint, name string, joinDate time.Time) *models.Member {
	t.Helper()

	address := "Main st. 1"
	m := &models.Member{
		Name:     name,
		MobileNo: "+70000000000",
		Address:  &address,
		JoinDate: models.NewDate(joinDate),
		Status:   models.MemberStatusActive,
		GymID:    gymID,
	}
	if err := tx.Create(m).Error; err != nil {
		t.Fatalf("Не удалось создать участника %s: %v", name, err)
	}
	return m
}

// CreateTrainer создает тренера
func CreateTrainer(t *testing.T, tx *gorm.DB, gymID uint, name string) *models.Trainer {
	t.Helper()

	tr := &models.Trainer{
		Name:     name,
		MobileNo: "+70000000009",
		Sex:      "Female",
		Degree:   "Coach",
		Salary:   500,
		GymID:    gymID,
	}
	if err := tx.Create(tr).Error; err != nil {
		t.Fatalf("Не удалось создать тренера %s: %v", name, err)
	}
	return tr
}

// CreateSubscription создает подписку участника на план
func CreateSubscription(t *testing.T, tx *gorm.DB, memberID, membershipID uint, start, end time.Time, status models.SubscriptionStatus) *models.MemberSubscription {
	t.Helper()

	s := &models.MemberSubscription{
		MemberID:     memberID,
		MembershipID: membershipID,
		StartDate:    models.NewDate(start),
		EndDate:      models.NewDate(end),
		Status:       status,
	}
	if err := tx.Omit("Member", "Membership", "Trainer").Create(s).Error; err != nil {
		t.Fatalf("Не удалось создать подписку: %v", err)
	}
	return s
}

// Date разбирает YYYY-MM-DD (ошибка - провал теста)
func Date(t *testing.T, s string) time.Time {
	t.Helper()

	d, err := models.ParseDate(s)
	if err != nil {
		t.Fatalf("bad date %q: %v", s, err)
	}
	return d
}
