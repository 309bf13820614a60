package services_test

import (
	"testing"
	"time"

	"gym_backend/internal/dto"
	"gym_backend/internal/events"
	"gym_backend/internal/models"
	"gym_backend/internal/repositories"
	"gym_backend/internal/services"
	"gym_backend/pkg/apperrors"
	"gym_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testGym = uint(9001)

type suite struct {
	members       services.MemberService
	equipment     services.EquipmentService
	subscriptions services.SubscriptionService
	transactions  services.TransactionService
	memberships   services.MembershipService
	trainers      services.TrainerService
	reports       services.ReportService
	events        *events.Recorder
}

func newSuite(now services.Clock) *suite {
	memberRepo := repositories.NewMemberRepository()
	subRepo := repositories.NewSubscriptionRepository()
	membershipRepo := repositories.NewMembershipRepository()
	trainerRepo := repositories.NewTrainerRepository()
	txRepo := repositories.NewTransactionRepository()
	rec := &events.Recorder{}

	return &suite{
		members:       services.NewMemberService(memberRepo, subRepo, membershipRepo, trainerRepo, txRepo, rec, now),
		equipment:     services.NewEquipmentService(repositories.NewEquipmentRepository(), rec),
		subscriptions: services.NewSubscriptionService(subRepo, memberRepo, membershipRepo, trainerRepo, txRepo, rec, now),
		transactions:  services.NewTransactionService(txRepo, subRepo, rec),
		memberships:   services.NewMembershipService(membershipRepo, rec),
		trainers:      services.NewTrainerService(trainerRepo, rec),
		reports:       services.NewReportService(memberRepo, subRepo, now),
		events:        rec,
	}
}

func TestEquipment_RoundTrip(t *testing.T) {
	tx := helpers.WithTx(t, helpers.OpenTestDB(t))
	s := newSuite(nil)

	price := 1250.5
	category := "Cardio"
	created, err := s.equipment.Create(tx, &dto.CreateEquipmentRequest{
		Name:          "Treadmill",
		Category:      &category,
		PurchasePrice: &price,
		PurchaseDate:  "2023-05-20",
		GymID:         testGym,
	})
	require.NoError(t, err)

	got, err := s.equipment.Get(tx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Treadmill", got.Name)
	require.NotNil(t, got.PurchasePrice)
	assert.Equal(t, 1250.5, *got.PurchasePrice)
	require.NotNil(t, got.PurchaseDate)
	assert.Equal(t, "2023-05-20", *got.PurchaseDate)
	assert.Equal(t, string(models.EquipmentStatusAvailable), got.Status)
	assert.Equal(t, string(models.EquipmentConditionGood), got.Condition)

	require.Len(t, s.events.Events, 1)
	assert.Equal(t, events.EntityEquipment, s.events.Events[0].Entity)
}

func TestEquipment_UpdateAndMissing(t *testing.T) {
	tx := helpers.WithTx(t, helpers.OpenTestDB(t))
	s := newSuite(nil)

	created, err := s.equipment.Create(tx, &dto.CreateEquipmentRequest{Name: "Bench", GymID: testGym})
	require.NoError(t, err)

	patch, err := dto.EquipmentUpdateFields.BuildJSON([]byte(`{"location":"Hall B","description":""}`))
	require.NoError(t, err)
	updated, err := s.equipment.Update(tx, created.ID, patch)
	require.NoError(t, err)
	require.NotNil(t, updated.Location)
	assert.Equal(t, "Hall B", *updated.Location)
	assert.Nil(t, updated.Description)

	_, err = s.equipment.Update(tx, 987654321, patch)
	assert.True(t, apperrors.Is(err, apperrors.ErrEquipmentNotFound))
}

func TestMember_CreateWithMembershipComputesNextBillDate(t *testing.T) {
	tx := helpers.WithTx(t, helpers.OpenTestDB(t))
	s := newSuite(nil)

	plan := helpers.CreateMembership(t, tx, testGym, "Quarter", 3, 90)
	planID := plan.ID

	created, err := s.members.Create(tx, &dto.CreateMemberRequest{
		Name:         "Ann",
		MobileNo:     "555-01",
		Address:      "Main st. 2",
		JoinDate:     "2024-01-15",
		GymID:        testGym,
		MembershipID: &planID,
	})
	require.NoError(t, err)
	assert.Equal(t, "Quarter", created.Plan)
	require.NotNil(t, created.NextBillDate)
	assert.Equal(t, "2024-04-15", *created.NextBillDate)

	subs, err := s.subscriptions.List(tx, &dto.SubscriptionQuery{MemberID: &created.ID})
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, "2024-01-15", subs[0].StartDate)
	assert.Equal(t, "2024-04-15", subs[0].EndDate)
	assert.Equal(t, string(models.SubscriptionStatusActive), subs[0].Status)

	got, err := s.members.Get(tx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got.NextBillDate)
	assert.Equal(t, "2024-04-15", *got.NextBillDate)
	assert.Equal(t, "Quarter", got.Plan)
}

func TestMember_CreateWithUnknownMembershipRollsBack(t *testing.T) {
	tx := helpers.WithTx(t, helpers.OpenTestDB(t))
	s := newSuite(nil)

	missing := uint(987654321)
	_, err := s.members.Create(tx, &dto.CreateMemberRequest{
		Name:         "Ghost",
		MobileNo:     "555-02",
		Address:      "Nowhere",
		GymID:        testGym,
		MembershipID: &missing,
	})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrUnknownMembership))

	var count int64
	require.NoError(t, tx.Model(&models.Member{}).Where("name = ?", "Ghost").Count(&count).Error)
	assert.Zero(t, count)
}

func TestMember_WithoutPlanDefaults(t *testing.T) {
	tx := helpers.WithTx(t, helpers.OpenTestDB(t))
	s := newSuite(nil)

	created, err := s.members.Create(tx, &dto.CreateMemberRequest{
		Name: "Bob", MobileNo: "555-03", Address: "Main st. 3", GymID: testGym,
	})
	require.NoError(t, err)
	assert.Equal(t, models.DefaultPlanName, created.Plan)
	assert.Equal(t, string(models.MemberStatusActive), created.Status)
	assert.Nil(t, created.NextBillDate)
}

func TestMember_DeleteCascades(t *testing.T) {
	tx := helpers.WithTx(t, helpers.OpenTestDB(t))
	s := newSuite(nil)

	plan := helpers.CreateMembership(t, tx, testGym, "Month", 1, 30)
	member := helpers.CreateMember(t, tx, testGym, "Carl", helpers.Date(t, "2024-01-01"))
	sub := helpers.CreateSubscription(t, tx, member.ID, plan.ID,
		helpers.Date(t, "2024-01-01"), helpers.Date(t, "2024-02-01"), models.SubscriptionStatusActive)
	require.NoError(t, tx.Create(&models.Transaction{
		SubscriptionID: &sub.ID,
		Bill:           "January",
		Income:         30,
		Category:       models.TransactionCategoryIncome,
		GymID:          testGym,
	}).Error)

	require.NoError(t, s.members.Delete(tx, member.ID))

	var n int64
	require.NoError(t, tx.Model(&models.Transaction{}).Where("subscription_id = ?", sub.ID).Count(&n).Error)
	assert.Zero(t, n)
	require.NoError(t, tx.Model(&models.MemberSubscription{}).Where("member_id = ?", member.ID).Count(&n).Error)
	assert.Zero(t, n)
	require.NoError(t, tx.Model(&models.Member{}).Where("id = ?", member.ID).Count(&n).Error)
	assert.Zero(t, n)
}

func TestMember_DeleteMissing(t *testing.T) {
	tx := helpers.WithTx(t, helpers.OpenTestDB(t))
	s := newSuite(nil)

	err := s.members.Delete(tx, 987654321)
	assert.True(t, apperrors.Is(err, apperrors.ErrMemberNotFound))
}

func TestMember_ListFiltersByGym(t *testing.T) {
	tx := helpers.WithTx(t, helpers.OpenTestDB(t))
	s := newSuite(nil)

	helpers.CreateMember(t, tx, testGym, "Dana", helpers.Date(t, "2024-01-01"))
	helpers.CreateMember(t, tx, testGym+1, "Eve", helpers.Date(t, "2024-01-02"))

	gym := testGym
	scoped, err := s.members.List(tx, &gym)
	require.NoError(t, err)
	for _, m := range scoped {
		assert.Equal(t, testGym, m.GymID)
	}
	assert.True(t, containsName(scoped, "Dana"))
	assert.False(t, containsName(scoped, "Eve"))

	all, err := s.members.List(tx, nil)
	require.NoError(t, err)
	assert.True(t, containsName(all, "Dana"))
	assert.True(t, containsName(all, "Eve"))
}

func TestSubscription_ExpireOverdueAndReports(t *testing.T) {
	tx := helpers.WithTx(t, helpers.OpenTestDB(t))
	now := func() time.Time { return time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC) }
	s := newSuite(now)

	plan := helpers.CreateMembership(t, tx, testGym, "Month", 1, 30)
	soon := helpers.CreateMember(t, tx, testGym, "Soon", helpers.Date(t, "2024-02-12"))
	later := helpers.CreateMember(t, tx, testGym, "Later", helpers.Date(t, "2024-02-15"))
	gone := helpers.CreateMember(t, tx, testGym, "Gone", helpers.Date(t, "2024-01-01"))
	helpers.CreateSubscription(t, tx, soon.ID, plan.ID, helpers.Date(t, "2024-02-12"), helpers.Date(t, "2024-03-12"), models.SubscriptionStatusActive)
	helpers.CreateSubscription(t, tx, later.ID, plan.ID, helpers.Date(t, "2024-02-15"), helpers.Date(t, "2024-03-15"), models.SubscriptionStatusActive)
	helpers.CreateSubscription(t, tx, gone.ID, plan.ID, helpers.Date(t, "2024-01-01"), helpers.Date(t, "2024-02-01"), models.SubscriptionStatusActive)

	gym := testGym
	expiring, err := s.reports.Report(tx, dto.ReportExpiring3Days, &gym)
	require.NoError(t, err)
	assert.Equal(t, []string{"Soon"}, names(expiring.Members))

	nextWeek, err := s.reports.Report(tx, dto.ReportExpiring4To7, &gym)
	require.NoError(t, err)
	assert.Equal(t, []string{"Later"}, names(nextWeek.Members))

	n, err := s.subscriptions.ExpireOverdue(tx)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, n, int64(1))

	expired, err := s.reports.Report(tx, dto.ReportExpired, &gym)
	require.NoError(t, err)
	assert.Equal(t, []string{"Gone"}, names(expired.Members))
}

func TestTransaction_Summary(t *testing.T) {
	tx := helpers.WithTx(t, helpers.OpenTestDB(t))
	s := newSuite(nil)

	gym := testGym + 7
	_, err := s.transactions.Create(tx, &dto.CreateTransactionRequest{Bill: "Fees", Income: 300, GymID: gym})
	require.NoError(t, err)
	created, err := s.transactions.Create(tx, &dto.CreateTransactionRequest{Bill: "Repair", Expense: 120, GymID: gym})
	require.NoError(t, err)
	assert.Equal(t, string(models.TransactionCategoryExpense), created.Category)

	sum, err := s.transactions.Summary(tx, &dto.TransactionQuery{GymID: &gym})
	require.NoError(t, err)
	assert.Equal(t, 300.0, sum.IncomeTotal)
	assert.Equal(t, 120.0, sum.ExpenseTotal)
	assert.Equal(t, 180.0, sum.ProfitTotal)
	assert.Equal(t, int64(2), sum.Count)
}

func TestSubscription_GymMatchesMemberOrPlan(t *testing.T) {
	tx := helpers.WithTx(t, helpers.OpenTestDB(t))
	s := newSuite(nil)

	memberGym, planGym := testGym+20, testGym+21
	plan := helpers.CreateMembership(t, tx, planGym, "Visitor", 1, 40)
	member := helpers.CreateMember(t, tx, memberGym, "Traveller", helpers.Date(t, "2024-01-01"))
	sub := helpers.CreateSubscription(t, tx, member.ID, plan.ID,
		helpers.Date(t, "2024-01-01"), helpers.Date(t, "2024-02-01"), models.SubscriptionStatusActive)

	for _, gym := range []uint{memberGym, planGym} {
		gym := gym
		subs, err := s.subscriptions.List(tx, &dto.SubscriptionQuery{GymID: &gym})
		require.NoError(t, err)
		require.Len(t, subs, 1, "gym %d", gym)
		assert.Equal(t, sub.ID, subs[0].ID)
		assert.Equal(t, memberGym, subs[0].MemberGymID)
		assert.Equal(t, planGym, subs[0].MembershipGymID)
	}

	other := testGym + 22
	subs, err := s.subscriptions.List(tx, &dto.SubscriptionQuery{GymID: &other})
	require.NoError(t, err)
	assert.Empty(t, subs)
}

func TestSubscription_UpdateAllowListAndMissing(t *testing.T) {
	tx := helpers.WithTx(t, helpers.OpenTestDB(t))
	s := newSuite(nil)

	plan := helpers.CreateMembership(t, tx, testGym, "Month", 1, 30)
	member := helpers.CreateMember(t, tx, testGym, "Fay", helpers.Date(t, "2024-01-01"))
	sub := helpers.CreateSubscription(t, tx, member.ID, plan.ID,
		helpers.Date(t, "2024-01-01"), helpers.Date(t, "2024-02-01"), models.SubscriptionStatusActive)

	patch, err := dto.SubscriptionUpdateFields.BuildJSON([]byte(`{"status":"Cancelled","ptSchedule":"Mon 18:00","memberName":"X"}`))
	require.NoError(t, err)
	assert.NotContains(t, patch, "member_name")

	updated, err := s.subscriptions.Update(tx, sub.ID, patch)
	require.NoError(t, err)
	assert.Equal(t, string(models.SubscriptionStatusCancelled), updated.Status)
	require.NotNil(t, updated.PTSchedule)
	assert.Equal(t, "Mon 18:00", *updated.PTSchedule)
	assert.Equal(t, "Fay", updated.MemberName)

	_, err = dto.SubscriptionUpdateFields.BuildJSON([]byte(`{"memberName":"X"}`))
	assert.True(t, apperrors.Is(err, apperrors.ErrNoUpdatableFields))

	_, err = s.subscriptions.Update(tx, 987654321, patch)
	assert.True(t, apperrors.Is(err, apperrors.ErrSubscriptionNotFound))
}

func TestSubscription_CreateComputesEndDate(t *testing.T) {
	tx := helpers.WithTx(t, helpers.OpenTestDB(t))
	s := newSuite(nil)

	plan := helpers.CreateMembership(t, tx, testGym, "Half", 6, 150)
	member := helpers.CreateMember(t, tx, testGym, "Gus", helpers.Date(t, "2024-01-01"))

	created, err := s.subscriptions.Create(tx, &dto.CreateSubscriptionRequest{
		MemberID:     member.ID,
		MembershipID: plan.ID,
		StartDate:    "2024-02-10",
	})
	require.NoError(t, err)
	assert.Equal(t, "2024-02-10", created.StartDate)
	assert.Equal(t, "2024-08-10", created.EndDate)
	assert.Equal(t, string(models.SubscriptionStatusActive), created.Status)

	explicit, err := s.subscriptions.Create(tx, &dto.CreateSubscriptionRequest{
		MemberID:     member.ID,
		MembershipID: plan.ID,
		StartDate:    "2024-02-10",
		EndDate:      "2024-03-01",
	})
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01", explicit.EndDate)

	_, err = s.subscriptions.Create(tx, &dto.CreateSubscriptionRequest{
		MemberID:     member.ID,
		MembershipID: plan.ID,
		StartDate:    "2024-02-10",
		EndDate:      "2024-02-01",
	})
	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeValidationFailed, appErr.Code)
}

// Ошибка FK прерывает транзакцию postgres, поэтому удаление - последний запрос теста.
func TestMembership_DeleteReferencedConflicts(t *testing.T) {
	tx := helpers.WithTx(t, helpers.OpenTestDB(t))
	s := newSuite(nil)

	plan := helpers.CreateMembership(t, tx, testGym, "Year", 12, 300)
	member := helpers.CreateMember(t, tx, testGym, "Hal", helpers.Date(t, "2024-01-01"))
	helpers.CreateSubscription(t, tx, member.ID, plan.ID,
		helpers.Date(t, "2024-01-01"), helpers.Date(t, "2025-01-01"), models.SubscriptionStatusActive)

	err := s.memberships.Delete(tx, plan.ID)
	assertReferenced(t, err)
}

func TestTrainer_DeleteReferencedConflicts(t *testing.T) {
	tx := helpers.WithTx(t, helpers.OpenTestDB(t))
	s := newSuite(nil)

	plan := helpers.CreateMembership(t, tx, testGym, "Month", 1, 30)
	trainer := helpers.CreateTrainer(t, tx, testGym, "Ivy")
	member := helpers.CreateMember(t, tx, testGym, "Jon", helpers.Date(t, "2024-01-01"))
	trainerID := trainer.ID
	require.NoError(t, tx.Omit("Member", "Membership", "Trainer").Create(&models.MemberSubscription{
		MemberID:     member.ID,
		MembershipID: plan.ID,
		TrainerID:    &trainerID,
		StartDate:    models.NewDate(helpers.Date(t, "2024-01-01")),
		EndDate:      models.NewDate(helpers.Date(t, "2024-02-01")),
		Status:       models.SubscriptionStatusActive,
	}).Error)

	err := s.trainers.Delete(tx, trainer.ID)
	assertReferenced(t, err)
}

func TestMembershipAndTrainer_DeleteUnreferenced(t *testing.T) {
	tx := helpers.WithTx(t, helpers.OpenTestDB(t))
	s := newSuite(nil)

	plan := helpers.CreateMembership(t, tx, testGym, "Trial", 1, 0)
	trainer := helpers.CreateTrainer(t, tx, testGym, "Kim")

	require.NoError(t, s.memberships.Delete(tx, plan.ID))
	require.NoError(t, s.trainers.Delete(tx, trainer.ID))
	assert.True(t, apperrors.Is(s.trainers.Delete(tx, trainer.ID), apperrors.ErrTrainerNotFound))
}

func assertReferenced(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrReferencedRecord), "got %v", err)

	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, 409, appErr.HTTPCode)
	assert.Equal(t, apperrors.CodeReferencedRecord, appErr.Code)
}

func containsName(list []dto.MemberResponse, name string) bool {
	for _, m := range list {
		if m.Name == name {
			return true
		}
	}
	return false
}

func names(list []dto.MemberResponse) []string {
	out := make([]string, 0, len(list))
	for _, m := range list {
		out = append(out, m.Name)
	}
	return out
}
