package dto

import (
	"testing"
	"time"

	"gym_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateEquipmentRequest_Defaults(t *testing.T) {
	price := 1200.0
	req := CreateEquipmentRequest{Name: "Bench", GymID: 1, PurchasePrice: &price, PurchaseDate: "2024-01-10"}

	e, err := req.ToModel()
	require.NoError(t, err)
	assert.Equal(t, models.EquipmentStatusAvailable, e.Status)
	assert.Equal(t, models.EquipmentConditionGood, e.Condition)
	assert.Zero(t, e.MaintenanceCost)
	assert.Zero(t, e.MonthlyMaintenanceCost)

	resp := NewEquipmentResponse(e)
	require.NotNil(t, resp.PurchasePrice)
	assert.Equal(t, 1200.0, *resp.PurchasePrice)
	require.NotNil(t, resp.PurchaseDate)
	assert.Equal(t, "2024-01-10", *resp.PurchaseDate)
	assert.Nil(t, resp.MaintenanceDate)
}

func TestNewMemberResponse_DefaultPlan(t *testing.T) {
	m := &models.Member{Name: "A", JoinDate: models.NewDate(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC))}
	m.ID = 3

	resp := NewMemberResponse(m, nil)
	assert.Equal(t, models.DefaultPlanName, resp.Plan)
	assert.Equal(t, "Active", resp.Status)
	assert.Nil(t, resp.NextBillDate)
	assert.Equal(t, "2024-01-15", resp.CreatedAt)

	resp = NewMemberResponse(m, &models.CurrentPlan{Title: "Gold", EndDate: time.Date(2024, 4, 15, 0, 0, 0, 0, time.UTC)})
	assert.Equal(t, "Gold", resp.Plan)
	require.NotNil(t, resp.NextBillDate)
	assert.Equal(t, "2024-04-15", *resp.NextBillDate)
}

func TestCreateMemberRequest_ToModel(t *testing.T) {
	now := time.Date(2024, 5, 20, 15, 4, 5, 0, time.UTC)
	zero := uint(0)
	req := CreateMemberRequest{Name: "A", MobileNo: "1", Address: " ", GymID: 1, MembershipID: &zero}

	m, err := req.ToModel(now)
	require.NoError(t, err)
	assert.Equal(t, "2024-05-20", models.FormatDate(m.JoinDate))
	assert.Nil(t, m.Address)
	assert.Equal(t, models.MemberStatusActive, m.Status)

	_, ok := req.PlanID()
	assert.False(t, ok)
}

func TestCreateTransactionRequest_DefaultCategory(t *testing.T) {
	tx := (&CreateTransactionRequest{Income: 100, GymID: 1}).ToModel()
	assert.Equal(t, models.TransactionCategoryIncome, tx.Category)

	tx = (&CreateTransactionRequest{Expense: 40, GymID: 1}).ToModel()
	assert.Equal(t, models.TransactionCategoryExpense, tx.Category)

	tx = (&CreateTransactionRequest{Income: 10, Category: "Expense", GymID: 1}).ToModel()
	assert.Equal(t, models.TransactionCategoryExpense, tx.Category)
}

func TestCreateMembershipRequest_DefaultPackage(t *testing.T) {
	price := 30.0
	m := (&CreateMembershipRequest{Title: "Monthly", Price: &price, DurationInMonths: 1, GymID: 1}).ToModel()
	assert.Equal(t, "Normal", m.PackageType)
}

func TestReportKind(t *testing.T) {
	assert.True(t, ReportKind("expired").Valid())
	assert.False(t, ReportKind("vip").Valid())
}
