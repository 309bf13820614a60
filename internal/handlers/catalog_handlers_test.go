package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gym_backend/internal/dto"
	"gym_backend/internal/middleware"
	"gym_backend/internal/services"
	"gym_backend/internal/validator"
	"gym_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeTrainerService struct {
	services.TrainerService
	created *dto.CreateTrainerRequest
	patch   dto.Patch
	listGym *uint
}

func (f *fakeTrainerService) List(db *gorm.DB, gymID *uint) ([]dto.TrainerResponse, error) {
	f.listGym = gymID
	return []dto.TrainerResponse{}, nil
}

func (f *fakeTrainerService) Create(db *gorm.DB, req *dto.CreateTrainerRequest) (*dto.TrainerResponse, error) {
	f.created = req
	return &dto.TrainerResponse{ID: 1, Name: req.Name}, nil
}

func (f *fakeTrainerService) Update(db *gorm.DB, id uint, patch dto.Patch) (*dto.TrainerResponse, error) {
	f.patch = patch
	return &dto.TrainerResponse{ID: id}, nil
}

func (f *fakeTrainerService) Delete(db *gorm.DB, id uint) error {
	return apperrors.ErrReferencedRecord
}

type fakeMembershipService struct {
	services.MembershipService
	created *dto.CreateMembershipRequest
	missing bool
}

func (f *fakeMembershipService) Create(db *gorm.DB, req *dto.CreateMembershipRequest) (*dto.MembershipResponse, error) {
	f.created = req
	return &dto.MembershipResponse{ID: 3, Title: req.Title, DurationInMonths: req.DurationInMonths}, nil
}

func (f *fakeMembershipService) Delete(db *gorm.DB, id uint) error {
	if f.missing {
		return apperrors.ErrMembershipNotFound
	}
	return apperrors.ErrReferencedRecord
}

type fakeSubscriptionService struct {
	services.SubscriptionService
	query   *dto.SubscriptionQuery
	created *dto.CreateSubscriptionRequest
	patch   dto.Patch
}

func (f *fakeSubscriptionService) List(db *gorm.DB, query *dto.SubscriptionQuery) ([]dto.SubscriptionResponse, error) {
	f.query = query
	return []dto.SubscriptionResponse{}, nil
}

func (f *fakeSubscriptionService) Create(db *gorm.DB, req *dto.CreateSubscriptionRequest) (*dto.SubscriptionResponse, error) {
	f.created = req
	return &dto.SubscriptionResponse{ID: 5, MemberID: req.MemberID}, nil
}

func (f *fakeSubscriptionService) Update(db *gorm.DB, id uint, patch dto.Patch) (*dto.SubscriptionResponse, error) {
	f.patch = patch
	if id == 404 {
		return nil, apperrors.ErrSubscriptionNotFound
	}
	return &dto.SubscriptionResponse{ID: id}, nil
}

type fakeTransactionService struct {
	services.TransactionService
	query   *dto.TransactionQuery
	created *dto.CreateTransactionRequest
}

func (f *fakeTransactionService) Create(db *gorm.DB, req *dto.CreateTransactionRequest) (*dto.TransactionResponse, error) {
	f.created = req
	return &dto.TransactionResponse{ID: 8, Income: req.Income, GymID: req.GymID}, nil
}

func (f *fakeTransactionService) Summary(db *gorm.DB, query *dto.TransactionQuery) (*dto.TransactionSummary, error) {
	f.query = query
	return &dto.TransactionSummary{IncomeTotal: 300, ExpenseTotal: 120, ProfitTotal: 180, Count: 2}, nil
}

func TestGetDB_KeepsQueryTimeout(t *testing.T) {
	gin.SetMode(gin.TestMode)
	base := NewBaseHandler(validator.New())

	var hasDeadline bool
	r := gin.New()
	r.Use(middleware.DBMiddleware(lazyDB(t), time.Second))
	r.GET("/db", func(c *gin.Context) {
		_, hasDeadline = base.GetDB(c).Statement.Context.Deadline()
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/db", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, hasDeadline)
}

func TestTrainerHandler(t *testing.T) {
	svc := &fakeTrainerService{}
	r := newRouter(t, nil, func(g *gin.RouterGroup, base *BaseHandler) {
		NewTrainerHandler(base, svc, nil).RegisterRoutes(g)
	})

	w := doJSON(r, http.MethodGet, "/api/trainers?gymId=2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, svc.listGym)
	assert.Equal(t, uint(2), *svc.listGym)

	w = doJSON(r, http.MethodPost, "/api/trainers", map[string]interface{}{
		"name": "Ivy", "mobileNo": "+7701", "sex": "Robot", "degree": "MSc", "salary": 100, "gymId": 2,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeError(t, w)["message"], "sex")
	assert.Nil(t, svc.created)

	w = doJSON(r, http.MethodPost, "/api/trainers", map[string]interface{}{
		"name": "Ivy", "mobileNo": "+7701", "sex": "Female", "degree": "MSc", "salary": 100, "gymId": 2,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, svc.created)
	assert.Equal(t, "Ivy", svc.created.Name)

	w = doJSON(r, http.MethodPut, "/api/trainers/4", map[string]interface{}{"salary": 250, "gym": 9})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, dto.Patch{"salary": 250.0}, svc.patch)

	w = doJSON(r, http.MethodDelete, "/api/trainers/4", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, string(apperrors.CodeReferencedRecord), decodeError(t, w)["code"])
}

func TestMembershipHandler(t *testing.T) {
	svc := &fakeMembershipService{}
	r := newRouter(t, nil, func(g *gin.RouterGroup, base *BaseHandler) {
		NewMembershipHandler(base, svc).RegisterRoutes(g)
	})

	w := doJSON(r, http.MethodPost, "/api/memberships", map[string]interface{}{
		"title": "Gold", "price": 100, "durationInMonths": 0, "gymId": 1,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, svc.created)

	w = doJSON(r, http.MethodPost, "/api/memberships", map[string]interface{}{
		"title": "Gold", "price": 100, "durationInMonths": 3, "gymId": 1,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, svc.created)
	assert.Equal(t, 3, svc.created.DurationInMonths)

	w = doJSON(r, http.MethodDelete, "/api/memberships/3", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, string(apperrors.CodeReferencedRecord), decodeError(t, w)["code"])

	svc.missing = true
	w = doJSON(r, http.MethodDelete, "/api/memberships/3", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSubscriptionHandler(t *testing.T) {
	svc := &fakeSubscriptionService{}
	r := newRouter(t, nil, func(g *gin.RouterGroup, base *BaseHandler) {
		NewSubscriptionHandler(base, svc).RegisterRoutes(g)
	})

	w := doJSON(r, http.MethodGet, "/api/subscriptions?gymId=3&status=Active", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, svc.query)
	require.NotNil(t, svc.query.GymID)
	assert.Equal(t, uint(3), *svc.query.GymID)
	assert.Equal(t, "Active", svc.query.Status)

	w = doJSON(r, http.MethodGet, "/api/subscriptions?status=Paused", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodPost, "/api/subscriptions", map[string]interface{}{"memberId": 1, "membershipId": 2})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeError(t, w)["message"], "startDate")
	assert.Nil(t, svc.created)

	w = doJSON(r, http.MethodPost, "/api/subscriptions", map[string]interface{}{
		"memberId": 1, "membershipId": 2, "startDate": "2024-02-10",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, svc.created)
	assert.Empty(t, svc.created.EndDate)

	w = doJSON(r, http.MethodPatch, "/api/subscriptions/7", map[string]interface{}{"status": "Cancelled", "memberName": "X"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, dto.Patch{"status": "Cancelled"}, svc.patch)

	w = doJSON(r, http.MethodPatch, "/api/subscriptions/7", map[string]interface{}{"status": "Paused"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodPut, "/api/subscriptions/404", map[string]interface{}{"ptSchedule": "Tue"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, string(apperrors.CodeNotFound), decodeError(t, w)["code"])
}

func TestTransactionHandler(t *testing.T) {
	svc := &fakeTransactionService{}
	r := newRouter(t, nil, func(g *gin.RouterGroup, base *BaseHandler) {
		NewTransactionHandler(base, svc).RegisterRoutes(g)
	})

	w := doJSON(r, http.MethodPost, "/api/transactions", map[string]interface{}{"bill": "Fees", "income": -5, "gymId": 1})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, svc.created)

	w = doJSON(r, http.MethodPost, "/api/transactions", map[string]interface{}{"bill": "Fees", "income": 300, "gymId": 1})
	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, svc.created)
	assert.Equal(t, 300.0, svc.created.Income)

	w = doJSON(r, http.MethodGet, "/api/transactions/summary?gymId=1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"incomeTotal":300,"expenseTotal":120,"profitTotal":180,"count":2}`, w.Body.String())
	require.NotNil(t, svc.query.GymID)
	assert.Equal(t, uint(1), *svc.query.GymID)
}
