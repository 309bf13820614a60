package web

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"gym_backend/internal/auth"
	"gym_backend/internal/dto"
	"gym_backend/internal/handlers"
	"gym_backend/internal/middleware"
	"gym_backend/internal/services"
	"gym_backend/internal/validator"
	"gym_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type fakeMembers struct {
	services.MemberService
	items   []dto.MemberResponse
	byID    map[uint]dto.MemberResponse
	err     error
	gymID   *uint
	patch   dto.Patch
	deleted []uint
}

func (f *fakeMembers) List(db *gorm.DB, gymID *uint) ([]dto.MemberResponse, error) {
	f.gymID = gymID
	return f.items, f.err
}

func (f *fakeMembers) Get(db *gorm.DB, id uint) (*dto.MemberResponse, error) {
	m, ok := f.byID[id]
	if !ok {
		return nil, apperrors.ErrMemberNotFound
	}
	return &m, nil
}

func (f *fakeMembers) Update(db *gorm.DB, id uint, patch dto.Patch) (*dto.MemberResponse, error) {
	f.patch = patch
	return f.Get(db, id)
}

func (f *fakeMembers) Delete(db *gorm.DB, id uint) error {
	f.deleted = append(f.deleted, id)
	return nil
}

type fakePlans struct {
	services.MembershipService
	created *dto.CreateMembershipRequest
	deleted []uint
}

func (f *fakePlans) List(db *gorm.DB, gymID *uint) ([]dto.MembershipResponse, error) {
	return []dto.MembershipResponse{{ID: 1, Title: "Gold", DurationInMonths: 3, PackageType: "Basic", GymID: 7}}, nil
}

func (f *fakePlans) Get(db *gorm.DB, id uint) (*dto.MembershipResponse, error) {
	return &dto.MembershipResponse{ID: id, Title: "Silver", GymID: 8}, nil
}

func (f *fakePlans) Create(db *gorm.DB, req *dto.CreateMembershipRequest) (*dto.MembershipResponse, error) {
	f.created = req
	return &dto.MembershipResponse{ID: 2, Title: req.Title, GymID: req.GymID}, nil
}

func (f *fakePlans) Delete(db *gorm.DB, id uint) error {
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeTrainers struct {
	services.TrainerService
	deleted []uint
}

func (f *fakeTrainers) List(db *gorm.DB, gymID *uint) ([]dto.TrainerResponse, error) {
	return nil, nil
}

func (f *fakeTrainers) Get(db *gorm.DB, id uint) (*dto.TrainerResponse, error) {
	return &dto.TrainerResponse{ID: id, Name: "Rex", GymID: 8}, nil
}

func (f *fakeTrainers) Delete(db *gorm.DB, id uint) error {
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeEquipment struct {
	services.EquipmentService
	byID    map[uint]dto.EquipmentResponse
	patch   dto.Patch
	deleted []uint
}

func (f *fakeEquipment) List(db *gorm.DB, gymID *uint) ([]dto.EquipmentResponse, error) {
	return nil, nil
}

func (f *fakeEquipment) Get(db *gorm.DB, id uint) (*dto.EquipmentResponse, error) {
	e, ok := f.byID[id]
	if !ok {
		return nil, apperrors.ErrEquipmentNotFound
	}
	return &e, nil
}

func (f *fakeEquipment) Update(db *gorm.DB, id uint, patch dto.Patch) (*dto.EquipmentResponse, error) {
	f.patch = patch
	return f.Get(db, id)
}

func (f *fakeEquipment) Delete(db *gorm.DB, id uint) error {
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeTransactions struct {
	services.TransactionService
	deleted []uint
}

func (f *fakeTransactions) List(db *gorm.DB, query *dto.TransactionQuery) ([]dto.TransactionResponse, error) {
	return nil, nil
}

func (f *fakeTransactions) Summary(db *gorm.DB, query *dto.TransactionQuery) (*dto.TransactionSummary, error) {
	return &dto.TransactionSummary{}, nil
}

func (f *fakeTransactions) Get(db *gorm.DB, id uint) (*dto.TransactionResponse, error) {
	return &dto.TransactionResponse{ID: id, Bill: "Rent", GymID: 8}, nil
}

func (f *fakeTransactions) Delete(db *gorm.DB, id uint) error {
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeSubscriptions struct{ services.SubscriptionService }

func (fakeSubscriptions) List(db *gorm.DB, query *dto.SubscriptionQuery) ([]dto.SubscriptionResponse, error) {
	return nil, nil
}

type fakeReports struct{ services.ReportService }

func (fakeReports) Dashboard(db *gorm.DB, gymID *uint) ([]dto.ReportCard, error) {
	return []dto.ReportCard{{Kind: dto.ReportExpired, Title: "Expired", Count: 4}}, nil
}

type pagesEnv struct {
	router       *gin.Engine
	members      *fakeMembers
	plans        *fakePlans
	trainers     *fakeTrainers
	equipment    *fakeEquipment
	transactions *fakeTransactions
	cookie       *http.Cookie
}

func newPagesEnv(t *testing.T) *pagesEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(postgres.New(postgres.Config{DSN: "host=127.0.0.1 user=test dbname=test"}), &gorm.Config{
		DisableAutomaticPing: true,
	})
	require.NoError(t, err)

	tokens := auth.NewTokenManager("jwt-secret", time.Hour)
	store := NewSessionStore("cookie-secret", false, time.Hour, tokens)
	env := &pagesEnv{
		members:      &fakeMembers{byID: map[uint]dto.MemberResponse{}},
		plans:        &fakePlans{},
		trainers:     &fakeTrainers{},
		equipment:    &fakeEquipment{byID: map[uint]dto.EquipmentResponse{}},
		transactions: &fakeTransactions{},
	}
	container := &services.ServiceContainer{
		MemberService:       env.members,
		MembershipService:   env.plans,
		TrainerService:      env.trainers,
		EquipmentService:    env.equipment,
		TransactionService:  env.transactions,
		SubscriptionService: fakeSubscriptions{},
		ReportService:       fakeReports{},
	}

	v := validator.New()
	pages, err := NewPages(handlers.NewBaseHandler(v), container, store, v)
	require.NoError(t, err)

	r := gin.New()
	r.Use(middleware.DBMiddleware(db, 0))
	pages.RegisterRoutes(r)

	token, err := tokens.Generate(1, auth.RoleAdmin, 7, "Admin")
	require.NoError(t, err)

	env.router = r
	env.cookie = savedCookie(t, store, Session{Token: token, GymID: 7})
	return env
}

func (e *pagesEnv) do(method, path string, withSession bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if withSession {
		req.AddCookie(e.cookie)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *pagesEnv) postForm(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(e.cookie)
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func TestPages_RedirectWithoutSession(t *testing.T) {
	env := newPagesEnv(t)

	w := env.do(http.MethodGet, "/ui/members", false)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/ui/login", w.Header().Get("Location"))

	w = env.do(http.MethodGet, "/ui/login", false)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `name="password"`)
}

func TestPages_MembersFetchError(t *testing.T) {
	env := newPagesEnv(t)
	env.members.err = errors.New("connection refused")

	w := env.do(http.MethodGet, "/ui/members", true)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `class="banner"`)
	assert.Contains(t, body, "Нет участников")
	assert.NotContains(t, body, "connection refused")
}

func TestPages_MembersPagedAndSearched(t *testing.T) {
	env := newPagesEnv(t)
	for i := 1; i <= 12; i++ {
		env.members.items = append(env.members.items, dto.MemberResponse{
			ID: uint(i), Name: fmt.Sprintf("Member %02d", i), MobileNo: "555", Plan: "No Plan", Status: "Active",
		})
	}

	w := env.do(http.MethodGet, "/ui/members", true)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Member 09")
	assert.NotContains(t, body, "Member 10")
	require.NotNil(t, env.members.gymID)
	assert.Equal(t, uint(7), *env.members.gymID)

	w = env.do(http.MethodGet, "/ui/members?page=2", true)
	assert.Contains(t, w.Body.String(), "Member 12")
	assert.NotContains(t, w.Body.String(), "Member 01")

	w = env.do(http.MethodGet, "/ui/members?page=2&q=member%2001", true)
	assert.Contains(t, w.Body.String(), "Member 01")
	assert.Equal(t, 1, strings.Count(w.Body.String(), `href="/ui/members/`))
}

func TestPages_DeleteRefetchesFirstPage(t *testing.T) {
	env := newPagesEnv(t)
	env.members.byID[3] = dto.MemberResponse{ID: 3, Name: "Ann", GymID: 7}

	w := env.do(http.MethodPost, "/ui/members/3/delete", true)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/ui/members?page=1", w.Header().Get("Location"))
	assert.Equal(t, []uint{3}, env.members.deleted)
}

func TestPages_DashboardAndUnknownReport(t *testing.T) {
	env := newPagesEnv(t)

	w := env.do(http.MethodGet, "/ui/", true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `href="/ui/reports/expired"`)

	w = env.do(http.MethodGet, "/ui/reports/unknown", true)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `class="banner"`)
}

func TestPages_MemberEditGoesThroughAllowList(t *testing.T) {
	env := newPagesEnv(t)
	env.members.byID[3] = dto.MemberResponse{ID: 3, Name: "Ann", MobileNo: "555", Status: "Active", GymID: 7}

	w := env.do(http.MethodGet, "/ui/members/3", true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `action="/ui/members/3"`)

	w = env.postForm("/ui/members/3", url.Values{
		"name":       {"Anna"},
		"status":     {"Inactive"},
		"address":    {""},
		"gymId":      {"9"},
		"profilePic": {""},
		"plan":       {"Gold"},
	})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/ui/members/3", w.Header().Get("Location"))
	assert.Equal(t, dto.Patch{"name": "Anna", "status": "Inactive", "address": nil}, env.members.patch)
}

func TestPages_MemberEditInvalidShowsForm(t *testing.T) {
	env := newPagesEnv(t)
	env.members.byID[3] = dto.MemberResponse{ID: 3, Name: "Ann", Status: "Active", GymID: 7}

	w := env.postForm("/ui/members/3", url.Values{"status": {"Frozen"}})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Invalid update payload")
	assert.Contains(t, body, `<details class="card" open>`)
	assert.Nil(t, env.members.patch)

	w = env.postForm("/ui/members/3", url.Values{"gymId": {"9"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), apperrors.ErrNoUpdatableFields.Message)
}

func TestPages_EquipmentEdit(t *testing.T) {
	env := newPagesEnv(t)
	env.equipment.byID[2] = dto.EquipmentResponse{ID: 2, Name: "Bike", Status: "Available", Condition: "Good", GymID: 7}

	w := env.postForm("/ui/equipment/2", url.Values{"condition": {"Fair"}, "maintenanceCost": {"12.5"}, "gymId": {"9"}})

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/ui/equipment/2", w.Header().Get("Location"))
	assert.Equal(t, dto.Patch{"condition": "Fair", "maintenance_cost": 12.5}, env.equipment.patch)
}

func TestPages_OtherGymRecordsAreNotFound(t *testing.T) {
	env := newPagesEnv(t)
	env.members.byID[4] = dto.MemberResponse{ID: 4, Name: "Stranger", GymID: 8}
	env.equipment.byID[5] = dto.EquipmentResponse{ID: 5, Name: "Rower", GymID: 8}

	w := env.do(http.MethodGet, "/ui/members/4", true)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NotContains(t, w.Body.String(), "Stranger")

	w = env.postForm("/ui/members/4", url.Values{"name": {"Mine"}})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Nil(t, env.members.patch)

	w = env.do(http.MethodPost, "/ui/members/4/delete", true)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, env.members.deleted)

	w = env.do(http.MethodGet, "/ui/equipment/5", true)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(http.MethodPost, "/ui/equipment/5/delete", true)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, env.equipment.deleted)

	w = env.do(http.MethodPost, "/ui/trainers/6/delete", true)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, env.trainers.deleted)

	w = env.do(http.MethodPost, "/ui/finance/7/delete", true)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, env.transactions.deleted)

	w = env.do(http.MethodPost, "/ui/memberships/9/delete", true)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, env.plans.deleted)
}

func TestPages_PlanModal(t *testing.T) {
	env := newPagesEnv(t)

	w := env.do(http.MethodGet, "/ui/members", true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `<dialog id="plan">`)
	assert.Contains(t, w.Body.String(), `value="/ui/members"`)

	w = env.do(http.MethodGet, "/ui/trainers", true)
	assert.Contains(t, w.Body.String(), `value="/ui/trainers"`)

	w = env.postForm("/ui/memberships", url.Values{
		"title": {"Gold"}, "price": {"100"}, "durationInMonths": {"3"}, "gymId": {"9"}, "next": {"/ui/trainers"},
	})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/ui/trainers?page=1", w.Header().Get("Location"))
	require.NotNil(t, env.plans.created)
	assert.Equal(t, uint(7), env.plans.created.GymID)
	assert.Equal(t, 3, env.plans.created.DurationInMonths)

	w = env.postForm("/ui/memberships", url.Values{
		"title": {"Gold"}, "price": {"100"}, "durationInMonths": {"3"}, "next": {"https://example.com"},
	})
	assert.Equal(t, "/ui/memberships?page=1", w.Header().Get("Location"))

	env.plans.created = nil
	w = env.postForm("/ui/memberships", url.Values{"title": {"Gold"}, "price": {"100"}, "durationInMonths": {"0"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `class="banner"`)
	assert.Nil(t, env.plans.created)

	w = env.do(http.MethodGet, "/ui/memberships", true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Gold")
	assert.Contains(t, w.Body.String(), `action="/ui/memberships/1/delete"`)
}
