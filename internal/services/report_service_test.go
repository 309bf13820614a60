package services

import (
	"testing"
	"time"

	"gym_backend/internal/dto"
	"gym_backend/internal/email"
	"gym_backend/internal/models"
	"gym_backend/internal/repositories"
	"gym_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type window struct {
	method   string
	from, to time.Time
}

// fakeMemberRepo записывает запрошенные окна отчетов
type fakeMemberRepo struct {
	repositories.MemberRepository
	calls   []window
	members []models.Member
	gyms    []uint
}

func (f *fakeMemberRepo) ListJoinedBetween(_ *gorm.DB, _ *uint, from, to time.Time) ([]models.Member, error) {
	f.calls = append(f.calls, window{"joined", from, to})
	return f.members, nil
}

func (f *fakeMemberRepo) ListPlanEndingBetween(_ *gorm.DB, _ *uint, from, to time.Time) ([]models.Member, error) {
	f.calls = append(f.calls, window{"ending", from, to})
	return f.members, nil
}

func (f *fakeMemberRepo) ListExpired(_ *gorm.DB, _ *uint, today time.Time) ([]models.Member, error) {
	f.calls = append(f.calls, window{"expired", today, today})
	return f.members, nil
}

func (f *fakeMemberRepo) ListByStatus(_ *gorm.DB, _ *uint, _ models.MemberStatus) ([]models.Member, error) {
	f.calls = append(f.calls, window{method: "status"})
	return f.members, nil
}

func (f *fakeMemberRepo) GymIDs(_ *gorm.DB) ([]uint, error) {
	return f.gyms, nil
}

type fakeSubRepo struct {
	repositories.SubscriptionRepository
	plans map[uint]*models.CurrentPlan
}

func (f *fakeSubRepo) CurrentPlans(_ *gorm.DB, _ []uint) (map[uint]*models.CurrentPlan, error) {
	if f.plans == nil {
		return map[uint]*models.CurrentPlan{}, nil
	}
	return f.plans, nil
}

func day(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

func fixedClock() time.Time {
	return time.Date(2024, 2, 10, 15, 30, 0, 0, time.UTC)
}

func TestReportService_Windows(t *testing.T) {
	tests := []struct {
		kind dto.ReportKind
		want window
	}{
		{dto.ReportMonthlyJoined, window{"joined", day("2024-02-01"), day("2024-03-01")}},
		{dto.ReportExpiring3Days, window{"ending", day("2024-02-10"), day("2024-02-13")}},
		{dto.ReportExpiring4To7, window{"ending", day("2024-02-14"), day("2024-02-17")}},
		{dto.ReportExpired, window{"expired", day("2024-02-10"), day("2024-02-10")}},
		{dto.ReportInactiveMembers, window{method: "status"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			members := &fakeMemberRepo{}
			svc := NewReportService(members, &fakeSubRepo{}, fixedClock)

			resp, err := svc.Report(nil, tt.kind, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, resp.Kind)
			assert.Equal(t, tt.kind.Title(), resp.Title)
			require.Len(t, members.calls, 1)
			assert.Equal(t, tt.want, members.calls[0])
		})
	}
}

func TestReportService_UnknownKind(t *testing.T) {
	svc := NewReportService(&fakeMemberRepo{}, &fakeSubRepo{}, fixedClock)

	_, err := svc.Report(nil, dto.ReportKind("weekly"), nil)
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidReportKind))
}

func TestReportService_AttachesPlans(t *testing.T) {
	members := &fakeMemberRepo{members: []models.Member{
		{BaseModel: models.BaseModel{ID: 1}, Name: "Ann", Status: models.MemberStatusActive},
		{BaseModel: models.BaseModel{ID: 2}, Name: "Bob", Status: models.MemberStatusActive},
	}}
	subs := &fakeSubRepo{plans: map[uint]*models.CurrentPlan{
		1: {MemberID: 1, Title: "Gold", EndDate: day("2024-02-12")},
	}}

	resp, err := NewReportService(members, subs, fixedClock).Report(nil, dto.ReportExpiring3Days, nil)
	require.NoError(t, err)
	require.Equal(t, 2, resp.Count)

	assert.Equal(t, "Gold", resp.Members[0].Plan)
	require.NotNil(t, resp.Members[0].NextBillDate)
	assert.Equal(t, "2024-02-12", *resp.Members[0].NextBillDate)
	assert.Equal(t, models.DefaultPlanName, resp.Members[1].Plan)
	assert.Nil(t, resp.Members[1].NextBillDate)
}

func TestReportService_Dashboard(t *testing.T) {
	members := &fakeMemberRepo{members: []models.Member{{BaseModel: models.BaseModel{ID: 1}}}}

	cards, err := NewReportService(members, &fakeSubRepo{}, fixedClock).Dashboard(nil, nil)
	require.NoError(t, err)
	require.Len(t, cards, len(dto.ReportKinds))
	for i, card := range cards {
		assert.Equal(t, dto.ReportKinds[i], card.Kind)
		assert.Equal(t, 1, card.Count)
	}
}

type capturedMail struct {
	to          []string
	subject     string
	template    string
	attachments []email.Attachment
}

type fakeProvider struct {
	sent []capturedMail
}

func (p *fakeProvider) Send(*email.Email) error { return nil }
func (p *fakeProvider) Validate() error         { return nil }
func (p *fakeProvider) SendTemplate(to []string, subject, name string, _ email.TemplateData, attachments ...email.Attachment) error {
	p.sent = append(p.sent, capturedMail{to, subject, name, attachments})
	return nil
}

func TestNotificationService_SendExpiringReports(t *testing.T) {
	members := &fakeMemberRepo{
		gyms:    []uint{1, 2},
		members: []models.Member{{BaseModel: models.BaseModel{ID: 7}, Name: "Ann"}},
	}
	reports := NewReportService(members, &fakeSubRepo{}, fixedClock)
	provider := &fakeProvider{}

	svc := NewNotificationService(reports, members, provider, []string{"desk@gym.test"}, fixedClock)
	sent, err := svc.SendExpiringReports(nil)
	require.NoError(t, err)

	assert.Equal(t, 2, sent)
	require.Len(t, provider.sent, 2)
	assert.Equal(t, email.TemplateExpiringReport, provider.sent[0].template)
	assert.Equal(t, []string{"desk@gym.test"}, provider.sent[0].to)
	require.Len(t, provider.sent[0].attachments, 1)
	assert.Equal(t, "expiring-1-2024-02-10.csv", provider.sent[0].attachments[0].Name)
	assert.Contains(t, string(provider.sent[0].attachments[0].Content), "7,Ann,,No Plan,")
}

func TestNotificationService_NoRecipients(t *testing.T) {
	provider := &fakeProvider{}
	members := &fakeMemberRepo{gyms: []uint{1}}
	svc := NewNotificationService(NewReportService(members, &fakeSubRepo{}, fixedClock), members, provider, nil, fixedClock)

	sent, err := svc.SendExpiringReports(nil)
	require.NoError(t, err)
	assert.Zero(t, sent)
	assert.Empty(t, provider.sent)
}
