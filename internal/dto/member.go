package dto

import (
	"time"

	"gym_backend/internal/models"
	"gym_backend/internal/validator"
)

// CreateMemberRequest принимается как JSON или multipart (с файлом profilePic)
type CreateMemberRequest struct {
	Name         string  `json:"name" form:"name" validate:"required"`
	MobileNo     string  `json:"mobileNo" form:"mobileNo" validate:"required"`
	Address      string  `json:"address" form:"address" validate:"required"`
	ProfilePic   *string `json:"profilePic" form:"profilePic"`
	JoinDate     string  `json:"joinDate" form:"joinDate" validate:"omitempty,date"`
	Status       string  `json:"status" form:"status" validate:"omitempty,member-status"`
	GymID        uint    `json:"gymId" form:"gymId" validate:"required"`
	MembershipID *uint   `json:"membershipId" form:"membershipId"`
	TrainerID    *uint   `json:"trainerId" form:"trainerId"`
	PTSchedule   *string `json:"ptSchedule" form:"ptSchedule"`
}

// ToModel: joinDate по умолчанию - сегодня, статус - Active
func (r *CreateMemberRequest) ToModel(now time.Time) (*models.Member, error) {
	joinDate, err := parseDateOr(r.JoinDate, now)
	if err != nil {
		return nil, err
	}
	m := &models.Member{
		Name:       r.Name,
		MobileNo:   r.MobileNo,
		Address:    optionalString(&r.Address),
		ProfilePic: optionalString(r.ProfilePic),
		JoinDate:   models.NewDate(joinDate),
		Status:     models.MemberStatusActive,
		GymID:      r.GymID,
	}
	if r.Status != "" {
		m.Status = models.MemberStatus(r.Status)
	}
	return m, nil
}

// PlanID - membershipId, если указан (0 из форм считается отсутствием)
func (r *CreateMemberRequest) PlanID() (uint, bool) {
	if r.MembershipID == nil || *r.MembershipID == 0 {
		return 0, false
	}
	return *r.MembershipID, true
}

// CoachID - trainerId, если указан
func (r *CreateMemberRequest) CoachID() *uint {
	if r.TrainerID == nil || *r.TrainerID == 0 {
		return nil
	}
	return r.TrainerID
}

type MemberResponse struct {
	ID           uint    `json:"id"`
	Name         string  `json:"name"`
	MobileNo     string  `json:"mobileNo"`
	Address      *string `json:"address"`
	ProfilePic   *string `json:"profilePic"`
	JoinDate     string  `json:"joinDate"`
	CreatedAt    string  `json:"createdAt"`
	NextBillDate *string `json:"nextBillDate"`
	Status       string  `json:"status"`
	Plan         string  `json:"plan"`
	GymID        uint    `json:"gymId"`
}

// NewMemberResponse: без активной подписки plan = "No Plan", nextBillDate = null
func NewMemberResponse(m *models.Member, plan *models.CurrentPlan) MemberResponse {
	resp := MemberResponse{
		ID:         m.ID,
		Name:       m.Name,
		MobileNo:   m.MobileNo,
		Address:    m.Address,
		ProfilePic: m.ProfilePic,
		JoinDate:   models.FormatDate(m.JoinDate),
		CreatedAt:  models.FormatDate(m.JoinDate),
		Status:     string(m.Status),
		Plan:       models.DefaultPlanName,
		GymID:      m.GymID,
	}
	if resp.Status == "" {
		resp.Status = string(models.MemberStatusActive)
	}
	if plan != nil {
		if plan.Title != "" {
			resp.Plan = plan.Title
		}
		next := plan.EndDate.Format(models.DateLayout)
		resp.NextBillDate = &next
	}
	return resp
}

func NewMemberListResponse(members []models.Member, plans map[uint]*models.CurrentPlan) []MemberResponse {
	out := make([]MemberResponse, 0, len(members))
	for i := range members {
		out = append(out, NewMemberResponse(&members[i], plans[members[i].ID]))
	}
	return out
}

// MemberUpdateFields - обновляемые поля участника
var MemberUpdateFields = AllowList{
	"name":       {Column: "name", Kind: KindString, NotNull: true},
	"mobileNo":   {Column: "mobile_no", Kind: KindString, NotNull: true},
	"address":    {Column: "address", Kind: KindString},
	"profilePic": {Column: "profile_pic", Kind: KindString},
	"joinDate":   {Column: "join_date", Kind: KindDate, NotNull: true},
	"status":     {Column: "status", Kind: KindString, NotNull: true, Enum: validator.TagMemberStatus},
	"gymId":      {Column: "gym_id", Kind: KindUint, NotNull: true, Positive: true},
}
