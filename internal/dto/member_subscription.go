package dto

import (
	"gym_backend/internal/models"
	"gym_backend/internal/validator"
)

type CreateSubscriptionRequest struct {
	MemberID     uint    `json:"memberId" validate:"required"`
	MembershipID uint    `json:"membershipId" validate:"required"`
	TrainerID    *uint   `json:"trainerId"`
	PTSchedule   *string `json:"ptSchedule"`
	StartDate    string  `json:"startDate" validate:"required,date"`
	EndDate      string  `json:"endDate" validate:"omitempty,date"`
	Status       string  `json:"status" validate:"omitempty,subscription-status"`
}

// SubscriptionQuery - фильтры списка подписок
type SubscriptionQuery struct {
	GymID    *uint  `form:"gymId"`
	MemberID *uint  `form:"memberId"`
	Status   string `form:"status" validate:"omitempty,subscription-status"`
}

type SubscriptionResponse struct {
	ID              uint    `json:"id"`
	MemberID        uint    `json:"memberId"`
	MembershipID    uint    `json:"membershipId"`
	TrainerID       *uint   `json:"trainerId"`
	PTSchedule      *string `json:"ptSchedule"`
	StartDate       string  `json:"startDate"`
	EndDate         string  `json:"endDate"`
	Status          string  `json:"status"`
	MemberName      string  `json:"memberName"`
	MemberGymID     uint    `json:"memberGymId"`
	MembershipTitle string  `json:"membershipTitle"`
	MembershipPrice float64 `json:"membershipPrice"`
	MembershipGymID uint    `json:"membershipGymId"`
	TrainerName     *string `json:"trainerName"`
}

func NewSubscriptionResponse(d *models.SubscriptionDetail) SubscriptionResponse {
	return SubscriptionResponse{
		ID:              d.ID,
		MemberID:        d.MemberID,
		MembershipID:    d.MembershipID,
		TrainerID:       d.TrainerID,
		PTSchedule:      d.PTSchedule,
		StartDate:       models.FormatDate(d.StartDate),
		EndDate:         models.FormatDate(d.EndDate),
		Status:          string(d.Status),
		MemberName:      d.MemberName,
		MemberGymID:     d.MemberGymID,
		MembershipTitle: d.MembershipTitle,
		MembershipPrice: d.MembershipPrice,
		MembershipGymID: d.MembershipGymID,
		TrainerName:     d.TrainerName,
	}
}

func NewSubscriptionListResponse(items []models.SubscriptionDetail) []SubscriptionResponse {
	out := make([]SubscriptionResponse, 0, len(items))
	for i := range items {
		out = append(out, NewSubscriptionResponse(&items[i]))
	}
	return out
}

var SubscriptionUpdateFields = AllowList{
	"memberId":     {Column: "member_id", Kind: KindUint, NotNull: true, Positive: true},
	"membershipId": {Column: "membership_id", Kind: KindUint, NotNull: true, Positive: true},
	"trainerId":    {Column: "trainer_id", Kind: KindUint, Positive: true},
	"ptSchedule":   {Column: "pt_schedule", Kind: KindString},
	"startDate":    {Column: "start_date", Kind: KindDate, NotNull: true},
	"endDate":      {Column: "end_date", Kind: KindDate, NotNull: true},
	"status":       {Column: "status", Kind: KindString, NotNull: true, Enum: validator.TagSubscriptionStatus},
}
