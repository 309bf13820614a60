package dto

import (
	"strings"

	"gym_backend/internal/models"
)

type CreateMembershipRequest struct {
	Title            string   `json:"title" form:"title" validate:"required"`
	Price            *float64 `json:"price" form:"price" validate:"required,gte=0"`
	DurationInMonths int      `json:"durationInMonths" form:"durationInMonths" validate:"required,gt=0"`
	PackageType      string   `json:"packageType" form:"packageType"`
	GymID            uint     `json:"gymId" form:"gymId" validate:"required"`
}

func (r *CreateMembershipRequest) ToModel() *models.Membership {
	m := &models.Membership{
		Title:            r.Title,
		DurationInMonths: r.DurationInMonths,
		PackageType:      strings.TrimSpace(r.PackageType),
		GymID:            r.GymID,
	}
	if r.Price != nil {
		m.Price = *r.Price
	}
	if m.PackageType == "" {
		m.PackageType = models.DefaultPackageType
	}
	return m
}

type MembershipResponse struct {
	ID               uint    `json:"id"`
	Title            string  `json:"title"`
	Price            float64 `json:"price"`
	DurationInMonths int     `json:"durationInMonths"`
	PackageType      string  `json:"packageType"`
	GymID            uint    `json:"gymId"`
}

func NewMembershipResponse(m *models.Membership) MembershipResponse {
	return MembershipResponse{
		ID:               m.ID,
		Title:            m.Title,
		Price:            m.Price,
		DurationInMonths: m.DurationInMonths,
		PackageType:      m.PackageType,
		GymID:            m.GymID,
	}
}

func NewMembershipListResponse(items []models.Membership) []MembershipResponse {
	out := make([]MembershipResponse, 0, len(items))
	for i := range items {
		out = append(out, NewMembershipResponse(&items[i]))
	}
	return out
}

var MembershipUpdateFields = AllowList{
	"title":            {Column: "title", Kind: KindString, NotNull: true},
	"price":            {Column: "price", Kind: KindNumber, NotNull: true, NonNegative: true},
	"durationInMonths": {Column: "duration_in_months", Kind: KindInt, NotNull: true, Positive: true},
	"packageType":      {Column: "package_type", Kind: KindString, NotNull: true},
	"gymId":            {Column: "gym_id", Kind: KindUint, NotNull: true, Positive: true},
}
