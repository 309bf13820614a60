package dto

import (
	"gym_backend/internal/models"
	"gym_backend/internal/validator"
)

type CreateTrainerRequest struct {
	Name       string   `json:"name" form:"name" validate:"required"`
	MobileNo   string   `json:"mobileNo" form:"mobileNo" validate:"required"`
	Sex        string   `json:"sex" form:"sex" validate:"required,sex"`
	Degree     string   `json:"degree" form:"degree" validate:"required"`
	Salary     *float64 `json:"salary" form:"salary" validate:"required,gte=0"`
	ProfilePic *string  `json:"profilePic" form:"profilePic"`
	GymID      uint     `json:"gymId" form:"gymId" validate:"required"`
}

func (r *CreateTrainerRequest) ToModel() *models.Trainer {
	t := &models.Trainer{
		Name:       r.Name,
		MobileNo:   r.MobileNo,
		Sex:        r.Sex,
		Degree:     r.Degree,
		ProfilePic: optionalString(r.ProfilePic),
		GymID:      r.GymID,
	}
	if r.Salary != nil {
		t.Salary = *r.Salary
	}
	return t
}

type TrainerResponse struct {
	ID         uint    `json:"id"`
	Name       string  `json:"name"`
	MobileNo   string  `json:"mobileNo"`
	Sex        string  `json:"sex"`
	Degree     string  `json:"degree"`
	Salary     float64 `json:"salary"`
	ProfilePic *string `json:"profilePic"`
	GymID      uint    `json:"gymId"`
}

func NewTrainerResponse(t *models.Trainer) TrainerResponse {
	return TrainerResponse{
		ID:         t.ID,
		Name:       t.Name,
		MobileNo:   t.MobileNo,
		Sex:        t.Sex,
		Degree:     t.Degree,
		Salary:     t.Salary,
		ProfilePic: t.ProfilePic,
		GymID:      t.GymID,
	}
}

func NewTrainerListResponse(items []models.Trainer) []TrainerResponse {
	out := make([]TrainerResponse, 0, len(items))
	for i := range items {
		out = append(out, NewTrainerResponse(&items[i]))
	}
	return out
}

var TrainerUpdateFields = AllowList{
	"name":       {Column: "name", Kind: KindString, NotNull: true},
	"mobileNo":   {Column: "mobile_no", Kind: KindString, NotNull: true},
	"sex":        {Column: "sex", Kind: KindString, NotNull: true, Enum: validator.TagSex},
	"degree":     {Column: "degree", Kind: KindString, NotNull: true},
	"salary":     {Column: "salary", Kind: KindNumber, NotNull: true, NonNegative: true},
	"profilePic": {Column: "profile_pic", Kind: KindString},
	"gymId":      {Column: "gym_id", Kind: KindUint, NotNull: true, Positive: true},
}
