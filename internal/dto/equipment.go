package dto

import (
	"gym_backend/internal/models"
	"gym_backend/internal/validator"
)

type CreateEquipmentRequest struct {
	Name                   string   `json:"name" form:"name" validate:"required"`
	Category               *string  `json:"category" form:"category"`
	Location               *string  `json:"location" form:"location"`
	Status                 string   `json:"status" form:"status" validate:"omitempty,equipment-status"`
	Condition              string   `json:"condition" form:"condition" validate:"omitempty,equipment-condition"`
	Image                  *string  `json:"image" form:"image"`
	Description            *string  `json:"description" form:"description"`
	PurchasePrice          *float64 `json:"purchasePrice" form:"purchasePrice" validate:"omitempty,gte=0"`
	PurchaseDate           string   `json:"purchaseDate" form:"purchaseDate" validate:"omitempty,date"`
	MaintenanceDate        string   `json:"maintenanceDate" form:"maintenanceDate" validate:"omitempty,date"`
	MaintenanceCost        *float64 `json:"maintenanceCost" form:"maintenanceCost" validate:"omitempty,gte=0"`
	MonthlyMaintenanceCost *float64 `json:"monthlyMaintenanceCost" form:"monthlyMaintenanceCost" validate:"omitempty,gte=0"`
	GymID                  uint     `json:"gymId" form:"gymId" validate:"required"`
}

// ToModel применяет значения по умолчанию: Available / Good / стоимость 0
func (r *CreateEquipmentRequest) ToModel() (*models.Equipment, error) {
	purchaseDate, err := parseOptionalDate(r.PurchaseDate)
	if err != nil {
		return nil, err
	}
	maintenanceDate, err := parseOptionalDate(r.MaintenanceDate)
	if err != nil {
		return nil, err
	}

	e := &models.Equipment{
		Name:            r.Name,
		Category:        optionalString(r.Category),
		Location:        optionalString(r.Location),
		Status:          models.EquipmentStatusAvailable,
		Condition:       models.EquipmentConditionGood,
		Image:           optionalString(r.Image),
		Description:     optionalString(r.Description),
		PurchasePrice:   r.PurchasePrice,
		PurchaseDate:    purchaseDate,
		MaintenanceDate: maintenanceDate,
		GymID:           r.GymID,
	}
	if r.Status != "" {
		e.Status = models.EquipmentStatus(r.Status)
	}
	if r.Condition != "" {
		e.Condition = models.EquipmentCondition(r.Condition)
	}
	if r.MaintenanceCost != nil {
		e.MaintenanceCost = *r.MaintenanceCost
	}
	if r.MonthlyMaintenanceCost != nil {
		e.MonthlyMaintenanceCost = *r.MonthlyMaintenanceCost
	}
	return e, nil
}

type EquipmentResponse struct {
	ID                     uint     `json:"id"`
	Name                   string   `json:"name"`
	Category               *string  `json:"category"`
	Location               *string  `json:"location"`
	Status                 string   `json:"status"`
	Condition              string   `json:"condition"`
	Image                  *string  `json:"image"`
	Description            *string  `json:"description"`
	PurchasePrice          *float64 `json:"purchasePrice"`
	PurchaseDate           *string  `json:"purchaseDate"`
	MaintenanceDate        *string  `json:"maintenanceDate"`
	MaintenanceCost        float64  `json:"maintenanceCost"`
	MonthlyMaintenanceCost float64  `json:"monthlyMaintenanceCost"`
	GymID                  uint     `json:"gymId"`
}

func NewEquipmentResponse(e *models.Equipment) EquipmentResponse {
	return EquipmentResponse{
		ID:                     e.ID,
		Name:                   e.Name,
		Category:               e.Category,
		Location:               e.Location,
		Status:                 string(e.Status),
		Condition:              string(e.Condition),
		Image:                  e.Image,
		Description:            e.Description,
		PurchasePrice:          e.PurchasePrice,
		PurchaseDate:           models.FormatDatePtr(e.PurchaseDate),
		MaintenanceDate:        models.FormatDatePtr(e.MaintenanceDate),
		MaintenanceCost:        e.MaintenanceCost,
		MonthlyMaintenanceCost: e.MonthlyMaintenanceCost,
		GymID:                  e.GymID,
	}
}

func NewEquipmentListResponse(items []models.Equipment) []EquipmentResponse {
	out := make([]EquipmentResponse, 0, len(items))
	for i := range items {
		out = append(out, NewEquipmentResponse(&items[i]))
	}
	return out
}

// EquipmentUpdateFields - обновляемые поля оборудования
var EquipmentUpdateFields = AllowList{
	"name":                   {Column: "name", Kind: KindString, NotNull: true},
	"category":               {Column: "category", Kind: KindString},
	"location":               {Column: "location", Kind: KindString},
	"status":                 {Column: "status", Kind: KindString, NotNull: true, Enum: validator.TagEquipmentStatus},
	"condition":              {Column: "condition", Kind: KindString, NotNull: true, Enum: validator.TagEquipmentCondition},
	"image":                  {Column: "image", Kind: KindString},
	"description":            {Column: "description", Kind: KindString},
	"purchasePrice":          {Column: "purchase_price", Kind: KindNumber, NonNegative: true},
	"purchaseDate":           {Column: "purchase_date", Kind: KindDate},
	"maintenanceDate":        {Column: "maintenance_date", Kind: KindDate},
	"maintenanceCost":        {Column: "maintenance_cost", Kind: KindNumber, NotNull: true, NonNegative: true},
	"monthlyMaintenanceCost": {Column: "monthly_maintenance_cost", Kind: KindNumber, NotNull: true, NonNegative: true},
	"gymId":                  {Column: "gym_id", Kind: KindUint, NotNull: true, Positive: true},
}
