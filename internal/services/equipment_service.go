package services

import (
	"gym_backend/internal/dto"
	"gym_backend/internal/events"
	"gym_backend/internal/repositories"
	"gym_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type EquipmentService interface {
	List(db *gorm.DB, gymID *uint) ([]dto.EquipmentResponse, error)
	Get(db *gorm.DB, id uint) (*dto.EquipmentResponse, error)
	Create(db *gorm.DB, req *dto.CreateEquipmentRequest) (*dto.EquipmentResponse, error)
	Update(db *gorm.DB, id uint, patch dto.Patch) (*dto.EquipmentResponse, error)
	Delete(db *gorm.DB, id uint) error
}

type equipmentService struct {
	repo   repositories.EquipmentRepository
	events events.Publisher
}

func NewEquipmentService(repo repositories.EquipmentRepository, publisher events.Publisher) EquipmentService {
	return &equipmentService{
		repo:   repo,
		events: publisherOrNop(publisher),
	}
}

func (s *equipmentService) List(db *gorm.DB, gymID *uint) ([]dto.EquipmentResponse, error) {
	items, err := s.repo.List(db, gymID)
	if err != nil {
		return nil, err
	}
	return dto.NewEquipmentListResponse(items), nil
}

func (s *equipmentService) Get(db *gorm.DB, id uint) (*dto.EquipmentResponse, error) {
	e, err := s.repo.FindByID(db, id)
	if err != nil {
		return nil, err
	}
	resp := dto.NewEquipmentResponse(e)
	return &resp, nil
}

func (s *equipmentService) Create(db *gorm.DB, req *dto.CreateEquipmentRequest) (*dto.EquipmentResponse, error) {
	e, err := req.ToModel()
	if err != nil {
		return nil, apperrors.NewBadRequestError(err.Error())
	}
	if err := s.repo.Create(db, e); err != nil {
		return nil, err
	}

	s.events.Publish(events.Event{Entity: events.EntityEquipment, Action: events.ActionCreated, ID: e.ID, GymID: e.GymID})
	resp := dto.NewEquipmentResponse(e)
	return &resp, nil
}

func (s *equipmentService) Update(db *gorm.DB, id uint, patch dto.Patch) (*dto.EquipmentResponse, error) {
	if err := s.repo.Update(db, id, patch); err != nil {
		return nil, err
	}
	e, err := s.repo.FindByID(db, id)
	if err != nil {
		return nil, err
	}

	s.events.Publish(events.Event{Entity: events.EntityEquipment, Action: events.ActionUpdated, ID: id, GymID: e.GymID})
	resp := dto.NewEquipmentResponse(e)
	return &resp, nil
}

func (s *equipmentService) Delete(db *gorm.DB, id uint) error {
	e, err := s.repo.FindByID(db, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(db, id); err != nil {
		return err
	}

	s.events.Publish(events.Event{Entity: events.EntityEquipment, Action: events.ActionDeleted, ID: id, GymID: e.GymID})
	return nil
}
