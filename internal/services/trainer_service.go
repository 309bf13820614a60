package services

import (
	"gym_backend/internal/dto"
	"gym_backend/internal/events"
	"gym_backend/internal/repositories"

	"gorm.io/gorm"
)

type TrainerService interface {
	List(db *gorm.DB, gymID *uint) ([]dto.TrainerResponse, error)
	Get(db *gorm.DB, id uint) (*dto.TrainerResponse, error)
	Create(db *gorm.DB, req *dto.CreateTrainerRequest) (*dto.TrainerResponse, error)
	Update(db *gorm.DB, id uint, patch dto.Patch) (*dto.TrainerResponse, error)
	Delete(db *gorm.DB, id uint) error
}

type trainerService struct {
	repo   repositories.TrainerRepository
	events events.Publisher
}

func NewTrainerService(repo repositories.TrainerRepository, publisher events.Publisher) TrainerService {
	return &trainerService{
		repo:   repo,
		events: publisherOrNop(publisher),
	}
}

func (s *trainerService) List(db *gorm.DB, gymID *uint) ([]dto.TrainerResponse, error) {
	items, err := s.repo.List(db, gymID)
	if err != nil {
		return nil, err
	}
	return dto.NewTrainerListResponse(items), nil
}

func (s *trainerService) Get(db *gorm.DB, id uint) (*dto.TrainerResponse, error) {
	t, err := s.repo.FindByID(db, id)
	if err != nil {
		return nil, err
	}
	resp := dto.NewTrainerResponse(t)
	return &resp, nil
}

func (s *trainerService) Create(db *gorm.DB, req *dto.CreateTrainerRequest) (*dto.TrainerResponse, error) {
	t := req.ToModel()
	if err := s.repo.Create(db, t); err != nil {
		return nil, err
	}

	s.events.Publish(events.Event{Entity: events.EntityTrainer, Action: events.ActionCreated, ID: t.ID, GymID: t.GymID})
	resp := dto.NewTrainerResponse(t)
	return &resp, nil
}

func (s *trainerService) Update(db *gorm.DB, id uint, patch dto.Patch) (*dto.TrainerResponse, error) {
	if err := s.repo.Update(db, id, patch); err != nil {
		return nil, err
	}
	t, err := s.repo.FindByID(db, id)
	if err != nil {
		return nil, err
	}

	s.events.Publish(events.Event{Entity: events.EntityTrainer, Action: events.ActionUpdated, ID: id, GymID: t.GymID})
	resp := dto.NewTrainerResponse(t)
	return &resp, nil
}

func (s *trainerService) Delete(db *gorm.DB, id uint) error {
	t, err := s.repo.FindByID(db, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(db, id); err != nil {
		return err
	}

	s.events.Publish(events.Event{Entity: events.EntityTrainer, Action: events.ActionDeleted, ID: id, GymID: t.GymID})
	return nil
}
