package services

import (
	"gym_backend/internal/dto"
	"gym_backend/internal/events"
	"gym_backend/internal/repositories"

	"gorm.io/gorm"
)

type MembershipService interface {
	List(db *gorm.DB, gymID *uint) ([]dto.MembershipResponse, error)
	Get(db *gorm.DB, id uint) (*dto.MembershipResponse, error)
	Create(db *gorm.DB, req *dto.CreateMembershipRequest) (*dto.MembershipResponse, error)
	Update(db *gorm.DB, id uint, patch dto.Patch) (*dto.MembershipResponse, error)
	Delete(db *gorm.DB, id uint) error
}

type membershipService struct {
	repo   repositories.MembershipRepository
	events events.Publisher
}

func NewMembershipService(repo repositories.MembershipRepository, publisher events.Publisher) MembershipService {
	return &membershipService{
		repo:   repo,
		events: publisherOrNop(publisher),
	}
}

func (s *membershipService) List(db *gorm.DB, gymID *uint) ([]dto.MembershipResponse, error) {
	items, err := s.repo.List(db, gymID)
	if err != nil {
		return nil, err
	}
	return dto.NewMembershipListResponse(items), nil
}

func (s *membershipService) Get(db *gorm.DB, id uint) (*dto.MembershipResponse, error) {
	m, err := s.repo.FindByID(db, id)
	if err != nil {
		return nil, err
	}
	resp := dto.NewMembershipResponse(m)
	return &resp, nil
}

func (s *membershipService) Create(db *gorm.DB, req *dto.CreateMembershipRequest) (*dto.MembershipResponse, error) {
	m := req.ToModel()
	if err := s.repo.Create(db, m); err != nil {
		return nil, err
	}

	s.events.Publish(events.Event{Entity: events.EntityMembership, Action: events.ActionCreated, ID: m.ID, GymID: m.GymID})
	resp := dto.NewMembershipResponse(m)
	return &resp, nil
}

func (s *membershipService) Update(db *gorm.DB, id uint, patch dto.Patch) (*dto.MembershipResponse, error) {
	if err := s.repo.Update(db, id, patch); err != nil {
		return nil, err
	}
	m, err := s.repo.FindByID(db, id)
	if err != nil {
		return nil, err
	}

	s.events.Publish(events.Event{Entity: events.EntityMembership, Action: events.ActionUpdated, ID: id, GymID: m.GymID})
	resp := dto.NewMembershipResponse(m)
	return &resp, nil
}

// Delete: план с подписками удалить нельзя (409 из TranslateDBError)
func (s *membershipService) Delete(db *gorm.DB, id uint) error {
	m, err := s.repo.FindByID(db, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(db, id); err != nil {
		return err
	}

	s.events.Publish(events.Event{Entity: events.EntityMembership, Action: events.ActionDeleted, ID: id, GymID: m.GymID})
	return nil
}
