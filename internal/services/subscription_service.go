package services

import (
	"gym_backend/internal/dto"
	"gym_backend/internal/events"
	"gym_backend/internal/models"
	"gym_backend/internal/repositories"
	"gym_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type SubscriptionService interface {
	List(db *gorm.DB, query *dto.SubscriptionQuery) ([]dto.SubscriptionResponse, error)
	Get(db *gorm.DB, id uint) (*dto.SubscriptionResponse, error)
	Create(db *gorm.DB, req *dto.CreateSubscriptionRequest) (*dto.SubscriptionResponse, error)
	Update(db *gorm.DB, id uint, patch dto.Patch) (*dto.SubscriptionResponse, error)
	Delete(db *gorm.DB, id uint) error

	// ExpireOverdue переводит закончившиеся активные подписки в Expired
	ExpireOverdue(db *gorm.DB) (int64, error)
}

type subscriptionService struct {
	subRepo         repositories.SubscriptionRepository
	memberRepo      repositories.MemberRepository
	membershipRepo  repositories.MembershipRepository
	trainerRepo     repositories.TrainerRepository
	transactionRepo repositories.TransactionRepository
	events          events.Publisher
	now             Clock
}

func NewSubscriptionService(
	subRepo repositories.SubscriptionRepository,
	memberRepo repositories.MemberRepository,
	membershipRepo repositories.MembershipRepository,
	trainerRepo repositories.TrainerRepository,
	transactionRepo repositories.TransactionRepository,
	publisher events.Publisher,
	now Clock,
) SubscriptionService {
	return &subscriptionService{
		subRepo:         subRepo,
		memberRepo:      memberRepo,
		membershipRepo:  membershipRepo,
		trainerRepo:     trainerRepo,
		transactionRepo: transactionRepo,
		events:          publisherOrNop(publisher),
		now:             defaultClock(now),
	}
}

func (s *subscriptionService) List(db *gorm.DB, query *dto.SubscriptionQuery) ([]dto.SubscriptionResponse, error) {
	rows, err := s.subRepo.ListDetails(db, repositories.SubscriptionFilter{
		GymID:    query.GymID,
		MemberID: query.MemberID,
		Status:   query.Status,
	})
	if err != nil {
		return nil, err
	}
	return dto.NewSubscriptionListResponse(rows), nil
}

func (s *subscriptionService) Get(db *gorm.DB, id uint) (*dto.SubscriptionResponse, error) {
	row, err := s.subRepo.FindDetail(db, id)
	if err != nil {
		return nil, err
	}
	resp := dto.NewSubscriptionResponse(row)
	return &resp, nil
}

// Create: endDate по умолчанию = startDate + срок плана
func (s *subscriptionService) Create(db *gorm.DB, req *dto.CreateSubscriptionRequest) (*dto.SubscriptionResponse, error) {
	start, err := models.ParseDate(req.StartDate)
	if err != nil {
		return nil, apperrors.NewBadRequestError(err.Error())
	}

	ok, err := s.memberRepo.Exists(db, req.MemberID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperrors.NewBadRequestError("Member not found")
	}

	membership, err := s.membershipRepo.FindByID(db, req.MembershipID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrMembershipNotFound) {
			return nil, apperrors.ErrUnknownMembership
		}
		return nil, err
	}

	trainerID := req.TrainerID
	if trainerID != nil && *trainerID == 0 {
		trainerID = nil
	}
	if err := ensureTrainer(db, s.trainerRepo, trainerID); err != nil {
		return nil, err
	}

	sub := newSubscription(req.MemberID, membership, trainerID, req.PTSchedule, start)
	if req.EndDate != "" {
		end, err := models.ParseDate(req.EndDate)
		if err != nil {
			return nil, apperrors.NewBadRequestError(err.Error())
		}
		if end.Before(start) {
			return nil, apperrors.ValidationError("endDate cannot be before startDate", map[string]string{"endDate": "Must not be before startDate"})
		}
		sub.EndDate = models.NewDate(end)
	}
	if req.Status != "" {
		sub.Status = models.SubscriptionStatus(req.Status)
	}

	if err := s.subRepo.Create(db, sub); err != nil {
		return nil, err
	}

	resp, err := s.Get(db, sub.ID)
	if err != nil {
		return nil, err
	}
	s.events.Publish(events.Event{Entity: events.EntitySubscription, Action: events.ActionCreated, ID: sub.ID, GymID: resp.MemberGymID})
	return resp, nil
}

func (s *subscriptionService) Update(db *gorm.DB, id uint, patch dto.Patch) (*dto.SubscriptionResponse, error) {
	if err := s.subRepo.Update(db, id, patch); err != nil {
		return nil, err
	}
	resp, err := s.Get(db, id)
	if err != nil {
		return nil, err
	}

	s.events.Publish(events.Event{Entity: events.EntitySubscription, Action: events.ActionUpdated, ID: id, GymID: resp.MemberGymID})
	return resp, nil
}

// Delete удаляет подписку и ее транзакции в одной транзакции БД
func (s *subscriptionService) Delete(db *gorm.DB, id uint) error {
	var gymID uint
	err := db.Transaction(func(tx *gorm.DB) error {
		row, err := s.subRepo.FindDetail(tx, id)
		if err != nil {
			return err
		}
		gymID = row.MemberGymID

		if _, err := s.transactionRepo.DeleteBySubscriptionIDs(tx, []uint{id}); err != nil {
			return err
		}
		return s.subRepo.Delete(tx, id)
	})
	if err != nil {
		return err
	}

	s.events.Publish(events.Event{Entity: events.EntitySubscription, Action: events.ActionDeleted, ID: id, GymID: gymID})
	return nil
}

func (s *subscriptionService) ExpireOverdue(db *gorm.DB) (int64, error) {
	today := models.DateOf(s.now())
	n, err := s.subRepo.ExpireEndedBefore(db, today)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.events.Publish(events.Event{Entity: events.EntitySubscription, Action: events.ActionUpdated})
	}
	return n, nil
}
