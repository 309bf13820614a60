package services

import (
	"gym_backend/internal/dto"
	"gym_backend/internal/events"
	"gym_backend/internal/repositories"
	"gym_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type TransactionService interface {
	List(db *gorm.DB, query *dto.TransactionQuery) ([]dto.TransactionResponse, error)
	Get(db *gorm.DB, id uint) (*dto.TransactionResponse, error)
	Create(db *gorm.DB, req *dto.CreateTransactionRequest) (*dto.TransactionResponse, error)
	Update(db *gorm.DB, id uint, patch dto.Patch) (*dto.TransactionResponse, error)
	Delete(db *gorm.DB, id uint) error

	// Summary - доход, расход и прибыль по фильтру
	Summary(db *gorm.DB, query *dto.TransactionQuery) (*dto.TransactionSummary, error)
}

type transactionService struct {
	repo    repositories.TransactionRepository
	subRepo repositories.SubscriptionRepository
	events  events.Publisher
}

func NewTransactionService(
	repo repositories.TransactionRepository,
	subRepo repositories.SubscriptionRepository,
	publisher events.Publisher,
) TransactionService {
	return &transactionService{
		repo:    repo,
		subRepo: subRepo,
		events:  publisherOrNop(publisher),
	}
}

func (s *transactionService) List(db *gorm.DB, query *dto.TransactionQuery) ([]dto.TransactionResponse, error) {
	items, err := s.repo.List(db, transactionFilter(query))
	if err != nil {
		return nil, err
	}
	return dto.NewTransactionListResponse(items), nil
}

func (s *transactionService) Get(db *gorm.DB, id uint) (*dto.TransactionResponse, error) {
	t, err := s.repo.FindByID(db, id)
	if err != nil {
		return nil, err
	}
	resp := dto.NewTransactionResponse(t)
	return &resp, nil
}

func (s *transactionService) Create(db *gorm.DB, req *dto.CreateTransactionRequest) (*dto.TransactionResponse, error) {
	t := req.ToModel()
	if err := s.ensureSubscription(db, t.SubscriptionID); err != nil {
		return nil, err
	}
	if err := s.repo.Create(db, t); err != nil {
		return nil, err
	}

	s.events.Publish(events.Event{Entity: events.EntityTransaction, Action: events.ActionCreated, ID: t.ID, GymID: t.GymID})
	resp := dto.NewTransactionResponse(t)
	return &resp, nil
}

func (s *transactionService) Update(db *gorm.DB, id uint, patch dto.Patch) (*dto.TransactionResponse, error) {
	if v, ok := patch["subscription_id"].(uint); ok {
		if err := s.ensureSubscription(db, &v); err != nil {
			return nil, err
		}
	}
	if err := s.repo.Update(db, id, patch); err != nil {
		return nil, err
	}
	t, err := s.repo.FindByID(db, id)
	if err != nil {
		return nil, err
	}

	s.events.Publish(events.Event{Entity: events.EntityTransaction, Action: events.ActionUpdated, ID: id, GymID: t.GymID})
	resp := dto.NewTransactionResponse(t)
	return &resp, nil
}

func (s *transactionService) Delete(db *gorm.DB, id uint) error {
	t, err := s.repo.FindByID(db, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(db, id); err != nil {
		return err
	}

	s.events.Publish(events.Event{Entity: events.EntityTransaction, Action: events.ActionDeleted, ID: id, GymID: t.GymID})
	return nil
}

func (s *transactionService) Summary(db *gorm.DB, query *dto.TransactionQuery) (*dto.TransactionSummary, error) {
	totals, err := s.repo.Totals(db, transactionFilter(query))
	if err != nil {
		return nil, err
	}
	return &dto.TransactionSummary{
		IncomeTotal:  totals.IncomeTotal,
		ExpenseTotal: totals.ExpenseTotal,
		ProfitTotal:  totals.IncomeTotal - totals.ExpenseTotal,
		Count:        totals.Count,
	}, nil
}

func (s *transactionService) ensureSubscription(db *gorm.DB, id *uint) error {
	if id == nil {
		return nil
	}
	if _, err := s.subRepo.FindByID(db, *id); err != nil {
		if apperrors.Is(err, apperrors.ErrSubscriptionNotFound) {
			return apperrors.NewBadRequestError("Subscription not found")
		}
		return err
	}
	return nil
}

func transactionFilter(query *dto.TransactionQuery) repositories.TransactionFilter {
	if query == nil {
		return repositories.TransactionFilter{}
	}
	return repositories.TransactionFilter{
		GymID:          query.GymID,
		SubscriptionID: query.SubscriptionID,
		Category:       query.Category,
	}
}
