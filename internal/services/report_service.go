package services

import (
	"time"

	"gym_backend/internal/dto"
	"gym_backend/internal/models"
	"gym_backend/internal/repositories"
	"gym_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type ReportService interface {
	Report(db *gorm.DB, kind dto.ReportKind, gymID *uint) (*dto.ReportResponse, error)
	// Dashboard - все отчеты в порядке карточек дашборда
	Dashboard(db *gorm.DB, gymID *uint) ([]dto.ReportCard, error)
}

type reportService struct {
	memberRepo repositories.MemberRepository
	subRepo    repositories.SubscriptionRepository
	now        Clock
}

func NewReportService(memberRepo repositories.MemberRepository, subRepo repositories.SubscriptionRepository, now Clock) ReportService {
	return &reportService{
		memberRepo: memberRepo,
		subRepo:    subRepo,
		now:        defaultClock(now),
	}
}

func (s *reportService) Report(db *gorm.DB, kind dto.ReportKind, gymID *uint) (*dto.ReportResponse, error) {
	members, err := s.members(db, kind, gymID)
	if err != nil {
		return nil, err
	}
	list, err := withPlans(db, s.subRepo, members)
	if err != nil {
		return nil, err
	}
	return &dto.ReportResponse{
		Kind:    kind,
		Title:   kind.Title(),
		Count:   len(list),
		Members: list,
	}, nil
}

func (s *reportService) Dashboard(db *gorm.DB, gymID *uint) ([]dto.ReportCard, error) {
	cards := make([]dto.ReportCard, 0, len(dto.ReportKinds))
	for _, kind := range dto.ReportKinds {
		members, err := s.members(db, kind, gymID)
		if err != nil {
			return nil, err
		}
		cards = append(cards, dto.ReportCard{Kind: kind, Title: kind.Title(), Count: len(members)})
	}
	return cards, nil
}

func (s *reportService) members(db *gorm.DB, kind dto.ReportKind, gymID *uint) ([]models.Member, error) {
	today := models.DateOf(s.now())

	switch kind {
	case dto.ReportMonthlyJoined:
		first := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
		return s.memberRepo.ListJoinedBetween(db, gymID, first, first.AddDate(0, 1, 0))
	case dto.ReportExpiring3Days:
		return s.memberRepo.ListPlanEndingBetween(db, gymID, today, today.AddDate(0, 0, 3))
	case dto.ReportExpiring4To7:
		return s.memberRepo.ListPlanEndingBetween(db, gymID, today.AddDate(0, 0, 4), today.AddDate(0, 0, 7))
	case dto.ReportExpired:
		return s.memberRepo.ListExpired(db, gymID, today)
	case dto.ReportInactiveMembers:
		return s.memberRepo.ListByStatus(db, gymID, models.MemberStatusInactive)
	}
	return nil, apperrors.ErrInvalidReportKind
}
