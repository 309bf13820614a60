package services

import (
	"time"

	"gym_backend/internal/dto"
	"gym_backend/internal/events"
	"gym_backend/internal/logger"
	"gym_backend/internal/models"
	"gym_backend/internal/repositories"
	"gym_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type MemberService interface {
	List(db *gorm.DB, gymID *uint) ([]dto.MemberResponse, error)
	Get(db *gorm.DB, id uint) (*dto.MemberResponse, error)
	Create(db *gorm.DB, req *dto.CreateMemberRequest) (*dto.MemberResponse, error)
	Update(db *gorm.DB, id uint, patch dto.Patch) (*dto.MemberResponse, error)
	Delete(db *gorm.DB, id uint) error
}

type memberService struct {
	memberRepo      repositories.MemberRepository
	subRepo         repositories.SubscriptionRepository
	membershipRepo  repositories.MembershipRepository
	trainerRepo     repositories.TrainerRepository
	transactionRepo repositories.TransactionRepository
	events          events.Publisher
	now             Clock
}

func NewMemberService(
	memberRepo repositories.MemberRepository,
	subRepo repositories.SubscriptionRepository,
	membershipRepo repositories.MembershipRepository,
	trainerRepo repositories.TrainerRepository,
	transactionRepo repositories.TransactionRepository,
	publisher events.Publisher,
	now Clock,
) MemberService {
	return &memberService{
		memberRepo:      memberRepo,
		subRepo:         subRepo,
		membershipRepo:  membershipRepo,
		trainerRepo:     trainerRepo,
		transactionRepo: transactionRepo,
		events:          publisherOrNop(publisher),
		now:             defaultClock(now),
	}
}

func (s *memberService) List(db *gorm.DB, gymID *uint) ([]dto.MemberResponse, error) {
	members, err := s.memberRepo.List(db, gymID)
	if err != nil {
		return nil, err
	}
	return withPlans(db, s.subRepo, members)
}

func (s *memberService) Get(db *gorm.DB, id uint) (*dto.MemberResponse, error) {
	m, err := s.memberRepo.FindByID(db, id)
	if err != nil {
		return nil, err
	}
	plans, err := s.subRepo.CurrentPlans(db, []uint{id})
	if err != nil {
		return nil, err
	}
	resp := dto.NewMemberResponse(m, plans[id])
	return &resp, nil
}

// Create создает участника и, если указан membershipId, подписку
// с endDate = joinDate + срок плана. Все в одной транзакции.
func (s *memberService) Create(db *gorm.DB, req *dto.CreateMemberRequest) (*dto.MemberResponse, error) {
	member, err := req.ToModel(s.now())
	if err != nil {
		return nil, apperrors.NewBadRequestError(err.Error())
	}

	var plan *models.CurrentPlan
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.memberRepo.Create(tx, member); err != nil {
			return err
		}

		planID, ok := req.PlanID()
		if !ok {
			return nil
		}

		membership, err := s.membershipRepo.FindByID(tx, planID)
		if err != nil {
			if apperrors.Is(err, apperrors.ErrMembershipNotFound) {
				return apperrors.ErrUnknownMembership
			}
			return err
		}
		if err := ensureTrainer(tx, s.trainerRepo, req.CoachID()); err != nil {
			return err
		}

		sub := newSubscription(member.ID, membership, req.CoachID(), req.PTSchedule, time.Time(member.JoinDate))
		if err := s.subRepo.Create(tx, sub); err != nil {
			return err
		}

		plan = &models.CurrentPlan{
			MemberID:       member.ID,
			SubscriptionID: sub.ID,
			Title:          membership.Title,
			EndDate:        time.Time(sub.EndDate),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.events.Publish(events.Event{Entity: events.EntityMember, Action: events.ActionCreated, ID: member.ID, GymID: member.GymID})
	resp := dto.NewMemberResponse(member, plan)
	return &resp, nil
}

func (s *memberService) Update(db *gorm.DB, id uint, patch dto.Patch) (*dto.MemberResponse, error) {
	if err := s.memberRepo.Update(db, id, patch); err != nil {
		return nil, err
	}
	resp, err := s.Get(db, id)
	if err != nil {
		return nil, err
	}

	s.events.Publish(events.Event{Entity: events.EntityMember, Action: events.ActionUpdated, ID: id, GymID: resp.GymID})
	return resp, nil
}

// Delete удаляет участника вместе с подписками и их транзакциями.
// Порядок: транзакции -> подписки -> участник (FK без каскада).
func (s *memberService) Delete(db *gorm.DB, id uint) error {
	var gymID uint
	err := db.Transaction(func(tx *gorm.DB) error {
		member, err := s.memberRepo.FindByID(tx, id)
		if err != nil {
			return err
		}
		gymID = member.GymID

		subIDs, err := s.subRepo.IDsByMember(tx, id)
		if err != nil {
			return err
		}
		txCount, err := s.transactionRepo.DeleteBySubscriptionIDs(tx, subIDs)
		if err != nil {
			return err
		}
		if _, err := s.subRepo.DeleteByMember(tx, id); err != nil {
			return err
		}
		if err := s.memberRepo.Delete(tx, id); err != nil {
			return err
		}

		logger.CtxInfo(tx.Statement.Context, "Member deleted",
			"member_id", id,
			"subscriptions", len(subIDs),
			"transactions", txCount,
		)
		return nil
	})
	if err != nil {
		return err
	}

	s.events.Publish(events.Event{Entity: events.EntityMember, Action: events.ActionDeleted, ID: id, GymID: gymID})
	return nil
}

// ============================================
// Общие помощники для участников и подписок
// ============================================

func withPlans(db *gorm.DB, subRepo repositories.SubscriptionRepository, members []models.Member) ([]dto.MemberResponse, error) {
	ids := make([]uint, 0, len(members))
	for _, m := range members {
		ids = append(ids, m.ID)
	}
	plans, err := subRepo.CurrentPlans(db, ids)
	if err != nil {
		return nil, err
	}
	return dto.NewMemberListResponse(members, plans), nil
}

// newSubscription - активная подписка от start на срок плана (минимум 1 месяц)
func newSubscription(memberID uint, membership *models.Membership, trainerID *uint, schedule *string, start time.Time) *models.MemberSubscription {
	months := membership.DurationInMonths
	if months <= 0 {
		months = 1
	}
	return &models.MemberSubscription{
		MemberID:     memberID,
		MembershipID: membership.ID,
		TrainerID:    trainerID,
		PTSchedule:   schedule,
		StartDate:    models.NewDate(start),
		EndDate:      models.NewDate(models.AddMonths(start, months)),
		Status:       models.SubscriptionStatusActive,
	}
}

func ensureTrainer(db *gorm.DB, repo repositories.TrainerRepository, trainerID *uint) error {
	if trainerID == nil {
		return nil
	}
	if _, err := repo.FindByID(db, *trainerID); err != nil {
		if apperrors.Is(err, apperrors.ErrTrainerNotFound) {
			return apperrors.NewBadRequestError("Trainer not found")
		}
		return err
	}
	return nil
}
