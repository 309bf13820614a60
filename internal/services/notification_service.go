package services

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"gym_backend/internal/dto"
	"gym_backend/internal/email"
	"gym_backend/internal/logger"
	"gym_backend/internal/models"
	"gym_backend/internal/repositories"

	"gorm.io/gorm"
)

type NotificationService interface {
	// SendExpiringReports отправляет отчет expiring-3-days по каждому залу.
	// Возвращает число отправленных писем; пустые отчеты не отправляются.
	SendExpiringReports(db *gorm.DB) (int, error)
}

type notificationService struct {
	reports    ReportService
	memberRepo repositories.MemberRepository
	provider   email.Provider
	recipients []string
	now        Clock
}

func NewNotificationService(
	reports ReportService,
	memberRepo repositories.MemberRepository,
	provider email.Provider,
	recipients []string,
	now Clock,
) NotificationService {
	return &notificationService{
		reports:    reports,
		memberRepo: memberRepo,
		provider:   provider,
		recipients: recipients,
		now:        defaultClock(now),
	}
}

func (s *notificationService) SendExpiringReports(db *gorm.DB) (int, error) {
	if len(s.recipients) == 0 {
		logger.Info("Expiring report skipped: no recipients configured")
		return 0, nil
	}

	gymIDs, err := s.memberRepo.GymIDs(db)
	if err != nil {
		return 0, err
	}

	date := models.FormatDate(models.NewDate(s.now()))
	sent := 0
	for _, gymID := range gymIDs {
		gym := gymID
		report, err := s.reports.Report(db, dto.ReportExpiring3Days, &gym)
		if err != nil {
			return sent, err
		}
		if report.Count == 0 {
			continue
		}

		attachment, err := reportCSV(report)
		if err != nil {
			return sent, err
		}

		subject := fmt.Sprintf("%s: %d member(s), gym #%d", report.Title, report.Count, gym)
		err = s.provider.SendTemplate(s.recipients, subject, email.TemplateExpiringReport, email.TemplateData{
			"Title":   report.Title,
			"GymID":   gym,
			"Date":    date,
			"Members": report.Members,
		}, email.Attachment{
			Name:        fmt.Sprintf("expiring-%d-%s.csv", gym, date),
			Content:     attachment,
			ContentType: "text/csv",
		})
		if err != nil {
			logger.Error("Failed to send expiring report", "gym_id", gym, "error", err)
			continue
		}
		sent++
	}
	return sent, nil
}

func reportCSV(report *dto.ReportResponse) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"id", "name", "mobileNo", "plan", "nextBillDate"})
	for _, m := range report.Members {
		next := ""
		if m.NextBillDate != nil {
			next = *m.NextBillDate
		}
		_ = w.Write([]string{fmt.Sprint(m.ID), m.Name, m.MobileNo, m.Plan, next})
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
