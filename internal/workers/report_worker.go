package workers

import (
	"context"

	"gym_backend/internal/logger"
	"gym_backend/internal/services"

	"gorm.io/gorm"
)

// ReportWorker рассылает отчет "истекают в ближайшие 3 дня"
type ReportWorker struct {
	db            *gorm.DB
	notifications services.NotificationService
}

func NewReportWorker(db *gorm.DB, notifications services.NotificationService) *ReportWorker {
	return &ReportWorker{db: db, notifications: notifications}
}

func (w *ReportWorker) Name() string {
	return "expiring-report"
}

func (w *ReportWorker) Run(ctx context.Context) error {
	sent, err := w.notifications.SendExpiringReports(w.db.WithContext(ctx))
	if err != nil {
		return err
	}
	logger.Info("Expiring reports sent", "emails", sent)
	return nil
}
