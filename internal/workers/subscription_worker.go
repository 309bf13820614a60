package workers

import (
	"context"

	"gym_backend/internal/logger"
	"gym_backend/internal/services"

	"gorm.io/gorm"
)

// SubscriptionWorker переводит закончившиеся подписки в Expired
type SubscriptionWorker struct {
	db            *gorm.DB
	subscriptions services.SubscriptionService
}

func NewSubscriptionWorker(db *gorm.DB, subscriptions services.SubscriptionService) *SubscriptionWorker {
	return &SubscriptionWorker{db: db, subscriptions: subscriptions}
}

func (w *SubscriptionWorker) Name() string {
	return "expire-subscriptions"
}

func (w *SubscriptionWorker) Run(ctx context.Context) error {
	n, err := w.subscriptions.ExpireOverdue(w.db.WithContext(ctx))
	if err != nil {
		return err
	}
	if n > 0 {
		logger.Info("Marked subscriptions as expired", "count", n)
	}
	return nil
}
