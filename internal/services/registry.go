package services

import (
	"gym_backend/internal/email"
)

// ServiceContainer содержит все сервисы приложения.
type ServiceContainer struct {
	EquipmentService    EquipmentService
	MemberService       MemberService
	TrainerService      TrainerService
	MembershipService   MembershipService
	SubscriptionService SubscriptionService
	TransactionService  TransactionService
	ReportService       ReportService
	AuthService         AuthService
	UploadService       UploadService
	NotificationService NotificationService
	EmailService        email.Provider
}
