package handlers

// AppHandlers содержит все хэндлеры приложения.
type AppHandlers struct {
	AuthHandler         *AuthHandler
	UserHandler         *UserHandler
	HealthHandler       *HealthHandler
	EquipmentHandler    *EquipmentHandler
	MemberHandler       *MemberHandler
	TrainerHandler      *TrainerHandler
	MembershipHandler   *MembershipHandler
	SubscriptionHandler *SubscriptionHandler
	TransactionHandler  *TransactionHandler
}
