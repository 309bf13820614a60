package models

type MemberStatus string
type EquipmentStatus string
type EquipmentCondition string
type SubscriptionStatus string
type TransactionCategory string
type UserRole string

const (
	MemberStatusActive   MemberStatus = "Active"
	MemberStatusInactive MemberStatus = "Inactive"

	EquipmentStatusAvailable   EquipmentStatus = "Available"
	EquipmentStatusInUse       EquipmentStatus = "In Use"
	EquipmentStatusMaintenance EquipmentStatus = "Maintenance"

	EquipmentConditionExcellent EquipmentCondition = "Excellent"
	EquipmentConditionGood      EquipmentCondition = "Good"
	EquipmentConditionFair      EquipmentCondition = "Fair"
	EquipmentConditionPoor      EquipmentCondition = "Poor"

	SubscriptionStatusActive    SubscriptionStatus = "Active"
	SubscriptionStatusExpired   SubscriptionStatus = "Expired"
	SubscriptionStatusCancelled SubscriptionStatus = "Cancelled"

	TransactionCategoryIncome  TransactionCategory = "Income"
	TransactionCategoryExpense TransactionCategory = "Expense"

	UserRoleAdmin UserRole = "admin"
	UserRoleStaff UserRole = "staff"
)

// Значения по умолчанию, которые отдаются клиенту при отсутствии данных
const (
	DefaultPlanName    = "No Plan"
	DefaultPackageType = "Normal"
)
