package apperrors

import "net/http"

// Предопределенные ошибки домена
var (
	ErrMemberNotFound       = NotFound("Member")
	ErrTrainerNotFound      = NotFound("Trainer")
	ErrEquipmentNotFound    = NotFound("Equipment")
	ErrMembershipNotFound   = NotFound("Membership")
	ErrSubscriptionNotFound = NotFound("Subscription")
	ErrTransactionNotFound  = NotFound("Transaction")
	ErrUserNotFound         = NotFound("User")

	// Membership, указанный при создании участника, не существует (400, как в форме)
	ErrUnknownMembership = New(CodeMembershipNotFound, "Membership", "Membership not found", http.StatusBadRequest)

	ErrNoUpdatableFields = New(CodeNoUpdatableFields, "request", "No updatable fields provided", http.StatusBadRequest)
	ErrInvalidReportKind = New(CodeInvalidReportKind, "report", "Unknown report kind", http.StatusBadRequest)

	ErrFileTooLarge    = New(CodeFileTooLarge, "upload", "File too large", http.StatusBadRequest)
	ErrInvalidFileType = New(CodeInvalidFileType, "upload", "Invalid file type", http.StatusBadRequest)

	ErrInvalidCredentials = New(CodeInvalidCredentials, "auth", "Invalid email or password", http.StatusUnauthorized)
	ErrUnauthorized       = New(CodeUnauthorized, "auth", "Authentication required", http.StatusUnauthorized)
	ErrInvalidToken       = New(CodeInvalidToken, "auth", "Invalid or expired token", http.StatusUnauthorized)
	ErrForbidden          = New(CodeForbidden, "auth", "Access denied", http.StatusForbidden)

	// Удаление записи, на которую ссылаются другие (FK без ON DELETE CASCADE)
	ErrReferencedRecord = New(CodeReferencedRecord, "database", "Record is referenced by other records", http.StatusConflict)
)
