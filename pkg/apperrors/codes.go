package apperrors

// ErrorCode - тип для кодов ошибок
type ErrorCode string

// Общие, не-доменные коды ошибок
const (
	// Системные ошибки
	CodeInternalError ErrorCode = "INTERNAL_ERROR"
	CodeDatabaseError ErrorCode = "DATABASE_ERROR"

	// Общие ошибки бизнес-логики
	CodeNotFound           ErrorCode = "NOT_FOUND"
	CodeValidationFailed   ErrorCode = "VALIDATION_FAILED"
	CodeNoUpdatableFields  ErrorCode = "NO_UPDATABLE_FIELDS"
	CodeConflict           ErrorCode = "CONFLICT"
	CodeReferencedRecord   ErrorCode = "REFERENCED_RECORD"
	CodeInvalidOperation   ErrorCode = "INVALID_OPERATION"
	CodeFileTooLarge       ErrorCode = "FILE_TOO_LARGE"
	CodeInvalidFileType    ErrorCode = "INVALID_FILE_TYPE"
	CodeInvalidReportKind  ErrorCode = "INVALID_REPORT_KIND"
	CodeMembershipNotFound ErrorCode = "MEMBERSHIP_NOT_FOUND"

	// Аутентификация
	CodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	CodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	CodeInvalidToken       ErrorCode = "INVALID_TOKEN"
	CodeForbidden          ErrorCode = "FORBIDDEN"
)
