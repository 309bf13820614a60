package contextkeys

// Используем кастомный тип, чтобы избежать коллизий
type contextKey string

const (
	// DBContextKey - ключ, по которому хранится *gorm.DB (пул или транзакция)
	DBContextKey = contextKey("db")

	// SessionContextKey - ключ для *web.Session в gin.Context
	SessionContextKey = contextKey("session")

	// ClaimsContextKey - ключ для *auth.Claims после проверки JWT
	ClaimsContextKey = contextKey("claims")
)
