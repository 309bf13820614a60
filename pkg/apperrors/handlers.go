package apperrors

import (
	"net/http"

	"gym_backend/internal/logger"

	"github.com/gin-gonic/gin"
)

// GinErrorHandler - обработчик ошибок для Gin
type GinErrorHandler struct {
	Debug bool
}

// HandleGinError - основная логика обработки ошибок для Gin.
// Ответ всегда плоский: {"message": ..., "code": ..., "details"?: ...}
func (h *GinErrorHandler) HandleGinError(c *gin.Context, err error) {
	appErr, ok := AsAppError(err)
	if !ok {
		appErr = InternalError(err)
		if h.Debug {
			appErr = appErr.WithDetails(err.Error())
		}
	}

	if appErr.HTTPCode >= http.StatusInternalServerError {
		logger.CtxError(c.Request.Context(), "Server error", "error", appErr.Error())
	}

	c.AbortWithStatusJSON(appErr.HTTPCode, appErr)
}

var defaultHandler = &GinErrorHandler{}

// SetDebug включает вывод деталей внутренних ошибок (только для development)
func SetDebug(debug bool) {
	defaultHandler.Debug = debug
}

// HandleError - быстрая функция-помощник для Gin
func HandleError(c *gin.Context, err error) {
	defaultHandler.HandleGinError(c, err)
}

// RecoveryHandler используется в gin.CustomRecovery: паника превращается
// в обычный 500 ответ того же формата.
func RecoveryHandler(c *gin.Context, recovered any) {
	logger.CtxError(c.Request.Context(), "Panic recovered", "panic", recovered, "path", c.Request.URL.Path)
	c.AbortWithStatusJSON(http.StatusInternalServerError, InternalError(nil))
}
