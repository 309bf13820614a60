package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gym_backend/internal/auth"
	"gym_backend/internal/dto"
	"gym_backend/internal/logger"
	"gym_backend/internal/validator"
	"gym_backend/pkg/apperrors"
	"gym_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ============================================================================
// 1. Базовая структура обработчика
// ============================================================================

type BaseHandler struct {
	validator *validator.Validator
}

func NewBaseHandler(v *validator.Validator) *BaseHandler {
	return &BaseHandler{
		validator: v,
	}
}

// ============================================================================
// 2. DB из контекста
// ============================================================================

// GetDB извлекает *gorm.DB (пул или транзакцию) из gin.Context,
// привязанный к контексту запроса
func (h *BaseHandler) GetDB(c *gin.Context) *gorm.DB {
	dbKey := string(contextkeys.DBContextKey)

	val, ok := c.Get(dbKey)
	if !ok {
		logger.CtxError(c.Request.Context(), "critical error: db key not found in context", "key", dbKey)
		panic("critical error: DBMiddleware did not set the db key")
	}

	db, ok := val.(*gorm.DB)
	if !ok {
		logger.CtxError(c.Request.Context(), "critical error: db in context is not *gorm.DB", "key", dbKey, "type", fmt.Sprintf("%T", val))
		panic("critical error: db in context has incorrect type")
	}

	return db.WithContext(c.Request.Context())
}

// ============================================================================
// 3. Привязка и валидация
// ============================================================================

// BindAndValidate_JSON привязывает тело (JSON или форму, по Content-Type)
func (h *BaseHandler) BindAndValidate_JSON(c *gin.Context, obj interface{}) bool {
	ctx := c.Request.Context()

	if err := c.ShouldBind(obj); err != nil {
		logger.CtxWithError(ctx, "Failed to bind request body", err, "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid request body: "+err.Error()))
		return false
	}

	return h.validate(c, obj)
}

func (h *BaseHandler) BindAndValidate_Query(c *gin.Context, obj interface{}) bool {
	ctx := c.Request.Context()

	if err := c.ShouldBindQuery(obj); err != nil {
		logger.CtxWithError(ctx, "Failed to bind query params", err, "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid query parameters: "+err.Error()))
		return false
	}

	return h.validate(c, obj)
}

func (h *BaseHandler) validate(c *gin.Context, obj interface{}) bool {
	ctx := c.Request.Context()

	if err := h.validator.Validate(obj); err != nil {
		if vErr, ok := err.(*validator.ValidationError); ok {
			logger.CtxWarn(ctx, "Validation failed", "errors", vErr.Errors, "path", c.Request.URL.Path)
			apperrors.HandleError(c, apperrors.ValidationError(vErr.Summary(), vErr.Errors))
		} else {
			logger.CtxWithError(ctx, "Internal validator error", err, "path", c.Request.URL.Path)
			apperrors.HandleError(c, apperrors.InternalError(err))
		}
		return false
	}
	return true
}

// ReadPatch собирает частичное обновление из JSON или формы по allow-list.
// extra добавляется к полям запроса (например, путь загруженного аватара).
func (h *BaseHandler) ReadPatch(c *gin.Context, allow dto.AllowList, extra map[string]string) (dto.Patch, bool) {
	raw, err := readRawBody(c)
	if err != nil {
		h.HandleServiceError(c, err)
		return nil, false
	}
	for key, value := range extra {
		b, _ := json.Marshal(value)
		raw[key] = b
	}

	patch, err := allow.Build(raw)
	if err != nil {
		h.HandleServiceError(c, err)
		return nil, false
	}
	return patch, true
}

func readRawBody(c *gin.Context) (map[string]json.RawMessage, error) {
	if isForm(c) {
		if strings.HasPrefix(c.ContentType(), gin.MIMEMultipartPOSTForm) {
			if _, err := c.MultipartForm(); err != nil {
				return nil, apperrors.NewBadRequestError("Invalid multipart form: " + err.Error())
			}
		} else if err := c.Request.ParseForm(); err != nil {
			return nil, apperrors.NewBadRequestError("Invalid form: " + err.Error())
		}
		return dto.RawFromForm(c.Request.PostForm), nil
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return nil, apperrors.NewBadRequestError("Failed to read request body")
	}
	raw := make(map[string]json.RawMessage)
	if len(strings.TrimSpace(string(body))) == 0 {
		return raw, nil
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, apperrors.NewBadRequestError("Invalid request body: expected a JSON object")
	}
	return raw, nil
}

func isForm(c *gin.Context) bool {
	ct := c.ContentType()
	return ct == gin.MIMEMultipartPOSTForm || ct == gin.MIMEPOSTForm
}

// ============================================================================
// 4. Обработчики ошибок
// ============================================================================

func (h *BaseHandler) HandleServiceError(c *gin.Context, err error) {
	ctx := c.Request.Context()

	var appErr *apperrors.AppError
	if apperrors.As(err, &appErr) {
		logger.CtxWarn(ctx, "Service error",
			"error", appErr.Message,
			"details", appErr.Details,
			"path", c.Request.URL.Path,
		)
		apperrors.HandleError(c, appErr)
	} else {
		logger.CtxWithError(ctx, "Internal server error", err, "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.InternalError(err))
	}
}

// ============================================================================
// 5. Текущий пользователь
// ============================================================================

// GetClaims возвращает данные токена, положенные AuthMiddleware
func (h *BaseHandler) GetClaims(c *gin.Context) (*auth.Claims, bool) {
	val, exists := c.Get(string(contextkeys.ClaimsContextKey))
	if !exists {
		logger.CtxWarn(c.Request.Context(), "Unauthorized access: claims not found in context",
			"path", c.Request.URL.Path,
			"ip", c.ClientIP(),
		)
		apperrors.HandleError(c, apperrors.ErrUnauthorized)
		return nil, false
	}

	claims, ok := val.(*auth.Claims)
	if !ok || claims == nil {
		apperrors.HandleError(c, apperrors.ErrUnauthorized)
		return nil, false
	}
	return claims, true
}

// ============================================================================
// 6. Функции парсинга
// ============================================================================

// ParseParamUint разбирает :id; при ошибке сразу отвечает 400
func ParseParamUint(c *gin.Context, key string) (uint, bool) {
	valueStr := c.Param(key)
	if valueStr == "" {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Missing required path parameter: "+key))
		return 0, false
	}
	value, err := strconv.ParseUint(valueStr, 10, 64)
	if err != nil || value == 0 {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid path parameter: "+key+" must be a positive integer"))
		return 0, false
	}
	return uint(value), true
}

func ParseQueryInt(c *gin.Context, key string, defaultValue int) int {
	valueStr := c.Query(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
