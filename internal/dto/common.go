package dto

import (
	"strings"
	"time"

	"gym_backend/internal/models"

	"gorm.io/datatypes"
)

// GymQuery - общий фильтр списков по залу
type GymQuery struct {
	GymID *uint `form:"gymId"`
}

// IDResponse - ответ для операций, возвращающих только id
type IDResponse struct {
	ID uint `json:"id"`
}

// optionalString: пустая строка -> nil
func optionalString(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

// parseOptionalDate: пустая строка -> nil. Формат уже проверен валидатором.
func parseOptionalDate(s string) (*datatypes.Date, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	t, err := models.ParseDate(strings.TrimSpace(s))
	if err != nil {
		return nil, err
	}
	d := models.NewDate(t)
	return &d, nil
}

// parseDateOr возвращает дату из строки или fallback, если строка пустая
func parseDateOr(s string, fallback time.Time) (time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return models.DateOf(fallback), nil
	}
	return models.ParseDate(strings.TrimSpace(s))
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
