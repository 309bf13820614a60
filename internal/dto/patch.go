package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"gym_backend/internal/models"
	"gym_backend/internal/validator"
	"gym_backend/pkg/apperrors"
)

// ============================================================================
// Частичное обновление: camelCase ключ запроса -> колонка таблицы
// ============================================================================

type FieldKind int

const (
	KindString FieldKind = iota
	KindNumber
	KindInt
	KindUint
	KindDate
)

// Field описывает одно обновляемое поле
type Field struct {
	Column      string
	Kind        FieldKind
	NotNull     bool   // null и "" запрещены
	Enum        string // тег из validator (member-status и т.п.)
	Positive    bool
	NonNegative bool
}

// AllowList - допустимые для обновления поля сущности
type AllowList map[string]Field

// Patch - колонка -> значение, готово для gorm Updates(map)
type Patch map[string]interface{}

// Columns возвращает колонки патча (для логов)
func (p Patch) Columns() []string {
	cols := make([]string, 0, len(p))
	for c := range p {
		cols = append(cols, c)
	}
	return cols
}

// Build фильтрует тело запроса по allow-list.
// Неизвестные ключи игнорируются, "" и null превращаются в NULL.
// Если не осталось ни одного поля - ErrNoUpdatableFields.
func (a AllowList) Build(raw map[string]json.RawMessage) (Patch, error) {
	patch := make(Patch)
	invalid := make(map[string]string)

	for key, value := range raw {
		field, ok := a[key]
		if !ok {
			continue
		}

		v, err := field.decode(value)
		if err != nil {
			invalid[key] = err.Error()
			continue
		}
		if v == nil && field.NotNull {
			invalid[key] = "Cannot be empty"
			continue
		}
		patch[field.Column] = v
	}

	if len(invalid) > 0 {
		return nil, apperrors.ValidationError("Invalid update payload", invalid)
	}
	if len(patch) == 0 {
		return nil, apperrors.ErrNoUpdatableFields
	}
	return patch, nil
}

// BuildJSON - Build для сырого JSON тела
func (a AllowList) BuildJSON(body []byte) (Patch, error) {
	var raw map[string]json.RawMessage
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, apperrors.ErrNoUpdatableFields
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, apperrors.NewBadRequestError("Invalid request body: expected a JSON object")
	}
	return a.Build(raw)
}

// RawFromForm переводит multipart/urlencoded поля в формат Build
func RawFromForm(form url.Values) map[string]json.RawMessage {
	raw := make(map[string]json.RawMessage, len(form))
	for key, values := range form {
		if len(values) == 0 {
			continue
		}
		b, _ := json.Marshal(values[0])
		raw[key] = b
	}
	return raw
}

func (f Field) decode(value json.RawMessage) (interface{}, error) {
	if isNull(value) {
		return nil, nil
	}

	switch f.Kind {
	case KindString:
		var s string
		if err := json.Unmarshal(value, &s); err != nil {
			return nil, fmt.Errorf("Must be a string")
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return nil, nil
		}
		if f.Enum != "" && !validator.IsAllowed(f.Enum, s) {
			return nil, fmt.Errorf("Must be one of: %s", strings.Join(validator.AllowedValues(f.Enum), ", "))
		}
		return s, nil

	case KindNumber:
		n, empty, err := decodeNumber(value)
		if err != nil || empty {
			return nil, err
		}
		if err := f.checkRange(n); err != nil {
			return nil, err
		}
		return n, nil

	case KindInt, KindUint:
		n, empty, err := decodeNumber(value)
		if err != nil || empty {
			return nil, err
		}
		if n != float64(int64(n)) {
			return nil, fmt.Errorf("Must be an integer")
		}
		if f.Kind == KindUint && n < 0 {
			return nil, fmt.Errorf("Must be a positive integer")
		}
		if err := f.checkRange(n); err != nil {
			return nil, err
		}
		if f.Kind == KindUint {
			return uint(n), nil
		}
		return int(n), nil

	case KindDate:
		var s string
		if err := json.Unmarshal(value, &s); err != nil {
			return nil, fmt.Errorf("Must be a date in YYYY-MM-DD format")
		}
		if strings.TrimSpace(s) == "" {
			return nil, nil
		}
		t, err := models.ParseDate(strings.TrimSpace(s))
		if err != nil {
			return nil, fmt.Errorf("Must be a date in YYYY-MM-DD format")
		}
		return models.NewDate(t), nil
	}

	return nil, fmt.Errorf("Unsupported field")
}

func (f Field) checkRange(n float64) error {
	if f.Positive && n <= 0 {
		return fmt.Errorf("Must be greater than 0")
	}
	if f.NonNegative && n < 0 {
		return fmt.Errorf("Must be 0 or greater")
	}
	return nil
}

// decodeNumber принимает JSON число или строку с числом (формы присылают строки)
func decodeNumber(value json.RawMessage) (n float64, empty bool, err error) {
	if err := json.Unmarshal(value, &n); err == nil {
		return n, false, nil
	}
	var s string
	if err := json.Unmarshal(value, &s); err != nil {
		return 0, false, fmt.Errorf("Must be a number")
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, true, nil
	}
	n, err = strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false, fmt.Errorf("Must be a number")
	}
	return n, false, nil
}

func isNull(value json.RawMessage) bool {
	trimmed := bytes.TrimSpace(value)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
