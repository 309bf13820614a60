package validator

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError содержит карту ошибок "поле" -> "сообщение"
type ValidationError struct {
	Errors map[string]string
}

func (e *ValidationError) Error() string {
	return "Validation failed: " + e.Summary()
}

// Summary - сообщение для клиента, называющее поля.
// Для отсутствующих обязательных полей: "Missing required field(s): a, b".
func (e *ValidationError) Summary() string {
	var missing, invalid []string
	for field, msg := range e.Errors {
		if msg == requiredMessage {
			missing = append(missing, field)
		} else {
			invalid = append(invalid, fmt.Sprintf("%s: %s", field, msg))
		}
	}
	sort.Strings(missing)
	sort.Strings(invalid)

	var parts []string
	switch len(missing) {
	case 0:
	case 1:
		parts = append(parts, "Missing required field: "+missing[0])
	default:
		parts = append(parts, "Missing required fields: "+strings.Join(missing, ", "))
	}
	parts = append(parts, invalid...)
	return strings.Join(parts, "; ")
}

// Validator - обертка над go-playground/validator
type Validator struct {
	validate *validator.Validate
}

// New создает Validator с кастомными правилами
func New() *Validator {
	v := validator.New()

	// Имена полей в ошибках берутся из json-тега, затем из form-тега
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "form"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})

	registerCustomRules(v)

	return &Validator{
		validate: v,
	}
}

// Validate возвращает *ValidationError, если структура невалидна
func (v *Validator) Validate(i interface{}) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	customErrors := make(map[string]string)
	for _, fe := range validationErrors {
		customErrors[fe.Field()] = v.getErrorMessage(fe)
	}

	return &ValidationError{Errors: customErrors}
}

// Engine - для gin.binding (один и тот же набор правил)
func (v *Validator) Engine() *validator.Validate {
	return v.validate
}

const requiredMessage = "This field is required"

func (v *Validator) getErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return requiredMessage
	case "email":
		return "Must be a valid email address"
	case "min":
		if fe.Kind() == reflect.String || fe.Kind() == reflect.Slice || fe.Kind() == reflect.Map {
			return fmt.Sprintf("Must be at least %s characters long", fe.Param())
		}
		return fmt.Sprintf("Must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("Must be at most %s", fe.Param())
	case "gt":
		return fmt.Sprintf("Must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("Must be %s or greater", fe.Param())
	case "oneof":
		return fmt.Sprintf("Must be one of: %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	case TagDate:
		return "Must be a date in YYYY-MM-DD format"
	case TagMemberStatus, TagEquipmentStatus, TagEquipmentCondition, TagSubscriptionStatus, TagSex, TagTxCategory:
		return fmt.Sprintf("Must be one of: %s", strings.Join(allowedValues[fe.Tag()], ", "))
	default:
		return fmt.Sprintf("Invalid value (failed on '%s' tag)", fe.Tag())
	}
}
