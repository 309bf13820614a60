package validator

import (
	"log"

	"gym_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

const (
	TagDate               = "date"
	TagMemberStatus       = "member-status"
	TagEquipmentStatus    = "equipment-status"
	TagEquipmentCondition = "equipment-condition"
	TagSubscriptionStatus = "subscription-status"
	TagSex                = "sex"
	TagTxCategory         = "tx-category"
)

// allowedValues - допустимые значения для enum-правил (используются и в сообщениях)
var allowedValues = map[string][]string{
	TagMemberStatus: {
		string(models.MemberStatusActive),
		string(models.MemberStatusInactive),
	},
	TagEquipmentStatus: {
		string(models.EquipmentStatusAvailable),
		string(models.EquipmentStatusInUse),
		string(models.EquipmentStatusMaintenance),
	},
	TagEquipmentCondition: {
		string(models.EquipmentConditionExcellent),
		string(models.EquipmentConditionGood),
		string(models.EquipmentConditionFair),
		string(models.EquipmentConditionPoor),
	},
	TagSubscriptionStatus: {
		string(models.SubscriptionStatusActive),
		string(models.SubscriptionStatusExpired),
		string(models.SubscriptionStatusCancelled),
	},
	TagSex: {"Male", "Female", "Other"},
	TagTxCategory: {
		string(models.TransactionCategoryIncome),
		string(models.TransactionCategoryExpense),
	},
}

// AllowedValues отдает список значений для enum-тега (для патчей и шаблонов)
func AllowedValues(tag string) []string {
	return allowedValues[tag]
}

// IsAllowed проверяет значение enum-тега. Пустое значение допустимо,
// за обязательность отвечает 'required'.
func IsAllowed(tag, value string) bool {
	if value == "" {
		return true
	}
	for _, v := range allowedValues[tag] {
		if v == value {
			return true
		}
	}
	return false
}

func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister(TagDate, validateDate)

	for tag := range allowedValues {
		tag := tag
		mustRegister(tag, func(fl validator.FieldLevel) bool {
			return IsAllowed(tag, fl.Field().String())
		})
	}
}

func validateDate(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	_, err := models.ParseDate(value)
	return err == nil
}
