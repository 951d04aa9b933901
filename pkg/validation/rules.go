package validation

import (
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"

	"gearguard/internal/entities"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// registerRules регистрирует теги, которые мы используем в struct tags
func registerRules(v *validator.Validate) error {
	rules := map[string]validator.Func{
		"kanban_state":     isKanbanState,
		"priority":         isPriority,
		"maintenance_type": isMaintenanceType,
		"ymd_date":         isYMDDate,
		"ym_month":         isYMMonth,
		"custom_email":     isGoodEmailFormat,
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}

func isGoodEmailFormat(fl validator.FieldLevel) bool {
	return emailRegex.MatchString(fl.Field().String())
}

func isKanbanState(fl validator.FieldLevel) bool {
	switch entities.KanbanState(fl.Field().String()) {
	case entities.KanbanNormal, entities.KanbanBlocked, entities.KanbanDone:
		return true
	}
	return false
}

func isPriority(fl validator.FieldLevel) bool {
	switch entities.Priority(fl.Field().String()) {
	case entities.PriorityLow, entities.PriorityMedium, entities.PriorityHigh, entities.PriorityCritical:
		return true
	}
	return false
}

func isMaintenanceType(fl validator.FieldLevel) bool {
	switch entities.MaintenanceType(fl.Field().String()) {
	case entities.MaintenanceCorrective, entities.MaintenancePreventive:
		return true
	}
	return false
}

// isYMDDate - дата вида 2024-05-31
func isYMDDate(fl validator.FieldLevel) bool {
	_, err := time.Parse("2006-01-02", fl.Field().String())
	return err == nil
}

// isYMMonth - месяц вида 2024-05
func isYMMonth(fl validator.FieldLevel) bool {
	_, err := time.Parse("2006-01", fl.Field().String())
	return err == nil
}
