package authz

import (
	"gearguard/internal/entities"
)

type Gatekeeper struct{}

func NewGatekeeper() *Gatekeeper {
	return &Gatekeeper{}
}

// Can проверяет разрешение роли, а для заявок ещё и состояние самой заявки.
func (g *Gatekeeper) Can(actor *entities.User, permission string, target interface{}) bool {
	if actor == nil {
		return false
	}
	ctx := NewContext(actor)

	// Этап 1: базовое разрешение
	if !ctx.HasPermission(permission) {
		return false
	}

	// Этап 2: проверка цели
	switch t := target.(type) {
	case *entities.MaintenanceRequest:
		return canAccessRequest(permission, t)
	case entities.MaintenanceRequest:
		return canAccessRequest(permission, &t)
	}
	return true
}

func canAccessRequest(permission string, r *entities.MaintenanceRequest) bool {
	if r == nil {
		return false
	}
	if permission == RequestAccept {
		// принять можно только свободную заявку
		return r.TechnicianUserID == nil
	}
	return true
}
