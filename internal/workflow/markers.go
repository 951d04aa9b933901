package workflow

import "gearguard/internal/entities"

type Marker string

const (
	MarkerNormal     Marker = "normal"
	MarkerEmphasized Marker = "emphasized"
)

// KanbanMarker - визуальная пометка карточки, от стадии не зависит.
func KanbanMarker(state entities.KanbanState) Marker {
	if state == entities.KanbanBlocked {
		return MarkerEmphasized
	}
	return MarkerNormal
}

// PriorityBadge - цвет бейджа приоритета.
func PriorityBadge(p entities.Priority) string {
	switch p {
	case entities.PriorityCritical:
		return "red"
	case entities.PriorityHigh:
		return "orange"
	case entities.PriorityMedium:
		return "yellow"
	}
	return "gray"
}
