package analytics

import (
	"fmt"
	"time"

	"gearguard/internal/entities"
)

// Stat - карточка на дашборде.
type Stat struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Value       int    `json:"value"`
	Total       int    `json:"total"`
	Color       string `json:"color"`
	Description string `json:"description"`
}

// OpenRequests - заявки, чья стадия известна и не закрыта.
func OpenRequests(snap entities.Snapshot) []entities.MaintenanceRequest {
	out := make([]entities.MaintenanceRequest, 0, len(snap.Requests))
	for _, r := range snap.Requests {
		st, ok := snap.StageByID(r.StageID)
		if ok && !st.IsClosed {
			out = append(out, r)
		}
	}
	return out
}

// Workload - заявки, назначенные пользователю и не закрытые.
// В отличие от OpenRequests сюда входят и осиротевшие заявки.
func Workload(snap entities.Snapshot, userID uint64) int {
	n := 0
	for _, r := range snap.Requests {
		if r.TechnicianUserID != nil && *r.TechnicianUserID == userID && !snap.IsClosed(r) {
			n++
		}
	}
	return n
}

func CreatedBy(requests []entities.MaintenanceRequest, userID uint64) int {
	n := 0
	for _, r := range requests {
		if r.CreatedByUserID == userID {
			n++
		}
	}
	return n
}

// RoleStats собирает набор карточек для роли. Результат зависит только от аргументов.
func (p *HealthPolicy) RoleStats(role entities.Role, userID uint64, snap entities.Snapshot, today time.Time) []Stat {
	if role == entities.RoleEndUser {
		mine := CreatedBy(snap.Requests, userID)
		return []Stat{{
			Key:         "my_requests",
			Name:        "My Requests",
			Value:       mine,
			Total:       mine,
			Color:       "blue",
			Description: "Created by me",
		}}
	}

	open := len(OpenRequests(snap))
	openStat := Stat{
		Key:         "open_requests",
		Name:        "Open Requests",
		Value:       open,
		Total:       len(snap.Requests),
		Color:       "blue",
		Description: fmt.Sprintf("%d Overdue", CountOverdue(snap, today)),
	}

	if role == entities.RoleMaintenanceStaff {
		return []Stat{openStat, {
			Key:         "my_workload",
			Name:        "My Workload",
			Value:       Workload(snap, userID),
			Total:       open,
			Color:       "yellow",
			Description: "Assigned to me",
		}}
	}

	critical, healthy := 0, 0
	for _, e := range snap.Equipment {
		switch p.Bucket(e.HealthPercentage) {
		case BucketCritical:
			critical++
		case BucketHealthy:
			healthy++
		}
	}
	return []Stat{
		{
			Key:         "critical_equipment",
			Name:        "Critical Equipment",
			Value:       critical,
			Total:       len(snap.Equipment),
			Color:       "red",
			Description: fmt.Sprintf("Health < %d%%", p.criticalBelow),
		},
		openStat,
		{
			Key:         "healthy_equipment",
			Name:        "Healthy Equipment",
			Value:       healthy,
			Total:       len(snap.Equipment),
			Color:       "green",
			Description: fmt.Sprintf("Health ≥ %d%%", p.healthyFrom),
		},
	}
}
