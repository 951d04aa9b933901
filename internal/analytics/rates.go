package analytics

import (
	"math"
	"sort"
	"time"

	"gearguard/internal/entities"
)

const dateLayout = "2006-01-02"

// Percentage = 100*count/total с одним знаком после запятой, 0 при пустом total.
func Percentage(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(count)/float64(total)*1000) / 10
}

// CompletionRate - доля заявок в закрытых стадиях, целые проценты.
func CompletionRate(snap entities.Snapshot) int {
	total := len(snap.Requests)
	if total == 0 {
		return 0
	}
	closed := 0
	for _, r := range snap.Requests {
		if snap.IsClosed(r) {
			closed++
		}
	}
	return int(math.Round(float64(closed) / float64(total) * 100))
}

func AverageHealth(equipment []entities.Equipment) int {
	if len(equipment) == 0 {
		return 0
	}
	sum := 0
	for _, e := range equipment {
		sum += e.HealthPercentage
	}
	return int(math.Round(float64(sum) / float64(len(equipment))))
}

// IsOverdue: плановая дата раньше сегодняшней, стадия не закрыта. Сравнение по дням.
func IsOverdue(snap entities.Snapshot, r entities.MaintenanceRequest, today time.Time) bool {
	if r.ScheduledDate == nil || snap.IsClosed(r) {
		return false
	}
	scheduled, err := time.Parse(dateLayout, *r.ScheduledDate)
	if err != nil {
		return false
	}
	return scheduled.Before(truncateDay(today))
}

func CountOverdue(snap entities.Snapshot, today time.Time) int {
	n := 0
	for _, r := range snap.Requests {
		if IsOverdue(snap, r, today) {
			n++
		}
	}
	return n
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// VisibleRequests - заявки, которые роль видит в списках: конечный пользователь только свои.
func VisibleRequests(role entities.Role, userID uint64, requests []entities.MaintenanceRequest) []entities.MaintenanceRequest {
	out := make([]entities.MaintenanceRequest, 0, len(requests))
	for _, r := range requests {
		if role == entities.RoleEndUser && r.CreatedByUserID != userID {
			continue
		}
		out = append(out, r)
	}
	return out
}

// RecentRequests - последние limit заявок по CreatedAt с учётом роли.
func RecentRequests(role entities.Role, userID uint64, requests []entities.MaintenanceRequest, limit int) []entities.MaintenanceRequest {
	visible := VisibleRequests(role, userID, requests)
	sort.SliceStable(visible, func(i, j int) bool {
		return visible[i].CreatedAt.After(visible[j].CreatedAt)
	})
	if limit >= 0 && len(visible) > limit {
		visible = visible[:limit]
	}
	return visible
}

// NeedsAttention - оборудование с худшим здоровьем, не больше limit штук.
func NeedsAttention(equipment []entities.Equipment, limit int) []entities.Equipment {
	sorted := make([]entities.Equipment, len(equipment))
	copy(sorted, equipment)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].HealthPercentage < sorted[j].HealthPercentage
	})
	if limit >= 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}
