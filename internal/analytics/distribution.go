package analytics

import (
	"strconv"

	"gearguard/internal/entities"
	"gearguard/internal/workflow"
)

// UnknownKey - корзина для значений, которых нет в справочнике.
const UnknownKey = "unknown"

// Share - одна строка распределения.
type Share struct {
	Key        string  `json:"key"`
	Label      string  `json:"label"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

func fillPercentages(shares []Share, total int) []Share {
	for i := range shares {
		shares[i].Percentage = Percentage(shares[i].Count, total)
	}
	return shares
}

// ByStage - распределение заявок по стадиям в порядке Sequence.
// Заявки с неизвестной стадией попадают в корзину "Unknown", если такие есть.
func ByStage(requests []entities.MaintenanceRequest, stages []entities.MaintenanceStage) []Share {
	sorted := workflow.SortStages(stages)
	index := make(map[uint64]int, len(sorted))
	shares := make([]Share, 0, len(sorted)+1)
	for _, st := range sorted {
		if _, dup := index[st.ID]; dup {
			continue
		}
		index[st.ID] = len(shares)
		shares = append(shares, Share{Key: strconv.FormatUint(st.ID, 10), Label: st.Name})
	}

	orphaned := 0
	for _, r := range requests {
		if i, ok := index[r.StageID]; ok {
			shares[i].Count++
			continue
		}
		orphaned++
	}
	if orphaned > 0 {
		shares = append(shares, Share{Key: UnknownKey, Label: "Unknown", Count: orphaned})
	}
	return fillPercentages(shares, len(requests))
}

var priorityOrder = []struct {
	key   entities.Priority
	label string
}{
	{entities.PriorityCritical, "Critical"},
	{entities.PriorityHigh, "High"},
	{entities.PriorityMedium, "Medium"},
	{entities.PriorityLow, "Low"},
}

func ByPriority(requests []entities.MaintenanceRequest) []Share {
	shares := make([]Share, len(priorityOrder))
	index := make(map[entities.Priority]int, len(priorityOrder))
	for i, p := range priorityOrder {
		shares[i] = Share{Key: string(p.key), Label: p.label}
		index[p.key] = i
	}
	unknown := 0
	for _, r := range requests {
		if i, ok := index[r.Priority]; ok {
			shares[i].Count++
			continue
		}
		unknown++
	}
	if unknown > 0 {
		shares = append(shares, Share{Key: UnknownKey, Label: "Unknown", Count: unknown})
	}
	return fillPercentages(shares, len(requests))
}

func ByType(requests []entities.MaintenanceRequest) []Share {
	shares := []Share{
		{Key: string(entities.MaintenancePreventive), Label: "Preventive"},
		{Key: string(entities.MaintenanceCorrective), Label: "Corrective"},
	}
	unknown := 0
	for _, r := range requests {
		switch r.MaintenanceType {
		case entities.MaintenancePreventive:
			shares[0].Count++
		case entities.MaintenanceCorrective:
			shares[1].Count++
		default:
			unknown++
		}
	}
	if unknown > 0 {
		shares = append(shares, Share{Key: UnknownKey, Label: "Unknown", Count: unknown})
	}
	return fillPercentages(shares, len(requests))
}

// HealthDistribution - оборудование по корзинам политики здоровья.
// Значения вне [0,100] всё равно попадают в крайние корзины, так что сумма всегда 100.
func (p *HealthPolicy) HealthDistribution(equipment []entities.Equipment) []Share {
	shares := []Share{
		{Key: string(BucketCritical), Label: "Critical (<" + strconv.Itoa(p.criticalBelow) + "%)"},
		{Key: string(BucketWarning), Label: "Warning (" + strconv.Itoa(p.criticalBelow) + "-" + strconv.Itoa(p.healthyFrom-1) + "%)"},
		{Key: string(BucketHealthy), Label: "Healthy (>=" + strconv.Itoa(p.healthyFrom) + "%)"},
	}
	for _, e := range equipment {
		switch p.Bucket(e.HealthPercentage) {
		case BucketCritical:
			shares[0].Count++
		case BucketWarning:
			shares[1].Count++
		default:
			shares[2].Count++
		}
	}
	return fillPercentages(shares, len(equipment))
}
