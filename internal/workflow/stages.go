// Package workflow содержит чистые правила канбан-доски: порядок стадий,
// группировку заявок и вычисление целевой стадии для действий над заявкой.
package workflow

import (
	"sort"
	"strings"

	"gearguard/internal/entities"
)

// FallbackAcceptStageID - стадия "в работе", когда в наборе меньше двух стадий.
const FallbackAcceptStageID uint64 = 2

// SortStages возвращает копию, упорядоченную по Sequence. Порядок равных сохраняется.
func SortStages(stages []entities.MaintenanceStage) []entities.MaintenanceStage {
	sorted := make([]entities.MaintenanceStage, len(stages))
	copy(sorted, stages)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Sequence < sorted[j].Sequence
	})
	return sorted
}

// FirstStageID - стадия для новых заявок: первая по порядку, иначе 1.
func FirstStageID(stages []entities.MaintenanceStage) uint64 {
	sorted := SortStages(stages)
	if len(sorted) == 0 {
		return 1
	}
	return sorted[0].ID
}

// AcceptStageID выбирает стадию для "Принять в работу":
// первая стадия со словом "progress" в имени, затем вторая по порядку, затем литерал 2.
func AcceptStageID(stages []entities.MaintenanceStage) uint64 {
	sorted := SortStages(stages)
	for _, st := range sorted {
		if strings.Contains(strings.ToLower(st.Name), "progress") {
			return st.ID
		}
	}
	if len(sorted) >= 2 {
		return sorted[1].ID
	}
	return FallbackAcceptStageID
}
