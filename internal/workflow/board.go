package workflow

import (
	"gearguard/internal/entities"
)

// Column - колонка доски: стадия и её заявки в исходном порядке коллекции.
type Column struct {
	Stage    entities.MaintenanceStage     `json:"stage"`
	Requests []entities.MaintenanceRequest `json:"requests"`
}

// Board - результат группировки. Orphaned - заявки без известной стадии,
// они не попадают ни в одну колонку.
type Board struct {
	Columns  []Column                      `json:"columns"`
	Orphaned []entities.MaintenanceRequest `json:"orphaned"`
}

// Group раскладывает заявки по стадиям, колонки идут в порядке Sequence.
func Group(requests []entities.MaintenanceRequest, stages []entities.MaintenanceStage) Board {
	sorted := SortStages(stages)
	index := make(map[uint64]int, len(sorted))
	board := Board{
		Columns:  make([]Column, len(sorted)),
		Orphaned: []entities.MaintenanceRequest{},
	}
	for i, st := range sorted {
		board.Columns[i] = Column{Stage: st, Requests: []entities.MaintenanceRequest{}}
		// при дублирующихся ID выигрывает первая стадия
		if _, dup := index[st.ID]; !dup {
			index[st.ID] = i
		}
	}
	for _, r := range requests {
		i, ok := index[r.StageID]
		if !ok {
			board.Orphaned = append(board.Orphaned, r)
			continue
		}
		board.Columns[i].Requests = append(board.Columns[i].Requests, r)
	}
	return board
}

// Drop - итог перетаскивания карточки. Destination == nil - перетаскивание отменено.
type Drop struct {
	RequestID   uint64
	Destination *uint64
}

// Transition превращает Drop в патч заявки. ok == false - вызывать обновление не нужно.
// Перенос в ту же колонку всё равно даёт патч.
func Transition(d Drop) (entities.RequestPatch, bool) {
	if d.Destination == nil {
		return entities.RequestPatch{}, false
	}
	stageID := *d.Destination
	return entities.RequestPatch{StageID: &stageID}, true
}

// AcceptPatch назначает исполнителя и переводит заявку в стадию "в работе".
func AcceptPatch(stages []entities.MaintenanceStage, technicianID uint64) entities.RequestPatch {
	stageID := AcceptStageID(stages)
	return entities.RequestPatch{StageID: &stageID, TechnicianUserID: &technicianID}
}

// CanAccept - принять можно только заявку без исполнителя.
func CanAccept(r entities.MaintenanceRequest) bool {
	return r.TechnicianUserID == nil
}
