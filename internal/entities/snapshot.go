package entities

// Snapshot - согласованная копия всех коллекций доменного репозитория.
type Snapshot struct {
	Equipment   []Equipment          `json:"equipment"`
	Requests    []MaintenanceRequest `json:"requests"`
	Stages      []MaintenanceStage   `json:"stages"`
	Teams       []MaintenanceTeam    `json:"teams"`
	Categories  []EquipmentCategory  `json:"categories"`
	WorkCenters []WorkCenter         `json:"workCenters"`
}

// StageByID возвращает стадию и признак того, что ссылка разрешилась.
func (s Snapshot) StageByID(id uint64) (MaintenanceStage, bool) {
	for _, st := range s.Stages {
		if st.ID == id {
			return st, true
		}
	}
	return MaintenanceStage{}, false
}

func (s Snapshot) EquipmentByID(id uint64) (Equipment, bool) {
	for _, e := range s.Equipment {
		if e.ID == id {
			return e, true
		}
	}
	return Equipment{}, false
}

// IsClosed - заявка в закрытой стадии. Осиротевшая заявка закрытой не считается.
func (s Snapshot) IsClosed(r MaintenanceRequest) bool {
	st, ok := s.StageByID(r.StageID)
	return ok && st.IsClosed
}
