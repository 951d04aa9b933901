package entities

// MaintenanceStage - шаг workflow. С точки зрения дашборда только для чтения.
type MaintenanceStage struct {
	ID        uint64 `json:"id"`
	Name      string `json:"name"`
	Sequence  int    `json:"sequence"`
	IsScrap   bool   `json:"isScrap"`
	IsClosed  bool   `json:"isClosed"`
	CompanyID uint64 `json:"companyId"`
}

// DefaultStages - запасной набор на случай, если /stages недоступен.
func DefaultStages() []MaintenanceStage {
	return []MaintenanceStage{
		{ID: 1, Name: "New Request", Sequence: 10, CompanyID: 1},
		{ID: 2, Name: "In Progress", Sequence: 20, CompanyID: 1},
		{ID: 3, Name: "Repaired", Sequence: 30, IsClosed: true, CompanyID: 1},
		{ID: 4, Name: "Scrap", Sequence: 100, IsScrap: true, IsClosed: true, CompanyID: 1},
	}
}
