package entities

type EquipmentCategory struct {
	ID                uint64  `json:"id"`
	Name              string  `json:"name"`
	ResponsibleUserID *uint64 `json:"responsibleUserId,omitempty"`
	CompanyID         uint64  `json:"companyId"`
	Note              *string `json:"note,omitempty"`
}

type WorkCenter struct {
	ID        uint64 `json:"id"`
	Name      string `json:"name"`
	CompanyID uint64 `json:"companyId"`
}

// Справочники пока не хранятся на сервере и заполняются значениями по умолчанию.

func DefaultCategories() []EquipmentCategory {
	return []EquipmentCategory{
		{ID: 1, Name: "Computers", CompanyID: 1},
		{ID: 2, Name: "Monitors", CompanyID: 1},
		{ID: 3, Name: "Furniture", CompanyID: 1},
		{ID: 4, Name: "Tools", CompanyID: 1},
	}
}

func DefaultWorkCenters() []WorkCenter {
	return []WorkCenter{{ID: 1, Name: "Main Workshop", CompanyID: 1}}
}
