package entities

// Equipment - единица оборудования в том виде, в котором её видит дашборд.
type Equipment struct {
	ID                uint64  `json:"id"`
	Name              string  `json:"name"`
	SerialNumber      *string `json:"serialNumber,omitempty"`
	CategoryID        uint64  `json:"categoryId"`
	MaintenanceTeamID *uint64 `json:"maintenanceTeamId,omitempty"`
	TechnicianUserID  *uint64 `json:"technicianUserId,omitempty"`
	CompanyID         uint64  `json:"companyId"`
	HealthPercentage  int     `json:"healthPercentage"`
	Location          *string `json:"location,omitempty"`

	// Unsynced - изменение применено только локально, сервер его не подтвердил.
	Unsynced bool `json:"unsynced"`
}

// EquipmentPatch - частичное обновление, nil-поля не трогаются.
type EquipmentPatch struct {
	Name              *string
	SerialNumber      *string
	CategoryID        *uint64
	MaintenanceTeamID *uint64
	TechnicianUserID  *uint64
	Location          *string
	HealthPercentage  *int
}

func (p EquipmentPatch) Apply(e Equipment) Equipment {
	if p.Name != nil {
		e.Name = *p.Name
	}
	if p.SerialNumber != nil {
		e.SerialNumber = p.SerialNumber
	}
	if p.CategoryID != nil {
		e.CategoryID = *p.CategoryID
	}
	if p.MaintenanceTeamID != nil {
		e.MaintenanceTeamID = p.MaintenanceTeamID
	}
	if p.TechnicianUserID != nil {
		e.TechnicianUserID = p.TechnicianUserID
	}
	if p.Location != nil {
		e.Location = p.Location
	}
	if p.HealthPercentage != nil {
		e.HealthPercentage = *p.HealthPercentage
	}
	return e
}
