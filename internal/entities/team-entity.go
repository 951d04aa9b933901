package entities

type MaintenanceTeam struct {
	ID        uint64 `json:"id"`
	Name      string `json:"name"`
	CompanyID uint64 `json:"companyId"`

	Unsynced bool `json:"unsynced"`
}

type TeamPatch struct {
	Name      *string
	CompanyID *uint64
}

func (p TeamPatch) Apply(t MaintenanceTeam) MaintenanceTeam {
	if p.Name != nil {
		t.Name = *p.Name
	}
	if p.CompanyID != nil {
		t.CompanyID = *p.CompanyID
	}
	return t
}
