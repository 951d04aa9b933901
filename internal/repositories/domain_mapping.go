package repositories

import (
	"strings"
	"time"

	"gearguard/internal/entities"
	"gearguard/internal/integrations/dto"
)

// Значения по умолчанию для полей, которые API не присылает.
const (
	defaultCategoryID uint64 = 1
	defaultCompanyID  uint64 = 1
	defaultHealth            = 100
)

var remoteTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseRemoteTime(raw string) (time.Time, bool) {
	for _, layout := range remoteTimeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// datePart обрезает ISO-строку до YYYY-MM-DD.
func datePart(raw string) string {
	if i := strings.IndexByte(raw, 'T'); i >= 0 {
		return raw[:i]
	}
	if len(raw) > 10 && raw[10] == ' ' {
		return raw[:10]
	}
	return raw
}

func clampHealth(h int) int {
	if h < 0 {
		return 0
	}
	if h > 100 {
		return 100
	}
	return h
}

func uint64Ptr(v uint64) *uint64 { return &v }

func stringPtr(v string) *string { return &v }

func equipmentFromDTO(d dto.EquipmentDTO) entities.Equipment {
	e := entities.Equipment{
		ID:         d.ID,
		Name:       d.Name,
		CategoryID: defaultCategoryID,
		CompanyID:  defaultCompanyID,
		// отсутствующее здоровье считается полным, а присланный 0 остаётся нулём
		HealthPercentage: defaultHealth,
	}
	if d.SerialNumber.Valid {
		e.SerialNumber = stringPtr(d.SerialNumber.String)
	}
	if d.Location.Valid {
		e.Location = stringPtr(d.Location.String)
	}
	if d.CategoryID.Valid && d.CategoryID.Uint64 != 0 {
		e.CategoryID = d.CategoryID.Uint64
	}
	if d.CompanyID.Valid && d.CompanyID.Uint64 != 0 {
		e.CompanyID = d.CompanyID.Uint64
	}
	if d.MaintenanceTeamID.Valid {
		e.MaintenanceTeamID = uint64Ptr(d.MaintenanceTeamID.Uint64)
	}
	switch {
	case d.TechnicianID.Valid:
		e.TechnicianUserID = uint64Ptr(d.TechnicianID.Uint64)
	case d.TechnicianUserID.Valid:
		e.TechnicianUserID = uint64Ptr(d.TechnicianUserID.Uint64)
	}
	switch {
	case d.Health.Valid:
		e.HealthPercentage = clampHealth(d.Health.Int)
	case d.HealthPercentage.Valid:
		e.HealthPercentage = clampHealth(d.HealthPercentage.Int)
	}
	return e
}

func requestFromDTO(d dto.MaintenanceRequestDTO) entities.MaintenanceRequest {
	r := entities.MaintenanceRequest{
		ID:              d.ID,
		Subject:         d.Subject,
		MaintenanceType: entities.MaintenanceCorrective,
		KanbanState:     entities.KanbanNormal,
		Priority:        entities.PriorityLow,
		CompanyID:       defaultCompanyID,
	}
	if d.Description.Valid {
		r.Description = stringPtr(d.Description.String)
	}
	if d.Type.Valid && d.Type.String != "" {
		r.MaintenanceType = entities.MaintenanceType(d.Type.String)
	}
	if d.Priority.Valid && d.Priority.String != "" {
		r.Priority = entities.Priority(d.Priority.String)
	}
	if d.KanbanState.Valid && d.KanbanState.String != "" {
		r.KanbanState = entities.KanbanState(d.KanbanState.String)
	}
	if d.StageID.Valid {
		r.StageID = d.StageID.Uint64
	}
	if d.EquipmentID.Valid {
		r.EquipmentID = uint64Ptr(d.EquipmentID.Uint64)
	}
	if d.TechnicianID.Valid {
		r.TechnicianUserID = uint64Ptr(d.TechnicianID.Uint64)
	}
	if d.CreatedBy.Valid {
		r.CreatedByUserID = d.CreatedBy.Uint64
	}
	if d.MaintenanceTeamID.Valid {
		r.MaintenanceTeamID = uint64Ptr(d.MaintenanceTeamID.Uint64)
	}
	if d.CompanyID.Valid && d.CompanyID.Uint64 != 0 {
		r.CompanyID = d.CompanyID.Uint64
	}
	if d.DurationHours.Valid && d.DurationHours.Float64 > 0 {
		r.Duration = d.DurationHours.Float64
	}
	if d.ScheduledDate.Valid && d.ScheduledDate.String != "" {
		r.ScheduledDate = stringPtr(datePart(d.ScheduledDate.String))
	}
	if d.CreatedAt.Valid {
		r.RequestDate = datePart(d.CreatedAt.String)
		if t, ok := parseRemoteTime(d.CreatedAt.String); ok {
			r.CreatedAt = t
			r.UpdatedAt = t
		}
	}
	return r
}

func teamFromDTO(d dto.TeamDTO) entities.MaintenanceTeam {
	t := entities.MaintenanceTeam{ID: d.ID, Name: d.Name, CompanyID: defaultCompanyID}
	if d.CompanyID.Valid && d.CompanyID.Uint64 != 0 {
		t.CompanyID = d.CompanyID.Uint64
	}
	return t
}

// stageFromDTO: если API не прислал флаги закрытия, они берутся у стандартной
// стадии с тем же именем.
func stageFromDTO(d dto.StageDTO) entities.MaintenanceStage {
	s := entities.MaintenanceStage{ID: d.ID, Name: d.Name, CompanyID: defaultCompanyID}
	if d.Sequence.Valid {
		s.Sequence = d.Sequence.Int
	}
	if d.CompanyID.Valid && d.CompanyID.Uint64 != 0 {
		s.CompanyID = d.CompanyID.Uint64
	}
	var known *entities.MaintenanceStage
	for _, def := range entities.DefaultStages() {
		if strings.EqualFold(def.Name, d.Name) {
			def := def
			known = &def
			break
		}
	}
	switch {
	case d.IsClosed.Valid:
		s.IsClosed = d.IsClosed.Bool
	case known != nil:
		s.IsClosed = known.IsClosed
	}
	switch {
	case d.IsScrap.Valid:
		s.IsScrap = d.IsScrap.Bool
	case known != nil:
		s.IsScrap = known.IsScrap
	}
	return s
}

func equipmentPayload(e entities.Equipment) dto.EquipmentPayload {
	name, health := e.Name, e.HealthPercentage
	categoryID, companyID := e.CategoryID, e.CompanyID
	p := dto.EquipmentPayload{
		Name:              &name,
		SerialNumber:      e.SerialNumber,
		MaintenanceTeamID: e.MaintenanceTeamID,
		TechnicianUserID:  e.TechnicianUserID,
		Location:          e.Location,
		HealthPercentage:  &health,
	}
	if categoryID != 0 {
		p.CategoryID = &categoryID
	}
	if companyID != 0 {
		p.CompanyID = &companyID
	}
	return p
}

func equipmentPatchPayload(patch entities.EquipmentPatch) dto.EquipmentPayload {
	return dto.EquipmentPayload{
		Name:              patch.Name,
		SerialNumber:      patch.SerialNumber,
		CategoryID:        patch.CategoryID,
		MaintenanceTeamID: patch.MaintenanceTeamID,
		TechnicianUserID:  patch.TechnicianUserID,
		Location:          patch.Location,
		HealthPercentage:  patch.HealthPercentage,
	}
}

func requestCreatePayload(r entities.MaintenanceRequest) dto.CreateRequestPayload {
	p := dto.CreateRequestPayload{
		Subject:       r.Subject,
		Description:   r.Description,
		RequestType:   string(r.MaintenanceType),
		EquipmentID:   r.EquipmentID,
		Priority:      string(r.Priority),
		ScheduledDate: r.ScheduledDate,
	}
	if r.StageID != 0 {
		stageID := r.StageID
		p.StageID = &stageID
	}
	return p
}

func requestPatchPayload(patch entities.RequestPatch) dto.UpdateRequestPayload {
	p := dto.UpdateRequestPayload{
		StageID:          patch.StageID,
		TechnicianUserID: patch.TechnicianUserID,
	}
	if patch.Priority != nil {
		p.Priority = stringPtr(string(*patch.Priority))
	}
	if patch.KanbanState != nil {
		p.KanbanState = stringPtr(string(*patch.KanbanState))
	}
	return p
}

func teamPayload(t entities.MaintenanceTeam) dto.TeamPayload {
	name, companyID := t.Name, t.CompanyID
	p := dto.TeamPayload{Name: &name}
	if companyID != 0 {
		p.CompanyID = &companyID
	}
	return p
}

func teamPatchPayload(patch entities.TeamPatch) dto.TeamPayload {
	return dto.TeamPayload{Name: patch.Name, CompanyID: patch.CompanyID}
}
