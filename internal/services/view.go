package services

import (
	"time"

	"gearguard/internal/analytics"
	"gearguard/internal/authz"
	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/internal/workflow"
)

// timeNow подменяется в тестах.
var timeNow = func() time.Time { return time.Now().UTC() }

// Подписи для ссылок, которые не разрешились.
const (
	unknownStage     = "Unknown"
	unknownEquipment = "N/A"
)

func requestDTO(snap entities.Snapshot, r entities.MaintenanceRequest, today time.Time) dto.RequestDTO {
	stageName := unknownStage
	if st, ok := snap.StageByID(r.StageID); ok {
		stageName = st.Name
	}
	equipmentName := unknownEquipment
	if r.EquipmentID != nil {
		if e, ok := snap.EquipmentByID(*r.EquipmentID); ok {
			equipmentName = e.Name
		}
	}
	return dto.RequestDTO{
		ID:               r.ID,
		Subject:          r.Subject,
		Description:      r.Description,
		MaintenanceType:  string(r.MaintenanceType),
		EquipmentID:      r.EquipmentID,
		EquipmentName:    equipmentName,
		StageID:          r.StageID,
		StageName:        stageName,
		KanbanState:      string(r.KanbanState),
		Marker:           string(workflow.KanbanMarker(r.KanbanState)),
		Priority:         string(r.Priority),
		PriorityBadge:    workflow.PriorityBadge(r.Priority),
		RequestDate:      r.RequestDate,
		ScheduledDate:    r.ScheduledDate,
		Overdue:          analytics.IsOverdue(snap, r, today),
		CreatedByUserID:  r.CreatedByUserID,
		TechnicianUserID: r.TechnicianUserID,
		CanAccept:        workflow.CanAccept(r),
		CreatedAt:        r.CreatedAt,
		Unsynced:         r.Unsynced,
	}
}

func requestDTOs(snap entities.Snapshot, requests []entities.MaintenanceRequest, today time.Time) []dto.RequestDTO {
	out := make([]dto.RequestDTO, 0, len(requests))
	for _, r := range requests {
		out = append(out, requestDTO(snap, r, today))
	}
	return out
}

func userDTO(u entities.User) dto.UserDTO {
	return dto.UserDTO{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      string(u.Role),
		RoleLabel: authz.RoleLabel(u.Role),
		CompanyID: u.CompanyID,
	}
}
