package services

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"gearguard/internal/analytics"
	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/internal/repositories"
	apperrors "gearguard/pkg/errors"
)

const (
	FilterAll      = "all"
	defaultHealth  = 100
	defaultCategID = uint64(1)
)

type EquipmentServiceInterface interface {
	List(ctx context.Context, filter string) dto.EquipmentListDTO
	Create(ctx context.Context, payload dto.CreateEquipmentDTO) (*dto.EquipmentDTO, error)
	Update(ctx context.Context, id uint64, payload dto.UpdateEquipmentDTO) (*dto.EquipmentDTO, error)
	Delete(ctx context.Context, id uint64) error
}

type EquipmentService struct {
	domain repositories.DomainRepositoryInterface
	policy *analytics.HealthPolicy
	logger *zap.Logger
}

func NewEquipmentService(domain repositories.DomainRepositoryInterface, policy *analytics.HealthPolicy, logger *zap.Logger) *EquipmentService {
	return &EquipmentService{domain: domain, policy: policy, logger: logger}
}

func (s *EquipmentService) Policy() *analytics.HealthPolicy { return s.policy }

func (s *EquipmentService) toDTO(e entities.Equipment, snap entities.Snapshot) dto.EquipmentDTO {
	category := unknownEquipment
	for _, c := range snap.Categories {
		if c.ID == e.CategoryID {
			category = c.Name
			break
		}
	}
	team := unknownEquipment
	if e.MaintenanceTeamID != nil {
		for _, t := range snap.Teams {
			if t.ID == *e.MaintenanceTeamID {
				team = t.Name
				break
			}
		}
	}
	return dto.EquipmentDTO{
		ID:                e.ID,
		Name:              e.Name,
		SerialNumber:      e.SerialNumber,
		CategoryID:        e.CategoryID,
		CategoryName:      category,
		MaintenanceTeamID: e.MaintenanceTeamID,
		TeamName:          team,
		TechnicianUserID:  e.TechnicianUserID,
		CompanyID:         e.CompanyID,
		HealthPercentage:  e.HealthPercentage,
		HealthBucket:      string(s.policy.Bucket(e.HealthPercentage)),
		HealthLabel:       s.policy.StatusLabel(e.HealthPercentage),
		BarColor:          string(s.policy.BarColor(e.HealthPercentage)),
		Location:          e.Location,
		Unsynced:          e.Unsynced,
	}
}

// List применяет фильтр all/critical/healthy, пустой фильтр - all.
func (s *EquipmentService) List(ctx context.Context, filter string) dto.EquipmentListDTO {
	if filter == "" {
		filter = FilterAll
	}
	snap := s.domain.Snapshot()
	filtered := s.policy.FilterEquipment(snap.Equipment, filter)
	list := make([]dto.EquipmentDTO, 0, len(filtered))
	for _, e := range filtered {
		list = append(list, s.toDTO(e, snap))
	}
	return dto.EquipmentListDTO{Filter: filter, Total: len(snap.Equipment), List: list}
}

func (s *EquipmentService) Create(ctx context.Context, payload dto.CreateEquipmentDTO) (*dto.EquipmentDTO, error) {
	name := strings.TrimSpace(payload.Name)
	if name == "" {
		return nil, apperrors.NewInvalidInputError("Equipment name is required")
	}
	e := entities.Equipment{
		Name:              name,
		SerialNumber:      payload.SerialNumber,
		CategoryID:        payload.CategoryID,
		MaintenanceTeamID: payload.MaintenanceTeamID,
		TechnicianUserID:  payload.TechnicianUserID,
		CompanyID:         defaultCompanyID,
		HealthPercentage:  defaultHealth,
		Location:          payload.Location,
	}
	if e.CategoryID == 0 {
		e.CategoryID = defaultCategID
	}
	if payload.HealthPercentage != nil {
		e.HealthPercentage = *payload.HealthPercentage
	}

	created, err := s.domain.AddEquipment(ctx, e)
	if err != nil {
		return nil, err
	}
	result := s.toDTO(created, s.domain.Snapshot())
	return &result, nil
}

func (s *EquipmentService) Update(ctx context.Context, id uint64, payload dto.UpdateEquipmentDTO) (*dto.EquipmentDTO, error) {
	patch := entities.EquipmentPatch{
		SerialNumber:      payload.SerialNumber,
		CategoryID:        payload.CategoryID,
		MaintenanceTeamID: payload.MaintenanceTeamID,
		TechnicianUserID:  payload.TechnicianUserID,
		Location:          payload.Location,
		HealthPercentage:  payload.HealthPercentage,
	}
	if payload.Name != nil {
		name := strings.TrimSpace(*payload.Name)
		if name == "" {
			return nil, apperrors.NewInvalidInputError("Equipment name is required")
		}
		patch.Name = &name
	}

	updated, err := s.domain.UpdateEquipment(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	result := s.toDTO(updated, s.domain.Snapshot())
	return &result, nil
}

func (s *EquipmentService) Delete(ctx context.Context, id uint64) error {
	return s.domain.DeleteEquipment(ctx, id)
}
