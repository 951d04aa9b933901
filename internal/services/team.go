package services

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/internal/repositories"
	apperrors "gearguard/pkg/errors"
)

const defaultCompanyID uint64 = 1

type TeamServiceInterface interface {
	List(ctx context.Context) []dto.TeamDTO
	Create(ctx context.Context, payload dto.CreateTeamDTO) (*dto.TeamDTO, error)
	Update(ctx context.Context, id uint64, payload dto.UpdateTeamDTO) (*dto.TeamDTO, error)
	Delete(ctx context.Context, id uint64) error
}

type TeamService struct {
	domain repositories.DomainRepositoryInterface
	logger *zap.Logger
}

func NewTeamService(domain repositories.DomainRepositoryInterface, logger *zap.Logger) *TeamService {
	return &TeamService{domain: domain, logger: logger}
}

func teamDTO(t entities.MaintenanceTeam, equipment []entities.Equipment) dto.TeamDTO {
	count := 0
	for _, e := range equipment {
		if e.MaintenanceTeamID != nil && *e.MaintenanceTeamID == t.ID {
			count++
		}
	}
	return dto.TeamDTO{ID: t.ID, Name: t.Name, CompanyID: t.CompanyID, EquipmentCount: count, Unsynced: t.Unsynced}
}

func (s *TeamService) List(ctx context.Context) []dto.TeamDTO {
	snap := s.domain.Snapshot()
	out := make([]dto.TeamDTO, 0, len(snap.Teams))
	for _, t := range snap.Teams {
		out = append(out, teamDTO(t, snap.Equipment))
	}
	return out
}

func (s *TeamService) Create(ctx context.Context, payload dto.CreateTeamDTO) (*dto.TeamDTO, error) {
	name := strings.TrimSpace(payload.Name)
	if name == "" {
		return nil, apperrors.NewInvalidInputError("Team name is required")
	}
	team, err := s.domain.AddTeam(ctx, entities.MaintenanceTeam{Name: name, CompanyID: defaultCompanyID})
	if err != nil {
		return nil, err
	}
	result := teamDTO(team, s.domain.Snapshot().Equipment)
	return &result, nil
}

func (s *TeamService) Update(ctx context.Context, id uint64, payload dto.UpdateTeamDTO) (*dto.TeamDTO, error) {
	patch := entities.TeamPatch{}
	if payload.Name != nil {
		name := strings.TrimSpace(*payload.Name)
		if name == "" {
			return nil, apperrors.NewInvalidInputError("Team name is required")
		}
		patch.Name = &name
	}
	team, err := s.domain.UpdateTeam(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	result := teamDTO(team, s.domain.Snapshot().Equipment)
	return &result, nil
}

func (s *TeamService) Delete(ctx context.Context, id uint64) error {
	return s.domain.DeleteTeam(ctx, id)
}
