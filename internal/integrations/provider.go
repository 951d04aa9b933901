package integrations

import (
	"context"

	"gearguard/internal/integrations/dto"
)

// MaintenanceAPI - всё, что шлюз умеет делать с удалённым REST API.
type MaintenanceAPI interface {
	Login(ctx context.Context, payload dto.LoginPayload) (*dto.AuthResponse, error)
	Signup(ctx context.Context, payload dto.SignupPayload) (*dto.AuthResponse, error)
	DashboardStats(ctx context.Context) (*dto.DashboardStatsDTO, error)

	ListRequests(ctx context.Context) ([]dto.MaintenanceRequestDTO, error)
	GetRequest(ctx context.Context, id uint64) (*dto.MaintenanceRequestDTO, error)
	CreateRequest(ctx context.Context, payload dto.CreateRequestPayload) (*dto.CreatedResponse, error)
	UpdateRequest(ctx context.Context, id uint64, payload dto.UpdateRequestPayload) error

	ListEquipment(ctx context.Context) ([]dto.EquipmentDTO, error)
	GetEquipment(ctx context.Context, id uint64) (*dto.EquipmentDTO, error)
	CreateEquipment(ctx context.Context, payload dto.EquipmentPayload) (*dto.CreatedResponse, error)
	UpdateEquipment(ctx context.Context, id uint64, payload dto.EquipmentPayload) error
	DeleteEquipment(ctx context.Context, id uint64) error

	ListTeams(ctx context.Context) ([]dto.TeamDTO, error)
	CreateTeam(ctx context.Context, payload dto.TeamPayload) (*dto.CreatedResponse, error)
	UpdateTeam(ctx context.Context, id uint64, payload dto.TeamPayload) error
	DeleteTeam(ctx context.Context, id uint64) error

	ListStages(ctx context.Context) ([]dto.StageDTO, error)
}

// TokenProvider отдаёт bearer-токен текущей сессии.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}
