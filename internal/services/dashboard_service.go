package services

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"gearguard/internal/analytics"
	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/internal/integrations"
	"gearguard/internal/repositories"
	apperrors "gearguard/pkg/errors"
)

// RecentRequestsLimit - сколько последних заявок показывает дашборд.
const RecentRequestsLimit = 5

type DashboardServiceInterface interface {
	GetDashboard(ctx context.Context, user entities.User) (*dto.DashboardDTO, error)
	ListRequests(ctx context.Context, user entities.User) []dto.RequestDTO
}

type DashboardService struct {
	domain repositories.DomainRepositoryInterface
	api    integrations.MaintenanceAPI
	policy *analytics.HealthPolicy
	logger *zap.Logger
}

func NewDashboardService(domain repositories.DomainRepositoryInterface, api integrations.MaintenanceAPI, policy *analytics.HealthPolicy, logger *zap.Logger) *DashboardService {
	return &DashboardService{domain: domain, api: api, policy: policy, logger: logger}
}

func (s *DashboardService) Policy() *analytics.HealthPolicy { return s.policy }

func (s *DashboardService) GetDashboard(ctx context.Context, user entities.User) (*dto.DashboardDTO, error) {
	snap := s.domain.Snapshot()
	today := timeNow()

	result := &dto.DashboardDTO{
		Role:           string(user.Role),
		Stats:          s.policy.RoleStats(user.Role, user.ID, snap, today),
		RecentRequests: requestDTOs(snap, analytics.RecentRequests(user.Role, user.ID, snap.Requests, RecentRequestsLimit), today),
		Loading:        s.domain.IsLoading(),
	}

	// серверные счётчики необязательны, дашборд строится и без них
	if s.api != nil {
		remote, err := s.api.DashboardStats(ctx)
		switch {
		case err == nil:
			result.Remote = &dto.RemoteStatsDTO{
				TotalOpenRequests: remote.TotalOpenRequests,
				CriticalEquipment: remote.CriticalEquipment,
				OverdueTasks:      remote.OverdueTasks,
				MyPendingTasks:    remote.MyPendingTasks,
			}
		case errors.Is(err, apperrors.ErrUnauthorized):
			return nil, err
		default:
			s.logger.Warn("Dashboard: /dashboard/stats недоступен", zap.Error(err))
		}
	}
	return result, nil
}

// ListRequests - заявки, видимые роли: конечный пользователь видит только свои.
func (s *DashboardService) ListRequests(ctx context.Context, user entities.User) []dto.RequestDTO {
	snap := s.domain.Snapshot()
	return requestDTOs(snap, analytics.VisibleRequests(user.Role, user.ID, snap.Requests), timeNow())
}
