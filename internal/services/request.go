package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/internal/repositories"
	"gearguard/internal/workflow"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/eventbus"
)

// ActivityListLimit - сколько записей журнала отдаётся по заявке.
const ActivityListLimit = 50

const defaultTeamID uint64 = 1

type RequestServiceInterface interface {
	Create(ctx context.Context, user entities.User, payload dto.CreateRequestDTO) (*dto.RequestDTO, error)
	Delete(ctx context.Context, user entities.User, id uint64) error
	Activities(ctx context.Context, id uint64) ([]dto.ActivityDTO, error)
}

type RequestService struct {
	domain     repositories.DomainRepositoryInterface
	activities repositories.ActivityRepositoryInterface
	bus        *eventbus.Bus
	logger     *zap.Logger
}

// NewRequestService: activities может быть nil, если журнал отключён.
func NewRequestService(domain repositories.DomainRepositoryInterface, activities repositories.ActivityRepositoryInterface, bus *eventbus.Bus, logger *zap.Logger) *RequestService {
	return &RequestService{domain: domain, activities: activities, bus: bus, logger: logger}
}

// newRequest собирает заявку с умолчаниями формы: первая стадия, команда 1, компания 1.
func newRequest(user entities.User, stages []entities.MaintenanceStage, subject string, description *string,
	mType entities.MaintenanceType, equipmentID *uint64, priority entities.Priority, scheduled *string) entities.MaintenanceRequest {
	now := timeNow()
	teamID := defaultTeamID
	return entities.MaintenanceRequest{
		Subject:           strings.TrimSpace(subject),
		Description:       description,
		MaintenanceType:   mType,
		EquipmentID:       equipmentID,
		StageID:           workflow.FirstStageID(stages),
		KanbanState:       entities.KanbanNormal,
		Priority:          priority,
		RequestDate:       now.Format(dateLayout),
		ScheduledDate:     scheduled,
		CreatedByUserID:   user.ID,
		MaintenanceTeamID: &teamID,
		CompanyID:         defaultCompanyID,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

func (s *RequestService) Create(ctx context.Context, user entities.User, payload dto.CreateRequestDTO) (*dto.RequestDTO, error) {
	if strings.TrimSpace(payload.Subject) == "" {
		return nil, apperrors.NewInvalidInputError("Subject is required")
	}
	mType := entities.MaintenanceType(payload.MaintenanceType)
	if mType == "" {
		mType = entities.MaintenanceCorrective
	}
	priority := entities.Priority(payload.Priority)
	if priority == "" {
		priority = entities.PriorityMedium
	}

	snap := s.domain.Snapshot()
	req := newRequest(user, snap.Stages, payload.Subject, payload.Description, mType, payload.EquipmentID, priority, payload.ScheduledDate)
	created, err := s.domain.AddRequest(ctx, req)
	if err != nil {
		return nil, err
	}
	recordActivity(ctx, s.bus, created.ID, user.ID, entities.ActivityCreated, fmt.Sprintf("Создана заявка «%s»", created.Subject))

	result := requestDTO(s.domain.Snapshot(), created, timeNow())
	return &result, nil
}

// Delete удаляет заявку только локально: у удалённого API нет такого метода.
func (s *RequestService) Delete(ctx context.Context, user entities.User, id uint64) error {
	if err := s.domain.DeleteRequest(ctx, id); err != nil {
		return err
	}
	recordActivity(ctx, s.bus, id, user.ID, entities.ActivityDeleted, "Заявка удалена")
	return nil
}

func (s *RequestService) Activities(ctx context.Context, id uint64) ([]dto.ActivityDTO, error) {
	if _, err := s.domain.FindRequest(id); err != nil {
		return nil, err
	}
	out := make([]dto.ActivityDTO, 0)
	if s.activities == nil {
		return out, nil
	}
	list, err := s.activities.ListByRequest(ctx, id, ActivityListLimit)
	if err != nil {
		return nil, fmt.Errorf("чтение журнала заявки %d: %w", id, err)
	}
	for _, a := range list {
		out = append(out, dto.ActivityDTO{
			ID:              a.ID,
			ActivityType:    a.ActivityType,
			Description:     a.Description,
			CreatedByUserID: a.CreatedByUserID,
			CreatedAt:       a.CreatedAt,
		})
	}
	return out, nil
}
