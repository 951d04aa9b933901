package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/internal/repositories"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/eventbus"
)

const (
	dateLayout  = "2006-01-02"
	monthLayout = "2006-01"
)

type CalendarServiceInterface interface {
	Month(ctx context.Context, user entities.User, query dto.CalendarQueryDTO) (*dto.CalendarDTO, error)
	Schedule(ctx context.Context, user entities.User, payload dto.ScheduleDTO) (*dto.RequestDTO, error)
}

type CalendarService struct {
	domain repositories.DomainRepositoryInterface
	bus    *eventbus.Bus
	logger *zap.Logger
}

func NewCalendarService(domain repositories.DomainRepositoryInterface, bus *eventbus.Bus, logger *zap.Logger) *CalendarService {
	return &CalendarService{domain: domain, bus: bus, logger: logger}
}

// requestsOn - заявки с плановой датой date. Техник видит только назначенные ему.
func requestsOn(requests []entities.MaintenanceRequest, user entities.User, date string) []entities.MaintenanceRequest {
	out := make([]entities.MaintenanceRequest, 0)
	for _, r := range requests {
		if r.ScheduledDate == nil || *r.ScheduledDate != date {
			continue
		}
		if user.Role == entities.RoleMaintenanceStaff && (r.TechnicianUserID == nil || *r.TechnicianUserID != user.ID) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func (s *CalendarService) Month(ctx context.Context, user entities.User, query dto.CalendarQueryDTO) (*dto.CalendarDTO, error) {
	month, err := time.Parse(monthLayout, query.Month)
	if err != nil {
		return nil, apperrors.NewInvalidInputError("некорректный месяц: %s", query.Month)
	}
	snap := s.domain.Snapshot()
	today := timeNow()

	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := first.AddDate(0, 1, -1).Day()

	result := &dto.CalendarDTO{Month: query.Month, Days: make([]dto.CalendarDayDTO, 0, daysInMonth)}
	for day := 1; day <= daysInMonth; day++ {
		date := first.AddDate(0, 0, day-1).Format(dateLayout)
		onDay := requestsOn(snap.Requests, user, date)
		result.Days = append(result.Days, dto.CalendarDayDTO{
			Date:     date,
			Day:      day,
			Count:    len(onDay),
			Requests: requestDTOs(snap, onDay, today),
		})
	}

	if query.Date != "" {
		result.SelectedDate = query.Date
		result.Selected = requestDTOs(snap, requestsOn(snap.Requests, user, query.Date), today)
	}
	return result, nil
}

// Schedule создаёт плановую заявку на выбранный день. Оборудование обязательно.
func (s *CalendarService) Schedule(ctx context.Context, user entities.User, payload dto.ScheduleDTO) (*dto.RequestDTO, error) {
	if payload.EquipmentID == 0 {
		return nil, apperrors.NewInvalidInputError("Please select equipment")
	}
	if _, err := time.Parse(dateLayout, payload.ScheduledDate); err != nil {
		return nil, apperrors.NewInvalidInputError("Please select a date first")
	}
	mType := entities.MaintenanceType(payload.MaintenanceType)
	if mType == "" {
		mType = entities.MaintenancePreventive
	}
	priority := entities.Priority(payload.Priority)
	if priority == "" {
		priority = entities.PriorityMedium
	}

	equipmentID := payload.EquipmentID
	date := payload.ScheduledDate
	snap := s.domain.Snapshot()
	req := newRequest(user, snap.Stages, payload.Subject, payload.Description, mType, &equipmentID, priority, &date)
	created, err := s.domain.AddRequest(ctx, req)
	if err != nil {
		return nil, err
	}
	recordActivity(ctx, s.bus, created.ID, user.ID, entities.ActivityCreated, fmt.Sprintf("Запланировано обслуживание на %s", date))

	view := requestDTO(s.domain.Snapshot(), created, timeNow())
	return &view, nil
}
