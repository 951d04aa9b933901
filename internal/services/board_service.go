package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"gearguard/internal/authz"
	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/internal/repositories"
	"gearguard/internal/workflow"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/eventbus"
)

type BoardServiceInterface interface {
	GetBoard(ctx context.Context) dto.BoardDTO
	Move(ctx context.Context, user entities.User, payload dto.MoveDTO) (*dto.MoveResultDTO, error)
	Accept(ctx context.Context, user entities.User, id uint64) (*dto.RequestDTO, error)
}

type BoardService struct {
	domain     repositories.DomainRepositoryInterface
	gatekeeper *authz.Gatekeeper
	bus        *eventbus.Bus
	logger     *zap.Logger
}

func NewBoardService(domain repositories.DomainRepositoryInterface, gatekeeper *authz.Gatekeeper, bus *eventbus.Bus, logger *zap.Logger) *BoardService {
	return &BoardService{domain: domain, gatekeeper: gatekeeper, bus: bus, logger: logger}
}

func (s *BoardService) GetBoard(ctx context.Context) dto.BoardDTO {
	snap := s.domain.Snapshot()
	today := timeNow()
	board := workflow.Group(snap.Requests, snap.Stages)

	result := dto.BoardDTO{
		Columns:       make([]dto.ColumnDTO, 0, len(board.Columns)),
		OrphanedCount: len(board.Orphaned),
	}
	for _, col := range board.Columns {
		result.Columns = append(result.Columns, dto.ColumnDTO{
			StageID:  col.Stage.ID,
			Name:     col.Stage.Name,
			Sequence: col.Stage.Sequence,
			IsClosed: col.Stage.IsClosed,
			Count:    len(col.Requests),
			Requests: requestDTOs(snap, col.Requests, today),
		})
	}
	return result
}

func stageName(stages []entities.MaintenanceStage, id uint64) string {
	for _, st := range stages {
		if st.ID == id {
			return st.Name
		}
	}
	return unknownStage
}

// Move - итог перетаскивания. Без destination ничего не вызывается,
// перенос в ту же колонку всё равно отправляет обновление.
func (s *BoardService) Move(ctx context.Context, user entities.User, payload dto.MoveDTO) (*dto.MoveResultDTO, error) {
	drop := workflow.Drop{RequestID: payload.RequestID}
	if payload.DestinationStageID.Valid {
		dest := payload.DestinationStageID.Uint64
		drop.Destination = &dest
	}
	patch, ok := workflow.Transition(drop)
	if !ok {
		return &dto.MoveResultDTO{Moved: false}, nil
	}

	before, err := s.domain.FindRequest(payload.RequestID)
	if err != nil {
		return nil, err
	}
	updated, err := s.domain.UpdateRequest(ctx, payload.RequestID, patch)
	if err != nil {
		return nil, err
	}

	snap := s.domain.Snapshot()
	recordActivity(ctx, s.bus, updated.ID, user.ID, entities.ActivityStageMoved,
		fmt.Sprintf("%s → %s", stageName(snap.Stages, before.StageID), stageName(snap.Stages, updated.StageID)))

	view := requestDTO(snap, updated, timeNow())
	return &dto.MoveResultDTO{Moved: true, Request: &view}, nil
}

// Accept назначает текущего пользователя исполнителем и переводит заявку "в работу".
func (s *BoardService) Accept(ctx context.Context, user entities.User, id uint64) (*dto.RequestDTO, error) {
	req, err := s.domain.FindRequest(id)
	if err != nil {
		return nil, err
	}
	if !s.gatekeeper.Can(&user, authz.RequestAccept, &req) {
		if !workflow.CanAccept(req) {
			return nil, apperrors.NewHttpError(409, "Заявка уже принята в работу", apperrors.ErrConflict, map[string]interface{}{"requestID": id})
		}
		return nil, apperrors.ErrForbidden
	}

	patch := workflow.AcceptPatch(s.domain.Snapshot().Stages, user.ID)
	updated, err := s.domain.UpdateRequest(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	recordActivity(ctx, s.bus, id, user.ID, entities.ActivityAccepted, fmt.Sprintf("Принята в работу: %s", user.Name))

	view := requestDTO(s.domain.Snapshot(), updated, timeNow())
	return &view, nil
}
