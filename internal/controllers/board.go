package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"gearguard/internal/dto"
	"gearguard/internal/services"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/utils"
)

type BoardController struct {
	boardService services.BoardServiceInterface
	logger       *zap.Logger
}

func NewBoardController(service services.BoardServiceInterface, logger *zap.Logger) *BoardController {
	return &BoardController{boardService: service, logger: logger}
}

func (c *BoardController) GetBoard(ctx echo.Context) error {
	res := c.boardService.GetBoard(ctx.Request().Context())
	return utils.SuccessResponse(ctx, res, "Канбан-доска получена", http.StatusOK)
}

// MoveCard - завершение перетаскивания. Пустой destinationStageId означает отмену.
func (c *BoardController) MoveCard(ctx echo.Context) error {
	user, err := currentUser(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.MoveDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат запроса", err, nil), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.boardService.Move(ctx.Request().Context(), user, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	message := "Заявка перемещена"
	if !res.Moved {
		message = "Перемещение отменено"
	}
	return utils.SuccessResponse(ctx, res, message, http.StatusOK)
}

func (c *BoardController) AcceptRequest(ctx echo.Context) error {
	user, err := currentUser(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	id, err := utils.ParseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.boardService.Accept(ctx.Request().Context(), user, id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Заявка принята в работу", http.StatusOK)
}
