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

type CalendarController struct {
	calendarService services.CalendarServiceInterface
	logger          *zap.Logger
}

func NewCalendarController(service services.CalendarServiceInterface, logger *zap.Logger) *CalendarController {
	return &CalendarController{calendarService: service, logger: logger}
}

func (c *CalendarController) GetMonth(ctx echo.Context) error {
	user, err := currentUser(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var query dto.CalendarQueryDTO
	if err := ctx.Bind(&query); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "Неверные параметры календаря", err, nil), c.logger)
	}
	if err := ctx.Validate(&query); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.calendarService.Month(ctx.Request().Context(), user, query)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Календарь получен", http.StatusOK)
}

func (c *CalendarController) Schedule(ctx echo.Context) error {
	user, err := currentUser(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.ScheduleDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат запроса", err, nil), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.calendarService.Schedule(ctx.Request().Context(), user, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Обслуживание запланировано", http.StatusCreated)
}
