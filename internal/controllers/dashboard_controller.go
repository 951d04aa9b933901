package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"gearguard/internal/services"
	"gearguard/pkg/utils"
)

type DashboardController struct {
	dashboardService services.DashboardServiceInterface
	logger           *zap.Logger
}

func NewDashboardController(ds services.DashboardServiceInterface, logger *zap.Logger) *DashboardController {
	return &DashboardController{
		dashboardService: ds,
		logger:           logger,
	}
}

func (ctrl *DashboardController) GetDashboard(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	res, err := ctrl.dashboardService.GetDashboard(c.Request().Context(), user)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, res, "Статистика для дашборда получена", http.StatusOK)
}

// ListRequests - заявки, видимые роли пользователя.
func (ctrl *DashboardController) ListRequests(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	res := ctrl.dashboardService.ListRequests(c.Request().Context(), user)
	return utils.SuccessResponse(c, res, "Список заявок получен", http.StatusOK)
}
