package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"gearguard/internal/authz"
	"gearguard/internal/controllers"
	"gearguard/internal/services"
	"gearguard/pkg/middleware"
)

func runDashboardRouter(
	secureGroup *echo.Group,
	dashboardService services.DashboardServiceInterface,
	logger *zap.Logger,
	authMW *middleware.AuthMiddleware,
) {
	dashboardController := controllers.NewDashboardController(dashboardService, logger)

	secureGroup.GET("/dashboard", dashboardController.GetDashboard, authMW.RequirePermission(authz.ViewDashboard))
	secureGroup.GET("/requests", dashboardController.ListRequests, authMW.RequirePermission(authz.ViewDashboard))
}
