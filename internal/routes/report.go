package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"gearguard/internal/authz"
	"gearguard/internal/controllers"
	"gearguard/internal/services"
	"gearguard/pkg/middleware"
)

func runReportRouter(
	secureGroup *echo.Group,
	reportService services.ReportServiceInterface,
	logger *zap.Logger,
	authMW *middleware.AuthMiddleware,
) {
	reportController := controllers.NewReportController(reportService, logger)

	secureGroup.GET("/reports", reportController.GetReport, authMW.RequirePermission(authz.ViewReporting))
	secureGroup.GET("/reports/export", reportController.ExportReport, authMW.RequirePermission(authz.ReportExport))
}
