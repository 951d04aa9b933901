package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"gearguard/internal/controllers"
	"gearguard/internal/services"
	"gearguard/pkg/metrics"
	"gearguard/pkg/middleware"
	appwebsocket "gearguard/pkg/websocket"
)

// Services - всё, что маршрутам нужно от сервисного слоя.
type Services struct {
	Auth            services.AuthServiceInterface
	Dashboard       services.DashboardServiceInterface
	Equipment       services.EquipmentServiceInterface
	EquipmentImport services.EquipmentImportServiceInterface
	Team            services.TeamServiceInterface
	Request         services.RequestServiceInterface
	Board           services.BoardServiceInterface
	Calendar        services.CalendarServiceInterface
	Report          services.ReportServiceInterface
	Sync            services.SyncServiceInterface
}

func InitRouter(
	e *echo.Echo,
	svc Services,
	authMW *middleware.AuthMiddleware,
	hub *appwebsocket.Hub,
	dedup *controllers.RequestDeduplicator,
	isLoading func() bool,
	logger *zap.Logger,
) {
	logger.Info("InitRouter: Начало создания маршрутов")

	health := controllers.NewHealthController(isLoading)
	e.GET("/healthz", health.Healthz)
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))

	api := e.Group("/api")
	secureGroup := api.Group("", authMW.Auth)

	runAuthRouter(api, secureGroup, svc.Auth, logger)
	runDashboardRouter(secureGroup, svc.Dashboard, logger, authMW)
	runEquipmentRouter(secureGroup, svc.Equipment, svc.EquipmentImport, logger, authMW)
	runTeamRouter(secureGroup, svc.Team, logger, authMW)
	runRequestRouter(secureGroup, svc.Request, logger, authMW)
	runBoardRouter(secureGroup, svc.Board, logger, authMW)
	runCalendarRouter(secureGroup, svc.Calendar, logger, authMW)
	runReportRouter(secureGroup, svc.Report, logger, authMW)
	runSyncRouter(secureGroup, svc.Sync, dedup, logger, authMW)
	runWebSocketRouter(e, hub, logger, authMW)

	logger.Info("INIT_ROUTER: Создание маршрутов завершено")
}
