package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"gearguard/internal/authz"
	"gearguard/internal/controllers"
	"gearguard/internal/services"
	"gearguard/pkg/middleware"
)

func runSyncRouter(secureGroup *echo.Group, syncService services.SyncServiceInterface, dedup *controllers.RequestDeduplicator, logger *zap.Logger, authMW *middleware.AuthMiddleware) {
	syncController := controllers.NewSyncController(syncService, dedup, logger)

	secureGroup.POST("/sync", syncController.RunSync, authMW.RequirePermission(authz.SyncRun))
}
