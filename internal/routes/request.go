package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"gearguard/internal/authz"
	"gearguard/internal/controllers"
	"gearguard/internal/services"
	"gearguard/pkg/middleware"
)

func runRequestRouter(secureGroup *echo.Group, requestService services.RequestServiceInterface, logger *zap.Logger, authMW *middleware.AuthMiddleware) {
	requestCtrl := controllers.NewRequestController(requestService, logger)

	secureGroup.POST("/requests", requestCtrl.CreateRequest, authMW.RequirePermission(authz.RequestCreate))
	secureGroup.DELETE("/requests/:id", requestCtrl.DeleteRequest, authMW.RequirePermission(authz.RequestDelete))
	secureGroup.GET("/requests/:id/activities", requestCtrl.GetActivities, authMW.RequirePermission(authz.ViewMaintenance))
}
