package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"gearguard/internal/authz"
	"gearguard/internal/controllers"
	"gearguard/internal/services"
	"gearguard/pkg/middleware"
)

func runCalendarRouter(secureGroup *echo.Group, calendarService services.CalendarServiceInterface, logger *zap.Logger, authMW *middleware.AuthMiddleware) {
	calendarCtrl := controllers.NewCalendarController(calendarService, logger)

	secureGroup.GET("/calendar", calendarCtrl.GetMonth, authMW.RequirePermission(authz.ViewCalendar))
	secureGroup.POST("/calendar/schedule", calendarCtrl.Schedule, authMW.RequirePermission(authz.RequestCreate))
}
