package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"gearguard/internal/authz"
	"gearguard/internal/controllers"
	"gearguard/internal/services"
	"gearguard/pkg/middleware"
)

func runTeamRouter(secureGroup *echo.Group, teamService services.TeamServiceInterface, logger *zap.Logger, authMW *middleware.AuthMiddleware) {
	teamCtrl := controllers.NewTeamController(teamService, logger)
	manage := authMW.RequirePermission(authz.TeamManage)
	{
		secureGroup.GET("/teams", teamCtrl.GetTeams, authMW.RequirePermission(authz.ViewTeams))
		secureGroup.POST("/teams", teamCtrl.CreateTeam, manage)
		secureGroup.PUT("/teams/:id", teamCtrl.UpdateTeam, manage)
		secureGroup.DELETE("/teams/:id", teamCtrl.DeleteTeam, manage)
	}
}
