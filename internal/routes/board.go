package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"gearguard/internal/authz"
	"gearguard/internal/controllers"
	"gearguard/internal/services"
	"gearguard/pkg/middleware"
)

func runBoardRouter(secureGroup *echo.Group, boardService services.BoardServiceInterface, logger *zap.Logger, authMW *middleware.AuthMiddleware) {
	boardCtrl := controllers.NewBoardController(boardService, logger)

	secureGroup.GET("/board", boardCtrl.GetBoard, authMW.RequirePermission(authz.ViewMaintenance))
	secureGroup.POST("/board/moves", boardCtrl.MoveCard, authMW.RequirePermission(authz.RequestMove))
	secureGroup.POST("/requests/:id/accept", boardCtrl.AcceptRequest, authMW.RequirePermission(authz.RequestAccept))
}
