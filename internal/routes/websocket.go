package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"gearguard/internal/controllers"
	"gearguard/pkg/middleware"
	appwebsocket "gearguard/pkg/websocket"
)

func runWebSocketRouter(e *echo.Echo, hub *appwebsocket.Hub, logger *zap.Logger, authMW *middleware.AuthMiddleware) {
	wsController := controllers.NewWebSocketController(hub, logger)

	e.GET("/ws", wsController.ServeWs, authMW.WebSocketAuth)
}
