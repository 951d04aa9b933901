package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"gearguard/internal/controllers"
	"gearguard/internal/services"
)

func runAuthRouter(api, secureGroup *echo.Group, authService services.AuthServiceInterface, logger *zap.Logger) {
	authController := controllers.NewAuthController(authService, logger)

	api.POST("/login", authController.Login)
	api.POST("/signup", authController.Signup)

	secureGroup.POST("/logout", authController.Logout)
	secureGroup.GET("/session", authController.Session)
	secureGroup.GET("/navigation", authController.Navigation)
}
