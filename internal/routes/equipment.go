package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"gearguard/internal/authz"
	"gearguard/internal/controllers"
	"gearguard/internal/services"
	"gearguard/pkg/middleware"
)

func runEquipmentRouter(
	secureGroup *echo.Group,
	equipmentService services.EquipmentServiceInterface,
	importService services.EquipmentImportServiceInterface,
	logger *zap.Logger,
	authMW *middleware.AuthMiddleware,
) {
	equipmentCtrl := controllers.NewEquipmentController(equipmentService, importService, logger)
	manage := authMW.RequirePermission(authz.EquipmentManage)
	{
		secureGroup.GET("/equipment", equipmentCtrl.GetEquipments, authMW.RequirePermission(authz.ViewEquipment))
		secureGroup.POST("/equipment", equipmentCtrl.CreateEquipment, manage)
		secureGroup.POST("/equipment/import", equipmentCtrl.ImportEquipments, manage)
		secureGroup.PUT("/equipment/:id", equipmentCtrl.UpdateEquipment, manage)
		secureGroup.DELETE("/equipment/:id", equipmentCtrl.DeleteEquipment, manage)
	}
}
