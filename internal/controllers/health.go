package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type HealthController struct {
	isLoading func() bool
}

func NewHealthController(isLoading func() bool) *HealthController {
	return &HealthController{isLoading: isLoading}
}

func (c *HealthController) Healthz(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"loading": c.isLoading(),
	})
}
