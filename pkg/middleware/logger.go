package middleware

import (
	"context"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"gearguard/pkg/contextkeys"
)

// InjectLogger кладёт id запроса в контекст (его получает удалённый API)
// и логгер с этим id в echo.Context.
func InjectLogger(logger *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rid := c.Response().Header().Get(echo.HeaderXRequestID)
			reqLogger := logger
			if rid != "" {
				reqLogger = logger.With(zap.String("request_id", rid))
				ctx := context.WithValue(c.Request().Context(), contextkeys.RequestIDKey, rid)
				c.SetRequest(c.Request().WithContext(ctx))
			}
			c.Set("logger", reqLogger)
			return next(c)
		}
	}
}
