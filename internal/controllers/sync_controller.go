package controllers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"gearguard/internal/services"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/utils"
)

// syncDebounce - минимальный интервал между ручными синхронизациями одного пользователя.
const syncDebounce = 5 * time.Second

type SyncController struct {
	syncService services.SyncServiceInterface
	dedup       *RequestDeduplicator
	logger      *zap.Logger
}

func NewSyncController(service services.SyncServiceInterface, dedup *RequestDeduplicator, logger *zap.Logger) *SyncController {
	return &SyncController{
		syncService: service,
		dedup:       dedup,
		logger:      logger.Named("sync_controller"),
	}
}

// RunSync - ручная пересинхронизация всех коллекций с удалённым API.
func (c *SyncController) RunSync(ctx echo.Context) error {
	user, err := currentUser(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if !c.dedup.TryAcquire(user.ID, "sync", syncDebounce) {
		c.logger.Info("RunSync: повторный запрос отклонён", zap.Uint64("userID", user.ID))
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusTooManyRequests, "Синхронизация уже выполняется, повторите позже", nil, nil), c.logger)
	}

	res, err := c.syncService.Run(ctx.Request().Context(), services.SyncTriggerManual)
	if err != nil {
		c.dedup.Release(user.ID, "sync")
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Синхронизация выполнена", http.StatusOK)
}
