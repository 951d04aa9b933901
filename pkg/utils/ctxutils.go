package utils

import (
	"context"
	"strconv"

	"github.com/labstack/echo/v4"

	"gearguard/internal/entities"
	"gearguard/pkg/contextkeys"
	apperrors "gearguard/pkg/errors"
)

func GetSessionFromCtx(ctx context.Context) (*entities.Session, error) {
	session, ok := ctx.Value(contextkeys.SessionKey).(*entities.Session)
	if !ok || session == nil {
		return nil, apperrors.ErrSessionMissing
	}
	return session, nil
}

func GetPermissionsMapFromCtx(ctx context.Context) (map[string]bool, error) {
	permissions, ok := ctx.Value(contextkeys.UserPermissionsMapKey).(map[string]bool)
	if !ok || permissions == nil {
		return nil, apperrors.ErrForbidden
	}
	return permissions, nil
}

// ParseIDParam читает :id из пути.
func ParseIDParam(c echo.Context) (uint64, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, apperrors.NewInvalidInputError("некорректный id: %q", c.Param("id"))
	}
	return id, nil
}
