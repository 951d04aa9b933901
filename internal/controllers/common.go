package controllers

import (
	"github.com/labstack/echo/v4"

	"gearguard/internal/entities"
	"gearguard/pkg/utils"
)

// currentUser - пользователь сессии, которую положил в контекст authMW.Auth.
func currentUser(c echo.Context) (entities.User, error) {
	session, err := utils.GetSessionFromCtx(c.Request().Context())
	if err != nil {
		return entities.User{}, err
	}
	return session.User, nil
}
