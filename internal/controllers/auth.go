package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"gearguard/internal/authz"
	"gearguard/internal/dto"
	"gearguard/internal/services"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/utils"
)

type AuthController struct {
	authService services.AuthServiceInterface
	logger      *zap.Logger
}

func NewAuthController(authService services.AuthServiceInterface, logger *zap.Logger) *AuthController {
	return &AuthController{
		authService: authService,
		logger:      logger,
	}
}

func (ctrl *AuthController) errorResponse(c echo.Context, err error) error {
	return utils.ErrorResponse(c, err, ctrl.logger)
}

func (ctrl *AuthController) Login(c echo.Context) error {
	var payload dto.LoginDTO

	if err := c.Bind(&payload); err != nil {
		ctrl.logger.Error("Login: ошибка привязки данных", zap.Error(err))
		return ctrl.errorResponse(c, apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат данных для входа", err, nil))
	}
	if err := c.Validate(&payload); err != nil {
		return ctrl.errorResponse(c, err)
	}

	res, err := ctrl.authService.Login(c.Request().Context(), payload)
	if err != nil {
		ctrl.logger.Warn("Login: вход не выполнен", zap.String("email", payload.Email), zap.Error(err))
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, res, "Авторизация прошла успешно", http.StatusOK)
}

func (ctrl *AuthController) Signup(c echo.Context) error {
	var payload dto.SignupDTO

	if err := c.Bind(&payload); err != nil {
		ctrl.logger.Error("Signup: ошибка привязки данных", zap.Error(err))
		return ctrl.errorResponse(c, apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат данных регистрации", err, nil))
	}
	if err := c.Validate(&payload); err != nil {
		return ctrl.errorResponse(c, err)
	}

	res, err := ctrl.authService.Signup(c.Request().Context(), payload)
	if err != nil {
		ctrl.logger.Warn("Signup: регистрация не выполнена", zap.String("email", payload.Email), zap.Error(err))
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, res, "Регистрация прошла успешно", http.StatusCreated)
}

func (ctrl *AuthController) Logout(c echo.Context) error {
	if err := ctrl.authService.Logout(c.Request().Context()); err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, dto.RedirectDTO{Redirect: utils.LoginRedirect}, "Вы успешно вышли из системы.", http.StatusOK)
}

func (ctrl *AuthController) Session(c echo.Context) error {
	res, err := ctrl.authService.Session(c.Request().Context())
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, res, "Сессия активна", http.StatusOK)
}

// Navigation - пункты меню, доступные роли текущего пользователя.
func (ctrl *AuthController) Navigation(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, authz.Navigation(user.Role), "Меню получено", http.StatusOK)
}
