package middleware

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"gearguard/internal/authz"
	"gearguard/internal/entities"
	"gearguard/pkg/contextkeys"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/service"
	"gearguard/pkg/utils"
)

// SessionSource - откуда middleware берёт текущую сессию.
type SessionSource interface {
	Load(ctx context.Context) (*entities.Session, error)
}

// ForcedLogout вызывается, когда сессию нужно завершить без участия пользователя.
type ForcedLogout func(ctx context.Context, reason string)

type AuthMiddleware struct {
	sessions   SessionSource
	jwtService service.JWTService
	onLogout   ForcedLogout
	logger     *zap.Logger
}

func NewAuthMiddleware(sessions SessionSource, jwtSvc service.JWTService, onLogout ForcedLogout, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		sessions:   sessions,
		jwtService: jwtSvc,
		onLogout:   onLogout,
		logger:     logger,
	}
}

// bearerToken достаёт токен из заголовка. ?token= принимается только там,
// где браузер не может передать заголовок (websocket).
func bearerToken(c echo.Context, allowQuery bool) (string, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		if token := c.QueryParam("token"); allowQuery && token != "" {
			return token, nil
		}
		return "", apperrors.ErrEmptyAuthHeader
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", apperrors.ErrInvalidAuthHeader
	}
	return parts[1], nil
}

// Auth пускает запрос, только если токен совпадает с токеном сохранённой сессии.
func (m *AuthMiddleware) Auth(next echo.HandlerFunc) echo.HandlerFunc {
	return m.authenticate(next, false)
}

// WebSocketAuth - то же, что Auth, но токен можно передать в ?token=.
func (m *AuthMiddleware) WebSocketAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return m.authenticate(next, true)
}

func (m *AuthMiddleware) authenticate(next echo.HandlerFunc, allowQuery bool) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		token, err := bearerToken(c, allowQuery)
		if err != nil {
			m.logger.Warn("AuthMiddleware: заголовок Authorization не распознан", zap.Error(err))
			return utils.ErrorResponse(c, err, m.logger)
		}

		session, err := m.sessions.Load(ctx)
		if err != nil {
			if !errors.Is(err, apperrors.ErrSessionMissing) {
				m.logger.Error("AuthMiddleware: не удалось прочитать сессию", zap.Error(err))
			}
			return utils.ErrorResponse(c, apperrors.ErrSessionMissing, m.logger)
		}
		if subtle.ConstantTimeCompare([]byte(session.Token), []byte(token)) != 1 {
			m.logger.Warn("AuthMiddleware: токен не совпадает с токеном сессии", zap.Uint64("userID", session.ID))
			return utils.ErrorResponse(c, apperrors.ErrInvalidToken, m.logger)
		}

		if _, err := m.jwtService.Inspect(token); err != nil {
			if errors.Is(err, apperrors.ErrTokenExpired) {
				m.logger.Info("AuthMiddleware: токен истёк, принудительный выход", zap.Uint64("userID", session.ID))
				if m.onLogout != nil {
					m.onLogout(ctx, "token_expired")
				}
				return utils.ErrorResponse(c, apperrors.ErrTokenExpired, m.logger)
			}
			// непрозрачный токен проверяет удалённый API
			m.logger.Debug("AuthMiddleware: токен не является JWT", zap.Error(err))
		}

		permissions := authz.PermissionsFor(session.Role)
		newCtx := context.WithValue(ctx, contextkeys.SessionKey, session)
		newCtx = context.WithValue(newCtx, contextkeys.UserPermissionsMapKey, permissions)
		c.SetRequest(c.Request().WithContext(newCtx))

		return next(c)
	}
}

// RequirePermission закрывает маршрут разрешением из таблицы ролей.
func (m *AuthMiddleware) RequirePermission(permission string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			permissions, err := utils.GetPermissionsMapFromCtx(c.Request().Context())
			if err != nil || !permissions[permission] {
				m.logger.Warn("AuthMiddleware: нет разрешения", zap.String("permission", permission), zap.String("path", c.Path()))
				return utils.ErrorResponse(c, apperrors.ErrForbidden, m.logger)
			}
			return next(c)
		}
	}
}
