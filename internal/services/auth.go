package services

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"gearguard/internal/authz"
	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/internal/events"
	"gearguard/internal/integrations"
	intdto "gearguard/internal/integrations/dto"
	"gearguard/internal/repositories"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/eventbus"
	"gearguard/pkg/utils"
)

const (
	LogoutReasonUser         = "logout"
	LogoutReasonUnauthorized = "unauthorized"
	LogoutReasonExpired      = "token_expired"
)

type AuthServiceInterface interface {
	Login(ctx context.Context, payload dto.LoginDTO) (*dto.AuthResponseDTO, error)
	Signup(ctx context.Context, payload dto.SignupDTO) (*dto.AuthResponseDTO, error)
	Logout(ctx context.Context) error
	Session(ctx context.Context) (*dto.SessionDTO, error)
	ForceLogout(ctx context.Context, reason string)
}

type AuthService struct {
	api      integrations.MaintenanceAPI
	sessions repositories.SessionRepositoryInterface
	domain   repositories.DomainRepositoryInterface
	bus      *eventbus.Bus
	logger   *zap.Logger

	forceMu sync.Mutex
}

func NewAuthService(
	api integrations.MaintenanceAPI,
	sessions repositories.SessionRepositoryInterface,
	domain repositories.DomainRepositoryInterface,
	bus *eventbus.Bus,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{api: api, sessions: sessions, domain: domain, bus: bus, logger: logger}
}

// remoteAuthError сохраняет сообщение удалённого API ("Invalid password" и т.п.).
func remoteAuthError(err error, fallback string) error {
	var remote *apperrors.RemoteError
	if errors.As(err, &remote) {
		code := remote.StatusCode
		if code < 400 || code >= 500 {
			code = http.StatusBadGateway
		}
		return apperrors.NewHttpError(code, remote.Message, err, nil)
	}
	return apperrors.NewHttpError(http.StatusBadGateway, fallback, err, nil)
}

func (s *AuthService) Login(ctx context.Context, payload dto.LoginDTO) (*dto.AuthResponseDTO, error) {
	resp, err := s.api.Login(ctx, intdto.LoginPayload{Email: payload.Email, Password: payload.Password})
	if err != nil {
		s.logger.Warn("Login: удалённый API отказал", zap.String("email", payload.Email), zap.Error(err))
		return nil, remoteAuthError(err, "Login failed")
	}
	return s.startSession(ctx, resp, payload.Email)
}

// Signup без роли определяет её по имени ящика.
func (s *AuthService) Signup(ctx context.Context, payload dto.SignupDTO) (*dto.AuthResponseDTO, error) {
	role := entities.Role(payload.Role)
	if !role.Valid() {
		role = entities.DetectRoleFromEmail(payload.Email)
	}
	resp, err := s.api.Signup(ctx, intdto.SignupPayload{
		Name:     strings.TrimSpace(payload.Name),
		Email:    payload.Email,
		Password: payload.Password,
		Role:     string(role),
	})
	if err != nil {
		s.logger.Warn("Signup: удалённый API отказал", zap.String("email", payload.Email), zap.Error(err))
		return nil, remoteAuthError(err, "Signup failed")
	}
	return s.startSession(ctx, resp, payload.Email)
}

func (s *AuthService) startSession(ctx context.Context, resp *intdto.AuthResponse, email string) (*dto.AuthResponseDTO, error) {
	if resp.Token == "" || resp.User.ID == 0 {
		return nil, apperrors.NewHttpError(http.StatusBadGateway, "Некорректный ответ API авторизации", nil, nil)
	}

	user := entities.User{
		ID:    resp.User.ID,
		Name:  resp.User.Name,
		Email: email,
		Role:  entities.RoleFromBackend(resp.User.Role),
	}
	if resp.User.CompanyID.Valid {
		user.CompanyID = utils.ToPtr(resp.User.CompanyID.Uint64)
	}
	session := entities.Session{User: user, Token: resp.Token}

	if err := s.sessions.Save(ctx, session); err != nil {
		if errors.Is(err, apperrors.ErrTokenExpired) {
			return nil, apperrors.NewHttpError(http.StatusUnauthorized, "Срок действия токена истёк", err, nil)
		}
		return nil, apperrors.NewHttpError(http.StatusInternalServerError, "Не удалось сохранить сессию", err, nil)
	}

	if err := s.domain.InitializeData(ctx); err != nil {
		// 401 сразу после входа - токен не принят, сессию не оставляем
		if errors.Is(err, apperrors.ErrUnauthorized) {
			s.ForceLogout(ctx, LogoutReasonUnauthorized)
			return nil, err
		}
		s.logger.Warn("Login: первичная загрузка данных не удалась", zap.Error(err))
	}

	s.logger.Info("Пользователь вошёл", zap.Uint64("userID", user.ID), zap.String("role", string(user.Role)))
	return &dto.AuthResponseDTO{Token: session.Token, User: userDTO(user)}, nil
}

func (s *AuthService) Logout(ctx context.Context) error {
	s.endSession(ctx, LogoutReasonUser)
	return nil
}

// ForceLogout завершает сессию без участия пользователя: 401 от API или истёкший токен.
// Параллельные 401 на один и тот же токен завершают сессию один раз.
func (s *AuthService) ForceLogout(ctx context.Context, reason string) {
	s.forceMu.Lock()
	defer s.forceMu.Unlock()
	if _, err := s.sessions.Load(ctx); errors.Is(err, apperrors.ErrSessionMissing) {
		return
	}
	s.logger.Warn("Принудительный выход", zap.String("reason", reason))
	s.endSession(ctx, reason)
}

func (s *AuthService) endSession(ctx context.Context, reason string) {
	var userID uint64
	if session, err := s.sessions.Load(ctx); err == nil {
		userID = session.ID
	}
	if err := s.sessions.Clear(ctx); err != nil {
		s.logger.Error("Не удалось очистить сессию", zap.Error(err))
	}
	s.domain.Reset()
	if s.bus != nil {
		s.bus.Publish(ctx, events.SessionEndedEvent{UserID: userID, Reason: reason})
	}
}

func (s *AuthService) Session(ctx context.Context) (*dto.SessionDTO, error) {
	session, err := utils.GetSessionFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	perms := authz.PermissionsFor(session.Role)
	list := make([]string, 0, len(perms))
	for p := range perms {
		list = append(list, p)
	}
	sort.Strings(list)

	return &dto.SessionDTO{
		User:        userDTO(session.User),
		Permissions: list,
		Navigation:  authz.Navigation(session.Role),
		Loading:     s.domain.IsLoading(),
	}, nil
}
