package services

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/internal/events"
	intdto "gearguard/internal/integrations/dto"
	"gearguard/internal/repositories"
	"gearguard/pkg/contextkeys"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/eventbus"
	"gearguard/pkg/service"
)

type AuthServiceTestSuite struct {
	suite.Suite
	f        *fixture
	sessions *repositories.SessionRepository
	service  *AuthService
	ended    chan events.SessionEndedEvent
}

func (s *AuthServiceTestSuite) SetupTest() {
	s.f = newFixture(s.T())
	s.f.domain.Reset()

	mr := miniredis.RunT(s.T())
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	s.T().Cleanup(func() { _ = client.Close() })
	s.sessions = repositories.NewSessionRepository(
		repositories.NewRedisCacheRepository(client), service.NewJWTService(), "gearguard_session", time.Hour, zap.NewNop(),
	)

	s.ended = make(chan events.SessionEndedEvent, 4)
	s.f.bus.Subscribe(events.SessionEndedName, func(_ context.Context, e eventbus.Event) error {
		s.ended <- e.(events.SessionEndedEvent)
		return nil
	})

	s.f.api.Auth = &intdto.AuthResponse{
		Message: "Login successful",
		Token:   "opaque-token",
		User:    intdto.RemoteUserDTO{ID: 5, Name: "Tech", Role: "technician"},
	}
	s.service = NewAuthService(s.f.api, s.sessions, s.f.domain, s.f.bus, zap.NewNop())
}

func TestAuthServiceSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}

func (s *AuthServiceTestSuite) TestLogin_SavesSessionAndLoadsData() {
	res, err := s.service.Login(s.f.ctx, dto.LoginDTO{Email: "tech@gear.io", Password: "secret1"})
	s.Require().NoError(err)

	s.Equal("opaque-token", res.Token)
	s.Equal(string(entities.RoleMaintenanceStaff), res.User.Role, "роль technician переводится")
	s.Equal("Maintenance Staff", res.User.RoleLabel)
	s.Equal("tech@gear.io", res.User.Email)

	session, err := s.sessions.Load(s.f.ctx)
	s.Require().NoError(err)
	s.Equal("opaque-token", session.Token)
	s.Equal(uint64(5), session.ID)

	s.Len(s.f.domain.Snapshot().Requests, 3, "после входа коллекции загружены")
}

func (s *AuthServiceTestSuite) TestLogin_RemoteMessageKept() {
	s.f.api.Auth = nil

	_, err := s.service.Login(s.f.ctx, dto.LoginDTO{Email: "nobody@gear.io", Password: "secret1"})
	var httpErr *apperrors.HttpError
	s.Require().True(errors.As(err, &httpErr))
	s.Equal(http.StatusUnauthorized, httpErr.Code)
	s.Equal("User not found", httpErr.Message)

	_, err = s.sessions.Load(s.f.ctx)
	s.ErrorIs(err, apperrors.ErrSessionMissing)
	s.Empty(s.ended, "неудачный вход не считается принудительным выходом")
}

func (s *AuthServiceTestSuite) TestLogin_UnauthorizedDuringLoadEndsSession() {
	s.f.api.ShouldFail = true
	s.f.api.FailOnly = map[string]bool{"ListEquipment": true}
	s.f.api.FailErr = &apperrors.RemoteError{StatusCode: http.StatusUnauthorized, Message: "Token expired", Endpoint: "/equipment"}

	_, err := s.service.Login(s.f.ctx, dto.LoginDTO{Email: "tech@gear.io", Password: "secret1"})
	s.ErrorIs(err, apperrors.ErrUnauthorized)

	_, err = s.sessions.Load(s.f.ctx)
	s.ErrorIs(err, apperrors.ErrSessionMissing)
	s.f.bus.Wait()
	s.Require().Len(s.ended, 1)
	s.Equal(LogoutReasonUnauthorized, (<-s.ended).Reason)
}

func (s *AuthServiceTestSuite) TestForceLogout_ParallelHooksEndSessionOnce() {
	_, err := s.service.Login(s.f.ctx, dto.LoginDTO{Email: "tech@gear.io", Password: "secret1"})
	s.Require().NoError(err)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.service.ForceLogout(s.f.ctx, LogoutReasonUnauthorized)
		}()
	}
	wg.Wait()
	s.f.bus.Wait()

	s.Require().Len(s.ended, 1)
	s.Equal(uint64(5), (<-s.ended).UserID)
	s.Empty(s.f.domain.Snapshot().Requests)
}

func (s *AuthServiceTestSuite) TestForceLogout_WithoutSessionIsNoop() {
	s.service.ForceLogout(s.f.ctx, LogoutReasonExpired)
	s.f.bus.Wait()
	s.Empty(s.ended)
}

func (s *AuthServiceTestSuite) TestSignup_DetectsRoleFromEmail() {
	_, err := s.service.Signup(s.f.ctx, dto.SignupDTO{
		Name: "  John  ", Email: "tech.john@gear.io", Password: "secret1", ConfirmPassword: "secret1",
	})
	s.Require().NoError(err)

	calls := s.f.api.CallsTo("Signup")
	s.Require().Len(calls, 1)
	payload := calls[0].Payload.(intdto.SignupPayload)
	s.Equal(string(entities.RoleMaintenanceStaff), payload.Role)
	s.Equal("John", payload.Name)
}

func (s *AuthServiceTestSuite) TestSignup_ExplicitRoleWins() {
	_, err := s.service.Signup(s.f.ctx, dto.SignupDTO{
		Name: "Boss", Email: "admin@gear.io", Password: "secret1", ConfirmPassword: "secret1", Role: "end_user",
	})
	s.Require().NoError(err)
	s.Equal("end_user", s.f.api.CallsTo("Signup")[0].Payload.(intdto.SignupPayload).Role)
}

func (s *AuthServiceTestSuite) TestLogout_ClearsEverything() {
	_, err := s.service.Login(s.f.ctx, dto.LoginDTO{Email: "tech@gear.io", Password: "secret1"})
	s.Require().NoError(err)

	s.Require().NoError(s.service.Logout(s.f.ctx))

	_, err = s.sessions.Load(s.f.ctx)
	s.ErrorIs(err, apperrors.ErrSessionMissing)
	s.Empty(s.f.domain.Snapshot().Requests)

	s.f.bus.Wait()
	s.Require().Len(s.ended, 1)
	ev := <-s.ended
	s.Equal(uint64(5), ev.UserID)
	s.Equal(LogoutReasonUser, ev.Reason)
}

func (s *AuthServiceTestSuite) TestSession_PermissionsAndNavigation() {
	ctx := context.WithValue(s.f.ctx, contextkeys.SessionKey, &entities.Session{User: tech, Token: "t"})

	res, err := s.service.Session(ctx)
	s.Require().NoError(err)

	s.Equal([]string{
		"request:accept", "request:create", "request:move",
		"view:calendar", "view:dashboard", "view:maintenance",
	}, res.Permissions)
	names := make([]string, 0, len(res.Navigation))
	for _, item := range res.Navigation {
		names = append(names, item.Name)
	}
	s.Equal([]string{"Dashboard", "Maintenance", "Calendar"}, names)
}

func (s *AuthServiceTestSuite) TestSession_Missing() {
	_, err := s.service.Session(s.f.ctx)
	s.ErrorIs(err, apperrors.ErrSessionMissing)
}
