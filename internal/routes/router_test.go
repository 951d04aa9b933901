package routes

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"gearguard/internal/analytics"
	"gearguard/internal/authz"
	"gearguard/internal/controllers"
	"gearguard/internal/entities"
	intdto "gearguard/internal/integrations/dto"
	"gearguard/internal/integrations/mock"
	"gearguard/internal/repositories"
	"gearguard/internal/services"
	"gearguard/pkg/config"
	"gearguard/pkg/eventbus"
	"gearguard/pkg/middleware"
	"gearguard/pkg/service"
	appwebsocket "gearguard/pkg/websocket"
)

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Body    json.RawMessage `json:"body"`
}

// RouterTestSuite поднимает echo целиком: настоящие сервисы поверх mock-провайдера,
// сессия в miniredis.
type RouterTestSuite struct {
	suite.Suite
	e        *echo.Echo
	api      *mock.MockProvider
	sessions *repositories.SessionRepository
	bus      *eventbus.Bus
	token    string
}

func (s *RouterTestSuite) SetupTest() {
	nop := zap.NewNop()
	ctx := context.Background()

	mr := miniredis.RunT(s.T())
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	s.T().Cleanup(func() { _ = client.Close() })
	jwtSvc := service.NewJWTService()
	s.sessions = repositories.NewSessionRepository(repositories.NewRedisCacheRepository(client), jwtSvc, "gearguard_session", time.Hour, nop)

	s.api = mock.NewMockProvider()
	s.api.Stages = []intdto.StageDTO{
		{ID: 1, Name: "New Request", Sequence: null.IntFrom(10)},
		{ID: 2, Name: "In Progress", Sequence: null.IntFrom(20)},
		{ID: 3, Name: "Repaired", Sequence: null.IntFrom(30)},
	}
	s.api.Equipment = []intdto.EquipmentDTO{
		{ID: 1, Name: "Laptop", Health: null.IntFrom(85)},
		{ID: 2, Name: "Press", Health: null.IntFrom(20)},
	}
	s.api.Requests = []intdto.MaintenanceRequestDTO{
		{ID: 10, Subject: "Broken screen", StageID: null.Uint64From(1), EquipmentID: null.Uint64From(1), CreatedBy: null.Uint64From(7)},
	}
	s.api.Auth = &intdto.AuthResponse{
		Message: "Login successful",
		Token:   "opaque-token",
		User:    intdto.RemoteUserDTO{ID: 5, Name: "Tech", Email: null.StringFrom("tech@gear.io"), Role: "technician"},
	}

	s.bus = eventbus.New(nop)
	domain := repositories.NewDomainRepository(s.api, s.bus, nop)
	s.Require().NoError(domain.InitializeData(ctx))
	policy := analytics.DefaultHealthPolicy()

	authService := services.NewAuthService(s.api, s.sessions, domain, s.bus, nop)
	svc := Services{
		Auth:            authService,
		Dashboard:       services.NewDashboardService(domain, s.api, policy, nop),
		Equipment:       services.NewEquipmentService(domain, policy, nop),
		EquipmentImport: services.NewEquipImportService(domain, nop),
		Team:            services.NewTeamService(domain, nop),
		Request:         services.NewRequestService(domain, nil, s.bus, nop),
		Board:           services.NewBoardService(domain, authz.NewGatekeeper(), s.bus, nop),
		Calendar:        services.NewCalendarService(domain, s.bus, nop),
		Report:          services.NewReportService(domain, policy, nop),
		Sync:            services.NewSyncService(domain, s.sessions, nop),
	}

	authMW := middleware.NewAuthMiddleware(s.sessions, jwtSvc, authService.ForceLogout, nop)
	s.e = NewServer(config.ServerConfig{AllowedOrigins: []string{"*"}}, nop)
	InitRouter(s.e, svc, authMW, appwebsocket.NewHub(nop), controllers.NewRequestDeduplicator(), domain.IsLoading, nop)
	s.token = ""
}

func (s *RouterTestSuite) TearDownTest() {
	s.bus.Wait()
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterTestSuite))
}

func (s *RouterTestSuite) loginAs(user entities.User) {
	s.token = "token-" + string(user.Role)
	s.Require().NoError(s.sessions.Save(context.Background(), entities.Session{User: user, Token: s.token}))
}

func (s *RouterTestSuite) do(method, path, body string) (*httptest.ResponseRecorder, envelope) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if s.token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+s.token)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		_ = json.Unmarshal(rec.Body.Bytes(), &env)
	}
	return rec, env
}

func (s *RouterTestSuite) TestHealthzIsPublic() {
	rec, _ := s.do(http.MethodGet, "/healthz", "")
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `"status":"ok"`)

	rec, _ = s.do(http.MethodGet, "/metrics", "")
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "gearguard_http_requests_total")
}

func (s *RouterTestSuite) TestSecureRouteWithoutSession() {
	rec, env := s.do(http.MethodGet, "/api/dashboard", "")
	s.Equal(http.StatusUnauthorized, rec.Code)
	s.False(env.Status)
	s.JSONEq(`{"redirect":"/login"}`, string(env.Body))
}

func (s *RouterTestSuite) TestLoginThenSession() {
	rec, env := s.do(http.MethodPost, "/api/login", `{"email":"tech@gear.io","password":"secret"}`)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	s.True(env.Status)

	s.token = "opaque-token"
	rec, env = s.do(http.MethodGet, "/api/session", "")
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	s.Contains(string(env.Body), `"maintenance_staff"`)

	rec, _ = s.do(http.MethodPost, "/api/logout", "")
	s.Equal(http.StatusOK, rec.Code)
	rec, _ = s.do(http.MethodGet, "/api/session", "")
	s.Equal(http.StatusUnauthorized, rec.Code)
}

func (s *RouterTestSuite) TestLoginValidation() {
	rec, _ := s.do(http.MethodPost, "/api/login", `{"email":"not-an-email","password":"x"}`)
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Empty(s.api.CallsTo("Login"))
}

func (s *RouterTestSuite) TestWrongTokenRejected() {
	s.loginAs(entities.User{ID: 1, Name: "Admin", Role: entities.RoleSuperAdmin})
	s.token = "someone-else"
	rec, _ := s.do(http.MethodGet, "/api/dashboard", "")
	s.Equal(http.StatusUnauthorized, rec.Code)
}

func (s *RouterTestSuite) TestEndUserPermissions() {
	s.loginAs(entities.User{ID: 7, Name: "Employee", Role: entities.RoleEndUser})

	rec, _ := s.do(http.MethodGet, "/api/dashboard", "")
	s.Equal(http.StatusOK, rec.Code)

	for _, path := range []string{"/api/equipment", "/api/board", "/api/calendar?month=2024-04", "/api/reports"} {
		rec, _ = s.do(http.MethodGet, path, "")
		s.Equal(http.StatusForbidden, rec.Code, path)
	}
	rec, _ = s.do(http.MethodPost, "/api/sync", "")
	s.Equal(http.StatusForbidden, rec.Code)
}

func (s *RouterTestSuite) TestEquipmentFilter() {
	s.loginAs(entities.User{ID: 1, Name: "Admin", Role: entities.RoleSuperAdmin})

	rec, env := s.do(http.MethodGet, "/api/equipment?filter=critical", "")
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	var list struct {
		Total int `json:"total"`
		List  []struct {
			Name string `json:"name"`
		} `json:"list"`
	}
	s.Require().NoError(json.Unmarshal(env.Body, &list))
	s.Equal(2, list.Total)
	s.Require().Len(list.List, 1)
	s.Equal("Press", list.List[0].Name)

	rec, _ = s.do(http.MethodGet, "/api/equipment?filter=broken", "")
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *RouterTestSuite) TestBoardMoveAndAccept() {
	s.loginAs(entities.User{ID: 5, Name: "Tech", Role: entities.RoleMaintenanceStaff})

	rec, env := s.do(http.MethodPost, "/api/board/moves", `{"requestId":10,"destinationStageId":null}`)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	s.Equal("Перемещение отменено", env.Message)
	s.Empty(s.api.CallsTo("UpdateRequest"))

	rec, _ = s.do(http.MethodPost, "/api/requests/10/accept", "")
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	s.Len(s.api.CallsTo("UpdateRequest"), 1)

	rec, _ = s.do(http.MethodPost, "/api/requests/10/accept", "")
	s.Equal(http.StatusConflict, rec.Code)
}

func (s *RouterTestSuite) TestCalendarScheduleNeedsEquipment() {
	s.loginAs(entities.User{ID: 1, Name: "Admin", Role: entities.RoleSuperAdmin})

	rec, env := s.do(http.MethodPost, "/api/calendar/schedule", `{"subject":"Inspection","scheduledDate":"2024-04-20"}`)
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal("Please select equipment", env.Message)

	rec, _ = s.do(http.MethodPost, "/api/calendar/schedule", `{"subject":"Inspection","equipmentId":2,"scheduledDate":"2024-04-20"}`)
	s.Equal(http.StatusCreated, rec.Code, rec.Body.String())
}

func (s *RouterTestSuite) TestReportExport() {
	s.loginAs(entities.User{ID: 1, Name: "Admin", Role: entities.RoleSuperAdmin})

	rec, _ := s.do(http.MethodGet, "/api/reports/export", "")
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Header().Get(echo.HeaderContentDisposition), "gearguard_report_")
	s.Equal("PK", rec.Body.String()[:2])
}

func (s *RouterTestSuite) TestManualSyncDebounced() {
	s.loginAs(entities.User{ID: 1, Name: "Admin", Role: entities.RoleSuperAdmin})

	rec, _ := s.do(http.MethodPost, "/api/sync", "")
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	rec, _ = s.do(http.MethodPost, "/api/sync", "")
	s.Equal(http.StatusTooManyRequests, rec.Code)
}
