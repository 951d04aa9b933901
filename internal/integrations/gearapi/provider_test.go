package gearapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"gearguard/internal/integrations/dto"
	"gearguard/pkg/config"
	apperrors "gearguard/pkg/errors"
)

type staticToken string

func (s staticToken) Token(context.Context) (string, error) { return string(s), nil }

func newTestProvider(t *testing.T, handler http.HandlerFunc, token string) *Provider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(config.RemoteAPIConfig{BaseURL: srv.URL + "/", Timeout: 2 * time.Second}, staticToken(token), zap.NewNop())
}

func TestProvider_AttachesBearerToken(t *testing.T) {
	var gotAuth, gotRequestID string
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		assert.Equal(t, "/stages", r.URL.Path)
		_, _ = w.Write([]byte(`[{"id":1,"name":"New Request","sequence":10},{"id":0,"name":"broken"}]`))
	}, "secret-token")

	stages, err := p.ListStages(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer secret-token", gotAuth)
	assert.NotEmpty(t, gotRequestID)
	require.Len(t, stages, 1, "запись без ID пропускается")
	assert.Equal(t, "New Request", stages[0].Name)
	assert.Equal(t, 10, stages[0].Sequence.Int)
	assert.False(t, stages[0].IsClosed.Valid)
}

func TestProvider_NoTokenNoHeader(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`[]`))
	}, "")

	teams, err := p.ListTeams(context.Background())
	require.NoError(t, err)
	assert.Empty(t, teams)
}

func TestProvider_UnauthorizedTriggersHook(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Token is invalid!"}`))
	}, "expired")

	var calls int32
	p.SetUnauthorizedHandler(func(context.Context) { atomic.AddInt32(&calls, 1) })

	_, err := p.ListEquipment(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrUnauthorized))

	var remoteErr *apperrors.RemoteError
	require.True(t, errors.As(err, &remoteErr))
	assert.Equal(t, "Token is invalid!", remoteErr.Message)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestProvider_LoginFailureDoesNotForceLogout(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Invalid password"}`))
	}, "")

	var calls int32
	p.SetUnauthorizedHandler(func(context.Context) { atomic.AddInt32(&calls, 1) })

	_, err := p.Login(context.Background(), dto.LoginPayload{Email: "a@b.c", Password: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid password")
	assert.Zero(t, atomic.LoadInt32(&calls))
}

func TestProvider_UpdateRequestSendsOnlySetFields(t *testing.T) {
	var body map[string]interface{}
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/maintenance/requests/12", r.URL.Path)
		raw, _ := io.ReadAll(r.Body)
		assert.NoError(t, json.Unmarshal(raw, &body))
		_, _ = w.Write([]byte(`{"message":"Request updated"}`))
	}, "t")

	stage := uint64(3)
	err := p.UpdateRequest(context.Background(), 12, dto.UpdateRequestPayload{StageID: &stage})
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"stage_id": float64(3)}, body)
}

func TestProvider_CreateEquipment(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]interface{}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "Drill", payload["name"])
		assert.Equal(t, float64(0), payload["health_percentage"])
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"message":"Equipment created successfully","id":41}`))
	}, "t")

	name, health := "Drill", 0
	resp, err := p.CreateEquipment(context.Background(), dto.EquipmentPayload{Name: &name, HealthPercentage: &health})
	require.NoError(t, err)
	assert.Equal(t, uint64(41), resp.ID)
}

func TestProvider_ServerErrorWithoutJSON(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`boom`))
	}, "t")

	err := p.DeleteTeam(context.Background(), 5)
	var remoteErr *apperrors.RemoteError
	require.True(t, errors.As(err, &remoteErr))
	assert.Equal(t, http.StatusInternalServerError, remoteErr.StatusCode)
	assert.Equal(t, "500 Internal Server Error", remoteErr.Message)
	assert.Equal(t, "/teams/:id", remoteErr.Endpoint)
}

func TestProvider_TransportError(t *testing.T) {
	p := New(config.RemoteAPIConfig{BaseURL: "http://127.0.0.1:1", Timeout: time.Second}, nil, zap.NewNop())
	_, err := p.ListRequests(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrRemoteUnavailable))
}
