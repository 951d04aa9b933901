package services

import (
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"gearguard/internal/entities"
	"gearguard/internal/repositories"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/service"
)

func newSyncFixture(t *testing.T) (*fixture, *repositories.SessionRepository, *SyncService) {
	t.Helper()
	f := newFixture(t)
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	sessions := repositories.NewSessionRepository(
		repositories.NewRedisCacheRepository(client), service.NewJWTService(), "gearguard_session", time.Hour, zap.NewNop(),
	)
	return f, sessions, NewSyncService(f.domain, sessions, zap.NewNop())
}

func TestSync_RunCounts(t *testing.T) {
	f, _, svc := newSyncFixture(t)

	res, err := svc.Run(f.ctx, SyncTriggerManual)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Equipment)
	assert.Equal(t, 3, res.Requests)
	assert.Equal(t, 1, res.Teams)
	assert.Equal(t, 3, res.Stages)
}

func TestSync_RunUnauthorized(t *testing.T) {
	f, _, svc := newSyncFixture(t)
	f.api.ShouldFail = true
	f.api.FailErr = apperrors.ErrUnauthorized

	_, err := svc.Run(f.ctx, SyncTriggerManual)
	assert.True(t, errors.Is(err, apperrors.ErrUnauthorized))
}

func TestSync_StartStop(t *testing.T) {
	_, _, svc := newSyncFixture(t)

	assert.NoError(t, svc.Start(""))
	assert.Error(t, svc.Start("every tuesday-ish"))

	require.NoError(t, svc.Start("@every 1h"))
	assert.NoError(t, svc.Start("@every 1h"), "повторный запуск ничего не делает")
	svc.Stop()
	svc.Stop()
}

func TestSync_ScheduledSkipsWithoutSession(t *testing.T) {
	f, sessions, svc := newSyncFixture(t)
	before := len(f.api.Calls)

	svc.scheduled()
	assert.Len(t, f.api.Calls, before)

	require.NoError(t, sessions.Save(f.ctx, entities.Session{User: tech, Token: "opaque-token"}))
	svc.scheduled()
	assert.Greater(t, len(f.api.Calls), before)
}
