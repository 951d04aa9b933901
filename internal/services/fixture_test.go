package services

import (
	"context"
	"testing"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"gearguard/internal/analytics"
	"gearguard/internal/entities"
	"gearguard/internal/events"
	"gearguard/internal/integrations/dto"
	"gearguard/internal/integrations/mock"
	"gearguard/internal/repositories"
	"gearguard/pkg/eventbus"
)

var fixedNow = time.Date(2024, 4, 10, 15, 0, 0, 0, time.UTC)

type fixture struct {
	ctx    context.Context
	api    *mock.MockProvider
	domain *repositories.DomainRepository
	bus    *eventbus.Bus
	policy *analytics.HealthPolicy
}

var (
	admin    = entities.User{ID: 1, Name: "Admin", Email: "admin@gear.io", Role: entities.RoleSuperAdmin}
	tech     = entities.User{ID: 5, Name: "Tech", Email: "tech@gear.io", Role: entities.RoleMaintenanceStaff}
	otherTec = entities.User{ID: 6, Name: "Other Tech", Email: "tech2@gear.io", Role: entities.RoleMaintenanceStaff}
	employee = entities.User{ID: 7, Name: "Employee", Email: "emp@gear.io", Role: entities.RoleEndUser}
)

// newFixture: три стадии, три единицы оборудования, три заявки, "сегодня" = 2024-04-10.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	prev := timeNow
	timeNow = func() time.Time { return fixedNow }
	t.Cleanup(func() { timeNow = prev })

	api := mock.NewMockProvider()
	api.Stages = []dto.StageDTO{
		{ID: 3, Name: "Repaired", Sequence: null.IntFrom(30)},
		{ID: 1, Name: "New Request", Sequence: null.IntFrom(10)},
		{ID: 2, Name: "In Progress", Sequence: null.IntFrom(20)},
	}
	api.Equipment = []dto.EquipmentDTO{
		{ID: 1, Name: "Laptop", Health: null.IntFrom(85), MaintenanceTeamID: null.Uint64From(1)},
		{ID: 2, Name: "Press", Health: null.IntFrom(20)},
		{ID: 3, Name: "Drill", Health: null.IntFrom(50)},
	}
	api.Teams = []dto.TeamDTO{{ID: 1, Name: "Internal Maintenance", CompanyID: null.Uint64From(1)}}
	api.Requests = []dto.MaintenanceRequestDTO{
		{ID: 10, Subject: "Broken screen", Type: null.StringFrom("corrective"), Priority: null.StringFrom("high"),
			StageID: null.Uint64From(1), EquipmentID: null.Uint64From(1), CreatedBy: null.Uint64From(7),
			CreatedAt: null.StringFrom("2024-04-01T09:00:00")},
		{ID: 11, Subject: "Oil change", Type: null.StringFrom("preventive"), Priority: null.StringFrom("medium"),
			StageID: null.Uint64From(2), EquipmentID: null.Uint64From(2), TechnicianID: null.Uint64From(5),
			CreatedBy: null.Uint64From(1), ScheduledDate: null.StringFrom("2024-04-02"),
			CreatedAt: null.StringFrom("2024-03-20T09:00:00")},
		{ID: 12, Subject: "Chair fixed", Type: null.StringFrom("corrective"), Priority: null.StringFrom("low"),
			StageID: null.Uint64From(3), CreatedBy: null.Uint64From(7), ScheduledDate: null.StringFrom("2024-03-01"),
			CreatedAt: null.StringFrom("2024-02-20T09:00:00")},
	}

	f := &fixture{
		ctx:    context.Background(),
		api:    api,
		bus:    eventbus.New(zap.NewNop()),
		policy: analytics.DefaultHealthPolicy(),
	}
	f.domain = repositories.NewDomainRepository(api, f.bus, zap.NewNop())
	require.NoError(t, f.domain.InitializeData(f.ctx))
	f.bus.Wait()
	return f
}

// captureActivities подписывается на журнал действий.
func (f *fixture) captureActivities() func() []entities.MaintenanceRequestActivity {
	ch := make(chan entities.MaintenanceRequestActivity, 16)
	f.bus.Subscribe(events.RequestActivityName, func(_ context.Context, e eventbus.Event) error {
		ch <- e.(events.RequestActivityEvent).Activity
		return nil
	})
	return func() []entities.MaintenanceRequestActivity {
		f.bus.Wait()
		var out []entities.MaintenanceRequestActivity
		for {
			select {
			case a := <-ch:
				out = append(out, a)
			default:
				return out
			}
		}
	}
}
