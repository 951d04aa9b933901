package repositories

import (
	"context"
	"testing"

	"github.com/aarondl/null/v8"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"gearguard/internal/entities"
	"gearguard/internal/integrations/dto"
	"gearguard/internal/integrations/mock"
	apperrors "gearguard/pkg/errors"
)

type DomainRepositoryTestSuite struct {
	suite.Suite
	api  *mock.MockProvider
	repo *DomainRepository
	ctx  context.Context
}

func (s *DomainRepositoryTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.api = mock.NewMockProvider()
	s.api.Equipment = []dto.EquipmentDTO{
		{ID: 1, Name: "Laptop", Health: null.IntFrom(85), SerialNumber: null.StringFrom("SN-1")},
		{ID: 2, Name: "Press", Health: null.IntFrom(0)},
		{ID: 3, Name: "Chair"},
	}
	s.api.Requests = []dto.MaintenanceRequestDTO{
		{ID: 10, Subject: "Broken screen", Type: null.StringFrom("corrective"), Priority: null.StringFrom("high"),
			StageID: null.Uint64From(1), CreatedBy: null.Uint64From(7), CreatedAt: null.StringFrom("2024-03-01T09:30:00.123456")},
		{ID: 11, Subject: "Oil change", Type: null.StringFrom("preventive"), StageID: null.Uint64From(2),
			TechnicianID: null.Uint64From(5), ScheduledDate: null.StringFrom("2024-04-02T00:00:00")},
	}
	s.api.Teams = []dto.TeamDTO{{ID: 1, Name: "Internal Maintenance", CompanyID: null.Uint64From(1)}}
	s.api.Stages = []dto.StageDTO{
		{ID: 1, Name: "New Request", Sequence: null.IntFrom(10)},
		{ID: 2, Name: "In Progress", Sequence: null.IntFrom(20)},
		{ID: 3, Name: "Repaired", Sequence: null.IntFrom(30)},
	}
	s.repo = NewDomainRepository(s.api, nil, zap.NewNop())
	s.Require().NoError(s.repo.InitializeData(s.ctx))
}

func TestDomainRepositorySuite(t *testing.T) {
	suite.Run(t, new(DomainRepositoryTestSuite))
}

func (s *DomainRepositoryTestSuite) TestInitializeData_MapsServerFields() {
	snap := s.repo.Snapshot()
	s.False(s.repo.IsLoading())

	s.Require().Len(snap.Equipment, 3)
	s.Equal(85, snap.Equipment[0].HealthPercentage)
	s.Equal("SN-1", *snap.Equipment[0].SerialNumber)
	s.Equal(0, snap.Equipment[1].HealthPercentage, "присланный ноль не превращается в 100")
	s.Equal(100, snap.Equipment[2].HealthPercentage)
	s.Equal(uint64(1), snap.Equipment[2].CategoryID)
	s.Nil(snap.Equipment[2].TechnicianUserID)

	s.Require().Len(snap.Requests, 2)
	first := snap.Requests[0]
	s.Equal(entities.MaintenanceCorrective, first.MaintenanceType)
	s.Equal(entities.KanbanNormal, first.KanbanState)
	s.Equal(uint64(7), first.CreatedByUserID)
	s.Equal("2024-03-01", first.RequestDate)
	s.Equal(2024, first.CreatedAt.Year())
	s.Nil(first.TechnicianUserID)
	s.Equal("2024-04-02", *snap.Requests[1].ScheduledDate)
	s.Equal(entities.PriorityLow, snap.Requests[1].Priority)

	s.Require().Len(snap.Stages, 3)
	s.True(snap.Stages[2].IsClosed, "флаг закрытия берётся у стандартной стадии с тем же именем")
	s.Len(snap.Categories, 4)
	s.Len(snap.WorkCenters, 1)
}

func (s *DomainRepositoryTestSuite) TestRefreshStages_FallbackOnError() {
	s.api.ShouldFail = true
	s.api.FailOnly = map[string]bool{"ListStages": true}

	s.Require().NoError(s.repo.RefreshStages(s.ctx))
	s.Equal(entities.DefaultStages(), s.repo.Snapshot().Stages)
}

func (s *DomainRepositoryTestSuite) TestRefreshFailureKeepsPriorState() {
	s.api.ShouldFail = true

	s.Require().NoError(s.repo.RefreshEquipment(s.ctx))
	s.Require().NoError(s.repo.RefreshTeams(s.ctx))
	s.Require().NoError(s.repo.RefreshRequests(s.ctx))

	snap := s.repo.Snapshot()
	s.Len(snap.Equipment, 3)
	s.Len(snap.Teams, 1)
	s.Len(snap.Requests, 2)
}

func (s *DomainRepositoryTestSuite) TestRefreshUnauthorizedIsReturned() {
	s.api.ShouldFail = true
	s.api.FailErr = &apperrors.RemoteError{StatusCode: 401, Message: "Token is invalid!"}

	s.ErrorIs(s.repo.RefreshEquipment(s.ctx), apperrors.ErrUnauthorized)
	s.ErrorIs(s.repo.RefreshStages(s.ctx), apperrors.ErrUnauthorized)
}

func (s *DomainRepositoryTestSuite) TestAddEquipment_RefetchesOnSuccess() {
	s.api.Equipment = append(s.api.Equipment, dto.EquipmentDTO{ID: 101, Name: "Drill", Health: null.IntFrom(90)})

	created, err := s.repo.AddEquipment(s.ctx, entities.Equipment{Name: "Drill", HealthPercentage: 90})
	s.Require().NoError(err)
	s.Equal(uint64(101), created.ID)
	s.False(created.Unsynced)
	s.Len(s.repo.Snapshot().Equipment, 4)
	s.Len(s.api.CallsTo("ListEquipment"), 2)
}

func (s *DomainRepositoryTestSuite) TestAddEquipment_LocalFallback() {
	s.api.ShouldFail = true

	created, err := s.repo.AddEquipment(s.ctx, entities.Equipment{Name: "Lathe", HealthPercentage: 150})
	s.Require().NoError(err)
	s.True(created.Unsynced)
	s.Equal(uint64(4), created.ID)
	s.Equal(100, created.HealthPercentage)

	snap := s.repo.Snapshot()
	s.Require().Len(snap.Equipment, 4)
	s.True(snap.Equipment[3].Unsynced)
}

func (s *DomainRepositoryTestSuite) TestUpdateEquipment() {
	health := 20
	updated, err := s.repo.UpdateEquipment(s.ctx, 1, entities.EquipmentPatch{HealthPercentage: &health})
	s.Require().NoError(err)
	s.Equal(20, updated.HealthPercentage)
	s.False(updated.Unsynced)

	calls := s.api.CallsTo("UpdateEquipment")
	s.Require().Len(calls, 1)
	payload := calls[0].Payload.(dto.EquipmentPayload)
	s.Nil(payload.Name)
	s.Equal(20, *payload.HealthPercentage)

	s.api.ShouldFail = true
	name := "Laptop Pro"
	updated, err = s.repo.UpdateEquipment(s.ctx, 1, entities.EquipmentPatch{Name: &name})
	s.Require().NoError(err)
	s.Equal("Laptop Pro", updated.Name)
	s.True(updated.Unsynced)

	_, err = s.repo.UpdateEquipment(s.ctx, 999, entities.EquipmentPatch{Name: &name})
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *DomainRepositoryTestSuite) TestDeleteEquipment() {
	s.Require().NoError(s.repo.DeleteEquipment(s.ctx, 2))
	s.Len(s.repo.Snapshot().Equipment, 2)

	s.api.ShouldFail = true
	s.Require().NoError(s.repo.DeleteEquipment(s.ctx, 3))
	s.Len(s.repo.Snapshot().Equipment, 1)

	s.ErrorIs(s.repo.DeleteEquipment(s.ctx, 3), apperrors.ErrNotFound)
}

func (s *DomainRepositoryTestSuite) TestTeamsCRUD() {
	s.api.Teams = append(s.api.Teams, dto.TeamDTO{ID: 101, Name: "Night Shift"})
	team, err := s.repo.AddTeam(s.ctx, entities.MaintenanceTeam{Name: "Night Shift", CompanyID: 1})
	s.Require().NoError(err)
	s.Equal(uint64(101), team.ID)
	s.Equal(uint64(1), team.CompanyID)

	name := "Day Shift"
	team, err = s.repo.UpdateTeam(s.ctx, 101, entities.TeamPatch{Name: &name})
	s.Require().NoError(err)
	s.Equal("Day Shift", team.Name)

	s.Require().NoError(s.repo.DeleteTeam(s.ctx, 101))
	s.Len(s.repo.Snapshot().Teams, 1)

	s.api.ShouldFail = true
	team, err = s.repo.AddTeam(s.ctx, entities.MaintenanceTeam{Name: "Offline", CompanyID: 1})
	s.Require().NoError(err)
	s.True(team.Unsynced)
	s.Equal(uint64(2), team.ID)
}

func (s *DomainRepositoryTestSuite) TestUpdateRequest_SendsOnlyPatchFields() {
	stage := uint64(3)
	updated, err := s.repo.UpdateRequest(s.ctx, 10, entities.RequestPatch{StageID: &stage})
	s.Require().NoError(err)
	s.Equal(uint64(3), updated.StageID)
	s.Equal("Broken screen", updated.Subject)

	calls := s.api.CallsTo("UpdateRequest")
	s.Require().Len(calls, 1)
	s.Equal(uint64(10), calls[0].ID)
	payload := calls[0].Payload.(dto.UpdateRequestPayload)
	s.Equal(uint64(3), *payload.StageID)
	s.Nil(payload.TechnicianUserID)
	s.Nil(payload.Priority)
	s.Nil(payload.KanbanState)
}

func (s *DomainRepositoryTestSuite) TestUpdateRequest_FallbackMarksUnsynced() {
	s.api.ShouldFail = true
	blocked := entities.KanbanBlocked

	updated, err := s.repo.UpdateRequest(s.ctx, 11, entities.RequestPatch{KanbanState: &blocked})
	s.Require().NoError(err)
	s.True(updated.Unsynced)
	s.Equal(entities.KanbanBlocked, updated.KanbanState)
}

func (s *DomainRepositoryTestSuite) TestUpdateRequest_Unauthorized() {
	s.api.ShouldFail = true
	s.api.FailErr = &apperrors.RemoteError{StatusCode: 401}
	stage := uint64(2)

	_, err := s.repo.UpdateRequest(s.ctx, 10, entities.RequestPatch{StageID: &stage})
	s.ErrorIs(err, apperrors.ErrUnauthorized)

	req, err := s.repo.FindRequest(10)
	s.Require().NoError(err)
	s.Equal(uint64(1), req.StageID, "при 401 локальное состояние не меняется")
}

func (s *DomainRepositoryTestSuite) TestAddRequest() {
	s.api.ShouldFail = true
	created, err := s.repo.AddRequest(s.ctx, entities.MaintenanceRequest{Subject: "Leak", StageID: 1, CreatedByUserID: 7})
	s.Require().NoError(err)
	s.True(created.Unsynced)
	s.Equal(uint64(12), created.ID)
	s.Len(s.repo.Snapshot().Requests, 3)
}

func (s *DomainRepositoryTestSuite) TestDeleteRequest_IsLocalOnly() {
	s.Require().NoError(s.repo.DeleteRequest(s.ctx, 10))
	s.Len(s.repo.Snapshot().Requests, 1)
	s.Empty(s.api.CallsTo("UpdateRequest"))
	s.ErrorIs(s.repo.DeleteRequest(s.ctx, 10), apperrors.ErrNotFound)

	// сервер по-прежнему знает заявку, синхронизация её вернёт
	s.Require().NoError(s.repo.RefreshRequests(s.ctx))
	s.Len(s.repo.Snapshot().Requests, 2)
}

func (s *DomainRepositoryTestSuite) TestSnapshotIsACopy() {
	snap := s.repo.Snapshot()
	snap.Equipment[0].Name = "изменено снаружи"
	s.Equal("Laptop", s.repo.Snapshot().Equipment[0].Name)
}

func (s *DomainRepositoryTestSuite) TestReset() {
	s.repo.Reset()
	snap := s.repo.Snapshot()
	s.Empty(snap.Equipment)
	s.Empty(snap.Requests)
	s.Empty(snap.Stages)
}

// logoutDuringLoadAPI: стадии отвечают 401 и завершают сессию, пока список заявок ещё загружается.
type logoutDuringLoadAPI struct {
	*mock.MockProvider
	repo      *DomainRepository
	resetDone chan struct{}
}

func (a *logoutDuringLoadAPI) ListStages(context.Context) ([]dto.StageDTO, error) {
	a.repo.Reset()
	close(a.resetDone)
	return nil, apperrors.ErrUnauthorized
}

func (a *logoutDuringLoadAPI) ListRequests(ctx context.Context) ([]dto.MaintenanceRequestDTO, error) {
	<-a.resetDone
	return a.MockProvider.ListRequests(ctx)
}

func (s *DomainRepositoryTestSuite) TestInitializeData_LogoutDuringLoadLeavesRepositoryEmpty() {
	api := &logoutDuringLoadAPI{MockProvider: s.api, resetDone: make(chan struct{})}
	repo := NewDomainRepository(api, nil, zap.NewNop())
	api.repo = repo

	s.ErrorIs(repo.InitializeData(s.ctx), apperrors.ErrUnauthorized)

	snap := repo.Snapshot()
	s.Empty(snap.Requests, "ответ, полученный после выхода, не записывается")
	s.Empty(snap.Equipment)
	s.Empty(snap.Teams)
	s.Empty(snap.Stages)
	s.Empty(snap.Categories)
	s.Empty(snap.WorkCenters)
}

// gatedRequestsAPI задерживает ListRequests, пока тест не откроет release.
type gatedRequestsAPI struct {
	*mock.MockProvider
	started chan struct{}
	release chan struct{}
}

func (a *gatedRequestsAPI) ListRequests(ctx context.Context) ([]dto.MaintenanceRequestDTO, error) {
	a.started <- struct{}{}
	<-a.release
	return a.MockProvider.ListRequests(ctx)
}

func (s *DomainRepositoryTestSuite) TestRefreshRequests_ResetInFlightDropsResult() {
	api := &gatedRequestsAPI{MockProvider: s.api, started: make(chan struct{}, 1), release: make(chan struct{})}
	repo := NewDomainRepository(api, nil, zap.NewNop())

	done := make(chan error, 1)
	go func() { done <- repo.RefreshRequests(s.ctx) }()
	<-api.started
	repo.Reset()
	close(api.release)

	s.Require().NoError(<-done)
	s.Empty(repo.Snapshot().Requests)

	// загрузка, начатая после выхода, пишет как обычно
	s.Require().NoError(repo.RefreshRequests(s.ctx))
	<-api.started
	s.Len(repo.Snapshot().Requests, 2)
}
