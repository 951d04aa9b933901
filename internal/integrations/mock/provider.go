package mock

import (
	"context"
	"sync"

	"github.com/aarondl/null/v8"

	"gearguard/internal/integrations"
	"gearguard/internal/integrations/dto"
	apperrors "gearguard/pkg/errors"
)

// Call - запись об одном обращении к фейковому API.
type Call struct {
	Method  string
	ID      uint64
	Payload interface{}
}

// MockProvider - API в памяти для тестов. ShouldFail роняет все вызовы с FailErr.
type MockProvider struct {
	mu sync.Mutex

	ShouldFail bool
	FailErr    error
	// FailOnly ограничивает отказ перечисленными методами.
	FailOnly map[string]bool
	// Persist: созданные записи попадают в списки, как на настоящем сервере.
	Persist bool
	// SkipCallLog отключает журнал Calls для долгоживущего демо-режима.
	SkipCallLog bool

	Auth      *dto.AuthResponse
	Stats     dto.DashboardStatsDTO
	Requests  []dto.MaintenanceRequestDTO
	Equipment []dto.EquipmentDTO
	Teams     []dto.TeamDTO
	Stages    []dto.StageDTO

	Calls  []Call
	nextID uint64
}

func NewMockProvider() *MockProvider {
	return &MockProvider{nextID: 100}
}

var _ integrations.MaintenanceAPI = (*MockProvider)(nil)

func (m *MockProvider) record(method string, id uint64, payload interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.SkipCallLog {
		m.Calls = append(m.Calls, Call{Method: method, ID: id, Payload: payload})
	}
	if m.ShouldFail && (len(m.FailOnly) == 0 || m.FailOnly[method]) {
		if m.FailErr != nil {
			return m.FailErr
		}
		return apperrors.ErrRemoteUnavailable
	}
	return nil
}

// CallsTo возвращает вызовы конкретного метода.
func (m *MockProvider) CallsTo(method string) []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Call
	for _, c := range m.Calls {
		if c.Method == method {
			out = append(out, c)
		}
	}
	return out
}

func (m *MockProvider) newID() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	return m.nextID
}

func (m *MockProvider) Login(ctx context.Context, payload dto.LoginPayload) (*dto.AuthResponse, error) {
	if err := m.record("Login", 0, payload); err != nil {
		return nil, err
	}
	if m.Auth == nil {
		return nil, &apperrors.RemoteError{StatusCode: 401, Message: "User not found", Endpoint: "/login"}
	}
	resp := *m.Auth
	return &resp, nil
}

func (m *MockProvider) Signup(ctx context.Context, payload dto.SignupPayload) (*dto.AuthResponse, error) {
	if err := m.record("Signup", 0, payload); err != nil {
		return nil, err
	}
	if m.Auth == nil {
		return nil, &apperrors.RemoteError{StatusCode: 400, Message: "Email already registered", Endpoint: "/signup"}
	}
	resp := *m.Auth
	return &resp, nil
}

func (m *MockProvider) DashboardStats(ctx context.Context) (*dto.DashboardStatsDTO, error) {
	if err := m.record("DashboardStats", 0, nil); err != nil {
		return nil, err
	}
	stats := m.Stats
	return &stats, nil
}

func (m *MockProvider) ListRequests(ctx context.Context) ([]dto.MaintenanceRequestDTO, error) {
	if err := m.record("ListRequests", 0, nil); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]dto.MaintenanceRequestDTO(nil), m.Requests...), nil
}

func (m *MockProvider) GetRequest(ctx context.Context, id uint64) (*dto.MaintenanceRequestDTO, error) {
	if err := m.record("GetRequest", id, nil); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.Requests {
		if r.ID == id {
			found := r
			return &found, nil
		}
	}
	return nil, &apperrors.RemoteError{StatusCode: 404, Message: "Not Found", Endpoint: "/maintenance/requests/:id"}
}

func (m *MockProvider) CreateRequest(ctx context.Context, payload dto.CreateRequestPayload) (*dto.CreatedResponse, error) {
	if err := m.record("CreateRequest", 0, payload); err != nil {
		return nil, err
	}
	id := m.newID()
	if m.Persist {
		m.mu.Lock()
		m.Requests = append(m.Requests, dto.MaintenanceRequestDTO{
			ID:            id,
			Subject:       payload.Subject,
			Description:   null.StringFromPtr(payload.Description),
			Type:          null.StringFrom(payload.RequestType),
			Priority:      null.StringFrom(payload.Priority),
			StageID:       null.Uint64FromPtr(payload.StageID),
			EquipmentID:   null.Uint64FromPtr(payload.EquipmentID),
			ScheduledDate: null.StringFromPtr(payload.ScheduledDate),
		})
		m.mu.Unlock()
	}
	return &dto.CreatedResponse{Message: "Request created!", ID: id}, nil
}

func (m *MockProvider) UpdateRequest(ctx context.Context, id uint64, payload dto.UpdateRequestPayload) error {
	if err := m.record("UpdateRequest", id, payload); err != nil || !m.Persist {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.Requests {
		if m.Requests[i].ID != id {
			continue
		}
		r := &m.Requests[i]
		if payload.StageID != nil {
			r.StageID = null.Uint64From(*payload.StageID)
		}
		if payload.TechnicianUserID != nil {
			r.TechnicianID = null.Uint64From(*payload.TechnicianUserID)
		}
		if payload.Priority != nil {
			r.Priority = null.StringFrom(*payload.Priority)
		}
		if payload.KanbanState != nil {
			r.KanbanState = null.StringFrom(*payload.KanbanState)
		}
	}
	return nil
}

func (m *MockProvider) ListEquipment(ctx context.Context) ([]dto.EquipmentDTO, error) {
	if err := m.record("ListEquipment", 0, nil); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]dto.EquipmentDTO(nil), m.Equipment...), nil
}

func (m *MockProvider) GetEquipment(ctx context.Context, id uint64) (*dto.EquipmentDTO, error) {
	if err := m.record("GetEquipment", id, nil); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.Equipment {
		if e.ID == id {
			found := e
			return &found, nil
		}
	}
	return nil, &apperrors.RemoteError{StatusCode: 404, Message: "Not Found", Endpoint: "/equipment/:id"}
}

func (m *MockProvider) CreateEquipment(ctx context.Context, payload dto.EquipmentPayload) (*dto.CreatedResponse, error) {
	if err := m.record("CreateEquipment", 0, payload); err != nil {
		return nil, err
	}
	id := m.newID()
	if m.Persist {
		m.mu.Lock()
		created := dto.EquipmentDTO{
			ID:                id,
			SerialNumber:      null.StringFromPtr(payload.SerialNumber),
			CategoryID:        null.Uint64FromPtr(payload.CategoryID),
			MaintenanceTeamID: null.Uint64FromPtr(payload.MaintenanceTeamID),
			TechnicianUserID:  null.Uint64FromPtr(payload.TechnicianUserID),
			CompanyID:         null.Uint64FromPtr(payload.CompanyID),
			Health:            null.IntFromPtr(payload.HealthPercentage),
			Location:          null.StringFromPtr(payload.Location),
		}
		if payload.Name != nil {
			created.Name = *payload.Name
		}
		m.Equipment = append(m.Equipment, created)
		m.mu.Unlock()
	}
	return &dto.CreatedResponse{Message: "Equipment created successfully", ID: id}, nil
}

func (m *MockProvider) UpdateEquipment(ctx context.Context, id uint64, payload dto.EquipmentPayload) error {
	if err := m.record("UpdateEquipment", id, payload); err != nil || !m.Persist {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.Equipment {
		if m.Equipment[i].ID != id {
			continue
		}
		e := &m.Equipment[i]
		if payload.Name != nil {
			e.Name = *payload.Name
		}
		if payload.SerialNumber != nil {
			e.SerialNumber = null.StringFrom(*payload.SerialNumber)
		}
		if payload.CategoryID != nil {
			e.CategoryID = null.Uint64From(*payload.CategoryID)
		}
		if payload.MaintenanceTeamID != nil {
			e.MaintenanceTeamID = null.Uint64From(*payload.MaintenanceTeamID)
		}
		if payload.Location != nil {
			e.Location = null.StringFrom(*payload.Location)
		}
		if payload.HealthPercentage != nil {
			e.Health = null.IntFrom(*payload.HealthPercentage)
		}
	}
	return nil
}

func (m *MockProvider) DeleteEquipment(ctx context.Context, id uint64) error {
	if err := m.record("DeleteEquipment", id, nil); err != nil || !m.Persist {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.Equipment[:0]
	for _, e := range m.Equipment {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	m.Equipment = kept
	return nil
}

func (m *MockProvider) ListTeams(ctx context.Context) ([]dto.TeamDTO, error) {
	if err := m.record("ListTeams", 0, nil); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]dto.TeamDTO(nil), m.Teams...), nil
}

func (m *MockProvider) CreateTeam(ctx context.Context, payload dto.TeamPayload) (*dto.CreatedResponse, error) {
	if err := m.record("CreateTeam", 0, payload); err != nil {
		return nil, err
	}
	id := m.newID()
	if m.Persist {
		m.mu.Lock()
		created := dto.TeamDTO{ID: id, CompanyID: null.Uint64FromPtr(payload.CompanyID)}
		if payload.Name != nil {
			created.Name = *payload.Name
		}
		m.Teams = append(m.Teams, created)
		m.mu.Unlock()
	}
	return &dto.CreatedResponse{Message: "Team created successfully", ID: id}, nil
}

func (m *MockProvider) UpdateTeam(ctx context.Context, id uint64, payload dto.TeamPayload) error {
	if err := m.record("UpdateTeam", id, payload); err != nil || !m.Persist {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.Teams {
		if m.Teams[i].ID == id && payload.Name != nil {
			m.Teams[i].Name = *payload.Name
		}
	}
	return nil
}

func (m *MockProvider) DeleteTeam(ctx context.Context, id uint64) error {
	if err := m.record("DeleteTeam", id, nil); err != nil || !m.Persist {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.Teams[:0]
	for _, t := range m.Teams {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	m.Teams = kept
	return nil
}

func (m *MockProvider) ListStages(ctx context.Context) ([]dto.StageDTO, error) {
	if err := m.record("ListStages", 0, nil); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]dto.StageDTO(nil), m.Stages...), nil
}
