package gearapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"gearguard/internal/integrations"
	"gearguard/internal/integrations/dto"
	"gearguard/pkg/config"
)

// Provider - типизированный клиент удалённого API обслуживания.
type Provider struct {
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
	tokens     integrations.TokenProvider
	logger     *zap.Logger

	hookMu         sync.RWMutex
	onUnauthorized func(ctx context.Context)
}

func New(cfg config.RemoteAPIConfig, tokens integrations.TokenProvider, logger *zap.Logger) *Provider {
	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}
	return &Provider{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		limiter:    rate.NewLimiter(limit, burst),
		tokens:     tokens,
		logger:     logger.Named("gearapi"),
	}
}

// SetUnauthorizedHandler регистрирует обработчик 401 от API (принудительный выход).
func (p *Provider) SetUnauthorizedHandler(fn func(ctx context.Context)) {
	p.hookMu.Lock()
	p.onUnauthorized = fn
	p.hookMu.Unlock()
}

func (p *Provider) unauthorized(ctx context.Context) {
	p.hookMu.RLock()
	fn := p.onUnauthorized
	p.hookMu.RUnlock()
	if fn != nil {
		fn(ctx)
	}
}

// fetchList - универсальная загрузка коллекции. Записи без ID пропускаются.
func fetchList[Ext interface{ GetID() uint64 }](p *Provider, ctx context.Context, endpoint string) ([]Ext, error) {
	var raw json.RawMessage
	if err := p.call(ctx, http.MethodGet, endpoint, endpoint, nil, &raw, true); err != nil {
		return nil, err
	}

	var items []Ext
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("ошибка парсинга JSON для эндпоинта %s: %w", endpoint, err)
	}
	p.logger.Debug("Успешно получено и распарсено",
		zap.String("endpoint", endpoint),
		zap.Int("count", len(items)),
	)

	out := make([]Ext, 0, len(items))
	for _, item := range items {
		if item.GetID() == 0 {
			p.logger.Warn("Запись без ID пропущена", zap.String("endpoint", endpoint))
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

func (p *Provider) Login(ctx context.Context, payload dto.LoginPayload) (*dto.AuthResponse, error) {
	var resp dto.AuthResponse
	if err := p.call(ctx, http.MethodPost, "/login", "/login", payload, &resp, false); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (p *Provider) Signup(ctx context.Context, payload dto.SignupPayload) (*dto.AuthResponse, error) {
	var resp dto.AuthResponse
	if err := p.call(ctx, http.MethodPost, "/signup", "/signup", payload, &resp, false); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (p *Provider) DashboardStats(ctx context.Context) (*dto.DashboardStatsDTO, error) {
	var resp dto.DashboardStatsDTO
	if err := p.call(ctx, http.MethodGet, "/dashboard/stats", "/dashboard/stats", nil, &resp, true); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (p *Provider) ListRequests(ctx context.Context) ([]dto.MaintenanceRequestDTO, error) {
	return fetchList[dto.MaintenanceRequestDTO](p, ctx, "/maintenance/requests")
}

func (p *Provider) GetRequest(ctx context.Context, id uint64) (*dto.MaintenanceRequestDTO, error) {
	var resp dto.MaintenanceRequestDTO
	if err := p.call(ctx, http.MethodGet, fmt.Sprintf("/maintenance/requests/%d", id), "/maintenance/requests/:id", nil, &resp, true); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (p *Provider) CreateRequest(ctx context.Context, payload dto.CreateRequestPayload) (*dto.CreatedResponse, error) {
	var resp dto.CreatedResponse
	if err := p.call(ctx, http.MethodPost, "/maintenance/requests", "/maintenance/requests", payload, &resp, true); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (p *Provider) UpdateRequest(ctx context.Context, id uint64, payload dto.UpdateRequestPayload) error {
	return p.call(ctx, http.MethodPut, fmt.Sprintf("/maintenance/requests/%d", id), "/maintenance/requests/:id", payload, nil, true)
}

func (p *Provider) ListEquipment(ctx context.Context) ([]dto.EquipmentDTO, error) {
	return fetchList[dto.EquipmentDTO](p, ctx, "/equipment")
}

func (p *Provider) GetEquipment(ctx context.Context, id uint64) (*dto.EquipmentDTO, error) {
	var resp dto.EquipmentDTO
	if err := p.call(ctx, http.MethodGet, fmt.Sprintf("/equipment/%d", id), "/equipment/:id", nil, &resp, true); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (p *Provider) CreateEquipment(ctx context.Context, payload dto.EquipmentPayload) (*dto.CreatedResponse, error) {
	var resp dto.CreatedResponse
	if err := p.call(ctx, http.MethodPost, "/equipment", "/equipment", payload, &resp, true); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (p *Provider) UpdateEquipment(ctx context.Context, id uint64, payload dto.EquipmentPayload) error {
	return p.call(ctx, http.MethodPut, fmt.Sprintf("/equipment/%d", id), "/equipment/:id", payload, nil, true)
}

func (p *Provider) DeleteEquipment(ctx context.Context, id uint64) error {
	return p.call(ctx, http.MethodDelete, fmt.Sprintf("/equipment/%d", id), "/equipment/:id", nil, nil, true)
}

func (p *Provider) ListTeams(ctx context.Context) ([]dto.TeamDTO, error) {
	return fetchList[dto.TeamDTO](p, ctx, "/teams")
}

func (p *Provider) CreateTeam(ctx context.Context, payload dto.TeamPayload) (*dto.CreatedResponse, error) {
	var resp dto.CreatedResponse
	if err := p.call(ctx, http.MethodPost, "/teams", "/teams", payload, &resp, true); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (p *Provider) UpdateTeam(ctx context.Context, id uint64, payload dto.TeamPayload) error {
	return p.call(ctx, http.MethodPut, fmt.Sprintf("/teams/%d", id), "/teams/:id", payload, nil, true)
}

func (p *Provider) DeleteTeam(ctx context.Context, id uint64) error {
	return p.call(ctx, http.MethodDelete, fmt.Sprintf("/teams/%d", id), "/teams/:id", nil, nil, true)
}

func (p *Provider) ListStages(ctx context.Context) ([]dto.StageDTO, error) {
	return fetchList[dto.StageDTO](p, ctx, "/stages")
}

var _ integrations.MaintenanceAPI = (*Provider)(nil)
