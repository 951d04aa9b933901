package repositories

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"gearguard/internal/entities"
	"gearguard/internal/events"
	"gearguard/internal/integrations"
	"gearguard/pkg/eventbus"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/metrics"
)

// DomainRepositoryInterface - единственный владелец коллекций домена.
// Читатели получают копии через Snapshot.
//
// Ошибки удалённого API наружу не выходят: чтение оставляет прежнее состояние,
// запись применяется локально с флагом Unsynced. Исключения - ErrUnauthorized
// и ErrNotFound для сущности, которой нет локально.
type DomainRepositoryInterface interface {
	InitializeData(ctx context.Context) error
	RefreshEquipment(ctx context.Context) error
	RefreshRequests(ctx context.Context) error
	RefreshTeams(ctx context.Context) error
	RefreshStages(ctx context.Context) error

	AddEquipment(ctx context.Context, e entities.Equipment) (entities.Equipment, error)
	UpdateEquipment(ctx context.Context, id uint64, patch entities.EquipmentPatch) (entities.Equipment, error)
	DeleteEquipment(ctx context.Context, id uint64) error

	AddTeam(ctx context.Context, t entities.MaintenanceTeam) (entities.MaintenanceTeam, error)
	UpdateTeam(ctx context.Context, id uint64, patch entities.TeamPatch) (entities.MaintenanceTeam, error)
	DeleteTeam(ctx context.Context, id uint64) error

	AddRequest(ctx context.Context, r entities.MaintenanceRequest) (entities.MaintenanceRequest, error)
	UpdateRequest(ctx context.Context, id uint64, patch entities.RequestPatch) (entities.MaintenanceRequest, error)
	DeleteRequest(ctx context.Context, id uint64) error
	FindRequest(id uint64) (entities.MaintenanceRequest, error)

	Snapshot() entities.Snapshot
	IsLoading() bool
	Reset()
}

type DomainRepository struct {
	api    integrations.MaintenanceAPI
	bus    *eventbus.Bus
	logger *zap.Logger

	// mu защищает только память, сетевые вызовы выполняются без блокировки
	mu          sync.RWMutex
	equipment   []entities.Equipment
	requests    []entities.MaintenanceRequest
	stages      []entities.MaintenanceStage
	teams       []entities.MaintenanceTeam
	categories  []entities.EquipmentCategory
	workCenters []entities.WorkCenter
	// generation растёт при каждом Reset. Ответ API, запрошенный до Reset, не записывается.
	generation uint64

	loading atomic.Bool
}

func NewDomainRepository(api integrations.MaintenanceAPI, bus *eventbus.Bus, logger *zap.Logger) *DomainRepository {
	return &DomainRepository{
		api:         api,
		bus:         bus,
		logger:      logger.Named("domain_repository"),
		equipment:   []entities.Equipment{},
		requests:    []entities.MaintenanceRequest{},
		stages:      []entities.MaintenanceStage{},
		teams:       []entities.MaintenanceTeam{},
		categories:  []entities.EquipmentCategory{},
		workCenters: []entities.WorkCenter{},
	}
}

var _ DomainRepositoryInterface = (*DomainRepository)(nil)

func (r *DomainRepository) publish(ctx context.Context, collection, action string, id uint64, unsynced bool) {
	if r.bus == nil {
		return
	}
	r.bus.Publish(ctx, events.CollectionChangedEvent{
		Collection: collection,
		Action:     action,
		EntityID:   id,
		Unsynced:   unsynced,
	})
}

// remoteFailure: true - API не ответил и нужно применить локальный запасной вариант.
// 401 возвращается как есть: сессия уже закрыта обработчиком клиента.
func (r *DomainRepository) remoteFailure(err error, op string, fields ...zap.Field) (bool, error) {
	if err == nil {
		return false, nil
	}
	if errors.Is(err, apperrors.ErrUnauthorized) {
		return false, apperrors.ErrUnauthorized
	}
	r.logger.Error(op+": ошибка API, изменение применено локально", append(fields, zap.Error(err))...)
	return true, nil
}

func (r *DomainRepository) currentGeneration() uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.generation
}

// commit применяет изменение под блокировкой, если с момента gen не было Reset.
func (r *DomainRepository) commit(gen uint64, collection string, apply func()) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.generation != gen {
		r.logger.Info("Сессия завершена во время запроса к API, результат отброшен",
			zap.String("collection", collection))
		return false
	}
	apply()
	return true
}

// --- Загрузка ---

func (r *DomainRepository) InitializeData(ctx context.Context) error {
	r.loading.Store(true)
	defer r.loading.Store(false)

	gen := r.currentGeneration()
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	addTask := func(fn func(context.Context, uint64) error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(ctx, gen); err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
		}()
	}
	addTask(r.refreshEquipment)
	addTask(r.refreshRequests)
	addTask(r.refreshTeams)
	addTask(r.refreshStages)
	wg.Wait()

	r.commit(gen, "catalogs", func() {
		r.categories = entities.DefaultCategories()
		r.workCenters = entities.DefaultWorkCenters()
	})

	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}

func (r *DomainRepository) RefreshEquipment(ctx context.Context) error {
	return r.refreshEquipment(ctx, r.currentGeneration())
}

func (r *DomainRepository) refreshEquipment(ctx context.Context, gen uint64) error {
	items, err := r.api.ListEquipment(ctx)
	if err != nil {
		return r.refreshFailed(err, events.CollectionEquipment)
	}
	mapped := make([]entities.Equipment, len(items))
	for i, item := range items {
		mapped[i] = equipmentFromDTO(item)
	}
	if !r.commit(gen, events.CollectionEquipment, func() { r.equipment = mapped }) {
		return nil
	}
	r.reportUnsynced()
	r.publish(ctx, events.CollectionEquipment, events.ActionRefreshed, 0, false)
	return nil
}

func (r *DomainRepository) RefreshRequests(ctx context.Context) error {
	return r.refreshRequests(ctx, r.currentGeneration())
}

func (r *DomainRepository) refreshRequests(ctx context.Context, gen uint64) error {
	items, err := r.api.ListRequests(ctx)
	if err != nil {
		return r.refreshFailed(err, events.CollectionRequests)
	}
	mapped := make([]entities.MaintenanceRequest, len(items))
	for i, item := range items {
		mapped[i] = requestFromDTO(item)
	}
	if !r.commit(gen, events.CollectionRequests, func() { r.requests = mapped }) {
		return nil
	}
	r.reportUnsynced()
	r.publish(ctx, events.CollectionRequests, events.ActionRefreshed, 0, false)
	return nil
}

// RefreshTeams при ошибке оставляет прежний список команд.
func (r *DomainRepository) RefreshTeams(ctx context.Context) error {
	return r.refreshTeams(ctx, r.currentGeneration())
}

func (r *DomainRepository) refreshTeams(ctx context.Context, gen uint64) error {
	items, err := r.api.ListTeams(ctx)
	if err != nil {
		return r.refreshFailed(err, events.CollectionTeams)
	}
	mapped := make([]entities.MaintenanceTeam, len(items))
	for i, item := range items {
		mapped[i] = teamFromDTO(item)
	}
	if !r.commit(gen, events.CollectionTeams, func() { r.teams = mapped }) {
		return nil
	}
	r.reportUnsynced()
	r.publish(ctx, events.CollectionTeams, events.ActionRefreshed, 0, false)
	return nil
}

// RefreshStages при ошибке подставляет четыре стандартные стадии.
func (r *DomainRepository) RefreshStages(ctx context.Context) error {
	return r.refreshStages(ctx, r.currentGeneration())
}

func (r *DomainRepository) refreshStages(ctx context.Context, gen uint64) error {
	items, err := r.api.ListStages(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) {
			return apperrors.ErrUnauthorized
		}
		r.logger.Warn("Стадии не загружены, используются стандартные", zap.Error(err))
		if r.commit(gen, events.CollectionStages, func() { r.stages = entities.DefaultStages() }) {
			r.publish(ctx, events.CollectionStages, events.ActionRefreshed, 0, false)
		}
		return nil
	}
	mapped := make([]entities.MaintenanceStage, len(items))
	for i, item := range items {
		mapped[i] = stageFromDTO(item)
	}
	if !r.commit(gen, events.CollectionStages, func() { r.stages = mapped }) {
		return nil
	}
	r.publish(ctx, events.CollectionStages, events.ActionRefreshed, 0, false)
	return nil
}

func (r *DomainRepository) refreshFailed(err error, collection string) error {
	if errors.Is(err, apperrors.ErrUnauthorized) {
		return apperrors.ErrUnauthorized
	}
	r.logger.Error("Не удалось обновить коллекцию, оставлено прежнее состояние",
		zap.String("collection", collection),
		zap.Error(err),
	)
	return nil
}

// --- Оборудование ---

func (r *DomainRepository) AddEquipment(ctx context.Context, e entities.Equipment) (entities.Equipment, error) {
	e.HealthPercentage = clampHealth(e.HealthPercentage)
	gen := r.currentGeneration()
	resp, err := r.api.CreateEquipment(ctx, equipmentPayload(e))
	fallback, err := r.remoteFailure(err, "AddEquipment", zap.String("name", e.Name))
	if err != nil {
		return entities.Equipment{}, err
	}

	if fallback {
		ok := r.commit(gen, events.CollectionEquipment, func() {
			if e.ID == 0 {
				e.ID = nextLocalID(r.equipment, func(x entities.Equipment) uint64 { return x.ID })
			}
			e.Unsynced = true
			r.equipment = append(r.equipment, e)
		})
		if !ok {
			return entities.Equipment{}, apperrors.ErrSessionMissing
		}
		r.reportUnsynced()
		r.publish(ctx, events.CollectionEquipment, events.ActionAdded, e.ID, true)
		return e, nil
	}

	e.ID = resp.ID
	if err := r.refreshEquipment(ctx, gen); err != nil {
		return entities.Equipment{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.generation != gen {
		return entities.Equipment{}, apperrors.ErrSessionMissing
	}
	for _, item := range r.equipment {
		if item.ID == e.ID {
			return item, nil
		}
	}
	// список не обновился: кладём подтверждённую запись сами
	r.equipment = append(r.equipment, e)
	return e, nil
}

func (r *DomainRepository) UpdateEquipment(ctx context.Context, id uint64, patch entities.EquipmentPatch) (entities.Equipment, error) {
	if patch.HealthPercentage != nil {
		h := clampHealth(*patch.HealthPercentage)
		patch.HealthPercentage = &h
	}
	gen := r.currentGeneration()
	if _, ok := r.equipmentIndex(id); !ok {
		return entities.Equipment{}, apperrors.ErrNotFound
	}

	fallback, err := r.remoteFailure(r.api.UpdateEquipment(ctx, id, equipmentPatchPayload(patch)), "UpdateEquipment", zap.Uint64("id", id))
	if err != nil {
		return entities.Equipment{}, err
	}

	r.mu.Lock()
	if r.generation != gen {
		r.mu.Unlock()
		return entities.Equipment{}, apperrors.ErrSessionMissing
	}
	var updated entities.Equipment
	found := false
	for i := range r.equipment {
		if r.equipment[i].ID == id {
			r.equipment[i] = patch.Apply(r.equipment[i])
			if fallback {
				r.equipment[i].Unsynced = true
			}
			updated, found = r.equipment[i], true
			break
		}
	}
	r.mu.Unlock()
	if !found {
		return entities.Equipment{}, apperrors.ErrNotFound
	}
	r.reportUnsynced()
	r.publish(ctx, events.CollectionEquipment, events.ActionUpdated, id, fallback)
	return updated, nil
}

func (r *DomainRepository) DeleteEquipment(ctx context.Context, id uint64) error {
	gen := r.currentGeneration()
	if _, ok := r.equipmentIndex(id); !ok {
		return apperrors.ErrNotFound
	}
	fallback, err := r.remoteFailure(r.api.DeleteEquipment(ctx, id), "DeleteEquipment", zap.Uint64("id", id))
	if err != nil {
		return err
	}

	if !r.commit(gen, events.CollectionEquipment, func() {
		r.equipment = removeByID(r.equipment, id, func(e entities.Equipment) uint64 { return e.ID })
	}) {
		return apperrors.ErrSessionMissing
	}
	r.reportUnsynced()
	r.publish(ctx, events.CollectionEquipment, events.ActionDeleted, id, fallback)
	return nil
}

func (r *DomainRepository) equipmentIndex(id uint64) (int, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i, e := range r.equipment {
		if e.ID == id {
			return i, true
		}
	}
	return -1, false
}

// --- Команды ---

func (r *DomainRepository) AddTeam(ctx context.Context, t entities.MaintenanceTeam) (entities.MaintenanceTeam, error) {
	gen := r.currentGeneration()
	resp, err := r.api.CreateTeam(ctx, teamPayload(t))
	fallback, err := r.remoteFailure(err, "AddTeam", zap.String("name", t.Name))
	if err != nil {
		return entities.MaintenanceTeam{}, err
	}

	if fallback {
		ok := r.commit(gen, events.CollectionTeams, func() {
			if t.ID == 0 {
				t.ID = nextLocalID(r.teams, func(x entities.MaintenanceTeam) uint64 { return x.ID })
			}
			t.Unsynced = true
			r.teams = append(r.teams, t)
		})
		if !ok {
			return entities.MaintenanceTeam{}, apperrors.ErrSessionMissing
		}
		r.reportUnsynced()
		r.publish(ctx, events.CollectionTeams, events.ActionAdded, t.ID, true)
		return t, nil
	}

	t.ID = resp.ID
	if err := r.refreshTeams(ctx, gen); err != nil {
		return entities.MaintenanceTeam{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.generation != gen {
		return entities.MaintenanceTeam{}, apperrors.ErrSessionMissing
	}
	for _, item := range r.teams {
		if item.ID == t.ID {
			return item, nil
		}
	}
	r.teams = append(r.teams, t)
	return t, nil
}

func (r *DomainRepository) UpdateTeam(ctx context.Context, id uint64, patch entities.TeamPatch) (entities.MaintenanceTeam, error) {
	gen := r.currentGeneration()
	if !r.hasTeam(id) {
		return entities.MaintenanceTeam{}, apperrors.ErrNotFound
	}
	fallback, err := r.remoteFailure(r.api.UpdateTeam(ctx, id, teamPatchPayload(patch)), "UpdateTeam", zap.Uint64("id", id))
	if err != nil {
		return entities.MaintenanceTeam{}, err
	}

	r.mu.Lock()
	if r.generation != gen {
		r.mu.Unlock()
		return entities.MaintenanceTeam{}, apperrors.ErrSessionMissing
	}
	var updated entities.MaintenanceTeam
	found := false
	for i := range r.teams {
		if r.teams[i].ID == id {
			r.teams[i] = patch.Apply(r.teams[i])
			if fallback {
				r.teams[i].Unsynced = true
			}
			updated, found = r.teams[i], true
			break
		}
	}
	r.mu.Unlock()
	if !found {
		return entities.MaintenanceTeam{}, apperrors.ErrNotFound
	}
	r.reportUnsynced()
	r.publish(ctx, events.CollectionTeams, events.ActionUpdated, id, fallback)
	return updated, nil
}

func (r *DomainRepository) DeleteTeam(ctx context.Context, id uint64) error {
	gen := r.currentGeneration()
	if !r.hasTeam(id) {
		return apperrors.ErrNotFound
	}
	fallback, err := r.remoteFailure(r.api.DeleteTeam(ctx, id), "DeleteTeam", zap.Uint64("id", id))
	if err != nil {
		return err
	}

	if !r.commit(gen, events.CollectionTeams, func() {
		r.teams = removeByID(r.teams, id, func(t entities.MaintenanceTeam) uint64 { return t.ID })
	}) {
		return apperrors.ErrSessionMissing
	}
	r.reportUnsynced()
	r.publish(ctx, events.CollectionTeams, events.ActionDeleted, id, fallback)
	return nil
}

func (r *DomainRepository) hasTeam(id uint64) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, t := range r.teams {
		if t.ID == id {
			return true
		}
	}
	return false
}

// --- Заявки ---

func (r *DomainRepository) AddRequest(ctx context.Context, req entities.MaintenanceRequest) (entities.MaintenanceRequest, error) {
	gen := r.currentGeneration()
	resp, err := r.api.CreateRequest(ctx, requestCreatePayload(req))
	fallback, err := r.remoteFailure(err, "AddRequest", zap.String("subject", req.Subject))
	if err != nil {
		return entities.MaintenanceRequest{}, err
	}

	if fallback {
		ok := r.commit(gen, events.CollectionRequests, func() {
			if req.ID == 0 {
				req.ID = nextLocalID(r.requests, func(x entities.MaintenanceRequest) uint64 { return x.ID })
			}
			req.Unsynced = true
			r.requests = append(r.requests, req)
		})
		if !ok {
			return entities.MaintenanceRequest{}, apperrors.ErrSessionMissing
		}
		r.reportUnsynced()
		r.publish(ctx, events.CollectionRequests, events.ActionAdded, req.ID, true)
		return req, nil
	}

	req.ID = resp.ID
	if err := r.refreshRequests(ctx, gen); err != nil {
		return entities.MaintenanceRequest{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.generation != gen {
		return entities.MaintenanceRequest{}, apperrors.ErrSessionMissing
	}
	for _, item := range r.requests {
		if item.ID == req.ID {
			return item, nil
		}
	}
	r.requests = append(r.requests, req)
	return req, nil
}

// UpdateRequest отправляет только поля патча: стадию, исполнителя, приоритет, kanban-состояние.
func (r *DomainRepository) UpdateRequest(ctx context.Context, id uint64, patch entities.RequestPatch) (entities.MaintenanceRequest, error) {
	gen := r.currentGeneration()
	if _, err := r.FindRequest(id); err != nil {
		return entities.MaintenanceRequest{}, err
	}
	fallback, err := r.remoteFailure(r.api.UpdateRequest(ctx, id, requestPatchPayload(patch)), "UpdateRequest", zap.Uint64("id", id))
	if err != nil {
		return entities.MaintenanceRequest{}, err
	}

	r.mu.Lock()
	if r.generation != gen {
		r.mu.Unlock()
		return entities.MaintenanceRequest{}, apperrors.ErrSessionMissing
	}
	var updated entities.MaintenanceRequest
	found := false
	for i := range r.requests {
		if r.requests[i].ID == id {
			r.requests[i] = patch.Apply(r.requests[i])
			if fallback {
				r.requests[i].Unsynced = true
			}
			updated, found = r.requests[i], true
			break
		}
	}
	r.mu.Unlock()
	if !found {
		return entities.MaintenanceRequest{}, apperrors.ErrNotFound
	}
	r.reportUnsynced()
	r.publish(ctx, events.CollectionRequests, events.ActionUpdated, id, fallback)
	return updated, nil
}

// DeleteRequest удаляет заявку только локально: у API нет такого эндпоинта.
// Следующая синхронизация вернёт заявку, если она есть на сервере.
func (r *DomainRepository) DeleteRequest(ctx context.Context, id uint64) error {
	r.mu.Lock()
	before := len(r.requests)
	r.requests = removeByID(r.requests, id, func(m entities.MaintenanceRequest) uint64 { return m.ID })
	removed := len(r.requests) != before
	r.mu.Unlock()

	if !removed {
		return apperrors.ErrNotFound
	}
	r.reportUnsynced()
	r.publish(ctx, events.CollectionRequests, events.ActionDeleted, id, true)
	return nil
}

func (r *DomainRepository) FindRequest(id uint64) (entities.MaintenanceRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, req := range r.requests {
		if req.ID == id {
			return req, nil
		}
	}
	return entities.MaintenanceRequest{}, apperrors.ErrNotFound
}

// --- Чтение ---

func (r *DomainRepository) Snapshot() entities.Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return entities.Snapshot{
		Equipment:   append([]entities.Equipment{}, r.equipment...),
		Requests:    append([]entities.MaintenanceRequest{}, r.requests...),
		Stages:      append([]entities.MaintenanceStage{}, r.stages...),
		Teams:       append([]entities.MaintenanceTeam{}, r.teams...),
		Categories:  append([]entities.EquipmentCategory{}, r.categories...),
		WorkCenters: append([]entities.WorkCenter{}, r.workCenters...),
	}
}

func (r *DomainRepository) IsLoading() bool {
	return r.loading.Load()
}

// Reset очищает все коллекции. Вызывается при выходе из сессии.
func (r *DomainRepository) Reset() {
	r.mu.Lock()
	r.generation++
	r.equipment = []entities.Equipment{}
	r.requests = []entities.MaintenanceRequest{}
	r.stages = []entities.MaintenanceStage{}
	r.teams = []entities.MaintenanceTeam{}
	r.categories = []entities.EquipmentCategory{}
	r.workCenters = []entities.WorkCenter{}
	r.mu.Unlock()
	r.reportUnsynced()
}

func (r *DomainRepository) reportUnsynced() {
	r.mu.RLock()
	eq, rq, tm := 0, 0, 0
	for _, e := range r.equipment {
		if e.Unsynced {
			eq++
		}
	}
	for _, m := range r.requests {
		if m.Unsynced {
			rq++
		}
	}
	for _, t := range r.teams {
		if t.Unsynced {
			tm++
		}
	}
	r.mu.RUnlock()

	metrics.SetUnsynced(events.CollectionEquipment, eq)
	metrics.SetUnsynced(events.CollectionRequests, rq)
	metrics.SetUnsynced(events.CollectionTeams, tm)
}

func removeByID[T any](items []T, id uint64, idOf func(T) uint64) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if idOf(item) != id {
			out = append(out, item)
		}
	}
	return out
}

// nextLocalID - ID для записи, которую сервер не принял.
func nextLocalID[T any](items []T, idOf func(T) uint64) uint64 {
	var top uint64
	for _, item := range items {
		if id := idOf(item); id > top {
			top = id
		}
	}
	return top + 1
}
