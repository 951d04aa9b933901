package integrations

import (
	"fmt"
	"sort"
	"sync"
)

// Имена провайдеров для API_PROVIDER.
const (
	ProviderRemote = "remote"
	ProviderDemo   = "demo"
)

type RegistryInterface interface {
	Register(name string, provider MaintenanceAPI) error
	Get(name string) (MaintenanceAPI, error)
	SetActive(name string) error
	GetActive() (MaintenanceAPI, error)
	Names() []string
}

// Registry хранит провайдеров API по имени, один из них активный.
type Registry struct {
	providers map[string]MaintenanceAPI
	active    string
	mu        sync.RWMutex
}

func NewRegistry() *Registry {
	return &Registry{
		providers: make(map[string]MaintenanceAPI),
	}
}

func (r *Registry) Register(name string, provider MaintenanceAPI) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.providers[name]; exists {
		return fmt.Errorf("провайдер с именем '%s' уже зарегистрирован", name)
	}
	r.providers[name] = provider
	return nil
}

func (r *Registry) Get(name string) (MaintenanceAPI, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	provider, exists := r.providers[name]
	if !exists {
		return nil, fmt.Errorf("провайдер с именем '%s' не найден", name)
	}
	return provider, nil
}

func (r *Registry) SetActive(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.providers[name]; !exists {
		return fmt.Errorf("невозможно установить активным провайдера '%s': он не зарегистрирован", name)
	}
	r.active = name
	return nil
}

func (r *Registry) GetActive() (MaintenanceAPI, error) {
	r.mu.RLock()
	activeName := r.active
	r.mu.RUnlock()

	if activeName == "" {
		return nil, fmt.Errorf("активный провайдер не установлен")
	}
	return r.Get(activeName)
}

// Names - зарегистрированные провайдеры по алфавиту.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
