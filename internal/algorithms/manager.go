package algorithms

import (
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/samber/lo"

	"rasterkit/internal/logger"
	"rasterkit/internal/processing/filters"
	"rasterkit/internal/raster"
)

// Manager maps filter names to factories and their default parameters.
type Manager struct {
	definitions map[string]Definition
	logger      logger.Logger
	mu          sync.RWMutex
}

func NewManager(log logger.Logger) *Manager {
	if log == nil {
		log = logger.NopLogger{}
	}

	manager := &Manager{
		definitions: make(map[string]Definition),
		logger:      log,
	}

	for _, def := range builtins() {
		if err := manager.Register(def); err != nil {
			panic(err)
		}
	}

	return manager
}

func (m *Manager) Register(def Definition) error {
	if def.Name == "" || def.Factory == nil {
		return fmt.Errorf("filter definition needs a name and a factory")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.definitions[def.Name]; exists {
		return fmt.Errorf("filter already registered: %s", def.Name)
	}
	m.definitions[def.Name] = def
	return nil
}

// Create merges params over the filter defaults and builds the filter.
// Keys the filter does not know are rejected.
func (m *Manager) Create(name string, params map[string]interface{}) (filters.Filter, error) {
	m.mu.RLock()
	def, exists := m.definitions[name]
	m.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("unknown filter: %s", name)
	}

	unknown := lo.Without(lo.Keys(params), lo.Keys(def.Defaults)...)
	if len(unknown) > 0 {
		slices.Sort(unknown)
		return nil, raster.InvalidParameter("filter %s does not accept %v", name, unknown)
	}

	merged := Parameters(lo.Assign(def.Defaults, params))
	filter, err := def.Factory(merged)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", name, err)
	}

	m.logger.Debug("registry", "filter created", map[string]interface{}{
		"filter":     name,
		"parameters": map[string]interface{}(merged),
	})
	return filter, nil
}

func (m *Manager) Defaults(name string) (map[string]interface{}, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if def, exists := m.definitions[name]; exists {
		return maps.Clone(def.Defaults), nil
	}

	return nil, fmt.Errorf("unknown filter: %s", name)
}

func (m *Manager) Describe(name string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if def, exists := m.definitions[name]; exists {
		return def.Description, nil
	}

	return "", fmt.Errorf("unknown filter: %s", name)
}

// Names lists the registered filters in lexical order.
func (m *Manager) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := lo.Keys(m.definitions)
	slices.Sort(names)
	return names
}
