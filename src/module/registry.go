package module

import (
	"fmt"
	"sort"
	"sync"

	"github.com/humanmade/platform-core/src/config"
	"github.com/humanmade/platform-core/src/logger"
)

var log = logger.New("module")

// Registry stores modules by slug. Registration happens during startup;
// after that the registry is read-only in practice, though a mutex guards
// against misuse.
type Registry struct {
	mu      sync.RWMutex
	modules map[string]*Module
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{modules: map[string]*Module{}}
}

// Register adds a module to the registry. An empty slug or a duplicate
// registration is a programmer error and panics.
func (r *Registry) Register(m *Module) {
	if m == nil || m.Slug == "" {
		panic("module: Register called with empty slug")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.modules[m.Slug]; exists {
		panic(fmt.Sprintf("module: duplicate registration: %s", m.Slug))
	}
	log.Debug().Str("module", m.Slug).Msg("module registered")
	r.modules[m.Slug] = m
}

// Get returns the module registered under slug.
func (r *Registry) Get(slug string) (*Module, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.modules[slug]
	return m, ok
}

// All returns the registered modules in slug order.
func (r *Registry) All() []*Module {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Module, 0, len(r.modules))
	for _, m := range r.modules {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slug < out[j].Slug })
	return out
}

// ApplyDefaults publishes every registered module's default settings into
// cfg's "modules" map and returns cfg. Settings already present in cfg
// (contributed by an earlier default-config callback) win over the
// module's own defaults; the two are shallow-merged key by key, so a
// partial contribution keeps the remaining defaults.
func (r *Registry) ApplyDefaults(cfg config.Map) config.Map {
	if cfg == nil {
		cfg = config.Map{}
	}

	modules, ok := cfg[config.KeyModules].(config.Map)
	if !ok {
		modules = config.Map{}
	}

	for _, m := range r.All() {
		settings := config.Map{"enabled": false}
		for k, v := range config.Clone(m.DefaultSettings) {
			settings[k] = v
		}

		if existing, ok := modules[m.Slug].(config.Map); ok {
			// Plain assignment so a contributed "enabled": false beats an
			// enabled-by-default module.
			for k, v := range existing {
				settings[k] = v
			}
		} else if enabled, ok := modules[m.Slug].(bool); ok {
			settings["enabled"] = enabled
		}

		modules[m.Slug] = settings
	}

	cfg[config.KeyModules] = modules
	return cfg
}

// Settings extracts a module's effective settings from cfg. Bare bool
// settings (possible before merging normalizes them) are expanded to
// {"enabled": bool}. Missing or malformed settings yield an empty Map.
func Settings(cfg config.Map, slug string) config.Map {
	modules, ok := cfg[config.KeyModules].(config.Map)
	if !ok {
		return config.Map{}
	}
	settings, ok := normalize(modules[slug])
	if !ok {
		return config.Map{}
	}
	return settings
}

func normalize(v any) (config.Map, bool) {
	switch t := v.(type) {
	case bool:
		return config.Map{"enabled": t}, true
	case config.Map:
		return t, true
	default:
		return nil, false
	}
}

func enabled(settings config.Map) bool {
	on, _ := settings["enabled"].(bool)
	return on
}

// Enabled returns the registered modules whose effective settings in cfg
// have enabled set, in slug order.
func (r *Registry) Enabled(cfg config.Map) []*Module {
	var out []*Module
	for _, m := range r.All() {
		if enabled(Settings(cfg, m.Slug)) {
			out = append(out, m)
		}
	}
	return out
}

// defaultRegistry backs the package-level API used by self-registering
// built-in modules.
var defaultRegistry = NewRegistry()

func init() {
	// Built-in module defaults join the default configuration layer.
	config.Defaults.Add(defaultRegistry.ApplyDefaults)
}

// Register adds a module to the default registry.
func Register(m *Module) { defaultRegistry.Register(m) }

// Get returns a module from the default registry.
func Get(slug string) (*Module, bool) { return defaultRegistry.Get(slug) }

// All returns the default registry's modules in slug order.
func All() []*Module { return defaultRegistry.All() }

// Enabled returns the default registry's enabled modules for cfg.
func Enabled(cfg config.Map) []*Module { return defaultRegistry.Enabled(cfg) }
