// Package config assembles the platform configuration.
//
// Configuration is layered from three sources and merged in order (later
// sources win):
//  1. Defaults published by registered modules and other default-config
//     callbacks.
//  2. The project manifest's "extra.altis" section.
//  3. The "environments.<type>" overlay matching the current environment
//     type.
//
// The merged result is computed once per process, passed through the Final
// extension point exactly once, and cached for the process lifetime. There
// is no invalidation: a manifest edit requires a new process.
package config

import (
	"path/filepath"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/humanmade/platform-core/src/environment"
	"github.com/humanmade/platform-core/src/hook"
	"github.com/humanmade/platform-core/src/logger"
)

var log = logger.New("config")

// Map is the configuration value shape: string keys over scalars, nested
// maps, and sequences. It aliases map[string]any so values decoded from
// JSON, YAML, and TOML manifests need no conversion.
type Map = map[string]any

// Reserved top-level keys.
const (
	// KeyModules maps module slug to that module's settings.
	KeyModules = "modules"
	// KeyEnvironments maps environment type to a partial configuration
	// overlay merged in for that environment.
	KeyEnvironments = "environments"
)

// DefaultManifest is the manifest filename looked up under the project root.
const DefaultManifest = "composer.json"

// Defaults is the "build default config" extension point. Callbacks receive
// the configuration accumulated so far (starting from an empty Map) and
// return it with their contributions added. Module default settings are
// published here by the module registry.
var Defaults = hook.NewFilter[Map]("altis.config.default")

// Final is the "final config" extension point. It runs exactly once per
// process, after all merging, and may return a modified configuration.
//
// Callbacks must not call Get: the configuration is still being computed
// when they run, and a re-entrant Get fails with ErrReentrant.
var Final = hook.NewFilter[Map]("altis.config")

// Options control where Compute finds its inputs.
type Options struct {
	// Root is the project root directory. Defaults to ".".
	Root string

	// Manifest is the manifest file path. Defaults to Root/composer.json.
	Manifest string

	// EnvironmentType selects the environments overlay. Defaults to the
	// process environment type (environment.Type).
	EnvironmentType string
}

func (o Options) withDefaults() Options {
	if o.Root == "" {
		o.Root = "."
	}
	if o.Manifest == "" {
		o.Manifest = filepath.Join(o.Root, DefaultManifest)
	}
	if o.EnvironmentType == "" {
		o.EnvironmentType = environment.Type()
	}
	return o
}

// Compute builds a merged configuration from scratch. It does not consult
// or populate the process cache; Get is the cached entry point.
//
// The pipeline: run the Defaults callbacks over an empty Map, merge the
// manifest's extra.altis section on top, then merge the overlay for the
// current environment type. Missing or malformed inputs degrade to empty
// overrides with a logged warning; Compute never fails.
func Compute(opts Options) Map {
	opts = opts.withDefaults()

	cfg := Defaults.Apply(Map{})
	if cfg == nil {
		cfg = Map{}
	}

	cfg = Merge(cfg, ManifestOverrides(opts.Manifest))
	cfg = Merge(cfg, environmentOverlay(cfg, opts.EnvironmentType))

	return cfg
}

// environmentOverlay extracts config["environments"][envType], or an empty
// Map when the key chain is absent or not map-shaped.
func environmentOverlay(cfg Map, envType string) Map {
	envs, ok := cfg[KeyEnvironments].(Map)
	if !ok {
		return Map{}
	}
	overlay, ok := envs[envType].(Map)
	if !ok {
		return Map{}
	}
	return overlay
}

var (
	cacheMu   sync.RWMutex
	cached    Map
	loaded    bool
	computing bool

	flight singleflight.Group
)

// Get returns the process-wide merged configuration, computing it on first
// call with default Options and passing it through the Final extension
// point exactly once. Subsequent calls return the cached value without
// recomputation, even if the manifest changes on disk.
//
// Calling Get from inside a Defaults or Final callback returns
// ErrReentrant: the cache is not populated until the compute finishes, and
// handing out a partially built configuration would be worse than failing.
func Get() (Map, error) {
	cacheMu.RLock()
	if loaded {
		cfg := cached
		cacheMu.RUnlock()
		return cfg, nil
	}
	reentrant := computing
	cacheMu.RUnlock()

	if reentrant {
		return nil, ErrReentrant
	}

	v, err, _ := flight.Do("config", func() (any, error) {
		cacheMu.Lock()
		if loaded {
			cfg := cached
			cacheMu.Unlock()
			return cfg, nil
		}
		computing = true
		cacheMu.Unlock()

		cfg := Final.Apply(Compute(Options{}))

		cacheMu.Lock()
		cached = cfg
		loaded = true
		computing = false
		cacheMu.Unlock()

		return cfg, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(Map), nil
}

// reset clears the process cache. Test use only.
func reset() {
	cacheMu.Lock()
	cached = nil
	loaded = false
	computing = false
	cacheMu.Unlock()
}

// Clone returns a deep copy of cfg. Merge mutates its base argument, so
// callers that need to keep the original intact should merge into a clone.
func Clone(cfg Map) Map {
	if cfg == nil {
		return nil
	}
	out := make(Map, len(cfg))
	for k, v := range cfg {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case Map:
		return Clone(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}
