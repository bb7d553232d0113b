// Package module implements the platform module registry.
//
// A module is a named, independently enable/disable-able unit of bundled
// functionality. Modules register themselves (typically from init) with a
// slug, a directory, default settings, and an optional loader. The
// registry publishes each module's default settings into the default
// configuration layer; whether a module ends up enabled is decided by the
// fully merged configuration, which projects override through their
// manifest and environment overlays.
package module

import (
	"context"

	"github.com/humanmade/platform-core/src/config"
	"github.com/humanmade/platform-core/src/hook"
)

// LoaderFunc is invoked for an enabled module during Load, with the
// module's effective (merged) settings.
type LoaderFunc func(ctx context.Context, settings config.Map) error

// Module describes a registrable platform module.
type Module struct {
	// Slug uniquely identifies the module and keys its settings under the
	// configuration's "modules" map.
	Slug string

	// Dir is the module's directory relative to the platform root.
	Dir string

	// Title is the human-readable module name.
	Title string

	// DefaultSettings seed the module's settings in the default
	// configuration layer. An absent "enabled" key defaults to false.
	DefaultSettings config.Map

	// Requires optionally constrains the platform version this module
	// works with, as a semver constraint (e.g. ">= 2.0"). Modules whose
	// constraint is not met are skipped at load time with a warning.
	Requires string

	// Loader is invoked when the module is enabled and loading runs.
	// Optional; settings-only modules leave it nil.
	Loader LoaderFunc
}

// LoadedModule is the payload of the per-module Loaded event.
type LoadedModule struct {
	Slug     string
	Settings config.Map
}

// Loaded fires after each enabled module's loader has run.
var Loaded = hook.NewEvent[LoadedModule]("altis.modules.loaded")

// AllLoaded fires once after every enabled module has been processed, with
// the slugs that actually loaded.
var AllLoaded = hook.NewEvent[[]string]("altis.modules.all-loaded")
