package module

import (
	"context"

	"github.com/Masterminds/semver/v3"

	"github.com/humanmade/platform-core/src/config"
	"github.com/humanmade/platform-core/src/version"
)

// Load runs the loaders of every module enabled in cfg, in slug order, and
// emits the Loaded event per module and the AllLoaded event once at the
// end. Loading is sequential: the host model is single-threaded and module
// loaders commonly register hooks whose order must be deterministic.
//
// A module whose Requires constraint does not match the platform version
// is skipped with a warning, as is a module whose loader returns an error.
// Load itself never fails; a broken module must not take down the host.
func (r *Registry) Load(ctx context.Context, cfg config.Map) []string {
	platform := platformVersion()

	var loaded []string
	for _, m := range r.Enabled(cfg) {
		if !requirementMet(m, platform) {
			log.Warn().
				Str("module", m.Slug).
				Str("requires", m.Requires).
				Str("platform", version.Version).
				Msg("module requires a different platform version, skipping")
			continue
		}

		settings := Settings(cfg, m.Slug)
		if m.Loader != nil {
			if err := m.Loader(ctx, settings); err != nil {
				log.Warn().Str("module", m.Slug).Err(err).Msg("module loader failed, skipping")
				continue
			}
		}

		Loaded.Emit(LoadedModule{Slug: m.Slug, Settings: settings})
		loaded = append(loaded, m.Slug)
	}

	AllLoaded.Emit(loaded)
	return loaded
}

// Load runs the default registry's loaders against cfg.
func Load(ctx context.Context, cfg config.Map) []string {
	return defaultRegistry.Load(ctx, cfg)
}

// platformVersion parses the build version. Development builds ("dev" or
// anything unparsable) return nil, which disables constraint checking.
func platformVersion() *semver.Version {
	v, err := semver.NewVersion(version.Version)
	if err != nil {
		return nil
	}
	return v
}

func requirementMet(m *Module, platform *semver.Version) bool {
	if m.Requires == "" || platform == nil {
		return true
	}
	constraint, err := semver.NewConstraint(m.Requires)
	if err != nil {
		log.Warn().Str("module", m.Slug).Str("requires", m.Requires).Err(err).
			Msg("invalid version constraint, ignoring")
		return true
	}
	return constraint.Check(platform)
}
