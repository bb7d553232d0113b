package module

import (
	"context"
	"fmt"
	"testing"

	"github.com/Masterminds/semver/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/humanmade/platform-core/src/config"
	"github.com/humanmade/platform-core/src/version"
)

func enabledConfig(slugs ...string) config.Map {
	modules := config.Map{}
	for _, slug := range slugs {
		modules[slug] = config.Map{"enabled": true}
	}
	return config.Map{config.KeyModules: modules}
}

// TestLoad_InvokesLoadersInSlugOrder verifies enabled modules load
// sequentially in slug order with their effective settings.
func TestLoad_InvokesLoadersInSlugOrder(t *testing.T) {
	r := NewRegistry()

	var order []string
	loader := func(slug string) LoaderFunc {
		return func(_ context.Context, settings config.Map) error {
			order = append(order, slug)
			assert.Equal(t, true, settings["enabled"])
			return nil
		}
	}
	r.Register(&Module{Slug: "search", Loader: loader("search")})
	r.Register(&Module{Slug: "analytics", Loader: loader("analytics")})
	r.Register(&Module{Slug: "media", Loader: loader("media")})

	loaded := r.Load(context.Background(), enabledConfig("search", "analytics", "media"))

	assert.Equal(t, []string{"analytics", "media", "search"}, order)
	assert.Equal(t, []string{"analytics", "media", "search"}, loaded)
}

// TestLoad_SkipsDisabled verifies disabled modules never run.
func TestLoad_SkipsDisabled(t *testing.T) {
	r := NewRegistry()
	ran := false
	r.Register(&Module{Slug: "search", Loader: func(context.Context, config.Map) error {
		ran = true
		return nil
	}})

	loaded := r.Load(context.Background(), config.Map{config.KeyModules: config.Map{
		"search": config.Map{"enabled": false},
	}})

	assert.False(t, ran)
	assert.Empty(t, loaded)
}

// TestLoad_LoaderErrorSkipsModule verifies a failing loader is a warning,
// not a halt: the module is not reported loaded and later modules still
// run.
func TestLoad_LoaderErrorSkipsModule(t *testing.T) {
	r := NewRegistry()
	r.Register(&Module{Slug: "broken", Loader: func(context.Context, config.Map) error {
		return fmt.Errorf("boom")
	}})
	r.Register(&Module{Slug: "search", Loader: func(context.Context, config.Map) error {
		return nil
	}})

	var loaded []string
	require.NotPanics(t, func() {
		loaded = r.Load(context.Background(), enabledConfig("broken", "search"))
	})
	assert.Equal(t, []string{"search"}, loaded)
}

// TestLoad_NilLoader verifies settings-only modules still count as loaded.
func TestLoad_NilLoader(t *testing.T) {
	r := NewRegistry()
	r.Register(&Module{Slug: "settings-only"})

	loaded := r.Load(context.Background(), enabledConfig("settings-only"))
	assert.Equal(t, []string{"settings-only"}, loaded)
}

// TestLoad_EmitsEvents verifies the per-module and global notifications.
func TestLoad_EmitsEvents(t *testing.T) {
	r := NewRegistry()
	r.Register(&Module{Slug: "search"})
	r.Register(&Module{Slug: "media"})

	active := true
	t.Cleanup(func() { active = false })

	var perModule []string
	Loaded.Add(func(lm LoadedModule) {
		if active {
			perModule = append(perModule, lm.Slug)
		}
	})

	var global [][]string
	AllLoaded.Add(func(slugs []string) {
		if active {
			global = append(global, slugs)
		}
	})

	r.Load(context.Background(), enabledConfig("search", "media"))

	assert.Equal(t, []string{"media", "search"}, perModule)
	require.Len(t, global, 1)
	assert.Equal(t, []string{"media", "search"}, global[0])
}

// TestLoad_VersionConstraint verifies modules requiring a different
// platform version are skipped, and that dev builds skip the check.
func TestLoad_VersionConstraint(t *testing.T) {
	orig := version.Version
	t.Cleanup(func() { version.Version = orig })

	version.Version = "1.2.3"

	r := NewRegistry()
	r.Register(&Module{Slug: "old", Requires: ">= 2.0"})
	r.Register(&Module{Slug: "current", Requires: ">= 1.0"})

	loaded := r.Load(context.Background(), enabledConfig("old", "current"))
	assert.Equal(t, []string{"current"}, loaded)

	// Dev builds have no parseable version: constraints are not enforced.
	version.Version = "dev"
	loaded = r.Load(context.Background(), enabledConfig("old", "current"))
	assert.Equal(t, []string{"current", "old"}, loaded)
}

// TestRequirementMet covers the constraint matrix directly.
func TestRequirementMet(t *testing.T) {
	platform := semver.MustParse("2.1.0")

	cases := []struct {
		name     string
		requires string
		platform *semver.Version
		want     bool
	}{
		{"no constraint", "", platform, true},
		{"met", ">= 2.0", platform, true},
		{"not met", "< 2.0", platform, false},
		{"nil platform", ">= 99.0", nil, true},
		{"invalid constraint ignored", "not-a-constraint", platform, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := &Module{Slug: "m", Requires: tc.requires}
			assert.Equal(t, tc.want, requirementMet(m, tc.platform))
		})
	}
}
