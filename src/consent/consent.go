// Package consent bundles the cookie-consent banner as a platform module.
//
// The module itself only supplies configuration: sensible banner defaults
// merged under whatever the project sets, published through the
// BannerOptions extension point when the module loads. Rendering, storage,
// and the consent API belong to the host runtime.
package consent

import (
	"context"
	"fmt"

	"dario.cat/mergo"

	"github.com/humanmade/platform-core/src/config"
	"github.com/humanmade/platform-core/src/hook"
	"github.com/humanmade/platform-core/src/module"
)

// Slug identifies the consent module in configuration.
const Slug = "consent"

// Cookie categories the banner can ask about.
var defaultCategories = []any{"functional", "statistics", "marketing"}

// BannerOptions is the extension point resolving the banner's effective
// options. The module's loader registers the defaults-filling callback;
// later callbacks may adjust the result.
var BannerOptions = hook.NewFilter[config.Map]("altis.consent.banner-options")

func init() {
	module.Register(&module.Module{
		Slug:  Slug,
		Dir:   "consent",
		Title: "Consent",
		DefaultSettings: config.Map{
			"enabled": true,
		},
		Loader: load,
	})
}

// load wires the banner defaults into the BannerOptions extension point.
// Keys the project configuration leaves unset fall back to the defaults;
// keys it sets are left alone.
func load(_ context.Context, settings config.Map) error {
	configured := config.Clone(settings)
	delete(configured, "enabled")

	BannerOptions.Add(func(opts config.Map) config.Map {
		if opts == nil {
			opts = config.Map{}
		}
		for k, v := range configured {
			opts[k] = v
		}
		if err := mergo.Merge(&opts, defaults()); err != nil {
			return opts
		}
		return opts
	})

	return nil
}

// defaults returns the banner's built-in option set.
func defaults() config.Map {
	return config.Map{
		"banner-position":     "bottom",
		"consent-expiry-days": 30,
		"display-options":     append([]any{}, defaultCategories...),
	}
}

// Options resolves the effective banner options through the BannerOptions
// extension point. Call after module loading has run; before that the
// defaults-filling callback is not yet registered and an error is
// returned.
func Options() (config.Map, error) {
	if BannerOptions.Len() == 0 {
		return nil, fmt.Errorf("consent: module not loaded, banner options unresolved")
	}
	return BannerOptions.Apply(config.Map{}), nil
}
