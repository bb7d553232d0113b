// Package environment resolves the identity of the hosting environment:
// its name, coarse deployment type, architecture, and cloud region, plus a
// best-effort code revision. All identifiers come from process environment
// variables with documented fallbacks, so the platform behaves sensibly on
// a developer machine with nothing set.
package environment

import (
	"github.com/caarlos0/env/v11"

	"github.com/humanmade/platform-core/src/logger"
)

var log = logger.New("environment")

// Identity describes the hosting environment.
type Identity struct {
	// Name is the environment's unique name (e.g. "myproject-staging").
	// Env: ALTIS_ENVIRONMENT. Default: "unknown".
	Name string `env:"ALTIS_ENVIRONMENT" envDefault:"unknown"`

	// Type is the coarse deployment stage: local, development, staging,
	// or production. Selects the environments overlay during config
	// merging. Env: ALTIS_ENVIRONMENT_TYPE. Default: "local".
	Type string `env:"ALTIS_ENVIRONMENT_TYPE" envDefault:"local"`

	// Architecture is the hosting architecture identifier.
	// Env: ALTIS_ENVIRONMENT_ARCHITECTURE. Default: "ec2".
	Architecture string `env:"ALTIS_ENVIRONMENT_ARCHITECTURE" envDefault:"ec2"`

	// Region is the cloud region used when constructing SDK clients.
	// Env: ALTIS_ENVIRONMENT_REGION. Default: "us-east-1".
	Region string `env:"ALTIS_ENVIRONMENT_REGION" envDefault:"us-east-1"`

	// Revision is the deployed code revision, when the deploy tooling
	// provides it. Env: ALTIS_REVISION. No default; see Revision for the
	// git fallback.
	Revision string `env:"ALTIS_REVISION"`
}

// Current reads the environment identity from process environment
// variables. A parse failure degrades to the documented defaults with a
// logged warning; identity resolution never aborts startup.
func Current() Identity {
	id := Identity{}
	if err := env.Parse(&id); err != nil {
		log.Warn().Err(err).Msg("could not parse environment identity, using defaults")
		return Identity{
			Name:         "unknown",
			Type:         "local",
			Architecture: "ec2",
			Region:       "us-east-1",
		}
	}
	return id
}

// Name returns the current environment name.
func Name() string { return Current().Name }

// Type returns the current environment type.
func Type() string { return Current().Type }

// Architecture returns the current environment architecture.
func Architecture() string { return Current().Architecture }

// Region returns the current cloud region.
func Region() string { return Current().Region }
