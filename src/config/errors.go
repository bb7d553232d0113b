package config

import "errors"

// ErrReentrant is returned by Get when called from inside a Defaults or
// Final callback while the configuration is still being computed.
var ErrReentrant = errors.New("config: re-entrant Get during configuration compute")
