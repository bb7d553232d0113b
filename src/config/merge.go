package config

// Merge merges overrides on top of base and returns base.
//
// Every top-level key other than "modules" is replaced wholesale: no deep
// merge, no sequence concatenation. The "modules" key gets special
// treatment so per-module settings survive layering:
//
//   - a module's existing settings that are a bare bool are first
//     normalized to {"enabled": bool};
//   - override settings are then shallow-merged on top (override keys win,
//     keys unique to the base side survive);
//   - existing settings that are neither a Map nor a bool are a
//     configuration format error: a warning is logged and that module is
//     left untouched.
//
// Merge is destructive to base and returns it. Use Clone first when the
// caller needs the pre-merge value.
func Merge(base, overrides Map) Map {
	if base == nil {
		base = Map{}
	}

	for key, value := range overrides {
		if key != KeyModules {
			base[key] = value
			continue
		}

		overModules, ok := value.(Map)
		if !ok {
			log.Warn().
				Str("key", KeyModules).
				Msgf("modules override is %T, expected a mapping; ignoring", value)
			continue
		}

		baseModules, ok := base[KeyModules].(Map)
		if !ok {
			baseModules = Map{}
		}

		for slug, settings := range overModules {
			merged, ok := normalizeSettings(baseModules[slug])
			if !ok {
				log.Warn().
					Str("module", slug).
					Msgf("existing module settings are %T, expected a mapping or bool; skipping", baseModules[slug])
				continue
			}

			switch over := settings.(type) {
			case bool:
				merged["enabled"] = over
			case Map:
				for k, v := range over {
					merged[k] = v
				}
			default:
				log.Warn().
					Str("module", slug).
					Msgf("module settings override is %T, expected a mapping or bool; skipping", settings)
				continue
			}

			baseModules[slug] = merged
		}

		base[KeyModules] = baseModules
	}

	return base
}

// normalizeSettings turns an existing module settings value into a Map:
// nil becomes an empty Map, a bool becomes {"enabled": bool}, and a Map
// passes through. Any other shape reports ok=false.
func normalizeSettings(existing any) (Map, bool) {
	switch v := existing.(type) {
	case nil:
		return Map{}, true
	case bool:
		return Map{"enabled": v}, true
	case Map:
		return v, true
	default:
		return nil, false
	}
}
