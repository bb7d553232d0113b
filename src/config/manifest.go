package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// manifestSection is the manifest sub-tree holding platform overrides:
// extra.altis.
var manifestSection = [...]string{"extra", "altis"}

// LoadDocument reads a structured document from path and returns it as a
// Map. The format is chosen by extension: .json, .yaml, .yml, or .toml.
//
// Loading fails softly: an unrecognized extension, an unreadable file, or
// malformed content each log a warning and yield an empty Map. A broken
// manifest must never take down the host; the platform degrades to
// defaults instead.
func LoadDocument(path string) Map {
	doc, err := readDocument(path)
	if err != nil {
		log.Warn().Str("path", path).Err(err).Msg("could not load document, using empty configuration")
		return Map{}
	}
	return doc
}

func readDocument(path string) (Map, error) {
	var unmarshal func([]byte, any) error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		unmarshal = json.Unmarshal
	case ".yaml", ".yml":
		unmarshal = yaml.Unmarshal
	case ".toml":
		unmarshal = toml.Unmarshal
	default:
		return nil, fmt.Errorf("unrecognized document extension %q", filepath.Ext(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading document: %w", err)
	}

	doc := Map{}
	if err := unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}
	return doc, nil
}

// ManifestOverrides loads the manifest at path and extracts its extra.altis
// section. A missing manifest, a manifest without the section, or a section
// that is not a mapping all degrade to an empty Map.
func ManifestOverrides(path string) Map {
	doc := LoadDocument(path)

	for _, key := range manifestSection {
		next, ok := doc[key].(Map)
		if !ok {
			if _, present := doc[key]; present {
				log.Warn().
					Str("path", path).
					Str("key", key).
					Msg("manifest section is not a mapping, ignoring overrides")
			}
			return Map{}
		}
		doc = next
	}

	return doc
}
