// Package installer decides where package-manager packages are placed in a
// project tree. CMS content packages (plugins, themes, must-use plugins)
// install under the content directory; everything else, including a small
// set of explicitly excluded platform packages, stays in the standard
// vendor location.
package installer

import (
	"path"
	"strings"
)

// Package types with a content-directory placement.
const (
	TypePlugin   = "wordpress-plugin"
	TypeMUPlugin = "wordpress-muplugin"
	TypeTheme    = "wordpress-theme"
)

// DefaultContentDir is the content directory used when none is configured.
const DefaultContentDir = "content"

// defaultExcluded are platform packages that must keep their standard
// vendor placement even though they declare a content package type: the
// platform loads them directly from vendor during bootstrap, before the
// content directory is resolvable.
var defaultExcluded = []string{
	"altis/core",
	"altis/cms",
	"altis/consent",
	"altis/documentation",
}

// Mapper computes install paths for packages.
type Mapper struct {
	contentDir string
	excluded   map[string]bool
}

// NewMapper creates a Mapper placing content packages under contentDir
// (DefaultContentDir when empty), with the default exclusion set.
func NewMapper(contentDir string) *Mapper {
	if contentDir == "" {
		contentDir = DefaultContentDir
	}
	m := &Mapper{
		contentDir: contentDir,
		excluded:   make(map[string]bool, len(defaultExcluded)),
	}
	for _, pkg := range defaultExcluded {
		m.excluded[pkg] = true
	}
	return m
}

// Exclude adds package names (vendor/name) to the exclusion set.
func (m *Mapper) Exclude(pkgs ...string) {
	for _, pkg := range pkgs {
		m.excluded[pkg] = true
	}
}

// Excluded reports whether pkg keeps its standard vendor placement.
func (m *Mapper) Excluded(pkg string) bool {
	return m.excluded[pkg]
}

// InstallPath returns the install directory for a package of the given
// type. ok is false when the package keeps its standard vendor placement:
// either it is excluded, or its type has no content-directory mapping.
func (m *Mapper) InstallPath(pkg, pkgType string) (string, bool) {
	if m.Excluded(pkg) {
		return "", false
	}

	var dir string
	switch pkgType {
	case TypePlugin:
		dir = "plugins"
	case TypeMUPlugin:
		dir = "mu-plugins"
	case TypeTheme:
		dir = "themes"
	default:
		return "", false
	}

	return path.Join(m.contentDir, dir, shortName(pkg)), true
}

// shortName strips the vendor prefix from a vendor/name package
// identifier.
func shortName(pkg string) string {
	if i := strings.LastIndex(pkg, "/"); i >= 0 {
		return pkg[i+1:]
	}
	return pkg
}
