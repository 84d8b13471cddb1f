package core

import (
	"path/filepath"
	"strings"
)

// SearchPath is an ordered list of directories consulted to find external
// commands. Earlier entries take precedence.
type SearchPath []string

// ParseSearchPath splits a PATH style list using the OS list separator.
func ParseSearchPath(value string) SearchPath {
	if strings.TrimSpace(value) == "" {
		return nil
	}

	var out SearchPath
	for _, dir := range filepath.SplitList(value) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		out = append(out, dir)
	}
	return out
}

// String joins the path back together with the OS list separator.
func (p SearchPath) String() string {
	return strings.Join(p, string(filepath.ListSeparator))
}
