package core

import (
	"io/fs"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
)

// ErrNotFound is the error resulting if a path search failed to find an executable file.
var ErrNotFound = exec.ErrNotFound

// ResolutionKind classifies a command name.
type ResolutionKind int

const (
	ResolvedNotFound ResolutionKind = iota
	ResolvedBuiltin
	ResolvedExecutable
)

func (k ResolutionKind) String() string {
	switch k {
	case ResolvedBuiltin:
		return "builtin"
	case ResolvedExecutable:
		return "executable"
	default:
		return "not-found"
	}
}

// Resolution is the outcome of looking up a command name. Builtin is only
// meaningful for ResolvedBuiltin and Path only for ResolvedExecutable.
type Resolution struct {
	Kind    ResolutionKind
	Builtin Builtin
	Path    string
}

// Resolver finds commands by name. It never modifies the filesystem.
type Resolver struct {
	fs   afero.Fs
	path SearchPath
}

// NewResolver creates a resolver searching the given directories of fs in
// order.
func NewResolver(fs afero.Fs, path SearchPath) *Resolver {
	return &Resolver{
		fs:   fs,
		path: append(SearchPath(nil), path...),
	}
}

// SearchPath returns a copy of the directories the resolver consults.
func (r *Resolver) SearchPath() SearchPath {
	return append(SearchPath(nil), r.path...)
}

// Resolve classifies name as a builtin, an executable on the search path, or
// not found.
func (r *Resolver) Resolve(name string) Resolution {
	if builtin, ok := LookupBuiltin(name); ok {
		return Resolution{Kind: ResolvedBuiltin, Builtin: builtin}
	}

	if path, err := r.LookPath(name); err == nil {
		return Resolution{Kind: ResolvedExecutable, Path: path}
	}

	return Resolution{Kind: ResolvedNotFound}
}

// LookPath searches for an executable named file directly inside the
// directories of the search path. Unlike exec.LookPath, names containing a
// slash are never tried directly.
func (r *Resolver) LookPath(file string) (string, error) {
	if file == "" || strings.ContainsRune(file, '/') || strings.ContainsRune(file, filepath.Separator) {
		return "", ErrNotFound
	}

	for _, dir := range r.path {
		if !r.isDir(dir) {
			continue
		}
		path := filepath.Join(dir, file)
		if err := r.findExecutable(path); err == nil {
			return path, nil
		}
	}
	return "", ErrNotFound
}

// Complete lists builtins and search path executables starting with prefix.
func (r *Resolver) Complete(prefix string) []string {
	seen := make(map[string]bool)
	for _, name := range BuiltinNames() {
		if strings.HasPrefix(name, prefix) {
			seen[name] = true
		}
	}

	for _, dir := range r.path {
		entries, err := afero.ReadDir(r.fs, dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			name := entry.Name()
			if seen[name] || !strings.HasPrefix(name, prefix) {
				continue
			}
			if r.findExecutable(filepath.Join(dir, name)) == nil {
				seen[name] = true
			}
		}
	}

	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func (r *Resolver) isDir(dir string) bool {
	info, err := r.fs.Stat(dir)
	return err == nil && info.IsDir()
}

func (r *Resolver) findExecutable(file string) error {
	d, err := r.fs.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); m.IsRegular() && canExecute(r.fs, file, m) {
		return nil
	}
	return fs.ErrPermission
}
