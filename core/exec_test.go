package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
)

func newTestFs(t *testing.T, files map[string]uint32) afero.Fs {
	t.Helper()

	fs := afero.NewMemMapFs()
	for path, mode := range files {
		if err := fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := afero.WriteFile(fs, path, []byte("#!/bin/sh\n"), os.FileMode(mode)); err != nil {
			t.Fatal(err)
		}
	}
	return fs
}

func TestResolverResolve(t *testing.T) {
	fs := newTestFs(t, map[string]uint32{
		"/first/x":         0755,
		"/second/x":        0755,
		"/second/y":        0700,
		"/second/notes":    0644,
		"/second/echo":     0755,
		"/first/sub/deep":  0755,
		"/plainfile/dummy": 0644,
	})
	if err := fs.MkdirAll("/first/dironly", 0755); err != nil {
		t.Fatal(err)
	}

	resolver := NewResolver(fs, SearchPath{"/missing", "/plainfile/dummy", "/first", "/second"})

	cases := map[string]struct {
		name string
		want Resolution
	}{
		"builtin-exit":          {"exit", Resolution{Kind: ResolvedBuiltin, Builtin: BuiltinExit}},
		"builtin-echo-shadowed": {"echo", Resolution{Kind: ResolvedBuiltin, Builtin: BuiltinEcho}},
		"builtin-type":          {"type", Resolution{Kind: ResolvedBuiltin, Builtin: BuiltinType}},
		"first-match-wins":      {"x", Resolution{Kind: ResolvedExecutable, Path: filepath.Join("/first", "x")}},
		"later-dir":             {"y", Resolution{Kind: ResolvedExecutable, Path: filepath.Join("/second", "y")}},
		"not-executable":        {"notes", Resolution{Kind: ResolvedNotFound}},
		"directory":             {"dironly", Resolution{Kind: ResolvedNotFound}},
		"not-recursive":         {"deep", Resolution{Kind: ResolvedNotFound}},
		"slash":                 {"sub/deep", Resolution{Kind: ResolvedNotFound}},
		"absolute":              {"/first/x", Resolution{Kind: ResolvedNotFound}},
		"missing":               {"nope", Resolution{Kind: ResolvedNotFound}},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			assert.Equal(t, tc.want, resolver.Resolve(tc.name))
		})
	}
}

func TestResolverOrder(t *testing.T) {
	fs := newTestFs(t, map[string]uint32{
		"/d1/x": 0755,
		"/d2/x": 0755,
	})

	assert.Equal(t, filepath.Join("/d1", "x"), NewResolver(fs, SearchPath{"/d1", "/d2"}).Resolve("x").Path)
	assert.Equal(t, filepath.Join("/d2", "x"), NewResolver(fs, SearchPath{"/d2", "/d1"}).Resolve("x").Path)
}

func TestResolverLookPath(t *testing.T) {
	fs := newTestFs(t, map[string]uint32{
		"/bin/ls":  0755,
		"/bin/txt": 0600,
	})
	resolver := NewResolver(fs, SearchPath{"/bin"})

	path, err := resolver.LookPath("ls")
	assert.Nil(t, err)
	assert.Equal(t, filepath.Join("/bin", "ls"), path)

	_, err = resolver.LookPath("txt")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = resolver.LookPath("")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResolverEmptyPath(t *testing.T) {
	fs := newTestFs(t, map[string]uint32{"/bin/ls": 0755})
	resolver := NewResolver(fs, nil)

	assert.Equal(t, ResolvedNotFound, resolver.Resolve("ls").Kind)
	assert.Equal(t, ResolvedBuiltin, resolver.Resolve("type").Kind)
}

func TestResolverSearchPathCopy(t *testing.T) {
	path := SearchPath{"/a", "/b"}
	resolver := NewResolver(afero.NewMemMapFs(), path)
	path[0] = "/changed"

	got := resolver.SearchPath()
	assert.Equal(t, SearchPath{"/a", "/b"}, got)

	got[1] = "/changed"
	assert.Equal(t, SearchPath{"/a", "/b"}, resolver.SearchPath())
}

func TestResolverComplete(t *testing.T) {
	fs := newTestFs(t, map[string]uint32{
		"/bin/echo":    0755,
		"/bin/ed":      0755,
		"/bin/env":     0755,
		"/bin/ex.txt":  0644,
		"/sbin/eject":  0755,
		"/sbin/ls":     0755,
		"/other/edgar": 0755,
	})
	resolver := NewResolver(fs, SearchPath{"/bin", "/sbin"})

	assert.Equal(t, []string{"echo", "ed", "eject", "env", "exit"}, resolver.Complete("e"))
	assert.Equal(t, []string{"type"}, resolver.Complete("ty"))
	assert.Empty(t, resolver.Complete("zzz"))
}

func TestResolutionKindString(t *testing.T) {
	assert.Equal(t, "builtin", ResolvedBuiltin.String())
	assert.Equal(t, "executable", ResolvedExecutable.String())
	assert.Equal(t, "not-found", ResolvedNotFound.String())
}
