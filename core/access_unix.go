//go:build !windows && !plan9
// +build !windows,!plan9

package core

import (
	"io/fs"

	"github.com/spf13/afero"
	"golang.org/x/sys/unix"
)

// canExecute reports whether the file can be executed. Files on the host
// filesystem are checked against the effective uid/gid of this process.
func canExecute(fsys afero.Fs, path string, mode fs.FileMode) bool {
	if _, ok := fsys.(*afero.OsFs); ok {
		return unix.Access(path, unix.X_OK) == nil
	}
	return mode&0111 != 0
}
