//go:build windows || plan9
// +build windows plan9

package core

import (
	"io/fs"

	"github.com/spf13/afero"
)

func canExecute(_ afero.Fs, _ string, mode fs.FileMode) bool {
	return mode&0111 != 0
}
