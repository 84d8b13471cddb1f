package core

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os/exec"
)

// ExecResult holds the fully captured output of an external program.
//
// Err is only set when the program could not be started or its output could
// not be collected; a program exiting non-zero is reported via ExitCode.
type ExecResult struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
	Err      error
}

// Runner spawns external programs and waits for them to complete.
type Runner interface {
	Run(ctx context.Context, path string, argv []string) ExecResult
}

// ExecRunner runs programs on the host OS.
type ExecRunner struct {
	// Stdin is connected to the child, if nil the child reads from the null
	// device.
	Stdin io.Reader
	// Env is the child environment, if nil the shell's environment is used.
	Env []string
	// Dir is the working directory of the child.
	Dir string
}

var _ Runner = (*ExecRunner)(nil)

// Run starts the program at path with argv (argv[0] is the name the user
// typed) and buffers everything it writes. The child is not bound to ctx,
// signals reach it through the default process group behavior.
func (e *ExecRunner) Run(ctx context.Context, path string, argv []string) ExecResult {
	if len(argv) == 0 {
		argv = []string{path}
	}

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	cmd := exec.Command(path, argv[1:]...)
	cmd.Args = argv
	cmd.Stdin = e.Stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	cmd.Env = e.Env
	cmd.Dir = e.Dir

	err := cmd.Run()

	result := ExecResult{
		Stdout: stdout.Bytes(),
		Stderr: stderr.Bytes(),
	}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		result.ExitCode = 0
	case errors.As(err, &exitErr):
		result.ExitCode = exitErr.ExitCode()
	default:
		result.ExitCode = -1
		result.Err = err
	}
	return result
}
