package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"log"
	"os"
	"sync"
	"sync/atomic"

	"github.com/abiosoft/readline"
	"github.com/fatih/color"
	"github.com/josephlewis42/minish/core/config"
	"github.com/josephlewis42/minish/core/logger"
	"github.com/spf13/afero"
)

// StatusNotFound is the status recorded when a command can't be resolved.
const StatusNotFound = 127

var promptColor = color.New(color.FgGreen, color.Bold)

// LineReader reads one line of input at a time after displaying a prompt.
// *readline.Instance satisfies it.
type LineReader interface {
	SetPrompt(prompt string)
	Readline() (string, error)
	Close() error
}

var _ LineReader = (*readline.Instance)(nil)

// Shell is an interactive command interpreter. Commands run strictly one at a
// time: each line is fully processed, including waiting for any child
// process, before the next prompt.
type Shell struct {
	Input    LineReader
	Stdout   io.Writer
	Stderr   io.Writer
	Resolver *Resolver
	Runner   Runner
	Config   *config.Configuration
	// Log receives diagnostic messages, discarded if nil.
	Log *log.Logger
	// Events receives session events, dropped if nil.
	Events logger.Recorder
	// IsTerminal is set when the shell talks to an interactive terminal.
	IsTerminal bool

	lastStatus int
	quit       bool
	exitCode   int

	reading     int32
	interrupted int32
	closeOnce   sync.Once
}

func (s *Shell) init() {
	if s.Config == nil {
		s.Config = config.Default()
	}
	if s.Log == nil {
		s.Log = log.New(ioutil.Discard, "", 0)
	}
	if s.Events == nil {
		s.Events = logger.NopRecorder{}
	}
	if s.Runner == nil {
		s.Runner = &ExecRunner{}
	}
	if s.Resolver == nil {
		s.Resolver = NewResolver(afero.NewOsFs(), ParseSearchPath(os.Getenv("PATH")))
	}
}

// LastStatus returns the exit status of the most recent external command.
func (s *Shell) LastStatus() int {
	return s.lastStatus
}

// Run reads and executes commands until exit is called, input ends, or the
// session is interrupted. It returns the session's exit code.
//
// Cancelling ctx ends the session as though it was interrupted.
func (s *Shell) Run(ctx context.Context) int {
	s.init()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			s.stopReading()
		case <-done:
		}
	}()

	s.record(&logger.SessionStart{
		SearchPath: s.Resolver.SearchPath(),
		Terminal:   s.IsTerminal,
	})

	for !s.quit {
		s.Input.SetPrompt(s.prompt())

		atomic.StoreInt32(&s.reading, 1)
		line, err := s.Input.Readline()
		atomic.StoreInt32(&s.reading, 0)

		switch {
		case atomic.LoadInt32(&s.interrupted) == 1, errors.Is(err, readline.ErrInterrupt):
			fmt.Fprintln(s.Stdout)
			s.terminate(0, "interrupt")

		case errors.Is(err, io.EOF):
			fmt.Fprintln(s.Stdout)
			s.terminate(0, "eof")

		case err != nil:
			s.Log.Printf("error reading input: %v", err)
			s.terminate(0, "input error")

		default:
			s.RunCommand(ctx, line)
		}
	}

	return s.exitCode
}

// Interrupt ends the session if it's currently waiting for input. It's safe to
// call from a signal handling goroutine. Interrupts that arrive while a command
// is running are ignored; the child receives the terminal's signal itself.
func (s *Shell) Interrupt() bool {
	if atomic.LoadInt32(&s.reading) == 0 {
		return false
	}
	s.stopReading()
	return true
}

func (s *Shell) stopReading() {
	atomic.StoreInt32(&s.interrupted, 1)
	s.closeOnce.Do(func() {
		if err := s.Input.Close(); err != nil {
			s.Log.Printf("error closing input: %v", err)
		}
	})
}

// RunCommand executes a single line of input.
func (s *Shell) RunCommand(ctx context.Context, line string) {
	s.init()

	cmd, ok := ParseCommandLine(line)
	if !ok {
		fmt.Fprintln(s.Stdout, s.Config.EmptyLineNotice)
		return
	}
	s.Log.Printf("received command: %s with args: %q", cmd.Name, cmd.Args)

	if builtin, ok := LookupBuiltin(cmd.Name); ok {
		s.runBuiltin(builtin, cmd)
		return
	}

	s.runExternal(ctx, cmd)
}

func (s *Shell) runExternal(ctx context.Context, cmd ParsedCommand) {
	res := s.Resolver.Resolve(cmd.Name)

	switch res.Kind {
	case ResolvedExecutable:
		s.Log.Printf("resolved %s to %s", cmd.Name, res.Path)

	case ResolvedBuiltin:
		s.runBuiltin(res.Builtin, cmd)
		return

	default:
		fmt.Fprintf(s.Stdout, "%s: command not found\n", cmd.Name)
		s.lastStatus = StatusNotFound
		s.record(&logger.UnknownCommand{Command: cmd.Argv()})
		return
	}

	result := s.Runner.Run(ctx, res.Path, cmd.Argv())
	if result.Err != nil {
		fmt.Fprintf(s.Stdout, "Error running command '%s': %v\n", cmd.Name, result.Err)
		s.lastStatus = result.ExitCode
		s.record(&logger.SpawnFailure{
			Command:             cmd.Argv(),
			ResolvedCommandPath: res.Path,
			Error:               result.Err.Error(),
		})
		return
	}

	if _, err := s.Stdout.Write(result.Stdout); err != nil {
		s.Log.Printf("error writing stdout: %v", err)
	}
	if _, err := s.Stderr.Write(result.Stderr); err != nil {
		s.Log.Printf("error writing stderr: %v", err)
	}

	s.lastStatus = result.ExitCode
	s.record(&logger.RunCommand{
		Command:             cmd.Argv(),
		ResolvedCommandPath: res.Path,
		ExitCode:            result.ExitCode,
	})
}

func (s *Shell) terminate(code int, reason string) {
	s.quit = true
	s.exitCode = code
	s.Log.Printf("exiting with code %d (%s)", code, reason)
	s.record(&logger.SessionEnd{ExitCode: code, Reason: reason})
}

func (s *Shell) prompt() string {
	if s.Config.ShouldColor(s.IsTerminal) {
		c := *promptColor
		c.EnableColor()
		return c.Sprint(s.Config.Prompt)
	}
	return s.Config.Prompt
}

func (s *Shell) record(event logger.LogType) {
	if err := s.Events.Record(event); err != nil {
		s.Log.Printf("error recording %s event: %v", event.LogType(), err)
	}
}
