package core

import (
	"io"
	"strings"

	"github.com/abiosoft/readline"
)

// NewReadline creates a line editor reading from stdin with tab completion of
// command names.
func NewReadline(stdin io.Reader, stdout, stderr io.Writer, isTerminal bool, resolver *Resolver) (*readline.Instance, error) {
	cfg := &readline.Config{
		Stdin:  readline.NewCancelableStdin(stdin),
		Stdout: stdout,
		Stderr: stderr,
		FuncIsTerminal: func() bool {
			return isTerminal
		},
		AutoComplete: readline.NewPrefixCompleter(
			readline.PcItemDynamic(func(line string) []string {
				return resolver.Complete(strings.TrimLeft(line, " \t"))
			}),
		),
		// Newlines are written by the shell.
		InterruptPrompt: "\n",
		EOFPrompt:       "\n",
	}

	if err := cfg.Init(); err != nil {
		return nil, err
	}

	return readline.NewEx(cfg)
}
