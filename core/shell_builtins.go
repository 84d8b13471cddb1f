package core

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/josephlewis42/minish/core/logger"
)

// Builtin identifies a command implemented by the shell itself.
type Builtin int

const (
	BuiltinExit Builtin = iota + 1
	BuiltinEcho
	BuiltinType
)

// allBuiltins is the fixed set of builtin names, it is never modified.
var allBuiltins = map[string]Builtin{
	"exit": BuiltinExit,
	"echo": BuiltinEcho,
	"type": BuiltinType,
}

// LookupBuiltin returns the builtin registered under name.
func LookupBuiltin(name string) (Builtin, bool) {
	b, ok := allBuiltins[name]
	return b, ok
}

// BuiltinNames returns the sorted names of all builtins.
func BuiltinNames() []string {
	var out []string
	for name := range allBuiltins {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func (b Builtin) String() string {
	switch b {
	case BuiltinExit:
		return "exit"
	case BuiltinEcho:
		return "echo"
	case BuiltinType:
		return "type"
	default:
		return fmt.Sprintf("Builtin(%d)", int(b))
	}
}

// Usage returns a one line usage string.
func (b Builtin) Usage() string {
	switch b {
	case BuiltinExit:
		return "exit [code]"
	case BuiltinEcho:
		return "echo [arg ...]"
	case BuiltinType:
		return "type <command> [<command> ...]"
	default:
		return b.String()
	}
}

// Short returns a one line description.
func (b Builtin) Short() string {
	switch b {
	case BuiltinExit:
		return "Exit the shell with the given status, or 0."
	case BuiltinEcho:
		return "Write the arguments separated by spaces."
	case BuiltinType:
		return "Describe how each name would be interpreted as a command."
	default:
		return ""
	}
}

func (s *Shell) runBuiltin(b Builtin, cmd ParsedCommand) {
	s.record(&logger.Builtin{Command: cmd.Argv()})

	switch b {
	case BuiltinExit:
		s.Exit(cmd.Args)
	case BuiltinEcho:
		s.Echo(cmd.Args)
	case BuiltinType:
		s.Type(cmd.Args)
	default:
		panic(fmt.Sprintf("unhandled builtin %v", b))
	}
}

// Exit quits the shell. The first argument is used as the exit status if it's
// a non-negative integer, otherwise the status is 0.
func (s *Shell) Exit(args []string) {
	code := 0
	if len(args) > 0 && isDigits(args[0]) {
		if parsed, err := strconv.Atoi(args[0]); err == nil {
			code = parsed
		}
	}

	s.terminate(code, "exit")
}

func isDigits(arg string) bool {
	if arg == "" {
		return false
	}
	for _, r := range arg {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Echo writes its arguments joined by a single space.
func (s *Shell) Echo(args []string) {
	fmt.Fprintln(s.Stdout, strings.Join(args, " "))
}

// Type reports how each name would be run.
func (s *Shell) Type(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(s.Stdout, "Usage: "+BuiltinType.Usage())
		return
	}

	for _, name := range args {
		res := s.Resolver.Resolve(name)
		switch res.Kind {
		case ResolvedBuiltin:
			fmt.Fprintf(s.Stdout, "%s is a shell builtin command\n", name)
		case ResolvedExecutable:
			fmt.Fprintf(s.Stdout, "%s found at %s\n", name, res.Path)
		default:
			fmt.Fprintf(s.Stdout, "%s: command not found in PATH\n", name)
		}
	}
}
