package core

import "strings"

// ParsedCommand is a command line split into a command name and its
// arguments.
type ParsedCommand struct {
	Name string
	Args []string
}

// ParseCommandLine splits line on whitespace. No quoting, escaping, or
// expansion is performed. It returns false if the line holds no tokens.
func ParseCommandLine(line string) (ParsedCommand, bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return ParsedCommand{}, false
	}

	return ParsedCommand{
		Name: fields[0],
		Args: fields[1:],
	}, true
}

// Argv returns the name followed by the arguments.
func (p ParsedCommand) Argv() []string {
	return append([]string{p.Name}, p.Args...)
}
