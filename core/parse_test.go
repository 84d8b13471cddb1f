package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCommandLine(t *testing.T) {
	cases := map[string]struct {
		line   string
		want   ParsedCommand
		wantOk bool
	}{
		"empty":       {"", ParsedCommand{}, false},
		"whitespace":  {" \t  ", ParsedCommand{}, false},
		"name-only":   {"ls", ParsedCommand{Name: "ls", Args: []string{}}, true},
		"args":        {"echo a b c", ParsedCommand{Name: "echo", Args: []string{"a", "b", "c"}}, true},
		"extra-space": {"  echo   a \t b  ", ParsedCommand{Name: "echo", Args: []string{"a", "b"}}, true},
		"no-quoting":  {`echo "a b"`, ParsedCommand{Name: "echo", Args: []string{`"a`, `b"`}}, true},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			got, ok := ParseCommandLine(tc.line)
			assert.Equal(t, tc.wantOk, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParsedCommandArgv(t *testing.T) {
	cmd, _ := ParseCommandLine("ls -l /tmp")
	assert.Equal(t, []string{"ls", "-l", "/tmp"}, cmd.Argv())
}
