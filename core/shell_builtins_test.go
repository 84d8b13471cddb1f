package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupBuiltin(t *testing.T) {
	for _, name := range []string{"exit", "echo", "type"} {
		t.Run(name, func(t *testing.T) {
			b, ok := LookupBuiltin(name)
			assert.True(t, ok)
			assert.Equal(t, name, b.String())
			assert.NotEmpty(t, b.Usage())
			assert.NotEmpty(t, b.Short())
		})
	}

	for _, name := range []string{"", "cd", "Echo", "ls"} {
		_, ok := LookupBuiltin(name)
		assert.False(t, ok, name)
	}
}

func TestBuiltinNames(t *testing.T) {
	assert.Equal(t, []string{"echo", "exit", "type"}, BuiltinNames())
}

func TestUnknownBuiltinString(t *testing.T) {
	assert.Equal(t, "Builtin(42)", Builtin(42).String())
}
