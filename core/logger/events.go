package logger

import "strconv"

// Event types written to the log.
const (
	TypeSessionStart   = "session_start"
	TypeSessionEnd     = "session_end"
	TypeBuiltin        = "builtin"
	TypeRunCommand     = "run_command"
	TypeUnknownCommand = "unknown_command"
	TypeSpawnFailure   = "spawn_failure"
)

// LogType is implemented by every event that can be recorded.
type LogType interface {
	// LogType is the event discriminator stored in the "type" field.
	LogType() string
	// Fields holds the event payload.
	Fields() map[string]interface{}
}

// SessionStart is logged once when the interactive loop begins.
type SessionStart struct {
	SearchPath []string
	Terminal   bool
}

func (e *SessionStart) LogType() string { return TypeSessionStart }

func (e *SessionStart) Fields() map[string]interface{} {
	return map[string]interface{}{
		"search_path": stringList(e.SearchPath),
		"terminal":    e.Terminal,
	}
}

// SessionEnd is logged when the session terminates.
type SessionEnd struct {
	ExitCode int
	Reason   string
}

func (e *SessionEnd) LogType() string { return TypeSessionEnd }

func (e *SessionEnd) Fields() map[string]interface{} {
	return map[string]interface{}{
		"exit_code": e.ExitCode,
		"reason":    e.Reason,
	}
}

// Builtin is logged when a shell builtin runs.
type Builtin struct {
	Command []string
}

func (e *Builtin) LogType() string { return TypeBuiltin }

func (e *Builtin) Fields() map[string]interface{} {
	return map[string]interface{}{
		"command": stringList(e.Command),
	}
}

// RunCommand is logged after an external program completes.
type RunCommand struct {
	Command             []string
	ResolvedCommandPath string
	ExitCode            int
}

func (e *RunCommand) LogType() string { return TypeRunCommand }

func (e *RunCommand) Fields() map[string]interface{} {
	return map[string]interface{}{
		"command":               stringList(e.Command),
		"resolved_command_path": e.ResolvedCommandPath,
		"exit_code":             e.ExitCode,
	}
}

// UnknownCommand is logged when a command can't be resolved.
type UnknownCommand struct {
	Command []string
}

func (e *UnknownCommand) LogType() string { return TypeUnknownCommand }

func (e *UnknownCommand) Fields() map[string]interface{} {
	return map[string]interface{}{
		"command": stringList(e.Command),
	}
}

// SpawnFailure is logged when a resolved program couldn't be run.
type SpawnFailure struct {
	Command             []string
	ResolvedCommandPath string
	Error               string
}

func (e *SpawnFailure) LogType() string { return TypeSpawnFailure }

func (e *SpawnFailure) Fields() map[string]interface{} {
	return map[string]interface{}{
		"command":               stringList(e.Command),
		"resolved_command_path": e.ResolvedCommandPath,
		"error":                 e.Error,
	}
}

func stringList(in []string) []interface{} {
	out := make([]interface{}, len(in))
	for i, v := range in {
		out[i] = v
	}
	return out
}

// LogEntry is a decoded event from the log.
type LogEntry struct {
	TimestampMicros int64
	SessionID       string
	Type            string
	Event           map[string]interface{}
}

// Command returns the command field of the event, if any.
func (le *LogEntry) Command() []string {
	raw, ok := le.Event["command"].([]interface{})
	if !ok {
		return nil
	}
	var out []string
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// StringField returns a string field of the event, or "" if missing.
func (le *LogEntry) StringField(key string) string {
	s, _ := le.Event[key].(string)
	return s
}

// IntField returns a numeric field of the event truncated to an int.
func (le *LogEntry) IntField(key string) int {
	switch v := le.Event[key].(type) {
	case float64:
		return int(v)
	case string:
		i, _ := strconv.Atoi(v)
		return i
	default:
		return 0
	}
}
