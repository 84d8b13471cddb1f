package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// ReadJSONLinesLog parses a newline delimited JSON log.
func ReadJSONLinesLog(r io.Reader, handler func(le *LogEntry)) error {
	decoder := json.NewDecoder(r)
	for decoder.More() {
		var rawEntry json.RawMessage
		if err := decoder.Decode(&rawEntry); err != nil {
			return err
		}

		var entry structpb.Struct
		if err := protojson.Unmarshal(rawEntry, &entry); err != nil {
			return err
		}

		handler(toLogEntry(entry.AsMap()))
	}
	return nil
}

func toLogEntry(raw map[string]interface{}) *LogEntry {
	le := &LogEntry{}
	if ts, ok := raw["timestamp_micros"].(float64); ok {
		le.TimestampMicros = int64(ts)
	}
	le.SessionID, _ = raw["session_id"].(string)
	le.Type, _ = raw["type"].(string)
	le.Event, _ = raw["event"].(map[string]interface{})
	if le.Event == nil {
		le.Event = make(map[string]interface{})
	}
	return le
}

// Report holds statistics about the logged events.
type Report struct {
	LogEntries     int        `json:"log_entries"`
	Sessions       StrCounter `json:"sessions"`
	InvalidEntries StrCounter `json:"unknown_log_entries,omitempty"`

	RunCommand     RunCommandReport     `json:"run_command_report"`
	Builtin        BuiltinReport        `json:"builtin_report"`
	UnknownCommand UnknownCommandReport `json:"unknown_command_report"`
	SpawnFailure   SpawnFailureReport   `json:"spawn_failure_report"`
	SessionEnd     SessionEndReport     `json:"session_end_report"`
}

func (r *Report) Update(le *LogEntry) {
	r.LogEntries++
	if le.SessionID != "" {
		r.Sessions.Increment(le.SessionID)
	}

	switch le.Type {
	case TypeRunCommand:
		r.RunCommand.update(le)
	case TypeBuiltin:
		r.Builtin.update(le)
	case TypeUnknownCommand:
		r.UnknownCommand.update(le)
	case TypeSpawnFailure:
		r.SpawnFailure.update(le)
	case TypeSessionEnd:
		r.SessionEnd.update(le)
	case TypeSessionStart:
		// Ignore
	default:
		r.InvalidEntries.Increment(fmt.Sprintf("%q", le.Type))
	}
}

type RunCommandReport struct {
	// Path of the resolved command
	ResolvedCommandPaths StrCounter `json:"resolved_command_paths"`
	// Name of the command
	CommandNames StrCounter `json:"command_names"`
	ExitCodes    StrCounter `json:"exit_codes"`
}

func (r *RunCommandReport) update(le *LogEntry) {
	r.ResolvedCommandPaths.Increment(le.StringField("resolved_command_path"))
	if cmd := le.Command(); len(cmd) > 0 {
		r.CommandNames.Increment(cmd[0])
	}
	r.ExitCodes.Increment(strconv.Itoa(le.IntField("exit_code")))
}

type BuiltinReport struct {
	CommandNames StrCounter `json:"command_names"`
}

func (r *BuiltinReport) update(le *LogEntry) {
	if cmd := le.Command(); len(cmd) > 0 {
		r.CommandNames.Increment(cmd[0])
	}
}

type UnknownCommandReport struct {
	CommandNames StrCounter `json:"command_names"`
}

func (r *UnknownCommandReport) update(le *LogEntry) {
	if cmd := le.Command(); len(cmd) > 0 {
		r.CommandNames.Increment(cmd[0])
	}
}

type SpawnFailureReport struct {
	Failures *PathCounter `json:"failures"`
}

func (r *SpawnFailureReport) update(le *LogEntry) {
	if r.Failures == nil {
		r.Failures = NewPathCounter("command", "error")
	}
	name := ""
	if cmd := le.Command(); len(cmd) > 0 {
		name = cmd[0]
	}
	r.Failures.Increment(name, le.StringField("error"))
}

type SessionEndReport struct {
	Reasons   StrCounter `json:"reasons"`
	ExitCodes StrCounter `json:"exit_codes"`
}

func (r *SessionEndReport) update(le *LogEntry) {
	r.Reasons.Increment(le.StringField("reason"))
	r.ExitCodes.Increment(strconv.Itoa(le.IntField("exit_code")))
}

// StrCounter counts the number of strings seen.
type StrCounter struct {
	internal map[string]int
}

// Increment adds one to the given key.
func (s *StrCounter) Increment(toAdd string) {
	if s.internal == nil {
		s.internal = make(map[string]int)
	}

	s.internal[toAdd]++
}

// Get returns the count for key.
func (s *StrCounter) Get(key string) int {
	return s.internal[key]
}

// Len returns the number of distinct keys.
func (s *StrCounter) Len() int {
	return len(s.internal)
}

// MarshalJSON implemnts custom JSON marshaler.
func (s StrCounter) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.internal)
}

func NewPathCounter(cols ...string) *PathCounter {
	return &PathCounter{
		cols:     cols,
		internal: make(map[string]int),
	}
}

// PathCounter counts the number of string tuples seen.
type PathCounter struct {
	cols     []string
	internal map[string]int
}

// Increment adds one to the given key.
func (ctr *PathCounter) Increment(toAdd ...string) {
	if len(toAdd) != len(ctr.cols) {
		panic("wrong number of columns to add")
	}

	ctr.internal[toKey(toAdd...)]++
}

// Get returns the count for the given tuple.
func (ctr *PathCounter) Get(vals ...string) int {
	return ctr.internal[toKey(vals...)]
}

// MarshalJSON implemnts custom JSON marshaler.
func (ctr *PathCounter) MarshalJSON() ([]byte, error) {
	type Count struct {
		Count  int               `json:"count"`
		Fields map[string]string `json:"event"`
		Path   string            `json:"-"`
	}

	var out []Count
	for k, v := range ctr.internal {
		count := Count{
			Count:  v,
			Path:   k,
			Fields: make(map[string]string),
		}

		splitPath := fromKey(k)
		for colNum, colVal := range ctr.cols {
			count.Fields[colVal] = splitPath[colNum]
		}

		out = append(out, count)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Count == out[j].Count {
			return out[i].Path < out[j].Path
		}
		return out[i].Count > out[j].Count
	})

	return json.Marshal(out)
}

func toKey(vals ...string) string {
	key, _ := json.Marshal(vals)
	return string(key)
}

func fromKey(key string) (out []string) {
	json.Unmarshal([]byte(key), &out)
	return
}
