package logger

import (
	"bytes"
	"encoding/json"
	"io/ioutil"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"sigs.k8s.io/yaml"
)

func fixedTime() time.Time {
	return time.Date(2006, 1, 2, 3, 4, 5, 0, time.UTC)
}

func TestJsonLinesLogRecorder(t *testing.T) {
	buf := &bytes.Buffer{}
	lg := NewJsonLinesLogRecorder(buf)
	lg.Now = fixedTime
	session := lg.NewSession()

	assert.Nil(t, session.Record(&RunCommand{
		Command:             []string{"ls", "-l"},
		ResolvedCommandPath: "/bin/ls",
		ExitCode:            2,
	}))
	assert.Nil(t, session.Record(&UnknownCommand{Command: []string{"nope"}}))

	var entries []*LogEntry
	assert.Nil(t, ReadJSONLinesLog(buf, func(le *LogEntry) {
		entries = append(entries, le)
	}))

	if assert.Len(t, entries, 2) {
		run := entries[0]
		assert.Equal(t, TypeRunCommand, run.Type)
		assert.Equal(t, session.SessionID(), run.SessionID)
		assert.Equal(t, fixedTime().UnixNano()/int64(time.Microsecond), run.TimestampMicros)
		assert.Equal(t, []string{"ls", "-l"}, run.Command())
		assert.Equal(t, "/bin/ls", run.StringField("resolved_command_path"))
		assert.Equal(t, 2, run.IntField("exit_code"))

		assert.Equal(t, TypeUnknownCommand, entries[1].Type)
		assert.Equal(t, []string{"nope"}, entries[1].Command())
	}
}

func TestEachLineIsJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	session := NewJsonLinesLogRecorder(buf).NewSession()
	assert.Nil(t, session.Record(&SessionStart{SearchPath: []string{"/bin"}}))
	assert.Nil(t, session.Record(&SessionEnd{ExitCode: 3, Reason: "exit"}))

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	assert.Len(t, lines, 2)
	for _, line := range lines {
		assert.True(t, json.Valid(line), "invalid JSON line: %s", line)
	}
}

func TestReport(t *testing.T) {
	buf := &bytes.Buffer{}
	session := NewJsonLinesLogRecorder(buf).NewSession()

	events := []LogType{
		&SessionStart{SearchPath: []string{"/bin"}},
		&Builtin{Command: []string{"echo", "hi"}},
		&RunCommand{Command: []string{"ls"}, ResolvedCommandPath: "/bin/ls"},
		&RunCommand{Command: []string{"ls"}, ResolvedCommandPath: "/bin/ls", ExitCode: 1},
		&UnknownCommand{Command: []string{"nope"}},
		&UnknownCommand{Command: []string{"nope", "again"}},
		&SpawnFailure{Command: []string{"gone"}, Error: "no such file"},
		&SessionEnd{ExitCode: 7, Reason: "exit"},
	}
	for _, ev := range events {
		assert.Nil(t, session.Record(ev))
	}

	var report Report
	assert.Nil(t, ReadJSONLinesLog(buf, report.Update))

	assert.Equal(t, len(events), report.LogEntries)
	assert.Equal(t, len(events), report.Sessions.Get(session.SessionID()))
	assert.Equal(t, 0, report.InvalidEntries.Len())
	assert.Equal(t, 2, report.RunCommand.CommandNames.Get("ls"))
	assert.Equal(t, 1, report.RunCommand.ExitCodes.Get("1"))
	assert.Equal(t, 1, report.Builtin.CommandNames.Get("echo"))
	assert.Equal(t, 2, report.UnknownCommand.CommandNames.Get("nope"))
	assert.Equal(t, 1, report.SpawnFailure.Failures.Get("gone", "no such file"))
	assert.Equal(t, 1, report.SessionEnd.ExitCodes.Get("7"))

	_, err := yaml.Marshal(report)
	assert.Nil(t, err)
}

func TestReportUnknownType(t *testing.T) {
	var report Report
	report.Update(&LogEntry{Type: "mystery"})

	assert.Equal(t, 1, report.InvalidEntries.Get(`"mystery"`))
}

func TestNewSessionIDs(t *testing.T) {
	l := NewJsonLinesLogRecorder(ioutil.Discard)

	first, second := l.NewSession(), l.NewSession()

	_, err := uuid.Parse(first.SessionID())
	assert.NoError(t, err)
	assert.NotEqual(t, first.SessionID(), second.SessionID())
}
