// Package ttylog records and replays the terminal output of shell sessions.
package ttylog

import (
	"io"
	"log"
	"sync"
	"time"
)

// Stream identifies the file descriptor data was seen on.
type Stream int

const (
	StreamStdin Stream = iota
	StreamStdout
	StreamStderr
)

// Entry is a single chunk of terminal IO.
type Entry struct {
	TimestampMicros int64
	Stream          Stream
	Data            []byte
}

// LogSink receives log events.
type LogSink func(e *Entry) error

// LogSource adapts log readers.
type LogSource interface {
	// Next fetches the next available log entry. It returns io.EOF if the source
	// has no more log entries.
	Next() (*Entry, error)
}

// NewRealTimePlayback plays back the results in real-time.
// If maxSleep > 0, it's used as the maximum duration to pause.
func NewRealTimePlayback(maxSleep time.Duration, next LogSink) LogSink {
	var once sync.Once
	var prevTimeMicros int64

	return func(entry *Entry) error {
		once.Do(func() {
			prevTimeMicros = entry.TimestampMicros
		})

		delta := entry.TimestampMicros - prevTimeMicros
		prevTimeMicros = entry.TimestampMicros

		if maxSleep > 0 {
			sleepDuration := time.Duration(delta) * time.Microsecond
			if sleepDuration > maxSleep {
				sleepDuration = maxSleep
			}
			time.Sleep(sleepDuration)
		}

		return next(entry)
	}
}

// NewClientOutput writes stdout and stderr to the given writer
func NewClientOutput(w io.Writer) LogSink {
	return func(entry *Entry) error {
		if entry.Stream == StreamStdin {
			return nil
		}
		_, err := w.Write(entry.Data)
		return err
	}
}

// Replay reads a stream of events to a callback.
func Replay(recording LogSource, callback LogSink) error {
	for {
		entry, err := recording.Next()
		switch {
		case err == io.EOF:
			return nil
		case err != nil:
			return err
		}

		if err := callback(entry); err != nil {
			return err
		}
	}
}

// Recorder forwards everything written through its writers to a LogSink.
type Recorder struct {
	mutex  sync.Mutex
	output LogSink
	now    func() time.Time
	log    *log.Logger
}

// NewRecorder creates a recorder that forwards all events to output. Sink
// errors are reported to logger and never fail the write.
func NewRecorder(output LogSink, logger *log.Logger) *Recorder {
	return &Recorder{
		output: output,
		now:    time.Now,
		log:    logger,
	}
}

// Writer wraps w so successful writes are recorded on stream.
func (r *Recorder) Writer(stream Stream, w io.Writer) io.Writer {
	return &recorderWriter{r: r, stream: stream, wrapped: w}
}

func (r *Recorder) record(stream Stream, eventTime time.Time, data []byte) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	err := r.output(&Entry{
		TimestampMicros: eventTime.UnixMicro(),
		Stream:          stream,
		Data:            append([]byte(nil), data...),
	})
	if err != nil && r.log != nil {
		r.log.Printf("error recording session: %v", err)
	}
}

type recorderWriter struct {
	r       *Recorder
	stream  Stream
	wrapped io.Writer
}

var _ io.Writer = (*recorderWriter)(nil)

func (rw *recorderWriter) Write(p []byte) (int, error) {
	eventTime := rw.r.now()
	n, err := rw.wrapped.Write(p)
	if n > 0 {
		rw.r.record(rw.stream, eventTime, p[:n])
	}
	return n, err
}
