// Package session accumulates repetition events for one workout.
//
// A Log is append-only for the life of the process. Counters and the event
// list move together: Good()+Bad() always equals Len(). The log is handed to
// persistence exactly once, at shutdown.
package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/thruflo/liftlogic/internal/rep"
)

var (
	// ErrNothingToPersist is returned by Flush when no repetition was recorded.
	ErrNothingToPersist = errors.New("no reps were recorded, nothing to persist")

	// ErrAlreadyFlushed is returned by every Flush after the first one.
	ErrAlreadyFlushed = errors.New("session already flushed")
)

// Sink persists a finished session and returns a description of what it
// wrote (a file path, a table name).
type Sink interface {
	Write(ctx context.Context, events []rep.Event) (string, error)
}

// Log is the ordered record of a workout.
type Log struct {
	events  []rep.Event
	good    int
	bad     int
	flushed bool
}

// New creates an empty Log.
func New() *Log {
	return &Log{}
}

// Record appends ev and bumps the counter matching its verdict.
func (l *Log) Record(ev rep.Event) {
	l.events = append(l.events, ev)
	if ev.Good() {
		l.good++
	} else {
		l.bad++
	}
}

// Good returns the number of good repetitions.
func (l *Log) Good() int { return l.good }

// Bad returns the number of bad repetitions.
func (l *Log) Bad() int { return l.bad }

// Len returns the number of recorded repetitions.
func (l *Log) Len() int { return len(l.events) }

// Events returns a copy of the recorded events in emission order.
func (l *Log) Events() []rep.Event {
	out := make([]rep.Event, len(l.events))
	copy(out, l.events)
	return out
}

// Flushed reports whether Flush has been called.
func (l *Log) Flushed() bool { return l.flushed }

// Flush writes the log to sink. An empty log never reaches the sink. Only the
// first call does anything; the log stays readable afterwards.
func (l *Log) Flush(ctx context.Context, sink Sink) (string, error) {
	if l.flushed {
		return "", ErrAlreadyFlushed
	}
	l.flushed = true

	if len(l.events) == 0 {
		return "", ErrNothingToPersist
	}

	artifact, err := sink.Write(ctx, l.Events())
	if err != nil {
		return "", fmt.Errorf("failed to persist session: %w", err)
	}
	return artifact, nil
}
