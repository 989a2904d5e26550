// Package audit persists a finished session as a flat table with the columns
// Time, Exercise, Result, Note: one row per repetition, in emission order.
//
// Every flush produces a fresh artifact named after the time it was
// generated. Nothing is ever appended to an earlier session's artifact.
package audit

import (
	"errors"
	"fmt"
	"time"

	"github.com/thruflo/liftlogic/internal/rep"
)

// Supported formats.
const (
	FormatCSV    = "csv"
	FormatSQLite = "sqlite"
)

// Header is the column set shared by every sink.
var Header = []string{"Time", "Exercise", "Result", "Note"}

// ErrArtifactExists is returned when the generated artifact name is taken.
var ErrArtifactExists = errors.New("audit artifact already exists")

// timeLayout is the wall-clock format of the Time column.
const timeLayout = "15:04:05"

// stampLayout is the generation timestamp embedded in artifact names.
const stampLayout = "20060102_150405"

// Row converts an event to its column values.
func Row(ev rep.Event) []string {
	return []string{
		ev.Time.Local().Format(timeLayout),
		ev.Mode.String(),
		ev.Verdict.Result(),
		ev.Note,
	}
}

// FileName returns the CSV file name for a session flushed at t.
func FileName(t time.Time) string {
	return fmt.Sprintf("Audit_%s.csv", t.Format(stampLayout))
}

// TableName returns the SQLite table name for a session flushed at t.
func TableName(t time.Time) string {
	return fmt.Sprintf("audit_%s", t.Format(stampLayout))
}
