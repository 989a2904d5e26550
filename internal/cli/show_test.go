package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thruflo/liftlogic/internal/audit"
	"github.com/thruflo/liftlogic/internal/rep"
)

func sampleAuditEvents() []rep.Event {
	return []rep.Event{
		{Time: sessionStart, Mode: rep.ModeSquat, Verdict: rep.VerdictGood, Note: "Good Depth"},
		{Time: sessionStart.Add(4 * time.Second), Mode: rep.ModeSquat, Verdict: rep.VerdictBad, Note: "Depth: 118"},
		{Time: sessionStart.Add(40 * time.Second), Mode: rep.ModeCurl, Verdict: rep.VerdictGood, Note: "Full ROM"},
	}
}

func TestShow_CSV(t *testing.T) {
	path, err := audit.NewCSVSink(t.TempDir(), fixedNow).Write(context.Background(), sampleAuditEvents())
	require.NoError(t, err)

	rows, err := loadAudit(context.Background(), path)
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, printAudit(&out, rows))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 6)
	assert.Regexp(t, `^TIME\s+EXERCISE\s+RESULT\s+NOTE$`, lines[0])
	assert.Regexp(t, `^07:00:00\s+SQUAT\s+RIGHT\s+Good Depth$`, lines[1])
	assert.Regexp(t, `^07:00:40\s+CURL\s+RIGHT\s+Full ROM$`, lines[3])
	assert.Equal(t, "3 reps: 2 right, 1 wrong (SQUAT 2, CURL 1)", lines[5])
}

func TestShow_SQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "audit.db")
	ref, err := audit.NewSQLiteSink(dbPath, fixedNow).Write(context.Background(), sampleAuditEvents())
	require.NoError(t, err)

	rows, err := loadAudit(context.Background(), ref)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"07:00:04", "SQUAT", "WRONG", "Depth: 118"}, rows[1])
}

func TestShow_Missing(t *testing.T) {
	_, err := loadAudit(context.Background(), filepath.Join(t.TempDir(), "Audit_nope.csv"))
	assert.ErrorContains(t, err, "audit not found")
}

func TestPrintAudit_Empty(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, printAudit(&out, nil))
	assert.Equal(t, "No reps in this audit.\n", out.String())
}

func TestTotals(t *testing.T) {
	got := totals([][]string{
		{"07:00:00", "CURL", "WRONG", "Half Rep"},
		{"07:00:05", "CURL", "WRONG", "Half Rep"},
	})
	assert.Equal(t, 0, got.Right)
	assert.Equal(t, 2, got.Wrong)
	assert.Equal(t, map[string]int{"CURL": 2}, got.ByExercise)
}
