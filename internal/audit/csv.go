package audit

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/thruflo/liftlogic/internal/rep"
)

// CSVSink writes each session to Audit_<stamp>.csv in a directory.
type CSVSink struct {
	dir string
	now func() time.Time
}

// NewCSVSink creates a CSVSink writing into dir. now may be nil.
func NewCSVSink(dir string, now func() time.Time) *CSVSink {
	if now == nil {
		now = time.Now
	}
	return &CSVSink{dir: dir, now: now}
}

// Write creates a new CSV file holding events and returns its absolute path.
func (s *CSVSink) Write(ctx context.Context, events []rep.Event) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create audit directory: %w", err)
	}

	path, err := filepath.Abs(filepath.Join(s.dir, FileName(s.now())))
	if err != nil {
		return "", fmt.Errorf("failed to resolve audit path: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return "", fmt.Errorf("%w: %s", ErrArtifactExists, path)
		}
		return "", fmt.Errorf("failed to create audit file: %w", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(Header); err != nil {
		f.Close()
		return "", fmt.Errorf("failed to write audit header: %w", err)
	}
	for _, ev := range events {
		if err := w.Write(Row(ev)); err != nil {
			f.Close()
			return "", fmt.Errorf("failed to write audit row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return "", fmt.Errorf("failed to flush audit file: %w", err)
	}

	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close audit file: %w", err)
	}
	return path, nil
}

// ReadCSV loads an audit file written by CSVSink. The header row is checked
// and dropped.
func ReadCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit file: %w", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse audit file: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("audit file %s is empty", path)
	}
	header := records[0]
	if len(header) != len(Header) {
		return nil, fmt.Errorf("audit file %s has %d columns, want %d", path, len(header), len(Header))
	}
	for i, col := range Header {
		if header[i] != col {
			return nil, fmt.Errorf("audit file %s: column %d is %q, want %q", path, i+1, header[i], col)
		}
	}
	return records[1:], nil
}
