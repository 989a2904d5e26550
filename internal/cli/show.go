package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/thruflo/liftlogic/internal/audit"
	"github.com/thruflo/liftlogic/internal/rep"
)

var showCmd = &cobra.Command{
	Use:   "show <audit>",
	Short: "Print a saved session audit",
	Long: `Prints the reps of a saved session followed by totals.

The argument is either a CSV audit file or, for SQLite audits, the
"<database>#<table>" reference printed when the session was saved.

Example:
  liftlogic show Audit_20261015_063000.csv
  liftlogic show liftlogic.db#audit_20261015_063000`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	rows, err := loadAudit(ctx, args[0])
	if err != nil {
		return err
	}
	return printAudit(cmd.OutOrStdout(), rows)
}

// loadAudit reads a CSV file, or a SQLite table when ref is "<db>#<table>"
// and does not name an existing file.
func loadAudit(ctx context.Context, ref string) ([][]string, error) {
	if _, err := os.Stat(ref); err == nil {
		return audit.ReadCSV(ref)
	}

	if i := strings.LastIndex(ref, "#"); i > 0 && i < len(ref)-1 {
		return audit.ReadTable(ctx, ref[:i], ref[i+1:])
	}
	return nil, fmt.Errorf("audit not found: %s", ref)
}

// auditTotals summarizes audit rows.
type auditTotals struct {
	Right      int
	Wrong      int
	ByExercise map[string]int
}

func totals(rows [][]string) auditTotals {
	t := auditTotals{ByExercise: make(map[string]int)}
	for _, row := range rows {
		t.ByExercise[row[1]]++
		if row[2] == rep.VerdictGood.Result() {
			t.Right++
		} else {
			t.Wrong++
		}
	}
	return t
}

func printAudit(w io.Writer, rows [][]string) error {
	if len(rows) == 0 {
		fmt.Fprintln(w, "No reps in this audit.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.ToUpper(strings.Join(audit.Header, "\t")))
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to write audit: %w", err)
	}

	t := totals(rows)
	var parts []string
	for _, p := range rep.Profiles() {
		if n := t.ByExercise[p.Mode.String()]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s %d", p.Mode, n))
		}
	}
	fmt.Fprintf(w, "\n%d reps: %d right, %d wrong (%s)\n",
		len(rows), t.Right, t.Wrong, strings.Join(parts, ", "))
	return nil
}
