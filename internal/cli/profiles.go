package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/thruflo/liftlogic/internal/rep"
)

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "Print the built-in exercise thresholds",
	Long: `Prints the joint triple and angle thresholds (degrees) of each exercise.

  TRACK  angles below this update the lowest angle of the rep
  ENTER  angles below this start the active half of the rep
  EXIT   angles above this finish the rep
  GOOD   a rep whose lowest angle is below this is good`,
	Args: cobra.NoArgs,
	RunE: runProfiles,
}

func init() {
	rootCmd.AddCommand(profilesCmd)
}

func runProfiles(cmd *cobra.Command, args []string) error {
	return printProfiles(cmd.OutOrStdout(), rep.Profiles())
}

func printProfiles(w io.Writer, profiles []rep.Profile) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "MODE\tJOINTS\tTRACK<\tENTER<\tEXIT>\tGOOD<\tACTIVE")
	for _, p := range profiles {
		fmt.Fprintf(tw, "%s\t%s-%s-%s\t%.0f\t%.0f\t%.0f\t%.0f\t%s\n",
			p.Mode, p.Triple.A, p.Triple.B, p.Triple.C,
			p.TrackBelow, p.EnterBelow, p.ExitAbove, p.GoodBelow, p.ActivePhase)
	}
	return tw.Flush()
}
