package cli

import (
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags.
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "liftlogic",
	Short: "Real-time squat and curl rep counter",
	Long: `Liftlogic reads a stream of body landmarks, counts squat and bicep curl
repetitions, judges each one by its range of motion, speaks feedback and
saves an audit log of every rep when the session ends.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("liftlogic version {{.Version}}\n")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
