// posesim writes a synthetic landmark stream as JSON Lines to stdout.
// Pipe it into the counter to try a session without a camera:
//
//	go run ./cmd/posesim --mode squat --reps 5 --quality mixed | liftlogic run --fps 30
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/thruflo/liftlogic/internal/posesim"
	"github.com/thruflo/liftlogic/internal/rep"
)

func main() {
	var (
		mode     string
		quality  string
		opts     posesim.Options
		realtime bool
	)

	cmd := &cobra.Command{
		Use:          "posesim",
		Short:        "Emit a synthetic squat or curl landmark stream",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if opts.Mode, err = rep.ParseMode(mode); err != nil {
				return err
			}
			if opts.Quality, err = posesim.ParseQuality(quality); err != nil {
				return err
			}
			opts.Start = time.Now()

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return emit(ctx, opts, realtime)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&mode, "mode", "m", "squat", "exercise: squat or curl")
	flags.StringVarP(&quality, "quality", "q", "good", "rep depth: good, bad or mixed")
	flags.IntVarP(&opts.Reps, "reps", "n", posesim.DefaultReps, "number of repetitions")
	flags.IntVar(&opts.Steps, "steps", posesim.DefaultSteps, "frames per half repetition")
	flags.IntVar(&opts.Hold, "hold", posesim.DefaultHold, "frames at rest between repetitions")
	flags.Float64Var(&opts.FPS, "fps", posesim.DefaultFPS, "frame rate used for timestamps")
	flags.Float64Var(&opts.Jitter, "jitter", posesim.DefaultJitter, "angle noise in degrees")
	flags.Float64Var(&opts.Dropout, "dropout", 0, "probability that a frame has no body (0-1)")
	flags.Uint64Var(&opts.Seed, "seed", 1, "random seed")
	flags.BoolVar(&realtime, "realtime", false, "write frames at --fps instead of all at once")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func emit(ctx context.Context, opts posesim.Options, realtime bool) error {
	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()
	enc := json.NewEncoder(w)

	var tick <-chan time.Time
	if realtime {
		if opts.FPS <= 0 {
			opts.FPS = posesim.DefaultFPS
		}
		ticker := time.NewTicker(time.Duration(float64(time.Second) / opts.FPS))
		defer ticker.Stop()
		tick = ticker.C
	}

	for _, frame := range posesim.Generate(opts) {
		if tick != nil {
			select {
			case <-ctx.Done():
				return nil
			case <-tick:
			}
		}
		if err := enc.Encode(frame); err != nil {
			return fmt.Errorf("failed to write frame: %w", err)
		}
		if realtime {
			if err := w.Flush(); err != nil {
				return fmt.Errorf("failed to write frame: %w", err)
			}
		}
	}
	return nil
}
