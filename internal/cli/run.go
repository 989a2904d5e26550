package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/thruflo/liftlogic/internal/audit"
	"github.com/thruflo/liftlogic/internal/config"
	"github.com/thruflo/liftlogic/internal/logging"
	"github.com/thruflo/liftlogic/internal/loop"
	"github.com/thruflo/liftlogic/internal/pose"
	"github.com/thruflo/liftlogic/internal/rep"
	"github.com/thruflo/liftlogic/internal/session"
	"github.com/thruflo/liftlogic/internal/speech"
	"github.com/thruflo/liftlogic/internal/tui"
	"golang.org/x/sync/errgroup"
)

var (
	runConfig   string
	runSource   string
	runMode     string
	runFPS      float64
	runFormat   string
	runAuditDir string
	runDatabase string
	runNoSpeech bool
	runHeadless bool
)

// signalBuffer bounds queued key presses between two frames.
const signalBuffer = 16

// emptySessionTip is printed when a session ends without a single rep.
const emptySessionTip = "Tip: complete the full movement. A rep only counts once you return to the start position."

// HeadlessResult is the JSON output format for headless mode.
type HeadlessResult struct {
	SessionID string `json:"session_id"`
	Reason    string `json:"reason"`
	Mode      string `json:"mode"`
	Frames    int    `json:"frames"`
	Skipped   int    `json:"skipped"`
	Good      int    `json:"good"`
	Bad       int    `json:"bad"`
	Artifact  string `json:"artifact,omitempty"`
	Error     string `json:"error,omitempty"`
	SaveError string `json:"save_error,omitempty"`
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start a counting session",
	Long: `Reads body landmarks as JSON Lines and counts repetitions of the selected
exercise until you quit or the stream ends, then saves the session audit.

Keys (read from the controlling terminal):
  s      switch to squat
  c      switch to curl
  q/Esc  quit and save

Example:
  posesim --mode squat --reps 5 | liftlogic run
  liftlogic run --source session.jsonl --fps 30 --format sqlite
  liftlogic run --source session.jsonl --headless`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVar(&runConfig, "config", "", "config file (default: ./liftlogic.yaml)")
	runCmd.Flags().StringVarP(&runSource, "source", "s", "", `landmark stream file, "-" for stdin`)
	runCmd.Flags().StringVarP(&runMode, "mode", "m", "", "starting exercise: squat or curl")
	runCmd.Flags().Float64Var(&runFPS, "fps", 0, "replay frames at this rate (0: as fast as they arrive)")
	runCmd.Flags().StringVar(&runFormat, "format", "", "audit format: csv or sqlite")
	runCmd.Flags().StringVar(&runAuditDir, "audit-dir", "", "directory for CSV audit files")
	runCmd.Flags().StringVar(&runDatabase, "database", "", "SQLite database for audit tables")
	runCmd.Flags().BoolVar(&runNoSpeech, "no-speech", false, "disable spoken feedback")
	runCmd.Flags().BoolVar(&runHeadless, "headless", false, "run without TUI, print JSON result to stdout")

	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	cfg, err := loadRunConfig(cmd, cwd)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	source, err := pose.OpenStream(cfg.Source.Path, pose.StreamOptions{FPS: cfg.Source.FPS})
	if err != nil {
		return fmt.Errorf("cannot start session: %w", err)
	}
	defer source.Close()

	opts := sessionOptions{
		cfg:     cfg,
		source:  source,
		speaker: newSpeaker(cfg, logger),
		logger:  logger,
	}

	var res loop.Result
	if runHeadless {
		res, err = runSession(ctx, opts)
	} else {
		res, err = runInteractive(ctx, opts, logger)
	}
	if err != nil {
		return err
	}

	return report(cmd.OutOrStdout(), cmd.ErrOrStderr(), res, runHeadless)
}

// loadRunConfig loads .env, the config file and environment, then applies
// the flags the user set.
func loadRunConfig(cmd *cobra.Command, cwd string) (*config.Config, error) {
	if err := config.LoadEnv(cwd); err != nil {
		return nil, err
	}

	cfg, err := config.Load(cwd, runConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("source") {
		cfg.Source.Path = runSource
	}
	if flags.Changed("mode") {
		cfg.Mode = runMode
	}
	if flags.Changed("fps") {
		cfg.Source.FPS = runFPS
	}
	if flags.Changed("format") {
		cfg.Audit.Format = runFormat
	}
	if flags.Changed("audit-dir") {
		cfg.Audit.Dir = runAuditDir
	}
	if flags.Changed("database") {
		cfg.Audit.Database = runDatabase
	}
	if runNoSpeech {
		cfg.Speech.Enabled = false
	}

	if err := config.ValidateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(cfg *config.Config, w io.Writer) (*logging.Logger, error) {
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, config.ValidationError{Field: "log.level", Message: err.Error()}
	}
	logger := logging.New()
	logger.SetLevel(level)
	logger.SetOutput(log.New(w, "", log.LstdFlags))
	return logger, nil
}

// newSpeaker resolves the TTS command. When it is missing, speech is
// disabled with a warning and cues are only logged.
func newSpeaker(cfg *config.Config, logger *logging.Logger) *speech.Dispatcher {
	if !cfg.Speech.Enabled {
		return speech.NewDispatcher(speech.NopSpeaker{}, logger)
	}

	command, args := cfg.Speech.Command, cfg.Speech.Args
	if command == "" {
		command, args = speech.DefaultCommand(cfg.Speech.Rate)
	}

	speaker, err := speech.NewCommandSpeaker(command, args...)
	if err != nil {
		logger.Warn("speech disabled", "error", err)
		return speech.NewDispatcher(speech.NopSpeaker{}, logger)
	}
	return speech.NewDispatcher(speaker, logger)
}

// newSink returns the persistence sink selected by cfg.
func newSink(cfg *config.Config, now func() time.Time) (session.Sink, error) {
	switch strings.ToLower(cfg.Audit.Format) {
	case audit.FormatCSV:
		return audit.NewCSVSink(cfg.Audit.Dir, now), nil
	case audit.FormatSQLite:
		return audit.NewSQLiteSink(cfg.Audit.Database, now), nil
	default:
		return nil, config.ValidationError{Field: "audit.format", Message: "must be csv or sqlite"}
	}
}

// sessionOptions gathers the collaborators of one session so it can run
// without a terminal.
type sessionOptions struct {
	cfg      *config.Config
	source   pose.Source
	signals  <-chan loop.Signal
	renderer loop.Renderer
	speaker  loop.Speaker
	logger   *logging.Logger
	now      func() time.Time
}

// runSession runs one frame loop to completion.
func runSession(ctx context.Context, opts sessionOptions) (loop.Result, error) {
	mode, err := rep.ParseMode(opts.cfg.Mode)
	if err != nil {
		return loop.Result{}, err
	}

	sink, err := newSink(opts.cfg, opts.now)
	if err != nil {
		return loop.Result{}, err
	}

	l := loop.New(loop.Options{
		SessionID: uuid.NewString(),
		Mode:      mode,
		Source:    opts.source,
		Signals:   opts.signals,
		Renderer:  opts.renderer,
		Speaker:   opts.speaker,
		Sink:      sink,
		Logger:    opts.logger,
		Now:       opts.now,
	})
	return l.Run(ctx), nil
}

// runInteractive runs a session with the HUD on stdout and keys read from the
// controlling terminal. Without a terminal the session still runs, but only
// ends with the stream or an interrupt.
func runInteractive(ctx context.Context, opts sessionOptions, logger *logging.Logger) (loop.Result, error) {
	tty, err := tui.OpenTTY()
	if err != nil {
		logger.Warn("keyboard unavailable, running without HUD", "error", err)
		return runSession(ctx, opts)
	}

	terminal := tui.NewTerminal(tty, os.Stdout)
	if err := terminal.EnterRaw(); err != nil {
		tty.Close()
		return loop.Result{}, err
	}

	width, _, err := terminal.Size()
	if err != nil {
		width = tui.MaxWidth
	}
	display := tui.NewDisplay(terminal, tui.ViewFor(width))

	signals := make(chan loop.Signal, signalBuffer)
	opts.signals = signals
	opts.renderer = display

	var res loop.Result
	g, gctx := errgroup.WithContext(ctx)
	keyCtx, stopKeys := context.WithCancel(gctx)

	g.Go(func() error {
		// Closing the tty releases the keyboard's blocked read, so it must
		// come after the terminal is restored.
		defer stopKeys()
		defer tty.Close()
		defer terminal.ExitRaw()
		defer display.Stop()

		display.Start()
		var err error
		res, err = runSession(ctx, opts)
		return err
	})

	g.Go(func() error {
		err := tui.NewKeyboard(tty).Run(keyCtx, signals)
		if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, os.ErrClosed) {
			logger.Debug("keyboard stopped", "error", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return loop.Result{}, err
	}
	return res, nil
}

// report prints the session outcome. Headless runs print HeadlessResult as
// JSON; interactive runs print a summary. A failed stream is returned as an
// error after the report so the exit status reflects it.
func report(out, errOut io.Writer, res loop.Result, headless bool) error {
	if headless {
		hr := HeadlessResult{
			SessionID: res.SessionID,
			Reason:    res.Reason.String(),
			Mode:      res.Mode.String(),
			Frames:    res.Frames,
			Skipped:   res.Skipped,
			Good:      res.Good,
			Bad:       res.Bad,
			Artifact:  res.Artifact,
		}
		if res.Err != nil {
			hr.Error = res.Err.Error()
		}
		if res.FlushErr != nil {
			hr.SaveError = res.FlushErr.Error()
		}
		data, err := json.MarshalIndent(hr, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal headless result: %w", err)
		}
		fmt.Fprintln(out, string(data))
	} else {
		fmt.Fprintf(out, "Session ended (%s): %d good, %d bad\n", res.Reason, res.Good, res.Bad)
		switch {
		case res.FlushErr != nil:
			fmt.Fprintf(errOut, "warning: session not saved: %v\n", res.FlushErr)
		case res.Artifact == "":
			fmt.Fprintln(out, "No reps were recorded.")
			fmt.Fprintln(out, emptySessionTip)
		default:
			fmt.Fprintf(out, "Audit saved to %s\n", res.Artifact)
		}
	}

	if res.Reason == loop.ExitReasonSourceError {
		return fmt.Errorf("pose stream failed: %w", res.Err)
	}
	return nil
}
