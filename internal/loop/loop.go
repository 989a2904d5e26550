package loop

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/thruflo/liftlogic/internal/logging"
	"github.com/thruflo/liftlogic/internal/pose"
	"github.com/thruflo/liftlogic/internal/rep"
	"github.com/thruflo/liftlogic/internal/session"
)

// Spoken and displayed text outside of per-rep feedback.
const (
	InitialFeedback = "Stand in frame"
	CueOnline       = "System Online"
	CueSaved        = "Data Saved"
)

// ErrNoSink is reported when a session ends without a persistence sink.
var ErrNoSink = errors.New("no audit sink configured")

// Options holds the collaborators for a Loop.
type Options struct {
	SessionID string
	Mode      rep.Mode
	Source    pose.Source
	Signals   <-chan Signal
	Renderer  Renderer
	Speaker   Speaker
	Sink      session.Sink
	Logger    *logging.Logger
	Now       func() time.Time // Optional: clock for frames without timestamps
}

// Loop is the frame orchestrator.
type Loop struct {
	id       string
	source   pose.Source
	signals  <-chan Signal
	renderer Renderer
	speaker  Speaker
	sink     session.Sink
	logger   *logging.Logger
	now      func() time.Time

	ctrl     *rep.Controller
	log      *session.Log
	feedback string
	frames   int
	skipped  int
}

type nopRenderer struct{}

func (nopRenderer) Render(pose.Frame, HUD) {}

type nopSpeaker struct{}

func (nopSpeaker) Speak(string) {}

// New creates a Loop. Renderer, Speaker, Logger and Now may be nil.
func New(opts Options) *Loop {
	l := &Loop{
		id:       opts.SessionID,
		source:   opts.Source,
		signals:  opts.Signals,
		renderer: opts.Renderer,
		speaker:  opts.Speaker,
		sink:     opts.Sink,
		logger:   opts.Logger,
		now:      opts.Now,
		ctrl:     rep.NewController(opts.Mode),
		log:      session.New(),
		feedback: InitialFeedback,
	}
	if l.renderer == nil {
		l.renderer = nopRenderer{}
	}
	if l.speaker == nil {
		l.speaker = nopSpeaker{}
	}
	if l.logger == nil {
		l.logger = logging.Default()
	}
	if l.id != "" {
		l.logger = l.logger.With("session", l.id)
	}
	if l.now == nil {
		l.now = time.Now
	}
	return l
}

// Run processes frames until the operator quits, the stream ends, the
// stream fails or ctx is cancelled. It then flushes the session log once and
// returns the outcome.
func (l *Loop) Run(ctx context.Context) Result {
	l.logger.Info("session started", "mode", l.ctrl.Mode())
	l.speaker.Speak(CueOnline)

	reason, err := l.iterate(ctx)
	if err != nil {
		l.logger.Error("pose stream failed", "error", err)
	}

	res := Result{
		SessionID: l.id,
		Reason:    reason,
		Mode:      l.ctrl.Mode(),
		Frames:    l.frames,
		Skipped:   l.skipped,
		Good:      l.log.Good(),
		Bad:       l.log.Bad(),
		Events:    l.log.Events(),
		Err:       err,
	}
	res.Artifact, res.FlushErr = l.flush(context.WithoutCancel(ctx))

	l.logger.Info("session ended", "reason", reason, "good", res.Good, "bad", res.Bad,
		"frames", res.Frames, "skipped", res.Skipped)
	return res
}

func (l *Loop) iterate(ctx context.Context) (ExitReason, error) {
	for {
		if l.drainSignals() {
			return ExitReasonQuit, nil
		}
		if ctx.Err() != nil {
			return ExitReasonCancelled, nil
		}

		frame, err := l.source.Next(ctx)
		if err != nil {
			switch {
			case errors.Is(err, io.EOF):
				return ExitReasonSourceDone, nil
			case ctx.Err() != nil:
				return ExitReasonCancelled, nil
			default:
				return ExitReasonSourceError, err
			}
		}

		l.processFrame(frame)
	}
}

// drainSignals handles every pending signal without blocking and reports
// whether one of them was a quit.
func (l *Loop) drainSignals() bool {
	for {
		select {
		case sig, ok := <-l.signals:
			if !ok {
				l.signals = nil
				return false
			}
			if l.handleSignal(sig) {
				return true
			}
		default:
			return false
		}
	}
}

func (l *Loop) handleSignal(sig Signal) (quit bool) {
	switch sig.Kind {
	case SignalQuit:
		l.logger.Info("quit requested")
		return true
	case SignalSelectMode:
		if l.ctrl.SetMode(sig.Mode) {
			l.logger.Info("mode changed", "mode", sig.Mode)
			l.speaker.Speak(l.ctrl.Profile().Announcement())
		}
	}
	return false
}

func (l *Loop) processFrame(frame pose.Frame) {
	l.frames++
	if frame.Time.IsZero() {
		frame.Time = l.now()
	}

	if !frame.HasLandmarks() {
		l.skip(frame, "no landmarks")
		return
	}

	angle, ev, emitted, ok := l.ctrl.Observe(frame.Landmarks, frame.Time)
	if !ok {
		l.skip(frame, "missing joints")
		return
	}

	if emitted {
		l.record(ev)
	}

	hud := l.hud()
	hud.Angle = angle
	hud.Tracking = true
	l.renderer.Render(frame, hud)
}

func (l *Loop) skip(frame pose.Frame, why string) {
	l.skipped++
	l.logger.Debug("frame skipped", "seq", frame.Seq, "reason", why)
	l.renderer.Render(frame, l.hud())
}

func (l *Loop) record(ev rep.Event) {
	l.log.Record(ev)

	profile := l.ctrl.Profile()
	l.feedback = profile.Feedback(ev.Verdict)
	l.logger.Info("rep finished", "mode", ev.Mode, "verdict", ev.Verdict,
		"extremal", int(ev.Extremal), "note", ev.Note)
	l.speaker.Speak(profile.Cue(ev.Verdict))
}

func (l *Loop) hud() HUD {
	return HUD{
		SessionID: l.id,
		Mode:      l.ctrl.Mode(),
		Phase:     l.ctrl.Phase(),
		Good:      l.log.Good(),
		Bad:       l.log.Bad(),
		Feedback:  l.feedback,
		Extremal:  l.ctrl.Extremal(),
		Frames:    l.frames,
		Skipped:   l.skipped,
	}
}

func (l *Loop) flush(ctx context.Context) (string, error) {
	if l.sink == nil {
		if l.log.Len() == 0 {
			return "", nil
		}
		l.logger.Error("session not saved", "error", ErrNoSink)
		return "", ErrNoSink
	}

	artifact, err := l.log.Flush(ctx, l.sink)
	switch {
	case errors.Is(err, session.ErrNothingToPersist):
		l.logger.Warn("no reps were recorded, nothing to persist")
		return "", nil
	case err != nil:
		l.logger.Error("session not saved", "error", err)
		return "", err
	}

	l.logger.Info("session saved", "artifact", artifact)
	l.speaker.Speak(CueSaved)
	return artifact, nil
}
