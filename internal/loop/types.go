package loop

import (
	"github.com/thruflo/liftlogic/internal/pose"
	"github.com/thruflo/liftlogic/internal/rep"
)

// SignalKind identifies an input signal.
type SignalKind int

const (
	SignalNone SignalKind = iota
	SignalSelectMode
	SignalQuit
)

// String returns the signal kind name.
func (k SignalKind) String() string {
	switch k {
	case SignalSelectMode:
		return "select_mode"
	case SignalQuit:
		return "quit"
	default:
		return "none"
	}
}

// Signal is a discrete command from the operator.
type Signal struct {
	Kind SignalKind
	Mode rep.Mode // Only set for SignalSelectMode
}

// SelectMode returns a signal selecting mode.
func SelectMode(mode rep.Mode) Signal {
	return Signal{Kind: SignalSelectMode, Mode: mode}
}

// Quit returns a signal ending the session.
func Quit() Signal {
	return Signal{Kind: SignalQuit}
}

// HUD is the presentation state pushed to the renderer after every frame.
type HUD struct {
	SessionID string
	Mode      rep.Mode
	Phase     rep.Phase
	Good      int
	Bad       int
	Feedback  string
	Angle     float64
	Extremal  float64
	Tracking  bool // false when the frame was skipped
	Frames    int
	Skipped   int
}

// Renderer displays the HUD over the current frame. It must not block for
// long: it runs on the frame loop goroutine.
type Renderer interface {
	Render(frame pose.Frame, hud HUD)
}

// Speaker dispatches an utterance without waiting for it.
type Speaker interface {
	Speak(text string)
}

// ExitReason indicates why the loop stopped.
type ExitReason int

const (
	ExitReasonUnknown     ExitReason = iota
	ExitReasonQuit                   // Operator quit
	ExitReasonSourceDone             // Pose stream ended
	ExitReasonCancelled              // Context cancelled (signal)
	ExitReasonSourceError            // Pose stream failed
)

// String returns a human-readable description of the exit reason.
func (r ExitReason) String() string {
	switch r {
	case ExitReasonQuit:
		return "quit"
	case ExitReasonSourceDone:
		return "stream ended"
	case ExitReasonCancelled:
		return "interrupted"
	case ExitReasonSourceError:
		return "stream error"
	default:
		return "unknown"
	}
}

// Result contains the outcome of a session.
type Result struct {
	SessionID string
	Reason    ExitReason
	Mode      rep.Mode
	Frames    int
	Skipped   int
	Good      int
	Bad       int
	Events    []rep.Event
	// Artifact describes what the flush wrote; empty if nothing was recorded
	// or the flush failed.
	Artifact string
	// Err is the pose stream error for ExitReasonSourceError.
	Err error
	// FlushErr is set when persisting the session failed.
	FlushErr error
}
