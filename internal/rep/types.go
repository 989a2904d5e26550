package rep

import (
	"fmt"
	"strings"
	"time"
)

// Mode is the exercise being tracked.
type Mode int

const (
	ModeSquat Mode = iota
	ModeCurl
)

// String returns the mode name as written to the audit log.
func (m Mode) String() string {
	switch m {
	case ModeSquat:
		return "SQUAT"
	case ModeCurl:
		return "CURL"
	default:
		return "UNKNOWN"
	}
}

// ParseMode converts a user-supplied name ("squat", "CURL", ...) to a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "squat":
		return ModeSquat, nil
	case "curl":
		return ModeCurl, nil
	default:
		return 0, fmt.Errorf("unknown exercise mode %q (want squat or curl)", s)
	}
}

// Phase is the current half of a repetition.
type Phase int

const (
	PhaseUp Phase = iota
	PhaseDown
)

// String returns the phase name.
func (p Phase) String() string {
	if p == PhaseDown {
		return "DOWN"
	}
	return "UP"
}

// Verdict is the quality judgement attached to a completed repetition.
type Verdict int

const (
	VerdictGood Verdict = iota
	VerdictBad
)

// String returns the verdict name.
func (v Verdict) String() string {
	if v == VerdictBad {
		return "BAD"
	}
	return "GOOD"
}

// Result returns the value written to the Result column of the audit log.
func (v Verdict) Result() string {
	if v == VerdictBad {
		return "WRONG"
	}
	return "RIGHT"
}

// Event records one completed repetition. Events are values and are never
// modified after Step returns them.
type Event struct {
	Time     time.Time
	Mode     Mode
	Verdict  Verdict
	Note     string
	Extremal float64
}

// Good reports whether the repetition had good form.
func (e Event) Good() bool {
	return e.Verdict == VerdictGood
}
