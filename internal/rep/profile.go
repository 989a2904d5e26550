package rep

import (
	"fmt"

	"github.com/thruflo/liftlogic/internal/pose"
)

// Profile holds everything that differs between exercises. The machine shape
// is shared: track the minimum below TrackBelow, enter ActivePhase below
// EnterBelow, and complete a repetition when the angle rises above ExitAbove
// while in ActivePhase.
type Profile struct {
	Mode        Mode
	Triple      pose.Triple
	RestPhase   Phase
	ActivePhase Phase

	TrackBelow float64
	EnterBelow float64
	ExitAbove  float64
	GoodBelow  float64

	GoodNote string
	BadNote  func(extremal float64) string

	GoodFeedback string
	BadFeedback  string
	GoodCue      string
	BadCue       string
}

// Feedback returns the on-screen text for a verdict.
func (p Profile) Feedback(v Verdict) string {
	if v == VerdictGood {
		return p.GoodFeedback
	}
	return p.BadFeedback
}

// Cue returns the spoken text for a verdict.
func (p Profile) Cue(v Verdict) string {
	if v == VerdictGood {
		return p.GoodCue
	}
	return p.BadCue
}

// Announcement is spoken when the mode is selected.
func (p Profile) Announcement() string {
	switch p.Mode {
	case ModeCurl:
		return "Curl Mode"
	default:
		return "Squat Mode"
	}
}

// SquatProfile tracks hip-knee-ankle. A squat is good when the knee closed
// below 95 degrees at the bottom.
func SquatProfile() Profile {
	return Profile{
		Mode:         ModeSquat,
		Triple:       pose.Triple{A: pose.LeftHip, B: pose.LeftKnee, C: pose.LeftAnkle},
		RestPhase:    PhaseUp,
		ActivePhase:  PhaseDown,
		TrackBelow:   160,
		EnterBelow:   150,
		ExitAbove:    165,
		GoodBelow:    95,
		GoodNote:     "Good Depth",
		BadNote:      func(extremal float64) string { return fmt.Sprintf("Depth: %d", int(extremal)) },
		GoodFeedback: "PERFECT",
		BadFeedback:  "TOO SHALLOW",
		GoodCue:      "Good",
		BadCue:       "Go Lower",
	}
}

// CurlProfile tracks shoulder-elbow-wrist. A curl is good when the elbow
// closed below 40 degrees at the top.
func CurlProfile() Profile {
	return Profile{
		Mode:         ModeCurl,
		Triple:       pose.Triple{A: pose.LeftShoulder, B: pose.LeftElbow, C: pose.LeftWrist},
		RestPhase:    PhaseDown,
		ActivePhase:  PhaseUp,
		TrackBelow:   150,
		EnterBelow:   150,
		ExitAbove:    160,
		GoodBelow:    40,
		GoodNote:     "Full ROM",
		BadNote:      func(float64) string { return "Half Rep" },
		GoodFeedback: "GOOD SQUEEZE",
		BadFeedback:  "HALF REP",
		GoodCue:      "Good",
		BadCue:       "All the way up",
	}
}

// ProfileFor returns the built-in profile for a mode.
func ProfileFor(m Mode) Profile {
	if m == ModeCurl {
		return CurlProfile()
	}
	return SquatProfile()
}

// Profiles returns every built-in profile in mode order.
func Profiles() []Profile {
	return []Profile{SquatProfile(), CurlProfile()}
}
