package rep

import (
	"math"
	"time"
)

// resetAngle is the extremal value after a reset. Every real angle is at or
// below it, so the first tracked frame always replaces it.
const resetAngle = 180.0

// Machine converts a per-frame angle stream into repetition events for a
// single profile.
type Machine struct {
	profile  Profile
	phase    Phase
	extremal float64
}

// NewMachine creates a Machine in the profile's rest phase.
func NewMachine(p Profile) *Machine {
	m := &Machine{profile: p}
	m.Reset()
	return m
}

// Reset discards any partial repetition.
func (m *Machine) Reset() {
	m.phase = m.profile.RestPhase
	m.extremal = resetAngle
}

// Profile returns the profile the machine runs.
func (m *Machine) Profile() Profile {
	return m.profile
}

// Phase returns the current phase.
func (m *Machine) Phase() Phase {
	return m.phase
}

// Extremal returns the smallest angle tracked since the last reset.
func (m *Machine) Extremal() float64 {
	return m.extremal
}

// Step feeds one angle observed at time at. It returns the completed
// repetition, if this frame finished one.
//
// The enter guard is level-triggered: every frame below EnterBelow sets the
// active phase, not only the first one.
func (m *Machine) Step(angle float64, at time.Time) (Event, bool) {
	p := &m.profile

	if angle < p.TrackBelow {
		m.extremal = math.Min(m.extremal, angle)
		if angle < p.EnterBelow {
			m.phase = p.ActivePhase
		}
	}

	if m.phase != p.ActivePhase || angle <= p.ExitAbove {
		return Event{}, false
	}

	m.phase = p.RestPhase
	ev := Event{
		Time:     at,
		Mode:     p.Mode,
		Verdict:  VerdictBad,
		Extremal: m.extremal,
	}
	if m.extremal < p.GoodBelow {
		ev.Verdict = VerdictGood
		ev.Note = p.GoodNote
	} else {
		ev.Note = p.BadNote(m.extremal)
	}
	m.extremal = resetAngle
	return ev, true
}
