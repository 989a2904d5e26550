package rep

import (
	"time"

	"github.com/thruflo/liftlogic/internal/pose"
)

// Controller holds the selected exercise and the machine that tracks it.
type Controller struct {
	machine *Machine
}

// NewController creates a Controller with mode selected.
func NewController(mode Mode) *Controller {
	return &Controller{machine: NewMachine(ProfileFor(mode))}
}

// Mode returns the active mode.
func (c *Controller) Mode() Mode {
	return c.machine.profile.Mode
}

// Profile returns the active profile.
func (c *Controller) Profile() Profile {
	return c.machine.profile
}

// Phase returns the active machine's phase.
func (c *Controller) Phase() Phase {
	return c.machine.Phase()
}

// Extremal returns the active machine's tracked extremal angle.
func (c *Controller) Extremal() float64 {
	return c.machine.Extremal()
}

// SetMode switches to mode and reports whether anything changed. Selecting
// the active mode is a no-op; switching discards the partial repetition
// without emitting an event.
func (c *Controller) SetMode(mode Mode) bool {
	if mode == c.Mode() {
		return false
	}
	c.machine = NewMachine(ProfileFor(mode))
	return true
}

// Observe extracts the active triple from landmarks and steps the machine.
// ok is false when a required joint is missing; state is then untouched.
func (c *Controller) Observe(l pose.Landmarks, at time.Time) (angle float64, ev Event, emitted bool, ok bool) {
	a, b, cc, found := l.Lookup(c.machine.profile.Triple)
	if !found {
		return 0, Event{}, false, false
	}
	angle = Angle(a, b, cc)
	ev, emitted = c.machine.Step(angle, at)
	return angle, ev, emitted, true
}
