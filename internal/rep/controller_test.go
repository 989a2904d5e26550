package rep

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thruflo/liftlogic/internal/pose"
	"github.com/thruflo/liftlogic/internal/testutil"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		input   string
		want    Mode
		wantErr bool
	}{
		{"squat", ModeSquat, false},
		{"SQUAT", ModeSquat, false},
		{" curl ", ModeCurl, false},
		{"bench", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseMode(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestController_Observe(t *testing.T) {
	c := NewController(ModeSquat)
	triple := c.Profile().Triple

	var events []Event
	for _, deg := range []float64{170, 150, 90, 150, 170} {
		angle, ev, emitted, ok := c.Observe(testutil.LandmarksAt(triple, deg), t0)
		require.True(t, ok)
		assert.InDelta(t, deg, angle, 1e-6)
		if emitted {
			events = append(events, ev)
		}
	}

	require.Len(t, events, 1)
	assert.Equal(t, VerdictGood, events[0].Verdict)
	assert.InDelta(t, 90, events[0].Extremal, 1e-6)
}

func TestController_ObserveMissingJoint(t *testing.T) {
	c := NewController(ModeSquat)
	_, _, _, ok := c.Observe(testutil.LandmarksAt(c.Profile().Triple, 100), t0)
	require.True(t, ok)
	require.Equal(t, PhaseDown, c.Phase())

	partial := testutil.LandmarksAt(c.Profile().Triple, 10)
	delete(partial, pose.LeftAnkle)

	_, _, emitted, ok := c.Observe(partial, t0)
	assert.False(t, ok)
	assert.False(t, emitted)
	assert.Equal(t, PhaseDown, c.Phase())
	assert.InDelta(t, 100, c.Extremal(), 1e-6, "skipped frame must not touch the extremal")

	_, _, _, ok = c.Observe(nil, t0)
	assert.False(t, ok)
}

func TestController_ObserveUsesActiveTriple(t *testing.T) {
	c := NewController(ModeCurl)

	// Only squat joints present: curl cannot use the frame.
	l := testutil.LandmarksAt(SquatProfile().Triple, 30)
	_, _, _, ok := c.Observe(l, t0)
	assert.False(t, ok)
}

func TestController_SetModeResetsPartialRep(t *testing.T) {
	c := NewController(ModeSquat)
	triple := c.Profile().Triple
	for _, deg := range []float64{170, 140, 80} {
		c.Observe(testutil.LandmarksAt(triple, deg), t0)
	}
	require.Equal(t, PhaseDown, c.Phase())

	changed := c.SetMode(ModeCurl)
	assert.True(t, changed)
	assert.Equal(t, ModeCurl, c.Mode())
	assert.Equal(t, PhaseDown, c.Phase())
	assert.Equal(t, 180.0, c.Extremal())

	changed = c.SetMode(ModeSquat)
	assert.True(t, changed)
	assert.Equal(t, PhaseUp, c.Phase())

	// Standing up after the switch back completes nothing: the discarded
	// descent does not count.
	_, _, emitted, ok := c.Observe(testutil.LandmarksAt(triple, 175), t0)
	require.True(t, ok)
	assert.False(t, emitted)
}

func TestController_SetModeIdempotent(t *testing.T) {
	c := NewController(ModeCurl)
	triple := c.Profile().Triple
	c.Observe(testutil.LandmarksAt(triple, 60), t0)
	phase, extremal := c.Phase(), c.Extremal()
	require.Equal(t, PhaseUp, phase)

	changed := c.SetMode(ModeCurl)
	assert.False(t, changed)
	assert.Equal(t, phase, c.Phase())
	assert.Equal(t, extremal, c.Extremal())

	_, ev, emitted, _ := c.Observe(testutil.LandmarksAt(triple, 170), t0)
	require.True(t, emitted, "rep in progress survives re-selecting the same mode")
	assert.Equal(t, VerdictBad, ev.Verdict)
}

func TestProfiles(t *testing.T) {
	squat := SquatProfile()
	assert.Equal(t, 160.0, squat.TrackBelow)
	assert.Equal(t, 150.0, squat.EnterBelow)
	assert.Equal(t, 165.0, squat.ExitAbove)
	assert.Equal(t, 95.0, squat.GoodBelow)
	assert.Equal(t, "Squat Mode", squat.Announcement())
	assert.Equal(t, "PERFECT", squat.Feedback(VerdictGood))
	assert.Equal(t, "Go Lower", squat.Cue(VerdictBad))

	curl := CurlProfile()
	assert.Equal(t, 150.0, curl.TrackBelow)
	assert.Equal(t, 150.0, curl.EnterBelow)
	assert.Equal(t, 160.0, curl.ExitAbove)
	assert.Equal(t, 40.0, curl.GoodBelow)
	assert.Equal(t, "HALF REP", curl.Feedback(VerdictBad))
	assert.Equal(t, "All the way up", curl.Cue(VerdictBad))

	assert.Len(t, Profiles(), 2)
	assert.Equal(t, ModeCurl, ProfileFor(ModeCurl).Mode)
}

func TestVerdictResult(t *testing.T) {
	assert.Equal(t, "RIGHT", VerdictGood.Result())
	assert.Equal(t, "WRONG", VerdictBad.Result())
	assert.Equal(t, "SQUAT", ModeSquat.String())
	assert.Equal(t, "CURL", ModeCurl.String())
}
