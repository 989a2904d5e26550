package testutil

import (
	"bytes"
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/thruflo/liftlogic/internal/pose"
)

// limbLength is the distance from the vertex to each outer joint. Small
// enough that every generated point stays inside the unit square.
const limbLength = 0.3

// Traces from the behaviour table: one repetition each.
var (
	SquatGoodTrace = []float64{170, 150, 90, 150, 170}
	SquatBadTrace  = []float64{170, 150, 120, 150, 170}
	CurlGoodTrace  = []float64{170, 140, 30, 140, 170}
	CurlBadTrace   = []float64{170, 140, 70, 140, 170}
)

// JointsAt returns joints a, b, c with an interior angle of deg at b.
// a sits straight above b; c is rotated deg degrees from a around b.
func JointsAt(deg float64) (a, b, c pose.Joint) {
	b = pose.Joint{X: 0.5, Y: 0.5}
	a = pose.Joint{X: b.X, Y: b.Y - limbLength}
	rad := deg * math.Pi / 180
	c = pose.Joint{
		X: b.X + limbLength*math.Sin(rad),
		Y: b.Y - limbLength*math.Cos(rad),
	}
	return a, b, c
}

// LandmarksAt returns a landmark set with deg encoded on triple.
func LandmarksAt(triple pose.Triple, deg float64) pose.Landmarks {
	a, b, c := JointsAt(deg)
	return pose.Landmarks{
		triple.A: a,
		triple.B: b,
		triple.C: c,
	}
}

// Frames returns one frame per trace angle, spaced one second apart from
// start and numbered from 1.
func Frames(triple pose.Triple, trace []float64, start time.Time) []pose.Frame {
	frames := make([]pose.Frame, len(trace))
	for i, deg := range trace {
		frames[i] = pose.Frame{
			Seq:       uint64(i + 1),
			Time:      start.Add(time.Duration(i) * time.Second),
			Landmarks: LandmarksAt(triple, deg),
		}
	}
	return frames
}

// JSONLines encodes frames in the pose stream format.
func JSONLines(t *testing.T, frames []pose.Frame) []byte {
	t.Helper()

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, f := range frames {
		require.NoError(t, enc.Encode(f))
	}
	return buf.Bytes()
}
