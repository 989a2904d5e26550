// Package posesim synthesizes landmark streams of squats and curls so the
// counter can be driven without a camera.
package posesim

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/thruflo/liftlogic/internal/pose"
	"github.com/thruflo/liftlogic/internal/rep"
)

// Quality selects how deep generated reps go.
type Quality int

const (
	QualityGood  Quality = iota // past the good threshold
	QualityBad                  // enters the rep but stops short
	QualityMixed                // alternates good and bad, good first
)

// String returns the quality name.
func (q Quality) String() string {
	switch q {
	case QualityBad:
		return "bad"
	case QualityMixed:
		return "mixed"
	default:
		return "good"
	}
}

// ParseQuality converts "good", "bad" or "mixed" to a Quality.
func ParseQuality(s string) (Quality, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "good":
		return QualityGood, nil
	case "bad":
		return QualityBad, nil
	case "mixed":
		return QualityMixed, nil
	default:
		return 0, fmt.Errorf("unknown quality %q (want good, bad or mixed)", s)
	}
}

// Defaults for Options.
const (
	DefaultReps    = 5
	DefaultSteps   = 12
	DefaultHold    = 6
	DefaultFPS     = 30
	DefaultJitter  = 2
	RestAngle      = 172.0
	goodMargin     = 15.0
	limbLength     = 0.2
	defaultSeedLow = 0x5eed
)

// Options configures a generated stream.
type Options struct {
	Mode    rep.Mode
	Reps    int
	Quality Quality
	Steps   int     // frames per half repetition
	Hold    int     // frames at rest before each rep and at the end
	FPS     float64 // timestamp spacing
	Jitter  float64 // uniform angle noise, degrees
	Dropout float64 // probability a frame has no body
	Start   time.Time
	Seed    uint64
}

func (o Options) withDefaults() Options {
	if o.Reps <= 0 {
		o.Reps = DefaultReps
	}
	if o.Steps <= 0 {
		o.Steps = DefaultSteps
	}
	if o.Hold < 0 {
		o.Hold = 0
	}
	if o.FPS <= 0 {
		o.FPS = DefaultFPS
	}
	if o.Start.IsZero() {
		o.Start = time.Now()
	}
	return o
}

// Bottom is the extremal angle a rep of the given quality reaches.
func Bottom(p rep.Profile, good bool) float64 {
	if good {
		return p.GoodBelow - goodMargin
	}
	return (p.GoodBelow + p.EnterBelow) / 2
}

// Trace returns the noiseless joint angle for every frame.
func Trace(opts Options) []float64 {
	opts = opts.withDefaults()
	p := rep.ProfileFor(opts.Mode)

	var trace []float64
	hold := func() {
		for i := 0; i < opts.Hold; i++ {
			trace = append(trace, RestAngle)
		}
	}

	for n := 0; n < opts.Reps; n++ {
		good := opts.Quality == QualityGood || (opts.Quality == QualityMixed && n%2 == 0)
		bottom := Bottom(p, good)

		hold()
		for i := 1; i <= opts.Steps; i++ {
			trace = append(trace, ease(RestAngle, bottom, float64(i)/float64(opts.Steps)))
		}
		for i := 1; i <= opts.Steps; i++ {
			trace = append(trace, ease(bottom, RestAngle, float64(i)/float64(opts.Steps)))
		}
	}
	hold()
	return trace
}

// ease moves from a to b along a cosine curve, t in [0,1].
func ease(a, b, t float64) float64 {
	return a + (b-a)*(1-math.Cos(t*math.Pi))/2
}

// Generate returns the frames of a stream.
func Generate(opts Options) []pose.Frame {
	opts = opts.withDefaults()
	rng := rand.New(rand.NewPCG(opts.Seed, defaultSeedLow))
	interval := time.Duration(float64(time.Second) / opts.FPS)

	trace := Trace(opts)
	frames := make([]pose.Frame, len(trace))
	for i, deg := range trace {
		frame := pose.Frame{
			Seq:  uint64(i + 1),
			Time: opts.Start.Add(time.Duration(i) * interval),
		}
		if opts.Dropout > 0 && rng.Float64() < opts.Dropout {
			frames[i] = frame
			continue
		}
		if opts.Jitter > 0 {
			deg += (rng.Float64()*2 - 1) * opts.Jitter
		}
		frame.Landmarks = Landmarks(opts.Mode, math.Min(deg, 180))
		frames[i] = frame
	}
	return frames
}

// Landmarks poses a left-side figure whose tracked joint for mode is bent to
// deg degrees. The other joints stay put.
func Landmarks(mode rep.Mode, deg float64) pose.Landmarks {
	if mode == rep.ModeCurl {
		shoulder := pose.Joint{X: 0.5, Y: 0.25}
		elbow := pose.Joint{X: 0.5, Y: shoulder.Y + limbLength}
		return pose.Landmarks{
			pose.LeftShoulder: shoulder,
			pose.LeftElbow:    elbow,
			pose.LeftWrist:    bend(elbow, deg),
			pose.LeftHip:      {X: 0.5, Y: 0.6},
			pose.LeftKnee:     {X: 0.5, Y: 0.6 + limbLength},
			pose.LeftAnkle:    {X: 0.5, Y: 0.6 + 2*limbLength - 0.02},
		}
	}

	hip := pose.Joint{X: 0.5, Y: 0.5}
	knee := pose.Joint{X: 0.5, Y: hip.Y + limbLength}
	return pose.Landmarks{
		pose.LeftShoulder: {X: 0.5, Y: 0.2},
		pose.LeftElbow:    {X: 0.55, Y: 0.32},
		pose.LeftWrist:    {X: 0.6, Y: 0.42},
		pose.LeftHip:      hip,
		pose.LeftKnee:     knee,
		pose.LeftAnkle:    bend(knee, deg),
	}
}

// bend places the outer joint so the angle between the upward limb and the
// outer limb at vertex is deg.
func bend(vertex pose.Joint, deg float64) pose.Joint {
	rad := deg * math.Pi / 180
	return pose.Joint{
		X: vertex.X + limbLength*math.Sin(rad),
		Y: vertex.Y - limbLength*math.Cos(rad),
	}
}
