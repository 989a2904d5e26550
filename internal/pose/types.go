package pose

import "time"

// JointName identifies a body landmark. Names follow the MediaPipe pose
// landmark names in snake_case.
type JointName string

// Landmarks used by the built-in exercise profiles.
const (
	LeftShoulder JointName = "left_shoulder"
	LeftElbow    JointName = "left_elbow"
	LeftWrist    JointName = "left_wrist"
	LeftHip      JointName = "left_hip"
	LeftKnee     JointName = "left_knee"
	LeftAnkle    JointName = "left_ankle"
)

// Joint is a 2-D point in normalized image coordinates, [0,1] on each axis
// with the origin at the top-left corner.
type Joint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Landmarks maps joint names to positions for a single frame.
// A nil Landmarks means the pose estimator found no body in the frame.
type Landmarks map[JointName]Joint

// Frame is one unit of input from a pose source.
type Frame struct {
	Seq       uint64    `json:"seq"`
	Time      time.Time `json:"ts"`
	Landmarks Landmarks `json:"landmarks"`
}

// HasLandmarks reports whether the estimator produced any landmarks.
func (f Frame) HasLandmarks() bool {
	return len(f.Landmarks) > 0
}

// Triple names the three joints that define an angle at vertex B.
type Triple struct {
	A JointName
	B JointName
	C JointName
}

// Lookup returns the three joints of t from the landmark set.
// ok is false if any of them is absent, in which case the frame must be
// skipped.
func (l Landmarks) Lookup(t Triple) (a, b, c Joint, ok bool) {
	if l == nil {
		return Joint{}, Joint{}, Joint{}, false
	}
	var okA, okB, okC bool
	a, okA = l[t.A]
	b, okB = l[t.B]
	c, okC = l[t.C]
	return a, b, c, okA && okB && okC
}
