// Package loop drives a workout session one frame at a time.
//
// Each iteration:
//   - Drains pending input signals (mode selection, quit)
//   - Pulls one frame from the pose source
//   - Skips the frame if the active exercise's joints are missing
//   - Feeds the joint angle to the rep controller
//   - Records any completed repetition and dispatches spoken feedback
//   - Pushes counters and feedback to the renderer
//
// All session state is owned by the Loop and touched only by the goroutine
// calling Run. Collaborators receive copies. When Run returns, the session
// log has been flushed exactly once.
package loop
