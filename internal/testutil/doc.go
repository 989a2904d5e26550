// Package testutil provides shared test helpers for liftlogic.
//
// # Fixtures
//
//   - JointsAt(deg) - three joints whose interior angle at the middle is deg
//   - LandmarksAt(triple, deg) - a landmark set carrying that angle on triple
//   - SquatGoodTrace, SquatBadTrace, CurlGoodTrace, CurlBadTrace - one repetition each
//   - Frames(triple, trace, start) - one frame per angle, one second apart
//   - JSONLines(t, frames) - frames encoded in the pose stream format
//
// # Environment Helpers
//
//   - SetupTestDir(t) - temp dir with a liftlogic.yaml pointing audits at it
//   - WriteTestFile(t, base, path, content) - writes a file in the test dir
//
// # Timeouts
//
//   - ContextWithTestDeadline(t, fallback) - context bounded by the test deadline
//   - LoopContext(t) - context sized for a frame loop test
//
// testutil only depends on the pose package so that every other package can
// use it from internal tests without an import cycle.
package testutil
