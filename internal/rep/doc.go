// Package rep turns a stream of joint angles into discrete repetition events.
//
// The pieces, leaves first:
//   - Angle computes the interior angle at the middle joint of a triple
//   - Machine is a two-phase state machine parameterized by a Profile
//   - Controller owns the active exercise mode and its Machine
//
// Each Profile carries a hysteresis band: the phase enters the active half of
// a repetition below EnterBelow and only returns to rest above ExitAbove, so
// jitter around a single cutoff cannot produce duplicate events.
//
// Nothing here is safe for concurrent use. The frame loop is the only caller.
package rep
