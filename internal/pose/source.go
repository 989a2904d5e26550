// Package pose defines the landmark types the rep tracker consumes and the
// sources that supply them.
//
// Pose estimation itself happens elsewhere. A source yields one Frame per
// call; a frame without landmarks is a normal outcome, not an error.
package pose

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/term"
)

// ErrNoSource is returned when no pose stream can be opened at startup.
var ErrNoSource = errors.New("no pose source available")

// Source supplies frames to the frame loop.
//
// Next blocks until the next frame is available. It returns io.EOF once the
// source is exhausted. A frame whose Landmarks is nil means the estimator saw
// no body and the frame should be skipped.
type Source interface {
	Next(ctx context.Context) (Frame, error)
}

// StreamSource reads frames encoded as JSON Lines, one Frame object per line.
//
//	{"seq":1,"ts":"2026-10-15T10:00:00Z","landmarks":{"left_hip":{"x":0.51,"y":0.42}}}
//
// Lines that do not decode become frames without landmarks. Missing seq and
// ts fields are filled in by the source.
type StreamSource struct {
	scanner  *bufio.Scanner
	closer   io.Closer
	interval time.Duration
	last     time.Time
	seq      uint64
	now      func() time.Time
}

// StreamOptions configures a StreamSource.
type StreamOptions struct {
	// FPS paces Next to at most this many frames per second, emulating a
	// live camera when replaying a recording. Zero reads as fast as possible.
	FPS float64

	// Now overrides the clock used for pacing and missing timestamps.
	Now func() time.Time
}

// NewStreamSource creates a StreamSource reading from r.
func NewStreamSource(r io.Reader, opts StreamOptions) *StreamSource {
	scanner := bufio.NewScanner(r)
	// Full MediaPipe landmark sets with visibility run to a few KB per line.
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	s := &StreamSource{
		scanner: scanner,
		now:     opts.Now,
	}
	if c, ok := r.(io.Closer); ok {
		s.closer = c
	}
	if opts.FPS > 0 {
		s.interval = time.Duration(float64(time.Second) / opts.FPS)
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// OpenStream opens path as a pose stream. "-" means stdin, which must be a
// pipe or file: an interactive terminal cannot carry landmarks.
func OpenStream(path string, opts StreamOptions) (*StreamSource, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: no stream path given", ErrNoSource)
	}

	if path == "-" {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			return nil, fmt.Errorf("%w: stdin is a terminal, pipe a landmark stream into it", ErrNoSource)
		}
		return NewStreamSource(os.Stdin, opts), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoSource, err)
	}
	return NewStreamSource(f, opts), nil
}

// Next returns the next frame from the stream.
func (s *StreamSource) Next(ctx context.Context) (Frame, error) {
	if err := s.pace(ctx); err != nil {
		return Frame{}, err
	}

	for {
		if err := ctx.Err(); err != nil {
			return Frame{}, err
		}
		if !s.scanner.Scan() {
			if err := s.scanner.Err(); err != nil {
				return Frame{}, fmt.Errorf("failed to read pose stream: %w", err)
			}
			return Frame{}, io.EOF
		}

		line := s.scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		s.seq++
		var f Frame
		if err := json.Unmarshal(line, &f); err != nil {
			return Frame{Seq: s.seq, Time: s.now()}, nil
		}
		if f.Seq == 0 {
			f.Seq = s.seq
		}
		if f.Time.IsZero() {
			f.Time = s.now()
		}
		return f, nil
	}
}

// pace sleeps until the next frame slot when an FPS limit is set.
func (s *StreamSource) pace(ctx context.Context) error {
	if s.interval <= 0 {
		return nil
	}

	now := s.now()
	if !s.last.IsZero() {
		if wait := s.last.Add(s.interval).Sub(now); wait > 0 {
			timer := time.NewTimer(wait)
			defer timer.Stop()
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-timer.C:
			}
			now = s.now()
		}
	}
	s.last = now
	return nil
}

// Close releases the underlying reader if it is closable.
func (s *StreamSource) Close() error {
	if s.closer == nil || s.closer == os.Stdin {
		return nil
	}
	return s.closer.Close()
}
