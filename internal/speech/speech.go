// Package speech speaks feedback cues through an external text-to-speech
// command.
//
// Utterances are fire-and-forget. Each one runs in its own goroutine that is
// never awaited or cancelled, and its error is dropped. Two cues spoken close
// together may overlap or finish in either order; callers must not rely on
// ordering.
package speech

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strconv"
)

// Speaker turns text into audio. Say blocks until the utterance finishes.
type Speaker interface {
	Say(ctx context.Context, text string) error
}

// CommandSpeaker runs an external TTS program with the text as its last
// argument.
type CommandSpeaker struct {
	command string
	args    []string
}

// NewCommandSpeaker creates a CommandSpeaker for command. The command must be
// on PATH.
func NewCommandSpeaker(command string, args ...string) (*CommandSpeaker, error) {
	if command == "" {
		return nil, fmt.Errorf("no speech command configured")
	}
	path, err := exec.LookPath(command)
	if err != nil {
		return nil, fmt.Errorf("speech command %q not found: %w", command, err)
	}
	return &CommandSpeaker{command: path, args: args}, nil
}

// Say runs the command and waits for it to exit.
func (s *CommandSpeaker) Say(ctx context.Context, text string) error {
	args := append(append([]string{}, s.args...), text)
	cmd := exec.CommandContext(ctx, s.command, args...)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("speech command failed: %w", err)
	}
	return nil
}

// DefaultCommand returns the platform TTS program and its arguments for a
// speaking rate in words per minute.
func DefaultCommand(rate int) (string, []string) {
	switch runtime.GOOS {
	case "darwin":
		return "say", []string{"-r", strconv.Itoa(rate)}
	case "windows":
		return "", nil
	default:
		return "espeak", []string{"-s", strconv.Itoa(rate)}
	}
}

// NopSpeaker discards every utterance.
type NopSpeaker struct{}

// Say does nothing.
func (NopSpeaker) Say(context.Context, string) error { return nil }
