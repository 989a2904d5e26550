package tui

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestANSIEscapeConstants(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		constant string
		want     string
	}{
		{"ClearScreen", ClearScreen, "\033[2J"},
		{"ClearLine", ClearLine, "\033[K"},
		{"ClearBelow", ClearBelow, "\033[J"},
		{"CursorHome", CursorHome, "\033[H"},
		{"CursorHide", CursorHide, "\033[?25l"},
		{"CursorShow", CursorShow, "\033[?25h"},
		{"Reset", Reset, "\033[0m"},
		{"Bold", Bold, "\033[1m"},
		{"FgRed", FgRed, "\033[31m"},
		{"FgGreen", FgGreen, "\033[32m"},
		{"FgYellow", FgYellow, "\033[33m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.constant)
		})
	}
}

func TestCursorTo(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		row, col int
		want     string
	}{
		{"origin", 1, 1, "\033[1;1H"},
		{"row 5 col 10", 5, 10, "\033[5;10H"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, CursorTo(tt.row, tt.col))
		})
	}
}

func TestTerminalWrite(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	term := NewTerminal(nil, &buf)

	term.Write("hello")
	assert.Equal(t, "hello", buf.String())
}

func TestTerminalWriteLine(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	term := NewTerminal(nil, &buf)

	term.WriteLine("hello")
	assert.Equal(t, "hello\r\n", buf.String())
}

func TestTerminalCursorControl(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	term := NewTerminal(nil, &buf)

	term.Clear()
	term.HideCursor()
	term.MoveTo(3, 5)
	term.ShowCursor()
	assert.Equal(t, ClearScreen+CursorHome+CursorHide+"\033[3;5H"+CursorShow, buf.String())
}

func TestTerminalWithoutInput(t *testing.T) {
	t.Parallel()

	term := NewTerminal(nil, io.Discard)

	assert.False(t, term.IsRaw())
	assert.Error(t, term.EnterRaw())
	assert.NoError(t, term.ExitRaw(), "exit without enter is a no-op")

	_, _, err := term.Size()
	assert.Error(t, err)

	n, err := term.Read(make([]byte, 1))
	assert.Equal(t, 0, n)
	assert.ErrorIs(t, err, io.EOF)
}
