package tui

import (
	"bufio"
	"context"
	"errors"
	"io"
	"unicode/utf8"

	"github.com/thruflo/liftlogic/internal/loop"
	"github.com/thruflo/liftlogic/internal/rep"
)

// Key represents a keyboard input.
type Key int

const (
	KeyUnknown Key = iota
	KeyEscape
	KeyEnter
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyCtrlC
	KeyCtrlD
	KeyRune // Regular character
)

// KeyEvent represents a key press event.
type KeyEvent struct {
	Key  Key
	Rune rune // Only valid when Key == KeyRune
}

// KeyReader reads keyboard input from a raw terminal.
type KeyReader struct {
	reader *bufio.Reader
}

// NewKeyReader creates a KeyReader from the given io.Reader.
// The reader should be a raw terminal input (e.g., /dev/tty after term.MakeRaw).
func NewKeyReader(r io.Reader) *KeyReader {
	return &KeyReader{
		reader: bufio.NewReaderSize(r, 64),
	}
}

// ReadKey reads a single key event from the input.
// This method blocks until a key is pressed.
func (k *KeyReader) ReadKey() (KeyEvent, error) {
	b, err := k.reader.ReadByte()
	if err != nil {
		return KeyEvent{}, err
	}

	switch b {
	case 0x03: // Ctrl+C
		return KeyEvent{Key: KeyCtrlC}, nil
	case 0x04: // Ctrl+D
		return KeyEvent{Key: KeyCtrlD}, nil
	case 0x0D, 0x0A:
		return KeyEvent{Key: KeyEnter}, nil
	case 0x1B: // Escape or escape sequence start
		return k.readEscapeSequence()
	default:
		if b >= 0x20 && b < 0x7F {
			return KeyEvent{Key: KeyRune, Rune: rune(b)}, nil
		}
		if b >= 0xC0 {
			return k.readUTF8(b)
		}
		return KeyEvent{Key: KeyUnknown}, nil
	}
}

// readEscapeSequence tells a lone Esc from an arrow key. Terminals write a
// whole sequence at once, so an Esc with nothing buffered behind it is the
// Esc key itself and must not wait for another byte.
func (k *KeyReader) readEscapeSequence() (KeyEvent, error) {
	if k.reader.Buffered() == 0 {
		return KeyEvent{Key: KeyEscape}, nil
	}

	b, err := k.reader.ReadByte()
	if err != nil {
		return KeyEvent{Key: KeyEscape}, nil
	}
	if b != '[' && b != 'O' {
		_ = k.reader.UnreadByte()
		return KeyEvent{Key: KeyEscape}, nil
	}

	return k.parseCSI()
}

// parseCSI parses the final byte of a CSI or SS3 sequence.
func (k *KeyReader) parseCSI() (KeyEvent, error) {
	b, err := k.reader.ReadByte()
	if err != nil {
		return KeyEvent{Key: KeyEscape}, nil
	}

	switch b {
	case 'A':
		return KeyEvent{Key: KeyUp}, nil
	case 'B':
		return KeyEvent{Key: KeyDown}, nil
	case 'C':
		return KeyEvent{Key: KeyRight}, nil
	case 'D':
		return KeyEvent{Key: KeyLeft}, nil
	default:
		// Unknown sequence, consume the rest of it
		for k.reader.Buffered() > 0 {
			next, _ := k.reader.ReadByte()
			if (next >= 'A' && next <= 'Z') || next == '~' {
				break
			}
		}
		return KeyEvent{Key: KeyUnknown}, nil
	}
}

// readUTF8 reads a multi-byte UTF-8 character.
func (k *KeyReader) readUTF8(first byte) (KeyEvent, error) {
	var buf [4]byte
	buf[0] = first

	var n int
	switch {
	case first&0xE0 == 0xC0:
		n = 2
	case first&0xF0 == 0xE0:
		n = 3
	case first&0xF8 == 0xF0:
		n = 4
	default:
		return KeyEvent{Key: KeyUnknown}, nil
	}

	for i := 1; i < n; i++ {
		b, err := k.reader.ReadByte()
		if err != nil {
			return KeyEvent{Key: KeyUnknown}, err
		}
		buf[i] = b
	}

	r, _ := utf8.DecodeRune(buf[:n])
	if r == utf8.RuneError {
		return KeyEvent{Key: KeyUnknown}, nil
	}

	return KeyEvent{Key: KeyRune, Rune: r}, nil
}

// SignalFor maps a key press to an operator signal. ok is false for keys
// with no binding.
//
//	s      squat mode
//	c      curl mode
//	q      quit
//	Esc    quit
//	Ctrl+C quit (raw mode swallows SIGINT)
func SignalFor(ev KeyEvent) (sig loop.Signal, ok bool) {
	switch ev.Key {
	case KeyEscape, KeyCtrlC:
		return loop.Quit(), true
	case KeyRune:
		switch ev.Rune {
		case 's', 'S':
			return loop.SelectMode(rep.ModeSquat), true
		case 'c', 'C':
			return loop.SelectMode(rep.ModeCurl), true
		case 'q', 'Q':
			return loop.Quit(), true
		}
	}
	return loop.Signal{}, false
}

// Keyboard turns key presses into loop signals.
type Keyboard struct {
	keys *KeyReader
}

// NewKeyboard creates a Keyboard reading from r.
func NewKeyboard(r io.Reader) *Keyboard {
	return &Keyboard{keys: NewKeyReader(r)}
}

// Run reads keys and sends their signals on out until a quit key is sent,
// the input ends or ctx is done. A read that is already blocked is only
// released by closing the underlying input.
func (k *Keyboard) Run(ctx context.Context, out chan<- loop.Signal) error {
	for {
		ev, err := k.keys.ReadKey()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		sig, ok := SignalFor(ev)
		if !ok {
			continue
		}

		select {
		case out <- sig:
		case <-ctx.Done():
			return ctx.Err()
		}

		if sig.Kind == loop.SignalQuit {
			return nil
		}
	}
}
