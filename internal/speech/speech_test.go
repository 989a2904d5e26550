package speech

import (
	"bytes"
	"context"
	"errors"
	"log"
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thruflo/liftlogic/internal/logging"
)

// blockingSpeaker blocks every Say until release is closed.
type blockingSpeaker struct {
	mu      sync.Mutex
	spoken  []string
	started chan string
	release chan struct{}
	err     error
}

func newBlockingSpeaker() *blockingSpeaker {
	return &blockingSpeaker{
		started: make(chan string, 10),
		release: make(chan struct{}),
	}
}

func (b *blockingSpeaker) Say(_ context.Context, text string) error {
	b.started <- text
	<-b.release
	b.mu.Lock()
	b.spoken = append(b.spoken, text)
	b.mu.Unlock()
	return b.err
}

func TestDispatcher_SpeakDoesNotBlock(t *testing.T) {
	speaker := newBlockingSpeaker()
	d := NewDispatcher(speaker, nil)

	done := make(chan struct{})
	go func() {
		d.Speak("Good")
		d.Speak("Go Lower")
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Speak blocked on a slow speaker")
	}

	// Both utterances are in flight at the same time.
	got := map[string]bool{}
	for i := 0; i < 2; i++ {
		select {
		case text := <-speaker.started:
			got[text] = true
		case <-time.After(time.Second):
			t.Fatal("utterance never started")
		}
	}
	assert.Equal(t, map[string]bool{"Good": true, "Go Lower": true}, got)
	close(speaker.release)
}

func TestDispatcher_ErrorsSwallowed(t *testing.T) {
	speaker := newBlockingSpeaker()
	speaker.err = errors.New("audio device busy")
	close(speaker.release)

	d := NewDispatcher(speaker, nil)
	assert.NotPanics(t, func() { d.Speak("Data Saved") })

	select {
	case text := <-speaker.started:
		assert.Equal(t, "Data Saved", text)
	case <-time.After(time.Second):
		t.Fatal("utterance never started")
	}
}

func TestDispatcher_LogsEveryUtterance(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New()
	logger.SetLevel(logging.LevelInfo)
	logger.SetOutput(log.New(&buf, "", 0))

	d := NewDispatcher(nil, logger)
	d.Speak("System Online")
	d.Speak("")

	assert.Contains(t, buf.String(), `text="System Online"`)
	assert.Equal(t, 1, bytes.Count(buf.Bytes(), []byte("speaking")), "empty text is ignored")
}

func TestNewCommandSpeaker(t *testing.T) {
	_, err := NewCommandSpeaker("")
	assert.Error(t, err)

	_, err = NewCommandSpeaker("liftlogic-definitely-not-a-tts-binary")
	assert.Error(t, err)
}

func TestCommandSpeaker_Say(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("relies on a POSIX true/false")
	}

	ok, err := NewCommandSpeaker("true")
	require.NoError(t, err)
	assert.NoError(t, ok.Say(context.Background(), "Good"))

	failing, err := NewCommandSpeaker("false")
	require.NoError(t, err)
	assert.Error(t, failing.Say(context.Background(), "Good"))
}

func TestDefaultCommand(t *testing.T) {
	cmd, args := DefaultCommand(150)
	switch runtime.GOOS {
	case "darwin":
		assert.Equal(t, "say", cmd)
		assert.Equal(t, []string{"-r", "150"}, args)
	case "windows":
		assert.Empty(t, cmd)
	default:
		assert.Equal(t, "espeak", cmd)
		assert.Equal(t, []string{"-s", "150"}, args)
	}
}
