package speech

import (
	"context"

	"github.com/thruflo/liftlogic/internal/logging"
)

// Dispatcher hands utterances to a Speaker without blocking the caller.
type Dispatcher struct {
	speaker Speaker
	logger  *logging.Logger
}

// NewDispatcher creates a Dispatcher. A nil speaker is treated as silent;
// utterances are still logged.
func NewDispatcher(speaker Speaker, logger *logging.Logger) *Dispatcher {
	if speaker == nil {
		speaker = NopSpeaker{}
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Dispatcher{speaker: speaker, logger: logger}
}

// Speak logs text and speaks it in a detached goroutine. It returns
// immediately. The goroutine's error is discarded.
func (d *Dispatcher) Speak(text string) {
	if text == "" {
		return
	}
	d.logger.Info("speaking", "text", text)

	speaker := d.speaker
	go func() {
		_ = speaker.Say(context.Background(), text)
	}()
}
