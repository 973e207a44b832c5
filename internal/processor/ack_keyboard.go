package processor

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/junsooki/AirDroid/internal/input"
)

// DefaultAckTimeout bounds how long keys are held waiting for a clipboard
// acknowledgment.
const DefaultAckTimeout = 500 * time.Millisecond

// AckKeyboard is a KeyboardInject that can hold a key (and every key after
// it) until the device has acknowledged a clipboard sequence, so that a
// forwarded Ctrl+V pastes the freshly synchronized clipboard.
type AckKeyboard struct {
	inner   *KeyboardInject
	timeout time.Duration

	mu         sync.Mutex
	acked      uint64
	waitingFor uint64
	pending    []input.KeyEvent
	generation uint64
	timer      *time.Timer
}

// NewAckKeyboard wraps inner. A zero timeout selects DefaultAckTimeout.
func NewAckKeyboard(inner *KeyboardInject, timeout time.Duration) *AckKeyboard {
	if timeout <= 0 {
		timeout = DefaultAckTimeout
	}
	return &AckKeyboard{inner: inner, timeout: timeout}
}

// AsyncPaste implements input.KeyProcessor.
func (a *AckKeyboard) AsyncPaste() bool { return true }

// ProcessKey implements input.KeyProcessor.
func (a *AckKeyboard) ProcessKey(evt input.KeyEvent, ackToWait uint64) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if len(a.pending) > 0 {
		// preserve ordering behind the held key
		if ackToWait > a.waitingFor {
			a.waitingFor = ackToWait
		}
		a.pending = append(a.pending, evt)
		return
	}
	if ackToWait != 0 && ackToWait > a.acked {
		a.waitingFor = ackToWait
		a.pending = append(a.pending, evt)
		a.armTimer()
		return
	}
	a.inner.ProcessKey(evt, 0)
}

// ProcessText implements input.TextProcessor.
func (a *AckKeyboard) ProcessText(evt input.TextEvent) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.inner.ProcessText(evt)
}

// Ack implements control.AckHandler.
func (a *AckKeyboard) Ack(sequence uint64) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if sequence > a.acked {
		a.acked = sequence
	}
	if len(a.pending) > 0 && a.acked >= a.waitingFor {
		a.flush()
	}
}

// Pending returns the number of held keys.
func (a *AckKeyboard) Pending() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.pending)
}

func (a *AckKeyboard) armTimer() {
	a.generation++
	gen := a.generation
	a.timer = time.AfterFunc(a.timeout, func() {
		a.mu.Lock()
		defer a.mu.Unlock()
		if gen != a.generation || len(a.pending) == 0 {
			return
		}
		log.Warn().Uint64("sequence", a.waitingFor).Msg("timeout waiting for clipboard ack, injecting held keys")
		a.flush()
	})
}

// flush must be called with mu held.
func (a *AckKeyboard) flush() {
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	a.generation++
	pending := a.pending
	a.pending = nil
	a.waitingFor = 0
	for _, evt := range pending {
		a.inner.ProcessKey(evt, 0)
	}
}
