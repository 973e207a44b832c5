package processor

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/junsooki/AirDroid/internal/control"
	"github.com/junsooki/AirDroid/internal/input"
)

type recordingPusher struct {
	mu   sync.Mutex
	msgs []control.Msg
}

func (p *recordingPusher) PushMsg(msg control.Msg) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.msgs = append(p.msgs, msg)
	return true
}

func (p *recordingPusher) keycodes() []control.AKeycode {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []control.AKeycode
	for _, m := range p.msgs {
		if k, ok := m.(control.InjectKeycode); ok {
			out = append(out, k.Keycode)
		}
	}
	return out
}

func ctrlV(action input.Action) input.KeyEvent {
	return input.KeyEvent{Action: action, Key: input.KeyV, Mods: input.ModLCtrl}
}

func TestAckKeyboard_HoldsUntilAck(t *testing.T) {
	pusher := &recordingPusher{}
	kp := NewAckKeyboard(NewKeyboardInject(pusher, InjectMixed, true), time.Hour)
	require.True(t, kp.AsyncPaste())

	kp.ProcessKey(ctrlV(input.ActionDown), 3)
	kp.ProcessKey(ctrlV(input.ActionUp), 0)
	assert.Empty(t, pusher.keycodes())
	assert.Equal(t, 2, kp.Pending())

	kp.Ack(2)
	assert.Equal(t, 2, kp.Pending(), "older ack must not release")

	kp.Ack(3)
	assert.Equal(t, 0, kp.Pending())
	v := control.AKeycodeA + 21
	assert.Equal(t, []control.AKeycode{v, v}, pusher.keycodes())
}

func TestAckKeyboard_AlreadyAcked(t *testing.T) {
	pusher := &recordingPusher{}
	kp := NewAckKeyboard(NewKeyboardInject(pusher, InjectMixed, true), time.Hour)

	kp.Ack(5)
	kp.ProcessKey(ctrlV(input.ActionDown), 4)

	assert.Equal(t, 0, kp.Pending())
	assert.Len(t, pusher.keycodes(), 1)
}

func TestAckKeyboard_Timeout(t *testing.T) {
	pusher := &recordingPusher{}
	kp := NewAckKeyboard(NewKeyboardInject(pusher, InjectMixed, true), 10*time.Millisecond)

	kp.ProcessKey(ctrlV(input.ActionDown), 1)

	require.Eventually(t, func() bool { return len(pusher.keycodes()) == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, 0, kp.Pending())
}
