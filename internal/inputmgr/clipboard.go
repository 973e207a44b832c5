package inputmgr

import (
	"github.com/rs/zerolog/log"

	"github.com/junsooki/AirDroid/internal/control"
)

type clipboardResult uint8

const (
	clipboardSent clipboardResult = iota
	// no local text, nothing was sent
	clipboardEmpty
	// the controller refused the message
	clipboardRejected
)

func (m *Manager) clipboardText() (string, bool) {
	if m.clipboard == nil {
		return "", false
	}
	text, ok := m.clipboard.Get()
	if !ok || text == "" {
		log.Debug().Msg("local clipboard is empty")
		return "", false
	}
	return text, true
}

// setDeviceClipboard copies the local clipboard to the device. sequence is
// control.SequenceInvalid when no acknowledgment is needed.
func (m *Manager) setDeviceClipboard(paste bool, sequence uint64) clipboardResult {
	text, ok := m.clipboardText()
	if !ok {
		return clipboardEmpty
	}
	msg := control.SetClipboard{Sequence: sequence, Text: text, Paste: paste}
	if !m.push(msg, "set device clipboard") {
		return clipboardRejected
	}
	return clipboardSent
}

// clipboardPaste types the local clipboard on the device.
func (m *Manager) clipboardPaste() {
	text, ok := m.clipboardText()
	if !ok {
		return
	}
	m.push(control.InjectText{Text: text}, "paste clipboard")
}
