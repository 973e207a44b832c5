package control

import (
	"errors"

	"github.com/rs/zerolog/log"
)

// ClipboardSetter is the local clipboard written when the device reports a
// clipboard change.
type ClipboardSetter interface {
	Get() (string, bool)
	Set(text string) error
}

// AckHandler is notified when the device acknowledges a clipboard request.
type AckHandler interface {
	Ack(sequence uint64)
}

// Receiver dispatches messages coming from the device.
type Receiver struct {
	clipboard ClipboardSetter
	acker     AckHandler
}

// NewReceiver creates a Receiver. Either collaborator may be nil.
func NewReceiver(clipboard ClipboardSetter, acker AckHandler) *Receiver {
	return &Receiver{clipboard: clipboard, acker: acker}
}

// HandleData parses every message in data and dispatches it. A malformed
// message stops processing of the rest of the packet.
func (r *Receiver) HandleData(data []byte) {
	for len(data) > 0 {
		msg, n, err := ParseDeviceMsg(data)
		if err != nil {
			if errors.Is(err, ErrIncomplete) {
				log.Warn().Int("bytes", len(data)).Msg("truncated device message dropped")
			} else {
				log.Warn().Err(err).Msg("could not parse device message")
			}
			return
		}
		r.handle(msg)
		data = data[n:]
	}
}

func (r *Receiver) handle(msg DeviceMsg) {
	switch m := msg.(type) {
	case DeviceClipboard:
		if r.clipboard == nil {
			return
		}
		// do not write back identical text
		if current, ok := r.clipboard.Get(); ok && current == m.Text {
			log.Debug().Msg("device clipboard unchanged")
			return
		}
		log.Info().Int("length", len(m.Text)).Msg("device clipboard copied")
		if err := r.clipboard.Set(m.Text); err != nil {
			log.Warn().Err(err).Msg("could not set local clipboard")
		}
	case DeviceAckClipboard:
		log.Debug().Uint64("sequence", m.Sequence).Msg("ack clipboard")
		if r.acker != nil {
			r.acker.Ack(m.Sequence)
		}
	}
}
