package transport

import (
	"errors"
	"sync"

	"github.com/pion/webrtc/v4"
)

// Data channel labels.
const (
	ControlLabel = "control"
	DeviceLabel  = "device"
)

// ErrNotOpen is returned when sending on a channel that is missing or not
// open yet.
var ErrNotOpen = errors.New("control data channel not open")

// DataChannelTransport carries control messages to the device on the
// "control" DataChannel and device messages back on the "device" one.
type DataChannelTransport struct {
	mu        sync.RWMutex
	controlDC *webrtc.DataChannel
	deviceDC  *webrtc.DataChannel
	onDevice  func(data []byte)
}

// NewDataChannelTransport wraps the two DataChannels. Either may be nil and
// set later when negotiated by the remote side.
func NewDataChannelTransport(controlDC, deviceDC *webrtc.DataChannel) *DataChannelTransport {
	t := &DataChannelTransport{controlDC: controlDC}
	if deviceDC != nil {
		t.SetDeviceChannel(deviceDC)
	}
	return t
}

// SendControl writes one serialized control message.
func (t *DataChannelTransport) SendControl(data []byte) error {
	t.mu.RLock()
	dc := t.controlDC
	t.mu.RUnlock()
	if dc == nil || dc.ReadyState() != webrtc.DataChannelStateOpen {
		return ErrNotOpen
	}
	return dc.Send(data)
}

func (t *DataChannelTransport) OnDevice(cb func(data []byte)) {
	t.mu.Lock()
	t.onDevice = cb
	t.mu.Unlock()
}

// SetControlChannel sets or replaces the control DataChannel.
func (t *DataChannelTransport) SetControlChannel(dc *webrtc.DataChannel) {
	t.mu.Lock()
	t.controlDC = dc
	t.mu.Unlock()
}

// SetDeviceChannel sets or replaces the device DataChannel (used when
// receiving negotiated channels).
func (t *DataChannelTransport) SetDeviceChannel(dc *webrtc.DataChannel) {
	t.mu.Lock()
	t.deviceDC = dc
	t.mu.Unlock()
	dc.OnMessage(func(msg webrtc.DataChannelMessage) {
		t.deliver(msg.Data)
	})
}

func (t *DataChannelTransport) deliver(data []byte) {
	t.mu.RLock()
	cb := t.onDevice
	t.mu.RUnlock()
	if cb != nil {
		cb(data)
	}
}

// Close closes both channels.
func (t *DataChannelTransport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	var errs []error
	for _, dc := range []*webrtc.DataChannel{t.controlDC, t.deviceDC} {
		if dc != nil {
			errs = append(errs, dc.Close())
		}
	}
	return errors.Join(errs...)
}
