package control

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// DeviceMsgType is the first byte of every message sent by the device.
type DeviceMsgType uint8

const (
	DeviceMsgTypeClipboard    DeviceMsgType = 0
	DeviceMsgTypeAckClipboard DeviceMsgType = 1
)

// DeviceMsgMaxSize bounds a single device message.
const DeviceMsgMaxSize = 1 << 18

// ErrIncomplete is returned by ParseDeviceMsg when b holds only part of a
// message.
var ErrIncomplete = errors.New("incomplete device message")

// DeviceMsg is a message received from the device: DeviceClipboard or
// DeviceAckClipboard.
type DeviceMsg interface {
	deviceMsgType() DeviceMsgType
}

// DeviceClipboard carries the device clipboard text.
type DeviceClipboard struct {
	Text string
}

// DeviceAckClipboard acknowledges a SetClipboard request.
type DeviceAckClipboard struct {
	Sequence uint64
}

func (DeviceClipboard) deviceMsgType() DeviceMsgType    { return DeviceMsgTypeClipboard }
func (DeviceAckClipboard) deviceMsgType() DeviceMsgType { return DeviceMsgTypeAckClipboard }

// ParseDeviceMsg decodes the first message of b and returns it with the
// number of bytes consumed.
func ParseDeviceMsg(b []byte) (DeviceMsg, int, error) {
	if len(b) == 0 {
		return nil, 0, ErrIncomplete
	}
	switch DeviceMsgType(b[0]) {
	case DeviceMsgTypeClipboard:
		if len(b) < 5 {
			return nil, 0, ErrIncomplete
		}
		n := binary.BigEndian.Uint32(b[1:5])
		if n > DeviceMsgMaxSize-5 {
			return nil, 0, fmt.Errorf("clipboard text too large: %d bytes", n)
		}
		if uint32(len(b)-5) < n {
			return nil, 0, ErrIncomplete
		}
		return DeviceClipboard{Text: string(b[5 : 5+n])}, 5 + int(n), nil
	case DeviceMsgTypeAckClipboard:
		if len(b) < 9 {
			return nil, 0, ErrIncomplete
		}
		return DeviceAckClipboard{Sequence: binary.BigEndian.Uint64(b[1:9])}, 9, nil
	default:
		return nil, 0, fmt.Errorf("unknown device message type: %d", b[0])
	}
}
