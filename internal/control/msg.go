// Package control defines the messages sent to the device over the control
// channel, their binary encoding, the messages the device sends back, and
// the queue that hands them to the transport.
package control

import (
	"encoding/binary"
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/junsooki/AirDroid/internal/geom"
)

// MsgType is the first byte of every control message.
type MsgType uint8

const (
	MsgTypeInjectKeycode           MsgType = 0x00
	MsgTypeInjectText              MsgType = 0x01
	MsgTypeInjectTouchEvent        MsgType = 0x02
	MsgTypeInjectScrollEvent       MsgType = 0x03
	MsgTypeBackOrScreenOn          MsgType = 0x04
	MsgTypeExpandNotificationPanel MsgType = 0x05
	MsgTypeExpandSettingsPanel     MsgType = 0x06
	MsgTypeCollapsePanels          MsgType = 0x07
	MsgTypeGetClipboard            MsgType = 0x08
	MsgTypeSetClipboard            MsgType = 0x09
	MsgTypeSetScreenPowerMode      MsgType = 0x0A
	MsgTypeRotateDevice            MsgType = 0x0B
)

var msgTypeNames = map[MsgType]string{
	MsgTypeInjectKeycode:           "inject keycode",
	MsgTypeInjectText:              "inject text",
	MsgTypeInjectTouchEvent:        "inject touch event",
	MsgTypeInjectScrollEvent:       "inject scroll event",
	MsgTypeBackOrScreenOn:          "back or screen on",
	MsgTypeExpandNotificationPanel: "expand notification panel",
	MsgTypeExpandSettingsPanel:     "expand settings panel",
	MsgTypeCollapsePanels:          "collapse panels",
	MsgTypeGetClipboard:            "get clipboard",
	MsgTypeSetClipboard:            "set clipboard",
	MsgTypeSetScreenPowerMode:      "set screen power mode",
	MsgTypeRotateDevice:            "rotate device",
}

func (t MsgType) String() string {
	if name, ok := msgTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("MsgType(%d)", uint8(t))
}

const (
	// InjectTextMaxLength is the maximum encoded text of an InjectText.
	InjectTextMaxLength = 300
	// MaxSize is the maximum size of a serialized control message.
	MaxSize = 1 << 18
	// ClipboardTextMaxLength leaves room for the SetClipboard header.
	ClipboardTextMaxLength = MaxSize - 14
)

// Msg is a control message. The concrete types below are the only
// implementations.
type Msg interface {
	Type() MsgType
	// AppendBinary appends the wire encoding of the message to b.
	AppendBinary(b []byte) ([]byte, error)
}

// InjectKeycode injects an Android key event.
type InjectKeycode struct {
	Action    uint8
	Keycode   AKeycode
	Repeat    uint32
	MetaState uint32
}

// InjectText injects text as a sequence of key events on the device.
type InjectText struct {
	Text string
}

// InjectTouch injects a touch (or mouse, for the reserved mouse pointer)
// motion event.
type InjectTouch struct {
	Action       uint8
	PointerID    PointerID
	Position     geom.Position
	Pressure     float32
	ActionButton uint32
	Buttons      uint32
}

// InjectScroll injects a scroll event. Scroll amounts are in [-1, 1].
type InjectScroll struct {
	Position geom.Position
	HScroll  float32
	VScroll  float32
	Buttons  uint32
}

// BackOrScreenOn presses BACK, or turns the screen on if it is off.
type BackOrScreenOn struct {
	Action uint8
}

// ExpandNotificationPanel pulls down the notification shade.
type ExpandNotificationPanel struct{}

// ExpandSettingsPanel pulls down the quick settings.
type ExpandSettingsPanel struct{}

// CollapsePanels closes both panels.
type CollapsePanels struct{}

// GetClipboard asks the device for its clipboard, after optionally
// simulating a copy or cut.
type GetClipboard struct {
	CopyKey CopyKey
}

// SetClipboard sets the device clipboard. A non-zero Sequence asks the device
// to acknowledge once the clipboard is set.
type SetClipboard struct {
	Sequence uint64
	Text     string
	Paste    bool
}

// SetScreenPowerMode turns the device display on or off without locking.
type SetScreenPowerMode struct {
	Mode ScreenPowerMode
}

// RotateDevice asks the device to rotate its display.
type RotateDevice struct{}

func (InjectKeycode) Type() MsgType           { return MsgTypeInjectKeycode }
func (InjectText) Type() MsgType              { return MsgTypeInjectText }
func (InjectTouch) Type() MsgType             { return MsgTypeInjectTouchEvent }
func (InjectScroll) Type() MsgType            { return MsgTypeInjectScrollEvent }
func (BackOrScreenOn) Type() MsgType          { return MsgTypeBackOrScreenOn }
func (ExpandNotificationPanel) Type() MsgType { return MsgTypeExpandNotificationPanel }
func (ExpandSettingsPanel) Type() MsgType     { return MsgTypeExpandSettingsPanel }
func (CollapsePanels) Type() MsgType          { return MsgTypeCollapsePanels }
func (GetClipboard) Type() MsgType            { return MsgTypeGetClipboard }
func (SetClipboard) Type() MsgType            { return MsgTypeSetClipboard }
func (SetScreenPowerMode) Type() MsgType      { return MsgTypeSetScreenPowerMode }
func (RotateDevice) Type() MsgType            { return MsgTypeRotateDevice }

// Wire format, all integers big-endian:
//
//	InjectKeycode  [type][action u8][keycode u32][repeat u32][metastate u32]    = 14 bytes
//	InjectText     [type][len u32][utf8]                                        = 5+N bytes
//	InjectTouch    [type][action u8][pointer u64][position 12][pressure u16]
//	               [action_button u32][buttons u32]                             = 32 bytes
//	InjectScroll   [type][position 12][hscroll i16][vscroll i16][buttons u32]   = 21 bytes
//	BackOrScreenOn [type][action u8]                                            = 2 bytes
//	GetClipboard   [type][copy_key u8]                                          = 2 bytes
//	SetClipboard   [type][sequence u64][paste u8][len u32][utf8]                = 14+N bytes
//	SetScreenPower [type][mode u8]                                              = 2 bytes
//	position       [x i32][y i32][width u16][height u16]
//
// Panels and RotateDevice carry the type byte only.

func (m InjectKeycode) AppendBinary(b []byte) ([]byte, error) {
	b = append(b, byte(MsgTypeInjectKeycode), m.Action)
	b = binary.BigEndian.AppendUint32(b, uint32(m.Keycode))
	b = binary.BigEndian.AppendUint32(b, m.Repeat)
	b = binary.BigEndian.AppendUint32(b, m.MetaState)
	return b, nil
}

func (m InjectText) AppendBinary(b []byte) ([]byte, error) {
	b = append(b, byte(MsgTypeInjectText))
	return appendString(b, m.Text, InjectTextMaxLength), nil
}

func (m InjectTouch) AppendBinary(b []byte) ([]byte, error) {
	if m.Pressure < 0 || m.Pressure > 1 {
		return b, fmt.Errorf("touch pressure out of range: %v", m.Pressure)
	}
	b = append(b, byte(MsgTypeInjectTouchEvent), m.Action)
	b = binary.BigEndian.AppendUint64(b, uint64(m.PointerID))
	b = appendPosition(b, m.Position)
	b = binary.BigEndian.AppendUint16(b, floatToU16FixedPoint(m.Pressure))
	b = binary.BigEndian.AppendUint32(b, m.ActionButton)
	b = binary.BigEndian.AppendUint32(b, m.Buttons)
	return b, nil
}

func (m InjectScroll) AppendBinary(b []byte) ([]byte, error) {
	if m.HScroll < -1 || m.HScroll > 1 || m.VScroll < -1 || m.VScroll > 1 {
		return b, fmt.Errorf("scroll amount out of range: %v, %v", m.HScroll, m.VScroll)
	}
	b = append(b, byte(MsgTypeInjectScrollEvent))
	b = appendPosition(b, m.Position)
	b = binary.BigEndian.AppendUint16(b, uint16(floatToI16FixedPoint(m.HScroll)))
	b = binary.BigEndian.AppendUint16(b, uint16(floatToI16FixedPoint(m.VScroll)))
	b = binary.BigEndian.AppendUint32(b, m.Buttons)
	return b, nil
}

func (m BackOrScreenOn) AppendBinary(b []byte) ([]byte, error) {
	return append(b, byte(MsgTypeBackOrScreenOn), m.Action), nil
}

func (ExpandNotificationPanel) AppendBinary(b []byte) ([]byte, error) {
	return append(b, byte(MsgTypeExpandNotificationPanel)), nil
}

func (ExpandSettingsPanel) AppendBinary(b []byte) ([]byte, error) {
	return append(b, byte(MsgTypeExpandSettingsPanel)), nil
}

func (CollapsePanels) AppendBinary(b []byte) ([]byte, error) {
	return append(b, byte(MsgTypeCollapsePanels)), nil
}

func (m GetClipboard) AppendBinary(b []byte) ([]byte, error) {
	return append(b, byte(MsgTypeGetClipboard), byte(m.CopyKey)), nil
}

func (m SetClipboard) AppendBinary(b []byte) ([]byte, error) {
	b = append(b, byte(MsgTypeSetClipboard))
	b = binary.BigEndian.AppendUint64(b, m.Sequence)
	b = append(b, boolByte(m.Paste))
	return appendString(b, m.Text, ClipboardTextMaxLength), nil
}

func (m SetScreenPowerMode) AppendBinary(b []byte) ([]byte, error) {
	return append(b, byte(MsgTypeSetScreenPowerMode), byte(m.Mode)), nil
}

func (RotateDevice) AppendBinary(b []byte) ([]byte, error) {
	return append(b, byte(MsgTypeRotateDevice)), nil
}

// Serialize encodes msg into a new buffer.
func Serialize(msg Msg) ([]byte, error) {
	return msg.AppendBinary(make([]byte, 0, 32))
}

func appendPosition(b []byte, p geom.Position) []byte {
	b = binary.BigEndian.AppendUint32(b, uint32(p.Point.X))
	b = binary.BigEndian.AppendUint32(b, uint32(p.Point.Y))
	b = binary.BigEndian.AppendUint16(b, p.ScreenSize.Width)
	b = binary.BigEndian.AppendUint16(b, p.ScreenSize.Height)
	return b
}

// appendString writes a u32 length and the text, cut to at most max bytes
// without splitting a UTF-8 sequence.
func appendString(b []byte, s string, max int) []byte {
	s = truncateUTF8(s, max)
	b = binary.BigEndian.AppendUint32(b, uint32(len(s)))
	return append(b, s...)
}

func truncateUTF8(s string, max int) string {
	if len(s) <= max {
		return s
	}
	n := max
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

func boolByte(v bool) byte {
	if v {
		return 1
	}
	return 0
}

// floatToU16FixedPoint maps [0, 1] to [0, 0xffff].
func floatToU16FixedPoint(f float32) uint16 {
	u := uint32(f * 65536)
	if u >= 0xffff {
		u = 0xffff
	}
	return uint16(u)
}

// floatToI16FixedPoint maps [-1, 1] to [-0x8000, 0x7fff].
func floatToI16FixedPoint(f float32) int16 {
	i := int32(math.Round(float64(f) * 32768))
	if i >= 0x7fff {
		i = 0x7fff
	}
	if i < -0x8000 {
		i = -0x8000
	}
	return int16(i)
}
