package control

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/junsooki/AirDroid/internal/geom"
)

func TestSerialize(t *testing.T) {
	pos := geom.Position{
		Point:      geom.Point{X: 260, Y: 1026},
		ScreenSize: geom.Size{Width: 1080, Height: 1920},
	}

	tests := []struct {
		name string
		msg  Msg
		want []byte
	}{
		{
			name: "inject keycode",
			msg: InjectKeycode{
				Action:    AKeyEventActionUp,
				Keycode:   AKeycodeEnter,
				Repeat:    5,
				MetaState: AMetaShiftOn | AMetaShiftLeft,
			},
			want: []byte{
				0x00, 0x01,
				0x00, 0x00, 0x00, 0x42,
				0x00, 0x00, 0x00, 0x05,
				0x00, 0x00, 0x00, 0x41,
			},
		},
		{
			name: "inject text",
			msg:  InjectText{Text: "hello, world!"},
			want: append([]byte{0x01, 0x00, 0x00, 0x00, 0x0d}, "hello, world!"...),
		},
		{
			name: "inject touch",
			msg: InjectTouch{
				Action:       AMotionEventActionDown,
				PointerID:    0x1234567887654321,
				Position:     pos,
				Pressure:     1,
				ActionButton: AMotionEventButtonPrimary,
				Buttons:      AMotionEventButtonPrimary,
			},
			want: []byte{
				0x02, 0x00,
				0x12, 0x34, 0x56, 0x78, 0x87, 0x65, 0x43, 0x21,
				0x00, 0x00, 0x01, 0x04, 0x00, 0x00, 0x04, 0x02,
				0x04, 0x38, 0x07, 0x80,
				0xff, 0xff,
				0x00, 0x00, 0x00, 0x01,
				0x00, 0x00, 0x00, 0x01,
			},
		},
		{
			name: "inject scroll",
			msg:  InjectScroll{Position: pos, HScroll: 1, VScroll: -1, Buttons: 1},
			want: []byte{
				0x03,
				0x00, 0x00, 0x01, 0x04, 0x00, 0x00, 0x04, 0x02,
				0x04, 0x38, 0x07, 0x80,
				0x7f, 0xff,
				0x80, 0x00,
				0x00, 0x00, 0x00, 0x01,
			},
		},
		{
			name: "back or screen on",
			msg:  BackOrScreenOn{Action: AKeyEventActionUp},
			want: []byte{0x04, 0x01},
		},
		{name: "expand notification panel", msg: ExpandNotificationPanel{}, want: []byte{0x05}},
		{name: "expand settings panel", msg: ExpandSettingsPanel{}, want: []byte{0x06}},
		{name: "collapse panels", msg: CollapsePanels{}, want: []byte{0x07}},
		{name: "get clipboard", msg: GetClipboard{CopyKey: CopyKeyCut}, want: []byte{0x08, 0x02}},
		{
			name: "set clipboard",
			msg:  SetClipboard{Sequence: 0x0102030405060708, Text: "hi", Paste: true},
			want: []byte{
				0x09,
				0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08,
				0x01,
				0x00, 0x00, 0x00, 0x02,
				'h', 'i',
			},
		},
		{
			name: "set screen power mode",
			msg:  SetScreenPowerMode{Mode: ScreenPowerModeNormal},
			want: []byte{0x0a, 0x02},
		},
		{name: "rotate device", msg: RotateDevice{}, want: []byte{0x0b}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Serialize(tt.msg)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, MsgType(got[0]), tt.msg.Type())
		})
	}
}

func TestSerialize_InjectTextTruncatedAtRuneBoundary(t *testing.T) {
	// 299 ASCII bytes followed by a 3-byte rune that would straddle the limit
	text := strings.Repeat("a", InjectTextMaxLength-1) + "€"

	got, err := Serialize(InjectText{Text: text})
	require.NoError(t, err)

	assert.Equal(t, []byte{0x00, 0x00, 0x01, 0x2b}, got[1:5])
	assert.Len(t, got, 5+InjectTextMaxLength-1)
}

func TestSerialize_RejectsOutOfRange(t *testing.T) {
	_, err := Serialize(InjectTouch{Pressure: 1.5})
	assert.Error(t, err)

	_, err = Serialize(InjectScroll{VScroll: -2})
	assert.Error(t, err)
}

func TestFixedPoint(t *testing.T) {
	assert.Equal(t, uint16(0), floatToU16FixedPoint(0))
	assert.Equal(t, uint16(0x8000), floatToU16FixedPoint(0.5))
	assert.Equal(t, uint16(0xffff), floatToU16FixedPoint(1))

	assert.Equal(t, int16(0), floatToI16FixedPoint(0))
	assert.Equal(t, int16(0x4000), floatToI16FixedPoint(0.5))
	assert.Equal(t, int16(0x7fff), floatToI16FixedPoint(1))
	assert.Equal(t, int16(-0x8000), floatToI16FixedPoint(-1))
}

func TestMsgTypeString(t *testing.T) {
	assert.Equal(t, "set clipboard", MsgTypeSetClipboard.String())
	assert.Equal(t, "MsgType(42)", MsgType(42).String())
}
