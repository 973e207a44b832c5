package processor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/junsooki/AirDroid/internal/control"
	"github.com/junsooki/AirDroid/internal/geom"
	"github.com/junsooki/AirDroid/internal/input"
)

var testPos = geom.Position{
	Point:      geom.Point{X: 10, Y: 20},
	ScreenSize: geom.Size{Width: 1080, Height: 2400},
}

func TestMouseInject_Click(t *testing.T) {
	ctrl := gomock.NewController(t)
	pusher := control.NewMockPusher(ctrl)
	mp := NewMouseInject(pusher)

	pusher.EXPECT().PushMsg(control.InjectTouch{
		Action:       control.AMotionEventActionDown,
		PointerID:    control.PointerIDGenericFinger,
		Position:     testPos,
		Pressure:     1,
		ActionButton: control.AMotionEventButtonPrimary,
		Buttons:      control.AMotionEventButtonPrimary,
	}).Return(true)
	pusher.EXPECT().PushMsg(control.InjectTouch{
		Action:       control.AMotionEventActionUp,
		PointerID:    control.PointerIDGenericFinger,
		Position:     testPos,
		ActionButton: control.AMotionEventButtonPrimary,
	}).Return(true)

	mp.ProcessMouseClick(input.MouseClickEvent{
		Position:  testPos,
		Action:    input.ActionDown,
		Button:    input.MouseButtonLeft,
		PointerID: uint64(control.PointerIDGenericFinger),
		Buttons:   input.MouseButtonLeft.Bit(),
	})
	mp.ProcessMouseClick(input.MouseClickEvent{
		Position:  testPos,
		Action:    input.ActionUp,
		Button:    input.MouseButtonLeft,
		PointerID: uint64(control.PointerIDGenericFinger),
	})
	assert.False(t, mp.RelativeMode())
}

func TestMouseInject_MotionWithoutButtons(t *testing.T) {
	ctrl := gomock.NewController(t)
	pusher := control.NewMockPusher(ctrl)
	mp := NewMouseInject(pusher)

	// finger emulation: hover is dropped
	mp.ProcessMouseMotion(input.MouseMotionEvent{Position: testPos, PointerID: uint64(control.PointerIDGenericFinger)})

	// real mouse: hover is forwarded
	pusher.EXPECT().PushMsg(gomock.AssignableToTypeOf(control.InjectTouch{})).Return(true)
	mp.ProcessMouseMotion(input.MouseMotionEvent{Position: testPos, PointerID: uint64(control.PointerIDMouse)})
}

func TestMouseInject_ScrollClamped(t *testing.T) {
	ctrl := gomock.NewController(t)
	pusher := control.NewMockPusher(ctrl)
	mp := NewMouseInject(pusher)

	pusher.EXPECT().PushMsg(control.InjectScroll{Position: testPos, HScroll: -1, VScroll: 1}).Return(true)
	mp.ProcessMouseScroll(input.MouseScrollEvent{Position: testPos, HScroll: -3, VScroll: 2})
}

func TestMouseInject_Touch(t *testing.T) {
	ctrl := gomock.NewController(t)
	pusher := control.NewMockPusher(ctrl)
	mp := NewMouseInject(pusher)

	pusher.EXPECT().PushMsg(control.InjectTouch{
		Action:    control.AMotionEventActionMove,
		PointerID: 7,
		Position:  testPos,
		Pressure:  0.5,
	}).Return(false)
	mp.ProcessTouch(input.TouchEvent{Position: testPos, Action: input.TouchMove, PointerID: 7, Pressure: 0.5})
}

func TestConvertMouseButtons(t *testing.T) {
	state := input.MouseButtonRight.Bit() | input.MouseButtonX2.Bit()
	assert.Equal(t, control.AMotionEventButtonSecondary|control.AMotionEventButtonForward, ConvertMouseButtons(state))
}
