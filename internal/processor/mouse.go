package processor

import (
	"github.com/rs/zerolog/log"

	"github.com/junsooki/AirDroid/internal/control"
	"github.com/junsooki/AirDroid/internal/input"
)

// MouseInject injects mouse and touch events as Android motion events.
type MouseInject struct {
	pusher control.Pusher
}

// NewMouseInject creates a mouse processor pushing to pusher.
func NewMouseInject(pusher control.Pusher) *MouseInject {
	return &MouseInject{pusher: pusher}
}

// ConvertMouseButton maps a local button to its Android button bit.
func ConvertMouseButton(b input.MouseButton) uint32 {
	switch b {
	case input.MouseButtonLeft:
		return control.AMotionEventButtonPrimary
	case input.MouseButtonRight:
		return control.AMotionEventButtonSecondary
	case input.MouseButtonMiddle:
		return control.AMotionEventButtonTertiary
	case input.MouseButtonX1:
		return control.AMotionEventButtonBack
	case input.MouseButtonX2:
		return control.AMotionEventButtonForward
	}
	return 0
}

// ConvertMouseButtons maps a local button state to Android button bits.
func ConvertMouseButtons(state input.ButtonState) uint32 {
	var buttons uint32
	for _, b := range []input.MouseButton{
		input.MouseButtonLeft, input.MouseButtonRight, input.MouseButtonMiddle,
		input.MouseButtonX1, input.MouseButtonX2,
	} {
		if state.Has(b) {
			buttons |= ConvertMouseButton(b)
		}
	}
	return buttons
}

// RelativeMode implements input.MouseProcessor. Injected events always carry
// absolute positions.
func (m *MouseInject) RelativeMode() bool { return false }

// ProcessMouseMotion implements input.MouseProcessor. A finger-emulating
// pointer only moves while a button is held.
func (m *MouseInject) ProcessMouseMotion(evt input.MouseMotionEvent) {
	if evt.Buttons == 0 && control.PointerID(evt.PointerID) != control.PointerIDMouse {
		return
	}
	msg := control.InjectTouch{
		Action:    control.AMotionEventActionMove,
		PointerID: control.PointerID(evt.PointerID),
		Position:  evt.Position,
		Pressure:  1,
		Buttons:   ConvertMouseButtons(evt.Buttons),
	}
	if !m.pusher.PushMsg(msg) {
		log.Warn().Msg("could not request 'inject mouse motion event'")
	}
}

// ProcessMouseClick implements input.MouseProcessor.
func (m *MouseInject) ProcessMouseClick(evt input.MouseClickEvent) {
	msg := control.InjectTouch{
		Action:       control.AMotionEventActionDown,
		PointerID:    control.PointerID(evt.PointerID),
		Position:     evt.Position,
		Pressure:     1,
		ActionButton: ConvertMouseButton(evt.Button),
		Buttons:      ConvertMouseButtons(evt.Buttons),
	}
	if evt.Action == input.ActionUp {
		msg.Action = control.AMotionEventActionUp
		msg.Pressure = 0
	}
	if !m.pusher.PushMsg(msg) {
		log.Warn().Msg("could not request 'inject mouse click event'")
	}
}

// ProcessMouseScroll implements input.ScrollProcessor.
func (m *MouseInject) ProcessMouseScroll(evt input.MouseScrollEvent) {
	msg := control.InjectScroll{
		Position: evt.Position,
		HScroll:  clamp(evt.HScroll, -1, 1),
		VScroll:  clamp(evt.VScroll, -1, 1),
		Buttons:  ConvertMouseButtons(evt.Buttons),
	}
	if !m.pusher.PushMsg(msg) {
		log.Warn().Msg("could not request 'inject mouse scroll event'")
	}
}

// ProcessTouch implements input.TouchProcessor.
func (m *MouseInject) ProcessTouch(evt input.TouchEvent) {
	var action uint8
	switch evt.Action {
	case input.TouchDown:
		action = control.AMotionEventActionDown
	case input.TouchMove:
		action = control.AMotionEventActionMove
	case input.TouchUp:
		action = control.AMotionEventActionUp
	}
	msg := control.InjectTouch{
		Action:    action,
		PointerID: control.PointerID(evt.PointerID),
		Position:  evt.Position,
		Pressure:  clamp(evt.Pressure, 0, 1),
	}
	if !m.pusher.PushMsg(msg) {
		log.Warn().Msg("could not request 'inject touch event'")
	}
}

func clamp(v, lo, hi float32) float32 {
	return min(max(v, lo), hi)
}
