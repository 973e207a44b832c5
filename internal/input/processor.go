package input

import "github.com/junsooki/AirDroid/internal/geom"

// Action is the state change of a key or button.
type Action uint8

const (
	ActionDown Action = iota
	ActionUp
)

func (a Action) String() string {
	if a == ActionDown {
		return "down"
	}
	return "up"
}

// TouchAction is the state change of a touch pointer.
type TouchAction uint8

const (
	TouchDown TouchAction = iota
	TouchMove
	TouchUp
)

func (a TouchAction) String() string {
	switch a {
	case TouchDown:
		return "down"
	case TouchMove:
		return "move"
	default:
		return "up"
	}
}

// KeyEvent is a keyboard event after shortcut handling.
type KeyEvent struct {
	Action   Action
	Key      Keycode
	Scancode Scancode
	Repeat   bool
	Mods     Mod
}

// TextEvent is committed text input.
type TextEvent struct {
	Text string
}

// MouseMotionEvent is a pointer motion in frame coordinates.
type MouseMotionEvent struct {
	Position  geom.Position
	PointerID uint64
	XRel      int32
	YRel      int32
	Buttons   ButtonState
}

// MouseClickEvent is a button press or release in frame coordinates.
type MouseClickEvent struct {
	Position  geom.Position
	Action    Action
	Button    MouseButton
	PointerID uint64
	Buttons   ButtonState
}

// MouseScrollEvent is a wheel movement in frame coordinates.
type MouseScrollEvent struct {
	Position geom.Position
	HScroll  float32
	VScroll  float32
	Buttons  ButtonState
}

// TouchEvent is a touch pointer change in frame coordinates.
type TouchEvent struct {
	Position  geom.Position
	Action    TouchAction
	PointerID uint64
	Pressure  float32
}

// KeyProcessor consumes keyboard events.
type KeyProcessor interface {
	// ProcessKey handles evt. A non-zero ackToWait asks the processor to
	// hold the key until the device acknowledged that clipboard sequence.
	ProcessKey(evt KeyEvent, ackToWait uint64)
	// AsyncPaste reports whether the processor can wait for clipboard acks.
	AsyncPaste() bool
}

// TextProcessor is implemented by key processors that accept text input.
type TextProcessor interface {
	ProcessText(evt TextEvent)
}

// MouseProcessor consumes mouse motion and clicks.
type MouseProcessor interface {
	ProcessMouseMotion(evt MouseMotionEvent)
	ProcessMouseClick(evt MouseClickEvent)
	// RelativeMode reports whether the processor consumes relative motion
	// only, in which case absolute positions are meaningless.
	RelativeMode() bool
}

// ScrollProcessor is implemented by mouse processors that accept wheel
// events.
type ScrollProcessor interface {
	ProcessMouseScroll(evt MouseScrollEvent)
}

// TouchProcessor consumes touch events.
type TouchProcessor interface {
	ProcessTouch(evt TouchEvent)
}
