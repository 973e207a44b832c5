package input

// EventType identifies the kind of local input event.
type EventType string

const (
	EventKeyDown     EventType = "key_down"
	EventKeyUp       EventType = "key_up"
	EventText        EventType = "text"
	EventMouseMove   EventType = "mouse_move"
	EventMouseDown   EventType = "mouse_down"
	EventMouseUp     EventType = "mouse_up"
	EventMouseScroll EventType = "mouse_scroll"
	EventTouchDown   EventType = "touch_down"
	EventTouchMove   EventType = "touch_move"
	EventTouchUp     EventType = "touch_up"
	EventDropFile    EventType = "drop_file"
)

// MouseButton identifies a mouse button.
type MouseButton int

const (
	MouseButtonLeft MouseButton = iota + 1
	MouseButtonMiddle
	MouseButtonRight
	MouseButtonX1
	MouseButtonX2
)

// Event is a raw input event captured by the local window, before any
// translation. Only the fields relevant to Type are set.
type Event struct {
	Type EventType `json:"type"`

	// Keyboard.
	Key      Keycode  `json:"key,omitempty"`
	Scancode Scancode `json:"scancode,omitempty"`
	Mod      Mod      `json:"mod,omitempty"`
	// Repeat is set on key-down events generated by holding a key.
	Repeat bool `json:"repeat,omitempty"`

	// Text input (EventText).
	Text string `json:"text,omitempty"`

	// Mouse, in window coordinates.
	X       int32       `json:"x,omitempty"`
	Y       int32       `json:"y,omitempty"`
	XRel    int32       `json:"xrel,omitempty"`
	YRel    int32       `json:"yrel,omitempty"`
	Button  MouseButton `json:"button,omitempty"`
	Buttons ButtonState `json:"buttons,omitempty"`
	Clicks  int         `json:"clicks,omitempty"`
	ScrollX float32     `json:"scrollX,omitempty"`
	ScrollY float32     `json:"scrollY,omitempty"`

	// Touch, normalized to [0,1] over the drawable area.
	FingerID int64   `json:"fingerId,omitempty"`
	TouchX   float32 `json:"touchX,omitempty"`
	TouchY   float32 `json:"touchY,omitempty"`
	Pressure float32 `json:"pressure,omitempty"`

	// Dropped file path (EventDropFile).
	Path string `json:"path,omitempty"`
}

// ButtonState is a bitmask of the mouse buttons currently held.
type ButtonState uint8

// Bit returns the state bit of a single button.
func (b MouseButton) Bit() ButtonState {
	if b < MouseButtonLeft || b > MouseButtonX2 {
		return 0
	}
	return 1 << (b - 1)
}

// Has reports whether button b is held.
func (s ButtonState) Has(b MouseButton) bool {
	return s&b.Bit() != 0
}
