package control

// Android KeyEvent actions.
const (
	AKeyEventActionDown uint8 = 0
	AKeyEventActionUp   uint8 = 1
)

// Android MotionEvent actions.
const (
	AMotionEventActionDown uint8 = 0
	AMotionEventActionUp   uint8 = 1
	AMotionEventActionMove uint8 = 2
)

// Android MotionEvent button state bits.
const (
	AMotionEventButtonPrimary   uint32 = 1 << 0
	AMotionEventButtonSecondary uint32 = 1 << 1
	AMotionEventButtonTertiary  uint32 = 1 << 2
	AMotionEventButtonBack      uint32 = 1 << 3
	AMotionEventButtonForward   uint32 = 1 << 4
)

// Android meta state flags.
const (
	AMetaNone       uint32 = 0
	AMetaShiftOn    uint32 = 0x1
	AMetaAltOn      uint32 = 0x2
	AMetaShiftLeft  uint32 = 0x40
	AMetaShiftRight uint32 = 0x80
	AMetaAltLeft    uint32 = 0x10
	AMetaAltRight   uint32 = 0x20
	AMetaCtrlOn     uint32 = 0x1000
	AMetaCtrlLeft   uint32 = 0x2000
	AMetaCtrlRight  uint32 = 0x4000
	AMetaMetaOn     uint32 = 0x10000
	AMetaMetaLeft   uint32 = 0x20000
	AMetaMetaRight  uint32 = 0x40000
	AMetaCapsLockOn uint32 = 0x100000
	AMetaNumLockOn  uint32 = 0x200000
)

// AKeycode is an Android key code.
type AKeycode uint32

const (
	AKeycodeUnknown      AKeycode = 0
	AKeycodeHome         AKeycode = 3
	AKeycodeBack         AKeycode = 4
	AKeycode0            AKeycode = 7
	AKeycodeDpadUp       AKeycode = 19
	AKeycodeDpadDown     AKeycode = 20
	AKeycodeDpadLeft     AKeycode = 21
	AKeycodeDpadRight    AKeycode = 22
	AKeycodeVolumeUp     AKeycode = 24
	AKeycodeVolumeDown   AKeycode = 25
	AKeycodePower        AKeycode = 26
	AKeycodeA            AKeycode = 29
	AKeycodeComma        AKeycode = 55
	AKeycodePeriod       AKeycode = 56
	AKeycodeAltLeft      AKeycode = 57
	AKeycodeAltRight     AKeycode = 58
	AKeycodeShiftLeft    AKeycode = 59
	AKeycodeShiftRight   AKeycode = 60
	AKeycodeTab          AKeycode = 61
	AKeycodeSpace        AKeycode = 62
	AKeycodeEnter        AKeycode = 66
	AKeycodeDel          AKeycode = 67
	AKeycodeGrave        AKeycode = 68
	AKeycodeMinus        AKeycode = 69
	AKeycodeEquals       AKeycode = 70
	AKeycodeLeftBracket  AKeycode = 71
	AKeycodeRightBracket AKeycode = 72
	AKeycodeBackslash    AKeycode = 73
	AKeycodeSemicolon    AKeycode = 74
	AKeycodeApostrophe   AKeycode = 75
	AKeycodeSlash        AKeycode = 76
	AKeycodeMenu         AKeycode = 82
	AKeycodePageUp       AKeycode = 92
	AKeycodePageDown     AKeycode = 93
	AKeycodeEscape       AKeycode = 111
	AKeycodeForwardDel   AKeycode = 112
	AKeycodeCtrlLeft     AKeycode = 113
	AKeycodeCtrlRight    AKeycode = 114
	AKeycodeCapsLock     AKeycode = 115
	AKeycodeMetaLeft     AKeycode = 117
	AKeycodeMetaRight    AKeycode = 118
	AKeycodeMoveHome     AKeycode = 122
	AKeycodeMoveEnd      AKeycode = 123
	AKeycodeInsert       AKeycode = 124
	AKeycodeF1           AKeycode = 131
	AKeycodeAppSwitch    AKeycode = 187
)

// PointerID identifies a touch pointer on the device. Physical touches use
// the local finger ID; the reserved values below sit at the top of the
// uint64 range so they never collide with those.
type PointerID uint64

const (
	// PointerIDMouse is the pointer of a mouse when clicks are forwarded as
	// mouse events.
	PointerIDMouse PointerID = ^PointerID(0)
	// PointerIDGenericFinger is the pointer of a mouse that emulates a
	// finger.
	PointerIDGenericFinger PointerID = ^PointerID(1)
	// PointerIDVirtualMouse is the mirrored pointer of a pinch gesture when
	// clicks are forwarded as mouse events.
	PointerIDVirtualMouse PointerID = ^PointerID(2)
	// PointerIDVirtualFinger is the mirrored finger of a pinch gesture.
	PointerIDVirtualFinger PointerID = ^PointerID(3)
)

// IsReserved reports whether id is one of the reserved pointer tags.
func (id PointerID) IsReserved() bool {
	return id >= PointerIDVirtualFinger
}

// IsVirtual reports whether id is synthesized by the controller rather than
// following a real local pointer.
func (id PointerID) IsVirtual() bool {
	return id == PointerIDVirtualMouse || id == PointerIDVirtualFinger
}

// ScreenPowerMode is the device display power state.
type ScreenPowerMode uint8

const (
	ScreenPowerModeOff    ScreenPowerMode = 0
	ScreenPowerModeNormal ScreenPowerMode = 2
)

// CopyKey is the key the device simulates before reading its clipboard.
type CopyKey uint8

const (
	CopyKeyNone CopyKey = 0
	CopyKeyCopy CopyKey = 1
	CopyKeyCut  CopyKey = 2
)

// SequenceInvalid is the clipboard sequence meaning "no acknowledgment
// requested". Real requests start at 1.
const SequenceInvalid uint64 = 0
