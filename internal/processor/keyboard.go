// Package processor turns processor events into control messages for the
// device.
package processor

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/rs/zerolog/log"

	"github.com/junsooki/AirDroid/internal/control"
	"github.com/junsooki/AirDroid/internal/input"
)

// InjectMode selects how printable keys reach the device.
type InjectMode string

const (
	// InjectMixed sends letters and space as key events and everything
	// else as text.
	InjectMixed InjectMode = "mixed"
	// InjectText sends all printable characters as text.
	InjectText InjectMode = "text"
	// InjectRaw sends key events only and never injects text.
	InjectRaw InjectMode = "raw"
)

// ParseInjectMode parses a -key-inject-mode value.
func ParseInjectMode(s string) (InjectMode, error) {
	switch m := InjectMode(strings.ToLower(s)); m {
	case InjectMixed, InjectText, InjectRaw:
		return m, nil
	}
	return "", fmt.Errorf("invalid key inject mode %q (expected mixed, text or raw)", s)
}

var specialKeys = map[input.Keycode]control.AKeycode{
	input.KeyReturn:    control.AKeycodeEnter,
	input.KeyEscape:    control.AKeycodeEscape,
	input.KeyBackspace: control.AKeycodeDel,
	input.KeyTab:       control.AKeycodeTab,
	input.KeyPageUp:    control.AKeycodePageUp,
	input.KeyDelete:    control.AKeycodeForwardDel,
	input.KeyHome:      control.AKeycodeMoveHome,
	input.KeyEnd:       control.AKeycodeMoveEnd,
	input.KeyPageDown:  control.AKeycodePageDown,
	input.KeyInsert:    control.AKeycodeInsert,
	input.KeyRight:     control.AKeycodeDpadRight,
	input.KeyLeft:      control.AKeycodeDpadLeft,
	input.KeyDown:      control.AKeycodeDpadDown,
	input.KeyUp:        control.AKeycodeDpadUp,
	input.KeyLCtrl:     control.AKeycodeCtrlLeft,
	input.KeyRCtrl:     control.AKeycodeCtrlRight,
	input.KeyLShift:    control.AKeycodeShiftLeft,
	input.KeyRShift:    control.AKeycodeShiftRight,
	input.KeyLAlt:      control.AKeycodeAltLeft,
	input.KeyRAlt:      control.AKeycodeAltRight,
	input.KeyLSuper:    control.AKeycodeMetaLeft,
	input.KeyRSuper:    control.AKeycodeMetaRight,
	input.KeyCapsLock:  control.AKeycodeCapsLock,
}

var punctKeys = map[input.Keycode]control.AKeycode{
	input.KeyMinus:        control.AKeycodeMinus,
	input.KeyEquals:       control.AKeycodeEquals,
	input.KeyLeftBracket:  control.AKeycodeLeftBracket,
	input.KeyRightBracket: control.AKeycodeRightBracket,
	input.KeyBackslash:    control.AKeycodeBackslash,
	input.KeySemicolon:    control.AKeycodeSemicolon,
	input.KeyQuote:        control.AKeycodeApostrophe,
	input.KeyBackquote:    control.AKeycodeGrave,
	input.KeyComma:        control.AKeycodeComma,
	input.KeyPeriod:       control.AKeycodePeriod,
	input.KeySlash:        control.AKeycodeSlash,
}

// ConvertKeycode maps a local key to an Android keycode. It returns false
// for keys that must not be forwarded as key events with this mode and
// modifier state.
func ConvertKeycode(k input.Keycode, mod input.Mod, mode InjectMode) (control.AKeycode, bool) {
	if ak, ok := specialKeys[k]; ok {
		return ak, true
	}
	if k >= input.KeyF1 && k <= input.KeyF12 {
		return control.AKeycodeF1 + control.AKeycode(k-input.KeyF1), true
	}

	if mode == InjectText && !mod.HasCtrl() {
		return 0, false
	}
	if mod.Has(input.ModAlt | input.ModSuper) {
		return 0, false
	}

	switch {
	case k >= input.KeyA && k <= input.KeyZ:
		return control.AKeycodeA + control.AKeycode(k-input.KeyA), true
	case k == input.KeySpace:
		return control.AKeycodeSpace, true
	}

	if mode == InjectRaw {
		if k >= input.Key0 && k <= input.Key9 {
			return control.AKeycode0 + control.AKeycode(k-input.Key0), true
		}
		if ak, ok := punctKeys[k]; ok {
			return ak, true
		}
	}
	return 0, false
}

// ConvertMetaState maps local modifiers to an Android meta state.
func ConvertMetaState(mod input.Mod) uint32 {
	var meta uint32
	if mod.Has(input.ModLShift) {
		meta |= control.AMetaShiftOn | control.AMetaShiftLeft
	}
	if mod.Has(input.ModRShift) {
		meta |= control.AMetaShiftOn | control.AMetaShiftRight
	}
	if mod.Has(input.ModLCtrl) {
		meta |= control.AMetaCtrlOn | control.AMetaCtrlLeft
	}
	if mod.Has(input.ModRCtrl) {
		meta |= control.AMetaCtrlOn | control.AMetaCtrlRight
	}
	if mod.Has(input.ModLAlt) {
		meta |= control.AMetaAltOn | control.AMetaAltLeft
	}
	if mod.Has(input.ModRAlt) {
		meta |= control.AMetaAltOn | control.AMetaAltRight
	}
	if mod.Has(input.ModLSuper) {
		meta |= control.AMetaMetaOn | control.AMetaMetaLeft
	}
	if mod.Has(input.ModRSuper) {
		meta |= control.AMetaMetaOn | control.AMetaMetaRight
	}
	if mod.Has(input.ModCaps) {
		meta |= control.AMetaCapsLockOn
	}
	if mod.Has(input.ModNum) {
		meta |= control.AMetaNumLockOn
	}
	return meta
}

// KeyboardInject injects key events and text through control messages.
type KeyboardInject struct {
	pusher control.Pusher
	mode   InjectMode
	// forward the repeat count of held keys
	forwardRepeat bool
	repeat        uint32
}

// NewKeyboardInject creates a keyboard processor pushing to pusher.
func NewKeyboardInject(pusher control.Pusher, mode InjectMode, forwardRepeat bool) *KeyboardInject {
	if mode == "" {
		mode = InjectMixed
	}
	return &KeyboardInject{pusher: pusher, mode: mode, forwardRepeat: forwardRepeat}
}

// AsyncPaste implements input.KeyProcessor. The plain injector cannot wait
// for acknowledgments.
func (k *KeyboardInject) AsyncPaste() bool { return false }

// ProcessKey implements input.KeyProcessor. ackToWait is ignored.
func (k *KeyboardInject) ProcessKey(evt input.KeyEvent, _ uint64) {
	if evt.Repeat {
		if !k.forwardRepeat {
			return
		}
		k.repeat++
	} else {
		k.repeat = 0
	}

	keycode, ok := ConvertKeycode(evt.Key, evt.Mods, k.mode)
	if !ok {
		return
	}

	action := control.AKeyEventActionDown
	if evt.Action == input.ActionUp {
		action = control.AKeyEventActionUp
	}
	msg := control.InjectKeycode{
		Action:    action,
		Keycode:   keycode,
		Repeat:    k.repeat,
		MetaState: ConvertMetaState(evt.Mods),
	}
	if !k.pusher.PushMsg(msg) {
		log.Warn().Stringer("key", evt.Key).Msg("could not request 'inject keycode'")
	}
}

// ProcessText implements input.TextProcessor.
func (k *KeyboardInject) ProcessText(evt input.TextEvent) {
	if k.mode == InjectRaw || evt.Text == "" {
		return
	}
	if k.mode == InjectMixed {
		// letters and space already went out as key events
		r := []rune(evt.Text)
		if len(r) == 1 && r[0] < unicode.MaxASCII && (unicode.IsLetter(r[0]) || r[0] == ' ') {
			return
		}
	}
	if !k.pusher.PushMsg(control.InjectText{Text: evt.Text}) {
		log.Warn().Msg("could not request 'inject text'")
	}
}
