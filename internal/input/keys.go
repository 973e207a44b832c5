package input

import (
	"fmt"
	"strings"
)

// Keycode identifies a key by its layout-dependent meaning ('a' is KeyA
// whatever physical key produced it).
type Keycode uint16

// Scancode identifies a physical key position (USB HID usage ID).
type Scancode uint16

const (
	KeyUnknown Keycode = iota

	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ

	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9

	KeyReturn
	KeyEscape
	KeyBackspace
	KeyTab
	KeySpace
	KeyMinus
	KeyEquals
	KeyLeftBracket
	KeyRightBracket
	KeyBackslash
	KeySemicolon
	KeyQuote
	KeyBackquote
	KeyComma
	KeyPeriod
	KeySlash

	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12

	KeyInsert
	KeyDelete
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyRight
	KeyLeft
	KeyDown
	KeyUp

	KeyLCtrl
	KeyRCtrl
	KeyLShift
	KeyRShift
	KeyLAlt
	KeyRAlt
	KeyLSuper
	KeyRSuper
	KeyCapsLock
)

var keyNames = map[Keycode]string{
	KeyReturn: "return", KeyEscape: "escape", KeyBackspace: "backspace",
	KeyTab: "tab", KeySpace: "space", KeyMinus: "minus", KeyEquals: "equals",
	KeyLeftBracket: "leftbracket", KeyRightBracket: "rightbracket",
	KeyBackslash: "backslash", KeySemicolon: "semicolon", KeyQuote: "quote",
	KeyBackquote: "backquote", KeyComma: "comma", KeyPeriod: "period",
	KeySlash: "slash",
	KeyInsert: "insert", KeyDelete: "delete", KeyHome: "home", KeyEnd: "end",
	KeyPageUp: "pageup", KeyPageDown: "pagedown",
	KeyRight: "right", KeyLeft: "left", KeyDown: "down", KeyUp: "up",
	KeyLCtrl: "lctrl", KeyRCtrl: "rctrl", KeyLShift: "lshift",
	KeyRShift: "rshift", KeyLAlt: "lalt", KeyRAlt: "ralt",
	KeyLSuper: "lsuper", KeyRSuper: "rsuper", KeyCapsLock: "capslock",
}

var keysByName = map[string]Keycode{}

func init() {
	for k := KeyA; k <= KeyZ; k++ {
		keyNames[k] = string(rune('a' + int(k-KeyA)))
	}
	for k := Key0; k <= Key9; k++ {
		keyNames[k] = string(rune('0' + int(k-Key0)))
	}
	for k := KeyF1; k <= KeyF12; k++ {
		keyNames[k] = fmt.Sprintf("f%d", int(k-KeyF1)+1)
	}
	for k, name := range keyNames {
		keysByName[name] = k
	}
	// aliases accepted in keymaps
	keysByName["enter"] = KeyReturn
	keysByName["esc"] = KeyEscape
	keysByName["="] = KeyEquals
	keysByName["-"] = KeyMinus
}

func (k Keycode) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Keycode(%d)", uint16(k))
}

// IsModifier reports whether k is one of the modifier keys.
func (k Keycode) IsModifier() bool {
	return k >= KeyLCtrl && k <= KeyCapsLock
}

// ParseKeycode resolves a key name such as "w", "space", "f12" or "tab".
func ParseKeycode(name string) (Keycode, error) {
	k, ok := keysByName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return KeyUnknown, fmt.Errorf("unknown key %q", name)
	}
	return k, nil
}
