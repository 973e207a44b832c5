package display

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/junsooki/AirDroid/internal/input"
)

type keyMapping struct {
	key      input.Keycode
	scancode input.Scancode
}

// keyTable maps Ebitengine keys to keycodes and USB HID usage IDs.
var keyTable = map[ebiten.Key]keyMapping{
	ebiten.KeyEnter:        {input.KeyReturn, 0x28},
	ebiten.KeyEscape:       {input.KeyEscape, 0x29},
	ebiten.KeyBackspace:    {input.KeyBackspace, 0x2a},
	ebiten.KeyTab:          {input.KeyTab, 0x2b},
	ebiten.KeySpace:        {input.KeySpace, 0x2c},
	ebiten.KeyMinus:        {input.KeyMinus, 0x2d},
	ebiten.KeyEqual:        {input.KeyEquals, 0x2e},
	ebiten.KeyBracketLeft:  {input.KeyLeftBracket, 0x2f},
	ebiten.KeyBracketRight: {input.KeyRightBracket, 0x30},
	ebiten.KeyBackslash:    {input.KeyBackslash, 0x31},
	ebiten.KeySemicolon:    {input.KeySemicolon, 0x33},
	ebiten.KeyQuote:        {input.KeyQuote, 0x34},
	ebiten.KeyBackquote:    {input.KeyBackquote, 0x35},
	ebiten.KeyComma:        {input.KeyComma, 0x36},
	ebiten.KeyPeriod:       {input.KeyPeriod, 0x37},
	ebiten.KeySlash:        {input.KeySlash, 0x38},
	ebiten.KeyCapsLock:     {input.KeyCapsLock, 0x39},
	ebiten.KeyInsert:       {input.KeyInsert, 0x49},
	ebiten.KeyHome:         {input.KeyHome, 0x4a},
	ebiten.KeyPageUp:       {input.KeyPageUp, 0x4b},
	ebiten.KeyDelete:       {input.KeyDelete, 0x4c},
	ebiten.KeyEnd:          {input.KeyEnd, 0x4d},
	ebiten.KeyPageDown:     {input.KeyPageDown, 0x4e},
	ebiten.KeyArrowRight:   {input.KeyRight, 0x4f},
	ebiten.KeyArrowLeft:    {input.KeyLeft, 0x50},
	ebiten.KeyArrowDown:    {input.KeyDown, 0x51},
	ebiten.KeyArrowUp:      {input.KeyUp, 0x52},
	ebiten.KeyControlLeft:  {input.KeyLCtrl, 0xe0},
	ebiten.KeyShiftLeft:    {input.KeyLShift, 0xe1},
	ebiten.KeyAltLeft:      {input.KeyLAlt, 0xe2},
	ebiten.KeyMetaLeft:     {input.KeyLSuper, 0xe3},
	ebiten.KeyControlRight: {input.KeyRCtrl, 0xe4},
	ebiten.KeyShiftRight:   {input.KeyRShift, 0xe5},
	ebiten.KeyAltRight:     {input.KeyRAlt, 0xe6},
	ebiten.KeyMetaRight:    {input.KeyRSuper, 0xe7},
}

// letters, digits and function keys in keycode order; Ebitengine orders
// its keys by name
var (
	letterKeys = []ebiten.Key{
		ebiten.KeyA, ebiten.KeyB, ebiten.KeyC, ebiten.KeyD, ebiten.KeyE, ebiten.KeyF, ebiten.KeyG,
		ebiten.KeyH, ebiten.KeyI, ebiten.KeyJ, ebiten.KeyK, ebiten.KeyL, ebiten.KeyM, ebiten.KeyN,
		ebiten.KeyO, ebiten.KeyP, ebiten.KeyQ, ebiten.KeyR, ebiten.KeyS, ebiten.KeyT, ebiten.KeyU,
		ebiten.KeyV, ebiten.KeyW, ebiten.KeyX, ebiten.KeyY, ebiten.KeyZ,
	}
	digitKeys = []ebiten.Key{
		ebiten.KeyDigit0, ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3, ebiten.KeyDigit4,
		ebiten.KeyDigit5, ebiten.KeyDigit6, ebiten.KeyDigit7, ebiten.KeyDigit8, ebiten.KeyDigit9,
	}
	functionKeys = []ebiten.Key{
		ebiten.KeyF1, ebiten.KeyF2, ebiten.KeyF3, ebiten.KeyF4, ebiten.KeyF5, ebiten.KeyF6,
		ebiten.KeyF7, ebiten.KeyF8, ebiten.KeyF9, ebiten.KeyF10, ebiten.KeyF11, ebiten.KeyF12,
	}
)

func init() {
	for i, k := range letterKeys {
		keyTable[k] = keyMapping{input.KeyA + input.Keycode(i), input.Scancode(0x04 + i)}
	}
	// HID orders 1..9 then 0
	for i, k := range digitKeys {
		sc := input.Scancode(0x1e + i - 1)
		if i == 0 {
			sc = 0x27
		}
		keyTable[k] = keyMapping{input.Key0 + input.Keycode(i), sc}
	}
	for i, k := range functionKeys {
		keyTable[k] = keyMapping{input.KeyF1 + input.Keycode(i), input.Scancode(0x3a + i)}
	}
}

var modKeys = []struct {
	key ebiten.Key
	mod input.Mod
}{
	{ebiten.KeyShiftLeft, input.ModLShift},
	{ebiten.KeyShiftRight, input.ModRShift},
	{ebiten.KeyControlLeft, input.ModLCtrl},
	{ebiten.KeyControlRight, input.ModRCtrl},
	{ebiten.KeyAltLeft, input.ModLAlt},
	{ebiten.KeyAltRight, input.ModRAlt},
	{ebiten.KeyMetaLeft, input.ModLSuper},
	{ebiten.KeyMetaRight, input.ModRSuper},
	{ebiten.KeyNumLock, input.ModNum},
	{ebiten.KeyCapsLock, input.ModCaps},
}

func currentMods() input.Mod {
	var m input.Mod
	for _, mk := range modKeys {
		if ebiten.IsKeyPressed(mk.key) {
			m |= mk.mod
		}
	}
	return m
}
