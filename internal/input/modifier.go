package input

import "strings"

// Mod is the keyboard modifier state carried by key events. Left and right
// keys are tracked separately.
type Mod uint16

const (
	ModNone   Mod = 0
	ModLShift Mod = 1 << (iota - 1)
	ModRShift
	ModLCtrl
	ModRCtrl
	ModLAlt
	ModRAlt
	ModLSuper
	ModRSuper
	ModNum
	ModCaps
)

// Combined masks.
const (
	ModShift = ModLShift | ModRShift
	ModCtrl  = ModLCtrl | ModRCtrl
	ModAlt   = ModLAlt | ModRAlt
	ModSuper = ModLSuper | ModRSuper
)

// Has reports whether any of the bits in mod are set.
func (m Mod) Has(mod Mod) bool {
	return m&mod != 0
}

// HasShift reports whether either Shift key is held.
func (m Mod) HasShift() bool { return m.Has(ModShift) }

// HasCtrl reports whether either Ctrl key is held.
func (m Mod) HasCtrl() bool { return m.Has(ModCtrl) }

func (m Mod) String() string {
	if m == ModNone {
		return "none"
	}
	names := []struct {
		bit  Mod
		name string
	}{
		{ModLCtrl, "lctrl"}, {ModRCtrl, "rctrl"},
		{ModLAlt, "lalt"}, {ModRAlt, "ralt"},
		{ModLSuper, "lsuper"}, {ModRSuper, "rsuper"},
		{ModLShift, "lshift"}, {ModRShift, "rshift"},
		{ModNum, "num"}, {ModCaps, "caps"},
	}
	var parts []string
	for _, n := range names {
		if m.Has(n.bit) {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "+")
}
