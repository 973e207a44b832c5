// Package shortcut parses the configured shortcut modifiers and decides
// whether a modifier state selects a local shortcut.
package shortcut

import (
	"errors"
	"fmt"
	"strings"

	"github.com/junsooki/AirDroid/internal/input"
)

// Mod is a bitmask of the modifier keys that may form a shortcut
// combination.
type Mod uint8

const (
	LCtrl Mod = 1 << iota
	RCtrl
	LAlt
	RAlt
	LSuper
	RSuper
)

// MaxMods is the maximum number of accepted combinations.
const MaxMods = 8

var (
	ErrNoShortcutMods = errors.New("no shortcut modifier combination")
	ErrEmptyMod       = errors.New("empty shortcut modifier combination")
	ErrTooManyMods    = fmt.Errorf("too many shortcut modifier combinations (max %d)", MaxMods)
)

var modsByName = map[string]Mod{
	"lctrl":  LCtrl,
	"rctrl":  RCtrl,
	"lalt":   LAlt,
	"ralt":   RAlt,
	"lsuper": LSuper,
	"rsuper": RSuper,
}

// Parse parses a comma separated list of '+' joined modifier names, e.g.
// "lctrl+lalt,lsuper".
func Parse(s string) ([]Mod, error) {
	var mods []Mod
	for _, combo := range strings.Split(s, ",") {
		var m Mod
		for _, name := range strings.Split(combo, "+") {
			name = strings.ToLower(strings.TrimSpace(name))
			if name == "" {
				return nil, fmt.Errorf("%w in %q", ErrEmptyMod, s)
			}
			bit, ok := modsByName[name]
			if !ok {
				return nil, fmt.Errorf("unknown shortcut modifier %q", name)
			}
			m |= bit
		}
		mods = append(mods, m)
		if len(mods) > MaxMods {
			return nil, ErrTooManyMods
		}
	}
	return mods, nil
}

func (m Mod) String() string {
	var parts []string
	for _, n := range []struct {
		bit  Mod
		name string
	}{
		{LCtrl, "lctrl"}, {RCtrl, "rctrl"},
		{LAlt, "lalt"}, {RAlt, "ralt"},
		{LSuper, "lsuper"}, {RSuper, "rsuper"},
	} {
		if m&n.bit != 0 {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "+")
}

// InputMod converts m to the equivalent input modifier mask.
func (m Mod) InputMod() input.Mod {
	var mod input.Mod
	if m&LCtrl != 0 {
		mod |= input.ModLCtrl
	}
	if m&RCtrl != 0 {
		mod |= input.ModRCtrl
	}
	if m&LAlt != 0 {
		mod |= input.ModLAlt
	}
	if m&RAlt != 0 {
		mod |= input.ModRAlt
	}
	if m&LSuper != 0 {
		mod |= input.ModLSuper
	}
	if m&RSuper != 0 {
		mod |= input.ModRSuper
	}
	return mod
}

// Matcher reports whether a modifier state is exactly one of the configured
// shortcut combinations.
type Matcher struct {
	masks []input.Mod
}

// NewMatcher builds a Matcher from the configured combinations.
func NewMatcher(mods []Mod) (*Matcher, error) {
	if len(mods) == 0 {
		return nil, ErrNoShortcutMods
	}
	if len(mods) > MaxMods {
		return nil, ErrTooManyMods
	}
	masks := make([]input.Mod, 0, len(mods))
	for _, m := range mods {
		mask := m.InputMod()
		if mask == input.ModNone {
			return nil, ErrEmptyMod
		}
		masks = append(masks, mask)
	}
	return &Matcher{masks: masks}, nil
}

// Match ignores shift, num lock and caps lock: only ctrl, alt and super
// take part in the comparison.
func (m *Matcher) Match(state input.Mod) bool {
	state &= input.ModCtrl | input.ModAlt | input.ModSuper
	for _, mask := range m.masks {
		if state == mask {
			return true
		}
	}
	return false
}
