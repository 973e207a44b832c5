package shortcut

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/junsooki/AirDroid/internal/input"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    []Mod
		wantErr error
	}{
		{in: "lalt,lsuper", want: []Mod{LAlt, LSuper}},
		{in: "lctrl+lalt", want: []Mod{LCtrl | LAlt}},
		{in: " RCtrl + rsuper , ralt", want: []Mod{RCtrl | RSuper, RAlt}},
		{in: "", wantErr: ErrEmptyMod},
		{in: "lctrl+", wantErr: ErrEmptyMod},
		{in: "lctrl,lctrl,lctrl,lctrl,lctrl,lctrl,lctrl,lctrl,lctrl", wantErr: ErrTooManyMods},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := Parse("hyper")
	assert.Error(t, err)
}

func TestNewMatcher(t *testing.T) {
	_, err := NewMatcher(nil)
	assert.ErrorIs(t, err, ErrNoShortcutMods)

	_, err = NewMatcher([]Mod{LAlt, 0})
	assert.ErrorIs(t, err, ErrEmptyMod)

	_, err = NewMatcher(make([]Mod, MaxMods+1))
	assert.ErrorIs(t, err, ErrTooManyMods)
}

func TestMatcher_Match(t *testing.T) {
	m, err := NewMatcher([]Mod{LCtrl, LAlt | LSuper})
	require.NoError(t, err)

	assert.True(t, m.Match(input.ModLCtrl))
	assert.True(t, m.Match(input.ModLAlt|input.ModLSuper))

	assert.False(t, m.Match(input.ModNone))
	assert.False(t, m.Match(input.ModRCtrl))
	assert.False(t, m.Match(input.ModLAlt))
	assert.False(t, m.Match(input.ModLCtrl|input.ModLAlt))
}

func TestMatcher_IgnoresShiftAndLocks(t *testing.T) {
	m, err := NewMatcher([]Mod{LCtrl})
	require.NoError(t, err)

	for _, extra := range []input.Mod{
		input.ModNone,
		input.ModLShift,
		input.ModRShift,
		input.ModCaps,
		input.ModNum,
		input.ModLShift | input.ModCaps | input.ModNum,
	} {
		assert.True(t, m.Match(input.ModLCtrl|extra), "extra=%s", extra)
		assert.False(t, m.Match(input.ModRAlt|extra), "extra=%s", extra)
	}
}

func TestModString(t *testing.T) {
	assert.Equal(t, "lctrl+lsuper", (LCtrl | LSuper).String())
}
