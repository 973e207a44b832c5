package joystick

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/junsooki/AirDroid/internal/input"
)

type touch struct {
	X, Y    float64
	Action  input.TouchAction
	Pointer uint64
}

type recordingSink struct {
	touches []touch
}

func (s *recordingSink) VirtualTouch(x, y float64, action input.TouchAction, pointer uint64) {
	s.touches = append(s.touches, touch{x, y, action, pointer})
}

func (s *recordingSink) take() []touch {
	t := s.touches
	s.touches = nil
	return t
}

func testKeymap() *Keymap {
	return &Keymap{
		Wheel: Wheel{
			Center:  Point{0.5, 0.5},
			Up:      0.2,
			Down:    0.1,
			Left:    0.3,
			Right:   0.4,
			Pointer: 1,
			Keys:    WheelKeys{Forward: "w", Back: "s", Left: "a", Right: "d"},
		},
		Look: Look{
			Sensitivity: Point{0.01, 0.01},
			Reset:       Point{0.55, 0.4},
			Pointer:     2,
		},
		Actions: []Action{
			{Name: "jump", Key: "space", X: 0.9, Y: 0.8, Pointer: 11},
			{Name: "fire", X: 0.8, Y: 0.6, Pointer: 12},
		},
		Buttons: Buttons{Left: "fire"},
	}
}

func newTestMapper(t *testing.T) (*Mapper, *recordingSink) {
	sink := &recordingSink{}
	m, err := NewMapper(testKeymap(), sink)
	require.NoError(t, err)
	return m, sink
}

func TestMapper_ForwardPressRelease(t *testing.T) {
	m, sink := newTestMapper(t)

	assert.True(t, m.HandleKey(input.KeyW, true, false))
	assert.Equal(t, []touch{
		{0.5, 0.5, input.TouchDown, 1},
		{0.5, 0.3, input.TouchMove, 1},
	}, sink.take())
	x, y := m.Octant()
	assert.Equal(t, 0, x)
	assert.Equal(t, 1, y)

	assert.True(t, m.HandleKey(input.KeyW, false, false))
	assert.Equal(t, []touch{{0.5, 0.5, input.TouchUp, 1}}, sink.take())
	x, y = m.Octant()
	assert.Equal(t, 0, x)
	assert.Equal(t, 0, y)
}

func TestMapper_OctantAfterForwardLeftReleaseForward(t *testing.T) {
	m, sink := newTestMapper(t)

	m.HandleKey(input.KeyW, true, false)
	sink.take()

	m.HandleKey(input.KeyA, true, false)
	assert.Equal(t, []touch{{0.2, 0.3, input.TouchMove, 1}}, sink.take())

	m.HandleKey(input.KeyW, false, false)
	got := sink.take()
	require.Len(t, got, 1)
	assert.Equal(t, input.TouchMove, got[0].Action)
	assert.InDelta(t, 0.2, got[0].X, 1e-9)
	assert.InDelta(t, 0.5, got[0].Y, 1e-9)

	x, y := m.Octant()
	assert.Equal(t, -1, x)
	assert.Equal(t, 0, y)

	m.HandleKey(input.KeyA, false, false)
	assert.Equal(t, []touch{{0.5, 0.5, input.TouchUp, 1}}, sink.take())
}

func TestMapper_BackAndRightDiagonal(t *testing.T) {
	m, sink := newTestMapper(t)

	m.HandleKey(input.KeyS, true, false)
	assert.Equal(t, []touch{
		{0.5, 0.5, input.TouchDown, 1},
		{0.5, 0.6, input.TouchMove, 1},
	}, sink.take())

	m.HandleKey(input.KeyD, true, false)
	assert.Equal(t, []touch{{0.9, 0.6, input.TouchMove, 1}}, sink.take())

	x, y := m.Octant()
	assert.Equal(t, 1, x)
	assert.Equal(t, -1, y)
}

func TestMapper_RepeatAndUnboundKeys(t *testing.T) {
	m, sink := newTestMapper(t)

	assert.True(t, m.HandleKey(input.KeyW, true, true))
	assert.Empty(t, sink.take())

	assert.False(t, m.HandleKey(input.KeyK, true, false))

	// release without press leaves the octant untouched
	m.HandleKey(input.KeyD, false, false)
	x, y := m.Octant()
	assert.Equal(t, 0, x)
	assert.Equal(t, 0, y)
	assert.Empty(t, sink.take())
}

func TestMapper_FixedActions(t *testing.T) {
	m, sink := newTestMapper(t)

	m.HandleKey(input.KeySpace, true, false)
	m.HandleKey(input.KeySpace, true, true)
	m.HandleKey(input.KeySpace, false, false)
	assert.Equal(t, []touch{
		{0.9, 0.8, input.TouchDown, 11},
		{0.9, 0.8, input.TouchUp, 11},
	}, sink.take())

	assert.True(t, m.HandleButton(input.MouseButtonLeft, true))
	assert.True(t, m.HandleButton(input.MouseButtonLeft, false))
	assert.False(t, m.HandleButton(input.MouseButtonRight, true))
	assert.Equal(t, []touch{
		{0.8, 0.6, input.TouchDown, 12},
		{0.8, 0.6, input.TouchUp, 12},
	}, sink.take())
}

func TestMapper_LookPad(t *testing.T) {
	m, sink := newTestMapper(t)

	m.HandleMotion(5, -10)
	got := sink.take()
	require.Len(t, got, 2)
	assert.Equal(t, touch{0.55, 0.4, input.TouchDown, 2}, got[0])
	assert.Equal(t, input.TouchMove, got[1].Action)
	assert.InDelta(t, 0.6, got[1].X, 1e-9)
	assert.InDelta(t, 0.3, got[1].Y, 1e-9)

	// crossing the right edge lifts and re-centers
	m.HandleMotion(100, 0)
	got = sink.take()
	require.Len(t, got, 2)
	assert.Equal(t, input.TouchUp, got[0].Action)
	assert.InDelta(t, 0.6, got[0].X, 1e-9)
	assert.Equal(t, touch{0.55, 0.4, input.TouchDown, 2}, got[1])
}

func TestMapper_Reset(t *testing.T) {
	m, sink := newTestMapper(t)

	m.HandleKey(input.KeyW, true, false)
	m.HandleKey(input.KeySpace, true, false)
	sink.take()

	m.Reset()

	got := sink.take()
	assert.Len(t, got, 2)
	for _, tc := range got {
		assert.Equal(t, input.TouchUp, tc.Action)
	}
	x, y := m.Octant()
	assert.Equal(t, 0, x)
	assert.Equal(t, 0, y)

	m.Reset()
	assert.Empty(t, sink.take())
}

func TestNewMapper_Validation(t *testing.T) {
	tests := []struct {
		name   string
		modify func(km *Keymap)
	}{
		{"duplicate key", func(km *Keymap) { km.Actions[0].Key = "w" }},
		{"unknown key", func(km *Keymap) { km.Actions[0].Key = "nope" }},
		{"pointer collision", func(km *Keymap) { km.Actions[0].Pointer = 1 }},
		{"look pointer collision", func(km *Keymap) { km.Look.Pointer = 12 }},
		{"out of range action", func(km *Keymap) { km.Actions[1].X = 1.5 }},
		{"wheel outside screen", func(km *Keymap) { km.Wheel.Up = 0.6 }},
		{"unknown button action", func(km *Keymap) { km.Buttons.Right = "scope" }},
		{"duplicate action", func(km *Keymap) { km.Actions[1].Name = "jump" }},
		{"missing wheel key", func(km *Keymap) { km.Wheel.Keys.Left = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			km := testKeymap()
			tt.modify(km)
			_, err := NewMapper(km, &recordingSink{})
			assert.Error(t, err)
		})
	}

	_, err := NewMapper(testKeymap(), nil)
	assert.Error(t, err)
}

func TestDefaultKeymap(t *testing.T) {
	km, err := DefaultKeymap()
	require.NoError(t, err)

	m, err := NewMapper(km, &recordingSink{})
	require.NoError(t, err)
	assert.Equal(t, uint64(1), km.Wheel.Pointer)
	assert.Equal(t, uint64(2), km.Look.Pointer)
	assert.True(t, m.HandleButton(input.MouseButtonLeft, true))
	assert.True(t, m.HandleKey(input.KeyR, true, false))
}

func TestParseKeymap_UnknownField(t *testing.T) {
	_, err := ParseKeymap([]byte("wheel:\n  centre: {x: 0.1, y: 0.1}\n"))
	assert.Error(t, err)
}
