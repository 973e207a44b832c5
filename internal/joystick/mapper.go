// Package joystick synthesizes multi-touch gestures from keyboard and
// relative mouse input: a virtual directional pad, a look pad dragged by
// the mouse, and fixed-position action buttons.
package joystick

import (
	"errors"
	"fmt"

	"github.com/junsooki/AirDroid/internal/input"
)

// TouchSink receives the synthesized touches, in normalized coordinates.
type TouchSink interface {
	VirtualTouch(x, y float64, action input.TouchAction, pointer uint64)
}

type direction uint8

const (
	dirForward direction = iota
	dirBack
	dirLeft
	dirRight
)

func (d direction) String() string {
	return [...]string{"forward", "back", "left", "right"}[d]
}

type bindingKind uint8

const (
	bindDirectional bindingKind = iota
	bindFixed
)

// binding is the descriptor a key resolves to.
type binding struct {
	kind   bindingKind
	dir    direction
	action Action
}

var errNoSink = errors.New("joystick: nil touch sink")

// Mapper holds the joystick state for one session. It is not safe for
// concurrent use.
type Mapper struct {
	km      Keymap
	sink    TouchSink
	keys    map[input.Keycode]binding
	buttons map[input.MouseButton]Action

	// octant: -1, 0 or 1 on each axis; y is positive forward
	rouletteX int
	rouletteY int
	pressed   [4]bool

	look     Point
	lookDown bool

	// pointers currently down, with their last position
	held map[uint64]Point
}

// NewMapper validates km and builds its key binding table.
func NewMapper(km *Keymap, sink TouchSink) (*Mapper, error) {
	if sink == nil {
		return nil, errNoSink
	}
	if km == nil {
		return nil, errors.New("joystick: nil keymap")
	}
	m := &Mapper{
		km:      *km,
		sink:    sink,
		keys:    make(map[input.Keycode]binding),
		buttons: make(map[input.MouseButton]Action),
		look:    km.Look.Reset,
		held:    make(map[uint64]Point),
	}
	if err := m.build(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Mapper) build() error {
	w := m.km.Wheel
	if err := checkPoint("wheel center", w.Center); err != nil {
		return err
	}
	for name, off := range map[string]float64{"up": w.Up, "down": w.Down, "left": w.Left, "right": w.Right} {
		if off < 0 || off > 1 {
			return fmt.Errorf("wheel %s offset out of range: %v", name, off)
		}
	}
	if w.Center.Y-w.Up < 0 || w.Center.Y+w.Down > 1 || w.Center.X-w.Left < 0 || w.Center.X+w.Right > 1 {
		return errors.New("wheel extends outside the screen")
	}
	if err := checkPoint("look reset", m.km.Look.Reset); err != nil {
		return err
	}

	pointers := map[uint64]string{}
	claim := func(p uint64, owner string) error {
		if prev, ok := pointers[p]; ok {
			return fmt.Errorf("pointer %d used by both %s and %s", p, prev, owner)
		}
		pointers[p] = owner
		return nil
	}
	if err := claim(w.Pointer, "wheel"); err != nil {
		return err
	}
	if err := claim(m.km.Look.Pointer, "look"); err != nil {
		return err
	}

	for dir, name := range map[direction]string{
		dirForward: w.Keys.Forward,
		dirBack:    w.Keys.Back,
		dirLeft:    w.Keys.Left,
		dirRight:   w.Keys.Right,
	} {
		if err := m.bindKey(name, binding{kind: bindDirectional, dir: dir}, "wheel "+dir.String()); err != nil {
			return err
		}
	}

	byName := make(map[string]Action, len(m.km.Actions))
	for _, a := range m.km.Actions {
		if a.Name == "" {
			return errors.New("action without a name")
		}
		if _, dup := byName[a.Name]; dup {
			return fmt.Errorf("duplicate action %q", a.Name)
		}
		if err := checkPoint("action "+a.Name, Point{a.X, a.Y}); err != nil {
			return err
		}
		if err := claim(a.Pointer, "action "+a.Name); err != nil {
			return err
		}
		byName[a.Name] = a
		if a.Key == "" {
			continue
		}
		if err := m.bindKey(a.Key, binding{kind: bindFixed, action: a}, "action "+a.Name); err != nil {
			return err
		}
	}

	for button, name := range map[input.MouseButton]string{
		input.MouseButtonLeft:   m.km.Buttons.Left,
		input.MouseButtonRight:  m.km.Buttons.Right,
		input.MouseButtonMiddle: m.km.Buttons.Middle,
	} {
		if name == "" {
			continue
		}
		a, ok := byName[name]
		if !ok {
			return fmt.Errorf("mouse button bound to unknown action %q", name)
		}
		m.buttons[button] = a
	}
	return nil
}

func (m *Mapper) bindKey(name string, b binding, owner string) error {
	if name == "" {
		return fmt.Errorf("%s has no key", owner)
	}
	k, err := input.ParseKeycode(name)
	if err != nil {
		return fmt.Errorf("%s: %w", owner, err)
	}
	if _, dup := m.keys[k]; dup {
		return fmt.Errorf("%s: key %s bound twice", owner, k)
	}
	m.keys[k] = b
	return nil
}

func checkPoint(what string, p Point) error {
	if p.X < 0 || p.X > 1 || p.Y < 0 || p.Y > 1 {
		return fmt.Errorf("%s out of range: (%v, %v)", what, p.X, p.Y)
	}
	return nil
}

// Octant returns the net held direction on each axis.
func (m *Mapper) Octant() (x, y int) {
	return m.rouletteX, m.rouletteY
}

// HandleKey processes a key transition and reports whether the key is bound.
// Auto-repeat events of bound keys are consumed without effect.
func (m *Mapper) HandleKey(key input.Keycode, down, repeat bool) bool {
	b, ok := m.keys[key]
	if !ok {
		return false
	}
	if repeat {
		return true
	}
	switch b.kind {
	case bindDirectional:
		m.direction(b.dir, down)
	case bindFixed:
		m.fixed(b.action, down)
	}
	return true
}

// HandleButton processes a mouse button transition and reports whether the
// button is bound.
func (m *Mapper) HandleButton(button input.MouseButton, down bool) bool {
	a, ok := m.buttons[button]
	if !ok {
		return false
	}
	m.fixed(a, down)
	return true
}

// HandleMotion drags the look finger by the relative motion. Leaving the
// screen lifts the finger and puts it back down at the reset position.
func (m *Mapper) HandleMotion(xrel, yrel int32) {
	l := m.km.Look
	p := Point{
		X: m.look.X + l.Sensitivity.X*float64(xrel),
		Y: m.look.Y + l.Sensitivity.Y*float64(yrel),
	}
	if !m.lookDown {
		m.touch(m.look, input.TouchDown, l.Pointer)
		m.lookDown = true
	}
	if p.X < 0 || p.X > 1 || p.Y < 0 || p.Y > 1 {
		m.touch(m.look, input.TouchUp, l.Pointer)
		m.look = l.Reset
		m.touch(m.look, input.TouchDown, l.Pointer)
		return
	}
	m.look = p
	m.touch(m.look, input.TouchMove, l.Pointer)
}

// Reset lifts every finger still down and recenters the joystick.
func (m *Mapper) Reset() {
	for pointer, p := range m.held {
		m.sink.VirtualTouch(p.X, p.Y, input.TouchUp, pointer)
	}
	clear(m.held)
	m.rouletteX, m.rouletteY = 0, 0
	m.pressed = [4]bool{}
	m.lookDown = false
	m.look = m.km.Look.Reset
}

func (m *Mapper) fixed(a Action, down bool) {
	action := input.TouchUp
	if down {
		action = input.TouchDown
	}
	m.touch(Point{a.X, a.Y}, action, a.Pointer)
}

// direction moves the joystick finger for one directional key. When the
// other axis is off-center the finger only shifts along this key's axis so
// that diagonals combine.
func (m *Mapper) direction(dir direction, down bool) {
	if m.pressed[dir] == down {
		// release without press, or press while held
		return
	}
	m.pressed[dir] = down

	w := m.km.Wheel
	c := w.Center
	step := 1
	if !down {
		step = -1
	}
	end := input.TouchUp
	if down {
		end = input.TouchMove
	}

	switch dir {
	case dirForward, dirBack:
		var dy float64
		if down {
			if dir == dirForward {
				dy = -w.Up
			} else {
				dy = w.Down
			}
		}
		switch {
		case m.rouletteX < 0:
			m.move(Point{c.X - w.Left, c.Y + dy})
		case m.rouletteX > 0:
			m.move(Point{c.X + w.Right, c.Y + dy})
		default:
			if down {
				m.touch(c, input.TouchDown, w.Pointer)
			}
			m.touch(Point{c.X, c.Y + dy}, end, w.Pointer)
		}
		if dir == dirForward {
			m.rouletteY += step
		} else {
			m.rouletteY -= step
		}
	case dirLeft, dirRight:
		var dx float64
		if down {
			if dir == dirLeft {
				dx = -w.Left
			} else {
				dx = w.Right
			}
		}
		switch {
		case m.rouletteY < 0:
			m.move(Point{c.X + dx, c.Y + w.Down})
		case m.rouletteY > 0:
			m.move(Point{c.X + dx, c.Y - w.Up})
		default:
			if down {
				m.touch(c, input.TouchDown, w.Pointer)
			}
			m.touch(Point{c.X + dx, c.Y}, end, w.Pointer)
		}
		if dir == dirRight {
			m.rouletteX += step
		} else {
			m.rouletteX -= step
		}
	}
}

func (m *Mapper) move(p Point) {
	m.touch(p, input.TouchMove, m.km.Wheel.Pointer)
}

// touch forwards to the sink, keeping every pointer's down/up sequence
// well formed.
func (m *Mapper) touch(p Point, action input.TouchAction, pointer uint64) {
	_, down := m.held[pointer]
	switch action {
	case input.TouchDown:
		if down {
			action = input.TouchMove
		}
		m.held[pointer] = p
	case input.TouchMove:
		if !down {
			action = input.TouchDown
		}
		m.held[pointer] = p
	case input.TouchUp:
		if !down {
			return
		}
		delete(m.held, pointer)
	}
	m.sink.VirtualTouch(p.X, p.Y, action, pointer)
}
