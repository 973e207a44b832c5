// Package inputmgr translates local input events into device control
// messages: it arbitrates shortcuts, forwards keys and pointer events to the
// processors, synthesizes the pinch virtual finger, sequences clipboard
// synchronization, and drives the virtual joystick in mouse-capture mode.
package inputmgr

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/junsooki/AirDroid/internal/control"
	"github.com/junsooki/AirDroid/internal/filepush"
	"github.com/junsooki/AirDroid/internal/geom"
	"github.com/junsooki/AirDroid/internal/input"
	"github.com/junsooki/AirDroid/internal/joystick"
	"github.com/junsooki/AirDroid/internal/shortcut"
)

// Screen is the local window: the orientation source plus the window
// actions shortcuts can trigger.
type Screen interface {
	Orientation() geom.Orientation
	SetOrientation(o geom.Orientation)
	// FrameSize is the device frame size, the reference for all positions.
	FrameSize() geom.Size
	// ContentSize is the frame size after the orientation is applied.
	ContentSize() geom.Size
	WindowToFrame(x, y int32) geom.Point
	DrawableToFrame(x, y int32) geom.Point
	DrawableSize() (width, height int32)
	// IsInsideContent reports whether a window position falls on the
	// displayed device content rather than the borders.
	IsInsideContent(x, y int32) bool

	SwitchFullscreen()
	ResizeToFit()
	ResizeToPixelPerfect()
	ToggleFPSCounter()
}

// FilePusher transfers dropped files to the device.
type FilePusher interface {
	// Request queues the transfer and reports whether it was accepted.
	Request(action filepush.Action, path string) bool
}

// Clipboard is read-only access to the local clipboard.
type Clipboard interface {
	Get() (string, bool)
}

// Params configures a Manager.
type Params struct {
	// Controller receives control messages. Nil disables control: only
	// local window shortcuts keep working.
	Controller     control.Pusher
	FilePusher     FilePusher
	Screen         Screen
	KeyProcessor   input.KeyProcessor
	MouseProcessor input.MouseProcessor
	TouchProcessor input.TouchProcessor
	Clipboard      Clipboard
	// Keymap configures the virtual joystick. Nil selects the built-in
	// keymap.
	Keymap *joystick.Keymap

	ForwardAllClicks  bool
	LegacyPaste       bool
	ClipboardAutosync bool
	ShortcutMods      []shortcut.Mod
	// VirtualFingerMod is the modifier that starts a pinch on left click.
	// Zero selects either Ctrl key.
	VirtualFingerMod input.Mod
}

// Manager is the input dispatcher of one session. Events must be delivered
// from a single goroutine.
type Manager struct {
	controller control.Pusher
	fp         FilePusher
	screen     Screen
	kp         input.KeyProcessor
	mp         input.MouseProcessor
	tp         input.TouchProcessor
	clipboard  Clipboard
	matcher    *shortcut.Matcher
	joystick   *joystick.Mapper

	forwardAllClicks  bool
	legacyPaste       bool
	clipboardAutosync bool
	vfingerMod        input.Mod

	vfingerDown bool

	// consecutive identical shortcut presses, distinct from auto-repeat
	keyRepeat uint
	lastKey   input.Keycode
	lastMod   input.Mod

	nextSequence uint64

	pressure func() float32
}

// New creates a Manager. Configuration errors are returned; a controller
// without key or mouse processor is a programming error and panics.
func New(p Params) (*Manager, error) {
	if p.Screen == nil {
		return nil, errors.New("inputmgr: nil screen")
	}
	if p.Controller != nil && (p.KeyProcessor == nil || p.MouseProcessor == nil) {
		panic("inputmgr: control enabled without key and mouse processors")
	}

	matcher, err := shortcut.NewMatcher(p.ShortcutMods)
	if err != nil {
		return nil, fmt.Errorf("invalid shortcut mods: %w", err)
	}

	m := &Manager{
		controller:        p.Controller,
		fp:                p.FilePusher,
		screen:            p.Screen,
		kp:                p.KeyProcessor,
		mp:                p.MouseProcessor,
		tp:                p.TouchProcessor,
		clipboard:         p.Clipboard,
		matcher:           matcher,
		forwardAllClicks:  p.ForwardAllClicks,
		legacyPaste:       p.LegacyPaste,
		clipboardAutosync: p.ClipboardAutosync,
		vfingerMod:        p.VirtualFingerMod,
		nextSequence:      1, // 0 is control.SequenceInvalid
		pressure:          jitteredPressure,
	}
	if m.vfingerMod == input.ModNone {
		m.vfingerMod = input.ModCtrl
	}
	if m.tp == nil {
		if tp, ok := p.MouseProcessor.(input.TouchProcessor); ok {
			m.tp = tp
		}
	}

	km := p.Keymap
	if km == nil {
		if km, err = joystick.DefaultKeymap(); err != nil {
			return nil, err
		}
	}
	if m.joystick, err = joystick.NewMapper(km, m); err != nil {
		return nil, fmt.Errorf("invalid keymap: %w", err)
	}
	return m, nil
}

// HandleEvent processes one local input event. mouseCapture selects the
// virtualized gesture mode, where keys and the mouse drive the joystick.
func (m *Manager) HandleEvent(evt input.Event, mouseCapture bool) {
	hasControl := m.controller != nil
	switch evt.Type {
	case input.EventText:
		if hasControl {
			m.processTextInput(evt)
		}
	case input.EventKeyDown, input.EventKeyUp:
		m.processKey(evt, mouseCapture)
	case input.EventMouseMove:
		m.processMouseMotion(evt, mouseCapture)
	case input.EventMouseScroll:
		if hasControl {
			m.processMouseWheel(evt)
		}
	case input.EventMouseDown, input.EventMouseUp:
		// some clicks only act on the local window
		m.processMouseButton(evt, mouseCapture)
	case input.EventTouchDown, input.EventTouchMove, input.EventTouchUp:
		if hasControl {
			m.processTouch(evt)
		}
	case input.EventDropFile:
		if hasControl {
			m.processFile(evt)
		}
	}
}

// ReleaseCapture lifts every joystick finger. Call it when leaving mouse
// capture mode.
func (m *Manager) ReleaseCapture() {
	m.joystick.Reset()
}

// Octant exposes the joystick state.
func (m *Manager) Octant() (x, y int) {
	return m.joystick.Octant()
}

// NextSequence returns the sequence the next acknowledged clipboard request
// will use.
func (m *Manager) NextSequence() uint64 {
	return m.nextSequence
}

func jitteredPressure() float32 {
	return float32(rand.Intn(300)+700) / 1000
}
