package inputmgr

import (
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/junsooki/AirDroid/internal/control"
	"github.com/junsooki/AirDroid/internal/filepush"
	"github.com/junsooki/AirDroid/internal/geom"
	"github.com/junsooki/AirDroid/internal/input"
)

func (m *Manager) pointerID() uint64 {
	if m.forwardAllClicks {
		return uint64(control.PointerIDMouse)
	}
	return uint64(control.PointerIDGenericFinger)
}

func (m *Manager) virtualPointerID() uint64 {
	if m.forwardAllClicks {
		return uint64(control.PointerIDVirtualMouse)
	}
	return uint64(control.PointerIDVirtualFinger)
}

// buttonsState drops every button but the left one unless all clicks are
// forwarded.
func (m *Manager) buttonsState(state input.ButtonState) input.ButtonState {
	if m.forwardAllClicks {
		return state
	}
	return state & input.MouseButtonLeft.Bit()
}

func (m *Manager) framePosition(x, y int32) geom.Position {
	return geom.Position{
		Point:      m.screen.WindowToFrame(x, y),
		ScreenSize: m.screen.FrameSize(),
	}
}

func (m *Manager) processMouseMotion(evt input.Event, mouseCapture bool) {
	if mouseCapture {
		m.joystick.HandleMotion(evt.XRel, evt.YRel)
		return
	}
	if m.controller == nil {
		return
	}

	pos := m.framePosition(evt.X, evt.Y)
	m.mp.ProcessMouseMotion(input.MouseMotionEvent{
		Position:  pos,
		PointerID: m.pointerID(),
		XRel:      evt.XRel,
		YRel:      evt.YRel,
		Buttons:   m.buttonsState(evt.Buttons),
	})

	if m.vfingerDown {
		m.assertAbsoluteMode()
		m.simulateVirtualFinger(control.AMotionEventActionMove, geom.Mirror(pos.Point, pos.ScreenSize))
	}
}

func (m *Manager) processMouseButton(evt input.Event, mouseCapture bool) {
	down := evt.Type == input.EventMouseDown

	if mouseCapture {
		m.joystick.HandleButton(evt.Button, down)
		return
	}

	action := input.ActionUp
	if down {
		action = input.ActionDown
	}

	if !m.forwardAllClicks {
		if m.controller != nil {
			switch evt.Button {
			case input.MouseButtonX1:
				m.sendKeycode(control.AKeycodeAppSwitch, action, "APP_SWITCH")
				return
			case input.MouseButtonX2:
				if down {
					if evt.Clicks < 2 {
						m.push(control.ExpandNotificationPanel{}, "expand notification panel")
					} else {
						m.push(control.ExpandSettingsPanel{}, "expand settings panel")
					}
				}
				return
			case input.MouseButtonRight:
				m.pressBackOrTurnScreenOn(action)
				return
			case input.MouseButtonMiddle:
				m.sendKeycode(control.AKeycodeHome, action, "HOME")
				return
			}
		}

		// double-click on the black borders resizes to fit the device
		if evt.Button == input.MouseButtonLeft && evt.Clicks == 2 && !m.screen.IsInsideContent(evt.X, evt.Y) {
			if down {
				m.screen.ResizeToFit()
			}
			return
		}
	}

	if m.controller == nil {
		return
	}

	pos := m.framePosition(evt.X, evt.Y)
	m.mp.ProcessMouseClick(input.MouseClickEvent{
		Position:  pos,
		Action:    action,
		Button:    evt.Button,
		PointerID: m.pointerID(),
		Buttons:   m.buttonsState(evt.Buttons),
	})

	if m.mp.RelativeMode() {
		m.assertAbsoluteMode()
		return
	}

	// Pinch to zoom: a left click with the virtual finger modifier held adds
	// a second finger mirrored through the screen center until release.
	if evt.Button != input.MouseButtonLeft {
		return
	}
	if (down && !m.vfingerDown && evt.Mod.Has(m.vfingerMod)) || (!down && m.vfingerDown) {
		motion := control.AMotionEventActionUp
		if down {
			motion = control.AMotionEventActionDown
		}
		if !m.simulateVirtualFinger(motion, geom.Mirror(pos.Point, pos.ScreenSize)) {
			return
		}
		m.vfingerDown = down
	}
}

// assertAbsoluteMode panics if the virtual finger is down while the mouse
// processor works in relative mode.
func (m *Manager) assertAbsoluteMode() {
	if m.vfingerDown && m.mp.RelativeMode() {
		panic("inputmgr: virtual finger active in relative mouse mode")
	}
}

func (m *Manager) simulateVirtualFinger(action uint8, point geom.Point) bool {
	var pressure float32 = 1
	if action == control.AMotionEventActionUp {
		pressure = 0
	}
	msg := control.InjectTouch{
		Action:    action,
		PointerID: control.PointerID(m.virtualPointerID()),
		Position:  geom.Position{Point: point, ScreenSize: m.screen.FrameSize()},
		Pressure:  pressure,
	}
	return m.push(msg, "inject virtual finger event")
}

func (m *Manager) processMouseWheel(evt input.Event) {
	sp, ok := m.mp.(input.ScrollProcessor)
	if !ok {
		return
	}
	sp.ProcessMouseScroll(input.MouseScrollEvent{
		Position: m.framePosition(evt.X, evt.Y),
		HScroll:  min(max(evt.ScrollX, -1), 1),
		VScroll:  min(max(evt.ScrollY, -1), 1),
		Buttons:  m.buttonsState(evt.Buttons),
	})
}

func (m *Manager) processTouch(evt input.Event) {
	if m.tp == nil {
		return
	}
	dw, dh := m.screen.DrawableSize()
	x := int32(evt.TouchX * float32(dw))
	y := int32(evt.TouchY * float32(dh))

	action := input.TouchMove
	switch evt.Type {
	case input.EventTouchDown:
		action = input.TouchDown
	case input.EventTouchUp:
		action = input.TouchUp
	}
	m.tp.ProcessTouch(input.TouchEvent{
		Position: geom.Position{
			Point:      m.screen.DrawableToFrame(x, y),
			ScreenSize: m.screen.FrameSize(),
		},
		Action:    action,
		PointerID: uint64(evt.FingerID),
		Pressure:  evt.Pressure,
	})
}

func (m *Manager) processFile(evt input.Event) {
	if m.fp == nil {
		log.Warn().Str("file", evt.Path).Msg("no file pusher, dropped file ignored")
		return
	}
	action := filepush.ActionPushFile
	if strings.EqualFold(filepath.Ext(evt.Path), ".apk") {
		action = filepush.ActionInstallAPK
	}
	if !m.fp.Request(action, evt.Path) {
		log.Warn().Str("file", evt.Path).Msg("could not request file push")
	}
}

// VirtualTouch implements joystick.TouchSink: the normalized point is
// oriented onto the content and sent as a touch on the device frame.
func (m *Manager) VirtualTouch(x, y float64, action input.TouchAction, pointer uint64) {
	if m.tp == nil {
		return
	}
	point := geom.TransformNormalized(m.screen.Orientation(), x, y, m.screen.ContentSize())
	m.tp.ProcessTouch(input.TouchEvent{
		Position: geom.Position{
			Point:      point,
			ScreenSize: m.screen.FrameSize(),
		},
		Action:    action,
		PointerID: pointer,
		Pressure:  m.pressure(),
	})
}
