package inputmgr

import (
	"github.com/rs/zerolog/log"

	"github.com/junsooki/AirDroid/internal/control"
	"github.com/junsooki/AirDroid/internal/geom"
	"github.com/junsooki/AirDroid/internal/input"
)

// shortcutState is what a shortcut handler needs to know about the key.
type shortcutState struct {
	down   bool
	shift  bool
	repeat bool
	action input.Action
}

type shortcutFunc func(m *Manager, s shortcutState)

// shortcuts maps a key to its action when the shortcut modifiers are held.
var shortcuts = map[input.Keycode]shortcutFunc{
	input.KeyH:         navigation(control.AKeycodeHome, "HOME"),
	input.KeyB:         (*Manager).shortcutBack,
	input.KeyBackspace: (*Manager).shortcutBack,
	input.KeyS:         navigation(control.AKeycodeAppSwitch, "APP_SWITCH"),
	input.KeyM:         navigation(control.AKeycodeMenu, "MENU"),
	input.KeyP:         navigation(control.AKeycodePower, "POWER"),
	input.KeyO:         (*Manager).shortcutScreenPower,
	input.KeyDown:      volume(control.AKeycodeVolumeDown, "VOLUME_DOWN"),
	input.KeyUp:        volume(control.AKeycodeVolumeUp, "VOLUME_UP"),
	input.KeyLeft:      rotation(geom.Orientation270),
	input.KeyRight:     rotation(geom.Orientation90),
	input.KeyC:         getClipboard(control.CopyKeyCopy),
	input.KeyX:         getClipboard(control.CopyKeyCut),
	input.KeyV:         (*Manager).shortcutPaste,
	input.KeyF:         local((Screen).SwitchFullscreen),
	input.KeyW:         local((Screen).ResizeToFit),
	input.KeyG:         local((Screen).ResizeToPixelPerfect),
	input.KeyI:         local((Screen).ToggleFPSCounter),
	input.KeyN:         (*Manager).shortcutPanels,
	input.KeyR:         (*Manager).shortcutRotateDevice,
}

func (m *Manager) processTextInput(evt input.Event) {
	tp, ok := m.kp.(input.TextProcessor)
	if !ok {
		return
	}
	if m.matcher.Match(evt.Mod) {
		// a shortcut never produces text
		return
	}
	tp.ProcessText(input.TextEvent{Text: evt.Text})
}

func (m *Manager) processKey(evt input.Event, mouseCapture bool) {
	down := evt.Type == input.EventKeyDown

	if down && !evt.Repeat {
		if evt.Key == m.lastKey && evt.Mod == m.lastMod {
			m.keyRepeat++
		} else {
			m.keyRepeat = 0
			m.lastKey = evt.Key
			m.lastMod = evt.Mod
		}
	}

	if mouseCapture {
		// unmapped keys are dropped
		m.joystick.HandleKey(evt.Key, down, evt.Repeat)
		return
	}

	if m.matcher.Match(evt.Mod) {
		s := shortcutState{
			down:   down,
			shift:  evt.Mod.HasShift(),
			repeat: evt.Repeat,
			action: input.ActionUp,
		}
		if down {
			s.action = input.ActionDown
		}
		if fn, ok := shortcuts[evt.Key]; ok {
			fn(m, s)
		}
		return
	}

	if m.controller == nil {
		return
	}

	ackToWait := control.SequenceInvalid
	isCtrlV := evt.Mod.HasCtrl() && !evt.Mod.HasShift() && evt.Key == input.KeyV && down && !evt.Repeat
	if m.clipboardAutosync && isCtrlV {
		if m.legacyPaste {
			m.clipboardPaste()
			return
		}

		sequence := control.SequenceInvalid
		if m.kp.AsyncPaste() {
			sequence = m.nextSequence
		}
		// sync the local clipboard before the device handles Ctrl+V
		switch m.setDeviceClipboard(false, sequence) {
		case clipboardRejected:
			log.Warn().Msg("Clipboard could not be synchronized, Ctrl+v not injected")
			return
		case clipboardSent:
			if m.kp.AsyncPaste() {
				ackToWait = sequence
				m.nextSequence++
			}
		}
	}

	action := input.ActionUp
	if down {
		action = input.ActionDown
	}
	m.kp.ProcessKey(input.KeyEvent{
		Action:   action,
		Key:      evt.Key,
		Scancode: evt.Scancode,
		Repeat:   evt.Repeat,
		Mods:     evt.Mod,
	}, ackToWait)
}

func (m *Manager) sendKeycode(keycode control.AKeycode, action input.Action, name string) {
	msg := control.InjectKeycode{Action: control.AKeyEventActionDown, Keycode: keycode}
	if action == input.ActionUp {
		msg.Action = control.AKeyEventActionUp
	}
	if !m.controller.PushMsg(msg) {
		log.Warn().Msgf("Could not request 'inject %s'", name)
	}
}

func (m *Manager) push(msg control.Msg, what string) bool {
	if !m.controller.PushMsg(msg) {
		log.Warn().Msgf("Could not request '%s'", what)
		return false
	}
	return true
}

func navigation(keycode control.AKeycode, name string) shortcutFunc {
	return func(m *Manager, s shortcutState) {
		if m.controller != nil && !s.shift && !s.repeat {
			m.sendKeycode(keycode, s.action, name)
		}
	}
}

// volume keys are forwarded on every repeat; Shift flips vertically
func volume(keycode control.AKeycode, name string) shortcutFunc {
	return func(m *Manager, s shortcutState) {
		if s.shift {
			if !s.repeat && s.down {
				m.applyOrientation(geom.OrientationFlip180)
			}
			return
		}
		if m.controller != nil {
			m.sendKeycode(keycode, s.action, name)
		}
	}
}

func rotation(t geom.Orientation) shortcutFunc {
	return func(m *Manager, s shortcutState) {
		if s.repeat || !s.down {
			return
		}
		if s.shift {
			m.applyOrientation(geom.OrientationFlip0)
		} else {
			m.applyOrientation(t)
		}
	}
}

func getClipboard(key control.CopyKey) shortcutFunc {
	return func(m *Manager, s shortcutState) {
		if m.controller != nil && !s.shift && !s.repeat && s.down {
			m.push(control.GetClipboard{CopyKey: key}, "get device clipboard")
		}
	}
}

func local(fn func(Screen)) shortcutFunc {
	return func(m *Manager, s shortcutState) {
		if !s.shift && !s.repeat && s.down {
			fn(m.screen)
		}
	}
}

func (m *Manager) shortcutBack(s shortcutState) {
	if m.controller != nil && !s.shift && !s.repeat {
		m.pressBackOrTurnScreenOn(s.action)
	}
}

func (m *Manager) pressBackOrTurnScreenOn(action input.Action) {
	msg := control.BackOrScreenOn{Action: control.AKeyEventActionDown}
	if action == input.ActionUp {
		msg.Action = control.AKeyEventActionUp
	}
	m.push(msg, "press back or turn screen on")
}

func (m *Manager) shortcutScreenPower(s shortcutState) {
	if m.controller == nil || s.repeat || !s.down {
		return
	}
	mode := control.ScreenPowerModeOff
	if s.shift {
		mode = control.ScreenPowerModeNormal
	}
	m.push(control.SetScreenPowerMode{Mode: mode}, "set screen power mode")
}

func (m *Manager) shortcutPaste(s shortcutState) {
	if m.controller == nil || s.repeat || !s.down {
		return
	}
	if s.shift || m.legacyPaste {
		m.clipboardPaste()
		return
	}
	// sync and paste on the device; acknowledged when the key processor
	// can wait for it
	sequence := control.SequenceInvalid
	if m.kp.AsyncPaste() {
		sequence = m.nextSequence
	}
	if m.setDeviceClipboard(true, sequence) == clipboardSent && sequence != control.SequenceInvalid {
		m.nextSequence++
	}
}

func (m *Manager) shortcutPanels(s shortcutState) {
	if m.controller == nil || s.repeat || !s.down {
		return
	}
	switch {
	case s.shift:
		m.push(control.CollapsePanels{}, "collapse notification panel")
	case m.keyRepeat == 0:
		m.push(control.ExpandNotificationPanel{}, "expand notification panel")
	default:
		m.push(control.ExpandSettingsPanel{}, "expand settings panel")
	}
}

func (m *Manager) shortcutRotateDevice(s shortcutState) {
	if m.controller != nil && !s.shift && !s.repeat && s.down {
		m.push(control.RotateDevice{}, "rotate device")
	}
}

func (m *Manager) applyOrientation(t geom.Orientation) {
	m.screen.SetOrientation(m.screen.Orientation().Apply(t))
}
