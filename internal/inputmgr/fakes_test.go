package inputmgr

import (
	"github.com/junsooki/AirDroid/internal/control"
	"github.com/junsooki/AirDroid/internal/filepush"
	"github.com/junsooki/AirDroid/internal/geom"
	"github.com/junsooki/AirDroid/internal/input"
)

type fakeScreen struct {
	orientation geom.Orientation
	frame       geom.Size
	calls       []string
	outside     bool
}

func (s *fakeScreen) Orientation() geom.Orientation       { return s.orientation }
func (s *fakeScreen) SetOrientation(o geom.Orientation)   { s.orientation = o }
func (s *fakeScreen) FrameSize() geom.Size                { return s.frame }
func (s *fakeScreen) ContentSize() geom.Size              { return s.frame }
func (s *fakeScreen) WindowToFrame(x, y int32) geom.Point { return geom.Point{X: x, Y: y} }
func (s *fakeScreen) DrawableToFrame(x, y int32) geom.Point {
	return geom.Point{X: x, Y: y}
}
func (s *fakeScreen) DrawableSize() (int32, int32) {
	return int32(s.frame.Width), int32(s.frame.Height)
}
func (s *fakeScreen) IsInsideContent(x, y int32) bool { return !s.outside }
func (s *fakeScreen) SwitchFullscreen()               { s.calls = append(s.calls, "fullscreen") }
func (s *fakeScreen) ResizeToFit()                    { s.calls = append(s.calls, "fit") }
func (s *fakeScreen) ResizeToPixelPerfect()           { s.calls = append(s.calls, "pixel_perfect") }
func (s *fakeScreen) ToggleFPSCounter()               { s.calls = append(s.calls, "fps") }

type recordingPusher struct {
	msgs   []control.Msg
	reject bool
}

func (p *recordingPusher) PushMsg(msg control.Msg) bool {
	if p.reject {
		return false
	}
	p.msgs = append(p.msgs, msg)
	return true
}

func (p *recordingPusher) take() []control.Msg {
	m := p.msgs
	p.msgs = nil
	return m
}

type keyCall struct {
	evt       input.KeyEvent
	ackToWait uint64
}

type fakeKeyProcessor struct {
	async bool
	keys  []keyCall
	texts []string
}

func (k *fakeKeyProcessor) ProcessKey(evt input.KeyEvent, ackToWait uint64) {
	k.keys = append(k.keys, keyCall{evt, ackToWait})
}
func (k *fakeKeyProcessor) AsyncPaste() bool              { return k.async }
func (k *fakeKeyProcessor) ProcessText(evt input.TextEvent) { k.texts = append(k.texts, evt.Text) }

type fakeMouseProcessor struct {
	relative bool
	motions  []input.MouseMotionEvent
	clicks   []input.MouseClickEvent
	scrolls  []input.MouseScrollEvent
	touches  []input.TouchEvent
}

func (m *fakeMouseProcessor) ProcessMouseMotion(evt input.MouseMotionEvent) {
	m.motions = append(m.motions, evt)
}
func (m *fakeMouseProcessor) ProcessMouseClick(evt input.MouseClickEvent) {
	m.clicks = append(m.clicks, evt)
}
func (m *fakeMouseProcessor) ProcessMouseScroll(evt input.MouseScrollEvent) {
	m.scrolls = append(m.scrolls, evt)
}
func (m *fakeMouseProcessor) ProcessTouch(evt input.TouchEvent) {
	m.touches = append(m.touches, evt)
}
func (m *fakeMouseProcessor) RelativeMode() bool { return m.relative }

type fakeClipboard struct {
	text string
}

func (c *fakeClipboard) Get() (string, bool) { return c.text, true }

type fileRequest struct {
	action filepush.Action
	path   string
}

type fakeFilePusher struct {
	requests []fileRequest
	reject   bool
}

func (f *fakeFilePusher) Request(action filepush.Action, path string) bool {
	if f.reject {
		return false
	}
	f.requests = append(f.requests, fileRequest{action, path})
	return true
}
