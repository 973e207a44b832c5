// Package display is the local window: it captures raw input, owns the
// display orientation and maps window positions onto the device frame.
package display

import (
	"github.com/junsooki/AirDroid/internal/geom"
	"github.com/junsooki/AirDroid/internal/input"
)

// Display runs the window main loop.
type Display interface {
	Run() error
}

// EventHandler consumes the captured input, typically an inputmgr.Manager.
type EventHandler interface {
	HandleEvent(evt input.Event, mouseCapture bool)
	// ReleaseCapture is called when leaving mouse capture mode.
	ReleaseCapture()
}

// Options configures an EbitenDisplay.
type Options struct {
	Title      string
	FrameSize  geom.Size
	CaptureKey input.Keycode
	// MaxWindow bounds the initial window size.
	MaxWindowW int
	MaxWindowH int
}
