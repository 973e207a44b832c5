// Package layout maps between window pixels and device frame coordinates
// for a letterboxed, oriented device picture.
package layout

import (
	"math"

	"github.com/junsooki/AirDroid/internal/geom"
)

// Rect is a rectangle in window coordinates.
type Rect struct {
	X, Y, W, H float64
}

// Contains reports whether (x, y) falls inside r.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Viewport is the device frame shown in a window under an orientation.
type Viewport struct {
	Frame       geom.Size
	Orientation geom.Orientation
	WindowW     int
	WindowH     int
}

// ContentSize is the frame size after the orientation is applied.
func (v Viewport) ContentSize() geom.Size {
	if v.Orientation.IsSwap() {
		return v.Frame.Swap()
	}
	return v.Frame
}

// ContentRect is where the content is drawn: scaled to fit the window and
// centered, with borders on the remaining sides.
func (v Viewport) ContentRect() Rect {
	c := v.ContentSize()
	cw, ch := float64(c.Width), float64(c.Height)
	vw, vh := float64(v.WindowW), float64(v.WindowH)
	if cw == 0 || ch == 0 || vw == 0 || vh == 0 {
		return Rect{}
	}
	scale := math.Min(vw/cw, vh/ch)
	w, h := cw*scale, ch*scale
	return Rect{X: (vw - w) / 2, Y: (vh - h) / 2, W: w, H: h}
}

// WindowToFrame converts a window position into device frame coordinates.
// Positions on the borders map outside the frame.
func (v Viewport) WindowToFrame(x, y int32) geom.Point {
	r := v.ContentRect()
	if r.W == 0 || r.H == 0 {
		return geom.Point{}
	}
	c := v.ContentSize()
	scale := r.W / float64(c.Width)
	cx := int32(math.Floor((float64(x) - r.X) / scale))
	cy := int32(math.Floor((float64(y) - r.Y) / scale))
	fx, fy := geom.Transform(v.Orientation.Inverse(), cx, cy, int32(c.Width), int32(c.Height))
	return geom.Point{X: fx, Y: fy}
}

// IsInsideContent reports whether a window position falls on the content.
func (v Viewport) IsInsideContent(x, y int32) bool {
	return v.ContentRect().Contains(float64(x), float64(y))
}

// FitWindow returns the window size removing the borders around the
// content at the current scale.
func (v Viewport) FitWindow() (w, h int) {
	r := v.ContentRect()
	if r.W == 0 || r.H == 0 {
		return v.WindowW, v.WindowH
	}
	return int(math.Round(r.W)), int(math.Round(r.H))
}

// PixelPerfectWindow returns the window size showing one frame pixel per
// window pixel.
func (v Viewport) PixelPerfectWindow() (w, h int) {
	c := v.ContentSize()
	return int(c.Width), int(c.Height)
}

// OptimalWindow returns the largest window with the content aspect ratio
// fitting in maxW x maxH.
func OptimalWindow(content geom.Size, maxW, maxH int) (w, h int) {
	cw, ch := float64(content.Width), float64(content.Height)
	if cw == 0 || ch == 0 {
		return maxW, maxH
	}
	scale := math.Min(float64(maxW)/cw, float64(maxH)/ch)
	return int(math.Round(cw * scale)), int(math.Round(ch * scale))
}
