// Package geom holds the coordinate types shared by the input pipeline:
// device frame points and sizes, and display orientations.
package geom

import "fmt"

// Point is a pixel position, usually in device frame coordinates.
type Point struct {
	X int32
	Y int32
}

// Size is a width/height pair in pixels.
type Size struct {
	Width  uint16
	Height uint16
}

// Position is a point together with the frame size it refers to. The device
// rescales the point if its own frame size differs (e.g. after a rotation
// the controller has not observed yet).
type Position struct {
	Point      Point
	ScreenSize Size
}

// Mirror reflects p through the center of a frame of size s.
func Mirror(p Point, s Size) Point {
	return Point{
		X: int32(s.Width) - p.X,
		Y: int32(s.Height) - p.Y,
	}
}

// Swap returns the size with width and height exchanged.
func (s Size) Swap() Size {
	return Size{Width: s.Height, Height: s.Width}
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// ParseSize parses "WIDTHxHEIGHT".
func ParseSize(str string) (Size, error) {
	var w, h uint16
	if _, err := fmt.Sscanf(str, "%dx%d", &w, &h); err != nil {
		return Size{}, fmt.Errorf("invalid size %q: %w", str, err)
	}
	if w == 0 || h == 0 {
		return Size{}, fmt.Errorf("invalid size %q: dimensions must be positive", str)
	}
	return Size{Width: w, Height: h}, nil
}
