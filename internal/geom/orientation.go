package geom

import (
	"fmt"
	"strings"
)

// Orientation is a display orientation: a rotation (clockwise, in quarter
// turns) optionally preceded by a horizontal flip.
//
// Bits 0-1 hold the rotation, bit 2 the flip.
type Orientation uint8

const (
	Orientation0 Orientation = iota
	Orientation90
	Orientation180
	Orientation270
	OrientationFlip0
	OrientationFlip90
	OrientationFlip180
	OrientationFlip270
)

const (
	orientationRotationMask = 3
	orientationFlipBit      = 4
)

var orientationNames = [...]string{
	"0", "90", "180", "270", "flip0", "flip90", "flip180", "flip270",
}

// Valid reports whether o is one of the eight orientations.
func (o Orientation) Valid() bool {
	return o <= OrientationFlip270
}

func (o Orientation) mustBeValid() {
	if !o.Valid() {
		panic(fmt.Sprintf("geom: invalid orientation %d", uint8(o)))
	}
}

// Rotation returns the clockwise rotation in quarter turns (0..3).
func (o Orientation) Rotation() uint8 {
	return uint8(o) & orientationRotationMask
}

// IsFlipped reports whether the orientation includes a horizontal flip.
func (o Orientation) IsFlipped() bool {
	return o&orientationFlipBit != 0
}

// IsSwap reports whether the orientation exchanges width and height.
func (o Orientation) IsSwap() bool {
	return o.Rotation()&1 != 0
}

// Apply composes transform t onto o. Rotating an already rotated display by
// 90 degrees, or flipping it, goes through here.
func (o Orientation) Apply(t Orientation) Orientation {
	o.mustBeValid()
	t.mustBeValid()

	srcFlip := uint8(o) & orientationFlipBit
	srcRotation := o.Rotation()
	tFlip := uint8(t) & orientationFlipBit
	tRotation := t.Rotation()

	if srcRotation&1 != 0 && tFlip != 0 {
		// hflip1 x rotate1 x hflip2 x rotate2 must be reordered so that
		// all flips come first; moving hflip2 left across a quarter turn
		// costs an extra half turn.
		srcRotation += 2
	}

	return Orientation((srcFlip ^ tFlip) | ((srcRotation + tRotation) % 4))
}

// Inverse returns the orientation undoing o. Flipped orientations are their
// own inverse.
func (o Orientation) Inverse() Orientation {
	o.mustBeValid()
	if o.IsFlipped() {
		return o
	}
	return Orientation((4 - o.Rotation()) % 4)
}

func (o Orientation) String() string {
	if !o.Valid() {
		return fmt.Sprintf("Orientation(%d)", uint8(o))
	}
	return orientationNames[o]
}

// ParseOrientation parses the names produced by String.
func ParseOrientation(s string) (Orientation, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range orientationNames {
		if name == s {
			return Orientation(i), nil
		}
	}
	return 0, fmt.Errorf("unknown orientation %q", s)
}

// Transform maps (x, y) in a width x height content area into the
// orientation's frame. For swapping orientations the result lives in a
// height x width area.
//
// An orientation outside the eight defined values is a programming error and
// panics.
func Transform(o Orientation, x, y, width, height int32) (int32, int32) {
	switch o {
	case Orientation0:
		return x, y
	case Orientation90:
		return y, width - x
	case Orientation180:
		return width - x, height - y
	case Orientation270:
		return height - y, x
	case OrientationFlip0:
		return width - x, y
	case OrientationFlip90:
		return height - y, width - x
	case OrientationFlip180:
		return x, height - y
	case OrientationFlip270:
		return y, x
	default:
		panic(fmt.Sprintf("geom: invalid orientation %d", uint8(o)))
	}
}

// TransformNormalized scales a normalized [0,1]x[0,1] point to the content
// size and transforms it.
func TransformNormalized(o Orientation, nx, ny float64, content Size) Point {
	w := int32(content.Width)
	h := int32(content.Height)
	x, y := Transform(o, int32(nx*float64(w)), int32(ny*float64(h)), w, h)
	return Point{X: x, Y: y}
}
