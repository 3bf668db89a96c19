package model

import "fmt"

type Color string

const (
	White   Color = "white"
	Black   Color = "black"
	NoColor Color = ""
)

func (c Color) Opposite() Color {
	switch c {
	case White:
		return Black
	case Black:
		return White
	}
	return NoColor
}

// ParseOrientation accepts "white" or "black"; empty means white.
func ParseOrientation(s string) (Color, error) {
	switch Color(s) {
	case White, NoColor:
		return White, nil
	case Black:
		return Black, nil
	}
	return NoColor, fmt.Errorf("%w: orientation %q", ErrMalformedValue, s)
}

// Movable restricts which sides a viewer may move for.
type Movable string

const (
	MovableBoth  Movable = "both"
	MovableWhite Movable = "white"
	MovableBlack Movable = "black"
	MovableNone  Movable = "none"
)

func ParseMovable(s string) (Movable, error) {
	switch Movable(s) {
	case "", MovableBoth:
		return MovableBoth, nil
	case MovableWhite, MovableBlack, MovableNone:
		return Movable(s), nil
	}
	return MovableNone, fmt.Errorf("%w: movable %q", ErrMalformedValue, s)
}

// Allows reports whether pieces of color c may be picked up.
func (m Movable) Allows(c Color) bool {
	switch m {
	case MovableBoth:
		return c == White || c == Black
	case MovableWhite:
		return c == White
	case MovableBlack:
		return c == Black
	}
	return false
}
