package board

import "github.com/benbeisheim/duckboard-backend/internal/model"

// Animation tracks one axis of a slide. T runs from 0 to 1.
type Animation struct {
	T     float64 `json:"t"`
	Start float64 `json:"start"`
}

// DisplayedPiece is a snapshot piece plus the state needed to draw it while
// it slides. Its offsets belong to the Driver while an animation is active.
type DisplayedPiece struct {
	model.Piece

	target  model.Offset
	current model.Offset

	left *Animation
	top  *Animation

	// Ghosted pieces are drawn as a drag ghost instead of in place.
	Ghosted bool
}

// NewDisplayedPiece places p at its target offset with no animation.
func NewDisplayedPiece(p model.Piece, flipped bool) *DisplayedPiece {
	target := model.ToOffset(p.Square, flipped)
	return &DisplayedPiece{Piece: p, target: target, current: target}
}

func (d *DisplayedPiece) Target() model.Offset { return d.target }

// ReadPosition is the offset the piece is drawn at right now.
func (d *DisplayedPiece) ReadPosition() model.Offset { return d.current }

// UpdatePosition moves the piece directly and drops any running animation.
func (d *DisplayedPiece) UpdatePosition(o model.Offset) {
	d.current = o
	d.left, d.top = nil, nil
}

// Animating is true while either axis still has an animation record.
func (d *DisplayedPiece) Animating() bool {
	return d.left != nil || d.top != nil
}

func (d *DisplayedPiece) Animations() (left, top *Animation) {
	return d.left, d.top
}

// slideFrom starts an animation from start towards the target. Axes already
// at their target get no record.
func (d *DisplayedPiece) slideFrom(start model.Offset) {
	d.current = start
	d.left, d.top = nil, nil
	if start.Left != d.target.Left {
		d.left = &Animation{Start: start.Left}
	}
	if start.Top != d.target.Top {
		d.top = &Animation{Start: start.Top}
	}
}

// advance moves both axes by a fraction of the full duration.
func (d *DisplayedPiece) advance(by float64) {
	d.left = advanceAxis(d.left, by, &d.current.Left, d.target.Left)
	d.top = advanceAxis(d.top, by, &d.current.Top, d.target.Top)
}

func advanceAxis(a *Animation, by float64, value *float64, target float64) *Animation {
	if a == nil {
		return nil
	}
	a.T += by
	if a.T >= 1 {
		*value = target
		return nil
	}
	*value = a.Start + a.T*(target-a.Start)
	return a
}
