package board

import "github.com/benbeisheim/duckboard-backend/internal/model"

// PieceView is one piece element: a CSS class and a translate offset.
type PieceView struct {
	Role   model.Role   `json:"role"`
	Color  model.Color  `json:"color,omitempty"`
	Class  string       `json:"class"`
	Square string       `json:"square"`
	Offset model.Offset `json:"offset"`
	Ghost  bool         `json:"ghost,omitempty"`
}

// Mark highlights a square.
type Mark struct {
	Square string       `json:"square"`
	Offset model.Offset `json:"offset"`
}

// Frame is everything the browser needs to draw the board.
type Frame struct {
	Orientation   model.Color   `json:"orientation"`
	Files         []string      `json:"files"`
	Ranks         []string      `json:"ranks"`
	Turn          model.Color   `json:"turn"`
	State         StateKind     `json:"state"`
	Movable       model.Movable `json:"movable"`
	Pieces        []PieceView   `json:"pieces"`
	Dests         []Mark        `json:"dests"`
	Selected      *Mark         `json:"selected,omitempty"`
	LastMove      []Mark        `json:"lastMove,omitempty"`
	DuckCandidate *Mark         `json:"duckCandidate,omitempty"`
	Ghost         *PieceView    `json:"ghost,omitempty"`
	Animating     bool          `json:"animating"`
}

// Class is the CSS class list for a piece, e.g. "knight white" or "duck".
func Class(p model.Piece) string {
	if p.Role == model.Duck {
		return string(model.Duck)
	}
	return string(p.Role) + " " + string(p.Color)
}

func (b *Board) mark(sq model.Square) Mark {
	return Mark{Square: sq.String(), Offset: model.ToOffset(sq, b.flipped)}
}

func (b *Board) marks(squares []model.Square) []Mark {
	out := make([]Mark, 0, len(squares))
	for _, sq := range squares {
		out = append(out, b.mark(sq))
	}
	return out
}

// Render draws the current state and clears the dirty flag.
func (b *Board) Render() Frame {
	f := Frame{
		Orientation: b.Orientation(),
		Files:       model.FileLabels(b.flipped),
		Ranks:       model.RankLabels(b.flipped),
		Turn:        b.engine.Turn(),
		State:       b.state.kind(),
		Movable:     b.movable,
		Pieces:      make([]PieceView, 0, len(b.pieces)),
		Dests:       []Mark{},
		Animating:   b.driver.Running(),
	}

	for _, p := range b.pieces {
		v := PieceView{
			Role:   p.Role,
			Color:  p.Color,
			Class:  Class(p.Piece),
			Square: p.Square.String(),
			Offset: p.ReadPosition(),
			Ghost:  p.Ghosted,
		}
		f.Pieces = append(f.Pieces, v)
		if p.Ghosted {
			ghost := v
			f.Ghost = &ghost
		}
	}

	switch st := b.state.(type) {
	case *selectedState:
		f.Dests = b.marks(st.dests)
		sel := b.mark(st.piece.Square)
		f.Selected = &sel
	case *awaitingDuckState:
		f.Dests = b.marks(st.dests)
		if st.candidate.Valid() {
			c := b.mark(st.candidate)
			f.DuckCandidate = &c
		}
	}

	if b.lastMove != nil {
		f.LastMove = b.marks([]model.Square{b.lastMove.From, b.lastMove.To})
	}

	b.dirty = false
	return f
}
