package board

import (
	"slices"

	"github.com/benbeisheim/duckboard-backend/internal/model"
)

type StateKind string

const (
	StateIdle         StateKind = "idle"
	StateSelected     StateKind = "selected"
	StateAwaitingDuck StateKind = "awaiting-duck"
)

// Pointer is a pointer or touch position normalized to the board element.
// Valid is false for events that carried no coordinates.
type Pointer struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Valid bool    `json:"valid"`
}

func At(x, y float64) Pointer { return Pointer{X: x, Y: y, Valid: true} }

type state interface {
	kind() StateKind
	// ghost names the square of the piece under a drag and where to draw it.
	ghost() (model.Square, model.Offset, bool)
}

type idleState struct{}

func (idleState) kind() StateKind { return StateIdle }

func (idleState) ghost() (model.Square, model.Offset, bool) {
	return model.NoSquare, model.Offset{}, false
}

type selectedState struct {
	piece model.Piece
	dests []model.Square
	drag  model.Offset
}

func (*selectedState) kind() StateKind { return StateSelected }

func (s *selectedState) ghost() (model.Square, model.Offset, bool) {
	return s.piece.Square, s.drag, true
}

// pendingMove is a played piece move still waiting for its duck, with
// everything needed to take it back.
type pendingMove struct {
	intent     model.MoveIntent
	checkpoint any
	snapshot   model.Snapshot
	lastMove   *model.SimpleMove
}

type awaitingDuckState struct {
	pending   pendingMove
	dests     []model.Square
	dragging  bool
	from      model.Square
	drag      model.Offset
	candidate model.Square
}

func (*awaitingDuckState) kind() StateKind { return StateAwaitingDuck }

func (s *awaitingDuckState) ghost() (model.Square, model.Offset, bool) {
	if !s.dragging || !s.from.Valid() {
		return model.NoSquare, model.Offset{}, false
	}
	return s.from, s.drag, true
}

func (b *Board) State() StateKind { return b.state.kind() }

// PointerDown selects a piece of the side to move, or starts dragging the
// duck while its placement is pending.
func (b *Board) PointerDown(p Pointer) {
	if b.closed || !p.Valid {
		return
	}
	sq, ok := model.FromPointer(p.X, p.Y, b.flipped)
	if !ok {
		return
	}

	switch st := b.state.(type) {
	case idleState:
		if b.engine.NeedsDuck() {
			return
		}
		piece, found := b.engine.PieceAt(sq)
		if !found || piece.Role == model.Duck {
			return
		}
		if piece.Color != b.engine.Turn() || !b.movable.Allows(piece.Color) {
			return
		}
		b.state = &selectedState{
			piece: piece,
			dests: b.engine.Dests(sq),
			drag:  model.DragOffset(p.X, p.Y),
		}
		b.applyGhost()
		b.dirty = true

	case *awaitingDuckState:
		if !b.movable.Allows(b.engine.Turn()) {
			return
		}
		duck := b.snapshot.Duck()
		if sq != duck && !slices.Contains(st.dests, sq) {
			return
		}
		st.dragging = true
		st.from = duck
		st.drag = model.DragOffset(p.X, p.Y)
		st.candidate = model.NoSquare
		if slices.Contains(st.dests, sq) {
			st.candidate = sq
		}
		b.applyGhost()
		b.dirty = true
	}
}

// PointerMove drags the ghost. For the duck the square under the pointer is
// checked against the legal set on every move.
func (b *Board) PointerMove(p Pointer) {
	if b.closed || !p.Valid {
		return
	}
	drag := model.DragOffset(p.X, p.Y)

	switch st := b.state.(type) {
	case *selectedState:
		st.drag = drag
	case *awaitingDuckState:
		if !st.dragging {
			return
		}
		st.drag = drag
		st.candidate = model.NoSquare
		if sq, ok := model.FromPointer(p.X, p.Y, b.flipped); ok && slices.Contains(st.dests, sq) {
			st.candidate = sq
		}
	default:
		return
	}
	b.applyGhost()
	b.dirty = true
}

// PointerUp completes the action under way. Dropping anywhere but a legal
// square cancels it.
func (b *Board) PointerUp(p Pointer) {
	if b.closed || !p.Valid {
		return
	}
	sq, ok := model.FromPointer(p.X, p.Y, b.flipped)

	switch st := b.state.(type) {
	case *selectedState:
		if ok && slices.Contains(st.dests, sq) {
			b.commit(st, sq)
			return
		}
		b.cancelSelection()

	case *awaitingDuckState:
		if !st.dragging {
			return
		}
		if ok && slices.Contains(st.dests, sq) {
			b.placeDuck(st, sq)
			return
		}
		st.dragging = false
		st.candidate = model.NoSquare
		b.unghost()
	}
}

func (b *Board) cancelSelection() {
	b.state = idleState{}
	b.unghost()
}

func (b *Board) commit(st *selectedState, to model.Square) {
	intent := model.MoveIntent{From: st.piece.Square, To: to}
	if st.piece.Role == model.Pawn && (to.Y == 0 || to.Y == 7) {
		intent.Promotion = model.Queen
	}
	pending := pendingMove{
		intent:     intent,
		checkpoint: b.engine.Checkpoint(),
		snapshot:   b.snapshot,
		lastMove:   b.lastMove,
	}

	if err := b.engine.Move(intent); err != nil {
		b.log.Debug().Err(err).Str("move", intent.String()).Msg("engine refused move")
		b.cancelSelection()
		return
	}
	b.lastMove = &model.SimpleMove{From: intent.From, To: intent.To}

	// reconcile while the dragged piece is still ghosted so it lands in place
	b.refresh()
	if b.engine.NeedsDuck() {
		b.state = &awaitingDuckState{
			pending:   pending,
			dests:     b.engine.DuckDests(),
			from:      model.NoSquare,
			candidate: model.NoSquare,
		}
	} else {
		b.state = idleState{}
	}
	b.applyGhost()

	if _, ok := b.state.(idleState); ok {
		b.report(model.DuckMove{Move: intent, Duck: model.NoSquare})
	}
}

func (b *Board) placeDuck(st *awaitingDuckState, sq model.Square) {
	if err := b.engine.PlaceDuck(sq); err != nil {
		b.log.Debug().Err(err).Str("duck", sq.String()).Msg("engine refused duck")
		st.dragging = false
		st.candidate = model.NoSquare
		b.unghost()
		return
	}
	b.refresh()
	b.state = idleState{}
	b.applyGhost()
	b.report(model.DuckMove{Move: st.pending.intent, Duck: sq})
}

func (b *Board) report(m model.DuckMove) {
	b.log.Info().Str("move", m.String()).Msg("move completed")
	if b.onMove != nil {
		b.onMove(m.String())
	}
}

// Takeback undoes a piece move whose duck has not been placed yet. It
// reports whether there was anything to undo.
func (b *Board) Takeback() bool {
	st, ok := b.state.(*awaitingDuckState)
	if b.closed || !ok {
		return false
	}
	if err := b.engine.Rewind(st.pending.checkpoint); err != nil {
		b.log.Error().Err(err).Msg("takeback failed")
		return false
	}
	b.lastMove = st.pending.lastMove
	b.state = idleState{}
	b.apply(st.pending.snapshot)
	return true
}

// PerformMove applies a full move given in notation, bypassing pointer input
// and the move callback. Unparseable or illegal moves change nothing. A
// piece move waiting for its duck is discarded in favour of the new move.
func (b *Board) PerformMove(notation string) error {
	if b.closed {
		return nil
	}
	m, err := model.ParseMove(notation)
	if err != nil {
		b.log.Debug().Err(err).Str("notation", notation).Msg("ignoring move")
		return err
	}

	current := b.engine.Checkpoint()
	if st, ok := b.state.(*awaitingDuckState); ok {
		if err := b.engine.Rewind(st.pending.checkpoint); err != nil {
			return err
		}
	}
	if err := b.engine.Play(m); err != nil {
		b.log.Debug().Err(err).Str("notation", notation).Msg("ignoring move")
		if rerr := b.engine.Rewind(current); rerr != nil {
			b.log.Error().Err(rerr).Msg("restoring after refused move")
		}
		return err
	}

	// a dragged piece must be matchable so it slides home from the pointer
	b.state = idleState{}
	b.unghost()
	b.lastMove = &model.SimpleMove{From: m.Move.From, To: m.Move.To}
	b.refresh()
	return nil
}
