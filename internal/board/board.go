package board

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/benbeisheim/duckboard-backend/internal/model"
)

type Options struct {
	Orientation model.Color
	Movable     model.Movable
	Duration    time.Duration
	// OnMove receives the notation of every move completed by pointer input.
	OnMove func(notation string)
	Logger zerolog.Logger
}

// Board owns one rendered board: the current snapshot, the displayed pieces,
// the animation driver and the interaction state. It is not safe for
// concurrent use; a single goroutine must drive it, including the
// Scheduler's callbacks.
type Board struct {
	engine   Engine
	driver   *Driver
	log      zerolog.Logger
	onMove   func(string)
	movable  model.Movable
	flipped  bool
	snapshot model.Snapshot
	pieces   []*DisplayedPiece
	lastMove *model.SimpleMove
	state    state
	dirty    bool
	closed   bool
}

func New(engine Engine, scheduler Scheduler, opts Options) *Board {
	b := &Board{
		engine:  engine,
		log:     opts.Logger,
		onMove:  opts.OnMove,
		movable: opts.Movable,
		flipped: opts.Orientation == model.Black,
		state:   idleState{},
	}
	if b.movable == "" {
		b.movable = model.MovableBoth
	}
	b.driver = NewDriver(scheduler, opts.Duration, func() { b.dirty = true })
	b.snapshot = engine.Snapshot()
	b.pieces = Derive(b.snapshot, b.flipped)
	b.dirty = true
	return b
}

// SetPosition loads a new position into the engine and redraws. A malformed
// position leaves an empty board and returns the parse error.
func (b *Board) SetPosition(fen string) error {
	if b.closed {
		return nil
	}
	err := b.engine.Load(fen)
	if err != nil {
		b.log.Warn().Err(err).Str("fen", fen).Msg("rejecting position")
		_ = b.engine.Load(model.EmptyPosition)
	}
	b.state = idleState{}
	b.lastMove = nil
	b.refresh()
	return err
}

// Sync redraws from the engine after it was changed from outside.
func (b *Board) Sync() {
	if b.closed {
		return
	}
	b.refresh()
}

func (b *Board) SetOrientation(c model.Color) {
	flipped := c == model.Black
	if b.closed || flipped == b.flipped {
		return
	}
	b.flipped = flipped
	b.refresh()
}

func (b *Board) Flip() {
	if b.flipped {
		b.SetOrientation(model.White)
	} else {
		b.SetOrientation(model.Black)
	}
}

func (b *Board) Orientation() model.Color {
	if b.flipped {
		return model.Black
	}
	return model.White
}

// SetMovable changes which sides pointer input may move. A selection the
// new setting forbids is dropped.
func (b *Board) SetMovable(m model.Movable) {
	b.movable = m
	if st, ok := b.state.(*selectedState); ok && !m.Allows(st.piece.Color) {
		b.cancelSelection()
	}
	b.dirty = true
}

func (b *Board) Movable() model.Movable { return b.movable }

func (b *Board) Snapshot() model.Snapshot { return b.snapshot }

func (b *Board) Pieces() []*DisplayedPiece { return b.pieces }

func (b *Board) Animating() bool { return b.driver.Running() }

// Dirty reports whether anything visible changed since the last Render.
func (b *Board) Dirty() bool { return b.dirty }

// Close stops the animation loop. The board ignores input afterwards.
func (b *Board) Close() {
	if b.closed {
		return
	}
	b.closed = true
	b.driver.Stop()
}

// refresh is the whole update pipeline: take the engine snapshot, derive
// fresh pieces, reconcile against the previous frame, restart the driver.
func (b *Board) refresh() {
	b.apply(b.engine.Snapshot())
}

func (b *Board) apply(snap model.Snapshot) {
	b.snapshot = snap
	fresh := Derive(snap, b.flipped)
	b.pieces = Reconcile(b.pieces, fresh)
	b.applyGhost()
	b.driver.Start(b.pieces)
	b.dirty = true
}

// applyGhost marks the piece under the current drag, if any, and pins it to
// the drag offset.
func (b *Board) applyGhost() {
	sq, offset, ok := b.state.ghost()
	for _, p := range b.pieces {
		p.Ghosted = ok && p.Square == sq
		if p.Ghosted {
			p.UpdatePosition(offset)
		}
	}
}

// unghost lets every ghosted piece slide back to its square from wherever
// it was dropped.
func (b *Board) unghost() {
	moved := false
	for _, p := range b.pieces {
		if p.Ghosted {
			p.Ghosted = false
			p.slideFrom(p.ReadPosition())
			moved = moved || p.Animating()
		}
	}
	if moved {
		b.driver.Start(b.pieces)
	}
	b.dirty = true
}
