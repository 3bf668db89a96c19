package service

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/benbeisheim/duckboard-backend/internal/board"
	"github.com/benbeisheim/duckboard-backend/internal/duckchess"
	"github.com/benbeisheim/duckboard-backend/internal/model"
	"github.com/benbeisheim/duckboard-backend/internal/ws"
)

const (
	DefaultFrameInterval = 16 * time.Millisecond

	eventBuffer  = 64
	viewerBuffer = 32
)

type Options struct {
	FEN           string
	Orientation   model.Color
	Movable       model.Movable
	Duration      time.Duration
	FrameInterval time.Duration
	Logger        zerolog.Logger
}

// Viewer is one connection watching a session. Send is closed by the session
// when the viewer leaves, is dropped for falling behind, or the session ends.
type Viewer struct {
	ID   string
	Send chan []byte
}

// Session hosts one board on its own goroutine. Every pointer event, host
// command and animation frame runs on that goroutine, so the board itself
// needs no locking.
type Session struct {
	ID string

	log       zerolog.Logger
	game      *duckchess.Game
	board     *board.Board
	scheduler *loopScheduler

	events    chan func()
	quit      chan struct{}
	done      chan struct{}
	closeOnce sync.Once

	// loop-owned
	viewers map[*Viewer]bool
	frame   board.Frame
	moves   []string
}

// NewSession starts a session. An empty FEN selects the starting position.
func NewSession(id string, opts Options) (*Session, error) {
	fen := opts.FEN
	if fen == "" {
		fen = model.StartingPosition
	}
	game, err := duckchess.New(fen)
	if err != nil {
		return nil, err
	}
	interval := opts.FrameInterval
	if interval <= 0 {
		interval = DefaultFrameInterval
	}

	s := &Session{
		ID:      id,
		log:     opts.Logger.With().Str("board", id).Logger(),
		game:    game,
		events:  make(chan func(), eventBuffer),
		quit:    make(chan struct{}),
		done:    make(chan struct{}),
		viewers: make(map[*Viewer]bool),
	}
	s.scheduler = newLoopScheduler(interval, s.post)
	s.board = board.New(game, s.scheduler, board.Options{
		Orientation: opts.Orientation,
		Movable:     opts.Movable,
		Duration:    opts.Duration,
		OnMove:      s.moveCompleted,
		Logger:      s.log,
	})
	s.frame = s.board.Render()

	go s.run()
	s.log.Info().Str("fen", fen).Msg("board session started")
	return s, nil
}

func (s *Session) run() {
	defer close(s.done)
	for {
		select {
		case fn := <-s.events:
			fn()
			s.flush()
		case <-s.quit:
			s.teardown()
			return
		}
	}
}

func (s *Session) post(fn func()) bool {
	select {
	case <-s.quit:
		return false
	default:
	}
	select {
	case s.events <- fn:
		return true
	case <-s.quit:
		return false
	}
}

// do runs fn on the loop and waits for its result.
func (s *Session) do(fn func() error) error {
	res := make(chan error, 1)
	if !s.post(func() { res <- fn() }) {
		return ErrSessionClosed
	}
	select {
	case err := <-res:
		return err
	case <-s.done:
		return ErrSessionClosed
	}
}

// flush broadcasts a new frame if anything changed.
func (s *Session) flush() {
	if !s.board.Dirty() {
		return
	}
	s.frame = s.board.Render()
	msg, err := ws.Encode(ws.MessageTypeFrame, s.frame)
	if err != nil {
		s.log.Error().Err(err).Msg("encoding frame")
		return
	}
	s.broadcast(msg)
}

func (s *Session) broadcast(msg []byte) {
	for v := range s.viewers {
		s.send(v, msg)
	}
}

func (s *Session) send(v *Viewer, msg []byte) {
	if !s.viewers[v] {
		return
	}
	select {
	case v.Send <- msg:
	default:
		s.log.Warn().Str("viewer", v.ID).Msg("dropping unresponsive viewer")
		s.drop(v)
	}
}

func (s *Session) drop(v *Viewer) {
	if !s.viewers[v] {
		return
	}
	delete(s.viewers, v)
	close(v.Send)
}

func (s *Session) moveCompleted(notation string) {
	s.moves = append(s.moves, notation)
	msg, err := ws.Encode(ws.MessageTypeMove, ws.MovePayload{Notation: notation})
	if err != nil {
		s.log.Error().Err(err).Msg("encoding move")
		return
	}
	s.broadcast(msg)
}

func (s *Session) teardown() {
	s.board.Close()
	s.scheduler.stopAll()
	for v := range s.viewers {
		s.drop(v)
	}
	s.log.Info().Msg("board session closed")
}

// Close stops the loop and disconnects every viewer. It waits for the loop
// to exit and is safe to call more than once.
func (s *Session) Close() {
	s.closeOnce.Do(func() { close(s.quit) })
	<-s.done
}

func (s *Session) Done() <-chan struct{} { return s.done }

// Join registers a viewer and queues the current frame for it.
func (s *Session) Join(id string) (*Viewer, error) {
	v := &Viewer{ID: id, Send: make(chan []byte, viewerBuffer)}
	err := s.do(func() error {
		msg, err := ws.Encode(ws.MessageTypeFrame, s.frame)
		if err != nil {
			return err
		}
		s.viewers[v] = true
		s.send(v, msg)
		s.log.Debug().Str("viewer", id).Int("viewers", len(s.viewers)).Msg("viewer joined")
		return nil
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (s *Session) Leave(v *Viewer) {
	_ = s.do(func() error {
		s.drop(v)
		return nil
	})
}

// Reply sends msg to a single viewer.
func (s *Session) Reply(v *Viewer, msg []byte) error {
	return s.do(func() error {
		s.send(v, msg)
		return nil
	})
}

// Frame is the latest frame, rendered now if anything changed.
func (s *Session) Frame() (board.Frame, error) {
	var f board.Frame
	err := s.do(func() error {
		s.flush()
		f = s.frame
		return nil
	})
	return f, err
}

// Moves lists the moves completed by pointer input, in order.
func (s *Session) Moves() ([]string, error) {
	var moves []string
	err := s.do(func() error {
		moves = append(moves, s.moves...)
		return nil
	})
	return moves, err
}

func (s *Session) FEN() (string, error) {
	var fen string
	err := s.do(func() error {
		fen = s.game.FEN()
		return nil
	})
	return fen, err
}

func (s *Session) Pointer(kind ws.PointerKind, p board.Pointer) error {
	return s.do(func() error {
		switch kind {
		case ws.PointerDown:
			s.board.PointerDown(p)
		case ws.PointerMove:
			s.board.PointerMove(p)
		case ws.PointerUp:
			s.board.PointerUp(p)
		default:
			return ErrUnknownPointer
		}
		return nil
	})
}

func (s *Session) SetPosition(fen string) error {
	return s.do(func() error { return s.board.SetPosition(fen) })
}

func (s *Session) PerformMove(notation string) error {
	return s.do(func() error { return s.board.PerformMove(notation) })
}

// Takeback reports whether a pending half-move was undone.
func (s *Session) Takeback() (bool, error) {
	var undone bool
	err := s.do(func() error {
		undone = s.board.Takeback()
		return nil
	})
	return undone, err
}

func (s *Session) SetOrientation(c model.Color) error {
	return s.do(func() error {
		s.board.SetOrientation(c)
		return nil
	})
}

func (s *Session) Flip() error {
	return s.do(func() error {
		s.board.Flip()
		return nil
	})
}

func (s *Session) SetMovable(m model.Movable) error {
	return s.do(func() error {
		s.board.SetMovable(m)
		return nil
	})
}
