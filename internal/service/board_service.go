package service

import (
	"fmt"

	"github.com/benbeisheim/duckboard-backend/internal/board"
	"github.com/benbeisheim/duckboard-backend/internal/model"
)

type BoardService struct {
	sessions *SessionManager
}

func NewBoardService(sessions *SessionManager) *BoardService {
	return &BoardService{sessions: sessions}
}

// CreateRequest describes a new board. Empty fields take defaults: the
// starting position, white at the bottom, both sides movable.
type CreateRequest struct {
	FEN         string `json:"fen"`
	Orientation string `json:"orientation"`
	Movable     string `json:"movable"`
}

type BoardState struct {
	ID    string      `json:"id"`
	FEN   string      `json:"fen"`
	Moves []string    `json:"moves"`
	Frame board.Frame `json:"frame"`
}

func (bs *BoardService) CreateBoard(req CreateRequest) (BoardState, error) {
	orientation, err := model.ParseOrientation(req.Orientation)
	if err != nil {
		return BoardState{}, err
	}
	movable, err := model.ParseMovable(req.Movable)
	if err != nil {
		return BoardState{}, err
	}

	s, err := bs.sessions.Create(Options{FEN: req.FEN, Orientation: orientation, Movable: movable})
	if err != nil {
		return BoardState{}, fmt.Errorf("failed to create board: %w", err)
	}
	return bs.state(s)
}

func (bs *BoardService) GetBoard(id string) (BoardState, error) {
	s, err := bs.sessions.Get(id)
	if err != nil {
		return BoardState{}, err
	}
	return bs.state(s)
}

func (bs *BoardService) state(s *Session) (BoardState, error) {
	frame, err := s.Frame()
	if err != nil {
		return BoardState{}, err
	}
	fen, err := s.FEN()
	if err != nil {
		return BoardState{}, err
	}
	moves, err := s.Moves()
	if err != nil {
		return BoardState{}, err
	}
	if moves == nil {
		moves = []string{}
	}
	return BoardState{ID: s.ID, FEN: fen, Moves: moves, Frame: frame}, nil
}

// SetPosition replaces the position. A malformed one leaves the board empty
// and the error is still returned.
func (bs *BoardService) SetPosition(id, fen string) (BoardState, error) {
	return bs.apply(id, func(s *Session) error { return s.SetPosition(fen) })
}

func (bs *BoardService) PerformMove(id, notation string) (BoardState, error) {
	return bs.apply(id, func(s *Session) error { return s.PerformMove(notation) })
}

func (bs *BoardService) Takeback(id string) (bool, BoardState, error) {
	var undone bool
	state, err := bs.apply(id, func(s *Session) error {
		var err error
		undone, err = s.Takeback()
		return err
	})
	return undone, state, err
}

// SetOrientation turns the board to a color; an empty orientation flips it.
func (bs *BoardService) SetOrientation(id, orientation string) (BoardState, error) {
	if orientation == "" {
		return bs.apply(id, func(s *Session) error { return s.Flip() })
	}
	c, err := model.ParseOrientation(orientation)
	if err != nil {
		return BoardState{}, err
	}
	return bs.apply(id, func(s *Session) error { return s.SetOrientation(c) })
}

func (bs *BoardService) SetMovable(id, movable string) (BoardState, error) {
	m, err := model.ParseMovable(movable)
	if err != nil {
		return BoardState{}, err
	}
	return bs.apply(id, func(s *Session) error { return s.SetMovable(m) })
}

func (bs *BoardService) CloseBoard(id string) error {
	return bs.sessions.Close(id)
}

// Join attaches a viewer to a board.
func (bs *BoardService) Join(id, clientID string) (*Session, *Viewer, error) {
	s, err := bs.sessions.Get(id)
	if err != nil {
		return nil, nil, err
	}
	v, err := s.Join(clientID)
	if err != nil {
		return nil, nil, err
	}
	return s, v, nil
}

func (bs *BoardService) apply(id string, fn func(*Session) error) (BoardState, error) {
	s, err := bs.sessions.Get(id)
	if err != nil {
		return BoardState{}, err
	}
	if err := fn(s); err != nil {
		return BoardState{}, err
	}
	return bs.state(s)
}
