package duckchess

import "errors"

var (
	ErrNotYourTurn   = errors.New("not your turn")
	ErrNoPiece       = errors.New("no piece at from square")
	ErrIllegalMove   = errors.New("illegal move")
	ErrIllegalDuck   = errors.New("illegal duck placement")
	ErrWrongPhase    = errors.New("wrong turn phase")
	ErrGameOver      = errors.New("game is over")
	ErrBadCheckpoint = errors.New("checkpoint does not belong to this engine")
)
