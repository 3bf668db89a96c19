package board

import "github.com/benbeisheim/duckboard-backend/internal/model"

// Engine is the chess-logic collaborator. The board never checks chess
// rules itself beyond membership in the destination sets returned here.
type Engine interface {
	Load(fen string) error
	Turn() model.Color
	Snapshot() model.Snapshot
	PieceAt(sq model.Square) (model.Piece, bool)

	// Dests lists where the piece on from may go this turn.
	Dests(from model.Square) []model.Square
	// Move plays the piece half of a turn.
	Move(m model.MoveIntent) error
	// NeedsDuck reports whether a duck placement is pending.
	NeedsDuck() bool
	DuckDests() []model.Square
	PlaceDuck(sq model.Square) error
	// Play applies a full turn atomically.
	Play(m model.DuckMove) error

	Checkpoint() any
	Rewind(cp any) error
}
