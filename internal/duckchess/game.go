package duckchess

import (
	"fmt"
	"slices"
	"strings"

	"github.com/benbeisheim/duckboard-backend/internal/model"
)

type Phase string

const (
	PhaseMove Phase = "move"
	PhaseDuck Phase = "duck"
	PhaseOver Phase = "over"
)

// Result explains how a finished game ended.
type Result struct {
	Winner model.Color `json:"winner"`
	Reason string      `json:"reason"`
}

type cell struct {
	role     model.Role
	color    model.Color
	hasMoved bool
}

func (c cell) empty() bool { return c.role == "" }

// Game is a duck chess position plus turn bookkeeping. It is a plain value:
// copying it yields an independent checkpoint.
type Game struct {
	board     [8][8]cell
	turn      model.Color
	phase     Phase
	duck      model.Square
	enPassant model.Square
	lastMove  *model.MoveIntent
	history   []model.DuckMove
	result    *Result
}

// New loads a position. The placement field is required; an optional second
// field ("w" or "b") selects the side to move.
func New(fen string) (*Game, error) {
	g := &Game{}
	if err := g.Load(fen); err != nil {
		return nil, err
	}
	return g, nil
}

// Load replaces the whole game state. On error the game is reset to an
// empty board with white to move.
func (g *Game) Load(fen string) error {
	*g = Game{turn: model.White, phase: PhaseMove, duck: model.NoSquare, enPassant: model.NoSquare}

	pieces, err := model.Parse(fen)
	if err != nil {
		return err
	}
	fields := strings.Fields(fen)
	if len(fields) > 1 {
		switch fields[1] {
		case "w":
		case "b":
			g.turn = model.Black
		default:
			return fmt.Errorf("%w: side to move %q", model.ErrMalformedPosition, fields[1])
		}
	}

	for _, p := range pieces {
		if p.Role == model.Duck {
			g.duck = p.Square
			continue
		}
		g.board[p.Square.Y][p.Square.X] = cell{role: p.Role, color: p.Color, hasMoved: !onHomeSquare(p)}
	}
	return nil
}

// onHomeSquare decides castling and double-push rights for a freshly loaded
// position, which carries no move history.
func onHomeSquare(p model.Piece) bool {
	home := 7
	if p.Color == model.Black {
		home = 0
	}
	switch p.Role {
	case model.King:
		return p.Square == model.Square{X: 4, Y: home}
	case model.Rook:
		return p.Square.Y == home && (p.Square.X == 0 || p.Square.X == 7)
	case model.Pawn:
		if p.Color == model.White {
			return p.Square.Y == 6
		}
		return p.Square.Y == 1
	}
	return true
}

func (g *Game) Turn() model.Color { return g.turn }

func (g *Game) Phase() Phase { return g.phase }

// NeedsDuck reports whether the current turn is waiting for a duck placement.
func (g *Game) NeedsDuck() bool { return g.phase == PhaseDuck }

func (g *Game) Duck() model.Square { return g.duck }

func (g *Game) Result() *Result { return g.result }

func (g *Game) LastMove() *model.MoveIntent { return g.lastMove }

func (g *Game) History() []model.DuckMove { return slices.Clone(g.history) }

func (g *Game) PieceAt(sq model.Square) (model.Piece, bool) {
	if !sq.Valid() {
		return model.Piece{}, false
	}
	if sq == g.duck {
		return model.Piece{Role: model.Duck, Square: sq}, true
	}
	c := g.board[sq.Y][sq.X]
	if c.empty() {
		return model.Piece{}, false
	}
	return model.Piece{Role: c.role, Color: c.color, Square: sq}, true
}

// Pieces lists every piece rank 8 first, a to h, the duck included.
func (g *Game) Pieces() []model.Piece {
	pieces := []model.Piece{}
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if p, ok := g.PieceAt(model.Square{X: x, Y: y}); ok {
				pieces = append(pieces, p)
			}
		}
	}
	return pieces
}

func (g *Game) Snapshot() model.Snapshot {
	return model.NewSnapshot(g.Pieces())
}

// FEN writes the placement field and side to move.
func (g *Game) FEN() string {
	side := "w"
	if g.turn == model.Black {
		side = "b"
	}
	return model.Serialize(g.Pieces()) + " " + side
}

// Dests lists the squares the piece on from may move to this turn.
func (g *Game) Dests(from model.Square) []model.Square {
	if g.phase != PhaseMove || !from.Valid() {
		return nil
	}
	c := g.board[from.Y][from.X]
	if c.empty() || c.color != g.turn {
		return nil
	}
	var dests []model.Square
	for _, m := range g.pseudoMoves(from) {
		dests = append(dests, m.To)
	}
	return dests
}

// DuckDests lists where the duck may go: any empty square other than the one
// it stands on.
func (g *Game) DuckDests() []model.Square {
	if g.phase != PhaseDuck {
		return nil
	}
	var dests []model.Square
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			sq := model.Square{X: x, Y: y}
			if sq != g.duck && g.board[y][x].empty() {
				dests = append(dests, sq)
			}
		}
	}
	return dests
}

// Move plays the piece half of a turn.
func (g *Game) Move(m model.MoveIntent) error {
	switch g.phase {
	case PhaseOver:
		return ErrGameOver
	case PhaseDuck:
		return fmt.Errorf("%w: duck placement pending", ErrWrongPhase)
	}
	if !m.From.Valid() || !m.To.Valid() {
		return fmt.Errorf("%w: %s", ErrIllegalMove, m)
	}
	c := g.board[m.From.Y][m.From.X]
	if c.empty() {
		return fmt.Errorf("%w: %s", ErrNoPiece, m.From)
	}
	if c.color != g.turn {
		return ErrNotYourTurn
	}
	if !slices.Contains(g.Dests(m.From), m.To) {
		return fmt.Errorf("%w: %s", ErrIllegalMove, m)
	}
	if m.Promotion != "" && (c.role != model.Pawn || !lastRank(m.To, c.color) || !promotable(m.Promotion)) {
		return fmt.Errorf("%w: %s cannot promote", ErrIllegalMove, m)
	}

	g.executeMove(m)
	return nil
}

// PlaceDuck finishes the turn.
func (g *Game) PlaceDuck(sq model.Square) error {
	if g.phase != PhaseDuck {
		return fmt.Errorf("%w: no duck placement pending", ErrWrongPhase)
	}
	if !slices.Contains(g.DuckDests(), sq) {
		return fmt.Errorf("%w: %s", ErrIllegalDuck, sq)
	}
	g.duck = sq
	if n := len(g.history); n > 0 {
		g.history[n-1].Duck = sq
	}
	g.switchTurn()
	g.phase = PhaseMove

	// duck chess has no stalemate: a side without moves wins
	if g.isNoLegalMoves(g.turn) {
		g.result = &Result{Winner: g.turn, Reason: "stalemate"}
		g.phase = PhaseOver
	}
	return nil
}

// Play applies a whole turn atomically. On any error the game is unchanged.
func (g *Game) Play(m model.DuckMove) error {
	saved := g.checkpoint()
	if err := g.Move(m.Move); err != nil {
		return err
	}
	if g.phase == PhaseOver {
		// no duck step once a king falls
		return nil
	}
	if err := g.PlaceDuck(m.Duck); err != nil {
		*g = saved
		return err
	}
	return nil
}

type checkpoint struct {
	game Game
}

// Checkpoint captures the full state for a later Rewind.
func (g *Game) Checkpoint() any {
	return checkpoint{game: g.checkpoint()}
}

func (g *Game) checkpoint() Game {
	c := *g
	c.history = slices.Clone(g.history)
	if g.lastMove != nil {
		lm := *g.lastMove
		c.lastMove = &lm
	}
	if g.result != nil {
		r := *g.result
		c.result = &r
	}
	return c
}

func (g *Game) Rewind(cp any) error {
	c, ok := cp.(checkpoint)
	if !ok {
		return ErrBadCheckpoint
	}
	*g = c.game
	g.history = slices.Clone(c.game.history)
	return nil
}

func (g *Game) executeMove(m model.MoveIntent) {
	piece := g.board[m.From.Y][m.From.X]
	captured := g.board[m.To.Y][m.To.X]

	g.board[m.From.Y][m.From.X] = cell{}
	piece.hasMoved = true
	if piece.role == model.Pawn && lastRank(m.To, piece.color) {
		piece.role = m.Promotion
		if piece.role == "" {
			piece.role = model.Queen
		}
		m.Promotion = piece.role
	}
	g.board[m.To.Y][m.To.X] = piece

	if piece.role == model.King {
		g.handleCastle(m)
	}
	if piece.role == model.Pawn {
		g.handleEnPassant(m)
	} else {
		g.enPassant = model.NoSquare
	}

	lm := m
	g.lastMove = &lm
	g.history = append(g.history, model.DuckMove{Move: m, Duck: model.NoSquare})

	if captured.role == model.King {
		g.result = &Result{Winner: piece.color, Reason: "king captured"}
		g.phase = PhaseOver
		return
	}
	g.phase = PhaseDuck
}

func (g *Game) handleEnPassant(m model.MoveIntent) {
	if m.To == g.enPassant {
		// the captured pawn sits behind the target square
		g.board[m.From.Y][m.To.X] = cell{}
	}
	switch m.To.Y - m.From.Y {
	case 2:
		g.enPassant = model.Square{X: m.To.X, Y: m.To.Y - 1}
	case -2:
		g.enPassant = model.Square{X: m.To.X, Y: m.To.Y + 1}
	default:
		g.enPassant = model.NoSquare
	}
}

func (g *Game) handleCastle(m model.MoveIntent) {
	if abs(m.From.X-m.To.X) != 2 {
		return
	}
	y := m.From.Y
	switch m.To.X {
	case 2:
		rook := g.board[y][0]
		rook.hasMoved = true
		g.board[y][0] = cell{}
		g.board[y][3] = rook
	case 6:
		rook := g.board[y][7]
		rook.hasMoved = true
		g.board[y][7] = cell{}
		g.board[y][5] = rook
	}
}

func (g *Game) switchTurn() {
	g.turn = g.turn.Opposite()
}

func (g *Game) isNoLegalMoves(color model.Color) bool {
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			c := g.board[y][x]
			if !c.empty() && c.color == color && len(g.pseudoMoves(model.Square{X: x, Y: y})) > 0 {
				return false
			}
		}
	}
	return true
}

func lastRank(sq model.Square, color model.Color) bool {
	if color == model.White {
		return sq.Y == 0
	}
	return sq.Y == 7
}

func promotable(r model.Role) bool {
	switch r {
	case model.Queen, model.Rook, model.Bishop, model.Knight:
		return true
	}
	return false
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
