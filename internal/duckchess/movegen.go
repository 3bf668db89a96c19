package duckchess

import "github.com/benbeisheim/duckboard-backend/internal/model"

var (
	rookDirs   = []model.Square{{X: 1, Y: 0}, {X: -1, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: -1}}
	bishopDirs = []model.Square{{X: 1, Y: 1}, {X: 1, Y: -1}, {X: -1, Y: 1}, {X: -1, Y: -1}}
	knightDirs = []model.Square{{X: 2, Y: 1}, {X: 2, Y: -1}, {X: -2, Y: 1}, {X: -2, Y: -1}, {X: 1, Y: 2}, {X: 1, Y: -2}, {X: -1, Y: 2}, {X: -1, Y: -2}}
	kingDirs   = append(append([]model.Square{}, rookDirs...), bishopDirs...)
)

func step(sq, dir model.Square) model.Square {
	return model.Square{X: sq.X + dir.X, Y: sq.Y + dir.Y}
}

// isEmpty is true for on-board squares holding neither a piece nor the duck.
func (g *Game) isEmpty(sq model.Square) bool {
	return sq.Valid() && sq != g.duck && g.board[sq.Y][sq.X].empty()
}

// isEnemy is true when sq holds a capturable piece of the other color. The
// duck is never capturable.
func (g *Game) isEnemy(sq model.Square, color model.Color) bool {
	if !sq.Valid() || sq == g.duck {
		return false
	}
	c := g.board[sq.Y][sq.X]
	return !c.empty() && c.color != color
}

// pseudoMoves generates moves for the piece on from. There is no check in
// duck chess, so these are the legal moves.
func (g *Game) pseudoMoves(from model.Square) []model.SimpleMove {
	c := g.board[from.Y][from.X]
	switch c.role {
	case model.Pawn:
		return g.pawnMoves(from, c)
	case model.Knight:
		return g.leaperMoves(from, c, knightDirs)
	case model.Bishop:
		return g.sliderMoves(from, c, bishopDirs)
	case model.Rook:
		return g.sliderMoves(from, c, rookDirs)
	case model.Queen:
		return g.sliderMoves(from, c, kingDirs)
	case model.King:
		return append(g.leaperMoves(from, c, kingDirs), g.castleMoves(from, c)...)
	}
	return nil
}

func (g *Game) pawnMoves(from model.Square, c cell) []model.SimpleMove {
	moves := []model.SimpleMove{}
	dir := -1
	if c.color == model.Black {
		dir = 1
	}

	one := model.Square{X: from.X, Y: from.Y + dir}
	if g.isEmpty(one) {
		moves = append(moves, model.SimpleMove{From: from, To: one})
		two := model.Square{X: from.X, Y: from.Y + 2*dir}
		if !c.hasMoved && g.isEmpty(two) {
			moves = append(moves, model.SimpleMove{From: from, To: two})
		}
	}
	for _, dx := range []int{-1, 1} {
		target := model.Square{X: from.X + dx, Y: from.Y + dir}
		if g.isEnemy(target, c.color) || (target == g.enPassant && g.isEmpty(target)) {
			moves = append(moves, model.SimpleMove{From: from, To: target})
		}
	}
	return moves
}

func (g *Game) leaperMoves(from model.Square, c cell, dirs []model.Square) []model.SimpleMove {
	moves := []model.SimpleMove{}
	for _, dir := range dirs {
		target := step(from, dir)
		if g.isEmpty(target) || g.isEnemy(target, c.color) {
			moves = append(moves, model.SimpleMove{From: from, To: target})
		}
	}
	return moves
}

func (g *Game) sliderMoves(from model.Square, c cell, dirs []model.Square) []model.SimpleMove {
	moves := []model.SimpleMove{}
	for _, dir := range dirs {
		target := step(from, dir)
		for target.Valid() {
			if g.isEmpty(target) {
				moves = append(moves, model.SimpleMove{From: from, To: target})
			} else {
				if g.isEnemy(target, c.color) {
					moves = append(moves, model.SimpleMove{From: from, To: target})
				}
				break
			}
			target = step(target, dir)
		}
	}
	return moves
}

// castleMoves allows castling through attacked squares; only the duck or a
// piece in between blocks it.
func (g *Game) castleMoves(from model.Square, c cell) []model.SimpleMove {
	moves := []model.SimpleMove{}
	if c.hasMoved {
		return moves
	}
	y := from.Y
	rookReady := func(x int) bool {
		r := g.board[y][x]
		return r.role == model.Rook && r.color == c.color && !r.hasMoved
	}
	open := func(xs ...int) bool {
		for _, x := range xs {
			if !g.isEmpty(model.Square{X: x, Y: y}) {
				return false
			}
		}
		return true
	}
	if rookReady(0) && open(1, 2, 3) {
		moves = append(moves, model.SimpleMove{From: from, To: model.Square{X: from.X - 2, Y: y}})
	}
	if rookReady(7) && open(5, 6) {
		moves = append(moves, model.SimpleMove{From: from, To: model.Square{X: from.X + 2, Y: y}})
	}
	return moves
}
