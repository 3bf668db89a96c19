package model

import (
	"fmt"
	"slices"
)

type Role string

const (
	King   Role = "king"
	Queen  Role = "queen"
	Rook   Role = "rook"
	Bishop Role = "bishop"
	Knight Role = "knight"
	Pawn   Role = "pawn"
	Duck   Role = "duck"
)

// Letter returns the position-notation letter for a role of the given color.
func (r Role) Letter(c Color) byte {
	var l byte
	switch r {
	case King:
		l = 'k'
	case Queen:
		l = 'q'
	case Rook:
		l = 'r'
	case Bishop:
		l = 'b'
	case Knight:
		l = 'n'
	case Pawn:
		l = 'p'
	case Duck:
		return 'd'
	default:
		return 0
	}
	if c == White {
		l -= 'a' - 'A'
	}
	return l
}

func roleFromLetter(c byte) (Role, Color, bool) {
	color := Black
	if c >= 'A' && c <= 'Z' {
		color = White
		c += 'a' - 'A'
	}
	switch c {
	case 'k':
		return King, color, true
	case 'q':
		return Queen, color, true
	case 'r':
		return Rook, color, true
	case 'b':
		return Bishop, color, true
	case 'n':
		return Knight, color, true
	case 'p':
		return Pawn, color, true
	case 'd':
		// the duck has no uppercase form
		if color == White {
			return "", "", false
		}
		return Duck, NoColor, true
	}
	return "", "", false
}

// Square is a board cell. X is the file index (a=0), Y the row index from
// the top of an unflipped board (rank 8 = 0).
type Square struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// NoSquare marks "off the board", e.g. a duck that has not been placed yet.
var NoSquare = Square{X: -1, Y: -1}

// SquareAt builds a square from a file letter index and a rank number 1..8.
func SquareAt(file, rank int) Square {
	return Square{X: file, Y: 8 - rank}
}

func (s Square) Valid() bool {
	return s.X >= 0 && s.X < 8 && s.Y >= 0 && s.Y < 8
}

func (s Square) File() byte { return byte('a' + s.X) }

func (s Square) Rank() int { return 8 - s.Y }

func (s Square) String() string {
	if !s.Valid() {
		return "-"
	}
	return fmt.Sprintf("%c%d", s.File(), s.Rank())
}

// ParseSquare reads algebraic coordinates such as "e4".
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 || s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return NoSquare, fmt.Errorf("%w: %q", ErrMalformedSquare, s)
	}
	return SquareAt(int(s[0]-'a'), int(s[1]-'0')), nil
}

type Piece struct {
	Role   Role   `json:"role"`
	Color  Color  `json:"color,omitempty"`
	Square Square `json:"square"`
}

func (p Piece) String() string {
	return fmt.Sprintf("%c%s", p.Role.Letter(p.Color), p.Square)
}

// Snapshot is the full set of placed pieces at one instant. Callers must
// treat it as immutable once built.
type Snapshot struct {
	Pieces []Piece `json:"pieces"`
}

func NewSnapshot(pieces []Piece) Snapshot {
	return Snapshot{Pieces: slices.Clone(pieces)}
}

// PieceAt returns the non-duck piece on sq, or the duck if it stands there.
func (s Snapshot) PieceAt(sq Square) (Piece, bool) {
	for _, p := range s.Pieces {
		if p.Square == sq {
			return p, true
		}
	}
	return Piece{}, false
}

// Duck returns the duck's square or NoSquare.
func (s Snapshot) Duck() Square {
	for _, p := range s.Pieces {
		if p.Role == Duck {
			return p.Square
		}
	}
	return NoSquare
}

// Equal compares piece-for-piece, ignoring order.
func (s Snapshot) Equal(o Snapshot) bool {
	if len(s.Pieces) != len(o.Pieces) {
		return false
	}
	seen := make(map[Piece]int, len(s.Pieces))
	for _, p := range s.Pieces {
		seen[p]++
	}
	for _, p := range o.Pieces {
		if seen[p] == 0 {
			return false
		}
		seen[p]--
	}
	return true
}

func (s Snapshot) String() string {
	return Serialize(s.Pieces)
}
