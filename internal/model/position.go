package model

import (
	"fmt"
	"strings"
)

// StartingPosition is the standard setup with the duck parked on e5.
const StartingPosition = "rnbqkbnr/pppppppp/8/4d3/8/8/PPPPPPPP/RNBQKBNR"

// EmptyPosition has no pieces at all.
const EmptyPosition = "8/8/8/8/8/8/8/8"

// Parse reads the placement field of a position string, rank 8 first.
// Anything after the first space is ignored. On any error no pieces are
// returned.
func Parse(position string) ([]Piece, error) {
	if i := strings.IndexByte(position, ' '); i >= 0 {
		position = position[:i]
	}
	rows := strings.Split(position, "/")
	if len(rows) != 8 {
		return nil, fmt.Errorf("%w: %d ranks", ErrMalformedPosition, len(rows))
	}

	pieces := []Piece{}
	ducks := 0
	for y, row := range rows {
		x := 0
		for i := 0; i < len(row); i++ {
			c := row[i]
			if c >= '1' && c <= '8' {
				x += int(c - '0')
				if x > 8 {
					return nil, fmt.Errorf("%w: rank %d overflows", ErrMalformedPosition, 8-y)
				}
				continue
			}
			role, color, ok := roleFromLetter(c)
			if !ok {
				return nil, fmt.Errorf("%w: unexpected %q", ErrMalformedPosition, c)
			}
			if x >= 8 {
				return nil, fmt.Errorf("%w: rank %d overflows", ErrMalformedPosition, 8-y)
			}
			if role == Duck {
				ducks++
				if ducks > 1 {
					return nil, fmt.Errorf("%w: more than one duck", ErrMalformedPosition)
				}
			}
			pieces = append(pieces, Piece{Role: role, Color: color, Square: Square{X: x, Y: y}})
			x++
		}
	}
	return pieces, nil
}

// Serialize writes the placement field for a set of pieces. Pieces off the
// board are skipped.
func Serialize(pieces []Piece) string {
	var grid [8][8]byte
	for _, p := range pieces {
		if p.Square.Valid() {
			grid[p.Square.Y][p.Square.X] = p.Role.Letter(p.Color)
		}
	}

	var b strings.Builder
	for y := 0; y < 8; y++ {
		if y > 0 {
			b.WriteByte('/')
		}
		empty := 0
		for x := 0; x < 8; x++ {
			if grid[y][x] == 0 {
				empty++
				continue
			}
			if empty > 0 {
				b.WriteByte(byte('0' + empty))
				empty = 0
			}
			b.WriteByte(grid[y][x])
		}
		if empty > 0 {
			b.WriteByte(byte('0' + empty))
		}
	}
	return b.String()
}
