package model

import "math"

// SquareSize is the width of one square in offset units. Offsets are CSS
// translate percentages of a single piece element.
const SquareSize = 100

// Offset is a position on the board in percent-of-square units.
type Offset struct {
	Left float64 `json:"left"`
	Top  float64 `json:"top"`
}

// Distance is the euclidean distance between two offsets.
func (o Offset) Distance(to Offset) float64 {
	return math.Hypot(o.Left-to.Left, o.Top-to.Top)
}

// ToOffset maps a square to its offset. A flipped board shows rank 1 at the
// top and the h-file on the left.
func ToOffset(sq Square, flipped bool) Offset {
	x, y := sq.X, sq.Y
	if flipped {
		x, y = 7-x, 7-y
	}
	return Offset{Left: float64(x * SquareSize), Top: float64(y * SquareSize)}
}

// FromPointer maps a pointer position normalized to the board element
// ([0,1) on both axes) to the square under it.
func FromPointer(x, y float64, flipped bool) (Square, bool) {
	if math.IsNaN(x) || math.IsNaN(y) || x < 0 || x >= 1 || y < 0 || y >= 1 {
		return NoSquare, false
	}
	col := int(math.Floor(x * 8))
	row := int(math.Floor(y * 8))
	if flipped {
		col, row = 7-col, 7-row
	}
	sq := Square{X: col, Y: row}
	return sq, sq.Valid()
}

// DragOffset places a piece centred under the pointer. It is not clamped, so
// a ghost can follow the pointer off the board.
func DragOffset(x, y float64) Offset {
	return Offset{
		Left: x*8*SquareSize - SquareSize/2,
		Top:  y*8*SquareSize - SquareSize/2,
	}
}

var (
	files = []string{"a", "b", "c", "d", "e", "f", "g", "h"}
	ranks = []string{"8", "7", "6", "5", "4", "3", "2", "1"}
)

// FileLabels lists file names left to right as displayed.
func FileLabels(flipped bool) []string {
	return ordered(files, flipped)
}

// RankLabels lists rank names top to bottom as displayed.
func RankLabels(flipped bool) []string {
	return ordered(ranks, flipped)
}

func ordered(in []string, reversed bool) []string {
	out := make([]string, len(in))
	for i := range in {
		if reversed {
			out[i] = in[len(in)-1-i]
		} else {
			out[i] = in[i]
		}
	}
	return out
}
