package model

import (
	"fmt"
	"strings"
)

// MoveIntent is the first half of a turn: a piece moving between squares.
type MoveIntent struct {
	From      Square `json:"from"`
	To        Square `json:"to"`
	Promotion Role   `json:"promotion,omitempty"`
}

func (m MoveIntent) String() string {
	s := m.From.String() + m.To.String()
	if m.Promotion != "" {
		s += string(m.Promotion.Letter(Black))
	}
	return s
}

// DuckMove is a full turn: the piece move plus where the duck went.
// Duck is NoSquare when the turn ended without a duck step.
type DuckMove struct {
	Move MoveIntent `json:"move"`
	Duck Square     `json:"duck"`
}

// String encodes the turn as "h3@e2e4", duck square first.
func (m DuckMove) String() string {
	if !m.Duck.Valid() {
		return m.Move.String()
	}
	return m.Duck.String() + "@" + m.Move.String()
}

type SimpleMove struct {
	From Square `json:"from"`
	To   Square `json:"to"`
}

// ParseMove decodes "h3@e2e4", "a6@e7e8q" or a bare "e2e4".
func ParseMove(s string) (DuckMove, error) {
	s = strings.TrimSpace(s)
	move := DuckMove{Duck: NoSquare}

	if at := strings.IndexByte(s, '@'); at >= 0 {
		duck, err := ParseSquare(s[:at])
		if err != nil {
			return DuckMove{}, fmt.Errorf("%w: %q", ErrMalformedMove, s)
		}
		move.Duck = duck
		s = s[at+1:]
	}

	if len(s) != 4 && len(s) != 5 {
		return DuckMove{}, fmt.Errorf("%w: %q", ErrMalformedMove, s)
	}
	from, err := ParseSquare(s[0:2])
	if err != nil {
		return DuckMove{}, fmt.Errorf("%w: %q", ErrMalformedMove, s)
	}
	to, err := ParseSquare(s[2:4])
	if err != nil {
		return DuckMove{}, fmt.Errorf("%w: %q", ErrMalformedMove, s)
	}
	move.Move = MoveIntent{From: from, To: to}

	if len(s) == 5 {
		role, _, ok := roleFromLetter(s[4])
		if !ok || role == King || role == Pawn || role == Duck {
			return DuckMove{}, fmt.Errorf("%w: promotion %q", ErrMalformedMove, s[4])
		}
		move.Move.Promotion = role
	}
	return move, nil
}
