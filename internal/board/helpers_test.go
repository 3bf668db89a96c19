package board

import (
	"sort"
	"testing"
	"time"

	"github.com/benbeisheim/duckboard-backend/internal/model"
)

// manualScheduler runs frames only when the test ticks it.
type manualScheduler struct {
	next    FrameID
	pending map[FrameID]func(time.Time)
	now     time.Time
}

func newManualScheduler() *manualScheduler {
	return &manualScheduler{
		pending: make(map[FrameID]func(time.Time)),
		now:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (s *manualScheduler) RequestFrame(fn func(time.Time)) FrameID {
	s.next++
	s.pending[s.next] = fn
	return s.next
}

func (s *manualScheduler) CancelFrame(id FrameID) {
	delete(s.pending, id)
}

// tick advances the clock and runs the frames that were pending before it.
func (s *manualScheduler) tick(d time.Duration) {
	s.now = s.now.Add(d)
	ids := make([]FrameID, 0, len(s.pending))
	for id := range s.pending {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		fn, ok := s.pending[id]
		if !ok {
			continue
		}
		delete(s.pending, id)
		fn(s.now)
	}
}

func (s *manualScheduler) settle(t *testing.T) {
	t.Helper()
	for i := 0; len(s.pending) > 0; i++ {
		if i > 1000 {
			t.Fatalf("animation never settled")
		}
		s.tick(16 * time.Millisecond)
	}
}

func sq(t *testing.T, coord string) model.Square {
	t.Helper()
	s, err := model.ParseSquare(coord)
	if err != nil {
		t.Fatalf("invalid coordinate %q: %v", coord, err)
	}
	return s
}

func piece(t *testing.T, role model.Role, color model.Color, coord string) model.Piece {
	t.Helper()
	return model.Piece{Role: role, Color: color, Square: sq(t, coord)}
}

func displayed(t *testing.T, pieces ...model.Piece) []*DisplayedPiece {
	t.Helper()
	return Derive(model.NewSnapshot(pieces), false)
}

// pointerAt is the centre of a square on the board element.
func pointerAt(t *testing.T, coord string, flipped bool) Pointer {
	t.Helper()
	off := model.ToOffset(sq(t, coord), flipped)
	return At((off.Left+50)/800, (off.Top+50)/800)
}

func findPiece(pieces []*DisplayedPiece, s model.Square) *DisplayedPiece {
	for _, p := range pieces {
		if p.Square == s {
			return p
		}
	}
	return nil
}
