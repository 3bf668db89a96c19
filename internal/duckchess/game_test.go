package duckchess

import (
	"errors"
	"slices"
	"testing"

	"github.com/benbeisheim/duckboard-backend/internal/model"
)

func sq(t *testing.T, coord string) model.Square {
	t.Helper()
	s, err := model.ParseSquare(coord)
	if err != nil {
		t.Fatalf("invalid coordinate %q: %v", coord, err)
	}
	return s
}

func squares(t *testing.T, coords ...string) []model.Square {
	t.Helper()
	out := make([]model.Square, 0, len(coords))
	for _, c := range coords {
		out = append(out, sq(t, c))
	}
	return out
}

func sameSquares(a, b []model.Square) bool {
	if len(a) != len(b) {
		return false
	}
	for _, s := range a {
		if !slices.Contains(b, s) {
			return false
		}
	}
	return true
}

func mustGame(t *testing.T, fen string) *Game {
	t.Helper()
	g, err := New(fen)
	if err != nil {
		t.Fatalf("load %q: %v", fen, err)
	}
	return g
}

func TestStartingPositionDests(t *testing.T) {
	g := mustGame(t, model.StartingPosition)

	if got := g.Dests(sq(t, "e2")); !sameSquares(got, squares(t, "e3", "e4")) {
		t.Fatalf("e2 dests = %v", got)
	}
	if got := g.Dests(sq(t, "g1")); !sameSquares(got, squares(t, "f3", "h3")) {
		t.Fatalf("g1 dests = %v", got)
	}
	if got := g.Dests(sq(t, "e7")); len(got) != 0 {
		t.Fatalf("black piece should have no dests on white's turn, got %v", got)
	}
}

func TestDuckBlocksPawnAndIsNotCapturable(t *testing.T) {
	g := mustGame(t, model.StartingPosition+" b")

	// duck on e5 stops the double push
	if got := g.Dests(sq(t, "e7")); !sameSquares(got, squares(t, "e6")) {
		t.Fatalf("e7 dests = %v", got)
	}

	g = mustGame(t, "8/8/8/8/d7/8/8/R3K3 w")
	got := g.Dests(sq(t, "a1"))
	if slices.Contains(got, sq(t, "a4")) || slices.Contains(got, sq(t, "a5")) {
		t.Fatalf("rook must stop before the duck, got %v", got)
	}
	if !slices.Contains(got, sq(t, "a3")) {
		t.Fatalf("rook should reach a3, got %v", got)
	}
}

func TestTwoPhaseTurn(t *testing.T) {
	g := mustGame(t, model.StartingPosition)

	if err := g.PlaceDuck(sq(t, "h3")); !errors.Is(err, ErrWrongPhase) {
		t.Fatalf("expected ErrWrongPhase before the piece move, got %v", err)
	}
	if err := g.Move(model.MoveIntent{From: sq(t, "e2"), To: sq(t, "e4")}); err != nil {
		t.Fatalf("move: %v", err)
	}
	if !g.NeedsDuck() {
		t.Fatalf("expected duck placement to be pending")
	}
	if g.Turn() != model.White {
		t.Fatalf("turn must not pass before the duck is placed")
	}

	dests := g.DuckDests()
	for _, bad := range squares(t, "e5", "e4", "a1") {
		if slices.Contains(dests, bad) {
			t.Fatalf("duck dests should not include %s", bad)
		}
	}
	if !slices.Contains(dests, sq(t, "e2")) {
		t.Fatalf("vacated e2 should be a duck dest")
	}

	if err := g.PlaceDuck(sq(t, "e5")); !errors.Is(err, ErrIllegalDuck) {
		t.Fatalf("duck must move, got %v", err)
	}
	if err := g.PlaceDuck(sq(t, "h3")); err != nil {
		t.Fatalf("place duck: %v", err)
	}
	if g.Turn() != model.Black || g.Duck() != sq(t, "h3") {
		t.Fatalf("unexpected state after duck: turn %s duck %s", g.Turn(), g.Duck())
	}
	if got := g.History(); len(got) != 1 || got[0].String() != "h3@e2e4" {
		t.Fatalf("unexpected history %v", got)
	}
}

func TestPlayIsAtomic(t *testing.T) {
	g := mustGame(t, model.StartingPosition)
	before := g.FEN()

	bad, _ := model.ParseMove("e4@e2e4")
	if err := g.Play(bad); !errors.Is(err, ErrIllegalDuck) {
		t.Fatalf("expected ErrIllegalDuck, got %v", err)
	}
	if g.FEN() != before || g.NeedsDuck() {
		t.Fatalf("failed play must leave the game unchanged")
	}

	good, _ := model.ParseMove("h3@e2e4")
	if err := g.Play(good); err != nil {
		t.Fatalf("play: %v", err)
	}
	if got := g.FEN(); got != "rnbqkbnr/pppppppp/8/8/4P3/7d/PPPP1PPP/RNBQKBNR b" {
		t.Fatalf("unexpected fen %q", got)
	}
}

func TestCheckpointRewind(t *testing.T) {
	g := mustGame(t, model.StartingPosition)
	cp := g.Checkpoint()
	before := g.Snapshot()

	if err := g.Move(model.MoveIntent{From: sq(t, "g1"), To: sq(t, "f3")}); err != nil {
		t.Fatalf("move: %v", err)
	}
	if err := g.Rewind(cp); err != nil {
		t.Fatalf("rewind: %v", err)
	}
	if !g.Snapshot().Equal(before) || g.NeedsDuck() || g.Turn() != model.White {
		t.Fatalf("rewind did not restore the position")
	}
	if len(g.History()) != 0 {
		t.Fatalf("rewind should drop the half move from history")
	}
	if err := g.Rewind("nope"); !errors.Is(err, ErrBadCheckpoint) {
		t.Fatalf("expected ErrBadCheckpoint, got %v", err)
	}
}

func TestKingCaptureEndsGameWithoutDuck(t *testing.T) {
	g := mustGame(t, "4k3/8/8/8/8/8/8/4RK2 w")
	m, _ := model.ParseMove("e1e8")
	if err := g.Play(m); err != nil {
		t.Fatalf("play: %v", err)
	}
	if g.Phase() != PhaseOver || g.NeedsDuck() {
		t.Fatalf("expected game over, got phase %s", g.Phase())
	}
	if r := g.Result(); r == nil || r.Winner != model.White {
		t.Fatalf("expected white to win, got %+v", r)
	}
	if err := g.Move(model.MoveIntent{From: sq(t, "f1"), To: sq(t, "f2")}); !errors.Is(err, ErrGameOver) {
		t.Fatalf("expected ErrGameOver, got %v", err)
	}
}

func TestPromotionDefaultsToQueen(t *testing.T) {
	g := mustGame(t, "8/4P3/8/8/8/8/8/k6K w")
	if err := g.Move(model.MoveIntent{From: sq(t, "e7"), To: sq(t, "e8")}); err != nil {
		t.Fatalf("move: %v", err)
	}
	p, ok := g.PieceAt(sq(t, "e8"))
	if !ok || p.Role != model.Queen || p.Color != model.White {
		t.Fatalf("expected white queen on e8, got %+v", p)
	}
	if lm := g.LastMove(); lm == nil || lm.Promotion != model.Queen {
		t.Fatalf("last move should record the promotion, got %+v", lm)
	}

	g = mustGame(t, "8/4P3/8/8/8/8/8/k6K w")
	if err := g.Move(model.MoveIntent{From: sq(t, "e7"), To: sq(t, "e8"), Promotion: model.King}); !errors.Is(err, ErrIllegalMove) {
		t.Fatalf("expected king promotion to fail, got %v", err)
	}
}

func TestCastlingMovesRook(t *testing.T) {
	g := mustGame(t, "r3k2r/8/8/8/8/8/8/R3K2R w")
	if got := g.Dests(sq(t, "e1")); !slices.Contains(got, sq(t, "g1")) || !slices.Contains(got, sq(t, "c1")) {
		t.Fatalf("expected both castles, got %v", got)
	}
	m, _ := model.ParseMove("a5@e1g1")
	if err := g.Play(m); err != nil {
		t.Fatalf("castle: %v", err)
	}
	if p, _ := g.PieceAt(sq(t, "f1")); p.Role != model.Rook {
		t.Fatalf("expected rook on f1, got %+v", p)
	}
	if _, ok := g.PieceAt(sq(t, "h1")); ok {
		t.Fatalf("h1 should be empty after castling")
	}

	g = mustGame(t, "8/8/8/8/8/8/8/R3Kd1R w")
	if got := g.Dests(sq(t, "e1")); slices.Contains(got, sq(t, "g1")) {
		t.Fatalf("duck on f1 must block kingside castling, got %v", got)
	}
}

func TestEnPassant(t *testing.T) {
	g := mustGame(t, "4k3/3p4/8/4P3/8/8/8/4K3 b")
	if err := g.Play(model.DuckMove{Move: model.MoveIntent{From: sq(t, "d7"), To: sq(t, "d5")}, Duck: sq(t, "a1")}); err != nil {
		t.Fatalf("double push: %v", err)
	}
	if got := g.Dests(sq(t, "e5")); !slices.Contains(got, sq(t, "d6")) {
		t.Fatalf("expected en passant on d6, got %v", got)
	}
	if err := g.Move(model.MoveIntent{From: sq(t, "e5"), To: sq(t, "d6")}); err != nil {
		t.Fatalf("en passant: %v", err)
	}
	if _, ok := g.PieceAt(sq(t, "d5")); ok {
		t.Fatalf("captured pawn should be removed from d5")
	}
}

func TestNoMovesWins(t *testing.T) {
	g := mustGame(t, "8/8/8/8/8/8/p7/K7 w")
	if got := g.Dests(sq(t, "a1")); !sameSquares(got, squares(t, "b1", "b2", "a2")) {
		t.Fatalf("king dests = %v", got)
	}
	if err := g.Move(model.MoveIntent{From: sq(t, "a1"), To: sq(t, "b2")}); err != nil {
		t.Fatalf("move: %v", err)
	}
	if err := g.PlaceDuck(sq(t, "a1")); err != nil {
		t.Fatalf("duck: %v", err)
	}
	// a2 pawn is blocked by the duck and has nothing to capture
	if r := g.Result(); r == nil || r.Winner != model.Black {
		t.Fatalf("expected black to win by having no moves, got %+v", r)
	}
}

func TestLoadRejectsMalformed(t *testing.T) {
	g := &Game{}
	if err := g.Load("not a fen"); !errors.Is(err, model.ErrMalformedPosition) {
		t.Fatalf("expected ErrMalformedPosition, got %v", err)
	}
	if len(g.Pieces()) != 0 || g.Turn() != model.White {
		t.Fatalf("failed load should leave an empty board")
	}
	if err := g.Load(model.StartingPosition + " x"); !errors.Is(err, model.ErrMalformedPosition) {
		t.Fatalf("expected bad side to move to fail, got %v", err)
	}
}
