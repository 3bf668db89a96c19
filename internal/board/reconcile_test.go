package board

import (
	"testing"

	"github.com/benbeisheim/duckboard-backend/internal/model"
)

func TestReconcileUnmovedPieceHasNoAnimation(t *testing.T) {
	old := displayed(t, piece(t, model.Knight, model.White, "g1"))
	fresh := displayed(t, piece(t, model.Knight, model.White, "g1"))

	got := Reconcile(old, fresh)
	if len(got) != 1 {
		t.Fatalf("expected 1 piece, got %d", len(got))
	}
	if got[0].Animating() {
		t.Fatalf("unmoved piece must not animate")
	}
	if got[0].ReadPosition() != got[0].Target() {
		t.Fatalf("unmoved piece should sit on its target, got %+v", got[0].ReadPosition())
	}
}

func TestReconcileAdvancingPawnSlidesAndNewPawnAppears(t *testing.T) {
	old := displayed(t, piece(t, model.Pawn, model.White, "e2"))
	fresh := displayed(t,
		piece(t, model.Pawn, model.White, "e4"),
		piece(t, model.Pawn, model.White, "d2"),
	)

	got := Reconcile(old, fresh)
	e4 := findPiece(got, sq(t, "e4"))
	d2 := findPiece(got, sq(t, "d2"))

	if !e4.Animating() {
		t.Fatalf("advancing pawn should animate")
	}
	if want := model.ToOffset(sq(t, "e2"), false); e4.ReadPosition() != want {
		t.Fatalf("advancing pawn should start from e2 %+v, got %+v", want, e4.ReadPosition())
	}
	left, top := e4.Animations()
	if left != nil {
		t.Fatalf("file did not change, left axis should not animate")
	}
	if top == nil || top.Start != 600 || top.T != 0 {
		t.Fatalf("unexpected top animation %+v", top)
	}
	if d2.Animating() {
		t.Fatalf("appearing pawn must not animate")
	}
}

func TestReconcileDropsCapturedPiece(t *testing.T) {
	old := displayed(t,
		piece(t, model.Knight, model.Black, "d5"),
		piece(t, model.Bishop, model.White, "b3"),
	)
	fresh := displayed(t, piece(t, model.Bishop, model.White, "d5"))

	got := Reconcile(old, fresh)
	if len(got) != 1 {
		t.Fatalf("expected only the capturing bishop, got %d pieces", len(got))
	}
	if got[0].Role != model.Bishop || !got[0].Animating() {
		t.Fatalf("bishop should slide onto d5, got %+v", got[0].Piece)
	}
}

func TestReconcileResolvesExactMatchesFirst(t *testing.T) {
	// d3 is within the 300 gate of e2, but the exact e2 pair resolves first
	old := displayed(t,
		piece(t, model.Pawn, model.White, "e2"),
		piece(t, model.Pawn, model.White, "d2"),
	)
	fresh := displayed(t,
		piece(t, model.Pawn, model.White, "d3"),
		piece(t, model.Pawn, model.White, "e2"),
	)

	got := Reconcile(old, fresh)
	e2 := findPiece(got, sq(t, "e2"))
	d3 := findPiece(got, sq(t, "d3"))
	if e2.Animating() {
		t.Fatalf("e2 pawn did not move and must not animate")
	}
	if want := model.ToOffset(sq(t, "d2"), false); d3.ReadPosition() != want {
		t.Fatalf("d3 pawn should start from d2 %+v, got %+v", want, d3.ReadPosition())
	}
}

func TestReconcileKeysOnRoleAndColor(t *testing.T) {
	old := displayed(t,
		piece(t, model.Pawn, model.Black, "e5"),
		piece(t, model.Knight, model.White, "d7"),
	)
	fresh := displayed(t,
		piece(t, model.Pawn, model.White, "e5"),
		piece(t, model.Queen, model.White, "d8"),
	)

	got := Reconcile(old, fresh)
	for _, p := range got {
		if p.Animating() {
			t.Fatalf("%s must not inherit another role or color", p.Piece)
		}
	}
}

func TestReconcileSkipsGhostedPieces(t *testing.T) {
	old := displayed(t, piece(t, model.Rook, model.White, "a1"))
	old[0].Ghosted = true
	fresh := displayed(t, piece(t, model.Rook, model.White, "a4"))

	got := Reconcile(old, fresh)
	if got[0].Animating() {
		t.Fatalf("a ghosted piece must not be matched")
	}
}

func TestReconcileInheritsAnimatedOffset(t *testing.T) {
	old := displayed(t, piece(t, model.Queen, model.White, "d4"))
	mid := model.Offset{Left: 310, Top: 420}
	old[0].current = mid
	fresh := displayed(t, piece(t, model.Queen, model.White, "d4"))

	got := Reconcile(old, fresh)
	if got[0].ReadPosition() != mid {
		t.Fatalf("expected start at %+v, got %+v", mid, got[0].ReadPosition())
	}
	left, top := got[0].Animations()
	if left == nil || left.Start != 310 || top == nil || top.Start != 420 {
		t.Fatalf("expected both axes to resume from the old offset, got %+v %+v", left, top)
	}
}

func TestReconcileBeyondLargestThresholdAppears(t *testing.T) {
	// a8 to h1 is about 990 units, past the 900 gate
	old := displayed(t, piece(t, model.Bishop, model.Black, "a8"))
	fresh := displayed(t, piece(t, model.Bishop, model.Black, "h1"))

	got := Reconcile(old, fresh)
	if got[0].Animating() {
		t.Fatalf("a slide longer than the last threshold should not animate")
	}
}

func TestReconcileDuckMatchesByRole(t *testing.T) {
	old := displayed(t, model.Piece{Role: model.Duck, Square: sq(t, "e5")})
	fresh := displayed(t, model.Piece{Role: model.Duck, Square: sq(t, "c3")})

	got := Reconcile(old, fresh)
	if !got[0].Animating() {
		t.Fatalf("duck should slide to its new square")
	}
}
