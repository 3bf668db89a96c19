package board

import (
	"slices"

	"github.com/benbeisheim/duckboard-backend/internal/model"
)

// MatchThresholds are the distance gates tried in order, in offset units.
// Exact matches are resolved before short slides, short before long.
var MatchThresholds = []float64{0, 300, 500, 800, 900}

// Derive builds fresh displayed pieces for a snapshot, in snapshot order.
func Derive(snap model.Snapshot, flipped bool) []*DisplayedPiece {
	pieces := make([]*DisplayedPiece, 0, len(snap.Pieces))
	for _, p := range snap.Pieces {
		pieces = append(pieces, NewDisplayedPiece(p, flipped))
	}
	return pieces
}

// Reconcile matches fresh pieces against the previous frame's pieces so that
// surviving pieces slide instead of reappearing. A fresh piece may inherit
// from an old piece of the same role and color; ghosted old pieces are never
// used. Ties go to the first pair found scanning fresh pieces in order, then
// old pieces in order. Unmatched fresh pieces appear in place and unmatched
// old pieces are dropped. The returned slice is fresh.
func Reconcile(old, fresh []*DisplayedPiece) []*DisplayedPiece {
	oldPool := make([]*DisplayedPiece, 0, len(old))
	for _, p := range old {
		if !p.Ghosted {
			oldPool = append(oldPool, p)
		}
	}
	newPool := slices.Clone(fresh)

	for _, threshold := range MatchThresholds {
		for {
			var matched bool
			newPool, oldPool, matched = matchOne(newPool, oldPool, threshold)
			if !matched {
				break
			}
		}
	}
	return fresh
}

func matchOne(newPool, oldPool []*DisplayedPiece, threshold float64) ([]*DisplayedPiece, []*DisplayedPiece, bool) {
	for i, n := range newPool {
		for j, o := range oldPool {
			if o.Role != n.Role || o.Color != n.Color {
				continue
			}
			if o.target.Distance(n.target) > threshold {
				continue
			}
			n.slideFrom(o.current)
			return slices.Delete(newPool, i, i+1), slices.Delete(oldPool, j, j+1), true
		}
	}
	return newPool, oldPool, false
}
