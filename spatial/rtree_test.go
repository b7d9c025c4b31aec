package spatial

import "testing"

// TestRTreeIndexIsDropInForGrid3D exercises RTreeIndex through the same
// Index3D contract as Grid3D, proving the two backends are interchangeable
// (SPEC_FULL.md §2's "RTreeIndex is wired and exercised" requirement).
func TestRTreeIndexIsDropInForGrid3D(t *testing.T) {
	var idx Index3D = NewRTreeIndex()

	idx.Insert(TriRef{MeshID: 1, TriID: 0}, 0, 0, 0, 1, 1, 1)
	idx.Insert(TriRef{MeshID: 2, TriID: 5}, 100, 100, 100, 101, 101, 101)

	hits := idx.Query(-1, -1, -1, 2, 2, 2)
	found := false
	for _, h := range hits {
		if h == (TriRef{MeshID: 1, TriID: 0}) {
			found = true
		}
		if h.MeshID == 2 {
			t.Fatalf("unexpected distant triangle returned")
		}
	}
	if !found {
		t.Fatalf("expected to find the nearby triangle via RTreeIndex")
	}
}
