package spatial

import "testing"

func TestGrid3DInsertQuery(t *testing.T) {
	g := NewGrid3D(1.0)
	g.Insert(TriRef{MeshID: 1, TriID: 0}, 0, 0, 0, 0.5, 0.5, 0.5)
	g.Insert(TriRef{MeshID: 2, TriID: 0}, 10, 10, 10, 10.5, 10.5, 10.5)

	hits := g.Query(-0.1, -0.1, -0.1, 0.6, 0.6, 0.6)
	found := false
	for _, h := range hits {
		if h == (TriRef{MeshID: 1, TriID: 0}) {
			found = true
		}
		if h == (TriRef{MeshID: 2, TriID: 0}) {
			t.Fatalf("unexpected far triangle in near query")
		}
	}
	if !found {
		t.Fatalf("expected to find mesh 1 triangle 0")
	}
}

func TestGrid3DEmptyQuery(t *testing.T) {
	g := NewGrid3D(2.0)
	if hits := g.Query(100, 100, 100, 101, 101, 101); len(hits) != 0 {
		t.Fatalf("expected no hits, got %d", len(hits))
	}
}
