package index

import (
	"testing"

	"github.com/glennpinkerton/sealedmodel/seal/collab"
	"github.com/glennpinkerton/sealedmodel/seal/model"
	"github.com/glennpinkerton/sealedmodel/spatial"
)

func TestTriangleIndex_GridBackendRoundTrips(t *testing.T) {
	var idx collab.Index3D = NewTriangleIndex(spatial.NewGrid3D(1.0))
	idx.Insert(1, 42, 0, 0, 0, 1, 1, 1)

	hits := idx.Query(-1, -1, -1, 2, 2, 2)
	if len(hits) != 1 || hits[0].MeshID != 1 || hits[0].TriID != 42 {
		t.Fatalf("expected one hit {1,42}, got %+v", hits)
	}
}

func TestTriangleIndex_RTreeBackendRoundTrips(t *testing.T) {
	var idx collab.Index3D = NewTriangleIndex(spatial.NewRTreeIndex())
	idx.Insert(3, 7, 10, 10, 10, 11, 11, 11)

	hits := idx.Query(9, 9, 9, 12, 12, 12)
	if len(hits) != 1 || hits[0].MeshID != 3 || hits[0].TriID != 7 {
		t.Fatalf("expected one hit {3,7}, got %+v", hits)
	}

	miss := idx.Query(-5, -5, -5, -1, -1, -1)
	if len(miss) != 0 {
		t.Errorf("expected no hits far from the inserted box, got %+v", miss)
	}
}

func TestNewGridTriangleIndex_IsTriangleIndexFactory(t *testing.T) {
	var factory collab.TriangleIndexFactory = NewGridTriangleIndex
	idx := factory(2.0)
	idx.Insert(0, 0, 0, 0, 0, 0, 0, 0)
	if len(idx.Query(-1, -1, -1, 1, 1, 1)) != 1 {
		t.Error("expected the grid-backed factory output to satisfy collab.Index3D")
	}
}

func TestNodeIndex_FindNearRecoversZ(t *testing.T) {
	n := NewNodeIndex(1.0)
	id := n.Add(model.Point3{X: 5, Y: 5, Z: 42})

	ids, pts := n.FindNear(5, 5, 0.5)
	if len(ids) != 1 || ids[0] != id {
		t.Fatalf("expected to find the added vertex, got ids=%v", ids)
	}
	if pts[0].Z != 42 {
		t.Errorf("expected z to survive the round trip, got %+v", pts[0])
	}
}

func TestNodeIndex_FindNear_ExcludesFarPoints(t *testing.T) {
	n := NewNodeIndex(1.0)
	n.Add(model.Point3{X: 0, Y: 0, Z: 0})
	n.Add(model.Point3{X: 100, Y: 100, Z: 0})

	ids, _ := n.FindNear(0, 0, 1.0)
	if len(ids) != 1 {
		t.Fatalf("expected only the nearby point, got %d", len(ids))
	}
}

func TestNodeIndex_Point(t *testing.T) {
	n := NewNodeIndex(1.0)
	id := n.Add(model.Point3{X: 1, Y: 2, Z: 3})
	p := n.Point(id)
	if p != (model.Point3{X: 1, Y: 2, Z: 3}) {
		t.Errorf("expected Point to return the stored position, got %+v", p)
	}
}
