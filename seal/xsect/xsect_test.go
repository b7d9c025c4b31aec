package xsect

import (
	"math"
	"testing"

	"github.com/glennpinkerton/sealedmodel/moller"
	"github.com/glennpinkerton/sealedmodel/seal/index"
	"github.com/glennpinkerton/sealedmodel/seal/model"
)

// xPlane is the z=0 square [-5,5]x[-5,5] made of two triangles; with
// tiltedPlane (z=y over the same xy square) it crosses along y=0 across
// the full x range, giving a well-defined intersection for the engine to
// find.
func xPlane() *model.TriMesh {
	m := model.NewTriMesh(model.KindHorizon())
	m.AddNode(model.Point3{X: -5, Y: -5, Z: 0})
	m.AddNode(model.Point3{X: 5, Y: -5, Z: 0})
	m.AddNode(model.Point3{X: 5, Y: 5, Z: 0})
	m.AddNode(model.Point3{X: -5, Y: 5, Z: 0})
	m.InstallTriangles([][3]int{{0, 1, 2}, {0, 2, 3}})
	return m
}

func tiltedPlane() *model.TriMesh {
	// A plane through z = y, crossing z=0 (the xPlane) along y=0.
	m := model.NewTriMesh(model.KindHorizon())
	m.AddNode(model.Point3{X: -5, Y: -5, Z: -5})
	m.AddNode(model.Point3{X: 5, Y: -5, Z: -5})
	m.AddNode(model.Point3{X: 5, Y: 5, Z: 5})
	m.AddNode(model.Point3{X: -5, Y: 5, Z: 5})
	m.InstallTriangles([][3]int{{0, 1, 2}, {0, 2, 3}})
	return m
}

func newEngine(tol Tolerances) *Engine {
	return NewEngine(index.NewGridTriangleIndex, moller.Adapter{}, tol, model.Point3{})
}

func TestEngine_IntersectPair_FindsCrossingSegments(t *testing.T) {
	tol := Tolerances{GrazeDistance: 0.01, AverageSpacing: 1, Span: 40}
	e := newEngine(tol)

	a := Surface{MeshID: 1, Mesh: xPlane()}
	b := Surface{MeshID: 2, Mesh: tiltedPlane()}
	e.IndexSurface(b, 0.01)

	segs := e.IntersectPair(a, b, 0.01)
	if len(segs) == 0 {
		t.Fatal("expected at least one intersection segment between crossing planes")
	}
	for _, s := range segs {
		if math.Abs(s.P1.Y) > 1e-6 || math.Abs(s.P2.Y) > 1e-6 {
			t.Errorf("expected intersection along y=0, got segment %+v", s)
		}
	}
}

func TestEngine_IntersectPair_ParallelNonIntersecting(t *testing.T) {
	tol := Tolerances{GrazeDistance: 0.01, AverageSpacing: 1, Span: 40}
	e := newEngine(tol)

	a := Surface{MeshID: 1, Mesh: xPlane()}
	other := xPlane()
	for i := range other.Nodes {
		other.Nodes[i].Pos.Z += 10
	}
	b := Surface{MeshID: 2, Mesh: other}
	e.IndexSurface(b, 0.01)

	segs := e.IntersectPair(a, b, 0.01)
	if len(segs) != 0 {
		t.Errorf("expected no intersections between parallel offset planes, got %d", len(segs))
	}
}

func TestEngine_Dedup_RemovesCoincidentSegments(t *testing.T) {
	tol := Tolerances{GrazeDistance: 1.0, AverageSpacing: 1, Span: 40}
	e := newEngine(tol)

	segs := []model.IntersectionSegment{
		{P1: model.Point3{X: 0, Y: 0}, P2: model.Point3{X: 1, Y: 0}},
		{P1: model.Point3{X: 1, Y: 0}, P2: model.Point3{X: 0, Y: 0}}, // reversed duplicate
		{P1: model.Point3{X: 5, Y: 5}, P2: model.Point3{X: 6, Y: 5}},
	}
	kept := e.Dedup(segs)
	if len(kept) != 2 {
		t.Fatalf("expected 2 segments after dedup, got %d", len(kept))
	}
}

func TestEngine_Chain_JoinsEndToEnd(t *testing.T) {
	tol := Tolerances{GrazeDistance: 0.5, AverageSpacing: 1, Span: 40}
	e := newEngine(tol)

	segs := []model.IntersectionSegment{
		{P1: model.Point3{X: 0, Y: 0}, P2: model.Point3{X: 1, Y: 0}, Surf1: 1, Surf2: 2},
		{P1: model.Point3{X: 1, Y: 0}, P2: model.Point3{X: 2, Y: 0}, Surf1: 1, Surf2: 2},
		{P1: model.Point3{X: 2, Y: 0}, P2: model.Point3{X: 3, Y: 0}, Surf1: 1, Surf2: 2},
	}
	lines := e.Chain(segs)
	if len(lines) != 1 {
		t.Fatalf("expected all 3 segments chained into 1 line, got %d lines", len(lines))
	}
	if len(lines[0].Points) != 4 {
		t.Errorf("expected 4 points in chained line, got %d", len(lines[0].Points))
	}
}

func TestEngine_Chain_DropsSubMinLengthSeeds(t *testing.T) {
	tol := Tolerances{GrazeDistance: 0.5, AverageSpacing: 10, Span: 40}
	e := newEngine(tol)

	segs := []model.IntersectionSegment{
		{P1: model.Point3{X: 0, Y: 0}, P2: model.Point3{X: 0.01, Y: 0}, Surf1: 1, Surf2: 2},
	}
	lines := e.Chain(segs)
	if len(lines) != 0 {
		t.Errorf("expected a tiny seed segment below minSegmentLength to be dropped, got %d lines", len(lines))
	}
}

func TestEngine_ConnectCloseLines_JoinsNearbyLines(t *testing.T) {
	tol := Tolerances{GrazeDistance: 0.5, AverageSpacing: 1, Span: 40} // connectCloseLinesDist = 1
	e := newEngine(tol)

	a := &model.IntersectionLine{
		Points: []model.Point3{{X: 0, Y: 0}, {X: 1, Y: 0}},
		Surf1:  1, Surf2: 2,
	}
	b := &model.IntersectionLine{
		Points: []model.Point3{{X: 1.02, Y: 0}, {X: 2, Y: 0}},
		Surf1:  1, Surf2: 2,
	}
	out := e.ConnectCloseLines([]*model.IntersectionLine{a, b})
	if len(out) != 1 {
		t.Fatalf("expected lines within the connect threshold to merge, got %d", len(out))
	}
	if len(out[0].Points) != 4 {
		t.Errorf("expected merged line to carry all 4 points, got %d", len(out[0].Points))
	}
}
