package embed

import (
	"testing"

	"github.com/glennpinkerton/sealedmodel/seal/model"
)

// buildStrip builds a 1x4 strip of triangles: nodes at x=0..4, y=0/1,
// forming four triangles in a row, with every internal edge unconstrained.
func buildStrip() *model.TriMesh {
	m := model.NewTriMesh(model.KindFault())
	for x := 0.0; x <= 4; x++ {
		m.AddNode(model.Point3{X: x, Y: 0})
		m.AddNode(model.Point3{X: x, Y: 1})
	}
	// node indices: (x=0,y0)=0 (x=0,y1)=1 (x=1,y0)=2 (x=1,y1)=3 ...
	tris := [][3]int{
		{0, 2, 1}, {2, 3, 1},
		{2, 4, 3}, {4, 5, 3},
		{4, 6, 5}, {6, 7, 5},
		{6, 8, 7}, {8, 9, 7},
	}
	m.InstallTriangles(tris)
	return m
}

func TestChew_StopsAtConstraint(t *testing.T) {
	m := buildStrip()

	// Constrain the edge between x=1 column nodes (2,3), splitting the
	// strip into two halves.
	for i := range m.Edges {
		e := &m.Edges[i]
		if (e.N1 == 2 && e.N2 == 3) || (e.N1 == 3 && e.N2 == 2) {
			e.IsConstraint = true
		}
	}

	Chew(m, 0) // seed in the left half

	leftDeleted := 0
	rightDeleted := 0
	for ti, t := range m.Triangles {
		nodes := m.TriangleNodes(ti)
		maxX := 0.0
		for _, ni := range nodes {
			if m.Nodes[ni].Pos.X > maxX {
				maxX = m.Nodes[ni].Pos.X
			}
		}
		if maxX <= 2 {
			if t.Deleted {
				leftDeleted++
			}
		} else if maxX > 2 {
			if t.Deleted {
				rightDeleted++
			}
		}
	}

	if leftDeleted == 0 {
		t.Error("expected triangles on the seed side of the constraint to be chewed")
	}
	if rightDeleted != 0 {
		t.Error("expected triangles beyond the constraint to survive")
	}
}

func TestChew_NoConstraintDeletesEverything(t *testing.T) {
	m := buildStrip()
	Chew(m, 0)
	for ti, t := range m.Triangles {
		if !t.Deleted {
			t.Errorf("triangle %d should have been chewed with no constraint barrier", ti)
		}
	}
}

func TestBuildFaultConstraints_FiltersByAge(t *testing.T) {
	fault := model.NewTriMesh(model.KindFault())
	fault.MinAge, fault.MaxAge = 10, 20
	fault.AddNode(model.Point3{X: 0, Y: 0, Z: 0})
	fault.AddNode(model.Point3{X: 1, Y: 0, Z: 0})
	fault.AddNode(model.Point3{X: 1, Y: 1, Z: 0})
	fault.InstallTriangles([][3]int{{0, 1, 2}})

	inRange := Constraint{LineIndex: 1, Points: []model.Point3{{X: 0, Y: 0, Z: 0}}}
	outOfRange := Constraint{LineIndex: 2, Points: []model.Point3{{X: 0, Y: 0, Z: 0}}}

	ageOf := func(lineIndex int) float64 {
		if lineIndex == 1 {
			return 15
		}
		return 99
	}

	out := BuildFaultConstraints(fault, nil, []Constraint{inRange, outOfRange}, ageOf)
	if len(out) != 1 || out[0].LineIndex != 1 {
		t.Errorf("expected only the in-range horizon intersect to survive, got %+v", out)
	}
}
