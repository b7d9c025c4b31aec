package splice

import (
	"testing"

	"github.com/glennpinkerton/sealedmodel/seal/model"
)

func TestFindSplicePartners_SharedEndpoint(t *testing.T) {
	a := &model.IntersectionLine{
		Surf1: 1, Surf2: 2,
		Points: []model.Point3{{X: 0, Y: 0}, {X: 1, Y: 0}},
	}
	b := &model.IntersectionLine{
		Surf1: 1, Surf2: 3,
		Points: []model.Point3{{X: 1, Y: 0}, {X: 2, Y: 0}},
	}
	lines := []*model.IntersectionLine{a, b}

	isFault := func(id int) bool { return id == 1 }
	FindSplicePartners(lines, isFault, 1e-6)

	// The shared point is a's last point, so its marker is a.Splice2.
	if !a.Splice2.Present || a.Splice2.LineIndex != 1 {
		t.Errorf("expected a to splice to line 1, got %+v", a.Splice2)
	}
	if !b.Splice1.Present || b.Splice1.LineIndex != 0 {
		t.Errorf("expected b to splice to line 0, got %+v", b.Splice1)
	}
}

func TestFindSplicePartners_NoFaultNoSplice(t *testing.T) {
	a := &model.IntersectionLine{
		Surf1: 1, Surf2: 2,
		Points: []model.Point3{{X: 0, Y: 0}, {X: 1, Y: 0}},
	}
	b := &model.IntersectionLine{
		Surf1: 1, Surf2: 3,
		Points: []model.Point3{{X: 1, Y: 0}, {X: 2, Y: 0}},
	}
	lines := []*model.IntersectionLine{a, b}

	isFault := func(id int) bool { return false }
	FindSplicePartners(lines, isFault, 1e-6)

	if a.Splice1.Present || b.Splice1.Present {
		t.Error("expected no splice markers when neither line touches a fault")
	}
}

func TestResample_SplitsLongSegments(t *testing.T) {
	line := &model.IntersectionLine{
		Points: []model.Point3{{X: 0, Y: 0}, {X: 10, Y: 0}},
	}
	Resample(line, 1.0)

	if len(line.Points) < 9 {
		t.Fatalf("expected long segment to be split into many points, got %d", len(line.Points))
	}
	if line.Points[0] != (model.Point3{X: 0, Y: 0}) {
		t.Error("expected first point preserved")
	}
	last := line.Points[len(line.Points)-1]
	if last != (model.Point3{X: 10, Y: 0}) {
		t.Errorf("expected last point preserved, got %+v", last)
	}
}

func TestResample_ShortLineUnchanged(t *testing.T) {
	line := &model.IntersectionLine{
		Points: []model.Point3{{X: 0, Y: 0}, {X: 0.5, Y: 0}},
	}
	Resample(line, 1.0)
	if len(line.Points) != 2 {
		t.Errorf("expected short segment left alone, got %d points", len(line.Points))
	}
}
