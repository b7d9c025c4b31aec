package pad

import (
	"testing"

	"github.com/glennpinkerton/sealedmodel/planefit"
	"github.com/glennpinkerton/sealedmodel/seal/model"
	"github.com/glennpinkerton/sealedmodel/seal/triangulate"
)

func flatHorizon(externalID int, z float64) *model.TriMesh {
	m := model.NewTriMesh(model.KindHorizon())
	m.ExternalID = externalID
	m.AddNode(model.Point3{X: 0, Y: 0, Z: z})
	m.AddNode(model.Point3{X: 10, Y: 0, Z: z})
	m.AddNode(model.Point3{X: 10, Y: 10, Z: z})
	m.AddNode(model.Point3{X: 0, Y: 10, Z: z})
	m.InstallTriangles([][3]int{{0, 1, 2}, {0, 2, 3}})
	return m
}

func TestPadModel_NoHorizonsErrors(t *testing.T) {
	_, err := PadModel(Inputs{Triangulator: triangulate.New()}, Box{})
	if err != ErrNoHorizons {
		t.Fatalf("expected ErrNoHorizons, got %v", err)
	}
}

func TestPadModelFraction_ExpandsToCoverBox(t *testing.T) {
	h := flatHorizon(1, 0)
	res, err := PadModelFraction(Inputs{
		Horizons:       []*model.TriMesh{h},
		AverageSpacing: 2,
		Triangulator:   triangulate.New(),
	}, FractionSpec{FractionXY: 0.5, FractionZ: 0.1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(res.Horizons) != 1 {
		t.Fatalf("expected 1 padded horizon, got %d", len(res.Horizons))
	}
	padded := res.Horizons[0]
	bb := padded.AABB()
	if bb.Min.X > res.Box.Min.X || bb.Max.X < res.Box.Max.X {
		t.Errorf("expected padded horizon to cover the pad box in x, got bb=%+v box=%+v", bb, res.Box)
	}

	if len(res.Walls) != 4 {
		t.Fatalf("expected 4 side walls, got %d", len(res.Walls))
	}
	for side, w := range res.Walls {
		if w.NumTriangles() == 0 {
			t.Errorf("expected wall %v to have triangles", side)
		}
	}
}

func TestPadModel_DefaultTopBottomWhenSimSealAndNoSedimentSurface(t *testing.T) {
	h := flatHorizon(1, 0)
	res, err := PadModelFraction(Inputs{
		Horizons:       []*model.TriMesh{h},
		AverageSpacing: 2,
		SimSealFlag:    true,
		Triangulator:   triangulate.New(),
	}, FractionSpec{FractionXY: 0.2, FractionZ: 0.2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.DefaultTop == nil || res.DefaultBottom == nil {
		t.Error("expected default top/bottom to be synthesized when SimSealFlag is set and no sediment surface given")
	}
}

func TestPadModel_NoDefaultTopBottomWithoutSimSeal(t *testing.T) {
	h := flatHorizon(1, 0)
	res, err := PadModelFraction(Inputs{
		Horizons:       []*model.TriMesh{h},
		AverageSpacing: 2,
		Triangulator:   triangulate.New(),
	}, FractionSpec{FractionXY: 0.2, FractionZ: 0.2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.DefaultTop != nil || res.DefaultBottom != nil {
		t.Error("expected no default top/bottom without SimSealFlag")
	}
}

func steepFault(externalID int) *model.TriMesh {
	m := model.NewTriMesh(model.KindFault())
	m.ExternalID = externalID
	// A near-vertical plane at x=5, spanning y in [0,10], z in [0,10].
	m.AddNode(model.Point3{X: 5, Y: 0, Z: 0})
	m.AddNode(model.Point3{X: 5, Y: 10, Z: 0})
	m.AddNode(model.Point3{X: 5, Y: 10, Z: 10})
	m.AddNode(model.Point3{X: 5, Y: 0, Z: 10})
	m.InstallTriangles([][3]int{{0, 1, 2}, {0, 2, 3}})
	return m
}

func TestPadModel_PadsFaultUsingPlaneFitter(t *testing.T) {
	h := flatHorizon(1, 5)
	f := steepFault(2)
	res, err := PadModelFraction(Inputs{
		Horizons:       []*model.TriMesh{h},
		Faults:         []*model.TriMesh{f},
		AverageSpacing: 2,
		Triangulator:   triangulate.New(),
		PlaneFitter:    planefit.Adapter{},
	}, FractionSpec{FractionXY: 0.5, FractionZ: 0.5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Faults) != 1 {
		t.Fatalf("expected 1 padded fault, got %d", len(res.Faults))
	}
	if res.Faults[0].VFlag != 1 {
		t.Error("expected padded fault to record a plane-frame baseline")
	}
	if res.Faults[0].NumTriangles() == 0 {
		t.Error("expected padded fault to have triangles")
	}
}
