package outline

import (
	"testing"

	"github.com/glennpinkerton/sealedmodel/seal/model"
)

func p(x, y float64) model.Point3 { return model.Point3{X: x, Y: y} }

func TestBuildFaces_SquareSplitByDiagonal(t *testing.T) {
	// A unit square with its two halves contributed as separate polylines:
	// the square's perimeter plus a diagonal. This forms two triangular
	// bounded faces and one (dropped) unbounded outer face.
	lines := []PolylineInput{
		{LineID: 1, Points: []model.Point3{p(0, 0), p(1, 0), p(1, 1), p(0, 1), p(0, 0)}},
		{LineID: 2, Points: []model.Point3{p(0, 0), p(1, 1)}},
	}

	faces := BuildFaces(lines, 1e-9)
	if len(faces) != 2 {
		t.Fatalf("expected 2 bounded faces, got %d", len(faces))
	}
	for _, f := range faces {
		if len(f.Points) != 3 {
			t.Errorf("expected triangular face, got %d points", len(f.Points))
		}
	}
}

func TestBuildFaces_SingleTriangle(t *testing.T) {
	lines := []PolylineInput{
		{LineID: 1, Points: []model.Point3{p(0, 0), p(2, 0), p(1, 2), p(0, 0)}},
	}
	faces := BuildFaces(lines, 1e-9)
	if len(faces) != 1 {
		t.Fatalf("expected 1 bounded face, got %d", len(faces))
	}
	if len(faces[0].Points) != 3 {
		t.Errorf("expected 3 points, got %d", len(faces[0].Points))
	}
}

func TestBuildFaces_NoEdges(t *testing.T) {
	faces := BuildFaces(nil, 1e-9)
	if len(faces) != 0 {
		t.Errorf("expected no faces for empty input, got %d", len(faces))
	}
}
