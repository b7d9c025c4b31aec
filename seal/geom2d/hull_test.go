package geom2d

import (
	"testing"

	"github.com/glennpinkerton/sealedmodel/types"
)

func TestConvexHull_SquareWithInteriorPoint(t *testing.T) {
	pts := []types.Point{
		{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 4}, {X: 0, Y: 4},
		{X: 2, Y: 2}, // interior, must not survive
	}
	hull := ConvexHull(pts)
	if len(hull) != 4 {
		t.Fatalf("expected 4 hull vertices, got %d: %v", len(hull), hull)
	}
	for _, p := range hull {
		if p == (types.Point{X: 2, Y: 2}) {
			t.Error("interior point should not be part of the hull")
		}
	}
}

func TestConvexHull_DuplicatePointsCollapse(t *testing.T) {
	pts := []types.Point{
		{X: 0, Y: 0}, {X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1},
	}
	hull := ConvexHull(pts)
	if len(hull) != 3 {
		t.Fatalf("expected duplicate point to collapse to a 3-vertex hull, got %d", len(hull))
	}
}

func TestConvexHull_FewerThanThreePoints(t *testing.T) {
	pts := []types.Point{{X: 0, Y: 0}, {X: 1, Y: 1}}
	hull := ConvexHull(pts)
	if len(hull) != 2 {
		t.Errorf("expected degenerate input passed through unchanged, got %v", hull)
	}
}
