package model

import "testing"

func TestPoint3Distance(t *testing.T) {
	a := Point3{0, 0, 0}
	b := Point3{3, 4, 0}
	if got := a.Distance(b); got != 5 {
		t.Fatalf("expected distance 5, got %v", got)
	}
}

func TestAABB3Overlaps(t *testing.T) {
	a := AABB3{Min: Point3{0, 0, 0}, Max: Point3{10, 10, 10}}
	b := AABB3{Min: Point3{5, 5, 5}, Max: Point3{15, 15, 15}}
	c := AABB3{Min: Point3{20, 20, 20}, Max: Point3{30, 30, 30}}
	if !a.Overlaps(b) {
		t.Fatalf("expected a to overlap b")
	}
	if a.Overlaps(c) {
		t.Fatalf("expected a to not overlap c")
	}
}

func TestIsClosedPath(t *testing.T) {
	pts := []Point3{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 0, 0}}
	if !IsClosedPath(pts, 1e-9) {
		t.Fatalf("expected closed path")
	}
	open := []Point3{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}}
	if IsClosedPath(open, 1e-9) {
		t.Fatalf("expected open path")
	}
}

func TestKindFromLegacyID(t *testing.T) {
	cases := []struct {
		id   int
		want string
	}{
		{5, "horizon"},
		{FaultIDBase + 3, "fault"},
		{BoundaryIDBase + NorthID, "boundary(north)"},
		{SedimentSurfaceID, "sediment-top"},
		{ModelBottomID, "model-bottom"},
		{DetachmentTMeshID, "detachment"},
	}
	for _, c := range cases {
		if got := KindFromLegacyID(c.id).String(); got != c.want {
			t.Errorf("KindFromLegacyID(%d) = %q, want %q", c.id, got, c.want)
		}
	}
}
