// Package geom2d holds small planar-geometry helpers shared across the
// sealing pipeline that don't belong to any one stage: padding (the fault
// plane-frame outer ring) and embedding (the outer ring handed to the
// triangulation collaborator) both need a 2-D convex hull, so it lives
// here instead of being copied into each.
package geom2d

import (
	"math"

	"github.com/glennpinkerton/sealedmodel/types"
)

// ConvexHull computes the 2-D convex hull via Andrew's monotone chain,
// returning points in CCW order — the polygon shape the triangulation
// collaborator expects for its outer ring.
func ConvexHull(pts []types.Point) []types.Point {
	uniq := dedupPoints(pts)
	if len(uniq) < 3 {
		return uniq
	}
	sortPoints(uniq)

	cross := func(o, a, b types.Point) float64 {
		return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
	}

	var lower, upper []types.Point
	for _, p := range uniq {
		for len(lower) >= 2 && cross(lower[len(lower)-2], lower[len(lower)-1], p) <= 0 {
			lower = lower[:len(lower)-1]
		}
		lower = append(lower, p)
	}
	for i := len(uniq) - 1; i >= 0; i-- {
		p := uniq[i]
		for len(upper) >= 2 && cross(upper[len(upper)-2], upper[len(upper)-1], p) <= 0 {
			upper = upper[:len(upper)-1]
		}
		upper = append(upper, p)
	}
	return append(lower[:len(lower)-1], upper[:len(upper)-1]...)
}

func dedupPoints(pts []types.Point) []types.Point {
	const tol = 1e-9
	var out []types.Point
	for _, p := range pts {
		dup := false
		for _, q := range out {
			if math.Abs(p.X-q.X) < tol && math.Abs(p.Y-q.Y) < tol {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, p)
		}
	}
	return out
}

func sortPoints(pts []types.Point) {
	// Insertion sort by (x, y): hull inputs are small (boundary + 8 box
	// corners), so an O(n^2) sort needs no library import here.
	for i := 1; i < len(pts); i++ {
		j := i
		for j > 0 && less(pts[j], pts[j-1]) {
			pts[j], pts[j-1] = pts[j-1], pts[j]
			j--
		}
	}
}

func less(a, b types.Point) bool {
	if a.X != b.X {
		return a.X < b.X
	}
	return a.Y < b.Y
}
