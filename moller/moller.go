// Package moller implements the triangle/triangle intersection primitive
// spec.md §1 item (iii) names as an external collaborator: given two
// triangles in 3-D, return the segment where they intersect (or report
// that they do not), following Möller's 1997 "A Fast Triangle-Triangle
// Intersection Test". Coplanar triangles are reported as non-intersecting,
// matching spec §4.2's "coplanar triangle pairs contribute nothing".
//
// The interface shape (functions taking three points per triangle plus an
// epsilon and returning a clipped/derived geometry) follows the teacher's
// predicates.TriangleIntersectionPolygon, generalized from 2-D polygon
// clipping to the 3-D line-interval intersection Möller's test actually
// uses — gomesh's predicates package has no 3-D analogue, so this package
// is new code grounded on that file's signature and doc conventions rather
// than a direct port (see DESIGN.md).
package moller

import (
	"math"

	"github.com/glennpinkerton/sealedmodel/seal/model"
)

// Segment is the 3-D intersection of two non-coplanar, non-degenerate
// triangles.
type Segment struct {
	P1, P2 model.Point3
}

// Length returns the Euclidean length of the segment.
func (s Segment) Length() float64 {
	return s.P1.Distance(s.P2)
}

// Intersect tests triangles (a1,a2,a3) and (b1,b2,b3) for intersection.
// ok is false when the triangles don't intersect, are coplanar, or the
// resulting segment is shorter than minLength (spec §4.2 step 4's
// "non-coplanar, non-degenerate segment longer than
// modelGrazeDistance/10" keep criterion — callers pass that threshold as
// minLength).
func Intersect(a1, a2, a3, b1, b2, b3 model.Point3, eps, minLength float64) (seg Segment, ok bool) {
	na := triNormal(a1, a2, a3)
	nb := triNormal(b1, b2, b3)

	if na.Length() < eps || nb.Length() < eps {
		return Segment{}, false // degenerate triangle
	}

	// Signed distances of b's vertices to a's plane.
	da1 := na.Dot(b1.Sub(a1))
	da2 := na.Dot(b2.Sub(a1))
	da3 := na.Dot(b3.Sub(a1))

	if sameSign(da1, da2, da3, eps) {
		return Segment{}, false // b entirely on one side of a's plane
	}

	// Signed distances of a's vertices to b's plane.
	db1 := nb.Dot(a1.Sub(b1))
	db2 := nb.Dot(a2.Sub(b1))
	db3 := nb.Dot(a3.Sub(b1))

	if sameSign(db1, db2, db3, eps) {
		return Segment{}, false // a entirely on one side of b's plane
	}

	// Direction of the planes' intersection line.
	d := na.Cross(nb)
	if d.Length() < eps {
		return Segment{}, false // parallel planes: coplanar or non-intersecting
	}

	// Project each triangle's vertices onto the line and find the interval
	// where the triangle crosses it.
	ivA, okA := triLineInterval(a1, a2, a3, da1Arr(db1, db2, db3), d)
	if !okA {
		return Segment{}, false
	}
	ivB, okB := triLineInterval(b1, b2, b3, da1Arr(da1, da2, da3), d)
	if !okB {
		return Segment{}, false
	}

	lo := math.Max(ivA.lo, ivB.lo)
	hi := math.Min(ivA.hi, ivB.hi)
	if lo > hi+eps {
		return Segment{}, false // intervals don't overlap
	}

	p1 := pointOnLine(ivA, ivB, lo)
	p2 := pointOnLine(ivA, ivB, hi)
	seg = Segment{P1: p1, P2: p2}
	if seg.Length() < minLength {
		return Segment{}, false
	}
	return seg, true
}

func triNormal(a, b, c model.Point3) model.Point3 {
	return b.Sub(a).Cross(c.Sub(a))
}

func sameSign(a, b, c, eps float64) bool {
	pos := a > eps && b > eps && c > eps
	neg := a < -eps && b < -eps && c < -eps
	return pos || neg
}

func da1Arr(a, b, c float64) [3]float64 { return [3]float64{a, b, c} }

// interval describes the projection of a triangle's crossing of the shared
// line onto the line's parameter t, carrying the two world-space points
// that bound it so the final segment can be computed without re-deriving
// them.
type interval struct {
	lo, hi     float64
	loP, hiP   model.Point3
}

// triLineInterval computes, for a triangle whose vertices have the given
// signed distances to the other triangle's plane, the parametric interval
// along direction d where the triangle's edges cross that plane.
func triLineInterval(v1, v2, v3 model.Point3, dist [3]float64, d model.Point3) (interval, bool) {
	verts := [3]model.Point3{v1, v2, v3}

	type crossing struct {
		t float64
		p model.Point3
	}
	var crossings []crossing

	for i := 0; i < 3; i++ {
		j := (i + 1) % 3
		di, dj := dist[i], dist[j]
		if (di > 0 && dj > 0) || (di < 0 && dj < 0) {
			continue // edge doesn't cross the plane
		}
		if di == 0 && dj == 0 {
			continue // whole edge lies in the plane; handled by adjacent edges
		}
		var t float64
		var p model.Point3
		if di == dj {
			continue
		}
		frac := di / (di - dj)
		p = verts[i].Lerp(verts[j], frac)
		t = d.Dot(p)
		crossings = append(crossings, crossing{t: t, p: p})
	}

	if len(crossings) < 2 {
		return interval{}, false
	}

	lo, hi := crossings[0], crossings[0]
	for _, c := range crossings[1:] {
		if c.t < lo.t {
			lo = c
		}
		if c.t > hi.t {
			hi = c
		}
	}
	return interval{lo: lo.t, hi: hi.t, loP: lo.p, hiP: hi.p}, true
}

// Adapter satisfies collab.TriangleIntersector without this package
// importing collab, keeping moller a leaf package the way predicates and
// algorithm/geometry are in the teacher tree.
type Adapter struct{}

// Intersect implements collab.TriangleIntersector.
func (Adapter) Intersect(a1, a2, a3, b1, b2, b3 model.Point3, eps, minLength float64) (p1, p2 model.Point3, ok bool) {
	seg, found := Intersect(a1, a2, a3, b1, b2, b3, eps, minLength)
	if !found {
		return model.Point3{}, model.Point3{}, false
	}
	return seg.P1, seg.P2, true
}

func pointOnLine(a, b interval, t float64) model.Point3 {
	// Either interval's endpoint points are valid world-space points for
	// parameter t if t matches one of their bounds; pick whichever interval
	// owns this bound.
	switch {
	case math.Abs(t-a.lo) < 1e-12:
		return a.loP
	case math.Abs(t-a.hi) < 1e-12:
		return a.hiP
	case math.Abs(t-b.lo) < 1e-12:
		return b.loP
	case math.Abs(t-b.hi) < 1e-12:
		return b.hiP
	default:
		// Interpolate within whichever interval brackets t.
		if t >= a.lo && t <= a.hi {
			frac := (t - a.lo) / (a.hi - a.lo)
			return a.loP.Lerp(a.hiP, frac)
		}
		frac := (t - b.lo) / (b.hi - b.lo)
		return b.loP.Lerp(b.hiP, frac)
	}
}
