package model

import "math"

// Epsilon3 stores absolute and relative tolerances for 3-D geometric
// comparisons, the same combined-tolerance formula as the teacher's
// types.Epsilon: tol(v) = Abs + Rel*|v|.
type Epsilon3 struct {
	Abs float64
	Rel float64
}

// NewEpsilon3 constructs a normalized Epsilon3.
func NewEpsilon3(abs, rel float64) Epsilon3 {
	return Epsilon3{Abs: abs, Rel: rel}.normalized()
}

func (e Epsilon3) normalized() Epsilon3 {
	if e.Abs < 0 {
		e.Abs = -e.Abs
	}
	if e.Rel < 0 {
		e.Rel = -e.Rel
	}
	return e
}

// Value computes the combined tolerance for a coordinate magnitude.
func (e Epsilon3) Value(mag float64) float64 {
	e = e.normalized()
	return e.Abs + e.Rel*mag
}

// TolForPoints returns the tolerance to use when comparing the supplied points.
func (e Epsilon3) TolForPoints(pts ...Point3) float64 {
	maxMag := 0.0
	for _, p := range pts {
		for _, c := range [3]float64{p.X, p.Y, p.Z} {
			if m := math.Abs(c); m > maxMag {
				maxMag = m
			}
		}
	}
	return e.Value(maxMag)
}

// SamePoint reports whether a and b coincide within the model's "grazing"
// tolerance, tol. This is the "same-point" test named in spec §2's
// Geometry primitives component.
func SamePoint(a, b Point3, tol float64) bool {
	return a.Distance(b) <= tol
}

// VectorAngle returns the angle in radians between vectors (a->b) and (a->c),
// in [0, pi]. Degenerate (zero-length) inputs return 0.
func VectorAngle(a, b, c Point3) float64 {
	u := b.Sub(a)
	v := c.Sub(a)
	lu := u.Length()
	lv := v.Length()
	if lu == 0 || lv == 0 {
		return 0
	}
	cos := u.Dot(v) / (lu * lv)
	if cos > 1 {
		cos = 1
	}
	if cos < -1 {
		cos = -1
	}
	return math.Acos(cos)
}

// DistancePointLine3 returns the shortest distance from p to the infinite
// line through a and b. Used by the splice/reconcile crossing-correction
// pass (spec §4.3) to find the nearest point on a neighboring line.
func DistancePointLine3(p, a, b Point3) float64 {
	ab := b.Sub(a)
	length2 := ab.Dot(ab)
	if length2 == 0 {
		return p.Distance(a)
	}
	t := p.Sub(a).Dot(ab) / length2
	proj := a.Add(ab.Scale(t))
	return p.Distance(proj)
}

// DistancePointSegment3 returns the shortest distance from p to the closed
// segment [a,b].
func DistancePointSegment3(p, a, b Point3) float64 {
	ab := b.Sub(a)
	length2 := ab.Dot(ab)
	if length2 == 0 {
		return p.Distance(a)
	}
	t := p.Sub(a).Dot(ab) / length2
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	proj := a.Add(ab.Scale(t))
	return p.Distance(proj)
}

// IsClosedPath reports whether the ordered point list forms a closed loop,
// i.e. its first and last points coincide within tol. Requires at least
// two points.
func IsClosedPath(pts []Point3, tol float64) bool {
	if len(pts) < 2 {
		return false
	}
	return SamePoint(pts[0], pts[len(pts)-1], tol)
}
