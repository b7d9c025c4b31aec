// Package model holds the design types of the sealing pipeline: nodes,
// edges, triangles, triangle meshes, intersection lines, outlines and
// sealed-border descriptors. It mirrors the 2-D types package that the
// triangulation collaborator (cdt/mesh) operates on, but in three
// dimensions, since the sealing core works on surfaces embedded in xyz.
package model

import "math"

// Point3 is a position in 3-D Cartesian space.
type Point3 struct {
	X, Y, Z float64
}

// Sub returns p-q.
func (p Point3) Sub(q Point3) Point3 {
	return Point3{p.X - q.X, p.Y - q.Y, p.Z - q.Z}
}

// Add returns p+q.
func (p Point3) Add(q Point3) Point3 {
	return Point3{p.X + q.X, p.Y + q.Y, p.Z + q.Z}
}

// Scale returns p*s.
func (p Point3) Scale(s float64) Point3 {
	return Point3{p.X * s, p.Y * s, p.Z * s}
}

// Dot returns the dot product of p and q.
func (p Point3) Dot(q Point3) float64 {
	return p.X*q.X + p.Y*q.Y + p.Z*q.Z
}

// Cross returns the cross product p x q.
func (p Point3) Cross(q Point3) Point3 {
	return Point3{
		X: p.Y*q.Z - p.Z*q.Y,
		Y: p.Z*q.X - p.X*q.Z,
		Z: p.X*q.Y - p.Y*q.X,
	}
}

// Length returns the Euclidean norm of p.
func (p Point3) Length() float64 {
	return math.Sqrt(p.Dot(p))
}

// Distance returns the Euclidean distance between p and q.
func (p Point3) Distance(q Point3) float64 {
	return p.Sub(q).Length()
}

// Lerp linearly interpolates between p and q at parameter t in [0,1].
func (p Point3) Lerp(q Point3, t float64) Point3 {
	return Point3{
		X: p.X + (q.X-p.X)*t,
		Y: p.Y + (q.Y-p.Y)*t,
		Z: p.Z + (q.Z-p.Z)*t,
	}
}

// AABB3 is an axis-aligned bounding box in 3-D space, inclusive on all sides.
type AABB3 struct {
	Min, Max Point3
}

// Union returns the smallest AABB3 containing both a and b.
func (a AABB3) Union(b AABB3) AABB3 {
	return AABB3{
		Min: Point3{min(a.Min.X, b.Min.X), min(a.Min.Y, b.Min.Y), min(a.Min.Z, b.Min.Z)},
		Max: Point3{max(a.Max.X, b.Max.X), max(a.Max.Y, b.Max.Y), max(a.Max.Z, b.Max.Z)},
	}
}

// Expand returns a copy of a grown by margin on every side.
func (a AABB3) Expand(margin float64) AABB3 {
	return AABB3{
		Min: Point3{a.Min.X - margin, a.Min.Y - margin, a.Min.Z - margin},
		Max: Point3{a.Max.X + margin, a.Max.Y + margin, a.Max.Z + margin},
	}
}

// Overlaps reports whether a and b share any volume (inclusive).
func (a AABB3) Overlaps(b AABB3) bool {
	return a.Min.X <= b.Max.X && a.Max.X >= b.Min.X &&
		a.Min.Y <= b.Max.Y && a.Max.Y >= b.Min.Y &&
		a.Min.Z <= b.Max.Z && a.Max.Z >= b.Min.Z
}

// Contains reports whether p lies within a (inclusive).
func (a AABB3) Contains(p Point3) bool {
	return p.X >= a.Min.X && p.X <= a.Max.X &&
		p.Y >= a.Min.Y && p.Y <= a.Max.Y &&
		p.Z >= a.Min.Z && p.Z <= a.Max.Z
}

// BBoxOfPoints computes the AABB3 of a non-empty point slice.
func BBoxOfPoints(pts []Point3) AABB3 {
	if len(pts) == 0 {
		return AABB3{}
	}
	box := AABB3{Min: pts[0], Max: pts[0]}
	for _, p := range pts[1:] {
		if p.X < box.Min.X {
			box.Min.X = p.X
		}
		if p.Y < box.Min.Y {
			box.Min.Y = p.Y
		}
		if p.Z < box.Min.Z {
			box.Min.Z = p.Z
		}
		if p.X > box.Max.X {
			box.Max.X = p.X
		}
		if p.Y > box.Max.Y {
			box.Max.Y = p.Y
		}
		if p.Z > box.Max.Z {
			box.Max.Z = p.Z
		}
	}
	return box
}
