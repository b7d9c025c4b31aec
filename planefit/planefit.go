// Package planefit provides the best-fit-plane ("steep coordinate")
// collaborator named in spec.md §1 item (ii): fitting a plane through a
// fault's nodes via SVD, and rotating/unrotating points into that plane's
// local frame so near-vertical faults triangulate robustly (spec §4.1 step
// 6, §4.3, §4.6 step 2).
//
// Per spec.md §9's Design Note on the rotated-frame transform, the baseline
// is passed explicitly to every Rotate/Unrotate call rather than held in
// global state: Baseline is a pure function of (plane normal, origin).
package planefit

import (
	"errors"
	"math"

	"github.com/glennpinkerton/sealedmodel/seal/model"
	"gonum.org/v1/gonum/mat"
)

// ErrTooFewPoints is returned when Fit is given fewer than 3 points.
var ErrTooFewPoints = errors.New("planefit: need at least 3 points")

// ErrDegenerateNormal is returned when the fitted normal cannot be
// normalized (all input points effectively coincide).
var ErrDegenerateNormal = errors.New("planefit: degenerate normal")

// Plane is a best-fit plane: a unit normal and a point the plane passes
// through (its input centroid).
type Plane struct {
	Normal model.Point3
	Origin model.Point3
}

// Fit computes the least-squares best-fit plane through pts using the SVD
// of the centered coordinate matrix: the right singular vector with the
// smallest singular value is the plane normal. This mirrors the SVD-based
// plane fit spec §4.1 step 6 calls for ("fit a best-fit plane to the
// fault's nodes (SVD via the plane-fit collaborator)").
func Fit(pts []model.Point3) (Plane, error) {
	if len(pts) < 3 {
		return Plane{}, ErrTooFewPoints
	}

	origin := centroid(pts)
	data := mat.NewDense(len(pts), 3, nil)
	for i, p := range pts {
		data.Set(i, 0, p.X-origin.X)
		data.Set(i, 1, p.Y-origin.Y)
		data.Set(i, 2, p.Z-origin.Z)
	}

	var svd mat.SVD
	if ok := svd.Factorize(data, mat.SVDThin); !ok {
		return Plane{}, errors.New("planefit: SVD failed to converge")
	}

	var v mat.Dense
	svd.VTo(&v)

	// mat.SVD orders singular values descending, so the last column of V
	// is the direction of least variance: the plane normal.
	n := model.Point3{X: v.At(0, 2), Y: v.At(1, 2), Z: v.At(2, 2)}
	length := n.Length()
	if length == 0 {
		return Plane{}, ErrDegenerateNormal
	}
	n = n.Scale(1 / length)

	return Plane{Normal: n, Origin: origin}, nil
}

func centroid(pts []model.Point3) model.Point3 {
	var sum model.Point3
	for _, p := range pts {
		sum = sum.Add(p)
	}
	return sum.Scale(1 / float64(len(pts)))
}

// IsSteep reports whether the plane is near-vertical: its normal's
// horizontal magnitude dominates its vertical component. Near-vertical
// faults are exactly the case spec §4.1 step 6 rotates into a plane-local
// frame before triangulating.
func (p Plane) IsSteep() bool {
	horiz := math.Hypot(p.Normal.X, p.Normal.Y)
	return horiz > math.Abs(p.Normal.Z)
}

// VBase packs the plane into the [nx,ny,nz,ox,oy,oz] layout spec §3
// describes for TriMesh.VBase.
func (p Plane) VBase() [6]float64 {
	return [6]float64{p.Normal.X, p.Normal.Y, p.Normal.Z, p.Origin.X, p.Origin.Y, p.Origin.Z}
}

// PlaneFromVBase is VBase's inverse.
func PlaneFromVBase(vbase [6]float64) Plane {
	return Plane{
		Normal: model.Point3{X: vbase[0], Y: vbase[1], Z: vbase[2]},
		Origin: model.Point3{X: vbase[3], Y: vbase[4], Z: vbase[5]},
	}
}

// Adapter satisfies collab.PlaneFitter without this package importing collab
// (collab is the narrow seam the core depends on; planefit stays a leaf).
type Adapter struct{}

// Fit implements collab.PlaneFitter.
func (Adapter) Fit(pts []model.Point3) (normal, origin model.Point3, err error) {
	plane, err := Fit(pts)
	if err != nil {
		return model.Point3{}, model.Point3{}, err
	}
	return plane.Normal, plane.Origin, nil
}

// Baseline is an orthonormal (u, v, n) frame built from a Plane: n is the
// plane normal, u and v span the plane. Rotate/Unrotate are pure functions
// of a Baseline value — no package-level state is mutated, unlike the
// process-wide vert_SetBaseline/vert_UnsetBaseline this collaborator
// replaces (spec §9 Design Note).
type Baseline struct {
	U, V, N model.Point3
	Origin  model.Point3
}

// IdentityBaseline returns the world-frame baseline (u=x, v=y, n=z, origin
// at the origin), used where a collaborator expects a Baseline but the
// surface in question is already flat in the world xy plane.
func IdentityBaseline() Baseline {
	return Baseline{
		U: model.Point3{X: 1, Y: 0, Z: 0},
		V: model.Point3{X: 0, Y: 1, Z: 0},
		N: model.Point3{X: 0, Y: 0, Z: 1},
	}
}

// NewBaseline builds the rotated-frame basis for a plane.
func NewBaseline(p Plane) Baseline {
	n := p.Normal
	ref := model.Point3{X: 0, Y: 0, Z: 1}
	if math.Abs(n.Z) > 0.9 {
		ref = model.Point3{X: 1, Y: 0, Z: 0}
	}
	u := n.Cross(ref)
	if l := u.Length(); l > 0 {
		u = u.Scale(1 / l)
	}
	v := n.Cross(u)
	if l := v.Length(); l > 0 {
		v = v.Scale(1 / l)
	}
	return Baseline{U: u, V: v, N: n, Origin: p.Origin}
}

// Rotate maps a world-space point into the plane-local frame (x', y', z'),
// where z' is the signed distance from the plane.
func (b Baseline) Rotate(p model.Point3) model.Point3 {
	d := p.Sub(b.Origin)
	return model.Point3{X: d.Dot(b.U), Y: d.Dot(b.V), Z: d.Dot(b.N)}
}

// Unrotate is the inverse of Rotate.
func (b Baseline) Unrotate(p model.Point3) model.Point3 {
	world := b.Origin.Add(b.U.Scale(p.X)).Add(b.V.Scale(p.Y)).Add(b.N.Scale(p.Z))
	return world
}

// RotateAll rotates a slice of points, leaving the input untouched.
func (b Baseline) RotateAll(pts []model.Point3) []model.Point3 {
	out := make([]model.Point3, len(pts))
	for i, p := range pts {
		out[i] = b.Rotate(p)
	}
	return out
}

// UnrotateAll is RotateAll's inverse.
func (b Baseline) UnrotateAll(pts []model.Point3) []model.Point3 {
	out := make([]model.Point3, len(pts))
	for i, p := range pts {
		out[i] = b.Unrotate(p)
	}
	return out
}
