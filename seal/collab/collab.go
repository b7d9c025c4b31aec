// Package collab declares the seams between the sealing core and its four
// external collaborators (spec.md §1): the constrained-triangulation
// library, the best-fit-plane/steep-coordinate transform, the Möller
// triangle/triangle intersection primitive, and the 3-D spatial index over
// triangles. The core (seal/pad, seal/xsect, seal/splice, seal/outline,
// seal/embed, seal/tetgen) only ever calls these interfaces; concrete
// implementations live in seal/triangulate, planefit, moller and spatial.
package collab

import (
	"github.com/glennpinkerton/sealedmodel/seal/model"
	"github.com/glennpinkerton/sealedmodel/types"
)

// Triangulator inserts constraint edges into a 2-D mesh, re-triangulates,
// clips to a polygon, resamples polylines along a boundary, and computes
// trimesh boundaries — spec §1 item (i). All points are in whatever 2-D
// frame the caller chose (plane coordinates in rotated space, or plain xy
// for horizons); types.Point is the teacher's own 2-D point type, the same
// one cdt/mesh operate on.
type Triangulator interface {
	// Triangulate builds a constrained Delaunay triangulation of outer
	// (a CCW polygon), holes (CW polygons strictly inside outer) and
	// extras (additional constraint segments not on outer/holes).
	Triangulate(outer []types.Point, holes [][]types.Point, extras [][2]types.Point) (*TriangulationResult, error)
}

// TriangulationResult is the triangulator's output: plane-local points,
// triangles referencing them by index, and the boundary edges (those used
// by exactly one triangle).
type TriangulationResult struct {
	Points    []types.Point
	Triangles [][3]int
	Boundary  [][2]int
}

// PlaneFitter fits a best-fit plane to a point cloud — spec §1 item (ii).
type PlaneFitter interface {
	Fit(pts []model.Point3) (normal, origin model.Point3, err error)
}

// TriangleIntersector computes the 3-D segment where two triangles
// intersect — spec §1 item (iii).
type TriangleIntersector interface {
	Intersect(a1, a2, a3, b1, b2, b3 model.Point3, eps, minLength float64) (p1, p2 model.Point3, ok bool)
}

// TriangleIndexFactory builds a fresh 3-D spatial index over triangles —
// spec §1 item (iv). Implementations select the bucket grid (default) or
// an alternate backend (e.g. an R-tree).
type TriangleIndexFactory func(cellSize float64) Index3D

// Index3D is the subset of spatial.Index3D the core depends on, repeated
// here so seal/* packages don't import the spatial package directly —
// only the adapters in seal/index do.
type Index3D interface {
	Insert(meshID, triID int, minX, minY, minZ, maxX, maxY, maxZ float64)
	Query(minX, minY, minZ, maxX, maxY, maxZ float64) []TriRef
}

// TriRef identifies one triangle belonging to one mesh.
type TriRef struct {
	MeshID int
	TriID  int
}
