// Package index adapts the spatial package's 3-D and 2-D indexes to the
// narrower seams seal/collab and the core packages depend on. It is the
// only place outside spatial/ and cmd/ that imports spatial directly.
package index

import (
	"github.com/glennpinkerton/sealedmodel/seal/collab"
	"github.com/glennpinkerton/sealedmodel/seal/model"
	"github.com/glennpinkerton/sealedmodel/spatial"
	"github.com/glennpinkerton/sealedmodel/types"
)

// TriangleIndex bridges spatial.Index3D (keyed by a TriRef struct) to
// collab.Index3D (keyed by separate meshID/triID ints), so seal/pad and
// seal/xsect can depend on collab.Index3D without pulling in spatial.
type TriangleIndex struct {
	backend spatial.Index3D
}

// NewTriangleIndex wraps a spatial.Index3D backend (spatial.Grid3D or
// spatial.RTreeIndex) as a collab.Index3D.
func NewTriangleIndex(backend spatial.Index3D) *TriangleIndex {
	return &TriangleIndex{backend: backend}
}

// NewGridTriangleIndex is the TriangleIndexFactory default: a uniform
// bucket grid sized to the model's averageSpacing, per spec §4.2 step 1.
func NewGridTriangleIndex(cellSize float64) collab.Index3D {
	return NewTriangleIndex(spatial.NewGrid3D(cellSize))
}

// NewRTreeTriangleIndex is the alternate TriangleIndexFactory backed by an
// R-tree, selectable when a model has enough triangles that a bucket grid's
// memory footprint becomes a concern.
func NewRTreeTriangleIndex(cellSize float64) collab.Index3D {
	return NewTriangleIndex(spatial.NewRTreeIndex())
}

// Insert implements collab.Index3D.
func (t *TriangleIndex) Insert(meshID, triID int, minX, minY, minZ, maxX, maxY, maxZ float64) {
	t.backend.Insert(spatial.TriRef{MeshID: meshID, TriID: triID}, minX, minY, minZ, maxX, maxY, maxZ)
}

// Query implements collab.Index3D.
func (t *TriangleIndex) Query(minX, minY, minZ, maxX, maxY, maxZ float64) []collab.TriRef {
	refs := t.backend.Query(minX, minY, minZ, maxX, maxY, maxZ)
	out := make([]collab.TriRef, len(refs))
	for i, r := range refs {
		out[i] = collab.TriRef{MeshID: r.MeshID, TriID: r.TriID}
	}
	return out
}

// NodeIndex resolves nearby nodes by (x, y) position, used by seal/outline
// to recover the z of a shared outline point from whichever horizon/fault
// node it came from (spec §4.4's z-resolution step) and by seal/splice to
// find splice partners. It wraps spatial.HashGrid, which only stores
// 2-D types.Point keyed by a types.VertexID, by keeping a parallel table of
// full 3-D points so z survives the round trip.
type NodeIndex struct {
	grid   *spatial.HashGrid
	points []model.Point3
}

// NewNodeIndex creates an empty node index with the given cell size.
func NewNodeIndex(cellSize float64) *NodeIndex {
	return &NodeIndex{grid: spatial.NewHashGrid(cellSize)}
}

// Add inserts p and returns the id future queries will report for it.
func (n *NodeIndex) Add(p model.Point3) types.VertexID {
	id := types.VertexID(len(n.points))
	n.points = append(n.points, p)
	n.grid.AddVertex(id, types.Point{X: p.X, Y: p.Y})
	return id
}

// FindNear returns every point within radius of (x, y) in the xy-plane,
// alongside the ids Add returned for them.
func (n *NodeIndex) FindNear(x, y, radius float64) ([]types.VertexID, []model.Point3) {
	ids := n.grid.FindVerticesNear(types.Point{X: x, Y: y}, radius)
	pts := make([]model.Point3, len(ids))
	for i, id := range ids {
		pts[i] = n.points[id]
	}
	return ids, pts
}

// Point returns the full 3-D point stored under id.
func (n *NodeIndex) Point(id types.VertexID) model.Point3 {
	return n.points[id]
}
