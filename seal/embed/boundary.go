package embed

import (
	"github.com/glennpinkerton/sealedmodel/planefit"
	"github.com/glennpinkerton/sealedmodel/seal/collab"
	"github.com/glennpinkerton/sealedmodel/seal/geom2d"
	"github.com/glennpinkerton/sealedmodel/seal/model"
	"github.com/glennpinkerton/sealedmodel/types"
)

// EmbedBoundary runs spec §4.6's boundary paragraph: embeds the matching
// fault-boundary and horizon-boundary lines plus any top/bottom-boundary
// lines (flagged LIMIT_LINE_FLAG) into a vertical side wall, then chews
// off the parts above the top constraint and below the bottom one.
func EmbedBoundary(wall *model.TriMesh, constraints []Constraint, tri collab.Triangulator, topZ, bottomZ *float64) (*Result, error) {
	out := wall.Clone()
	out.IsSealed = true

	plane := planefit.PlaneFromVBase(wall.VBase)
	baseline := planefit.NewBaseline(plane)

	toXY := func(p model.Point3) types.Point {
		r := baseline.Rotate(p)
		return types.Point{X: r.X, Y: r.Y}
	}

	outer := make([]types.Point, 0, len(out.Nodes))
	for _, n := range out.Nodes {
		if !n.Deleted {
			outer = append(outer, toXY(n.Pos))
		}
	}

	var extras [][2]types.Point
	for _, c := range constraints {
		for i := 0; i+1 < len(c.Points); i++ {
			extras = append(extras, [2]types.Point{toXY(c.Points[i]), toXY(c.Points[i+1])})
		}
	}

	result, err := tri.Triangulate(geom2d.ConvexHull(outer), nil, extras)
	if err != nil {
		return nil, err
	}

	out.Nodes = out.Nodes[:0]
	out.Edges = out.Edges[:0]
	out.Triangles = out.Triangles[:0]
	for _, p := range result.Points {
		out.AddNode(baseline.Unrotate(model.Point3{X: p.X, Y: p.Y, Z: 0}))
	}
	out.InstallTriangles(result.Triangles)
	markConstraintEdges(out, constraints, baseline)

	if topZ != nil {
		if seed := nodeAboveZ(out, *topZ); seed >= 0 {
			Chew(out, seed)
		}
	}
	if bottomZ != nil {
		if seed := nodeBelowZ(out, *bottomZ); seed >= 0 {
			Chew(out, seed)
		}
	}

	return &Result{Mesh: out, SealedToSides: true}, nil
}

func nodeAboveZ(m *model.TriMesh, z float64) int {
	for i, n := range m.Nodes {
		if !n.Deleted && n.Pos.Z > z {
			return i
		}
	}
	return -1
}

func nodeBelowZ(m *model.TriMesh, z float64) int {
	for i, n := range m.Nodes {
		if !n.Deleted && n.Pos.Z < z {
			return i
		}
	}
	return -1
}

// EmbedHorizon constrains a padded horizon exactly to its sealed-border
// polygon and clips to it (spec §4.6, "for each horizon the sealed border
// descriptor is used to assemble the closed polygon; the padded trimesh
// is constrained exactly to this polygon and clipped to it").
func EmbedHorizon(horizon *model.TriMesh, polygon []model.Point3, tri collab.Triangulator) (*model.TriMesh, error) {
	out := horizon.Clone()
	out.IsSealed = true

	outer := make([]types.Point, 0, len(polygon))
	for _, p := range polygon {
		outer = append(outer, types.Point{X: p.X, Y: p.Y})
	}

	result, err := tri.Triangulate(outer, nil, nil)
	if err != nil {
		return nil, err
	}

	zAt := nearestZLookup(polygon)

	out.Nodes = out.Nodes[:0]
	out.Edges = out.Edges[:0]
	out.Triangles = out.Triangles[:0]
	for _, p := range result.Points {
		out.AddNode(model.Point3{X: p.X, Y: p.Y, Z: zAt(p.X, p.Y)})
	}
	out.InstallTriangles(result.Triangles)
	return out, nil
}

func nearestZLookup(polygon []model.Point3) func(x, y float64) float64 {
	return func(x, y float64) float64 {
		if len(polygon) == 0 {
			return 0
		}
		best := polygon[0]
		bestD := dist2(best.X, best.Y, x, y)
		for _, p := range polygon[1:] {
			d := dist2(p.X, p.Y, x, y)
			if d < bestD {
				bestD, best = d, p
			}
		}
		return best.Z
	}
}

func dist2(x1, y1, x2, y2 float64) float64 {
	dx, dy := x1-x2, y1-y2
	return dx*dx + dy*dy
}

// ReconcileCorners implements spec §4.6's corner-reconciliation pass: for
// a pair of boundary walls meeting at a corner, any node on one wall not
// matched (within tol on z) by a coordinate on the other is removed,
// preserving topology via Chew rather than a raw node splice.
func ReconcileCorners(a, b *model.TriMesh, tol float64) {
	bz := make([]float64, 0, len(b.Nodes))
	for _, n := range b.Nodes {
		if !n.Deleted {
			bz = append(bz, n.Pos.Z)
		}
	}
	removeUnmatched(a, bz, tol)

	az := make([]float64, 0, len(a.Nodes))
	for _, n := range a.Nodes {
		if !n.Deleted {
			az = append(az, n.Pos.Z)
		}
	}
	removeUnmatched(b, az, tol)
}

func removeUnmatched(m *model.TriMesh, otherZ []float64, tol float64) {
	for i, n := range m.Nodes {
		if n.Deleted {
			continue
		}
		matched := false
		for _, z := range otherZ {
			if abs(n.Pos.Z-z) < tol {
				matched = true
				break
			}
		}
		if !matched && !nodeHasConstrainedEdge(m, i) {
			m.Nodes[i].Deleted = true
		}
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
