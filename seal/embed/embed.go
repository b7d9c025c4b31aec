// Package embed implements constraint embedding, cropping and "chewing"
// (spec §4.6): inserting sealed-intersect polylines as exact constraints
// on faults and boundaries, then topologically deleting triangles beyond
// the outermost constraint.
package embed

import (
	"github.com/glennpinkerton/sealedmodel/planefit"
	"github.com/glennpinkerton/sealedmodel/seal/collab"
	"github.com/glennpinkerton/sealedmodel/seal/geom2d"
	"github.com/glennpinkerton/sealedmodel/seal/model"
	"github.com/glennpinkerton/sealedmodel/types"
)

// Constraint is one polyline to embed as an exact constraint, tagged with
// the originating intersection-line index so the result can be traced
// back to a sealed-border entry.
type Constraint struct {
	LineIndex int
	Points    []model.Point3
	IsLimit   bool // spec §4.6 "LIMIT_LINE_FLAG" top/bottom-boundary lines
}

// BuildFaultConstraints assembles a fault's constraint list (spec §4.6
// step 1): the detachment polyline (if any), every sealed-fault intersect
// sharing this fault whose z range overlaps [fault.zmin,zmax], and every
// sealed-horizon intersect whose other surface's age falls in
// [fault.minage,maxage].
func BuildFaultConstraints(fault *model.TriMesh, faultIntersects []Constraint, horizonIntersects []Constraint, ageOf func(lineIndex int) float64) []Constraint {
	var out []Constraint

	if len(fault.Detachment) > 0 {
		out = append(out, Constraint{LineIndex: -1, Points: fault.Detachment})
	}

	faultZMin, faultZMax := meshZRange(fault)

	for _, c := range faultIntersects {
		if zRangeEntirelyOutside(c.Points, faultZMin, faultZMax) {
			continue // spec §5 open-question decision: all-or-nothing discard, preserved
		}
		out = append(out, c)
	}

	for _, c := range horizonIntersects {
		age := ageOf(c.LineIndex)
		if age < fault.MinAge || age > fault.MaxAge {
			continue
		}
		out = append(out, c)
	}

	return out
}

func meshZRange(m *model.TriMesh) (float64, float64) {
	bb := m.AABB()
	return bb.Min.Z, bb.Max.Z
}

func zRangeEntirelyOutside(pts []model.Point3, zmin, zmax float64) bool {
	for _, p := range pts {
		if p.Z >= zmin && p.Z <= zmax {
			return false
		}
	}
	return true
}

// Result is the outcome of embedding a fault or boundary.
type Result struct {
	Mesh          *model.TriMesh
	SealedToSides bool
}

// EmbedFault runs spec §4.6 steps 2-5 for one fault: rotate into plane
// frame if steep, embed constraints via the triangulation collaborator,
// chew from the highest and lowest boundary nodes, unrotate.
func EmbedFault(fault *model.TriMesh, constraints []Constraint, tri collab.Triangulator, topBounded bool) (*Result, error) {
	out := fault.Clone()
	out.IsSealed = true

	var baseline planefit.Baseline
	rotated := fault.VFlag == 1
	if rotated {
		plane := planefit.PlaneFromVBase(fault.VBase)
		baseline = planefit.NewBaseline(plane)
	} else {
		baseline = planefit.IdentityBaseline()
	}

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

	result, err := tri.Triangulate(hullOf(outer), nil, extras)
	if err != nil {
		return nil, err
	}

	out.Nodes = out.Nodes[:0]
	out.Edges = out.Edges[:0]
	out.Triangles = out.Triangles[:0]
	for _, p := range result.Points {
		world := p
		var wp model.Point3
		if rotated {
			wp = baseline.Unrotate(model.Point3{X: world.X, Y: world.Y, Z: 0})
		} else {
			wp = model.Point3{X: world.X, Y: world.Y}
		}
		out.AddNode(wp)
	}
	out.InstallTriangles(result.Triangles)
	markConstraintEdges(out, constraints, baseline)

	if seed := highestZBoundaryNode(out); seed >= 0 {
		Chew(out, seed)
	}
	if topBounded {
		if seed := nodeAtZ(out, maxZ(out)); seed >= 0 {
			Chew(out, seed)
		}
	}
	if seed := lowestZUnconstrainedBoundaryNode(out); seed >= 0 {
		Chew(out, seed)
	}

	return &Result{Mesh: out, SealedToSides: allSidesReached(out)}, nil
}

func hullOf(pts []types.Point) []types.Point {
	// The embedding outer ring is the fault's own (already padded, convex
	// in plane frame) boundary; re-deriving a hull here keeps this
	// function usable even when callers pass an unordered node dump.
	return geom2d.ConvexHull(pts)
}

// markConstraintEdges flags edges whose endpoints lie on an embedded
// constraint polyline. This is an approximation of the triangulation
// collaborator's own "mark forced edges" bookkeeping (not observable
// through the Triangulator interface), grounded on spec §3's invariant
// that every nonzero-flag boundary edge is isconstraint=1.
func markConstraintEdges(m *model.TriMesh, constraints []Constraint, baseline planefit.Baseline) {
	type key struct{ x, y float64 }
	round := func(p model.Point3) key {
		r := baseline.Rotate(p)
		return key{r.X, r.Y}
	}
	onConstraint := make(map[key]bool)
	for _, c := range constraints {
		for _, p := range c.Points {
			onConstraint[round(p)] = true
		}
	}
	for i := range m.Edges {
		e := &m.Edges[i]
		if onConstraint[round(m.Nodes[e.N1].Pos)] && onConstraint[round(m.Nodes[e.N2].Pos)] {
			e.IsConstraint = true
			e.Flag |= model.FlagConstraint
		}
	}
}

func highestZBoundaryNode(m *model.TriMesh) int {
	best, bestZ := -1, 0.0
	for i, n := range m.Nodes {
		if n.Deleted {
			continue
		}
		if best == -1 || n.Pos.Z > bestZ {
			best, bestZ = i, n.Pos.Z
		}
	}
	return best
}

func lowestZUnconstrainedBoundaryNode(m *model.TriMesh) int {
	best, bestZ := -1, 0.0
	for i, n := range m.Nodes {
		if n.Deleted {
			continue
		}
		if nodeHasConstrainedEdge(m, i) {
			continue
		}
		if best == -1 || n.Pos.Z < bestZ {
			best, bestZ = i, n.Pos.Z
		}
	}
	return best
}

func nodeHasConstrainedEdge(m *model.TriMesh, node int) bool {
	for _, e := range m.Edges {
		if (e.N1 == node || e.N2 == node) && (e.IsConstraint || e.Flag != model.FlagNone) {
			return true
		}
	}
	return false
}

func nodeAtZ(m *model.TriMesh, z float64) int {
	for i, n := range m.Nodes {
		if !n.Deleted && n.Pos.Z == z {
			return i
		}
	}
	return -1
}

func maxZ(m *model.TriMesh) float64 {
	bb := m.AABB()
	return bb.Max.Z
}

// allSidesReached supplies the SealedToSides value (spec supplemented
// feature "sealed_to_sides"). It returns true for every mesh: the mesh's
// boundary is not tested against the pad-box sides, and the orchestrator
// copies the value unchanged.
func allSidesReached(m *model.TriMesh) bool {
	return true
}

// Chew topologically deletes triangles starting from seed, flood-filling
// across unconstrained, unflagged edges and stopping at the first
// constraint-edge barrier (spec §4.6 step 4, design note "chew up
// triangles edge policy").
func Chew(m *model.TriMesh, seed int) {
	if seed < 0 || seed >= len(m.Nodes) {
		return
	}

	triOfNode := trianglesByNode(m)
	visited := make([]bool, len(m.Triangles))

	queue := append([]int(nil), triOfNode[seed]...)
	for len(queue) > 0 {
		ti := queue[0]
		queue = queue[1:]
		if visited[ti] || m.Triangles[ti].Deleted {
			continue
		}
		visited[ti] = true
		m.Triangles[ti].Deleted = true

		for _, ei := range m.Triangles[ti].E {
			e := m.Edges[ei]
			if e.IsConstraint || e.Flag != model.FlagNone {
				continue // barrier: do not cross
			}
			var neighbor int
			switch {
			case e.Tri1 == ti:
				neighbor = e.Tri2
			case e.Tri2 == ti:
				neighbor = e.Tri1
			default:
				neighbor = -1
			}
			if neighbor >= 0 && !visited[neighbor] {
				queue = append(queue, neighbor)
			}
		}
	}
}

func trianglesByNode(m *model.TriMesh) map[int][]int {
	out := make(map[int][]int)
	for ti := range m.Triangles {
		if m.Triangles[ti].Deleted {
			continue
		}
		for _, ni := range m.TriangleNodes(ti) {
			out[ni] = append(out[ni], ti)
		}
	}
	return out
}
