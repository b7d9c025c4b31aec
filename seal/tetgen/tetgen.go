// Package tetgen implements facet export (spec §4.7): deduplicating nodes
// across every sealed surface via a 3-D index and emitting node/facet
// arrays, plus the smesh text format a tetrahedral mesher consumes.
package tetgen

import (
	"fmt"
	"io"

	"github.com/glennpinkerton/sealedmodel/seal/collab"
	"github.com/glennpinkerton/sealedmodel/seal/model"
)

// BoundaryFlagValue is the facet mark a fault's own outer-border facet
// gets when the fault did not reach the vertical boundaries (spec §4.7
// step 3).
const BoundaryFlagValue = 1000000

// Surface bundles a sealed mesh with the ordinal the exporter tags
// exported nodes with (spec §4.7 step 2, "tagged with the surface's
// ordinal").
type Surface struct {
	Mesh    *model.TriMesh
	Ordinal int
}

// Output is the exported node/facet arrays (spec §6
// createTetgenInput's transferred-ownership arrays).
type Output struct {
	NodeX, NodeY, NodeZ []float64
	NodeMark            []int
	Facet1, Facet2, Facet3 []int
	FacetMark              []int
}

// Export builds the global node index over pad box bounds and walks every
// sealed surface once, deduplicating nodes within modelTiny (spec §4.7
// steps 1-3).
func Export(surfaces []Surface, indexFactory collab.TriangleIndexFactory, cellSize, modelTiny float64) *Output {
	idx := nodeDedup{tiny: modelTiny, index: indexFactory(cellSize)}

	out := &Output{}
	for _, s := range surfaces {
		outerBorderEdges := outerBorderEdgeSet(s.Mesh)
		for ti, t := range s.Mesh.Triangles {
			if t.Deleted {
				continue
			}
			nodeIdx := s.Mesh.TriangleNodes(ti)
			var ids [3]int
			for k, ni := range nodeIdx {
				p := s.Mesh.Nodes[ni].Pos
				ids[k] = idx.resolve(p, s.Ordinal, out)
			}

			mark := 0
			if !s.Mesh.SealedToSides && s.Mesh.Kind.IsFault() && triangleOnOuterBorder(s.Mesh, ti, outerBorderEdges) {
				mark = BoundaryFlagValue
			}

			out.Facet1 = append(out.Facet1, ids[0])
			out.Facet2 = append(out.Facet2, ids[1])
			out.Facet3 = append(out.Facet3, ids[2])
			out.FacetMark = append(out.FacetMark, mark)
		}
	}
	return out
}

// nodeDedup backs spec §4.7 step 1's "global 3-D node index over the pad
// box" with the same collab.Index3D the intersection engine uses: each
// resolved node is inserted as a degenerate box so a query for "anything
// within modelTiny" is an AABB-overlap query rather than a linear scan.
type nodeDedup struct {
	tiny  float64
	index collab.Index3D
	pts   []model.Point3
}

func (d *nodeDedup) resolve(p model.Point3, ordinal int, out *Output) int {
	hits := d.index.Query(p.X-d.tiny, p.Y-d.tiny, p.Z-d.tiny, p.X+d.tiny, p.Y+d.tiny, p.Z+d.tiny)
	for _, h := range hits {
		if p.Distance(d.pts[h.TriID]) < d.tiny {
			return h.TriID
		}
	}

	id := len(d.pts)
	d.pts = append(d.pts, p)
	d.index.Insert(0, id, p.X, p.Y, p.Z, p.X, p.Y, p.Z)
	out.NodeX = append(out.NodeX, p.X)
	out.NodeY = append(out.NodeY, p.Y)
	out.NodeZ = append(out.NodeZ, p.Z)
	out.NodeMark = append(out.NodeMark, ordinal)
	return id
}

func outerBorderEdgeSet(m *model.TriMesh) map[int]bool {
	out := make(map[int]bool)
	for i, e := range m.Edges {
		if e.Tri2 == -1 {
			out[i] = true
		}
	}
	return out
}

func triangleOnOuterBorder(m *model.TriMesh, ti int, borderEdges map[int]bool) bool {
	for _, ei := range m.Triangles[ti].E {
		if borderEdges[ei] {
			return true
		}
	}
	return false
}

// WriteSmeshFile writes the tetgen-ready .smesh text format (spec §6):
// one node section, one facet section, then empty hole/region sections.
func WriteSmeshFile(w io.Writer, out *Output) error {
	if _, err := fmt.Fprintf(w, "# node list\n%d 3 1 0\n", len(out.NodeX)); err != nil {
		return err
	}
	for i := range out.NodeX {
		if _, err := fmt.Fprintf(w, "%d %g %g %g %d\n", i, out.NodeX[i], out.NodeY[i], out.NodeZ[i], out.NodeMark[i]); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(w, "# facet list\n%d 1\n", len(out.Facet1)); err != nil {
		return err
	}
	for i := range out.Facet1 {
		if _, err := fmt.Fprintf(w, "3 %d %d %d %d\n", out.Facet1[i], out.Facet2[i], out.Facet3[i], out.FacetMark[i]); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprint(w, "0\n0\n"); err != nil {
		return err
	}
	return nil
}
