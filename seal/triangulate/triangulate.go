// Package triangulate is the default implementation of collab.Triangulator,
// built on the teacher repository's own constrained-Delaunay stack
// (cdt.Build + mesh.Mesh). It is the concrete stand-in for spec.md §1 item
// (i)'s triangulation-with-constraints library.
package triangulate

import (
	"fmt"

	"github.com/glennpinkerton/sealedmodel/cdt"
	"github.com/glennpinkerton/sealedmodel/seal/collab"
	"github.com/glennpinkerton/sealedmodel/types"
)

// CDT adapts cdt.Build/mesh.Mesh to the collab.Triangulator interface.
type CDT struct {
	Options cdt.BuildOptions
}

// New returns a CDT triangulator using cdt.DefaultBuildOptions.
func New() *CDT {
	return &CDT{Options: cdt.DefaultBuildOptions()}
}

// Triangulate implements collab.Triangulator.
func (c *CDT) Triangulate(outer []types.Point, holes [][]types.Point, extras [][2]types.Point) (*collab.TriangulationResult, error) {
	if len(outer) < 3 {
		return nil, fmt.Errorf("triangulate: outer polygon needs at least 3 points, got %d", len(outer))
	}

	m, err := cdt.BuildWithOptions(outer, holes, extras, c.Options)
	if err != nil {
		return nil, fmt.Errorf("triangulate: cdt.Build failed: %w", err)
	}

	tris := m.GetTriangles()
	triOut := make([][3]int, len(tris))
	for i, t := range tris {
		triOut[i] = [3]int{int(t.V1()), int(t.V2()), int(t.V3())}
	}

	return &collab.TriangulationResult{
		Points:    m.GetVertices(),
		Triangles: triOut,
		Boundary:  BoundaryEdges(triOut),
	}, nil
}

// BoundaryEdges computes the "trimesh boundary" operation spec §1 item (i)
// names: an edge used by exactly one triangle is a boundary edge. This
// mirrors how mesh.Mesh.EdgeSet tracks edge membership, generalized to
// count uses instead of mere presence.
func BoundaryEdges(triangles [][3]int) [][2]int {
	type key struct{ a, b int }
	canon := func(a, b int) key {
		if a > b {
			a, b = b, a
		}
		return key{a, b}
	}

	count := make(map[key]int)
	for _, t := range triangles {
		count[canon(t[0], t[1])]++
		count[canon(t[1], t[2])]++
		count[canon(t[2], t[0])]++
	}

	var out [][2]int
	for k, n := range count {
		if n == 1 {
			out = append(out, [2]int{k.a, k.b})
		}
	}
	return out
}
