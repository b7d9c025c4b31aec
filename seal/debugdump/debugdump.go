// Package debugdump repurposes the teacher's rasterize package as a debug
// PNG sink for sealed surfaces (spec §1/§6 "debug dumps", SPEC_FULL.md §0
// "rasterize/ kept, repurposed for debug PNG dumps"): it flattens a 3-D
// TriMesh into the teacher's 2-D mesh.Mesh and hands it to
// rasterize.Rasterize.
package debugdump

import (
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/glennpinkerton/sealedmodel/mesh"
	"github.com/glennpinkerton/sealedmodel/planefit"
	"github.com/glennpinkerton/sealedmodel/rasterize"
	"github.com/glennpinkerton/sealedmodel/seal/model"
	"github.com/glennpinkerton/sealedmodel/types"
)

// Flatten projects a TriMesh into a 2-D mesh.Mesh for rasterization.
// Near-vertical surfaces (faults, padded boundary walls) carry a plane
// baseline in VBase/VFlag; flattening rotates into that plane frame
// instead of dropping z, which would collapse them to slivers. Flat
// surfaces (horizons, top/bottom) use the identity baseline, i.e. plain
// (x, y).
func Flatten(tm *model.TriMesh) (*mesh.Mesh, error) {
	var baseline planefit.Baseline
	if tm.VFlag == 1 {
		baseline = planefit.NewBaseline(planefit.PlaneFromVBase(tm.VBase))
	} else {
		baseline = planefit.IdentityBaseline()
	}

	out := mesh.NewMesh(mesh.WithOverlapTriangle(true))

	ids := make([]types.VertexID, len(tm.Nodes))
	for i, n := range tm.Nodes {
		if n.Deleted {
			continue
		}
		r := baseline.Rotate(n.Pos)
		id, err := out.AddVertex(types.Point{X: r.X, Y: r.Y})
		if err != nil {
			return nil, fmt.Errorf("debugdump: flatten vertex %d: %w", i, err)
		}
		ids[i] = id
	}

	for ti := range tm.Triangles {
		if tm.Triangles[ti].Deleted {
			continue
		}
		nodeIdx := tm.TriangleNodes(ti)
		v1, v2, v3 := ids[nodeIdx[0]], ids[nodeIdx[1]], ids[nodeIdx[2]]
		// A degenerate projected triangle (near-zero area after rotation)
		// is skipped rather than failing the whole dump; this mirrors
		// spec §7's "geometric degeneracies are silently skipped".
		if err := out.AddTriangle(v1, v2, v3); err != nil {
			continue
		}
	}

	return out, nil
}

// WriteSurfacePNG flattens surf and writes it as a PNG to w.
func WriteSurfacePNG(w io.Writer, surf *model.TriMesh, opts ...rasterize.Option) error {
	flat, err := Flatten(surf)
	if err != nil {
		return err
	}
	img, err := rasterize.Rasterize(flat, opts...)
	if err != nil {
		return fmt.Errorf("debugdump: rasterize: %w", err)
	}
	return png.Encode(w, img)
}

var _ image.Image = (*image.RGBA)(nil)
