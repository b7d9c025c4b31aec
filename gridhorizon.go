package seal

import (
	"errors"

	"github.com/glennpinkerton/sealedmodel/seal/model"
	"github.com/glennpinkerton/sealedmodel/types"
)

// ErrEmptyGrid is returned by AddInputGridHorizon when the grid has fewer
// than two rows or columns.
var ErrEmptyGrid = errors.New("seal: grid horizon has fewer than 2x2 points")

// GridHorizon describes a row-major elevation grid horizon (SPEC_FULL.md
// §4 "Grid-horizon ingestion"): a regularly spaced z[row][col] array,
// optionally clipped to a bounding polygon, plus minor faults that cut the
// grid before the normal sealing pipeline ever sees it.
type GridHorizon struct {
	OriginX, OriginY     float64
	SpacingX, SpacingY    float64
	Z                    [][]float64 // Z[row][col], row-major

	// BoundingPolygon, if non-empty, clips the triangulated grid to this
	// closed xy polygon (first point need not repeat the last).
	BoundingPolygon []model.Point3

	// MinorFaults are additional constraint polylines (in grid xy) to
	// embed as exact edges before the grid triangulates, e.g. small
	// offsets too minor to model as full input faults.
	MinorFaults [][]model.Point3
}

// AddInputGridHorizon triangulates a row-major elevation grid into an
// ordinary input horizon (spec §6 addInputGridHorizon; reconstructed per
// SPEC_FULL.md §4 from grd_tsurf.h's grid-to-trimesh conversion since
// spec.md only names the entry point).
func (m *Model) AddInputGridHorizon(externalID int, age float64, g GridHorizon) error {
	rows := len(g.Z)
	if rows < 2 || len(g.Z[0]) < 2 {
		return ErrEmptyGrid
	}
	cols := len(g.Z[0])

	gridPoint := func(row, col int) model.Point3 {
		return model.Point3{
			X: g.OriginX + float64(col)*g.SpacingX,
			Y: g.OriginY + float64(row)*g.SpacingY,
			Z: g.Z[row][col],
		}
	}

	var outer []types.Point
	if len(g.BoundingPolygon) >= 3 {
		for _, p := range g.BoundingPolygon {
			outer = append(outer, types.Point{X: p.X, Y: p.Y})
		}
	} else {
		outer = []types.Point{
			{X: g.OriginX, Y: g.OriginY},
			{X: g.OriginX + float64(cols-1)*g.SpacingX, Y: g.OriginY},
			{X: g.OriginX + float64(cols-1)*g.SpacingX, Y: g.OriginY + float64(rows-1)*g.SpacingY},
			{X: g.OriginX, Y: g.OriginY + float64(rows-1)*g.SpacingY},
		}
	}

	var extras [][2]types.Point
	// Each grid cell's diagonal is embedded as a constraint, matching
	// grd_tsurf.h's fixed cell-pair triangulation (one diagonal split per
	// cell, not a free Delaunay choice).
	for row := 0; row+1 < rows; row++ {
		for col := 0; col+1 < cols; col++ {
			a := gridPoint(row, col)
			c := gridPoint(row+1, col+1)
			extras = append(extras, [2]types.Point{{X: a.X, Y: a.Y}, {X: c.X, Y: c.Y}})
		}
	}
	for _, fault := range g.MinorFaults {
		for i := 0; i+1 < len(fault); i++ {
			extras = append(extras, [2]types.Point{
				{X: fault[i].X, Y: fault[i].Y},
				{X: fault[i+1].X, Y: fault[i+1].Y},
			})
		}
	}

	result, err := m.cfg.Triangulator.Triangulate(outer, nil, extras)
	if err != nil {
		return err
	}

	mesh := model.NewTriMesh(model.KindHorizon())
	zAt := gridZLookup(g)
	for _, p := range result.Points {
		mesh.AddNode(model.Point3{X: p.X, Y: p.Y, Z: zAt(p.X, p.Y)})
	}
	mesh.InstallTriangles(result.Triangles)

	mesh.ExternalID = externalID
	mesh.Age = age
	mesh.InternalID = m.allocID()
	m.horizons = append(m.horizons, mesh)
	return nil
}

// gridZLookup bilinearly interpolates z at an arbitrary (x,y) inside the
// grid's footprint; outside it, (x,y) is clamped to the footprint, so the
// value is interpolated along the nearest grid edge (or taken from the
// corner node).
func gridZLookup(g GridHorizon) func(x, y float64) float64 {
	rows, cols := len(g.Z), len(g.Z[0])
	return func(x, y float64) float64 {
		fc := (x - g.OriginX) / g.SpacingX
		fr := (y - g.OriginY) / g.SpacingY

		c0 := clampInt(int(fc), 0, cols-2)
		r0 := clampInt(int(fr), 0, rows-2)
		tx := clamp01(fc - float64(c0))
		ty := clamp01(fr - float64(r0))

		z00, z10 := g.Z[r0][c0], g.Z[r0][c0+1]
		z01, z11 := g.Z[r0+1][c0], g.Z[r0+1][c0+1]
		z0 := z00 + (z10-z00)*tx
		z1 := z01 + (z11-z01)*tx
		return z0 + (z1-z0)*ty
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

