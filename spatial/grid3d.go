package spatial

import "math"

// TriRef identifies one triangle belonging to one mesh — the payload a 3-D
// triangle index stores per entry.
type TriRef struct {
	MeshID int
	TriID  int
}

// Index3D provides spatial queries for 3-D axis-aligned boxes, the "3-D
// spatial bucket index over triangles" external collaborator named in
// spec §1 item (iv) and described in §4.2/§3 (TriangleIndex).
type Index3D interface {
	// Insert records ref under the given box.
	Insert(ref TriRef, minX, minY, minZ, maxX, maxY, maxZ float64)
	// Query returns every ref whose inserted box overlaps the given box.
	// Results may contain duplicates if ref was inserted more than once
	// under overlapping boxes; callers that need a set should dedup.
	Query(minX, minY, minZ, maxX, maxY, maxZ float64) []TriRef
}

// Grid3D is a uniform 3-D bucket grid, the default Index3D implementation.
// It generalizes the 2-D HashGrid in this package to three dimensions,
// matching spec §4.2 step 1's "bucketed grid over a box... cell size equals
// averageSpacing in each axis".
type Grid3D struct {
	cellSize float64
	cells    map[[3]int][]TriRef
}

// NewGrid3D creates a 3-D bucket grid with the given cell size.
func NewGrid3D(cellSize float64) *Grid3D {
	if cellSize <= 0 {
		cellSize = 1
	}
	return &Grid3D{
		cellSize: cellSize,
		cells:    make(map[[3]int][]TriRef),
	}
}

func (g *Grid3D) cellOf(x, y, z float64) [3]int {
	return [3]int{
		int(math.Floor(x / g.cellSize)),
		int(math.Floor(y / g.cellSize)),
		int(math.Floor(z / g.cellSize)),
	}
}

// Insert adds ref to every cell overlapped by [minX..maxX]x[minY..maxY]x[minZ..maxZ].
func (g *Grid3D) Insert(ref TriRef, minX, minY, minZ, maxX, maxY, maxZ float64) {
	lo := g.cellOf(minX, minY, minZ)
	hi := g.cellOf(maxX, maxY, maxZ)
	for cx := lo[0]; cx <= hi[0]; cx++ {
		for cy := lo[1]; cy <= hi[1]; cy++ {
			for cz := lo[2]; cz <= hi[2]; cz++ {
				key := [3]int{cx, cy, cz}
				g.cells[key] = append(g.cells[key], ref)
			}
		}
	}
}

// Query returns every ref under a cell overlapping the query box.
func (g *Grid3D) Query(minX, minY, minZ, maxX, maxY, maxZ float64) []TriRef {
	lo := g.cellOf(minX, minY, minZ)
	hi := g.cellOf(maxX, maxY, maxZ)

	var out []TriRef
	for cx := lo[0]; cx <= hi[0]; cx++ {
		for cy := lo[1]; cy <= hi[1]; cy++ {
			for cz := lo[2]; cz <= hi[2]; cz++ {
				if refs, ok := g.cells[[3]int{cx, cy, cz}]; ok {
					out = append(out, refs...)
				}
			}
		}
	}
	return out
}
