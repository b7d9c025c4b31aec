package model

// Node is a mesh vertex: a position plus the flags the sealing pipeline
// needs to mutate during triangulation and snapping (spec §3).
type Node struct {
	Pos Point3

	Deleted    bool
	IsBorder   bool
	IsConstraint bool

	// Client is an opaque pointer-sized payload a caller may attach to a
	// node (e.g. an index back into caller-owned storage). The pipeline
	// never interprets it.
	Client any
}

// EdgeFlag is a bitmask classifying an edge's role after sealing.
type EdgeFlag uint32

const (
	// FlagNone marks an ordinary interior edge.
	FlagNone EdgeFlag = 0
	// FlagConstraint marks an edge that was embedded as an exact
	// constraint (a shared polyline segment).
	FlagConstraint EdgeFlag = 1 << (iota - 1)
	// FlagLimitLine marks an edge embedded from a top/bottom-boundary
	// ("LIMIT_LINE") intersection, per spec §4.6.
	FlagLimitLine
	// FlagPadBoundary marks an edge lying on a pad-box wall.
	FlagPadBoundary
)

// Edge is a mesh edge: two endpoint node indices, up to two incident
// triangle indices (-1 if absent/boundary), a constraint classification
// and a cached length (spec §3).
//
// Invariants: Tri1 >= 0 always; an interior edge has Tri2 >= 0; a boundary
// edge has Tri2 == -1; IsConstraint is true iff a constraint line was
// embedded along this edge.
type Edge struct {
	N1, N2 int
	Tri1   int
	Tri2   int // -1 if this edge is a mesh boundary edge

	Flag         EdgeFlag
	IsConstraint bool
	ConstraintLineID int // index into the owning Model's intersection-line list, or -1

	Length float64
}

// IsBoundary reports whether this edge has no second incident triangle.
func (e Edge) IsBoundary() bool {
	return e.Tri2 < 0
}

// Triangle is three edge indices into the owning TriMesh's Edges slice.
//
// Invariant: the three edges share exactly three distinct node indices.
type Triangle struct {
	E [3]int

	Deleted bool

	// Normal, if set, is the outward unit normal used by callers that need
	// consistent triangle orientation (e.g. the tetgen exporter's facet
	// winding). A zero vector means "not computed".
	Normal Point3
}
