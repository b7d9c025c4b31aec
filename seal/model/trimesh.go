package model

// TriMesh is a triangulated surface: parallel arrays of nodes, edges and
// triangles plus the metadata the sealing pipeline threads through padding,
// intersection, splicing, outline construction, embedding and export
// (spec §3).
type TriMesh struct {
	Nodes     []Node
	Edges     []Edge
	Triangles []Triangle

	InternalID int // stable id assigned when the mesh enters the orchestrator
	ExternalID int // caller-supplied id, preserved across copies
	Kind       SurfaceKind

	Age          float64 // used by horizons for fault min/max-age matching
	MinAge       float64 // fault-only: age range this fault is active across
	MaxAge       float64

	IsPadded bool
	IsSealed bool

	// Plane/rotated-frame descriptor ("steep coordinate" baseline). VFlag
	// is 1 when this mesh has a best-fit plane recorded (typically a
	// near-vertical fault); VBase holds [nx,ny,nz,ox,oy,oz].
	VFlag int
	VBase [6]float64

	// Centroid is an interior point used to select the "correct" sealed
	// polygon out of the candidates the outline builder produces (spec
	// §4.4 step 4).
	Centroid Point3

	Detachment []Point3 // optional contact polyline with a detachment surface
	DetachID   int

	// DetachmentIntersects collects the DetachID of each detachment this
	// fault was sealed to; SealFaultsToDetachment appends it (supplemented
	// feature, see SPEC_FULL.md §4 "detach_list").
	DetachmentIntersects []int

	SealedBorder SealedBorder

	// SealedToSides records whether this sealed fault was successfully
	// embedded against all four pad-box boundaries (supplemented feature,
	// SPEC_FULL.md §4 "sealed_to_sides"). Used by the tetgen exporter to
	// decide the boundaryFlag for facets on a fault's own outer border.
	SealedToSides bool

	// NodeAttribs holds named per-node scalar payloads that must survive
	// copies, padding, and embedding (supplemented feature, SPEC_FULL.md
	// §4 "node_attribs"). Keys are caller-chosen attribute names; values
	// are parallel to Nodes.
	NodeAttribs map[string][]float64

	// PossibleIntersections caches, per mesh, the set of other mesh
	// internal ids whose AABB overlaps this mesh's — the pre-filter named
	// in SPEC_FULL.md §4 ("possible_int_list").
	PossibleIntersections []int
}

// NewTriMesh returns an empty TriMesh of the given kind.
func NewTriMesh(kind SurfaceKind) *TriMesh {
	return &TriMesh{Kind: kind, NodeAttribs: make(map[string][]float64)}
}

// NumNodes returns the number of (not-necessarily-live) nodes.
func (m *TriMesh) NumNodes() int { return len(m.Nodes) }

// NumTriangles returns the number of (not-necessarily-live) triangles.
func (m *TriMesh) NumTriangles() int { return len(m.Triangles) }

// LiveTriangleCount returns the number of triangles not marked deleted.
func (m *TriMesh) LiveTriangleCount() int {
	n := 0
	for _, t := range m.Triangles {
		if !t.Deleted {
			n++
		}
	}
	return n
}

// AABB computes the 3-D bounding box of this mesh's live nodes.
func (m *TriMesh) AABB() AABB3 {
	pts := make([]Point3, 0, len(m.Nodes))
	for _, n := range m.Nodes {
		if !n.Deleted {
			pts = append(pts, n.Pos)
		}
	}
	return BBoxOfPoints(pts)
}

// TriangleNodes returns the three node indices of triangle ti, derived
// from its three edges (the shared-node reconstruction implied by spec §3's
// Triangle invariant).
func (m *TriMesh) TriangleNodes(ti int) [3]int {
	t := m.Triangles[ti]
	e0, e1 := m.Edges[t.E[0]], m.Edges[t.E[1]]
	// e0 contributes two nodes; the third comes from e1 (whichever endpoint
	// isn't already one of e0's).
	var third int
	switch {
	case e1.N1 != e0.N1 && e1.N1 != e0.N2:
		third = e1.N1
	default:
		third = e1.N2
	}
	return [3]int{e0.N1, e0.N2, third}
}

// TrianglePoints returns the three node positions of triangle ti.
func (m *TriMesh) TrianglePoints(ti int) (Point3, Point3, Point3) {
	idx := m.TriangleNodes(ti)
	return m.Nodes[idx[0]].Pos, m.Nodes[idx[1]].Pos, m.Nodes[idx[2]].Pos
}

// Clone deep-copies this mesh. Used by addInputHorizon/addInputFault (spec
// §3 "input surfaces are deep-copied") and by the embedding stage (spec
// §4.6 step 2, "copy the padded fault mesh").
func (m *TriMesh) Clone() *TriMesh {
	c := *m
	c.Nodes = append([]Node(nil), m.Nodes...)
	c.Edges = append([]Edge(nil), m.Edges...)
	c.Triangles = append([]Triangle(nil), m.Triangles...)
	c.Detachment = append([]Point3(nil), m.Detachment...)
	c.DetachmentIntersects = append([]int(nil), m.DetachmentIntersects...)
	c.PossibleIntersections = append([]int(nil), m.PossibleIntersections...)
	c.SealedBorder = m.SealedBorder.Clone()
	c.NodeAttribs = make(map[string][]float64, len(m.NodeAttribs))
	for k, v := range m.NodeAttribs {
		c.NodeAttribs[k] = append([]float64(nil), v...)
	}
	return &c
}

// AddNode appends a node (and, if set, NodeAttribs zero-values) and returns
// its index.
func (m *TriMesh) AddNode(p Point3) int {
	m.Nodes = append(m.Nodes, Node{Pos: p})
	for k, v := range m.NodeAttribs {
		m.NodeAttribs[k] = append(v, 0)
	}
	return len(m.Nodes) - 1
}

// AddEdge appends an edge between node indices n1,n2 with the given
// incident triangle (the second incident triangle, if any, is filled in
// later when the opposite triangle is added) and returns its index.
func (m *TriMesh) AddEdge(n1, n2, tri1 int) int {
	e := Edge{N1: n1, N2: n2, Tri1: tri1, Tri2: -1}
	e.Length = m.Nodes[n1].Pos.Distance(m.Nodes[n2].Pos)
	m.Edges = append(m.Edges, e)
	return len(m.Edges) - 1
}

// AddTriangle appends a triangle referencing three existing edge indices
// and returns its index.
func (m *TriMesh) AddTriangle(e0, e1, e2 int) int {
	m.Triangles = append(m.Triangles, Triangle{E: [3]int{e0, e1, e2}})
	return len(m.Triangles) - 1
}

// InstallTriangles rebuilds this mesh's edges and triangles from a
// collab.TriangulationResult-style triangle list over already-added nodes,
// deduplicating shared edges and wiring each edge's Tri1/Tri2. Shared by
// every package that hands a Triangulator's output back to a TriMesh
// (padding, embedding, grid-horizon ingestion).
func (m *TriMesh) InstallTriangles(triangles [][3]int) {
	edgeIndex := make(map[[2]int]int)
	key := func(a, b int) [2]int {
		if a > b {
			a, b = b, a
		}
		return [2]int{a, b}
	}
	for _, t := range triangles {
		var e [3]int
		pairs := [3][2]int{{t[0], t[1]}, {t[1], t[2]}, {t[2], t[0]}}
		for i, pr := range pairs {
			k := key(pr[0], pr[1])
			if idx, ok := edgeIndex[k]; ok {
				e[i] = idx
			} else {
				e[i] = m.AddEdge(pr[0], pr[1], -1)
				edgeIndex[k] = e[i]
			}
		}
		ti := m.AddTriangle(e[0], e[1], e[2])
		for _, ei := range e {
			edge := &m.Edges[ei]
			if edge.Tri1 == -1 {
				edge.Tri1 = ti
			} else if edge.Tri2 == -1 && edge.Tri1 != ti {
				edge.Tri2 = ti
			}
		}
	}
}
