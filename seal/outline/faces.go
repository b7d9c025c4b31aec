package outline

import (
	"math"
	"sort"

	"github.com/glennpinkerton/sealedmodel/algorithm/polygon"
	"github.com/glennpinkerton/sealedmodel/seal/model"
	"github.com/glennpinkerton/sealedmodel/types"
)

// PolylineInput is one contributor to the planar graph the face tracer
// builds: a single ordered polyline plus the lineid tag every point along
// it carries into the resulting outline (spec §4.4 step 1/2).
type PolylineInput struct {
	LineID int
	Points []model.Point3
}

// vertex is a graph node: a deduplicated xy location (z carried along for
// later use, though face tracing itself only needs xy).
type vertex struct {
	pos   model.Point3
	edges []halfEdge
}

type halfEdge struct {
	to       int // vertex index
	lineID   int
	pointID  int // index of "from" point within its source polyline
	angle    float64
	visited  bool
}

// graph is the planar straight-line graph formed by the union of input
// polylines, built by merging endpoints within tol (spec §4.4 step 3,
// "invokes the 2-D polygon-from-lines collaborator" — gomesh has no
// planar-face-tracing routine, so this is new code, grounded on the
// "smallest clockwise turn" technique for enumerating the faces of an
// embedded planar graph).
type graph struct {
	verts []vertex
	tol   float64
}

func newGraph(tol float64) *graph {
	return &graph{tol: tol}
}

func (g *graph) findOrAdd(p model.Point3) int {
	for i, v := range g.verts {
		if math.Hypot(v.pos.X-p.X, v.pos.Y-p.Y) < g.tol {
			return i
		}
	}
	g.verts = append(g.verts, vertex{pos: p})
	return len(g.verts) - 1
}

func (g *graph) addEdge(from, to int, lineID, pointID int) {
	a, b := g.verts[from].pos, g.verts[to].pos
	angle := math.Atan2(b.Y-a.Y, b.X-a.X)
	g.verts[from].edges = append(g.verts[from].edges, halfEdge{to: to, lineID: lineID, pointID: pointID, angle: angle})
}

func (g *graph) build(lines []PolylineInput) {
	for _, l := range lines {
		for i := 0; i+1 < len(l.Points); i++ {
			from := g.findOrAdd(l.Points[i])
			to := g.findOrAdd(l.Points[i+1])
			if from == to {
				continue
			}
			g.addEdge(from, to, l.LineID, i)
			g.addEdge(to, from, l.LineID, i+1)
		}
	}
	for i := range g.verts {
		sort.Slice(g.verts[i].edges, func(a, b int) bool {
			return g.verts[i].edges[a].angle < g.verts[i].edges[b].angle
		})
	}
}

// Face is one traced polygon: xy points plus the (lineid, pointid) tag
// each came from.
type Face struct {
	Points []model.Point3
	Tags   []model.ITag
}

// area (shoelace, xy only) used to discard the unbounded outer face.
func (f Face) area() float64 {
	var pts []types.Point
	for _, p := range f.Points {
		pts = append(pts, types.Point{X: p.X, Y: p.Y})
	}
	return polygon.SignedArea(pts)
}

// traceFaces enumerates every bounded face of the planar graph by
// following, from each unvisited directed edge (u,v), the next edge in
// counterclockwise (ascending-angle) order at v after the reverse edge
// (v,u), which is the sharpest clockwise turn available — the standard
// face-tracing rule for a straight-line planar embedding. Every directed
// edge belongs to exactly one face, so the loop over all unvisited
// half-edges discovers every face, including the unbounded outer one
// (dropped by BuildFaces as the face of largest absolute area).
func (g *graph) traceFaces() []Face {
	var faces []Face

	findEdgeIndex := func(vi int, to int) int {
		for i, e := range g.verts[vi].edges {
			if e.to == to {
				return i
			}
		}
		return -1
	}

	for startV := range g.verts {
		for startEi := range g.verts[startV].edges {
			if g.verts[startV].edges[startEi].visited {
				continue
			}

			var facePts []model.Point3
			var faceTags []model.ITag

			curV, curEi := startV, startEi
			for {
				e := &g.verts[curV].edges[curEi]
				if e.visited {
					break
				}
				e.visited = true
				facePts = append(facePts, g.verts[curV].pos)
				faceTags = append(faceTags, model.ITag{LineID: e.lineID, PointID: e.pointID, LineID2: -1})

				nextV := e.to
				// reverse edge index at nextV pointing back to curV
				revIdx := findEdgeIndex(nextV, curV)
				if revIdx < 0 {
					break
				}
				deg := len(g.verts[nextV].edges)
				nextEi := (revIdx + 1) % deg

				curV, curEi = nextV, nextEi
				if curV == startV && curEi == startEi {
					break
				}
			}

			if len(facePts) >= 3 {
				faces = append(faces, Face{Points: facePts, Tags: faceTags})
			}
		}
	}
	return faces
}

// BuildFaces runs the planar face tracer over lines, merging endpoints
// within tol, and returns every bounded face (the unbounded outer face is
// dropped).
func BuildFaces(lines []PolylineInput, tol float64) []Face {
	g := newGraph(tol)
	g.build(lines)
	all := g.traceFaces()

	var bounded []Face
	maxArea := 0.0
	maxIdx := -1
	for i, f := range all {
		a := math.Abs(f.area())
		if a > maxArea {
			maxArea = a
			maxIdx = i
		}
	}
	for i, f := range all {
		if i == maxIdx {
			continue // the largest-area face is the unbounded outer face
		}
		bounded = append(bounded, f)
	}
	return bounded
}
