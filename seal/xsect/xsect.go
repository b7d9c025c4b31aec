// Package xsect implements the triangle-triangle intersection engine (spec
// §4.2): indexing triangles in 3-D, querying candidate pairs, calling the
// Möller collaborator, de-duplicating segments, and chaining them into
// polylines.
package xsect

import (
	"github.com/glennpinkerton/sealedmodel/seal/collab"
	"github.com/glennpinkerton/sealedmodel/seal/model"
)

// Tolerances bundles the model-scale epsilons spec §7 names.
type Tolerances struct {
	GrazeDistance  float64 // modelGrazeDistance
	AverageSpacing float64
	Span           float64 // xspan+yspan+zspan, used for the "connect close lines" threshold
}

func (t Tolerances) segmentKeepThreshold() float64  { return t.GrazeDistance / 10 }
func (t Tolerances) dedupThreshold() float64        { return t.GrazeDistance / 10 }
func (t Tolerances) chainThreshold() float64        { return t.GrazeDistance }
func (t Tolerances) minSegmentLength() float64      { return t.AverageSpacing / 10 }
func (t Tolerances) connectCloseLinesDist() float64 { return t.Span / 40 }

// Surface bundles a mesh with the internal id used to tag emitted lines.
type Surface struct {
	MeshID int
	Mesh   *model.TriMesh
}

// Engine runs the intersection engine over a fixed set of surfaces, reusing
// one spatial index across all surface pairs (spec §4.2 step 1).
type Engine struct {
	index       collab.Index3D
	intersector collab.TriangleIntersector
	tol         Tolerances
	origin      model.Point3 // subtracted before calling the intersector for numerical stability
}

// NewEngine builds an intersection engine. indexFactory is typically
// index.NewGridTriangleIndex bound to tol.AverageSpacing.
func NewEngine(indexFactory collab.TriangleIndexFactory, intersector collab.TriangleIntersector, tol Tolerances, boxOrigin model.Point3) *Engine {
	cellSize := tol.AverageSpacing
	if cellSize <= 0 {
		cellSize = 1
	}
	return &Engine{
		index:       indexFactory(cellSize),
		intersector: intersector,
		tol:         tol,
		origin:      boxOrigin,
	}
}

// IndexSurface inserts every live triangle of s into the engine's spatial
// index, enlarged by span/300 per spec §4.2 step 2.
func (e *Engine) IndexSurface(s Surface, enlarge float64) {
	for ti, t := range s.Mesh.Triangles {
		if t.Deleted {
			continue
		}
		a, b, c := s.Mesh.TrianglePoints(ti)
		box := model.BBoxOfPoints([]model.Point3{a, b, c})
		box = box.Expand(enlarge)
		e.index.Insert(s.MeshID, ti, box.Min.X, box.Min.Y, box.Min.Z, box.Max.X, box.Max.Y, box.Max.Z)
	}
}

// IntersectPair computes every segment between surface a and surface b by
// looping the one with fewer triangles and querying the index for the
// other (spec §4.2 step 2's "bound the outer loop").
func (e *Engine) IntersectPair(a, b Surface, enlarge float64) []model.IntersectionSegment {
	outer, inner := a, b
	if inner.Mesh.LiveTriangleCount() < outer.Mesh.LiveTriangleCount() {
		outer, inner = inner, outer
	}

	var segs []model.IntersectionSegment
	for ti, t := range outer.Mesh.Triangles {
		if t.Deleted {
			continue
		}
		a1, a2, a3 := outer.Mesh.TrianglePoints(ti)
		box := model.BBoxOfPoints([]model.Point3{a1, a2, a3}).Expand(enlarge)

		candidates := e.index.Query(box.Min.X, box.Min.Y, box.Min.Z, box.Max.X, box.Max.Y, box.Max.Z)
		for _, cand := range candidates {
			if cand.MeshID != inner.MeshID {
				continue
			}
			if inner.Mesh.Triangles[cand.TriID].Deleted {
				continue
			}
			b1, b2, b3 := inner.Mesh.TrianglePoints(cand.TriID)

			p1, p2, ok := e.intersector.Intersect(
				a1.Sub(e.origin), a2.Sub(e.origin), a3.Sub(e.origin),
				b1.Sub(e.origin), b2.Sub(e.origin), b3.Sub(e.origin),
				1e-9, e.tol.segmentKeepThreshold(),
			)
			if !ok {
				continue
			}
			segs = append(segs, model.IntersectionSegment{
				P1:    p1.Add(e.origin),
				P2:    p2.Add(e.origin),
				Surf1: outer.MeshID,
				Surf2: inner.MeshID,
			})
		}
	}
	return segs
}

// Dedup removes segments whose both endpoints coincide (in either order)
// with an already-kept segment's endpoints within the dedup threshold
// (spec §4.2 step 5).
func (e *Engine) Dedup(segs []model.IntersectionSegment) []model.IntersectionSegment {
	tol := e.tol.dedupThreshold()
	var kept []model.IntersectionSegment
	for _, s := range segs {
		dup := false
		for _, k := range kept {
			same := (s.P1.Distance(k.P1) < tol && s.P2.Distance(k.P2) < tol) ||
				(s.P1.Distance(k.P2) < tol && s.P2.Distance(k.P1) < tol)
			if same {
				dup = true
				break
			}
		}
		if !dup {
			kept = append(kept, s)
		}
	}
	return kept
}

// Chain assembles segments end-to-end into polylines (spec §4.2 step 5):
// seed with an unused segment, repeatedly extend by scanning for segments
// whose endpoint matches the current first or last point under the chain
// threshold, until no more attach.
func (e *Engine) Chain(segs []model.IntersectionSegment) []*model.IntersectionLine {
	tol := e.tol.chainThreshold()
	minLen := e.tol.minSegmentLength()

	used := make([]bool, len(segs))
	var lines []*model.IntersectionLine

	for i := range segs {
		if used[i] || segs[i].P1.Distance(segs[i].P2) < minLen {
			continue
		}
		used[i] = true
		line := &model.IntersectionLine{
			Points: []model.Point3{segs[i].P1, segs[i].P2},
			Surf1:  segs[i].Surf1,
			Surf2:  segs[i].Surf2,
		}

		for {
			extended := false
			for j := range segs {
				if used[j] {
					continue
				}
				if segs[j].Surf1 != line.Surf1 && segs[j].Surf1 != line.Surf2 {
					continue
				}
				first, last := line.First(), line.Last()
				switch {
				case segs[j].P1.Distance(last) < tol:
					line.Points = append(line.Points, segs[j].P2)
				case segs[j].P2.Distance(last) < tol:
					line.Points = append(line.Points, segs[j].P1)
				case segs[j].P1.Distance(first) < tol:
					line.Points = append([]model.Point3{segs[j].P2}, line.Points...)
				case segs[j].P2.Distance(first) < tol:
					line.Points = append([]model.Point3{segs[j].P1}, line.Points...)
				default:
					continue
				}
				used[j] = true
				extended = true
			}
			if !extended {
				break
			}
		}

		if len(line.Points) < 2 {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// ConnectCloseLines is the second pass of spec §4.2 step 6: distinct
// polylines whose endpoints fall within the connect-close-lines threshold
// are joined head/tail, redundant lines removed.
func (e *Engine) ConnectCloseLines(lines []*model.IntersectionLine) []*model.IntersectionLine {
	tol := e.tol.connectCloseLinesDist()
	removed := make([]bool, len(lines))

	for i := 0; i < len(lines); i++ {
		if removed[i] {
			continue
		}
		changed := true
		for changed {
			changed = false
			for j := 0; j < len(lines); j++ {
				if i == j || removed[j] {
					continue
				}
				if lines[i].Surf1 != lines[j].Surf1 || lines[i].Surf2 != lines[j].Surf2 {
					if lines[i].Surf1 != lines[j].Surf2 || lines[i].Surf2 != lines[j].Surf1 {
						continue
					}
				}
				if joinLines(lines[i], lines[j], tol) {
					removed[j] = true
					changed = true
				}
			}
		}
	}

	var out []*model.IntersectionLine
	for i, l := range lines {
		if !removed[i] {
			out = append(out, l)
		}
	}
	return out
}

// joinLines attempts to append b onto a (in whichever orientation matches)
// if one of b's endpoints is within tol of one of a's. Returns true if
// joined.
func joinLines(a, b *model.IntersectionLine, tol float64) bool {
	switch {
	case b.First().Distance(a.Last()) < tol:
		a.Points = append(a.Points, b.Points...)
	case b.Last().Distance(a.Last()) < tol:
		b.Reverse()
		a.Points = append(a.Points, b.Points...)
	case b.Last().Distance(a.First()) < tol:
		a.Points = append(append([]model.Point3{}, b.Points...), a.Points...)
	case b.First().Distance(a.First()) < tol:
		b.Reverse()
		a.Points = append(append([]model.Point3{}, b.Points...), a.Points...)
	default:
		return false
	}
	return true
}
