// Package splice implements splice-partner discovery, crossing correction
// and resampling of intersection lines (spec §4.3).
package splice

import (
	"math"

	"github.com/glennpinkerton/sealedmodel/planefit"
	"github.com/glennpinkerton/sealedmodel/seal/model"
)

// FindSplicePartners scans every pair of fault-bearing intersection lines
// and records splice-partner indices on both sides when an endpoint
// coincides under tol (spec §4.3 "splice partners").
func FindSplicePartners(lines []*model.IntersectionLine, isFault func(meshID int) bool, tol float64) {
	touchesFault := func(l *model.IntersectionLine) bool {
		return isFault(l.Surf1) || isFault(l.Surf2)
	}

	for i := 0; i < len(lines); i++ {
		if !touchesFault(lines[i]) {
			continue
		}
		for j := i + 1; j < len(lines); j++ {
			if !touchesFault(lines[j]) {
				continue
			}
			matchEndpoints(lines[i], i, lines[j], j, tol)
		}
	}
}

func matchEndpoints(a *model.IntersectionLine, ai int, b *model.IntersectionLine, bi int, tol float64) {
	pairs := []struct {
		ap, bp       model.Point3
		aLast, bLast bool
	}{
		{a.First(), b.First(), false, false},
		{a.First(), b.Last(), false, true},
		{a.Last(), b.First(), true, false},
		{a.Last(), b.Last(), true, true},
	}
	for _, p := range pairs {
		if p.ap.Distance(p.bp) < tol {
			if !a.Splice1.Present && !p.aLast {
				a.Splice1 = model.SpliceMarker{LineIndex: bi, AtLastPoint: p.bLast, Present: true}
			} else if !a.Splice2.Present {
				a.Splice2 = model.SpliceMarker{LineIndex: bi, AtLastPoint: p.bLast, Present: true}
			}
			if !b.Splice1.Present && !p.bLast {
				b.Splice1 = model.SpliceMarker{LineIndex: ai, AtLastPoint: p.aLast, Present: true}
			} else if !b.Splice2.Present {
				b.Splice2 = model.SpliceMarker{LineIndex: ai, AtLastPoint: p.aLast, Present: true}
			}
			return
		}
	}
}

// SurfaceLines bundles the intersection lines incident to one surface,
// for crossing correction (spec §4.3 "for each surface, every pair of its
// incident intersection lines is compared point-for-point").
type SurfaceLines struct {
	MeshID   int
	Lines    []*model.IntersectionLine
	Baseline planefit.Baseline // planefit.IdentityBaseline() if the surface is flat
}

// CorrectCrossings snaps points of one line that lie closer than
// avgSpacing/2 to another line on the same surface to the nearest unused
// master point, performed in the surface's rotated frame (spec §4.3).
func CorrectCrossings(s SurfaceLines, avgSpacing float64) {
	snapDist := avgSpacing / 2
	used := make(map[*model.IntersectionLine]map[int]bool)
	for _, l := range s.Lines {
		used[l] = make(map[int]bool)
	}

	for _, a := range s.Lines {
		for pi := range a.Points {
			rp := s.Baseline.Rotate(a.Points[pi])
			var bestLine *model.IntersectionLine
			bestIdx := -1
			bestDist := snapDist

			for _, b := range s.Lines {
				if a == b {
					continue
				}
				for qi, q := range b.Points {
					if used[b][qi] {
						continue
					}
					rq := s.Baseline.Rotate(q)
					d := math.Hypot(rp.X-rq.X, rp.Y-rq.Y)
					if d < bestDist {
						bestDist = d
						bestLine = b
						bestIdx = qi
					}
				}
			}

			if bestLine != nil {
				a.Points[pi] = bestLine.Points[bestIdx]
				used[bestLine][bestIdx] = true
			}
		}
	}
}

// Resample resamples a polyline to approximately avgSpacing density (spec
// §4.3 "resampling"): points whose neighbor spacing diverges from the next
// inter-point spacing by more than 2.2x are deleted or moved to the
// midpoint, and segments longer than 1.4x avgSpacing are split.
func Resample(line *model.IntersectionLine, avgSpacing float64) {
	if len(line.Points) < 2 {
		return
	}

	// Split long segments first.
	var out []model.Point3
	out = append(out, line.Points[0])
	for i := 1; i < len(line.Points); i++ {
		prev, cur := line.Points[i-1], line.Points[i]
		segLen := prev.Distance(cur)
		if segLen > 1.4*avgSpacing {
			n := int(math.Ceil(segLen / avgSpacing))
			for k := 1; k < n; k++ {
				out = append(out, prev.Lerp(cur, float64(k)/float64(n)))
			}
		}
		out = append(out, cur)
	}

	// Drop points whose spacing diverges sharply from the next inter-point
	// spacing, moving the surviving neighbor to the midpoint.
	var cleaned []model.Point3
	cleaned = append(cleaned, out[0])
	for i := 1; i < len(out)-1; i++ {
		prevLen := out[i-1].Distance(out[i])
		nextLen := out[i].Distance(out[i+1])
		if prevLen > 0 && nextLen > 0 {
			ratio := prevLen / nextLen
			if ratio > 2.2 || ratio < 1/2.2 {
				cleaned = append(cleaned, out[i-1].Lerp(out[i+1], 0.5))
				continue
			}
		}
		cleaned = append(cleaned, out[i])
	}
	cleaned = append(cleaned, out[len(out)-1])

	line.Points = cleaned
	line.Flags = make([]int, len(cleaned))
}
