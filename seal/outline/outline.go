// Package outline builds a sealed horizon's final boundary polygon (spec
// §4.4) and splits it into per-lineid sealed-horizon-intersect segments
// (spec §4.5).
package outline

import (
	"errors"
	"math"

	"github.com/glennpinkerton/sealedmodel/algorithm/polygon"
	"github.com/glennpinkerton/sealedmodel/seal/index"
	"github.com/glennpinkerton/sealedmodel/seal/model"
	"github.com/glennpinkerton/sealedmodel/types"
)

// ErrNoPolygonContainsCentroid is returned when, even after the inscribed-
// point fallback, no traced face contains an interior point of the
// surface (spec §7, "a centroid outside its polygon where a fallback
// interior-point search fails after 8 doublings" — an invariant
// violation, so the caller should treat this as fatal).
var ErrNoPolygonContainsCentroid = errors.New("outline: no face contains surface centroid or any fallback interior point")

// OriginalBorderLineID is the pseudo-lineid spec §4.4 step 2 assigns to a
// surface's own outer border when used as a stand-in intersection line.
const OriginalBorderLineID = 1000001

// BuildOutline runs spec §4.4 for one padded horizon: traces faces from
// the union of lines, picks the one containing centroid (falling back to
// an inscribed-point search), and resolves z for every polygon vertex.
func BuildOutline(lines []PolylineInput, centroid model.Point3, xyTiny, tol float64, nodeIdx *index.NodeIndex) (*model.Outline, error) {
	faces := BuildFaces(lines, tol)
	if len(faces) == 0 {
		return nil, errors.New("outline: no bounded faces traced from intersection lines")
	}

	face := selectFace(faces, centroid)
	if face == nil {
		face = fallbackInscribedSearch(faces, centroid)
	}
	if face == nil {
		return nil, ErrNoPolygonContainsCentroid
	}

	return resolveZ(face, lines, xyTiny, nodeIdx), nil
}

func selectFace(faces []Face, p model.Point3) *Face {
	pp := types.Point{X: p.X, Y: p.Y}
	for i := range faces {
		var poly []types.Point
		for _, q := range faces[i].Points {
			poly = append(poly, types.Point{X: q.X, Y: q.Y})
		}
		if polygon.PointInPolygon(pp, poly) != polygon.Outside {
			return &faces[i]
		}
	}
	return nil
}

// fallbackInscribedSearch handles the C-shaped-valid-region case (spec §8
// scenario 4): the stored centroid can lie outside every candidate face
// (e.g. a non-convex horizon whose geometric centroid falls in a concave
// bite). It tests a grid of candidate points in a fixed window of width
// step (1/20 of the larger span of all faces) centred on the original
// centroid, starting at 2x2 and doubling the grid resolution up to 8
// times, until one point falls inside a face.
func fallbackInscribedSearch(faces []Face, centroid model.Point3) *Face {
	if len(faces) == 0 {
		return nil
	}

	// Establish a base step from the bounding box of all candidate faces.
	var minX, maxX, minY, maxY float64
	first := true
	for _, f := range faces {
		for _, p := range f.Points {
			if first {
				minX, maxX, minY, maxY = p.X, p.X, p.Y, p.Y
				first = false
			}
			minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
			minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
		}
	}
	step := math.Max(maxX-minX, maxY-minY) / 20
	if step <= 0 {
		step = 1
	}

	grid := 2
	for doubling := 0; doubling < 8; doubling++ {
		for gy := 0; gy < grid; gy++ {
			for gx := 0; gx < grid; gx++ {
				cand := model.Point3{
					X: centroid.X + (float64(gx)-float64(grid)/2)*step/float64(grid),
					Y: centroid.Y + (float64(gy)-float64(grid)/2)*step/float64(grid),
				}
				if f := selectFace(faces, cand); f != nil {
					return f
				}
			}
		}
		grid *= 2
	}
	return nil
}

// resolveZ fills in z for every xy polygon vertex (spec §4.4 step 5):
// first from the matching intersection point within xyTiny, else from the
// nearest original padded-surface node via the 2-D node index, else by
// linear interpolation along the polygon arc.
func resolveZ(face *Face, lines []PolylineInput, xyTiny float64, nodeIdx *index.NodeIndex) *model.Outline {
	n := len(face.Points)
	z := make([]float64, n)
	known := make([]bool, n)

	lineByID := make(map[int][]model.Point3)
	for _, l := range lines {
		lineByID[l.LineID] = l.Points
	}

	for i, p := range face.Points {
		pts := lineByID[face.Tags[i].LineID]
		if face.Tags[i].PointID < len(pts) {
			cand := pts[face.Tags[i].PointID]
			if math.Hypot(cand.X-p.X, cand.Y-p.Y) < xyTiny {
				z[i] = cand.Z
				known[i] = true
				continue
			}
		}
		if nodeIdx != nil {
			ids, near := nodeIdx.FindNear(p.X, p.Y, xyTiny*50)
			if len(ids) > 0 {
				best := near[0]
				bestD := math.Hypot(best.X-p.X, best.Y-p.Y)
				for _, q := range near[1:] {
					d := math.Hypot(q.X-p.X, q.Y-p.Y)
					if d < bestD {
						bestD, best = d, q
					}
				}
				z[i] = best.Z
				known[i] = true
			}
		}
	}

	fillUnknownZByArcInterp(z, known, face.Points)

	out := &model.Outline{
		Points: make([]model.Point3, n),
		Tags:   append([]model.ITag(nil), face.Tags...),
	}
	for i, p := range face.Points {
		out.Points[i] = model.Point3{X: p.X, Y: p.Y, Z: z[i]}
	}
	// Close the outline (spec §3 invariant: first == last under model eps).
	if n > 0 {
		out.Points = append(out.Points, out.Points[0])
		out.Tags = append(out.Tags, out.Tags[0])
	}
	return out
}

// fillUnknownZByArcInterp linearly interpolates z for points without a
// known value, walking the polygon arc and interpolating between the
// nearest known neighbors on each side (wrapping around, since the
// polygon is closed).
func fillUnknownZByArcInterp(z []float64, known []bool, pts []model.Point3) {
	n := len(z)
	anyKnown := false
	for _, k := range known {
		anyKnown = anyKnown || k
	}
	if !anyKnown || n == 0 {
		return
	}

	arcLen := make([]float64, n)
	for i := 1; i < n; i++ {
		arcLen[i] = arcLen[i-1] + pts[i-1].Distance(pts[i])
	}

	for i := 0; i < n; i++ {
		if known[i] {
			continue
		}
		prev := prevKnown(known, i)
		next := nextKnown(known, i)
		if prev < 0 || next < 0 {
			continue
		}
		var d0, d1, dTotal float64
		if prev < i {
			d0 = arcLen[i] - arcLen[prev]
		} else {
			d0 = (arcLen[n-1] - arcLen[prev]) + arcLen[i]
		}
		if i < next {
			d1 = arcLen[next] - arcLen[i]
		} else {
			d1 = (arcLen[n-1] - arcLen[i]) + arcLen[next]
		}
		dTotal = d0 + d1
		if dTotal == 0 {
			z[i] = z[prev]
			continue
		}
		z[i] = z[prev] + (z[next]-z[prev])*(d0/dTotal)
	}
}

// MarkEmbedFlags sets EmbedFlag on every line whose mid-region lies within
// avgSpacing/2 of the outline for at least a quarter of its points (spec
// §4.4, final paragraph) — these lines get embedded into their
// corresponding faults downstream.
func MarkEmbedFlags(lines []*model.IntersectionLine, outlinePts []model.Point3, avgSpacing float64) {
	tol := avgSpacing / 2
	for _, l := range lines {
		if len(l.Points) == 0 {
			continue
		}
		lo := len(l.Points) / 4
		hi := len(l.Points) - lo
		if hi <= lo {
			lo, hi = 0, len(l.Points)
		}
		close := 0
		for i := lo; i < hi; i++ {
			if nearestDist(l.Points[i], outlinePts) < tol {
				close++
			}
		}
		if float64(close) >= 0.25*float64(hi-lo) {
			l.EmbedFlag = true
		}
	}
}

func nearestDist(p model.Point3, pts []model.Point3) float64 {
	best := math.MaxFloat64
	for _, q := range pts {
		d := math.Hypot(p.X-q.X, p.Y-q.Y)
		if d < best {
			best = d
		}
	}
	return best
}

func prevKnown(known []bool, from int) int {
	n := len(known)
	for step := 1; step <= n; step++ {
		i := (from - step + n) % n
		if known[i] {
			return i
		}
	}
	return -1
}

func nextKnown(known []bool, from int) int {
	n := len(known)
	for step := 1; step <= n; step++ {
		i := (from + step) % n
		if known[i] {
			return i
		}
	}
	return -1
}
