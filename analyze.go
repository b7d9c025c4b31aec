package seal

import (
	"fmt"
	"math"
	"strings"

	"github.com/glennpinkerton/sealedmodel/seal/model"
)

// AngleHistogram buckets triangle minimum-interior-angle degrees into ten
// 18-degree-wide buckets spanning 0-180 (spec §6 analyzeSealedModel, §8
// "min angle, histogram sum").
type AngleHistogram [10]int

// SurfaceReport is one sealed surface's slice of the analysis.
type SurfaceReport struct {
	ExternalID int
	Kind       string
	Triangles  int
	MinAngle   float64
	Histogram  AngleHistogram
}

// AnalyzeReport is the full sealed-model quality report.
type AnalyzeReport struct {
	MinAngle  float64
	Histogram AngleHistogram
	Surfaces  []SurfaceReport
}

// AnalyzeSealedModel walks every sealed surface's live triangles, computing
// the minimum interior angle per triangle and bucketing it into a 10-bin
// histogram over [0,180) degrees (spec §6 analyzeSealedModel).
func (m *Model) AnalyzeSealedModel() (*AnalyzeReport, error) {
	if len(m.sealedHorizons) == 0 && len(m.sealedFaults) == 0 {
		return nil, ErrNoSealedModel
	}

	report := &AnalyzeReport{MinAngle: 180}

	analyze := func(externalID int, kind string, mesh *model.TriMesh) {
		sr := SurfaceReport{ExternalID: externalID, Kind: kind, MinAngle: 180}
		for ti, t := range mesh.Triangles {
			if t.Deleted {
				continue
			}
			a, b, c := mesh.TrianglePoints(ti)
			ang := minAngleDegrees(a, b, c)

			sr.Triangles++
			if ang < sr.MinAngle {
				sr.MinAngle = ang
			}
			bucket(&sr.Histogram, ang)

			if ang < report.MinAngle {
				report.MinAngle = ang
			}
			bucket(&report.Histogram, ang)
		}
		report.Surfaces = append(report.Surfaces, sr)
	}

	for _, h := range m.sealedHorizons {
		analyze(h.ExternalID, "horizon", h)
	}
	for _, f := range m.sealedFaults {
		analyze(f.ExternalID, "fault", f)
	}
	if m.sealedTop != nil {
		analyze(m.sealedTop.ExternalID, "sediment-top", m.sealedTop)
	}
	if m.sealedBottom != nil {
		analyze(m.sealedBottom.ExternalID, "model-bottom", m.sealedBottom)
	}

	return report, nil
}

// minAngleDegrees returns the smallest interior angle of triangle (a,b,c)
// in degrees, via the law-of-cosines vector form (no library concern here:
// this is a single trig identity on three points, not a geometry library's
// domain — algorithm/geometry's helpers are all 2-D and don't cover this).
func minAngleDegrees(a, b, c model.Point3) float64 {
	angleAt := func(p, q, r model.Point3) float64 {
		u, v := q.Sub(p), r.Sub(p)
		cos := u.Dot(v) / (u.Length() * v.Length())
		cos = math.Max(-1, math.Min(1, cos))
		return math.Acos(cos) * 180 / math.Pi
	}
	angles := []float64{angleAt(a, b, c), angleAt(b, a, c), angleAt(c, a, b)}
	min := angles[0]
	for _, a := range angles[1:] {
		if a < min {
			min = a
		}
	}
	return min
}

func bucket(h *AngleHistogram, angleDeg float64) {
	idx := int(angleDeg / 18)
	if idx < 0 {
		idx = 0
	}
	if idx > 9 {
		idx = 9
	}
	h[idx]++
}

// String renders the report as the teacher's plain-text, one-stanza-per-
// surface dump (no csw-specific formatting).
func (r *AnalyzeReport) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "min angle: %.3f\n", r.MinAngle)
	fmt.Fprintf(&b, "histogram: %v\n", r.Histogram)
	for _, s := range r.Surfaces {
		fmt.Fprintf(&b, "  [%s %d] triangles=%d minAngle=%.3f histogram=%v\n",
			s.Kind, s.ExternalID, s.Triangles, s.MinAngle, s.Histogram)
	}
	return b.String()
}
