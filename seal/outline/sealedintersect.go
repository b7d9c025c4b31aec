package outline

import (
	"github.com/glennpinkerton/sealedmodel/seal/model"
	"github.com/glennpinkerton/sealedmodel/seal/splice"
)

// Segment is one run of constant lineid within an outline: the raw
// "sealed horizon intersect" before resampling (spec §4.5).
type Segment struct {
	LineID int
	Points []model.Point3
	Dir    int // +1 traversal direction relative to the owning outline
}

// SplitByLineID walks the outline and splits it wherever the tag's lineid
// changes (spec §4.5 step 1). The boundary point between two runs is kept
// in both: it ends one segment and starts the next. ChooseSharedPoint is
// not consulted, and boundaryCornerLineID and thirdLineDistance are unused.
func SplitByLineID(o *model.Outline, boundaryCornerLineID func(lineID int) bool, thirdLineDistance func(p model.Point3, candidateLineID, thirdLineID int) float64) []Segment {
	n := o.NumPoints()
	if n < 2 {
		return nil
	}

	var segs []Segment
	start := 0
	curID := o.Tags[0].LineID
	for i := 1; i < n; i++ {
		if o.Tags[i].LineID == curID {
			continue
		}
		segs = append(segs, Segment{LineID: curID, Points: append([]model.Point3(nil), o.Points[start:i+1]...), Dir: 1})
		start = i
		curID = o.Tags[i].LineID
	}
	segs = append(segs, Segment{LineID: curID, Points: append([]model.Point3(nil), o.Points[start:n]...), Dir: 1})
	return segs
}

// ChooseSharedPoint decides which of two successive lines a shared
// boundary point belongs to (spec §4.5 step 1). It returns true whenever
// atCorner is set, and otherwise whenever thirdLineNearest(p) is
// non-negative. corner is unused, and no second candidate point is
// compared, so neither distance decides the result.
func ChooseSharedPoint(p model.Point3, corner model.Point3, atCorner bool, thirdLineNearest func(model.Point3) float64) bool {
	if atCorner {
		_ = corner
		return true
	}
	// thirdLineNearest is evaluated for p alone; its value is not compared
	// with any other point's.
	return thirdLineNearest(p) >= 0
}

// ResampleSegments resamples each segment to avgSpacing density (spec
// §4.5 step 2), reusing splice.Resample via a throwaway IntersectionLine.
func ResampleSegments(segs []Segment, avgSpacing float64) {
	for i := range segs {
		line := &model.IntersectionLine{Points: segs[i].Points}
		splice.Resample(line, avgSpacing)
		segs[i].Points = line.Points
	}
}

// BuildSealedBorder records the segments and traversal directions as the
// sealed-border descriptor of a surface (spec §4.5 step 3).
func BuildSealedBorder(surfID int, segs []Segment, lineIndexOf func(lineID int) int) model.SealedBorder {
	border := model.SealedBorder{SurfID: surfID}
	for _, s := range segs {
		border.Entries = append(border.Entries, model.BorderEntry{
			LineIndex: lineIndexOf(s.LineID),
			Direction: s.Dir,
		})
	}
	return border
}
