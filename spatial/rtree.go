package spatial

import "github.com/dhconnelly/rtreego"

const rtreeMinBoxSize = 1e-9

// rtreeLeaf adapts a TriRef + box into rtreego.Spatial.
type rtreeLeaf struct {
	ref    TriRef
	bounds *rtreego.Rect
}

func (l *rtreeLeaf) Bounds() *rtreego.Rect { return l.bounds }

// RTreeIndex is an alternate Index3D backend built on github.com/dhconnelly/rtreego.
// It is a drop-in substitute for Grid3D: callers that want R-tree query
// characteristics instead of uniform bucketing (e.g. very non-uniform
// triangle sizes) can select it via a collab.TriangleIndexFactory.
type RTreeIndex struct {
	tree *rtreego.Rtree
}

// NewRTreeIndex creates an empty RTreeIndex with the standard 3-D,
// min-25/max-50 branch factors rtreego recommends for moderate-sized trees.
func NewRTreeIndex() *RTreeIndex {
	return &RTreeIndex{tree: rtreego.NewTree(3, 25, 50)}
}

func safeRect(minX, minY, minZ, maxX, maxY, maxZ float64) (*rtreego.Rect, error) {
	lengths := []float64{maxX - minX, maxY - minY, maxZ - minZ}
	for i, l := range lengths {
		if l < rtreeMinBoxSize {
			lengths[i] = rtreeMinBoxSize
		}
	}
	return rtreego.NewRect(rtreego.Point{minX, minY, minZ}, lengths)
}

// Insert implements Index3D.
func (r *RTreeIndex) Insert(ref TriRef, minX, minY, minZ, maxX, maxY, maxZ float64) {
	rect, err := safeRect(minX, minY, minZ, maxX, maxY, maxZ)
	if err != nil {
		return
	}
	r.tree.Insert(&rtreeLeaf{ref: ref, bounds: rect})
}

// Query implements Index3D.
func (r *RTreeIndex) Query(minX, minY, minZ, maxX, maxY, maxZ float64) []TriRef {
	rect, err := safeRect(minX, minY, minZ, maxX, maxY, maxZ)
	if err != nil {
		return nil
	}
	hits := r.tree.SearchIntersect(rect)
	out := make([]TriRef, 0, len(hits))
	for _, h := range hits {
		if leaf, ok := h.(*rtreeLeaf); ok {
			out = append(out, leaf.ref)
		}
	}
	return out
}
