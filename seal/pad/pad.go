// Package pad implements the padding engine (spec §4.1): extending every
// input surface to a common rectangular pad box and building the four
// vertical side walls (and, when requested, a default top/bottom).
//
// It is grounded on the teacher's cdt/mesh grid-construction style (see
// mesh/constructor.go for the "build a rectangular grid, then triangulate
// it" pattern this package generalizes to 3-D side walls).
package pad

import (
	"errors"
	"fmt"
	"math"

	"github.com/glennpinkerton/sealedmodel/seal/collab"
	"github.com/glennpinkerton/sealedmodel/seal/geom2d"
	"github.com/glennpinkerton/sealedmodel/seal/model"
	"github.com/glennpinkerton/sealedmodel/types"
)

// ErrNoHorizons is returned by Pad when no horizons have been supplied —
// spec §4.1 "missing inputs (no horizons) return -1".
var ErrNoHorizons = errors.New("pad: no input horizons")

// Box is the pad box: every padded surface's planar extent must cover it.
type Box struct {
	Min, Max model.Point3
}

// Inputs bundles everything the padding engine needs from the orchestrator.
type Inputs struct {
	Horizons         []*model.TriMesh
	Faults           []*model.TriMesh
	SedimentSurface  *model.TriMesh // nil if not supplied
	ModelBottom      *model.TriMesh // nil if not supplied
	AverageSpacing   float64        // 0 means "compute from edges"
	SimSealFlag      bool           // enables default top/bottom synthesis
	Triangulator     collab.Triangulator
	PlaneFitter      collab.PlaneFitter
}

// Result is everything PadModel produces.
type Result struct {
	Box              Box
	AverageSpacing   float64
	Horizons         []*model.TriMesh
	Faults           []*model.TriMesh
	SedimentSurface  *model.TriMesh
	ModelBottom      *model.TriMesh
	DefaultTop       *model.TriMesh // only when SimSealFlag and no sediment surface
	DefaultBottom    *model.TriMesh
	Walls            map[model.Side]*model.TriMesh
}

// FractionSpec is the "padModel(fractionXY, fractionZ, avgSpacing)" entry
// point's argument shape (spec §6).
type FractionSpec struct {
	FractionXY float64
	FractionZ  float64
}

// PadModel runs the padding engine against an explicit box (spec §4.1,
// "padModel(xmin..zmax, avgSpacing)").
func PadModel(in Inputs, box Box) (*Result, error) {
	return padModel(in, &box, nil)
}

// PadModelFraction runs the padding engine, deriving the box by expanding
// the AABB of all inputs by the given xy/z fractions (spec §4.1 step 1,
// "padModel(fractionXY, fractionZ, avgSpacing)").
func PadModelFraction(in Inputs, frac FractionSpec) (*Result, error) {
	return padModel(in, nil, &frac)
}

func padModel(in Inputs, box *Box, frac *FractionSpec) (*Result, error) {
	if len(in.Horizons) == 0 {
		return nil, ErrNoHorizons
	}

	allAABB := inputsAABB(in)

	var padBox Box
	switch {
	case box != nil:
		padBox = *box
	case frac != nil:
		padBox = expandByFraction(allAABB, frac.FractionXY, frac.FractionZ)
	default:
		return nil, errors.New("pad: either an explicit box or a fraction spec is required")
	}

	spacing := in.AverageSpacing
	if spacing <= 0 {
		spacing = meanEdgeLength(in)
		if spacing <= 0 {
			xySpan := (padBox.Max.X - padBox.Min.X) + (padBox.Max.Y - padBox.Min.Y)
			spacing = xySpan / 100
		}
	}

	// Step 3: slightly enlarge z so side walls exceed the top of every
	// surface.
	zRange := padBox.Max.Z - padBox.Min.Z
	eps := zRange / 10
	padBox.Min.Z -= eps
	padBox.Max.Z += eps

	res := &Result{
		Box:            padBox,
		AverageSpacing: spacing,
		Walls:          make(map[model.Side]*model.TriMesh),
	}

	for _, h := range in.Horizons {
		p, err := padSurface(h, padBox, spacing, in.Triangulator)
		if err != nil {
			return nil, fmt.Errorf("pad: horizon %d: %w", h.ExternalID, err)
		}
		res.Horizons = append(res.Horizons, p)
	}

	if in.SedimentSurface != nil {
		p, err := padSurface(in.SedimentSurface, padBox, spacing, in.Triangulator)
		if err != nil {
			return nil, fmt.Errorf("pad: sediment surface: %w", err)
		}
		res.SedimentSurface = p
	}

	if in.ModelBottom != nil {
		p, err := padSurface(in.ModelBottom, padBox, spacing, in.Triangulator)
		if err != nil {
			return nil, fmt.Errorf("pad: model bottom: %w", err)
		}
		res.ModelBottom = p
	}

	for _, f := range in.Faults {
		p, err := padFault(f, padBox, spacing, in.Triangulator, in.PlaneFitter)
		if err != nil {
			return nil, fmt.Errorf("pad: fault %d: %w", f.ExternalID, err)
		}
		res.Faults = append(res.Faults, p)
	}

	for _, side := range []model.Side{model.North, model.South, model.East, model.West} {
		res.Walls[side] = buildWall(side, padBox, spacing)
	}

	if in.SimSealFlag && in.SedimentSurface == nil {
		res.DefaultTop = defaultHorizontalSurface(model.KindDefaultTop(), padBox, padBox.Max.Z-zTinyEps(padBox), spacing)
	}
	if in.SimSealFlag && in.ModelBottom == nil {
		res.DefaultBottom = defaultHorizontalSurface(model.KindDefaultBottom(), padBox, padBox.Min.Z+zTinyEps(padBox), spacing)
	}

	return res, nil
}

func zTinyEps(b Box) float64 {
	return (b.Max.Z - b.Min.Z) / 100000
}

func inputsAABB(in Inputs) model.AABB3 {
	var meshes []*model.TriMesh
	meshes = append(meshes, in.Horizons...)
	meshes = append(meshes, in.Faults...)
	if in.SedimentSurface != nil {
		meshes = append(meshes, in.SedimentSurface)
	}
	if in.ModelBottom != nil {
		meshes = append(meshes, in.ModelBottom)
	}

	var pts []model.Point3
	for _, m := range meshes {
		for _, n := range m.Nodes {
			if !n.Deleted {
				pts = append(pts, n.Pos)
			}
		}
	}
	return model.BBoxOfPoints(pts)
}

func expandByFraction(box model.AABB3, fracXY, fracZ float64) Box {
	dx := (box.Max.X - box.Min.X) * fracXY
	dy := (box.Max.Y - box.Min.Y) * fracXY
	dz := (box.Max.Z - box.Min.Z) * fracZ
	return Box{
		Min: model.Point3{X: box.Min.X - dx, Y: box.Min.Y - dy, Z: box.Min.Z - dz},
		Max: model.Point3{X: box.Max.X + dx, Y: box.Max.Y + dy, Z: box.Max.Z + dz},
	}
}

func meanEdgeLength(in Inputs) float64 {
	var sum float64
	var n int
	acc := func(m *model.TriMesh) {
		for _, e := range m.Edges {
			sum += e.Length
			n++
		}
	}
	for _, h := range in.Horizons {
		acc(h)
	}
	for _, f := range in.Faults {
		acc(f)
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// padSurface extends a flat (non-fault) surface's planar extent to cover
// the pad box by triangulating the pad box's four corners in its place
// (spec §4.1 step 5); the surface's original nodes are not kept, unless
// it already covers the box, in which case it is returned as is. z for
// the new nodes is drawn from
// the mesh's own average z, since these surfaces are presumed near-planar;
// genuinely curved surfaces rely on the outline builder's interpolation
// pass downstream rather than on padding producing perfect drape.
func padSurface(src *model.TriMesh, box Box, spacing float64, tri collab.Triangulator) (*model.TriMesh, error) {
	out := src.Clone()
	out.IsPadded = true

	if planarlyCovers(src, box) {
		return out, nil
	}

	outer2D, z := paddedOuterRing(src, box)
	result, err := tri.Triangulate(outer2D, nil, nil)
	if err != nil {
		return nil, err
	}

	out.Nodes = out.Nodes[:0]
	out.Edges = out.Edges[:0]
	out.Triangles = out.Triangles[:0]
	for _, p := range result.Points {
		out.AddNode(model.Point3{X: p.X, Y: p.Y, Z: z})
	}
	out.InstallTriangles(result.Triangles)
	return out, nil
}

func planarlyCovers(m *model.TriMesh, box Box) bool {
	bb := m.AABB()
	return bb.Min.X <= box.Min.X && bb.Min.Y <= box.Min.Y &&
		bb.Max.X >= box.Max.X && bb.Max.Y >= box.Max.Y
}

// paddedOuterRing builds the CCW polygon of the pad box's xy footprint
// (padding is, for a flat surface, simply "triangulate the whole pad box
// footprint"; the original surface's interior nodes are recovered later
// by the outline/embed stages, which constrain sealed horizons to the
// surface's own intersect lines rather than by carrying interior detail
// through padding itself).
func paddedOuterRing(m *model.TriMesh, box Box) ([]types.Point, float64) {
	z := averageZ(m)
	ring := []types.Point{
		{X: box.Min.X, Y: box.Min.Y},
		{X: box.Max.X, Y: box.Min.Y},
		{X: box.Max.X, Y: box.Max.Y},
		{X: box.Min.X, Y: box.Max.Y},
	}
	return ring, z
}

func averageZ(m *model.TriMesh) float64 {
	var sum float64
	var n int
	for _, node := range m.Nodes {
		if !node.Deleted {
			sum += node.Pos.Z
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// padFault pads a fault by fitting its best-fit plane, rotating into the
// plane-local frame, padding in 2-D there, and unrotating (spec §4.1 step
// 6). A fault plane frame lets near-vertical faults be padded/triangulated
// without the xy-degeneracy a world-frame approach would hit.
func padFault(src *model.TriMesh, box Box, spacing float64, tri collab.Triangulator, fitter collab.PlaneFitter) (*model.TriMesh, error) {
	out := src.Clone()
	out.IsPadded = true

	pts := livePoints(src)
	normal, origin, err := fitter.Fit(pts)
	if err != nil {
		return nil, fmt.Errorf("padFault: plane fit: %w", err)
	}
	out.VFlag = 1
	out.VBase = [6]float64{normal.X, normal.Y, normal.Z, origin.X, origin.Y, origin.Z}

	u, v := planeBasis(normal)
	rotate := func(p model.Point3) types.Point {
		d := p.Sub(origin)
		return types.Point{X: d.Dot(u), Y: d.Dot(v)}
	}
	unrotate := func(x, y float64) model.Point3 {
		return origin.Add(u.Scale(x)).Add(v.Scale(y))
	}

	// Pad-box corners, projected into the plane frame, extend the fault's
	// own footprint so its constrained triangulation also reaches the box.
	corners := boxCorners(box)
	outer := make([]types.Point, 0, len(corners)+8)
	faultBorder := faultOuterLoop(src)
	for _, p := range faultBorder {
		outer = append(outer, rotate(p))
	}
	for _, c := range corners {
		outer = append(outer, rotate(c))
	}
	hullPts := geom2d.ConvexHull(outer)

	result, err := tri.Triangulate(hullPts, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("padFault: triangulate: %w", err)
	}

	out.Nodes = out.Nodes[:0]
	out.Edges = out.Edges[:0]
	out.Triangles = out.Triangles[:0]
	for _, p := range result.Points {
		out.AddNode(unrotate(p.X, p.Y))
	}
	out.InstallTriangles(result.Triangles)
	return out, nil
}

func livePoints(m *model.TriMesh) []model.Point3 {
	pts := make([]model.Point3, 0, len(m.Nodes))
	for _, n := range m.Nodes {
		if !n.Deleted {
			pts = append(pts, n.Pos)
		}
	}
	return pts
}

func planeBasis(n model.Point3) (model.Point3, model.Point3) {
	ref := model.Point3{X: 0, Y: 0, Z: 1}
	if math.Abs(n.Z) > 0.9 {
		ref = model.Point3{X: 1, Y: 0, Z: 0}
	}
	u := n.Cross(ref)
	if l := u.Length(); l > 0 {
		u = u.Scale(1 / l)
	}
	v := n.Cross(u)
	if l := v.Length(); l > 0 {
		v = v.Scale(1 / l)
	}
	return u, v
}

func boxCorners(box Box) []model.Point3 {
	return []model.Point3{
		{X: box.Min.X, Y: box.Min.Y, Z: box.Min.Z},
		{X: box.Max.X, Y: box.Min.Y, Z: box.Min.Z},
		{X: box.Max.X, Y: box.Max.Y, Z: box.Min.Z},
		{X: box.Min.X, Y: box.Max.Y, Z: box.Min.Z},
		{X: box.Min.X, Y: box.Min.Y, Z: box.Max.Z},
		{X: box.Max.X, Y: box.Min.Y, Z: box.Max.Z},
		{X: box.Max.X, Y: box.Max.Y, Z: box.Max.Z},
		{X: box.Min.X, Y: box.Max.Y, Z: box.Max.Z},
	}
}

// faultOuterLoop returns the fault's live nodes, in no particular order;
// good enough to seed a convex hull for the padded outer ring (the hull
// only needs the extreme points, not the true boundary loop).
func faultOuterLoop(m *model.TriMesh) []model.Point3 {
	return livePoints(m)
}

// buildWall builds one vertical side wall as a regular grid (spec §4.1
// step 4): north/south lie at fixed y, east/west at fixed x. Each grid
// cell is a rectangle no wider or taller than spacing, split along one
// diagonal into two right triangles; the triangles are not
// near-equilateral.
func buildWall(side model.Side, box Box, spacing float64) *model.TriMesh {
	var along, normal model.Point3
	var fixedOrigin model.Point3
	var uSpan, vSpan float64

	xSpan := box.Max.X - box.Min.X
	ySpan := box.Max.Y - box.Min.Y
	zSpan := box.Max.Z - box.Min.Z

	switch side {
	case model.North:
		along = model.Point3{X: 1, Y: 0, Z: 0}
		normal = model.Point3{X: 0, Y: 1, Z: 0}
		fixedOrigin = model.Point3{X: box.Min.X, Y: box.Max.Y, Z: box.Min.Z}
		uSpan, vSpan = xSpan, zSpan
	case model.South:
		along = model.Point3{X: 1, Y: 0, Z: 0}
		normal = model.Point3{X: 0, Y: -1, Z: 0}
		fixedOrigin = model.Point3{X: box.Min.X, Y: box.Min.Y, Z: box.Min.Z}
		uSpan, vSpan = xSpan, zSpan
	case model.East:
		along = model.Point3{X: 0, Y: 1, Z: 0}
		normal = model.Point3{X: 1, Y: 0, Z: 0}
		fixedOrigin = model.Point3{X: box.Max.X, Y: box.Min.Y, Z: box.Min.Z}
		uSpan, vSpan = ySpan, zSpan
	case model.West:
		along = model.Point3{X: 0, Y: 1, Z: 0}
		normal = model.Point3{X: -1, Y: 0, Z: 0}
		fixedOrigin = model.Point3{X: box.Min.X, Y: box.Min.Y, Z: box.Min.Z}
		uSpan, vSpan = ySpan, zSpan
	}

	nu := int(math.Ceil(uSpan/spacing)) + 1
	nv := int(math.Ceil(vSpan/spacing)) + 1
	if nu < 2 {
		nu = 2
	}
	if nv < 2 {
		nv = 2
	}

	m := model.NewTriMesh(model.KindBoundary(side))
	m.IsPadded = true
	m.VFlag = 1
	center := fixedOrigin.Add(along.Scale(uSpan / 2)).Add(model.Point3{Z: vSpan / 2})
	m.VBase = [6]float64{normal.X, normal.Y, normal.Z, center.X, center.Y, center.Z}

	ids := make([][]int, nv)
	for j := 0; j < nv; j++ {
		ids[j] = make([]int, nu)
		v := float64(j) * vSpan / float64(nv-1)
		for i := 0; i < nu; i++ {
			u := float64(i) * uSpan / float64(nu-1)
			p := fixedOrigin.Add(along.Scale(u)).Add(model.Point3{Z: v})
			ids[j][i] = m.AddNode(p)
		}
	}

	for j := 0; j < nv-1; j++ {
		for i := 0; i < nu-1; i++ {
			a, b, c, d := ids[j][i], ids[j][i+1], ids[j+1][i+1], ids[j+1][i]
			m.InstallTriangles([][3]int{{a, b, c}, {a, c, d}})
		}
	}

	return m
}

// defaultHorizontalSurface synthesizes a flat top or bottom covering the
// pad box at a fixed z (spec §4.1, "if no sediment top is supplied but
// simSealFlag is set, a default horizontal top/bottom is created").
func defaultHorizontalSurface(kind model.SurfaceKind, box Box, z, spacing float64) *model.TriMesh {
	m := model.NewTriMesh(kind)
	m.IsPadded = true

	xSpan := box.Max.X - box.Min.X
	ySpan := box.Max.Y - box.Min.Y
	nx := int(math.Ceil(xSpan/spacing)) + 1
	ny := int(math.Ceil(ySpan/spacing)) + 1
	if nx < 2 {
		nx = 2
	}
	if ny < 2 {
		ny = 2
	}

	ids := make([][]int, ny)
	for j := 0; j < ny; j++ {
		ids[j] = make([]int, nx)
		y := box.Min.Y + float64(j)*ySpan/float64(ny-1)
		for i := 0; i < nx; i++ {
			x := box.Min.X + float64(i)*xSpan/float64(nx-1)
			ids[j][i] = m.AddNode(model.Point3{X: x, Y: y, Z: z})
		}
	}
	for j := 0; j < ny-1; j++ {
		for i := 0; i < nx-1; i++ {
			a, b, c, d := ids[j][i], ids[j][i+1], ids[j+1][i+1], ids[j+1][i]
			m.InstallTriangles([][3]int{{a, b, c}, {a, c, d}})
		}
	}
	return m
}
