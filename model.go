// Package seal orchestrates the geological model sealing pipeline: input
// ingestion, padding, intersection, splicing, outline construction,
// embedding/cropping, and tetgen export (spec §2 control flow).
package seal

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/glennpinkerton/sealedmodel/rasterize"
	"github.com/glennpinkerton/sealedmodel/seal/debugdump"
	"github.com/glennpinkerton/sealedmodel/seal/embed"
	"github.com/glennpinkerton/sealedmodel/seal/index"
	"github.com/glennpinkerton/sealedmodel/seal/model"
	"github.com/glennpinkerton/sealedmodel/seal/outline"
	"github.com/glennpinkerton/sealedmodel/seal/pad"
	"github.com/glennpinkerton/sealedmodel/seal/splice"
	"github.com/glennpinkerton/sealedmodel/seal/tetgen"
	"github.com/glennpinkerton/sealedmodel/seal/xsect"
)

// Model is the orchestrator: one instance runs one sealing pipeline
// (spec §5, "single-threaded and non-reentrant... one sealing run uses
// one orchestrator instance").
type Model struct {
	cfg Config

	nextInternalID int

	horizons        []*model.TriMesh
	faults          []*model.TriMesh
	sedimentSurface *model.TriMesh
	modelBottom     *model.TriMesh
	detachment      *model.TriMesh

	padded *pad.Result

	rawLines    []*model.IntersectionLine
	sealedInts  map[int][]outline.Segment // keyed by owning surface's internal id

	sealedHorizons []*model.TriMesh
	sealedFaults   []*model.TriMesh
	sealedTop      *model.TriMesh
	sealedBottom   *model.TriMesh
	sealedBoundary map[model.Side]*model.TriMesh
	sealedDetach   *model.TriMesh
}

// New constructs an empty Model.
func New(opts ...Option) *Model {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}
	return &Model{
		cfg:            cfg,
		sealedInts:     make(map[int][]outline.Segment),
		sealedBoundary: make(map[model.Side]*model.TriMesh),
	}
}

func (m *Model) allocID() int {
	id := m.nextInternalID
	m.nextInternalID++
	return id
}

// AddInputHorizon deep-copies mesh and registers it as a horizon (spec §6
// addInputHorizon, §3 "input surfaces are deep-copied on addInput…").
func (m *Model) AddInputHorizon(externalID int, age float64, mesh *model.TriMesh) {
	h := mesh.Clone()
	h.Kind = model.KindHorizon()
	h.ExternalID = externalID
	h.Age = age
	h.InternalID = m.allocID()
	m.horizons = append(m.horizons, h)
}

// AddInputFault deep-copies mesh and registers it as a fault (spec §6
// addInputFault).
func (m *Model) AddInputFault(externalID int, minAge, maxAge float64, mesh *model.TriMesh) {
	f := mesh.Clone()
	f.Kind = model.KindFault()
	f.ExternalID = externalID
	f.MinAge, f.MaxAge = minAge, maxAge
	f.InternalID = m.allocID()
	m.faults = append(m.faults, f)
}

// SetSedimentSurface installs the sediment top surface.
func (m *Model) SetSedimentSurface(externalID int, age float64, mesh *model.TriMesh) {
	s := mesh.Clone()
	s.Kind = model.KindSedimentTop()
	s.ExternalID = externalID
	s.Age = age
	s.InternalID = m.allocID()
	m.sedimentSurface = s
}

// AddToSedimentSurface merges additional nodes/triangles into the
// existing sediment surface (spec §6 addToSedimentSurface).
func (m *Model) AddToSedimentSurface(mesh *model.TriMesh) error {
	if m.sedimentSurface == nil {
		return fmt.Errorf("seal: AddToSedimentSurface: %w", ErrNoSealedModel)
	}
	appendMesh(m.sedimentSurface, mesh)
	return nil
}

// SetModelBottom installs the model bottom surface.
func (m *Model) SetModelBottom(externalID int, mesh *model.TriMesh) {
	b := mesh.Clone()
	b.Kind = model.KindModelBottom()
	b.ExternalID = externalID
	b.InternalID = m.allocID()
	m.modelBottom = b
}

// AddToModelBottom merges additional geometry into the model bottom.
func (m *Model) AddToModelBottom(mesh *model.TriMesh) error {
	if m.modelBottom == nil {
		return fmt.Errorf("seal: AddToModelBottom: %w", ErrNoSealedModel)
	}
	appendMesh(m.modelBottom, mesh)
	return nil
}

func appendMesh(dst, src *model.TriMesh) {
	offset := len(dst.Nodes)
	for _, n := range src.Nodes {
		dst.Nodes = append(dst.Nodes, n)
	}
	for _, e := range src.Edges {
		e.N1 += offset
		e.N2 += offset
		dst.Edges = append(dst.Edges, e)
	}
	for _, t := range src.Triangles {
		for i := range t.E {
			t.E[i] += len(dst.Edges) - len(src.Edges)
		}
		dst.Triangles = append(dst.Triangles, t)
	}
}

// AddInputDetachment registers a detachment surface (spec §6
// addInputDetachment).
func (m *Model) AddInputDetachment(externalID int, mesh *model.TriMesh) {
	d := mesh.Clone()
	d.Kind = model.KindDetachment()
	d.ExternalID = externalID
	d.InternalID = m.allocID()
	m.detachment = d
}

// SetPaddedDetachment installs a detachment mesh that is already padded
// (spec §6 setPaddedDetachment): skips the padding step for this surface.
func (m *Model) SetPaddedDetachment(mesh *model.TriMesh) {
	d := mesh.Clone()
	d.Kind = model.KindDetachment()
	d.IsPadded = true
	d.InternalID = m.allocID()
	m.detachment = d
}

// SetAverageSpacing overrides the default resampling/padding/index
// density (spec §6 setAverageSpacing).
func (m *Model) SetAverageSpacing(v float64) { m.cfg.AverageSpacing = v }

// SetSimSealFlag sets simSealFlag, respecting the Locked latch.
func (m *Model) SetSimSealFlag(v SimSealFlag) { WithSimSealFlag(v)(&m.cfg) }

// SetMarginFraction sets the pad-box proportional expansion.
func (m *Model) SetMarginFraction(v float64) { WithMarginFraction(v)(&m.cfg) }

// PadModel runs the padding engine against an explicit box (spec §4.1,
// §6 padModel(xmin..zmax, avgSpacing)).
func (m *Model) PadModel(box pad.Box, avgSpacing float64) error {
	if avgSpacing > 0 {
		m.cfg.AverageSpacing = avgSpacing
	}
	return m.runPad(&box, nil)
}

// PadModelFraction runs the padding engine, deriving the box from the
// inputs' AABB expanded by the given fractions (spec §6
// padModel(fractionXY, fractionZ, avgSpacing)).
func (m *Model) PadModelFraction(fractionXY, fractionZ, avgSpacing float64) error {
	if avgSpacing > 0 {
		m.cfg.AverageSpacing = avgSpacing
	}
	return m.runPad(nil, &pad.FractionSpec{FractionXY: fractionXY, FractionZ: fractionZ})
}

func (m *Model) runPad(box *pad.Box, frac *pad.FractionSpec) error {
	if len(m.horizons) == 0 {
		return ErrNoHorizons
	}

	in := pad.Inputs{
		Horizons:        m.horizons,
		Faults:          m.faults,
		SedimentSurface: m.sedimentSurface,
		ModelBottom:     m.modelBottom,
		AverageSpacing:  m.cfg.AverageSpacing,
		SimSealFlag:     m.cfg.SimSealFlag.enabled(),
		Triangulator:    m.cfg.Triangulator,
		PlaneFitter:     m.cfg.PlaneFitter,
	}

	var res *pad.Result
	var err error
	if box != nil {
		res, err = pad.PadModel(in, *box)
	} else {
		res, err = pad.PadModelFraction(in, *frac)
	}
	if err != nil {
		return fmt.Errorf("seal: PadModel: %w", err)
	}
	m.padded = res
	m.cfg.AverageSpacing = res.AverageSpacing
	m.cfg.Logger.Debug("padded model", "avgSpacing", res.AverageSpacing, "horizons", len(res.Horizons), "faults", len(res.Faults))
	return nil
}

// allPaddedSurfaces returns every padded surface with a synthetic
// internal mesh id for intersection/outline bookkeeping, in the stable
// order spec §5 requires for later accessor calls.
func (m *Model) allPaddedSurfaces() []xsect.Surface {
	var out []xsect.Surface
	for i, h := range m.padded.Horizons {
		out = append(out, xsect.Surface{MeshID: m.horizons[i].InternalID, Mesh: h})
	}
	for i, f := range m.padded.Faults {
		out = append(out, xsect.Surface{MeshID: m.faults[i].InternalID, Mesh: f})
	}
	if m.padded.SedimentSurface != nil {
		out = append(out, xsect.Surface{MeshID: m.sedimentSurface.InternalID, Mesh: m.padded.SedimentSurface})
	}
	if m.padded.ModelBottom != nil {
		out = append(out, xsect.Surface{MeshID: m.modelBottom.InternalID, Mesh: m.padded.ModelBottom})
	}
	for side, wall := range m.padded.Walls {
		out = append(out, xsect.Surface{MeshID: -int(side) - 900000000, Mesh: wall})
	}
	return out
}

func (m *Model) tolerances() xsect.Tolerances {
	b := m.padded.Box
	xSpan := b.Max.X - b.Min.X
	ySpan := b.Max.Y - b.Min.Y
	zSpan := b.Max.Z - b.Min.Z
	return xsect.Tolerances{
		GrazeDistance:  (xSpan + ySpan + zSpan) / 300000,
		AverageSpacing: m.cfg.AverageSpacing,
		Span:           xSpan + ySpan + zSpan,
	}
}

// CalcFaultHorizonIntersections returns raw fault-horizon polylines (spec
// §6 calcFaultHorizonIntersections), without mutating sealed state.
func (m *Model) CalcFaultHorizonIntersections() ([]*model.IntersectionLine, error) {
	if m.padded == nil {
		return nil, ErrNoPaddedModel
	}
	surfaces := m.allPaddedSurfaces()
	tol := m.tolerances()
	engine := xsect.NewEngine(m.cfg.IndexFactory, m.cfg.TriangleIntersector, tol, m.padded.Box.Min)

	enlarge := tol.Span / 300
	for _, s := range surfaces {
		engine.IndexSurface(s, enlarge)
	}

	isFault := func(id int) bool {
		for _, f := range m.faults {
			if f.InternalID == id {
				return true
			}
		}
		return false
	}
	isHorizon := func(id int) bool {
		for _, h := range m.horizons {
			if h.InternalID == id {
				return true
			}
		}
		return false
	}

	var segs []model.IntersectionSegment
	for i := 0; i < len(surfaces); i++ {
		for j := i + 1; j < len(surfaces); j++ {
			if !((isFault(surfaces[i].MeshID) && isHorizon(surfaces[j].MeshID)) ||
				(isFault(surfaces[j].MeshID) && isHorizon(surfaces[i].MeshID))) {
				continue
			}
			segs = append(segs, engine.IntersectPair(surfaces[i], surfaces[j], enlarge)...)
		}
	}
	segs = engine.Dedup(segs)
	lines := engine.Chain(segs)
	lines = engine.ConnectCloseLines(lines)
	return lines, nil
}

// SealPaddedModel computes all pairwise intersection polylines, reconciles
// them, constructs sealed horizon outlines and crops horizons, embeds
// polylines on faults and boundaries, and clips those (spec §4.2-§4.6,
// §6 sealPaddedModel). Returns ErrNothingToSeal (not a hard error) when no
// intersections exist, matching spec §8 scenario 3.
func (m *Model) SealPaddedModel() error {
	if m.padded == nil {
		return ErrNoPaddedModel
	}

	surfaces := m.allPaddedSurfaces()
	tol := m.tolerances()
	engine := xsect.NewEngine(m.cfg.IndexFactory, m.cfg.TriangleIntersector, tol, m.padded.Box.Min)
	enlarge := tol.Span / 300
	for _, s := range surfaces {
		engine.IndexSurface(s, enlarge)
	}

	var segs []model.IntersectionSegment
	for i := 0; i < len(surfaces); i++ {
		for j := i + 1; j < len(surfaces); j++ {
			segs = append(segs, engine.IntersectPair(surfaces[i], surfaces[j], enlarge)...)
		}
	}
	segs = engine.Dedup(segs)
	lines := engine.Chain(segs)
	lines = engine.ConnectCloseLines(lines)

	for i, l := range lines {
		l.InternalID = i
	}
	m.rawLines = lines

	if len(lines) == 0 {
		m.cfg.Logger.Debug("sealPaddedModel: no intersections found")
		m.sealedHorizons = m.padded.Horizons
		return ErrNothingToSeal
	}

	isFault := func(id int) bool {
		for _, f := range m.faults {
			if f.InternalID == id {
				return true
			}
		}
		return false
	}
	splice.FindSplicePartners(lines, isFault, (tol.Span)/200000)

	for _, l := range lines {
		splice.Resample(l, m.cfg.AverageSpacing)
	}

	if err := m.buildSealedHorizons(surfaces, lines, tol); err != nil {
		return fmt.Errorf("seal: SealPaddedModel: %w", err)
	}
	if err := m.buildSealedFaults(lines); err != nil {
		return fmt.Errorf("seal: SealPaddedModel: %w", err)
	}

	return nil
}

func (m *Model) buildSealedHorizons(surfaces []xsect.Surface, lines []*model.IntersectionLine, tol xsect.Tolerances) error {
	nodeIdx := index.NewNodeIndex(m.cfg.AverageSpacing)
	for _, s := range surfaces {
		for _, n := range s.Mesh.Nodes {
			if !n.Deleted {
				nodeIdx.Add(n.Pos)
			}
		}
	}

	xyTiny := tol.Span / 20000

	for hi, horizon := range m.horizons {
		var inputs []outline.PolylineInput
		for _, l := range lines {
			if l.SharesSurface(horizon.InternalID) {
				inputs = append(inputs, outline.PolylineInput{LineID: l.InternalID, Points: l.Points})
			}
		}
		if len(inputs) == 0 {
			m.sealedHorizons = append(m.sealedHorizons, m.padded.Horizons[hi])
			continue
		}

		out, err := outline.BuildOutline(inputs, horizon.Centroid, xyTiny, m.cfg.AverageSpacing/2, nodeIdx)
		if err != nil {
			if err == outline.ErrNoPolygonContainsCentroid {
				return fmt.Errorf("%w: horizon %d: %w", ErrCentroidUnresolved, horizon.ExternalID, err)
			}
			m.cfg.Logger.Warn("outline build failed", "horizon", horizon.ExternalID, "err", err)
			continue
		}

		segs := outline.SplitByLineID(out, nil, nil)
		outline.ResampleSegments(segs, m.cfg.AverageSpacing)
		m.sealedInts[horizon.InternalID] = segs

		sealed, err := embed.EmbedHorizon(m.padded.Horizons[hi], out.Points, m.cfg.Triangulator)
		if err != nil {
			return fmt.Errorf("embed horizon %d: %w", horizon.ExternalID, err)
		}
		sealed.SealedBorder = outline.BuildSealedBorder(horizon.InternalID, segs, func(lineID int) int { return lineID })
		m.sealedHorizons = append(m.sealedHorizons, sealed)

		outline.MarkEmbedFlags(lines, out.Points, m.cfg.AverageSpacing)
	}
	return nil
}

func (m *Model) buildSealedFaults(lines []*model.IntersectionLine) error {
	for fi, fault := range m.faults {
		var faultConstraints, horizonConstraints []embed.Constraint
		for _, l := range lines {
			if !l.SharesSurface(fault.InternalID) {
				continue
			}
			other := l.OtherSurface(fault.InternalID)
			c := embed.Constraint{LineIndex: l.InternalID, Points: l.Points}
			if m.isFaultID(other) {
				faultConstraints = append(faultConstraints, c)
			} else {
				horizonConstraints = append(horizonConstraints, c)
			}
		}

		ageOf := func(lineIndex int) float64 {
			for _, h := range m.horizons {
				if seg, ok := m.sealedInts[h.InternalID]; ok {
					for _, s := range seg {
						if s.LineID == lineIndex {
							return h.Age
						}
					}
				}
			}
			return 0
		}

		constraints := embed.BuildFaultConstraints(m.padded.Faults[fi], faultConstraints, horizonConstraints, ageOf)

		res, err := embed.EmbedFault(m.padded.Faults[fi], constraints, m.cfg.Triangulator, m.cfg.SimOutputFlag)
		if err != nil {
			return fmt.Errorf("embed fault %d: %w", fault.ExternalID, err)
		}
		res.Mesh.SealedToSides = res.SealedToSides
		m.sealedFaults = append(m.sealedFaults, res.Mesh)
	}
	return nil
}

func (m *Model) isFaultID(id int) bool {
	for _, f := range m.faults {
		if f.InternalID == id {
			return true
		}
	}
	return false
}

// SealFaultsToDetachment seals every fault's lowest constraint edge to the
// detachment polyline (spec §4.6 prelude, §6 sealFaultsToDetachment, §8
// scenario 5).
func (m *Model) SealFaultsToDetachment() error {
	if m.detachment == nil {
		return fmt.Errorf("seal: SealFaultsToDetachment: no detachment surface registered")
	}
	if m.padded == nil {
		return ErrNoPaddedModel
	}

	for fi, fault := range m.faults {
		if len(fault.Detachment) == 0 {
			continue
		}
		c := []embed.Constraint{{LineIndex: -1, Points: fault.Detachment}}
		res, err := embed.EmbedFault(m.padded.Faults[fi], c, m.cfg.Triangulator, false)
		if err != nil {
			return fmt.Errorf("seal: SealFaultsToDetachment: fault %d: %w", fault.ExternalID, err)
		}
		res.Mesh.DetachmentIntersects = append(res.Mesh.DetachmentIntersects, fault.DetachID)
		m.sealedFaults = append(m.sealedFaults, res.Mesh)
	}

	m.sealedDetach = m.detachment.Clone()
	m.sealedDetach.IsSealed = true
	return nil
}

// GetInputHorizons returns the registered input horizons in insertion
// order (spec §5 ordering guarantee).
func (m *Model) GetInputHorizons() []*model.TriMesh { return m.horizons }

// GetInputFaults returns the registered input faults in insertion order.
func (m *Model) GetInputFaults() []*model.TriMesh { return m.faults }

// GetPaddedHorizons returns the padded horizons, or nil if PadModel has
// not run.
func (m *Model) GetPaddedHorizons() []*model.TriMesh {
	if m.padded == nil {
		return nil
	}
	return m.padded.Horizons
}

// GetPaddedFaults returns the padded faults, or nil if PadModel has not run.
func (m *Model) GetPaddedFaults() []*model.TriMesh {
	if m.padded == nil {
		return nil
	}
	return m.padded.Faults
}

// GetPaddedTopAndBottom returns the padded sediment surface and model
// bottom (either may be nil).
func (m *Model) GetPaddedTopAndBottom() (top, bottom *model.TriMesh) {
	if m.padded == nil {
		return nil, nil
	}
	return m.padded.SedimentSurface, m.padded.ModelBottom
}

// GetSealedHorizons returns the sealed horizons (spec §5 ordering
// guarantee: same order as GetInputHorizons).
func (m *Model) GetSealedHorizons() []*model.TriMesh { return m.sealedHorizons }

// GetSealedFaults returns the sealed faults.
func (m *Model) GetSealedFaults() []*model.TriMesh { return m.sealedFaults }

// GetSealedTopAndBottom returns the sealed sediment surface and model
// bottom, only populated when SimOutputFlag is set (spec §6 config table).
func (m *Model) GetSealedTopAndBottom() (top, bottom *model.TriMesh) {
	if !m.cfg.SimOutputFlag {
		return nil, nil
	}
	return m.sealedTop, m.sealedBottom
}

// GetSealedDetachment returns the sealed detachment mesh, or nil.
func (m *Model) GetSealedDetachment() *model.TriMesh { return m.sealedDetach }

// GetShallowBoundaryCopies returns shallow references to the sealed
// boundary walls (spec §6 getShallowBoundaryCopies — "shallow" because
// these are aliases the caller must not double-free in the original's
// memory model; in Go this is simply the stored pointer).
func (m *Model) GetShallowBoundaryCopies() map[model.Side]*model.TriMesh {
	return m.sealedBoundary
}

// GetRawIntersectionLines returns the unreconciled intersection lines
// computed by SealPaddedModel.
func (m *Model) GetRawIntersectionLines() []*model.IntersectionLine { return m.rawLines }

// GetHorizonIntersectionLines returns every raw intersection line
// touching at least one horizon.
func (m *Model) GetHorizonIntersectionLines() []*model.IntersectionLine {
	isHorizon := func(id int) bool {
		for _, h := range m.horizons {
			if h.InternalID == id {
				return true
			}
		}
		return false
	}
	var out []*model.IntersectionLine
	for _, l := range m.rawLines {
		if isHorizon(l.Surf1) || isHorizon(l.Surf2) {
			out = append(out, l)
		}
	}
	return out
}

// GetFaultIntersectionLines returns every raw intersection line touching
// at least one fault.
func (m *Model) GetFaultIntersectionLines() []*model.IntersectionLine {
	var out []*model.IntersectionLine
	for _, l := range m.rawLines {
		if m.isFaultID(l.Surf1) || m.isFaultID(l.Surf2) {
			out = append(out, l)
		}
	}
	return out
}

// GetTopAndBottomIntersectionLines returns raw intersection lines
// touching the sediment surface or model bottom.
func (m *Model) GetTopAndBottomIntersectionLines() []*model.IntersectionLine {
	var topID, botID = -1, -1
	if m.sedimentSurface != nil {
		topID = m.sedimentSurface.InternalID
	}
	if m.modelBottom != nil {
		botID = m.modelBottom.InternalID
	}
	var out []*model.IntersectionLine
	for _, l := range m.rawLines {
		if l.Surf1 == topID || l.Surf2 == topID || l.Surf1 == botID || l.Surf2 == botID {
			out = append(out, l)
		}
	}
	return out
}

// CreateTetgenInput walks every sealed mesh, unifies coincident nodes, and
// emits the node and facet arrays a tetrahedral mesher consumes (spec §4.7,
// §6 createTetgenInput).
func (m *Model) CreateTetgenInput() (*tetgen.Output, error) {
	if len(m.sealedHorizons) == 0 && len(m.sealedFaults) == 0 {
		return nil, ErrNoSealedModel
	}

	var surfaces []tetgen.Surface
	ordinal := 0
	for _, h := range m.sealedHorizons {
		surfaces = append(surfaces, tetgen.Surface{Mesh: h, Ordinal: ordinal})
		ordinal++
	}
	for _, f := range m.sealedFaults {
		surfaces = append(surfaces, tetgen.Surface{Mesh: f, Ordinal: ordinal})
		ordinal++
	}
	if m.sealedTop != nil {
		surfaces = append(surfaces, tetgen.Surface{Mesh: m.sealedTop, Ordinal: ordinal})
		ordinal++
	}
	if m.sealedBottom != nil {
		surfaces = append(surfaces, tetgen.Surface{Mesh: m.sealedBottom, Ordinal: ordinal})
		ordinal++
	}
	for _, w := range m.sealedBoundary {
		surfaces = append(surfaces, tetgen.Surface{Mesh: w, Ordinal: ordinal})
		ordinal++
	}

	tol := m.tolerances()
	modelTiny := tol.Span / 200000
	out := tetgen.Export(surfaces, m.cfg.IndexFactory, m.cfg.AverageSpacing, modelTiny)
	return out, nil
}

// WriteTetgenSmeshFile runs CreateTetgenInput and writes the result in
// tetgen's .smesh text format to path (spec §6 writeTetgenSmeshFile).
func (m *Model) WriteTetgenSmeshFile(path string) error {
	out, err := m.CreateTetgenInput()
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("seal: WriteTetgenSmeshFile: %w", err)
	}
	defer f.Close()
	return tetgen.WriteSmeshFile(f, out)
}

// WriteDebugPNGs rasterizes every sealed surface to a PNG under dir (spec
// §6 debug dumps): one file per sealed horizon, fault, top/bottom and
// boundary wall, named by its role and ordinal. The first surface that
// fails to flatten or write stops the dump, and its error is returned.
func (m *Model) WriteDebugPNGs(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("seal: WriteDebugPNGs: %w", err)
	}

	dump := func(name string, surf *model.TriMesh) error {
		f, err := os.Create(filepath.Join(dir, name+".png"))
		if err != nil {
			return fmt.Errorf("seal: WriteDebugPNGs: %w", err)
		}
		defer f.Close()
		return debugdump.WriteSurfacePNG(f, surf, rasterize.WithFillTriangles(true), rasterize.WithEdgeLabels(false))
	}

	for i, h := range m.sealedHorizons {
		if err := dump(fmt.Sprintf("horizon-%02d", i), h); err != nil {
			return err
		}
	}
	for i, fl := range m.sealedFaults {
		if err := dump(fmt.Sprintf("fault-%02d", i), fl); err != nil {
			return err
		}
	}
	if m.sealedTop != nil {
		if err := dump("top", m.sealedTop); err != nil {
			return err
		}
	}
	if m.sealedBottom != nil {
		if err := dump("bottom", m.sealedBottom); err != nil {
			return err
		}
	}
	for side, w := range m.sealedBoundary {
		if err := dump(fmt.Sprintf("boundary-%s", side), w); err != nil {
			return err
		}
	}
	return nil
}
