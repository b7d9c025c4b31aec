package seal

import (
	"errors"
	"log/slog"

	"github.com/glennpinkerton/sealedmodel/moller"
	"github.com/glennpinkerton/sealedmodel/planefit"
	"github.com/glennpinkerton/sealedmodel/seal/collab"
	"github.com/glennpinkerton/sealedmodel/seal/index"
	"github.com/glennpinkerton/sealedmodel/seal/triangulate"
)

// SimSealFlag is the original's tri-state simSealFlag (spec §6, SPEC_FULL
// §4 "LOCK_SEAL_FLAG"): Off/On behave as a plain bool, but Locked is
// sticky — once set, SetSimSealFlag can no longer downgrade it to Off.
type SimSealFlag int

const (
	SealOff SimSealFlag = iota
	SealOn
	SealLocked
)

func (f SimSealFlag) enabled() bool { return f == SealOn || f == SealLocked }

// Config holds the tunables spec §6's configuration table names, plus the
// pluggable collaborators spec §1 names as out-of-scope dependencies.
type Config struct {
	AverageSpacing float64
	SimSealFlag    SimSealFlag
	SimOutputFlag  bool
	MarginFraction float64

	Logger *slog.Logger

	Triangulator        collab.Triangulator
	PlaneFitter         collab.PlaneFitter
	TriangleIntersector collab.TriangleIntersector
	IndexFactory        collab.TriangleIndexFactory
}

// Option configures a Model at construction time, following the teacher's
// functional-options pattern (see cdt.BuildOptions/mesh.Option).
type Option func(*Config)

// WithAverageSpacing sets the default density for resampling, padding and
// index cells.
func WithAverageSpacing(v float64) Option {
	return func(c *Config) { c.AverageSpacing = v }
}

// WithMarginFraction sets the pad-box proportional expansion; values above
// 0.05 imply SimOutputFlag (spec §6 configuration table).
func WithMarginFraction(v float64) Option {
	return func(c *Config) {
		c.MarginFraction = v
		if v > 0.05 {
			c.SimOutputFlag = true
		}
	}
}

// WithSimSealFlag sets simSealFlag, honoring the Locked latch: once
// locked, a later WithSimSealFlag(SealOff) is ignored (SPEC_FULL §4,
// "LOCK_SEAL_FLAG").
func WithSimSealFlag(v SimSealFlag) Option {
	return func(c *Config) {
		if c.SimSealFlag == SealLocked {
			return
		}
		c.SimSealFlag = v
	}
}

// WithLogger overrides the default logger (spec SPEC_FULL §1 Logging).
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) { c.Logger = l }
}

// WithTriangulator overrides the triangulation collaborator.
func WithTriangulator(t collab.Triangulator) Option {
	return func(c *Config) { c.Triangulator = t }
}

// WithPlaneFitter overrides the plane-fit collaborator.
func WithPlaneFitter(p collab.PlaneFitter) Option {
	return func(c *Config) { c.PlaneFitter = p }
}

// WithTriangleIntersector overrides the Möller collaborator.
func WithTriangleIntersector(t collab.TriangleIntersector) Option {
	return func(c *Config) { c.TriangleIntersector = t }
}

// WithIndexFactory overrides the 3-D spatial index backend (e.g. to select
// index.NewRTreeTriangleIndex over the default bucket grid).
func WithIndexFactory(f collab.TriangleIndexFactory) Option {
	return func(c *Config) { c.IndexFactory = f }
}

func defaultConfig() Config {
	return Config{
		AverageSpacing:      0,
		SimSealFlag:         SealOff,
		MarginFraction:      0,
		Logger:              slog.Default(),
		Triangulator:        triangulate.New(),
		PlaneFitter:         planefit.Adapter{},
		TriangleIntersector: moller.Adapter{},
		IndexFactory:        index.NewGridTriangleIndex,
	}
}

// Sentinel errors (spec §7's error taxonomy, translated to Go idiom
// instead of the original's -1/0 return codes).
var (
	ErrNoHorizons          = errors.New("seal: no input horizons")
	ErrNoSealedModel       = errors.New("seal: sealPaddedModel has not been run")
	ErrNoPaddedModel       = errors.New("seal: padModel has not been run")
	ErrNothingToSeal       = errors.New("seal: no intersections found, nothing to seal")
	ErrConsistency         = errors.New("seal: internal consistency check failed")
	ErrCentroidUnresolved  = errors.New("seal: centroid fallback search exhausted without finding an interior point")
)
