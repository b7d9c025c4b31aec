// Command sealmodel runs the sealing pipeline over a small JSON scene
// description and writes a tetgen .smesh file.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	seal "github.com/glennpinkerton/sealedmodel"
	"github.com/glennpinkerton/sealedmodel/seal/model"
)

// scene is the on-disk JSON shape a caller supplies: a list of horizons
// and faults, each a flat triangle soup (parallel to how mesh.Load reads
// a 2-D mesh dump), plus optional padding/sealing knobs.
type scene struct {
	AverageSpacing float64       `json:"average_spacing"`
	MarginFraction float64       `json:"margin_fraction"`
	Horizons       []sceneMesh   `json:"horizons"`
	Faults         []sceneMesh   `json:"faults"`
	Detachment     *sceneMesh    `json:"detachment,omitempty"`
}

type sceneMesh struct {
	ExternalID int         `json:"external_id"`
	Age        float64     `json:"age,omitempty"`
	MinAge     float64     `json:"min_age,omitempty"`
	MaxAge     float64     `json:"max_age,omitempty"`
	Points     [][3]float64 `json:"points"`
	Triangles  [][3]int     `json:"triangles"`
}

func (s sceneMesh) toTriMesh(kind model.SurfaceKind) *model.TriMesh {
	m := model.NewTriMesh(kind)
	for _, p := range s.Points {
		m.AddNode(model.Point3{X: p[0], Y: p[1], Z: p[2]})
	}
	m.InstallTriangles(s.Triangles)
	return m
}

func main() {
	var (
		sceneFile = flag.String("scene", "", "Path to scene JSON file")
		output    = flag.String("output", "sealed.smesh", "Output .smesh file path")
		debugPNG  = flag.String("debug-png", "", "Directory to write per-surface debug PNGs to (optional)")
	)
	flag.Parse()

	if *sceneFile == "" {
		fmt.Fprintln(os.Stderr, "Error: --scene flag is required")
		flag.PrintDefaults()
		os.Exit(1)
	}

	if err := run(*sceneFile, *output, *debugPNG); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(sceneFile, output, debugPNGDir string) error {
	fmt.Printf("Loading scene from %s...\n", sceneFile)
	raw, err := os.ReadFile(sceneFile)
	if err != nil {
		return fmt.Errorf("read scene: %w", err)
	}

	var sc scene
	if err := json.Unmarshal(raw, &sc); err != nil {
		return fmt.Errorf("parse scene: %w", err)
	}

	var opts []seal.Option
	if sc.AverageSpacing > 0 {
		opts = append(opts, seal.WithAverageSpacing(sc.AverageSpacing))
	}
	m := seal.New(opts...)

	for _, h := range sc.Horizons {
		m.AddInputHorizon(h.ExternalID, h.Age, h.toTriMesh(model.KindHorizon()))
	}
	for _, f := range sc.Faults {
		m.AddInputFault(f.ExternalID, f.MinAge, f.MaxAge, f.toTriMesh(model.KindFault()))
	}
	if sc.Detachment != nil {
		m.AddInputDetachment(sc.Detachment.ExternalID, sc.Detachment.toTriMesh(model.KindDetachment()))
	}

	if sc.MarginFraction > 0 {
		m.SetMarginFraction(sc.MarginFraction)
	}

	fmt.Println("Padding model...")
	fractionXY, fractionZ := 0.1, 0.1
	if err := m.PadModelFraction(fractionXY, fractionZ, sc.AverageSpacing); err != nil {
		return fmt.Errorf("pad model: %w", err)
	}

	fmt.Println("Sealing padded model...")
	if err := m.SealPaddedModel(); err != nil {
		if err == seal.ErrNothingToSeal {
			fmt.Println("no intersections found; sealed model equals padded model")
		} else {
			return fmt.Errorf("seal model: %w", err)
		}
	}

	if sc.Detachment != nil {
		fmt.Println("Sealing faults to detachment...")
		if err := m.SealFaultsToDetachment(); err != nil {
			return fmt.Errorf("seal to detachment: %w", err)
		}
	}

	report, err := m.AnalyzeSealedModel()
	if err != nil {
		return fmt.Errorf("analyze sealed model: %w", err)
	}
	fmt.Print(report.String())

	fmt.Printf("Writing tetgen input to %s...\n", output)
	if err := m.WriteTetgenSmeshFile(output); err != nil {
		return fmt.Errorf("write smesh: %w", err)
	}

	if debugPNGDir != "" {
		fmt.Printf("Writing debug PNGs to %s...\n", debugPNGDir)
		if err := m.WriteDebugPNGs(debugPNGDir); err != nil {
			return fmt.Errorf("write debug pngs: %w", err)
		}
	}

	fmt.Println("Done.")
	return nil
}
