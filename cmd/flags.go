package cmd

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/alexiusacademia/beamcalc/internal/analysis"
	"github.com/alexiusacademia/beamcalc/internal/beam"
	"github.com/alexiusacademia/beamcalc/internal/loads"
	"github.com/alexiusacademia/beamcalc/internal/material"
	"github.com/alexiusacademia/beamcalc/internal/section"
)

// caseFlags collects one beam case from the command line
type caseFlags struct {
	name string

	// Beam
	beamKind string
	length   float64
	left     float64
	right    float64

	// Load
	loadKind  string
	magnitude float64
	start     float64
	end       float64
	dead      float64
	live      float64

	// Section
	width  float64
	height float64

	// Material
	material string
	custom   material.Material
}

func (f *caseFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.name, "name", "", "Case name used in reports and history")

	fs.StringVar(&f.beamKind, "beam", "simple", "Beam type: simple or cantilever")
	fs.Float64VarP(&f.length, "length", "L", 0, "Beam length (mm) [required]")
	fs.Float64Var(&f.left, "left", 0, "Left support position (mm), simple beams")
	fs.Float64Var(&f.right, "right", 0, "Right support position (mm), simple beams (default: beam length)")

	fs.StringVar(&f.loadKind, "load", "point", "Load type: point or uniform")
	fs.Float64VarP(&f.magnitude, "magnitude", "P", 0, "Load magnitude (N), total resultant for uniform loads")
	fs.Float64Var(&f.start, "start", 0, "Load position or start of a uniform load (mm)")
	fs.Float64Var(&f.end, "end", 0, "End of a uniform load (mm)")
	fs.Float64Var(&f.dead, "dead", 0, "Dead load component (N); factored with --live instead of --magnitude")
	fs.Float64Var(&f.live, "live", 0, "Live load component (N)")

	fs.Float64VarP(&f.width, "width", "b", 0, "Section width (mm)")
	fs.Float64Var(&f.height, "height", 0, "Section height (mm)")

	fs.StringVarP(&f.material, "material", "m", "", "Material name (see 'beamcalc materials')")
	fs.Float64Var(&f.custom.YieldStrength, "yield", 0, "Custom material yield strength fy (MPa)")
	fs.Float64Var(&f.custom.ElasticModulus, "modulus", 0, "Custom material elastic modulus E (GPa)")
	fs.Float64Var(&f.custom.Density, "density", 0, "Custom material density (kg/m³)")
	fs.Float64Var(&f.custom.PoissonsRatio, "poisson", 0, "Custom material Poisson's ratio")
	fs.Float64Var(&f.custom.ThermalExpansion, "thermal", 0, "Custom material thermal expansion (µm/m·K)")
}

// components returns the dead and live parts when either was given
func (f *caseFlags) components() (loads.Components, bool) {
	p := loads.Components{Dead: f.dead, Live: f.live}
	return p, !p.IsZero()
}

// input builds the case. Setting --yield without --material selects the
// Custom entry.
func (f *caseFlags) input(fs *pflag.FlagSet) (analysis.Input, error) {
	kind, err := beam.ParseKind(f.beamKind)
	if err != nil {
		return analysis.Input{}, err
	}
	loadKind, err := beam.ParseLoadKind(f.loadKind)
	if err != nil {
		return analysis.Input{}, err
	}
	if !fs.Changed("length") {
		return analysis.Input{}, fmt.Errorf("required flag \"length\" not set")
	}

	in := analysis.Input{
		Name: f.name,
		Beam: beam.Configuration{
			Kind:   kind,
			Length: f.length,
		},
		Load: beam.Load{
			Kind:      loadKind,
			Magnitude: f.magnitude,
			Start:     f.start,
			End:       f.end,
		},
		Section:  section.Rectangle{Width: f.width, Height: f.height},
		Material: f.material,
	}

	if kind == beam.SimpleBeam {
		in.Beam.LeftSupport = f.left
		in.Beam.RightSupport = f.right
		if !fs.Changed("right") {
			in.Beam.RightSupport = f.length
		}
	}

	if p, ok := f.components(); ok {
		if fs.Changed("magnitude") {
			return analysis.Input{}, fmt.Errorf("--magnitude cannot be combined with --dead/--live")
		}
		in.Load.Magnitude, _ = loads.Governing(p, loads.Gravity)
	}

	if fs.Changed("yield") && in.Material == "" {
		in.Material = material.Custom
	}
	if in.Material == "" {
		in.Material = cfg.Material
	}
	if m, err := material.Lookup(in.Material); err == nil && m.IsCustom() {
		custom := f.custom
		in.CustomMaterial = &custom
	}

	return in, nil
}
