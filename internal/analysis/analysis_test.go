package analysis

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/alexiusacademia/beamcalc/internal/beam"
	"github.com/alexiusacademia/beamcalc/internal/material"
	"github.com/alexiusacademia/beamcalc/internal/section"
)

func defaultInput() Input {
	return Input{
		Name:    "midspan point",
		Beam:    beam.Configuration{Kind: beam.SimpleBeam, Length: 1000, LeftSupport: 0, RightSupport: 1000},
		Load:    beam.Load{Kind: beam.Point, Magnitude: 1000, Start: 500},
		Section: section.Rectangle{Width: 100, Height: 200},
	}
}

func TestRun_DefaultCalculatorCase(t *testing.T) {
	rep, err := Run(defaultInput())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if rep.Material.Name != material.Default {
		t.Fatalf("material = %q, want %q", rep.Material.Name, material.Default)
	}
	if rep.Result.MaxShearForce != 500 || rep.Result.MaxBendingMoment != 250000 {
		t.Fatalf("peaks = %v/%v, want 500/250000", rep.Result.MaxShearForce, rep.Result.MaxBendingMoment)
	}
	if rep.Result.MaxNormalStress.Value != 0.38 {
		t.Fatalf("normal stress = %v, want 0.38", rep.Result.MaxNormalStress)
	}
	if rep.Result.SafetyFactor.Value != 666.67 {
		t.Fatalf("safety factor = %v, want 666.67", rep.Result.SafetyFactor)
	}
}

func TestRun_RejectsInvalidConfiguration(t *testing.T) {
	in := defaultInput()
	in.Beam.RightSupport = 0
	if _, err := Run(in); !errors.Is(err, beam.ErrInvalidConfiguration) {
		t.Fatalf("err = %v, want ErrInvalidConfiguration", err)
	}

	in = defaultInput()
	in.Load = beam.Load{Kind: beam.Uniform, Magnitude: 100, Start: 300, End: 300}
	if _, err := Run(in); !errors.Is(err, beam.ErrInvalidLoadGeometry) {
		t.Fatalf("err = %v, want ErrInvalidLoadGeometry", err)
	}
}

func TestRun_CustomMaterial(t *testing.T) {
	in := defaultInput()
	in.Material = "Custom"
	if _, err := Run(in); err == nil {
		t.Fatal("Run: expected error without custom properties")
	}

	in.CustomMaterial = &material.Material{YieldStrength: 0.19}
	rep, err := Run(in)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if rep.Material.Name != material.Custom {
		t.Fatalf("material name = %q, want Custom", rep.Material.Name)
	}
	// 0.19 / 0.375
	if rep.Result.SafetyFactor.Value != 0.51 || !rep.Result.Yields() {
		t.Fatalf("safety factor = %v, want 0.51 and yielding", rep.Result.SafetyFactor)
	}
}

func TestRun_RejectsNegativeSection(t *testing.T) {
	for _, rect := range []section.Rectangle{
		{Width: -100, Height: 200},
		{Width: 100, Height: math.NaN()},
	} {
		in := defaultInput()
		in.Section = rect
		rep, err := Run(in)
		if !errors.Is(err, beam.ErrInvalidConfiguration) {
			t.Fatalf("Run(%+v) = %v, want ErrInvalidConfiguration", rect, err)
		}
		if rep != nil {
			t.Fatalf("Run(%+v) returned a report: %+v", rect, rep.Result)
		}
	}
}

func TestRun_ZeroSectionIsReportedNotRejected(t *testing.T) {
	in := defaultInput()
	in.Section = section.Rectangle{}
	rep, err := Run(in)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !rep.Result.ZeroSection || rep.Result.SafetyFactor.Defined {
		t.Fatalf("result = %+v, want ZeroSection and undefined safety factor", rep.Result)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "case.json")
	content := []byte(`{
  "name": "cantilever udl",
  "beam": {"kind": "cantilever", "length": 2000},
  "load": {"kind": "uniform", "magnitude": 4000, "start": 500, "end": 1500},
  "section": {"width": 80, "height": 160},
  "material": "ASTM A992 Structural Steel"
}`)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write case: %v", err)
	}

	in, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}
	rep, err := Run(*in)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	// resultant 4000 N at 1000 mm from the fixed end
	if rep.Result.MaxBendingMoment != 4e6 || rep.Result.MaxShearForce != 4000 {
		t.Fatalf("peaks = %v/%v, want 4000/4e6", rep.Result.MaxShearForce, rep.Result.MaxBendingMoment)
	}
	if rep.Material.YieldStrength != 345 {
		t.Fatalf("fy = %v, want 345", rep.Material.YieldStrength)
	}
}

func TestLoadFromFile_BadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte(`{"beam": {"kind": "fixed"}}`), 0o600); err != nil {
		t.Fatalf("write case: %v", err)
	}
	if _, err := LoadFromFile(path); err == nil {
		t.Fatal("LoadFromFile: expected error for unknown beam kind")
	}
}
