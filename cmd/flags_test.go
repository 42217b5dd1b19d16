package cmd

import (
	"testing"

	"github.com/spf13/pflag"

	"github.com/alexiusacademia/beamcalc/internal/beam"
	"github.com/alexiusacademia/beamcalc/internal/material"
)

func parseCase(t *testing.T, args ...string) (*caseFlags, *pflag.FlagSet) {
	t.Helper()
	var f caseFlags
	fs := pflag.NewFlagSet("analyze", pflag.ContinueOnError)
	f.register(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return &f, fs
}

func TestCaseFlags_SimpleBeamDefaults(t *testing.T) {
	cfg.Material = material.Default
	f, fs := parseCase(t, "--length", "3000", "-P", "1000", "--start", "1500", "-b", "100", "--height", "200")

	in, err := f.input(fs)
	if err != nil {
		t.Fatalf("input: %v", err)
	}
	if in.Beam.Kind != beam.SimpleBeam || in.Beam.LeftSupport != 0 || in.Beam.RightSupport != 3000 {
		t.Fatalf("beam = %+v, want supports at both ends", in.Beam)
	}
	if in.Material != material.Default || in.CustomMaterial != nil {
		t.Fatalf("material = %q, custom = %v", in.Material, in.CustomMaterial)
	}
}

func TestCaseFlags_Cantilever(t *testing.T) {
	f, fs := parseCase(t, "--beam", "cantilever", "--length", "2000", "--right", "500",
		"--load", "uniform", "-P", "4000", "--end", "2000")

	in, err := f.input(fs)
	if err != nil {
		t.Fatalf("input: %v", err)
	}
	if in.Beam.Kind != beam.Cantilever || in.Beam.RightSupport != 0 {
		t.Fatalf("beam = %+v, cantilever should ignore supports", in.Beam)
	}
	if in.Load.Kind != beam.Uniform || in.Load.End != 2000 {
		t.Fatalf("load = %+v", in.Load)
	}
}

func TestCaseFlags_DeadAndLive(t *testing.T) {
	f, fs := parseCase(t, "--length", "3000", "--dead", "1000", "--live", "500", "--start", "1500")

	in, err := f.input(fs)
	if err != nil {
		t.Fatalf("input: %v", err)
	}
	// 1.2D + 1.6L governs over 1.4D
	if in.Load.Magnitude != 2000 {
		t.Fatalf("magnitude = %.2f, want 2000", in.Load.Magnitude)
	}

	f, fs = parseCase(t, "--length", "3000", "--dead", "1000", "-P", "5")
	if _, err := f.input(fs); err == nil {
		t.Fatal("expected error combining --magnitude with --dead")
	}
}

func TestCaseFlags_CustomMaterial(t *testing.T) {
	f, fs := parseCase(t, "--length", "1000", "--yield", "180", "--modulus", "70")

	in, err := f.input(fs)
	if err != nil {
		t.Fatalf("input: %v", err)
	}
	if in.Material != material.Custom || in.CustomMaterial == nil {
		t.Fatalf("material = %q, custom = %v", in.Material, in.CustomMaterial)
	}
	if in.CustomMaterial.YieldStrength != 180 || in.CustomMaterial.ElasticModulus != 70 {
		t.Fatalf("custom = %+v", *in.CustomMaterial)
	}
}

func TestCaseFlags_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"missing length", []string{"-P", "10"}},
		{"unknown beam", []string{"--length", "10", "--beam", "arch"}},
		{"unknown load", []string{"--length", "10", "--load", "moment"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, fs := parseCase(t, tt.args...)
			if _, err := f.input(fs); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
