package analysis

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/alexiusacademia/beamcalc/internal/beam"
	"github.com/alexiusacademia/beamcalc/internal/material"
	"github.com/alexiusacademia/beamcalc/internal/section"
)

// Input is a complete beam check: geometry, loading, cross-section and
// material. It doubles as the JSON case-file format.
type Input struct {
	Name        string             `json:"name,omitempty"`
	Description string             `json:"description,omitempty"`
	Beam        beam.Configuration `json:"beam"`
	Load        beam.Load          `json:"load"`
	Section     section.Rectangle  `json:"section"`
	Material    string             `json:"material,omitempty"`

	// Properties used when Material is "Custom"
	CustomMaterial *material.Material `json:"custom_material,omitempty"`
}

// Report holds the outcome of a beam check
type Report struct {
	Name     string            `json:"name,omitempty"`
	Input    Input             `json:"input"`
	Material material.Material `json:"material"`
	Diagram  *beam.Diagram     `json:"diagram"`
	Result   section.Result    `json:"result"`
}

// LoadFromFile loads a case definition from a JSON file
func LoadFromFile(filepath string) (*Input, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, err
	}

	var in Input
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("parse case file %s: %w", filepath, err)
	}

	return &in, nil
}

// ResolveMaterial returns the material named by the input, substituting the
// custom properties when the Custom entry is selected.
func (in Input) ResolveMaterial() (material.Material, error) {
	m, err := material.Lookup(in.Material)
	if err != nil {
		return material.Material{}, err
	}
	if m.IsCustom() {
		if in.CustomMaterial == nil {
			return material.Material{}, fmt.Errorf("material %q requires custom properties", material.Custom)
		}
		m = *in.CustomMaterial
		m.Name = material.Custom
	}
	return m, nil
}

// Run validates the input, samples the shear and moment diagram and
// evaluates the section against the peak forces.
func Run(in Input, opts ...beam.Option) (*Report, error) {
	if err := beam.Validate(in.Beam, in.Load); err != nil {
		return nil, err
	}
	if err := in.Section.Validate(); err != nil {
		return nil, err
	}

	mat, err := in.ResolveMaterial()
	if err != nil {
		return nil, err
	}

	d, err := beam.Sample(in.Beam, in.Load, opts...)
	if err != nil {
		return nil, err
	}

	// Stresses use the unrounded peaks
	shear, moment := d.Peaks()
	res := section.Evaluate(shear, moment, in.Section, mat.YieldStrength)

	return &Report{
		Name:     in.Name,
		Input:    in,
		Material: mat,
		Diagram:  d,
		Result:   res,
	}, nil
}
