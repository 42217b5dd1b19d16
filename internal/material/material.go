package material

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Custom is the table entry whose properties are supplied by the user
const Custom = "Custom"

// Default is used when no material is named
const Default = "ASTM A36 Structural Steel"

// ErrUnknownMaterial is returned by Lookup for names not in the table
var ErrUnknownMaterial = errors.New("unknown material")

// Material holds the properties of a structural material. Only the yield
// strength enters the stress check; the rest is carried for reporting.
type Material struct {
	Name             string  `json:"name"`
	YieldStrength    float64 `json:"yield_strength"`    // fy (MPa)
	ElasticModulus   float64 `json:"elastic_modulus"`   // E (GPa)
	Density          float64 `json:"density"`           // kg/m³
	PoissonsRatio    float64 `json:"poissons_ratio"`    // ν
	ThermalExpansion float64 `json:"thermal_expansion"` // α (µm/m·K)
}

// Structural steel constants shared by the standard grades
const (
	steelModulus   = 200.0  // GPa
	steelDensity   = 7850.0 // kg/m³
	steelPoisson   = 0.3
	steelExpansion = 12.0 // µm/m·K
)

var standard = map[string]Material{
	"ASTM A36 Structural Steel": {
		YieldStrength:    250,
		ElasticModulus:   steelModulus,
		Density:          steelDensity,
		PoissonsRatio:    steelPoisson,
		ThermalExpansion: steelExpansion,
	},
	"ASTM A992 Structural Steel": {
		YieldStrength:    345,
		ElasticModulus:   steelModulus,
		Density:          steelDensity,
		PoissonsRatio:    steelPoisson,
		ThermalExpansion: steelExpansion,
	},
	"ASTM A572 Grade 50 Steel": {
		YieldStrength:    345,
		ElasticModulus:   steelModulus,
		Density:          steelDensity,
		PoissonsRatio:    steelPoisson,
		ThermalExpansion: steelExpansion,
	},
	Custom: {},
}

// Names returns the table entries in alphabetical order with Custom last
func Names() []string {
	names := make([]string, 0, len(standard))
	for name := range standard {
		if name != Custom {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return append(names, Custom)
}

// Standard returns all table entries in Names order
func Standard() []Material {
	var out []Material
	for _, name := range Names() {
		m, _ := Lookup(name)
		out = append(out, m)
	}
	return out
}

// Lookup finds a material by name, ignoring case. An empty name selects
// Default. Custom comes back with zero properties for the caller to fill.
func Lookup(name string) (Material, error) {
	if strings.TrimSpace(name) == "" {
		name = Default
	}
	for key, m := range standard {
		if strings.EqualFold(key, strings.TrimSpace(name)) {
			m.Name = key
			return m, nil
		}
	}
	return Material{}, fmt.Errorf("%w: %q", ErrUnknownMaterial, name)
}

// IsCustom reports whether m is the user-defined entry
func (m Material) IsCustom() bool {
	return m.Name == Custom
}
