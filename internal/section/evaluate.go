package section

import (
	"encoding/json"
	"math"
	"strconv"
)

// Measure is a derived scalar that may be undefined. Undefined values come
// from dividing by a zero area, inertia or stress and are never encoded as
// a platform infinity or NaN.
type Measure struct {
	Value   float64
	Defined bool
}

func measure(v float64) Measure {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Measure{}
	}
	return Measure{Value: round2(v), Defined: true}
}

func (m Measure) String() string {
	if !m.Defined {
		return "undefined"
	}
	return strconv.FormatFloat(m.Value, 'f', 2, 64)
}

// MarshalJSON encodes an undefined measure as null
func (m Measure) MarshalJSON() ([]byte, error) {
	if !m.Defined {
		return []byte("null"), nil
	}
	return json.Marshal(m.Value)
}

func (m *Measure) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*m = Measure{}
		return nil
	}
	if err := json.Unmarshal(data, &m.Value); err != nil {
		return err
	}
	m.Defined = true
	return nil
}

// Result holds the stresses and safety factor of a rectangular section
// under the peak internal forces. All values are rounded to 2 decimals.
type Result struct {
	MaxShearForce    float64 `json:"max_shear_force"`    // N
	MaxBendingMoment float64 `json:"max_bending_moment"` // N·mm

	Area            float64 `json:"area"`              // mm²
	MomentOfInertia float64 `json:"moment_of_inertia"` // mm⁴

	MaxNormalStress Measure `json:"max_normal_stress"` // MPa, extreme fibre
	MaxShearStress  Measure `json:"max_shear_stress"`  // MPa, neutral axis
	SafetyFactor    Measure `json:"safety_factor"`     // fy / σmax

	// ZeroSection is set when the area or inertia is zero
	ZeroSection bool `json:"zero_section,omitempty"`
	// NoLoad is set when the normal stress is zero so no safety factor exists
	NoLoad bool `json:"no_load,omitempty"`
}

// Yields reports whether the safety factor predicts yielding (below 1).
func (r Result) Yields() bool {
	return r.SafetyFactor.Defined && r.SafetyFactor.Value < 1
}

// Evaluate derives area, second moment of area, extreme-fibre bending
// stress, maximum shear stress (1.5·V/A) and the safety factor against
// yield from the peak shear and moment. It never fails: degenerate inputs
// come back as undefined measures with ZeroSection or NoLoad set.
func Evaluate(maxShearForce, maxBendingMoment float64, r Rectangle, yieldStrength float64) Result {
	area := r.Area()
	inertia := r.MomentOfInertia()

	normal := maxBendingMoment * (r.Height / 2) / inertia
	shear := 1.5 * maxShearForce / area
	safety := yieldStrength / normal

	res := Result{
		MaxShearForce:    round2(maxShearForce),
		MaxBendingMoment: round2(maxBendingMoment),
		Area:             round2(area),
		MomentOfInertia:  round2(inertia),
		MaxNormalStress:  measure(normal),
		MaxShearStress:   measure(shear),
		SafetyFactor:     measure(safety),
		ZeroSection:      area == 0 || inertia == 0,
		NoLoad:           normal == 0,
	}
	if !res.MaxNormalStress.Defined {
		res.SafetyFactor = Measure{}
	}
	return res
}

func round2(v float64) float64 {
	r := math.Round(v*100) / 100
	if r == 0 {
		return 0
	}
	return r
}
