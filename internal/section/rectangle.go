package section

import (
	"fmt"
	"math"

	"github.com/alexiusacademia/beamcalc/internal/beam"
)

// Rectangle is a solid rectangular cross-section bending about its
// horizontal centroidal axis
type Rectangle struct {
	Width  float64 `json:"width"`  // b (mm)
	Height float64 `json:"height"` // h (mm)
}

// Area returns b·h (mm²)
func (r Rectangle) Area() float64 {
	return r.Width * r.Height
}

// MomentOfInertia returns b·h³/12 (mm⁴)
func (r Rectangle) MomentOfInertia() float64 {
	return r.Width * math.Pow(r.Height, 3) / 12
}

// SectionModulus returns I/(h/2) (mm³)
func (r Rectangle) SectionModulus() float64 {
	return r.MomentOfInertia() / (r.Height / 2)
}

// Validate rejects negative or non-finite dimensions. A zero width or
// height is allowed and comes back from Evaluate as a ZeroSection result.
func (r Rectangle) Validate() error {
	for _, v := range []float64{r.Width, r.Height} {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return &ValidationError{
				Field: "section",
				msg:   fmt.Sprintf("invalid section dimensions: width=%.2f, height=%.2f", r.Width, r.Height),
			}
		}
	}
	return nil
}

// ValidationError represents a section validation error. It wraps
// beam.ErrInvalidConfiguration so callers check one sentinel for any bad
// input.
type ValidationError struct {
	Field string
	msg   string
}

func (e *ValidationError) Error() string {
	return e.msg
}

func (e *ValidationError) Unwrap() error {
	return beam.ErrInvalidConfiguration
}
