package loads

import "math"

// Combination is a strength-design load combination over the gravity
// components of the applied load
type Combination struct {
	ID          string
	Description string
	Dead        float64 // factor on D
	Live        float64 // factor on L
}

// Gravity holds the combinations that govern a beam carrying only dead and
// live load (NSCP 2015 Section 203.3.1, combinations 1 and 2)
var Gravity = []Combination{
	{ID: "1", Description: "1.4D", Dead: 1.4},
	{ID: "2", Description: "1.2D + 1.6L", Dead: 1.2, Live: 1.6},
}

// Service is the unfactored D + L sum
var Service = Combination{ID: "S", Description: "1.0D + 1.0L", Dead: 1, Live: 1}

// Components splits one applied load (N) into its dead and live parts
type Components struct {
	Dead float64
	Live float64
}

// IsZero reports whether no component was given
func (p Components) IsZero() bool {
	return p.Dead == 0 && p.Live == 0
}

// Factored returns the combined load magnitude
func (c Combination) Factored(p Components) float64 {
	return c.Dead*p.Dead + c.Live*p.Live
}

// Governing finds the combination with the largest factored magnitude. Sign
// is kept so an uplift load stays negative.
func Governing(p Components, combos []Combination) (float64, Combination) {
	var (
		governing Combination
		load      float64
	)
	for i, c := range combos {
		f := c.Factored(p)
		if i == 0 || math.Abs(f) > math.Abs(load) {
			load = f
			governing = c
		}
	}
	return load, governing
}
