package beam

import "math"

// DefaultResolution is the number of equal intervals the span is divided
// into, giving DefaultResolution+1 samples.
const DefaultResolution = 100

// Station is the internal force state at one position along the span
type Station struct {
	Position      float64 `json:"x"`              // mm from the left support or fixed end
	ShearForce    float64 `json:"shear_force"`    // N
	BendingMoment float64 `json:"bending_moment"` // N·mm
}

// Diagram holds the sampled shear force and bending moment distribution
type Diagram struct {
	Beam Configuration `json:"beam"`
	Load Load          `json:"load"`
	Span float64       `json:"span"` // mm

	Samples   []Station `json:"samples"`
	Reactions Reactions `json:"reactions"`

	// Peak magnitudes rounded to 2 decimals
	MaxShearForce    float64 `json:"max_shear_force"`    // N
	MaxBendingMoment float64 `json:"max_bending_moment"` // N·mm

	peakShear  float64
	peakMoment float64
}

// Peaks returns the peak shear and moment magnitudes at full precision.
func (d *Diagram) Peaks() (shear, moment float64) {
	return d.peakShear, d.peakMoment
}

type options struct {
	resolution int
}

// Option customizes sampling
type Option func(*options)

// WithResolution sets the number of sampling intervals. Values below 1 keep
// the default.
func WithResolution(n int) Option {
	return func(o *options) {
		if n >= 1 {
			o.resolution = n
		}
	}
}

// Sample computes the shear force and bending moment diagram of the beam.
//
// A uniform load whose end does not lie past its start yields an error
// wrapping ErrInvalidLoadGeometry. A span of zero or less yields a single
// zero-valued sample and zero peaks. Other range checks are the job of
// Validate and are not repeated here.
func Sample(c Configuration, l Load, opts ...Option) (*Diagram, error) {
	o := options{resolution: DefaultResolution}
	for _, opt := range opts {
		opt(&o)
	}

	if l.Kind == Uniform && l.Length() <= 0 {
		return nil, loadGeometryError(l)
	}

	d := &Diagram{Beam: c, Load: l, Span: c.Span()}
	if d.Span <= 0 {
		d.Span = 0
		d.Samples = []Station{{}}
		return d, nil
	}

	lc, err := newCase(c, l)
	if err != nil {
		return nil, err
	}
	d.Reactions = lc.reactions()

	d.Samples = make([]Station, 0, o.resolution+1)
	for i := 0; i <= o.resolution; i++ {
		// Scale by index instead of accumulating a step so the last
		// position lands exactly on the span.
		x := float64(i) * d.Span / float64(o.resolution)
		v, m := lc.at(x)
		d.track(v, m)
		d.Samples = append(d.Samples, Station{
			Position:      round2(x),
			ShearForce:    round2(v),
			BendingMoment: round2(m),
		})
	}

	for _, x := range lc.critical() {
		v, m := lc.at(x)
		d.track(v, m)
	}

	d.MaxShearForce = round2(d.peakShear)
	d.MaxBendingMoment = round2(d.peakMoment)
	return d, nil
}

func (d *Diagram) track(v, m float64) {
	d.peakShear = math.Max(d.peakShear, math.Abs(v))
	d.peakMoment = math.Max(d.peakMoment, math.Abs(m))
}

// At evaluates shear and moment at a single position x measured like
// Station.Position. Positions outside [0, span] return zeros.
func At(c Configuration, l Load, x float64) (shear, moment float64, err error) {
	if l.Kind == Uniform && l.Length() <= 0 {
		return 0, 0, loadGeometryError(l)
	}
	span := c.Span()
	if span <= 0 || x < 0 || x > span {
		return 0, 0, nil
	}
	lc, err := newCase(c, l)
	if err != nil {
		return 0, 0, err
	}
	shear, moment = lc.at(x)
	return shear, moment, nil
}

// round2 rounds to 2 decimal places the way the diagrams are reported.
func round2(v float64) float64 {
	r := math.Round(v*100) / 100
	if r == 0 {
		// drop negative zero
		return 0
	}
	return r
}
