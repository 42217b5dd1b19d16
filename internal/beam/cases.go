package beam

// loadCase is one closed-form shear/moment distribution. Positions passed to
// at are measured from the left support (simple beam) or the fixed end
// (cantilever) and lie in [0, span].
type loadCase interface {
	at(x float64) (shear, moment float64)

	// critical lists positions inside the span where the moment can peak
	// between grid points.
	critical() []float64

	reactions() Reactions
}

// Reactions holds the support reactions of a solved case. For a cantilever
// only the fixed-end force and moment are set.
type Reactions struct {
	Left        float64 `json:"left"`                   // N
	Right       float64 `json:"right,omitempty"`        // N
	FixedMoment float64 `json:"fixed_moment,omitempty"` // N·mm
}

type caseKey struct {
	beam Kind
	load LoadKind
}

// newCase selects the formula for the beam/load combination. The load must
// already have passed the geometry check for uniform loads.
func newCase(c Configuration, l Load) (loadCase, error) {
	switch (caseKey{c.Kind, l.Kind}) {
	case caseKey{SimpleBeam, Point}:
		return newSimplePoint(c, l), nil
	case caseKey{SimpleBeam, Uniform}:
		return newSimpleUniform(c, l), nil
	case caseKey{Cantilever, Point}:
		return cantileverPoint{p: l.Magnitude, a: l.Start}, nil
	case caseKey{Cantilever, Uniform}:
		return cantileverUniform{w: l.Magnitude / l.Length(), s: l.Start, e: l.End}, nil
	}
	return nil, invalid("kind", "unsupported combination: %s beam with %s load", c.Kind, l.Kind)
}

// simplePoint is a simply supported span with a single concentrated load.
type simplePoint struct {
	p, a, L float64
	rl, rr  float64
}

func newSimplePoint(c Configuration, l Load) simplePoint {
	L := c.Span()
	a := l.Start - c.LeftSupport
	b := c.RightSupport - l.Start
	return simplePoint{
		p:  l.Magnitude,
		a:  a,
		L:  L,
		rl: l.Magnitude * b / L,
		rr: l.Magnitude * a / L,
	}
}

func (s simplePoint) at(x float64) (float64, float64) {
	if x <= s.a {
		return s.rl, s.rl * x
	}
	return s.rl - s.p, s.rl*x - s.p*(x-s.a)
}

func (s simplePoint) critical() []float64 {
	if s.a >= 0 && s.a <= s.L {
		return []float64{s.a}
	}
	return nil
}

func (s simplePoint) reactions() Reactions {
	return Reactions{Left: s.rl, Right: s.rr}
}

// simpleUniform is a simply supported span carrying a uniform load over
// [s, e]. The resultant w*(e-s) acts at the middle of the loaded zone; the
// left reaction follows from moments about the right support.
type simpleUniform struct {
	w, s, e, L float64
	rl, rr     float64
}

func newSimpleUniform(c Configuration, l Load) simpleUniform {
	L := c.Span()
	s := l.Start - c.LeftSupport
	e := l.End - c.LeftSupport
	total := l.Magnitude
	centroid := (s + e) / 2
	return simpleUniform{
		w:  l.Magnitude / l.Length(),
		s:  s,
		e:  e,
		L:  L,
		rl: total * (L - centroid) / L,
		rr: total * centroid / L,
	}
}

func (u simpleUniform) at(x float64) (float64, float64) {
	switch {
	case x < u.s:
		return u.rl, u.rl * x
	case x <= u.e:
		d := x - u.s
		return u.rl - u.w*d, u.rl*x - u.w*d*d/2
	default:
		total := u.w * (u.e - u.s)
		centroid := (u.s + u.e) / 2
		return u.rl - total, u.rl*x - total*(x-centroid)
	}
}

func (u simpleUniform) critical() []float64 {
	var pts []float64
	for _, x := range []float64{u.s, u.e, u.s + u.rl/u.w} {
		if x >= 0 && x <= u.L && x >= u.s && x <= u.e {
			pts = append(pts, x)
		}
	}
	return pts
}

func (u simpleUniform) reactions() Reactions {
	return Reactions{Left: u.rl, Right: u.rr}
}

// cantileverPoint is fixed at x=0 with a concentrated load at a.
type cantileverPoint struct {
	p, a float64
}

func (c cantileverPoint) at(x float64) (float64, float64) {
	if x <= c.a {
		return c.p, c.p * (c.a - x)
	}
	return 0, 0
}

func (c cantileverPoint) critical() []float64 {
	return []float64{0}
}

func (c cantileverPoint) reactions() Reactions {
	return Reactions{Left: c.p, FixedMoment: c.p * c.a}
}

// cantileverUniform is fixed at x=0 with a uniform load over [s, e].
type cantileverUniform struct {
	w, s, e float64
}

func (c cantileverUniform) at(x float64) (float64, float64) {
	length := c.e - c.s
	switch {
	case x <= c.s:
		return c.w * length, c.w * length * (c.s + length/2 - x)
	case x <= c.e:
		d := c.e - x
		return c.w * d, c.w * d * d / 2
	}
	return 0, 0
}

func (c cantileverUniform) critical() []float64 {
	return []float64{0}
}

func (c cantileverUniform) reactions() Reactions {
	total := c.w * (c.e - c.s)
	return Reactions{Left: total, FixedMoment: total * (c.s + c.e) / 2}
}
