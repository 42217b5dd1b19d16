package beam

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Kind identifies the support arrangement of a beam
type Kind int

const (
	SimpleBeam Kind = iota
	Cantilever
)

func (k Kind) String() string {
	switch k {
	case SimpleBeam:
		return "simple"
	case Cantilever:
		return "cantilever"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind accepts the short names ("simple", "cantilever") as well as the
// long labels used by the calculator form ("Simple Beam", "Cantilever Beam").
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "simple", "simple beam", "simply-supported", "simply supported":
		return SimpleBeam, nil
	case "cantilever", "cantilever beam":
		return Cantilever, nil
	}
	return 0, &ValidationError{Field: "beam kind", msg: fmt.Sprintf("unknown beam kind %q", s)}
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	v, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// LoadKind identifies how the applied force is distributed
type LoadKind int

const (
	Point LoadKind = iota
	Uniform
)

func (k LoadKind) String() string {
	switch k {
	case Point:
		return "point"
	case Uniform:
		return "uniform"
	}
	return fmt.Sprintf("LoadKind(%d)", int(k))
}

// ParseLoadKind accepts "point"/"uniform" and "Point Load"/"Uniform Load".
func ParseLoadKind(s string) (LoadKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "point", "point load":
		return Point, nil
	case "uniform", "uniform load", "udl", "distributed":
		return Uniform, nil
	}
	return 0, &ValidationError{Field: "load kind", msg: fmt.Sprintf("unknown load kind %q", s)}
}

func (k LoadKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *LoadKind) UnmarshalText(text []byte) error {
	v, err := ParseLoadKind(string(text))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// Configuration describes the beam and its supports. All positions are in mm
// measured from the left end of the beam.
type Configuration struct {
	Kind   Kind    `json:"kind"`
	Length float64 `json:"length"` // mm

	// Simple beams only; the cantilever is fixed at position 0
	LeftSupport  float64 `json:"left_support,omitempty"`  // mm
	RightSupport float64 `json:"right_support,omitempty"` // mm
}

// Span returns the analyzed length: support to support for a simple beam,
// the full length for a cantilever.
func (c Configuration) Span() float64 {
	if c.Kind == SimpleBeam {
		return c.RightSupport - c.LeftSupport
	}
	return c.Length
}

// Load describes a single applied load
type Load struct {
	Kind      LoadKind `json:"kind"`
	Magnitude float64  `json:"magnitude"`     // N, total resultant for uniform loads
	Start     float64  `json:"start"`         // mm
	End       float64  `json:"end,omitempty"` // mm, uniform loads only
}

// Length returns the loaded length of a uniform load (0 for point loads).
func (l Load) Length() float64 {
	if l.Kind != Uniform {
		return 0
	}
	return l.End - l.Start
}

var (
	// ErrInvalidConfiguration is wrapped by every input validation failure
	// that the caller must fix before sampling.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrInvalidLoadGeometry reports a uniform load whose end does not lie
	// past its start, so no load intensity can be derived.
	ErrInvalidLoadGeometry = errors.New("invalid load geometry")
)

// ValidationError represents a beam or load input validation error
type ValidationError struct {
	Field string
	msg   string
	kind  error
}

func (e *ValidationError) Error() string {
	return e.msg
}

func (e *ValidationError) Unwrap() error {
	if e.kind == nil {
		return ErrInvalidConfiguration
	}
	return e.kind
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, msg: fmt.Sprintf(format, args...)}
}

// Validate checks the beam and load for configuration errors. It returns an
// error wrapping ErrInvalidLoadGeometry for a degenerate uniform load and
// ErrInvalidConfiguration for everything else.
func Validate(c Configuration, l Load) error {
	if !finite(c.Length, c.LeftSupport, c.RightSupport, l.Magnitude, l.Start, l.End) {
		return invalid("input", "all dimensions and magnitudes must be finite numbers")
	}
	if c.Length <= 0 {
		return invalid("length", "beam length must be positive: length=%.2f", c.Length)
	}

	switch c.Kind {
	case SimpleBeam:
		if c.LeftSupport < 0 || c.LeftSupport > c.Length {
			return invalid("left_support", "left support must lie within [0, %.2f]: left=%.2f", c.Length, c.LeftSupport)
		}
		if c.RightSupport < 0 || c.RightSupport > c.Length {
			return invalid("right_support", "right support must lie within [0, %.2f]: right=%.2f", c.Length, c.RightSupport)
		}
		if c.RightSupport <= c.LeftSupport {
			return invalid("right_support", "right support must be past the left support: left=%.2f, right=%.2f", c.LeftSupport, c.RightSupport)
		}
	case Cantilever:
	default:
		return invalid("kind", "unsupported beam kind %s", c.Kind)
	}

	if l.Start < 0 || l.Start > c.Length {
		return invalid("start", "load start must lie within [0, %.2f]: start=%.2f", c.Length, l.Start)
	}

	switch l.Kind {
	case Point:
	case Uniform:
		if l.End < 0 || l.End > c.Length {
			return invalid("end", "load end must lie within [0, %.2f]: end=%.2f", c.Length, l.End)
		}
		if l.End <= l.Start {
			return loadGeometryError(l)
		}
	default:
		return invalid("kind", "unsupported load kind %s", l.Kind)
	}

	return nil
}

func loadGeometryError(l Load) error {
	return &ValidationError{
		Field: "end",
		msg:   fmt.Sprintf("uniform load end must be past its start: start=%.2f, end=%.2f", l.Start, l.End),
		kind:  ErrInvalidLoadGeometry,
	}
}

func finite(vals ...float64) bool {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
