package section

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/alexiusacademia/beamcalc/internal/beam"
)

func nearlyEqual(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("%s = %v, want %v", name, got, want)
	}
}

func TestEvaluate_Rectangle100x200(t *testing.T) {
	res := Evaluate(500, 250000, Rectangle{Width: 100, Height: 200}, 250)

	nearlyEqual(t, "area", res.Area, 20000)
	nearlyEqual(t, "inertia", res.MomentOfInertia, 66666666.67)
	if !res.MaxNormalStress.Defined || res.MaxNormalStress.Value != 0.38 {
		t.Fatalf("normal stress = %v, want 0.38", res.MaxNormalStress)
	}
	// 1.5 * 500 / 20000 = 0.0375
	if !res.MaxShearStress.Defined || res.MaxShearStress.Value != 0.04 {
		t.Fatalf("shear stress = %v, want 0.04", res.MaxShearStress)
	}
	if !res.SafetyFactor.Defined || res.SafetyFactor.Value != 666.67 {
		t.Fatalf("safety factor = %v, want 666.67", res.SafetyFactor)
	}
	if res.ZeroSection || res.NoLoad || res.Yields() {
		t.Fatalf("unexpected flags: %+v", res)
	}
}

func TestEvaluate_Yielding(t *testing.T) {
	// M = fy * b h^2 / 6 * 2 gives a safety factor of 0.5
	r := Rectangle{Width: 50, Height: 100}
	m := 250 * r.SectionModulus() * 2
	res := Evaluate(1000, m, r, 250)
	nearlyEqual(t, "normal stress", res.MaxNormalStress.Value, 500)
	nearlyEqual(t, "safety factor", res.SafetyFactor.Value, 0.5)
	if !res.Yields() {
		t.Fatal("Yields() = false, want true")
	}
}

func TestEvaluate_NoLoad(t *testing.T) {
	res := Evaluate(0, 0, Rectangle{Width: 100, Height: 200}, 250)
	if !res.NoLoad {
		t.Fatal("NoLoad = false, want true")
	}
	if res.SafetyFactor.Defined {
		t.Fatalf("safety factor = %v, want undefined", res.SafetyFactor)
	}
	if !res.MaxNormalStress.Defined || res.MaxNormalStress.Value != 0 {
		t.Fatalf("normal stress = %v, want 0", res.MaxNormalStress)
	}
}

func TestEvaluate_ZeroSection(t *testing.T) {
	res := Evaluate(500, 250000, Rectangle{Width: 0, Height: 200}, 250)
	if !res.ZeroSection {
		t.Fatal("ZeroSection = false, want true")
	}
	if res.MaxNormalStress.Defined || res.MaxShearStress.Defined || res.SafetyFactor.Defined {
		t.Fatalf("expected undefined stresses, got %+v", res)
	}
}

func TestMeasureJSON(t *testing.T) {
	res := Evaluate(0, 0, Rectangle{Width: 0, Height: 0}, 250)
	out, err := json.Marshal(res)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded["safety_factor"] != nil {
		t.Fatalf("safety_factor = %v, want null", decoded["safety_factor"])
	}

	var m Measure
	if err := json.Unmarshal([]byte("1.25"), &m); err != nil {
		t.Fatalf("unmarshal measure: %v", err)
	}
	if !m.Defined || m.Value != 1.25 {
		t.Fatalf("measure = %+v, want defined 1.25", m)
	}
}

func TestRectangleValidate(t *testing.T) {
	tests := []struct {
		name string
		r    Rectangle
		ok   bool
	}{
		{"positive", Rectangle{Width: 100, Height: 200}, true},
		{"zero width", Rectangle{Width: 0, Height: 200}, true},
		{"zero both", Rectangle{}, true},
		{"negative width", Rectangle{Width: -100, Height: 200}, false},
		{"negative height", Rectangle{Width: 100, Height: -1}, false},
		{"nan height", Rectangle{Width: 100, Height: math.NaN()}, false},
		{"infinite width", Rectangle{Width: math.Inf(1), Height: 200}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.r.Validate()
			if tt.ok {
				if err != nil {
					t.Fatalf("Validate: %v", err)
				}
				return
			}
			if !errors.Is(err, beam.ErrInvalidConfiguration) {
				t.Fatalf("Validate = %v, want ErrInvalidConfiguration", err)
			}
			var verr *ValidationError
			if !errors.As(err, &verr) || verr.Field != "section" {
				t.Fatalf("Validate = %#v, want *ValidationError for section", err)
			}
		})
	}
}
