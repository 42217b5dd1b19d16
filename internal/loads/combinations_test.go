package loads

import (
	"math"
	"testing"
)

func TestGoverning(t *testing.T) {
	tests := []struct {
		name   string
		p      Components
		want   float64
		wantID string
	}{
		{"dead only", Components{Dead: 1000}, 1400, "1"},
		{"dead and live", Components{Dead: 1000, Live: 500}, 2000, "2"},
		{"small live", Components{Dead: 1000, Live: 100}, 1400, "1"},
		{"uplift", Components{Dead: -1000}, -1400, "1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, combo := Governing(tt.p, Gravity)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Fatalf("Governing = %.2f, want %.2f", got, tt.want)
			}
			if combo.ID != tt.wantID {
				t.Fatalf("governing combination = %s (%s), want %s", combo.ID, combo.Description, tt.wantID)
			}
		})
	}
}

func TestService(t *testing.T) {
	if got := Service.Factored(Components{Dead: 700, Live: 300}); got != 1000 {
		t.Fatalf("service load = %.2f, want 1000", got)
	}
	if !(Components{}).IsZero() {
		t.Fatal("empty components not reported as zero")
	}
}
