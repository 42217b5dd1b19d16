package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alexiusacademia/beamcalc/internal/config"
	"github.com/alexiusacademia/beamcalc/internal/material"
	"github.com/alexiusacademia/beamcalc/internal/store"
)

func testConfig() config.Config {
	return config.Config{
		Resolution: 100,
		Material:   material.Default,
		RateLimit:  1000,
		RateBurst:  1000,
	}
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
}

func TestHealth(t *testing.T) {
	rec := do(t, NewRouter(testConfig(), nil), http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestMaterials(t *testing.T) {
	rec := do(t, NewRouter(testConfig(), nil), http.MethodGet, "/api/materials", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var got []material.Material
	decodeBody(t, rec, &got)
	if len(got) != len(material.Names()) {
		t.Fatalf("got %d materials, want %d", len(got), len(material.Names()))
	}
	if got[len(got)-1].Name != material.Custom {
		t.Fatalf("last material = %q, want Custom", got[len(got)-1].Name)
	}
}

func TestSample(t *testing.T) {
	h := NewRouter(testConfig(), nil)
	body := `{"beam":{"kind":"simple","length":1000,"right_support":1000},
		"load":{"kind":"point","magnitude":1000,"start":500}}`

	rec := do(t, h, http.MethodPost, "/api/sample", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var got struct {
		Samples          []json.RawMessage `json:"samples"`
		MaxShearForce    float64           `json:"max_shear_force"`
		MaxBendingMoment float64           `json:"max_bending_moment"`
	}
	decodeBody(t, rec, &got)
	if len(got.Samples) != 101 {
		t.Fatalf("got %d samples, want 101", len(got.Samples))
	}
	if got.MaxShearForce != 500 || got.MaxBendingMoment != 250000 {
		t.Fatalf("peaks = %.2f, %.2f", got.MaxShearForce, got.MaxBendingMoment)
	}
}

func TestSample_Errors(t *testing.T) {
	h := NewRouter(testConfig(), nil)

	tests := []struct {
		name   string
		body   string
		status int
		field  string
	}{
		{
			name:   "malformed json",
			body:   `{"beam":`,
			status: http.StatusBadRequest,
		},
		{
			name:   "unknown field",
			body:   `{"beam":{"kind":"simple","length":1000,"right_support":1000},"weight":3}`,
			status: http.StatusBadRequest,
		},
		{
			name: "zero length uniform load",
			body: `{"beam":{"kind":"simple","length":1000,"right_support":1000},
				"load":{"kind":"uniform","magnitude":1000,"start":400,"end":400}}`,
			status: http.StatusUnprocessableEntity,
			field:  "end",
		},
		{
			name: "support outside beam",
			body: `{"beam":{"kind":"simple","length":1000,"right_support":1200},
				"load":{"kind":"point","magnitude":1000,"start":500}}`,
			status: http.StatusUnprocessableEntity,
			field:  "right_support",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/api/sample", tt.body)
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d: %s", rec.Code, tt.status, rec.Body.String())
			}
			var got errorResponse
			decodeBody(t, rec, &got)
			if got.Error == "" || got.Field != tt.field {
				t.Fatalf("error response = %+v, want field %q", got, tt.field)
			}
		})
	}
}

func TestAt(t *testing.T) {
	h := NewRouter(testConfig(), nil)

	tests := []struct {
		name          string
		x             string
		shear, moment float64
	}{
		{"left quarter", "250", 500, 125000},
		{"right quarter", "750", -500, 125000},
		{"past the span", "1200", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := `{"beam":{"kind":"simple","length":1000,"right_support":1000},
				"load":{"kind":"point","magnitude":1000,"start":500},"x":` + tt.x + `}`
			rec := do(t, h, http.MethodPost, "/api/at", body)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
			}
			var got struct {
				ShearForce    float64 `json:"shear_force"`
				BendingMoment float64 `json:"bending_moment"`
			}
			decodeBody(t, rec, &got)
			if got.ShearForce != tt.shear || got.BendingMoment != tt.moment {
				t.Fatalf("V = %v, M = %v, want %v, %v", got.ShearForce, got.BendingMoment, tt.shear, tt.moment)
			}
		})
	}

	rec := do(t, h, http.MethodPost, "/api/at",
		`{"beam":{"kind":"simple","length":1000,"right_support":1000},
			"load":{"kind":"uniform","magnitude":1000,"start":400,"end":400},"x":100}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("zero length uniform load: status = %d, want 422", rec.Code)
	}
}

func TestEvaluate(t *testing.T) {
	h := NewRouter(testConfig(), nil)

	rec := do(t, h, http.MethodPost, "/api/evaluate",
		`{"max_shear_force":500,"max_bending_moment":250000,"section":{"width":100,"height":200}}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var got map[string]any
	decodeBody(t, rec, &got)
	if got["moment_of_inertia"] != 66666666.67 {
		t.Fatalf("moment_of_inertia = %v", got["moment_of_inertia"])
	}
	if got["max_normal_stress"] != 0.38 || got["safety_factor"] != 666.67 {
		t.Fatalf("stress = %v, safety factor = %v", got["max_normal_stress"], got["safety_factor"])
	}

	rec = do(t, h, http.MethodPost, "/api/evaluate",
		`{"max_shear_force":500,"max_bending_moment":250000,"section":{"width":0,"height":200}}`)
	got = nil
	decodeBody(t, rec, &got)
	if got["safety_factor"] != nil || got["zero_section"] != true {
		t.Fatalf("zero section response = %v", got)
	}

	rec = do(t, h, http.MethodPost, "/api/evaluate",
		`{"max_shear_force":500,"max_bending_moment":250000,"section":{"width":-100,"height":200}}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("negative section: status = %d, want 422", rec.Code)
	}
	var errResp errorResponse
	decodeBody(t, rec, &errResp)
	if errResp.Field != "section" {
		t.Fatalf("negative section field = %q, want section", errResp.Field)
	}

	rec = do(t, h, http.MethodPost, "/api/evaluate",
		`{"max_shear_force":1,"max_bending_moment":1,"section":{"width":1,"height":1},"material":"Custom"}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("custom material without yield strength: status = %d", rec.Code)
	}
}

func TestAnalyzeAndHistory(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "api.db"))
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	defer st.Close()
	h := NewRouter(testConfig(), st)

	body := `{"name":"joist","beam":{"kind":"cantilever","length":2000},
		"load":{"kind":"uniform","magnitude":4000,"start":0,"end":2000},
		"section":{"width":50,"height":100},"material":"ASTM A992 Structural Steel"}`

	rec := do(t, h, http.MethodPost, "/api/analyze?save=true", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var got struct {
		ID       int64             `json:"id"`
		Material material.Material `json:"material"`
		Result   struct {
			MaxBendingMoment float64 `json:"max_bending_moment"`
		} `json:"result"`
	}
	decodeBody(t, rec, &got)
	if got.ID == 0 {
		t.Fatal("analysis was not saved")
	}
	if got.Material.YieldStrength != 345 || got.Result.MaxBendingMoment != 4e6 {
		t.Fatalf("unexpected analysis: %+v", got)
	}

	rec = do(t, h, http.MethodGet, "/api/history", "")
	var recs []store.Record
	decodeBody(t, rec, &recs)
	if len(recs) != 1 || recs[0].Name != "joist" {
		t.Fatalf("history = %+v", recs)
	}

	if rec := do(t, h, http.MethodGet, "/api/history/1", ""); rec.Code != http.StatusOK {
		t.Fatalf("history item status = %d", rec.Code)
	}
	if rec := do(t, h, http.MethodGet, "/api/history/99", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("missing history item status = %d", rec.Code)
	}
	if rec := do(t, h, http.MethodGet, "/api/history?limit=x", ""); rec.Code != http.StatusBadRequest {
		t.Fatalf("bad limit status = %d", rec.Code)
	}
}

func TestAnalyze_UnknownMaterial(t *testing.T) {
	body := `{"beam":{"kind":"cantilever","length":2000},
		"load":{"kind":"point","magnitude":1,"start":10},
		"section":{"width":50,"height":100},"material":"oak"}`
	rec := do(t, NewRouter(testConfig(), nil), http.MethodPost, "/api/analyze", body)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d", rec.Code)
	}
	var got errorResponse
	decodeBody(t, rec, &got)
	if got.Field != "material" {
		t.Fatalf("field = %q, want material", got.Field)
	}
}

func TestRateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimit = 0.001
	cfg.RateBurst = 2
	h := NewRouter(cfg, nil)

	for i := 0; i < 2; i++ {
		if rec := do(t, h, http.MethodGet, "/api/materials", ""); rec.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d", i+1, rec.Code)
		}
	}
	if rec := do(t, h, http.MethodGet, "/api/materials", ""); rec.Code != http.StatusTooManyRequests {
		t.Fatalf("third request: status = %d, want 429", rec.Code)
	}
	if rec := do(t, h, http.MethodGet, "/healthz", ""); rec.Code != http.StatusOK {
		t.Fatalf("healthz is rate limited: status = %d", rec.Code)
	}
}
