package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/alexiusacademia/beamcalc/internal/analysis"
	"github.com/alexiusacademia/beamcalc/internal/section"
)

// ErrNotFound is returned by Get for an unknown record id
var ErrNotFound = errors.New("analysis not found")

// Record is one saved analysis as listed in the history
type Record struct {
	ID               int64           `json:"id"`
	Name             string          `json:"name"`
	CreatedAt        time.Time       `json:"created_at"`
	BeamKind         string          `json:"beam_kind"`
	LoadKind         string          `json:"load_kind"`
	Span             float64         `json:"span"`
	MaxShearForce    float64         `json:"max_shear_force"`
	MaxBendingMoment float64         `json:"max_bending_moment"`
	MaxNormalStress  section.Measure `json:"max_normal_stress"`
	SafetyFactor     section.Measure `json:"safety_factor"`
}

// Save stores a report and returns its id. An empty name falls back to the
// report's own name.
func (s *Store) Save(ctx context.Context, name string, rep *analysis.Report) (int64, error) {
	if rep == nil || rep.Diagram == nil {
		return 0, errors.New("save: report has no diagram")
	}
	if name == "" {
		name = rep.Name
	}

	payload, err := json.Marshal(rep)
	if err != nil {
		return 0, fmt.Errorf("encode report: %w", err)
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO analyses (name, created_at, beam_kind, load_kind, span,
			max_shear_force, max_moment, normal_stress, safety_factor, report)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		name,
		time.Now().Unix(),
		rep.Input.Beam.Kind.String(),
		rep.Input.Load.Kind.String(),
		rep.Diagram.Span,
		rep.Result.MaxShearForce,
		rep.Result.MaxBendingMoment,
		nullable(rep.Result.MaxNormalStress),
		nullable(rep.Result.SafetyFactor),
		string(payload),
	)
	if err != nil {
		return 0, fmt.Errorf("insert analysis: %w", err)
	}
	return res.LastInsertId()
}

// List returns the most recent analyses, newest first. A limit of zero or
// less returns every record.
func (s *Store) List(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, created_at, beam_kind, load_kind, span,
			max_shear_force, max_moment, normal_stress, safety_factor
		FROM analyses
		ORDER BY id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list analyses: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var (
			rec     Record
			created int64
			stress  sql.NullFloat64
			fs      sql.NullFloat64
		)
		if err := rows.Scan(&rec.ID, &rec.Name, &created, &rec.BeamKind, &rec.LoadKind, &rec.Span,
			&rec.MaxShearForce, &rec.MaxBendingMoment, &stress, &fs); err != nil {
			return nil, fmt.Errorf("scan analysis: %w", err)
		}
		rec.CreatedAt = time.Unix(created, 0)
		rec.MaxNormalStress = section.Measure{Value: stress.Float64, Defined: stress.Valid}
		rec.SafetyFactor = section.Measure{Value: fs.Float64, Defined: fs.Valid}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Get loads the full report saved under id
func (s *Store) Get(ctx context.Context, id int64) (*analysis.Report, error) {
	var payload string
	err := s.db.QueryRowContext(ctx, `SELECT report FROM analyses WHERE id = ?`, id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("id %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get analysis: %w", err)
	}

	var rep analysis.Report
	if err := json.Unmarshal([]byte(payload), &rep); err != nil {
		return nil, fmt.Errorf("decode report %d: %w", id, err)
	}
	return &rep, nil
}

func nullable(m section.Measure) sql.NullFloat64 {
	return sql.NullFloat64{Float64: m.Value, Valid: m.Defined}
}
