package membership

// Lower-bound level membership.  For a criterion with strictly increasing
// thresholds t_1 < … < t_L, a value sitting on t_k belongs fully to level k
// and its membership decays linearly to zero at t_{k+1}; the complementary
// share accrues to level k+1.  At most two adjacent levels are non-zero and
// degrees always sum to 1.

import (
	"github.com/charmbracelet/log"

	"github.com/dataspine/mcda-go/pkg/dataset"
	"github.com/dataspine/mcda-go/pkg/errors"
)

// Matrix is the payload of a membership_calc resource: one degree vector per
// alternative per criterion, plus the weights the configuration assigned.
type Matrix struct {
	Alternatives []string  `json:"alternatives"`
	Criteria     []string  `json:"criteria"`
	Levels       int       `json:"levels"`
	Weights      []float64 `json:"weights"`

	// Degrees is indexed [alternative][criterion][level].
	Degrees [][][]float64 `json:"degrees"`
}

// Calculate computes the membership matrix for every row and configured
// criterion.  The configuration is re-validated first; a failing report
// aborts before any numeric work with a config mismatch error.
func Calculate(t *dataset.Table, cfg Config) (*Matrix, error) {
	if report := Validate(cfg); !report.Valid {
		return nil, errors.ConfigMismatch("membership configuration failed validation").
			With("problems", report.Errors)
	}

	// Criteria follow table column order for a stable matrix layout.
	criteria := make([]string, 0, len(cfg.Criteria))
	for _, col := range t.NumericColumns() {
		if _, ok := cfg.Criteria[col.Name]; ok {
			criteria = append(criteria, col.Name)
		}
	}
	for name := range cfg.Criteria {
		col, ok := t.Column(name)
		if !ok {
			return nil, errors.InvalidField(name)
		}
		if col.Kind != dataset.NumericColumn {
			return nil, errors.InvalidField(name).With("reason", "not a numeric field")
		}
	}

	if !t.IsFinite() {
		return nil, errors.MissingInput("table with finite numeric values", t)
	}

	weights := make([]float64, len(criteria))
	for i, name := range criteria {
		weights[i] = cfg.Weights[name]
	}

	matrix := &Matrix{
		Alternatives: t.RowLabels(),
		Criteria:     criteria,
		Levels:       cfg.Levels,
		Weights:      weights,
		Degrees:      make([][][]float64, t.Rows()),
	}

	for row := 0; row < t.Rows(); row++ {
		matrix.Degrees[row] = make([][]float64, len(criteria))
		for c, name := range criteria {
			col, _ := t.Column(name)
			matrix.Degrees[row][c] = Degrees(col.Numbers[row], cfg.Criteria[name].Thresholds)
		}
	}

	log.Info("membership matrix calculated",
		"alternatives", len(matrix.Alternatives),
		"criteria", len(criteria),
		"levels", cfg.Levels)
	return matrix, nil
}

// Degrees evaluates the lower-bound level function for one value against a
// strictly increasing threshold ladder.
func Degrees(x float64, thresholds []float64) []float64 {
	levels := len(thresholds)
	degrees := make([]float64, levels)

	switch {
	case x <= thresholds[0]:
		degrees[0] = 1
	case x >= thresholds[levels-1]:
		degrees[levels-1] = 1
	default:
		for k := 0; k < levels-1; k++ {
			lo, hi := thresholds[k], thresholds[k+1]
			if x >= lo && x <= hi {
				degrees[k] = (hi - x) / (hi - lo)
				degrees[k+1] = (x - lo) / (hi - lo)
				break
			}
		}
	}

	return degrees
}
