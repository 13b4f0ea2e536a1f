package evaluate

// Shared plumbing for the ranking evaluators.  Both TOPSIS and VIKOR consume
// either a membership matrix or a raw benefit-oriented table; a membership
// matrix is collapsed to a decision matrix by taking the level
// characteristic value per criterion.

import (
	"sort"

	"github.com/dataspine/mcda-go/pkg/dataset"
	"github.com/dataspine/mcda-go/pkg/errors"
	"github.com/dataspine/mcda-go/pkg/membership"
)

type Method string

const (
	MethodTOPSIS Method = "topsis"
	MethodVIKOR  Method = "vikor"
)

// Scores is the payload of a multi_criteria resource.  Scores holds the
// method's headline score per alternative: relative closeness C for TOPSIS
// (larger is better), compromise index Q for VIKOR (smaller is better, and
// Ascending is set).
type Scores struct {
	Method       Method    `json:"method"`
	Alternatives []string  `json:"alternatives"`
	Criteria     []string  `json:"criteria"`
	Scores       []float64 `json:"scores"`
	Rank         []int     `json:"rank"`
	Ascending    bool      `json:"ascending"`

	DPlus  []float64 `json:"d_plus,omitempty"`
	DMinus []float64 `json:"d_minus,omitempty"`

	S []float64 `json:"s,omitempty"`
	R []float64 `json:"r,omitempty"`
	Q []float64 `json:"q,omitempty"`

	// LevelMemberships is the normalized per-level closeness u_jk, indexed
	// [alternative][level].  Present when the evaluator ran on a membership
	// matrix; the grade assessor prefers it over rescaling Scores.
	Levels           int         `json:"levels,omitempty"`
	LevelMemberships [][]float64 `json:"level_memberships,omitempty"`
}

// decision is the alternatives × criteria matrix an evaluator ranks.
type decision struct {
	alternatives []string
	criteria     []string
	values       [][]float64
	weights      []float64
	matrix       *membership.Matrix
}

// buildDecision accepts the two payload shapes the evaluators understand and
// fails closed on anything else.
func buildDecision(payload any, weights []float64) (*decision, error) {
	switch p := payload.(type) {
	case *membership.Matrix:
		d := &decision{
			alternatives: p.Alternatives,
			criteria:     p.Criteria,
			weights:      p.Weights,
			matrix:       p,
			values:       make([][]float64, len(p.Degrees)),
		}
		for i, byCriterion := range p.Degrees {
			d.values[i] = make([]float64, len(byCriterion))
			for c, degrees := range byCriterion {
				d.values[i][c] = characteristic(degrees)
			}
		}
		return d.withWeights(weights)

	case *dataset.Table:
		numeric := p.NumericColumns()
		if len(numeric) == 0 {
			return nil, errors.MissingInput("table with numeric criteria", payload)
		}
		d := &decision{
			alternatives: p.RowLabels(),
			criteria:     make([]string, len(numeric)),
			values:       make([][]float64, p.Rows()),
		}
		for c, col := range numeric {
			d.criteria[c] = col.Name
		}
		for i := range d.values {
			d.values[i] = make([]float64, len(numeric))
			for c, col := range numeric {
				d.values[i][c] = col.Numbers[i]
			}
		}
		return d.withWeights(weights)

	default:
		return nil, errors.MissingInput("membership matrix or tabular dataset", payload)
	}
}

func (d *decision) withWeights(override []float64) (*decision, error) {
	if override != nil {
		if len(override) != len(d.criteria) {
			return nil, errors.DimensionMismatch("weights", len(d.criteria), len(override))
		}
		d.weights = override
	}
	if d.weights == nil {
		d.weights = make([]float64, len(d.criteria))
		for i := range d.weights {
			d.weights[i] = 1 / float64(len(d.criteria))
		}
	}
	return d, nil
}

// characteristic collapses a degree vector to its level-weighted value
// Σ k·u_k, normalized when degrees do not already sum to 1.
func characteristic(degrees []float64) float64 {
	sum, value := 0.0, 0.0
	for k, u := range degrees {
		sum += u
		value += float64(k+1) * u
	}
	if sum == 0 {
		return 0
	}
	return value / sum
}

// rank assigns 1-based ranks per alternative; ascending picks whether the
// smallest or largest score wins.
func rank(scores []float64, ascending bool) []int {
	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		if ascending {
			return scores[order[a]] < scores[order[b]]
		}
		return scores[order[a]] > scores[order[b]]
	})

	ranks := make([]int, len(scores))
	for position, idx := range order {
		ranks[idx] = position + 1
	}
	return ranks
}
