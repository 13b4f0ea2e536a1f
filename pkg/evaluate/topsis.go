package evaluate

// TOPSIS: rank alternatives by relative closeness to the ideal-best and
// ideal-worst solutions.  Inputs are benefit-oriented (the polarity stage
// runs first), so the positive ideal is the per-criterion maximum of the
// weighted normalized matrix and the negative ideal the minimum.

import (
	"math"

	"github.com/charmbracelet/log"
)

// TOPSIS evaluates a membership matrix or raw weighted table and returns
// relative-closeness scores ranked descending.  A nil weights slice uses the
// weights carried by the input (equal weights for tables).
func TOPSIS(payload any, weights []float64) (*Scores, error) {
	d, err := buildDecision(payload, weights)
	if err != nil {
		return nil, err
	}

	alternatives := len(d.alternatives)
	criteria := len(d.criteria)

	// Vector normalization per criterion column, then weighting.
	norms := make([]float64, criteria)
	for c := 0; c < criteria; c++ {
		sum := 0.0
		for i := 0; i < alternatives; i++ {
			sum += d.values[i][c] * d.values[i][c]
		}
		norms[c] = math.Sqrt(sum)
	}

	weighted := make([][]float64, alternatives)
	for i := range weighted {
		weighted[i] = make([]float64, criteria)
		for c := 0; c < criteria; c++ {
			if norms[c] > 0 {
				weighted[i][c] = d.weights[c] * d.values[i][c] / norms[c]
			}
		}
	}

	idealBest := make([]float64, criteria)
	idealWorst := make([]float64, criteria)
	for c := 0; c < criteria; c++ {
		idealBest[c] = math.Inf(-1)
		idealWorst[c] = math.Inf(1)
		for i := 0; i < alternatives; i++ {
			idealBest[c] = math.Max(idealBest[c], weighted[i][c])
			idealWorst[c] = math.Min(idealWorst[c], weighted[i][c])
		}
	}

	scores := &Scores{
		Method:       MethodTOPSIS,
		Alternatives: d.alternatives,
		Criteria:     d.criteria,
		Scores:       make([]float64, alternatives),
		DPlus:        make([]float64, alternatives),
		DMinus:       make([]float64, alternatives),
	}

	for i := 0; i < alternatives; i++ {
		var dPlus, dMinus float64
		for c := 0; c < criteria; c++ {
			dPlus += (weighted[i][c] - idealBest[c]) * (weighted[i][c] - idealBest[c])
			dMinus += (weighted[i][c] - idealWorst[c]) * (weighted[i][c] - idealWorst[c])
		}
		scores.DPlus[i] = math.Sqrt(dPlus)
		scores.DMinus[i] = math.Sqrt(dMinus)

		// Zero-variance degenerate case: the alternative coincides with both
		// ideals, closeness is defined as 0 instead of dividing by zero.
		if scores.DPlus[i]+scores.DMinus[i] == 0 {
			scores.Scores[i] = 0
			continue
		}
		scores.Scores[i] = scores.DMinus[i] / (scores.DPlus[i] + scores.DMinus[i])
	}

	scores.Rank = rank(scores.Scores, false)

	if d.matrix != nil {
		scores.Levels = d.matrix.Levels
		scores.LevelMemberships = levelMemberships(d)
	}

	log.Info("topsis evaluation complete", "alternatives", alternatives, "criteria", criteria)
	return scores, nil
}

// levelMemberships computes the per-level weighted distances to the all-ones
// and all-zeros profiles, the per-level relative closeness V_jk, and
// normalizes V into the level membership vector u_jk the grade assessor
// consumes.
func levelMemberships(d *decision) [][]float64 {
	m := d.matrix
	out := make([][]float64, len(m.Alternatives))

	for i := range m.Alternatives {
		closeness := make([]float64, m.Levels)
		for k := 0; k < m.Levels; k++ {
			var dPlus, dMinus float64
			for c := range m.Criteria {
				u := m.Degrees[i][c][k]
				dPlus += d.weights[c] * (u - 1) * (u - 1)
				dMinus += d.weights[c] * u * u
			}
			dPlus = math.Sqrt(dPlus)
			dMinus = math.Sqrt(dMinus)
			if dPlus+dMinus > 0 {
				closeness[k] = dMinus / (dPlus + dMinus)
			}
		}

		total := 0.0
		for _, v := range closeness {
			total += v
		}
		if total > 0 {
			for k := range closeness {
				closeness[k] /= total
			}
		}
		out[i] = closeness
	}

	return out
}
