package evaluate

// VIKOR compromise ranking: group utility S, individual regret R, and the
// compromise index Q balancing the two via the strategy weight v.

import (
	"math"

	"github.com/charmbracelet/log"
)

// VIKOR evaluates a membership matrix or raw weighted table.  v is the
// compromise weight between group utility and individual regret; alternatives
// are ranked ascending by Q (smaller is better).
func VIKOR(payload any, weights []float64, v float64) (*Scores, error) {
	d, err := buildDecision(payload, weights)
	if err != nil {
		return nil, err
	}
	if v < 0 || v > 1 {
		v = 0.5
	}

	alternatives := len(d.alternatives)
	criteria := len(d.criteria)

	best := make([]float64, criteria)
	worst := make([]float64, criteria)
	for c := 0; c < criteria; c++ {
		best[c] = math.Inf(-1)
		worst[c] = math.Inf(1)
		for i := 0; i < alternatives; i++ {
			best[c] = math.Max(best[c], d.values[i][c])
			worst[c] = math.Min(worst[c], d.values[i][c])
		}
	}

	s := make([]float64, alternatives)
	r := make([]float64, alternatives)
	for i := 0; i < alternatives; i++ {
		for c := 0; c < criteria; c++ {
			// Zero-variance criteria contribute nothing instead of dividing
			// by zero.
			if best[c] == worst[c] {
				continue
			}
			term := d.weights[c] * (best[c] - d.values[i][c]) / (best[c] - worst[c])
			s[i] += term
			r[i] = math.Max(r[i], term)
		}
	}

	sBest, sWorst := minMax(s)
	rBest, rWorst := minMax(r)

	q := make([]float64, alternatives)
	for i := 0; i < alternatives; i++ {
		if sWorst > sBest {
			q[i] += v * (s[i] - sBest) / (sWorst - sBest)
		}
		if rWorst > rBest {
			q[i] += (1 - v) * (r[i] - rBest) / (rWorst - rBest)
		}
	}

	scores := &Scores{
		Method:       MethodVIKOR,
		Alternatives: d.alternatives,
		Criteria:     d.criteria,
		Scores:       q,
		Ascending:    true,
		S:            s,
		R:            r,
		Q:            q,
	}
	scores.Rank = rank(q, true)

	log.Info("vikor evaluation complete",
		"alternatives", alternatives, "criteria", criteria, "v", v)
	return scores, nil
}

func minMax(values []float64) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}
