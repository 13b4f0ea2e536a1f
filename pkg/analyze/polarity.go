package analyze

// Polarity normalization: every criterion is rewritten as benefit-oriented
// (larger is better) before membership scoring.  Cost-type fields are
// inverse-transformed when strictly positive, otherwise negated, so ordering
// is preserved either way.

import (
	"fmt"
	"strings"

	"github.com/dataspine/mcda-go/pkg/dataset"
	"github.com/dataspine/mcda-go/pkg/errors"
)

type Polarity string

const (
	Benefit Polarity = "benefit"
	Cost    Polarity = "cost"
	Unknown Polarity = "unknown"
)

// Decision records, per field, the detected or requested polarity and the
// transformation that was applied.
type Decision struct {
	Field      string   `json:"field"`
	Original   Polarity `json:"original"`
	Applied    Polarity `json:"applied"`
	Rule       string   `json:"rule"`
	Confidence string   `json:"confidence"`
}

var benefitKeywords = []string{
	"growth", "rate", "profit", "efficiency", "score",
	"performance", "quality", "revenue", "yield", "satisfaction", "turnover",
}

var costKeywords = []string{
	"cost", "loss", "error", "defect", "time", "delay",
	"risk", "price", "waste", "inventory", "wait",
}

// DetectPolarity proposes a polarity per numeric field from name heuristics.
// Fields it cannot classify are reported as unknown and left untouched by
// AdjustPolarity.
func DetectPolarity(t *dataset.Table) []Decision {
	decisions := make([]Decision, 0, len(t.Columns))

	for _, col := range t.NumericColumns() {
		name := strings.ToLower(col.Name)

		isBenefit := matchesAny(name, benefitKeywords)
		isCost := matchesAny(name, costKeywords)

		decision := Decision{Field: col.Name, Confidence: "high"}
		switch {
		case isBenefit && !isCost:
			decision.Original = Benefit
			decision.Rule = fmt.Sprintf("field name %q matches a benefit keyword", col.Name)
		case isCost && !isBenefit:
			decision.Original = Cost
			decision.Rule = fmt.Sprintf("field name %q matches a cost keyword", col.Name)
		default:
			decision.Original = Unknown
			decision.Confidence = "low"
			decision.Rule = fmt.Sprintf("field name %q matches no polarity keyword", col.Name)
		}
		decisions = append(decisions, decision)
	}

	return decisions
}

// AdjustPolarity rewrites the table so every numeric field is
// benefit-oriented.  When explicit is non-nil it overrides auto-detection;
// requesting a field that does not exist fails with an invalid field error.
func AdjustPolarity(t *dataset.Table, explicit map[string]Polarity) (*dataset.Table, []Decision, error) {
	for field := range explicit {
		col, ok := t.Column(field)
		if !ok {
			return nil, nil, errors.InvalidField(field)
		}
		if col.Kind != dataset.NumericColumn {
			return nil, nil, errors.InvalidField(field).With("reason", "not a numeric field")
		}
	}

	detected := map[string]Decision{}
	for _, d := range DetectPolarity(t) {
		detected[d.Field] = d
	}

	adjusted := t.Clone()
	decisions := make([]Decision, 0, len(adjusted.Columns))

	for i, col := range adjusted.Columns {
		if col.Kind != dataset.NumericColumn {
			continue
		}

		decision := detected[col.Name]
		if explicit != nil {
			polarity, ok := explicit[col.Name]
			if !ok {
				// Unmapped fields keep their values in explicit mode.
				polarity = Benefit
			}
			decision = Decision{
				Field:      col.Name,
				Original:   polarity,
				Confidence: "high",
				Rule:       "polarity supplied by caller",
			}
		}

		switch decision.Original {
		case Cost:
			adjusted.Columns[i].Numbers, decision.Rule = invert(col.Numbers, decision.Rule)
			decision.Applied = Benefit
		case Benefit:
			decision.Applied = Benefit
			decision.Rule += "; already benefit-oriented, values unchanged"
		default:
			decision.Applied = Unknown
			decision.Rule += "; left untouched"
		}

		decisions = append(decisions, decision)
	}

	return adjusted, decisions, nil
}

// invert makes a cost column benefit-oriented.  Reciprocal keeps relative
// spacing meaningful for strictly positive data; negation handles everything
// else.
func invert(values []float64, rule string) ([]float64, string) {
	allPositive := true
	for _, v := range values {
		if v <= 0 {
			allPositive = false
			break
		}
	}

	out := make([]float64, len(values))
	if allPositive {
		for i, v := range values {
			out[i] = 1 / v
		}
		return out, rule + "; reciprocal-transformed to benefit orientation"
	}

	for i, v := range values {
		out[i] = -v
	}
	return out, rule + "; negated to benefit orientation"
}

func matchesAny(name string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(name, kw) {
			return true
		}
	}
	return false
}
