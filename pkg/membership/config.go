package membership

// MembershipConfig: criterion weights, fuzzy level count and per-criterion
// lower-bound threshold ladders.  Validate never returns an error, it always
// produces a structured report; Calculate refuses to run on anything the
// report flags (fail-fast, no partial results).

import (
	"fmt"
	"sort"

	"github.com/cohesivestack/valgo"

	"github.com/dataspine/mcda-go/pkg/dataset"
)

const weightTolerance = 1e-6

type Criterion struct {
	Thresholds []float64 `json:"thresholds"`
	Polarity   string    `json:"polarity"`
}

type Config struct {
	Levels   int                  `json:"levels"`
	Criteria map[string]Criterion `json:"criteria"`
	Weights  map[string]float64   `json:"weights"`
}

// CriteriaNames returns the configured criteria in deterministic order.
func (c Config) CriteriaNames() []string {
	names := make([]string, 0, len(c.Criteria))
	for name := range c.Criteria {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type ValidationReport struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// Validate checks the configuration invariants: level count at least 2 and
// consistent across criteria, strictly increasing threshold ladders,
// non-negative weights summing to 1 within tolerance.
func Validate(cfg Config) ValidationReport {
	val := valgo.Is(
		valgo.Number(cfg.Levels, "levels").GreaterOrEqualTo(2),
	)
	val.Is(valgo.Number(len(cfg.Criteria), "criteria").GreaterThan(0))

	for _, name := range cfg.CriteriaNames() {
		criterion := cfg.Criteria[name]

		if criterion.Polarity != "" && criterion.Polarity != "benefit" && criterion.Polarity != "cost" {
			val.AddErrorMessage(name, fmt.Sprintf(
				"criterion %q polarity must be benefit or cost, got %q", name, criterion.Polarity))
		}

		if len(criterion.Thresholds) != cfg.Levels {
			val.AddErrorMessage(name, fmt.Sprintf(
				"criterion %q has %d thresholds, level count is %d",
				name, len(criterion.Thresholds), cfg.Levels))
			continue
		}

		for i := 1; i < len(criterion.Thresholds); i++ {
			if criterion.Thresholds[i] <= criterion.Thresholds[i-1] {
				val.AddErrorMessage(name, fmt.Sprintf(
					"criterion %q thresholds must be strictly increasing, %.6g !< %.6g at position %d",
					name, criterion.Thresholds[i-1], criterion.Thresholds[i], i))
				break
			}
		}

		weight, ok := cfg.Weights[name]
		if !ok {
			val.AddErrorMessage(name, fmt.Sprintf("criterion %q has no weight", name))
			continue
		}
		val.Is(valgo.Number(weight, "weight_"+name).GreaterOrEqualTo(0))
	}

	for name := range cfg.Weights {
		if _, ok := cfg.Criteria[name]; !ok {
			val.AddErrorMessage(name, fmt.Sprintf("weight %q refers to an unconfigured criterion", name))
		}
	}

	if len(cfg.Weights) > 0 {
		sum := 0.0
		for _, w := range cfg.Weights {
			sum += w
		}
		if sum < 1-weightTolerance || sum > 1+weightTolerance {
			val.AddErrorMessage("weights", fmt.Sprintf("weights must sum to 1, got %.6f", sum))
		}
	}

	report := ValidationReport{Valid: val.Valid()}
	if !report.Valid {
		keys := make([]string, 0, len(val.Errors()))
		for key := range val.Errors() {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			report.Errors = append(report.Errors, val.Errors()[key].Messages()...)
		}
	}
	return report
}

// GenerateTemplate derives a reasonable default configuration from field
// statistics: evenly spaced thresholds between the observed minimum and
// maximum of each numeric field, equal weights.  A convenience starting
// point, not a correctness-critical path.
func GenerateTemplate(t *dataset.Table, levels int) (Config, error) {
	if levels < 2 {
		levels = 2
	}

	numeric := t.NumericColumns()
	if len(numeric) == 0 {
		return Config{}, fmt.Errorf("dataset has no numeric fields to configure")
	}

	cfg := Config{
		Levels:   levels,
		Criteria: make(map[string]Criterion, len(numeric)),
		Weights:  make(map[string]float64, len(numeric)),
	}

	weight := 1.0 / float64(len(numeric))
	for _, col := range numeric {
		lo, hi := col.Numbers[0], col.Numbers[0]
		for _, v := range col.Numbers {
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}

		spacing := (hi - lo) / float64(levels-1)
		if spacing <= 0 {
			// Degenerate constant column still gets a valid ladder.
			spacing = 1
		}

		thresholds := make([]float64, levels)
		for k := range thresholds {
			thresholds[k] = lo + spacing*float64(k)
		}

		cfg.Criteria[col.Name] = Criterion{Thresholds: thresholds, Polarity: "benefit"}
		cfg.Weights[col.Name] = weight
	}

	return cfg, nil
}
