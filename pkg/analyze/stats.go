package analyze

// Field statistics for numeric and categorical columns.  These feed the
// polarity heuristics and the membership config template, and are exposed as
// a field_analysis resource in their own right.

import (
	"math"
	"sort"

	"github.com/dataspine/mcda-go/pkg/dataset"
)

type NumericStats struct {
	Count    int     `json:"count"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Mean     float64 `json:"mean"`
	Median   float64 `json:"median"`
	Std      float64 `json:"std"`
	Variance float64 `json:"variance"`
	Range    float64 `json:"range"`

	P25 float64 `json:"p25"`
	P50 float64 `json:"p50"`
	P75 float64 `json:"p75"`
	P90 float64 `json:"p90"`
	P95 float64 `json:"p95"`

	Skewness float64 `json:"skewness"`
	Kurtosis float64 `json:"kurtosis"`
	IQR      float64 `json:"iqr"`

	UniqueCount int `json:"unique_count"`
}

type CategoryCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

type CategoricalStats struct {
	Count             int             `json:"count"`
	TopCategories     []CategoryCount `json:"top_categories"`
	TotalCategories   int             `json:"total_categories"`
	MostFrequent      string          `json:"most_frequent"`
	MostFrequentCount int             `json:"most_frequent_count"`
	Entropy           float64         `json:"entropy"`
	MaxEntropy        float64         `json:"max_entropy"`
	NormalizedEntropy float64         `json:"normalized_entropy"`
}

// FieldReport is the payload of a field_analysis resource.
type FieldReport struct {
	Numeric     map[string]NumericStats     `json:"numeric"`
	Categorical map[string]CategoricalStats `json:"categorical"`
	Polarity    []Decision                  `json:"polarity"`
}

// AnalyzeFields computes statistics for every column of the table and runs
// polarity auto-detection over the numeric ones.
func AnalyzeFields(t *dataset.Table) *FieldReport {
	report := &FieldReport{
		Numeric:     map[string]NumericStats{},
		Categorical: map[string]CategoricalStats{},
	}

	for _, col := range t.Columns {
		switch col.Kind {
		case dataset.NumericColumn:
			report.Numeric[col.Name] = numericStats(col.Numbers)
		case dataset.TextColumn:
			report.Categorical[col.Name] = categoricalStats(col.Text)
		}
	}

	report.Polarity = DetectPolarity(t)
	return report
}

func numericStats(values []float64) NumericStats {
	n := len(values)
	if n == 0 {
		return NumericStats{}
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	sum := 0.0
	unique := map[float64]struct{}{}
	for _, v := range values {
		sum += v
		unique[v] = struct{}{}
	}
	mean := sum / float64(n)

	var m2, m3, m4 float64
	for _, v := range values {
		d := v - mean
		m2 += d * d
		m3 += d * d * d
		m4 += d * d * d * d
	}
	m2 /= float64(n)
	m3 /= float64(n)
	m4 /= float64(n)

	variance := 0.0
	if n > 1 {
		variance = m2 * float64(n) / float64(n-1)
	}

	skew, kurt := 0.0, 0.0
	if m2 > 0 {
		skew = m3 / math.Pow(m2, 1.5)
		kurt = m4/(m2*m2) - 3
	}

	stats := NumericStats{
		Count:       n,
		Min:         sorted[0],
		Max:         sorted[n-1],
		Mean:        mean,
		Median:      quantile(sorted, 0.50),
		Std:         math.Sqrt(variance),
		Variance:    variance,
		Range:       sorted[n-1] - sorted[0],
		P25:         quantile(sorted, 0.25),
		P50:         quantile(sorted, 0.50),
		P75:         quantile(sorted, 0.75),
		P90:         quantile(sorted, 0.90),
		P95:         quantile(sorted, 0.95),
		Skewness:    skew,
		Kurtosis:    kurt,
		UniqueCount: len(unique),
	}
	stats.IQR = stats.P75 - stats.P25
	return stats
}

func categoricalStats(values []string) CategoricalStats {
	n := len(values)
	counts := map[string]int{}
	for _, v := range values {
		counts[v]++
	}

	categories := make([]CategoryCount, 0, len(counts))
	for value, count := range counts {
		categories = append(categories, CategoryCount{Value: value, Count: count})
	}
	sort.Slice(categories, func(i, j int) bool {
		if categories[i].Count != categories[j].Count {
			return categories[i].Count > categories[j].Count
		}
		return categories[i].Value < categories[j].Value
	})

	entropy := 0.0
	for _, c := range categories {
		p := float64(c.Count) / float64(n)
		entropy -= p * math.Log2(p)
	}

	maxEntropy := 0.0
	normalized := 0.0
	if len(categories) > 1 {
		maxEntropy = math.Log2(float64(len(categories)))
		normalized = entropy / maxEntropy
	}

	top := categories
	if len(top) > 5 {
		top = top[:5]
	}

	stats := CategoricalStats{
		Count:             n,
		TopCategories:     top,
		TotalCategories:   len(categories),
		Entropy:           entropy,
		MaxEntropy:        maxEntropy,
		NormalizedEntropy: normalized,
	}
	if len(categories) > 0 {
		stats.MostFrequent = categories[0].Value
		stats.MostFrequentCount = categories[0].Count
	}
	return stats
}

// quantile interpolates linearly between order statistics, matching the
// convention the rest of the statistics use.
func quantile(sorted []float64, q float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n == 1 {
		return sorted[0]
	}
	pos := q * float64(n-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}
