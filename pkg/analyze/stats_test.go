package analyze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dataspine/mcda-go/pkg/dataset"
)

func TestNumericStats(t *testing.T) {
	stats := numericStats([]float64{2, 4, 4, 4, 5, 5, 7, 9})

	assert.Equal(t, 8, stats.Count)
	assert.InDelta(t, 2, stats.Min, 1e-9)
	assert.InDelta(t, 9, stats.Max, 1e-9)
	assert.InDelta(t, 5, stats.Mean, 1e-9)
	assert.InDelta(t, 4.5, stats.Median, 1e-9)
	assert.InDelta(t, 7, stats.Range, 1e-9)
	assert.Equal(t, 5, stats.UniqueCount)

	// Sample variance of the classic population-std-2 example.
	assert.InDelta(t, 32.0/7.0, stats.Variance, 1e-9)
	assert.InDelta(t, 4, stats.P25, 1e-9)
	assert.InDelta(t, 5.5, stats.P75, 1e-9)
	assert.InDelta(t, 1.5, stats.IQR, 1e-9)
}

func TestNumericStatsDegenerate(t *testing.T) {
	assert.Equal(t, NumericStats{}, numericStats(nil))

	constant := numericStats([]float64{3, 3, 3})
	assert.InDelta(t, 0, constant.Variance, 1e-9)
	assert.InDelta(t, 0, constant.Skewness, 1e-9)
	assert.InDelta(t, 0, constant.Kurtosis, 1e-9)
	assert.Equal(t, 1, constant.UniqueCount)
}

func TestCategoricalStats(t *testing.T) {
	stats := categoricalStats([]string{"a", "a", "b", "b"})

	assert.Equal(t, 4, stats.Count)
	assert.Equal(t, 2, stats.TotalCategories)
	assert.Equal(t, "a", stats.MostFrequent)
	assert.Equal(t, 2, stats.MostFrequentCount)
	assert.InDelta(t, 1, stats.Entropy, 1e-9)
	assert.InDelta(t, 1, stats.MaxEntropy, 1e-9)
	assert.InDelta(t, 1, stats.NormalizedEntropy, 1e-9)
}

func TestCategoricalStatsTopFive(t *testing.T) {
	values := []string{"a", "a", "a", "b", "b", "c", "d", "e", "f", "g"}
	stats := categoricalStats(values)

	assert.Equal(t, 7, stats.TotalCategories)
	assert.Len(t, stats.TopCategories, 5)
	assert.Equal(t, "a", stats.TopCategories[0].Value)
	assert.Equal(t, 3, stats.TopCategories[0].Count)
}

func TestAnalyzeFields(t *testing.T) {
	table, err := dataset.NewTable([]dataset.Column{
		{Name: "supplier", Kind: dataset.TextColumn, Text: []string{"x", "y"}},
		{Name: "quality_score", Kind: dataset.NumericColumn, Numbers: []float64{7, 9}},
		{Name: "unit_cost", Kind: dataset.NumericColumn, Numbers: []float64{12, 8}},
	})
	require.NoError(t, err)

	report := AnalyzeFields(table)

	assert.Contains(t, report.Numeric, "quality_score")
	assert.Contains(t, report.Numeric, "unit_cost")
	assert.Contains(t, report.Categorical, "supplier")
	assert.Len(t, report.Polarity, 2)
}
