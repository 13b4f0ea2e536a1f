package analyze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dataspine/mcda-go/pkg/dataset"
	"github.com/dataspine/mcda-go/pkg/errors"
)

func newTestTable(t *testing.T) *dataset.Table {
	table, err := dataset.NewTable([]dataset.Column{
		{Name: "supplier", Kind: dataset.TextColumn, Text: []string{"x", "y"}},
		{Name: "quality_score", Kind: dataset.NumericColumn, Numbers: []float64{7, 9}},
		{Name: "unit_cost", Kind: dataset.NumericColumn, Numbers: []float64{2, 4}},
		{Name: "delay", Kind: dataset.NumericColumn, Numbers: []float64{0, 3}},
		{Name: "foo", Kind: dataset.NumericColumn, Numbers: []float64{1, 2}},
	})
	require.NoError(t, err)
	return table
}

func TestDetectPolarity(t *testing.T) {
	decisions := DetectPolarity(newTestTable(t))
	require.Len(t, decisions, 4)

	byField := map[string]Decision{}
	for _, d := range decisions {
		byField[d.Field] = d
	}

	assert.Equal(t, Benefit, byField["quality_score"].Original)
	assert.Equal(t, Cost, byField["unit_cost"].Original)
	assert.Equal(t, Cost, byField["delay"].Original)
	assert.Equal(t, Unknown, byField["foo"].Original)
	assert.Equal(t, "low", byField["foo"].Confidence)
}

func TestAdjustPolarityHeuristic(t *testing.T) {
	adjusted, decisions, err := AdjustPolarity(newTestTable(t), nil)
	require.NoError(t, err)
	require.Len(t, decisions, 4)

	// Strictly positive cost field is reciprocal-transformed.
	cost, _ := adjusted.Column("unit_cost")
	assert.Equal(t, []float64{0.5, 0.25}, cost.Numbers)

	// A cost field containing zero is negated instead.
	delay, _ := adjusted.Column("delay")
	assert.Equal(t, []float64{0, -3}, delay.Numbers)

	// Benefit and unknown fields keep their values.
	quality, _ := adjusted.Column("quality_score")
	assert.Equal(t, []float64{7, 9}, quality.Numbers)
	foo, _ := adjusted.Column("foo")
	assert.Equal(t, []float64{1, 2}, foo.Numbers)
}

func TestAdjustPolarityDoesNotMutateInput(t *testing.T) {
	table := newTestTable(t)
	_, _, err := AdjustPolarity(table, nil)
	require.NoError(t, err)

	cost, _ := table.Column("unit_cost")
	assert.Equal(t, []float64{2, 4}, cost.Numbers)
}

func TestAdjustPolarityExplicit(t *testing.T) {
	table := newTestTable(t)

	adjusted, decisions, err := AdjustPolarity(table, map[string]Polarity{"foo": Cost})
	require.NoError(t, err)

	foo, _ := adjusted.Column("foo")
	assert.Equal(t, []float64{1, 0.5}, foo.Numbers)

	// Fields left out of an explicit map default to benefit: unchanged.
	cost, _ := adjusted.Column("unit_cost")
	assert.Equal(t, []float64{2, 4}, cost.Numbers)

	for _, d := range decisions {
		assert.Equal(t, "high", d.Confidence)
	}
}

func TestAdjustPolarityRejectsBadFields(t *testing.T) {
	table := newTestTable(t)

	_, _, err := AdjustPolarity(table, map[string]Polarity{"missing": Cost})
	assert.True(t, errors.IsKind(err, errors.KindInvalidField))

	_, _, err = AdjustPolarity(table, map[string]Polarity{"supplier": Cost})
	assert.True(t, errors.IsKind(err, errors.KindInvalidField))
}
