package evaluate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dataspine/mcda-go/pkg/dataset"
	"github.com/dataspine/mcda-go/pkg/errors"
	"github.com/dataspine/mcda-go/pkg/membership"
)

func rankingTable(t *testing.T) *dataset.Table {
	// alpha dominates on both criteria, gamma is dominated on both.
	table, err := dataset.NewTable([]dataset.Column{
		{Name: "supplier", Kind: dataset.TextColumn, Text: []string{"alpha", "beta", "gamma"}},
		{Name: "quality", Kind: dataset.NumericColumn, Numbers: []float64{9, 6, 2}},
		{Name: "yield", Kind: dataset.NumericColumn, Numbers: []float64{80, 55, 10}},
	})
	require.NoError(t, err)
	return table
}

func TestTOPSISRanksDominatingAlternativeFirst(t *testing.T) {
	scores, err := TOPSIS(rankingTable(t), nil)
	require.NoError(t, err)

	assert.Equal(t, MethodTOPSIS, scores.Method)
	assert.False(t, scores.Ascending)
	assert.Equal(t, []string{"alpha", "beta", "gamma"}, scores.Alternatives)
	assert.Equal(t, []int{1, 2, 3}, scores.Rank)

	// The dominating alternative coincides with the positive ideal, the
	// dominated one with the negative ideal.
	assert.InDelta(t, 1, scores.Scores[0], 1e-9)
	assert.InDelta(t, 0, scores.Scores[2], 1e-9)
	for _, c := range scores.Scores {
		assert.GreaterOrEqual(t, c, 0.0)
		assert.LessOrEqual(t, c, 1.0)
	}
}

func TestTOPSISWeightsShiftTheRanking(t *testing.T) {
	table, err := dataset.NewTable([]dataset.Column{
		{Name: "a", Kind: dataset.NumericColumn, Numbers: []float64{10, 1}},
		{Name: "b", Kind: dataset.NumericColumn, Numbers: []float64{1, 10}},
	})
	require.NoError(t, err)

	favourA, err := TOPSIS(table, []float64{0.9, 0.1})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, favourA.Rank)

	favourB, err := TOPSIS(table, []float64{0.1, 0.9})
	require.NoError(t, err)
	assert.Equal(t, []int{2, 1}, favourB.Rank)
}

func TestTOPSISIdenticalAlternativesDegenerate(t *testing.T) {
	table, err := dataset.NewTable([]dataset.Column{
		{Name: "a", Kind: dataset.NumericColumn, Numbers: []float64{4, 4}},
		{Name: "b", Kind: dataset.NumericColumn, Numbers: []float64{7, 7}},
	})
	require.NoError(t, err)

	scores, err := TOPSIS(table, nil)
	require.NoError(t, err)

	// Every alternative coincides with both ideals; closeness is defined 0.
	assert.Equal(t, []float64{0, 0}, scores.Scores)
}

func TestTOPSISOnMembershipMatrix(t *testing.T) {
	matrix := &membership.Matrix{
		Alternatives: []string{"x", "y"},
		Criteria:     []string{"quality", "yield"},
		Levels:       3,
		Weights:      []float64{0.5, 0.5},
		Degrees: [][][]float64{
			{{0, 0, 1}, {0, 0.5, 0.5}},
			{{1, 0, 0}, {0.5, 0.5, 0}},
		},
	}

	scores, err := TOPSIS(matrix, nil)
	require.NoError(t, err)

	assert.Equal(t, 3, scores.Levels)
	require.Len(t, scores.LevelMemberships, 2)

	for i, memberships := range scores.LevelMemberships {
		sum := 0.0
		for _, u := range memberships {
			assert.GreaterOrEqual(t, u, 0.0)
			sum += u
		}
		assert.InDelta(t, 1, sum, 1e-9, "alternative %d", i)
	}

	// x sits on strictly higher levels than y everywhere.
	assert.Equal(t, []int{1, 2}, scores.Rank)
}

func TestTOPSISWeightDimensionMismatch(t *testing.T) {
	_, err := TOPSIS(rankingTable(t), []float64{1})
	assert.True(t, errors.IsKind(err, errors.KindDimensionMismatch))
}

func TestTOPSISRejectsUnsupportedPayload(t *testing.T) {
	_, err := TOPSIS("not a table", nil)
	assert.True(t, errors.IsKind(err, errors.KindMissingInput))
}
