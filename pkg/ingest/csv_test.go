package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dataspine/mcda-go/pkg/dataset"
)

func TestParseCSV(t *testing.T) {
	table, err := ParseCSV("name,score,region\nalpha,1.5,north\nbeta,2,south\n")
	require.NoError(t, err)

	assert.Equal(t, 2, table.Rows())
	assert.Len(t, table.Columns, 3)

	name, _ := table.Column("name")
	assert.Equal(t, dataset.TextColumn, name.Kind)
	assert.Equal(t, []string{"alpha", "beta"}, name.Text)

	score, _ := table.Column("score")
	assert.Equal(t, dataset.NumericColumn, score.Kind)
	assert.Equal(t, []float64{1.5, 2}, score.Numbers)
}

func TestParseCSVEmptyCellsDefaultToZero(t *testing.T) {
	table, err := ParseCSV("name,score\nalpha,3\nbeta,\ngamma,5\n")
	require.NoError(t, err)

	score, _ := table.Column("score")
	assert.Equal(t, dataset.NumericColumn, score.Kind)
	assert.Equal(t, []float64{3, 0, 5}, score.Numbers)
}

func TestParseCSVMixedColumnFallsBackToText(t *testing.T) {
	table, err := ParseCSV("score\n3\nn/a\n")
	require.NoError(t, err)

	score, _ := table.Column("score")
	assert.Equal(t, dataset.TextColumn, score.Kind)
	assert.Equal(t, []string{"3", "n/a"}, score.Text)
}

func TestParseCSVNonFiniteCellsFallBackToText(t *testing.T) {
	// strconv.ParseFloat accepts these spellings, but a column carrying
	// them must not become numeric.
	for _, cell := range []string{"NaN", "Inf", "-Inf", "+Inf"} {
		table, err := ParseCSV("score\n3\n" + cell + "\n")
		require.NoError(t, err, "cell=%s", cell)

		score, _ := table.Column("score")
		assert.Equal(t, dataset.TextColumn, score.Kind, "cell=%s", cell)
		assert.Equal(t, []string{"3", cell}, score.Text, "cell=%s", cell)
	}
}

func TestParseCSVRejectsDegenerateInputs(t *testing.T) {
	_, err := ParseCSV("")
	assert.Error(t, err)

	_, err = ParseCSV("only,a,header\n")
	assert.Error(t, err)

	_, err = ParseCSV("a,,c\n1,2,3\n")
	assert.Error(t, err, "empty header cell")

	_, err = ParseCSV("a,b\n1,2\n3\n")
	assert.Error(t, err, "ragged row")
}
