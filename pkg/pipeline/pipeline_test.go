package pipeline

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dataspine/mcda-go/pkg/analyze"
	"github.com/dataspine/mcda-go/pkg/datastore"
	"github.com/dataspine/mcda-go/pkg/errors"
	"github.com/dataspine/mcda-go/pkg/evaluate"
	"github.com/dataspine/mcda-go/pkg/membership"
)

const suppliersCSV = `supplier,quality_score,unit_cost,yield
alpha,9,2,80
beta,6,4,55
gamma,2,8,10
`

func newTestPipeline() *Pipeline {
	return New(datastore.New())
}

func TestPipelineEndToEnd(t *testing.T) {
	p := newTestPipeline()

	raw, err := p.IngestCSV(suppliersCSV)
	require.NoError(t, err)
	assert.Equal(t, datastore.RawData, raw.Type)
	assert.Equal(t, 0, raw.Step)

	analysis, err := p.AnalyzeFields(raw.ID)
	require.NoError(t, err)
	assert.Equal(t, datastore.FieldAnalysis, analysis.Type)
	assert.Equal(t, raw.ID, analysis.ParentID)

	adjusted, decisions, err := p.AdjustPolarity(raw.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, datastore.RawData, adjusted.Type)
	assert.NotEmpty(t, decisions)

	// The polarity report travels with the resource as an annotation.
	var recorded []analyze.Decision
	require.NoError(t, json.Unmarshal(
		[]byte(adjusted.Metadata.Annotations["polarity_report"]), &recorded))
	assert.Len(t, recorded, len(decisions))

	cfg, err := p.GenerateMembershipConfig(adjusted.ID, 3)
	require.NoError(t, err)
	assert.True(t, p.ValidateMembershipConfig(cfg).Valid)

	matrix, err := p.CalculateMembership(adjusted.ID, cfg)
	require.NoError(t, err)
	assert.Equal(t, datastore.MembershipCalc, matrix.Type)

	topsis, err := p.EvaluateTOPSIS(matrix.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, datastore.MultiCriteria, topsis.Type)

	scores := topsis.Payload.(*evaluate.Scores)
	assert.Equal(t, 1, scores.Rank[0], "alpha dominates after polarity adjustment")

	graded, err := p.AssessGrade(topsis.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, datastore.BinarySemantic, graded.Type)

	grades := graded.Payload.(*evaluate.Grades)
	assert.GreaterOrEqual(t, grades.Grade[0], grades.Grade[2])

	// Lineage: raw -> adjusted -> membership -> scores -> grades.
	chain, err := p.Store().DependencyChain(graded.ID)
	require.NoError(t, err)
	assert.False(t, chain.Truncated)
	require.Len(t, chain.Resources, 5)
	assert.Equal(t, raw.ID, chain.Resources[0].ID)
	assert.Equal(t, graded.ID, chain.Resources[4].ID)
	for i, resource := range chain.Resources {
		assert.Equal(t, i, resource.Step)
	}

	csvText, err := p.ExportCSV(graded.URI())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(csvText, "alternative,characteristic,grade,alpha"))
}

func TestPipelineVIKORAndAutoDiscovery(t *testing.T) {
	p := newTestPipeline()

	raw, err := p.IngestCSV(suppliersCSV)
	require.NoError(t, err)

	cfg, err := p.GenerateMembershipConfig(raw.ID, 3)
	require.NoError(t, err)

	matrix, err := p.CalculateMembership(raw.ID, cfg)
	require.NoError(t, err)

	// Empty id discovers the latest membership matrix.
	vikor, err := p.EvaluateVIKOR("", nil, 0.5)
	require.NoError(t, err)
	assert.Equal(t, matrix.ID, vikor.ParentID)

	scores := vikor.Payload.(*evaluate.Scores)
	assert.Equal(t, evaluate.MethodVIKOR, scores.Method)
	assert.True(t, scores.Ascending)

	// Empty id discovers the latest evaluation result too.
	graded, err := p.AssessGrade("", 3)
	require.NoError(t, err)
	assert.Equal(t, vikor.ID, graded.ParentID)
}

func TestPipelineAutoDiscoveryWithEmptyStore(t *testing.T) {
	p := newTestPipeline()

	_, err := p.EvaluateTOPSIS("", nil)
	assert.True(t, errors.IsKind(err, errors.KindMissingInput))

	_, err = p.AssessGrade("", 3)
	assert.True(t, errors.IsKind(err, errors.KindMissingInput))
}

func TestPipelineStageTypeChecks(t *testing.T) {
	p := newTestPipeline()

	raw, err := p.IngestCSV(suppliersCSV)
	require.NoError(t, err)

	analysis, err := p.AnalyzeFields(raw.ID)
	require.NoError(t, err)

	// A field_analysis resource is not a dataset.
	_, err = p.AnalyzeFields(analysis.ID)
	assert.True(t, errors.IsKind(err, errors.KindMissingInput))

	_, _, err = p.AdjustPolarity(analysis.ID, nil)
	assert.True(t, errors.IsKind(err, errors.KindMissingInput))

	// Nor is it an evaluation input.
	_, err = p.EvaluateTOPSIS(analysis.ID, nil)
	assert.True(t, errors.IsKind(err, errors.KindMissingInput))

	// And a dataset is not an evaluation result.
	_, err = p.AssessGrade(raw.ID, 3)
	assert.True(t, errors.IsKind(err, errors.KindMissingInput))
}

func TestPipelineCalculateMembershipRejectsBadConfig(t *testing.T) {
	p := newTestPipeline()

	raw, err := p.IngestCSV(suppliersCSV)
	require.NoError(t, err)

	cfg := membership.Config{Levels: 1}
	_, err = p.CalculateMembership(raw.ID, cfg)
	assert.True(t, errors.IsKind(err, errors.KindConfigMismatch))
}

func TestPipelineTruncatedLineageAfterDelete(t *testing.T) {
	p := newTestPipeline()

	raw, err := p.IngestCSV(suppliersCSV)
	require.NoError(t, err)
	analysis, err := p.AnalyzeFields(raw.ID)
	require.NoError(t, err)

	assert.True(t, p.Store().Delete(raw.ID))

	chain, err := p.Store().DependencyChain(analysis.ID)
	require.NoError(t, err)
	assert.True(t, chain.Truncated)
	require.Len(t, chain.Resources, 1)
	assert.Equal(t, analysis.ID, chain.Resources[0].ID)
}
