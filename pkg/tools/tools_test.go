package tools

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dataspine/mcda-go/pkg/datastore"
	"github.com/dataspine/mcda-go/pkg/pipeline"
)

const toolTestCSV = "supplier,quality_score,yield\nalpha,9,80\nbeta,2,10\n"

func callRequest(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func textContent(t *testing.T, result *mcp.CallToolResult) string {
	require.Len(t, result.Content, 1)
	text, ok := mcp.AsTextContent(result.Content[0])
	require.True(t, ok)
	return text.Text
}

func TestUploadCSVHandler(t *testing.T) {
	p := pipeline.New(datastore.New())

	result, err := handleUploadCSV(p)(context.Background(), callRequest(map[string]any{
		"csv_text": toolTestCSV,
	}))
	require.NoError(t, err)
	require.False(t, result.IsError)

	var summary map[string]any
	require.NoError(t, json.Unmarshal([]byte(textContent(t, result)), &summary))
	assert.Equal(t, "raw_data", summary["type"])
	assert.Equal(t, "2 rows x 3 columns", summary["shape"])
	assert.Equal(t, float64(0), summary["step"])

	// Missing parameter is a handler error, not a tool result.
	_, err = handleUploadCSV(p)(context.Background(), callRequest(map[string]any{}))
	assert.Error(t, err)
}

func TestListAndDeleteHandlers(t *testing.T) {
	p := pipeline.New(datastore.New())
	raw, err := p.IngestCSV(toolTestCSV)
	require.NoError(t, err)

	result, err := handleListResources(p)(context.Background(), callRequest(map[string]any{}))
	require.NoError(t, err)

	var listed []map[string]any
	require.NoError(t, json.Unmarshal([]byte(textContent(t, result)), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, raw.ID, listed[0]["resource_id"])

	result, err = handleDeleteResource(p)(context.Background(), callRequest(map[string]any{
		"id": raw.URI(),
	}))
	require.NoError(t, err)

	var deleted map[string]any
	require.NoError(t, json.Unmarshal([]byte(textContent(t, result)), &deleted))
	assert.Equal(t, true, deleted["deleted"])
	assert.Equal(t, 0, p.Store().Len())
}

func TestEvaluationHandlersEndToEnd(t *testing.T) {
	p := pipeline.New(datastore.New())
	raw, err := p.IngestCSV(toolTestCSV)
	require.NoError(t, err)

	cfgResult, err := handleGenerateMembershipConfig(p)(context.Background(), callRequest(map[string]any{
		"id":     raw.ID,
		"levels": float64(3),
	}))
	require.NoError(t, err)

	var cfg map[string]any
	require.NoError(t, json.Unmarshal([]byte(textContent(t, cfgResult)), &cfg))

	calcResult, err := handleCalculateMembership(p)(context.Background(), callRequest(map[string]any{
		"id":     raw.ID,
		"config": cfg,
	}))
	require.NoError(t, err)
	require.False(t, calcResult.IsError)

	// Weights passed as a JSON array, id omitted: auto-discovery.
	topsisResult, err := handleEvaluateTOPSIS(p)(context.Background(), callRequest(map[string]any{
		"weights": []any{0.5, 0.5},
	}))
	require.NoError(t, err)
	require.False(t, topsisResult.IsError)

	var summary map[string]any
	require.NoError(t, json.Unmarshal([]byte(textContent(t, topsisResult)), &summary))
	assert.Equal(t, "multi_criteria", summary["type"])

	gradeResult, err := handleAssessGrade(p)(context.Background(), callRequest(map[string]any{}))
	require.NoError(t, err)
	require.False(t, gradeResult.IsError)
}

func TestEvaluationHandlersRejectMalformedWeights(t *testing.T) {
	p := pipeline.New(datastore.New())

	// A weight vector with a non-numeric element must fail the call, not
	// fall back to equal weights.
	for name, handler := range map[string]func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error){
		"topsis": handleEvaluateTOPSIS(p),
		"vikor":  handleEvaluateVIKOR(p),
	} {
		result, err := handler(context.Background(), callRequest(map[string]any{
			"weights": []any{0.5, "heavy"},
		}))
		require.NoError(t, err, name)
		assert.True(t, result.IsError, name)
		assert.Contains(t, textContent(t, result), "weights", name)

		result, err = handler(context.Background(), callRequest(map[string]any{
			"weights": "not json",
		}))
		require.NoError(t, err, name)
		assert.True(t, result.IsError, name)
	}
}

func TestHandlersReportDomainErrorsAsToolErrors(t *testing.T) {
	p := pipeline.New(datastore.New())

	result, err := handleAnalyzeFields(p)(context.Background(), callRequest(map[string]any{
		"id": "raw_deadbeef_000000_0",
	}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestValidateConfigHandler(t *testing.T) {
	p := pipeline.New(datastore.New())

	result, err := handleValidateMembershipConfig(p)(context.Background(), callRequest(map[string]any{
		"config": `{"levels":1,"criteria":{},"weights":{}}`,
	}))
	require.NoError(t, err)

	var report map[string]any
	require.NoError(t, json.Unmarshal([]byte(textContent(t, result)), &report))
	assert.Equal(t, false, report["valid"])
}
