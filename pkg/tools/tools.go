package tools

// MCP tool surface for the analysis pipeline.  Builders describe schemas
// only; handlers delegate to the pipeline and render compact JSON results.

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/dataspine/mcda-go/pkg/membership"
	"github.com/dataspine/mcda-go/pkg/pipeline"
)

// RegisterAnalysisTools attaches the full tool set to an MCP server, all
// handlers sharing the one pipeline (and through it, the one store).
func RegisterAnalysisTools(srv *server.MCPServer, p *pipeline.Pipeline) {
	registerStoreTools(srv, p)
	registerAnalysisTools(srv, p)
	registerEvaluationTools(srv, p)
}

// jsonResult marshals v as a tool text result.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}

// resourceSummary is the common response shape for tools that create a
// resource.
func resourceSummary(id, uri, typ string, step int) map[string]any {
	return map[string]any{
		"resource_id": id,
		"uri":         uri,
		"type":        typ,
		"step":        step,
	}
}

// floatArg reads a number argument that may arrive as float64 or string.
func floatArg(args map[string]any, key string, fallback float64) float64 {
	switch v := args[key].(type) {
	case float64:
		return v
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

// intArg reads an integer argument that may arrive as float64 or string.
func intArg(args map[string]any, key string, fallback int) int {
	switch v := args[key].(type) {
	case float64:
		return int(v)
	case string:
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

// weightsArg reads an optional weight vector passed either as a JSON array
// or as a JSON-encoded string.  An absent argument is a nil vector (equal
// weights downstream); a present but malformed one is reported, not
// swallowed.
func weightsArg(args map[string]any, key string) ([]float64, error) {
	raw, present := args[key]
	if !present || raw == nil {
		return nil, nil
	}

	switch v := raw.(type) {
	case []any:
		weights := make([]float64, 0, len(v))
		for _, item := range v {
			f, ok := item.(float64)
			if !ok {
				return nil, fmt.Errorf("weights must be an array of numbers, got element %T", item)
			}
			weights = append(weights, f)
		}
		return weights, nil
	case string:
		var weights []float64
		if err := json.Unmarshal([]byte(v), &weights); err != nil {
			return nil, fmt.Errorf("weights string must be a JSON array of numbers: %w", err)
		}
		return weights, nil
	default:
		return nil, fmt.Errorf("weights must be an array of numbers, got %T", raw)
	}
}

// configArg decodes a membership configuration passed either as an object
// or as a JSON-encoded string.
func configArg(args map[string]any, key string) (membership.Config, bool) {
	var raw []byte

	switch v := args[key].(type) {
	case map[string]any:
		raw, _ = json.Marshal(v)
	case string:
		raw = []byte(v)
	default:
		return membership.Config{}, false
	}

	var cfg membership.Config
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return membership.Config{}, false
	}
	return cfg, true
}
