package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/dataspine/mcda-go/pkg/analyze"
	"github.com/dataspine/mcda-go/pkg/pipeline"
)

func registerAnalysisTools(srv *server.MCPServer, p *pipeline.Pipeline) {
	srv.AddTool(buildAnalyzeFieldsTool(), handleAnalyzeFields(p))
	srv.AddTool(buildAdjustPolarityTool(), handleAdjustPolarity(p))
	srv.AddTool(buildGenerateMembershipConfigTool(), handleGenerateMembershipConfig(p))
	srv.AddTool(buildValidateMembershipConfigTool(), handleValidateMembershipConfig(p))
	srv.AddTool(buildCalculateMembershipTool(), handleCalculateMembership(p))
}

func buildAnalyzeFieldsTool() mcp.Tool {
	return mcp.NewTool(
		"analyze_fields",
		mcp.WithDescription("Computes descriptive statistics for every field of a dataset (distribution moments and percentiles for numeric fields, frequencies and entropy for text fields) plus polarity proposals, stored as a field_analysis resource."),
		mcp.WithString("id",
			mcp.Description("Resource id or data:// URI of a raw_data dataset"),
			mcp.Required(),
		),
	)
}

func buildAdjustPolarityTool() mcp.Tool {
	return mcp.NewTool(
		"adjust_polarity",
		mcp.WithDescription("Rewrites cost-oriented fields so that larger is always better, either from explicit per-field directions or from field-name heuristics. Stores the adjusted dataset as a new raw_data resource."),
		mcp.WithString("id",
			mcp.Description("Resource id or data:// URI of a raw_data dataset"),
			mcp.Required(),
		),
		mcp.WithObject("polarities",
			mcp.Description("Explicit per-field direction map, e.g. {\"cost\": \"cost\", \"quality\": \"benefit\"}; omit to use name heuristics"),
		),
	)
}

func buildGenerateMembershipConfigTool() mcp.Tool {
	return mcp.NewTool(
		"generate_membership_config",
		mcp.WithDescription("Derives a starting membership configuration from a dataset: evenly spaced threshold ladders per numeric field and equal weights."),
		mcp.WithString("id",
			mcp.Description("Resource id or data:// URI of a raw_data dataset"),
			mcp.Required(),
		),
		mcp.WithNumber("levels",
			mcp.Description("Number of fuzzy levels (default 5, minimum 2)"),
		),
	)
}

func buildValidateMembershipConfigTool() mcp.Tool {
	return mcp.NewTool(
		"validate_membership_config",
		mcp.WithDescription("Checks a membership configuration without storing anything: level count, strictly increasing threshold ladders, weights summing to 1."),
		mcp.WithObject("config",
			mcp.Description("Membership configuration object or JSON-encoded string"),
			mcp.Required(),
		),
	)
}

func buildCalculateMembershipTool() mcp.Tool {
	return mcp.NewTool(
		"calculate_membership",
		mcp.WithDescription("Computes per-alternative, per-criterion fuzzy membership degrees under a validated configuration and stores the matrix as a membership_calc resource."),
		mcp.WithString("id",
			mcp.Description("Resource id or data:// URI of a raw_data dataset"),
			mcp.Required(),
		),
		mcp.WithObject("config",
			mcp.Description("Membership configuration object or JSON-encoded string"),
			mcp.Required(),
		),
	)
}

func handleAnalyzeFields(p *pipeline.Pipeline) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, _ := req.GetArguments()["id"].(string)
		if id == "" {
			return nil, fmt.Errorf("id parameter is required")
		}

		resource, err := p.AnalyzeFields(id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		summary := resourceSummary(resource.ID, resource.URI(), string(resource.Type), resource.Step)
		summary["report"] = resource.Payload
		return jsonResult(summary)
	}
}

func handleAdjustPolarity(p *pipeline.Pipeline) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := req.GetArguments()

		id, _ := args["id"].(string)
		if id == "" {
			return nil, fmt.Errorf("id parameter is required")
		}

		var explicit map[string]analyze.Polarity
		if raw, ok := args["polarities"].(map[string]any); ok {
			explicit = make(map[string]analyze.Polarity, len(raw))
			for field, value := range raw {
				direction, _ := value.(string)
				switch direction {
				case "benefit":
					explicit[field] = analyze.Benefit
				case "cost":
					explicit[field] = analyze.Cost
				default:
					return nil, fmt.Errorf("polarity for field %q must be benefit or cost, got %q", field, direction)
				}
			}
		}

		resource, decisions, err := p.AdjustPolarity(id, explicit)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		summary := resourceSummary(resource.ID, resource.URI(), string(resource.Type), resource.Step)
		summary["decisions"] = decisions
		return jsonResult(summary)
	}
}

func handleGenerateMembershipConfig(p *pipeline.Pipeline) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := req.GetArguments()

		id, _ := args["id"].(string)
		if id == "" {
			return nil, fmt.Errorf("id parameter is required")
		}

		cfg, err := p.GenerateMembershipConfig(id, intArg(args, "levels", 5))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return jsonResult(cfg)
	}
}

func handleValidateMembershipConfig(p *pipeline.Pipeline) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cfg, ok := configArg(req.GetArguments(), "config")
		if !ok {
			return nil, fmt.Errorf("config parameter is required and must be a configuration object")
		}
		return jsonResult(p.ValidateMembershipConfig(cfg))
	}
}

func handleCalculateMembership(p *pipeline.Pipeline) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := req.GetArguments()

		id, _ := args["id"].(string)
		if id == "" {
			return nil, fmt.Errorf("id parameter is required")
		}

		cfg, ok := configArg(args, "config")
		if !ok {
			return nil, fmt.Errorf("config parameter is required and must be a configuration object")
		}

		resource, err := p.CalculateMembership(id, cfg)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return jsonResult(resourceSummary(resource.ID, resource.URI(), string(resource.Type), resource.Step))
	}
}
