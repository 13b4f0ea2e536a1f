package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/dataspine/mcda-go/pkg/datastore"
	"github.com/dataspine/mcda-go/pkg/evaluate"
	"github.com/dataspine/mcda-go/pkg/pipeline"
)

func registerEvaluationTools(srv *server.MCPServer, p *pipeline.Pipeline) {
	srv.AddTool(buildEvaluateTOPSISTool(), handleEvaluateTOPSIS(p))
	srv.AddTool(buildEvaluateVIKORTool(), handleEvaluateVIKOR(p))
	srv.AddTool(buildAssessGradeTool(), handleAssessGrade(p))
}

func buildEvaluateTOPSISTool() mcp.Tool {
	return mcp.NewTool(
		"evaluate_topsis",
		mcp.WithDescription("Ranks alternatives by TOPSIS relative closeness to the ideal solution. Accepts a membership_calc or raw_data resource; omit the id to use the most recent membership matrix."),
		mcp.WithString("id",
			mcp.Description("Resource id or data:// URI; omit to auto-discover the latest membership matrix"),
		),
		mcp.WithArray("weights",
			mcp.Description("Criterion weights in criterion order; omit for equal weights"),
		),
	)
}

func buildEvaluateVIKORTool() mcp.Tool {
	return mcp.NewTool(
		"evaluate_vikor",
		mcp.WithDescription("Ranks alternatives by the VIKOR compromise index Q (lower is better). Accepts a membership_calc or raw_data resource; omit the id to use the most recent membership matrix."),
		mcp.WithString("id",
			mcp.Description("Resource id or data:// URI; omit to auto-discover the latest membership matrix"),
		),
		mcp.WithArray("weights",
			mcp.Description("Criterion weights in criterion order; omit for equal weights"),
		),
		mcp.WithNumber("v",
			mcp.Description("Compromise weight between group utility and individual regret, in [0, 1] (default 0.5)"),
		),
	)
}

func buildAssessGradeTool() mcp.Tool {
	return mcp.NewTool(
		"assess_grade",
		mcp.WithDescription("Converts evaluation scores into discrete grades with a signed offset per alternative. Omit the id to use the most recent evaluation result."),
		mcp.WithString("id",
			mcp.Description("Resource id or data:// URI of a multi_criteria result; omit to auto-discover the latest"),
		),
		mcp.WithNumber("levels",
			mcp.Description("Number of grade levels (default 5)"),
		),
	)
}

func handleEvaluateTOPSIS(p *pipeline.Pipeline) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := req.GetArguments()
		id, _ := args["id"].(string)

		weights, err := weightsArg(args, "weights")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		resource, err := p.EvaluateTOPSIS(id, weights)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return scoresResult(resource)
	}
}

func handleEvaluateVIKOR(p *pipeline.Pipeline) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := req.GetArguments()
		id, _ := args["id"].(string)

		weights, err := weightsArg(args, "weights")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		resource, err := p.EvaluateVIKOR(id, weights, floatArg(args, "v", 0.5))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return scoresResult(resource)
	}
}

func handleAssessGrade(p *pipeline.Pipeline) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := req.GetArguments()
		id, _ := args["id"].(string)

		resource, err := p.AssessGrade(id, intArg(args, "levels", 5))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		summary := resourceSummary(resource.ID, resource.URI(), string(resource.Type), resource.Step)
		summary["grades"] = resource.Payload
		return jsonResult(summary)
	}
}

func scoresResult(resource *datastore.Resource) (*mcp.CallToolResult, error) {
	summary := resourceSummary(resource.ID, resource.URI(), string(resource.Type), resource.Step)
	if scores, ok := resource.Payload.(*evaluate.Scores); ok {
		summary["scores"] = scores
	}
	return jsonResult(summary)
}
