package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/dataspine/mcda-go/pkg/datastore"
	"github.com/dataspine/mcda-go/pkg/pipeline"
)

func registerStoreTools(srv *server.MCPServer, p *pipeline.Pipeline) {
	srv.AddTool(buildUploadCSVTool(), handleUploadCSV(p))
	srv.AddTool(buildListResourcesTool(), handleListResources(p))
	srv.AddTool(buildDeleteResourceTool(), handleDeleteResource(p))
	srv.AddTool(buildClearCacheTool(), handleClearCache(p))
	srv.AddTool(buildDependencyChainTool(), handleDependencyChain(p))
	srv.AddTool(buildExportCSVTool(), handleExportCSV(p))
}

func buildUploadCSVTool() mcp.Tool {
	return mcp.NewTool(
		"upload_csv",
		mcp.WithDescription("Parses CSV text into a tabular dataset and stores it as a new root resource. Returns the resource id to pass to later stages."),
		mcp.WithString("csv_text",
			mcp.Description("Complete CSV document including the header row"),
			mcp.Required(),
		),
	)
}

func buildListResourcesTool() mcp.Tool {
	return mcp.NewTool(
		"list_resources",
		mcp.WithDescription("Lists stored resources in creation order, optionally filtered by type."),
		mcp.WithString("type",
			mcp.Description("Resource type filter; omit for all"),
			mcp.Enum("raw_data", "field_analysis", "membership_calc", "multi_criteria", "binary_semantic", "other"),
		),
	)
}

func buildDeleteResourceTool() mcp.Tool {
	return mcp.NewTool(
		"delete_resource",
		mcp.WithDescription("Deletes a single resource by id or data:// URI. Descendants are kept; their dependency chains report as truncated."),
		mcp.WithString("id",
			mcp.Description("Resource id or data:// URI"),
			mcp.Required(),
		),
	)
}

func buildClearCacheTool() mcp.Tool {
	return mcp.NewTool(
		"clear_cache",
		mcp.WithDescription("Removes every stored resource and returns how many were dropped."),
	)
}

func buildDependencyChainTool() mcp.Tool {
	return mcp.NewTool(
		"resource_dependency_chain",
		mcp.WithDescription("Walks a resource's ancestry back to its root, oldest first. Sets truncated=true when an ancestor was deleted."),
		mcp.WithString("id",
			mcp.Description("Resource id or data:// URI to trace"),
			mcp.Required(),
		),
	)
}

func buildExportCSVTool() mcp.Tool {
	return mcp.NewTool(
		"export_csv",
		mcp.WithDescription("Flattens any stored resource payload to CSV text: datasets losslessly, other payload kinds via a tabular projection."),
		mcp.WithString("id",
			mcp.Description("Resource id or data:// URI"),
			mcp.Required(),
		),
	)
}

func handleUploadCSV(p *pipeline.Pipeline) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		csvText, _ := req.GetArguments()["csv_text"].(string)
		if csvText == "" {
			return nil, fmt.Errorf("csv_text parameter is required")
		}

		resource, err := p.IngestCSV(csvText)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		summary := resourceSummary(resource.ID, resource.URI(), string(resource.Type), resource.Step)
		summary["shape"] = resource.Metadata.Annotations["shape"]
		return jsonResult(summary)
	}
}

func handleListResources(p *pipeline.Pipeline) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		typ, _ := req.GetArguments()["type"].(string)

		resources := p.Store().List(datastore.ResourceType(typ))
		out := make([]map[string]any, 0, len(resources))
		for _, resource := range resources {
			entry := resourceSummary(resource.ID, resource.URI(), string(resource.Type), resource.Step)
			entry["operation"] = resource.Metadata.Operation
			entry["created_at"] = resource.Metadata.CreatedAt
			if resource.ParentID != "" {
				entry["parent_id"] = resource.ParentID
			}
			if len(resource.Metadata.Annotations) > 0 {
				entry["annotations"] = resource.Metadata.Annotations
			}
			out = append(out, entry)
		}
		return jsonResult(out)
	}
}

func handleDeleteResource(p *pipeline.Pipeline) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, _ := req.GetArguments()["id"].(string)
		if id == "" {
			return nil, fmt.Errorf("id parameter is required")
		}

		return jsonResult(map[string]any{
			"id":      id,
			"deleted": p.Store().Delete(id),
		})
	}
}

func handleClearCache(p *pipeline.Pipeline) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return jsonResult(map[string]any{"cleared": p.Store().Clear()})
	}
}

func handleDependencyChain(p *pipeline.Pipeline) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, _ := req.GetArguments()["id"].(string)
		if id == "" {
			return nil, fmt.Errorf("id parameter is required")
		}

		chain, err := p.Store().DependencyChain(id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		links := make([]map[string]any, 0, len(chain.Resources))
		for _, resource := range chain.Resources {
			link := resourceSummary(resource.ID, resource.URI(), string(resource.Type), resource.Step)
			link["operation"] = resource.Metadata.Operation
			links = append(links, link)
		}
		return jsonResult(map[string]any{
			"chain":     links,
			"truncated": chain.Truncated,
		})
	}
}

func handleExportCSV(p *pipeline.Pipeline) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, _ := req.GetArguments()["id"].(string)
		if id == "" {
			return nil, fmt.Errorf("id parameter is required")
		}

		csvText, err := p.ExportCSV(id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(csvText), nil
	}
}
