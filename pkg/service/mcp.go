package service

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/dataspine/mcda-go/pkg/datastore"
	"github.com/dataspine/mcda-go/pkg/pipeline"
	"github.com/dataspine/mcda-go/pkg/tools"
)

// MCPBroker exposes the analysis pipeline over MCP, either on stdio or as an
// SSE endpoint.  Stored resources are also readable through the data://{id}
// resource template.
type MCPBroker struct {
	pipeline *pipeline.Pipeline
	srv      *server.MCPServer
	sse      *server.SSEServer
}

func NewMCPBroker(p *pipeline.Pipeline) *MCPBroker {
	mcpSrv := server.NewMCPServer(
		"mcda-analyzer",
		"1.0.0",
		server.WithLogging(),
		server.WithResourceCapabilities(true, true),
		server.WithToolCapabilities(true),
	)

	tools.RegisterAnalysisTools(mcpSrv, p)

	mcpSrv.AddResourceTemplate(
		mcp.NewResourceTemplate(
			datastore.URIScheme+"{id}",
			"Stored analysis resource",
			mcp.WithTemplateDescription("Any resource created by the analysis pipeline, rendered as JSON"),
			mcp.WithTemplateMIMEType("application/json"),
		),
		readResource(p),
	)

	return &MCPBroker{
		pipeline: p,
		srv:      mcpSrv,
		sse:      server.NewSSEServer(mcpSrv),
	}
}

// ServeStdio blocks serving MCP on stdin/stdout.
func (b *MCPBroker) ServeStdio() error {
	return server.ServeStdio(b.srv)
}

// Start blocks serving MCP over SSE on addr.
func (b *MCPBroker) Start(addr string) error {
	return b.sse.Start(addr)
}

func (b *MCPBroker) Server() http.Handler {
	return b.sse
}

func readResource(p *pipeline.Pipeline) server.ResourceTemplateHandlerFunc {
	return func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		resource, err := p.Store().Get(req.Params.URI)
		if err != nil {
			return nil, err
		}

		body, err := json.Marshal(map[string]any{
			"id":        resource.ID,
			"type":      resource.Type,
			"step":      resource.Step,
			"parent_id": resource.ParentID,
			"metadata":  resource.Metadata,
			"payload":   resource.Payload,
		})
		if err != nil {
			return nil, err
		}

		return []mcp.ResourceContents{
			&mcp.TextResourceContents{
				URI:      resource.URI(),
				MIMEType: "application/json",
				Text:     string(body),
			},
		}, nil
	}
}
