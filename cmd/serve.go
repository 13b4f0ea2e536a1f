package cmd

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dataspine/mcda-go/pkg/datastore"
	"github.com/dataspine/mcda-go/pkg/pipeline"
	"github.com/dataspine/mcda-go/pkg/service"
)

/*
serveCmd exposes the analyzer over one of the supported transports: MCP on
stdio, MCP over SSE, or the read-only HTTP export API.
*/
var (
	serveAddr string

	serveCmd = &cobra.Command{
		Use:       "serve [stdio|sse|http]",
		Short:     "Serve the analysis tools",
		Long:      longServe,
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"stdio", "sse", "http"},
		RunE: func(cmd *cobra.Command, args []string) error {
			p := pipeline.New(datastore.New())

			switch args[0] {
			case "stdio":
				return service.NewMCPBroker(p).ServeStdio()
			case "sse":
				addr := serveAddr
				if addr == "" {
					addr = viper.GetString("server.mcp.addr")
				}
				log.Info("starting MCP SSE server", "addr", addr)
				return service.NewMCPBroker(p).Start(addr)
			case "http":
				addr := serveAddr
				if addr == "" {
					addr = viper.GetString("server.http.addr")
				}
				log.Info("starting export server", "addr", addr)
				return service.NewExportServer(p).Run(addr)
			}

			return fmt.Errorf("unknown transport %q", args[0])
		},
	}
)

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

var longServe = `
Serve the analyzer on one of three transports.

  stdio  MCP over stdin/stdout, for editor and agent integrations.
  sse    MCP over server-sent events.
  http   Read-only HTTP API over the resource store, including CSV export.
`
