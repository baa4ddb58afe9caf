package main

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/hazyhaar/scoli/pkg/api"
)

func newMCPCommand(rootOpts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the normalization tools over MCP on stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			srv := newMCPServer(rootOpts)
			rootOpts.logger.Debug("mcp server on stdio")
			return server.ServeStdio(srv)
		},
	}
}

func newMCPServer(rootOpts *rootOptions) *server.MCPServer {
	srv := server.NewMCPServer("scoli", version, server.WithToolCapabilities(false))
	api.RegisterMCPTools(srv, rootOpts.logger)
	return srv
}
