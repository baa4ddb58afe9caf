package api

import (
	"errors"
	"log/slog"

	"github.com/hazyhaar/scoli/pkg/kit"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// RegisterMCPTools registers the normalization tools on the server.
func RegisterMCPTools(srv *server.MCPServer, logger *slog.Logger) {
	tool, ep, decode := normalizeNameTool(logger)
	kit.RegisterMCPTool(srv, tool, ep, decode)
	tool, ep, decode = normalizeBatchTool(logger)
	kit.RegisterMCPTool(srv, tool, ep, decode)
}

type mcpDecoder = func(mcp.CallToolRequest) (*kit.MCPDecodeResult, error)

func normalizeNameTool(logger *slog.Logger) (mcp.Tool, kit.Endpoint, mcpDecoder) {
	tool := mcp.NewTool("normalize_name",
		mcp.WithDescription("Normalize a raw Romanian school name: title case with lowercase connectives, comma-below diacritics, compact abbreviations and „…” quotes."),
		mcp.WithString("name", mcp.Required(), mcp.Description("The raw school name")),
	)
	return tool, kit.Logging(logger, "normalize")(normalizeEndpoint()),
		func(req mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
			name, _ := req.GetArguments()["name"].(string)
			if name == "" {
				return nil, errors.New("name is required")
			}
			return &kit.MCPDecodeResult{Request: &normalizeReq{Name: name}}, nil
		}
}

func normalizeBatchTool(logger *slog.Logger) (mcp.Tool, kit.Endpoint, mcpDecoder) {
	tool := mcp.NewTool("normalize_batch",
		mcp.WithDescription("Normalize up to 100 raw Romanian school names. Each result carries either the normalized name or the error."),
		mcp.WithArray("names", mcp.Required(), mcp.WithStringItems(), mcp.Description("The raw school names")),
	)
	return tool, kit.Logging(logger, "normalize_batch")(batchEndpoint()),
		func(req mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
			raw, ok := req.GetArguments()["names"].([]any)
			if !ok {
				return nil, errors.New("names must be an array of strings")
			}
			names := make([]string, len(raw))
			for i, v := range raw {
				s, ok := v.(string)
				if !ok {
					return nil, errors.New("names must be an array of strings")
				}
				names[i] = s
			}
			return &kit.MCPDecodeResult{Request: &batchReq{Names: names}}, nil
		}
}
