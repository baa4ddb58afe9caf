package kit

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tag(name string, trace *[]string) Middleware {
	return func(next Endpoint) Endpoint {
		return func(ctx context.Context, req any) (any, error) {
			*trace = append(*trace, name)
			return next(ctx, req)
		}
	}
}

func TestChain(t *testing.T) {
	var trace []string
	ep := Chain(tag("a", &trace), tag("b", &trace), tag("c", &trace))(func(context.Context, any) (any, error) {
		trace = append(trace, "endpoint")
		return "ok", nil
	})

	resp, err := ep(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "ok", resp)
	assert.Equal(t, []string{"a", "b", "c", "endpoint"}, trace)
}

func TestContext(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, "http", GetTransport(ctx))
	assert.Empty(t, GetRequestID(ctx))

	ctx = WithRequestID(WithTransport(ctx, "mcp"), "req-1")
	assert.Equal(t, "mcp", GetTransport(ctx))
	assert.Equal(t, "req-1", GetRequestID(ctx))
}

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	ok := Logging(logger, "normalize")(func(context.Context, any) (any, error) { return 1, nil })
	failing := Logging(logger, "normalize")(func(context.Context, any) (any, error) { return nil, errors.New("boom") })

	ctx := WithRequestID(context.Background(), "req-7")
	_, err := ok(ctx, nil)
	require.NoError(t, err)
	_, err = failing(ctx, nil)
	require.Error(t, err)

	out := buf.String()
	assert.Contains(t, out, "level=DEBUG msg=endpoint endpoint=normalize transport=http request_id=req-7")
	assert.Contains(t, out, "level=WARN msg=\"endpoint failed\"")
	assert.Contains(t, out, "error=boom")
}

func TestMCPHandler(t *testing.T) {
	var seen context.Context
	h := MCPHandler(func(ctx context.Context, req any) (any, error) {
		seen = ctx
		if req.(string) == "bad" {
			return nil, errors.New("rejected")
		}
		return map[string]string{"echo": req.(string)}, nil
	}, func(req mcp.CallToolRequest) (*MCPDecodeResult, error) {
		v, ok := req.GetArguments()["value"].(string)
		if !ok {
			return nil, errors.New("value is required")
		}
		return &MCPDecodeResult{Request: v}, nil
	})

	call := func(args map[string]any) *mcp.CallToolResult {
		var req mcp.CallToolRequest
		req.Params.Name = "echo"
		req.Params.Arguments = args
		res, err := h(context.Background(), req)
		require.NoError(t, err)
		require.Len(t, res.Content, 1)
		return res
	}

	res := call(map[string]any{"value": "hi"})
	assert.False(t, res.IsError)
	assert.JSONEq(t, `{"echo":"hi"}`, res.Content[0].(mcp.TextContent).Text)
	assert.Equal(t, "mcp", GetTransport(seen))
	assert.NotEmpty(t, GetRequestID(seen))

	res = call(map[string]any{"value": "bad"})
	assert.True(t, res.IsError)
	assert.Equal(t, "rejected", res.Content[0].(mcp.TextContent).Text)

	res = call(map[string]any{})
	assert.True(t, res.IsError)
	assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "invalid arguments")
}
