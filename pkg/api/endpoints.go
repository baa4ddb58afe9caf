package api

import (
	"context"
	"errors"
	"fmt"

	"github.com/hazyhaar/scoli/pkg/kit"
	"github.com/hazyhaar/scoli/pkg/schoolname"
)

// MaxBatch is the largest accepted batch.
const MaxBatch = 100

// errBadRequest marks requests rejected before any name is normalized.
var errBadRequest = errors.New("bad request")

// Shared request/response types used by both HTTP and MCP transports.

type normalizeReq struct {
	Name string
}

type batchReq struct {
	Names []string
}

// Result is the outcome for one name.
type Result struct {
	Input      string     `json:"input"`
	Normalized string     `json:"normalized,omitempty"`
	Error      *ErrorBody `json:"error,omitempty"`
}

// ErrorBody describes a malformed name.
type ErrorBody struct {
	Message string `json:"error"`
	Kind    string `json:"kind"`
	Pos     int    `json:"pos"`
	Char    string `json:"char"`
}

type batchResponse struct {
	Results []Result `json:"results"`
}

// errorBody reports the innermost cause. Pos is a rune offset into the name
// after quote-glyph and cedilla folding.
func errorBody(err error) *ErrorBody {
	var me *schoolname.MalformedInputError
	if !errors.As(err, &me) {
		return &ErrorBody{Message: err.Error()}
	}
	inner := me.Innermost()
	return &ErrorBody{
		Message: me.Error(),
		Kind:    inner.Kind.String(),
		Pos:     me.Offset(),
		Char:    string(inner.Char),
	}
}

func normalizeEndpoint() kit.Endpoint {
	return func(_ context.Context, request any) (any, error) {
		req := request.(*normalizeReq)
		out, err := schoolname.Normalize(req.Name)
		if err != nil {
			return nil, err
		}
		return Result{Input: req.Name, Normalized: out}, nil
	}
}

func batchEndpoint() kit.Endpoint {
	return func(_ context.Context, request any) (any, error) {
		req := request.(*batchReq)
		if len(req.Names) == 0 {
			return nil, fmt.Errorf("%w: names array is empty", errBadRequest)
		}
		if len(req.Names) > MaxBatch {
			return nil, fmt.Errorf("%w: too many names (max %d, got %d)", errBadRequest, MaxBatch, len(req.Names))
		}
		results := make([]Result, len(req.Names))
		for i, name := range req.Names {
			results[i].Input = name
			out, err := schoolname.Normalize(name)
			if err != nil {
				results[i].Error = errorBody(err)
				continue
			}
			results[i].Normalized = out
		}
		return batchResponse{Results: results}, nil
	}
}
