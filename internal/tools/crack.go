package tools

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/raphaelgruber/shiftcrack/internal/cipher"
	"github.com/raphaelgruber/shiftcrack/internal/recovery"
	"github.com/raphaelgruber/shiftcrack/internal/service"
)

// maxTop bounds the ranked list returned by crack.
const maxTop = recovery.CandidateCount

// CrackInput defines the input schema for the crack tool.
type CrackInput struct {
	Ciphertext string `json:"ciphertext" jsonschema:"Text encrypted with an unknown shift"`
	Reference  string `json:"reference,omitempty" jsonschema:"Sample plaintext with typical letter statistics; omit to list all candidates"`
	Top        int    `json:"top,omitempty" jsonschema:"Also return the N closest candidates (reference mode only)"`
}

// CrackResult is the response from the crack tool in reference mode.
type CrackResult struct {
	Shift     int               `json:"shift"`
	Canonical int               `json:"canonical_shift"`
	Text      string            `json:"text"`
	Score     float64           `json:"score"`
	Ranked    []recovery.Result `json:"ranked,omitempty"`
}

// CandidatesResult is the response from the crack tool without a reference.
type CandidatesResult struct {
	Candidates []recovery.Candidate `json:"candidates"`
	Next       string               `json:"next"`
}

// SelectShiftInput defines the input schema for the select_shift tool.
type SelectShiftInput struct {
	Ciphertext string `json:"ciphertext" jsonschema:"The same ciphertext passed to crack"`
	Shift      *int   `json:"shift,omitempty" jsonschema:"Chosen shift from -31 to 31"`
}

// NewCrackHandler creates the crack tool handler.
func NewCrackHandler(deps *Dependencies) mcp.ToolHandlerFor[CrackInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input CrackInput) (*mcp.CallToolResult, any, error) {
		if input.Top < 0 || input.Top > maxTop {
			return ErrorResult(fmt.Sprintf("Top must be 0-%d", maxTop), "Reduce top value"), nil, nil
		}

		if input.Reference == "" {
			return JSONResult(CandidatesResult{
				Candidates: recovery.Candidates(input.Ciphertext),
				Next:       "Call select_shift with the ciphertext and the shift whose text reads correctly",
			}), nil, nil
		}

		res, err := deps.Cipher.Crack(ctx, input.Ciphertext, service.CrackOptions{
			ReferenceText: input.Reference,
			Top:           input.Top,
		}, nil)
		if err != nil {
			deps.Logger.Error("crack failed", "error", err)
			return ServiceErrorResult("crack", err), nil, nil
		}

		deps.Logger.Info("crack completed", "run_id", res.ID, "shift", res.Shift, "score", res.Score)
		return JSONResult(CrackResult{
			Shift:     res.Shift,
			Canonical: cipher.Canonical(res.Shift),
			Text:      res.Text,
			Score:     res.Score,
			Ranked:    res.Ranked,
		}), nil, nil
	}
}

// NewSelectShiftHandler creates the select_shift tool handler.
// An absent or out-of-range shift means key recovery failed.
func NewSelectShiftHandler(deps *Dependencies) mcp.ToolHandlerFor[SelectShiftInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input SelectShiftInput) (*mcp.CallToolResult, any, error) {
		res, ok := recovery.Select(input.Ciphertext, input.Shift)
		if !ok {
			return ServiceErrorResult("select_shift", service.ErrNoSelection), nil, nil
		}

		deps.Logger.Debug("shift selected", "shift", res.Shift)
		return JSONResult(res), nil, nil
	}
}
