package tools

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/raphaelgruber/shiftcrack/internal/cipher"
	"github.com/raphaelgruber/shiftcrack/internal/frequency"
)

// ShiftInput defines the input schema for the encrypt and decrypt tools.
type ShiftInput struct {
	Text  string `json:"text" jsonschema:"Text to transform; non-Cyrillic characters are kept"`
	Shift int    `json:"shift" jsonschema:"Shift key from -31 to 31"`
}

// ShiftResult is the response from the encrypt and decrypt tools.
type ShiftResult struct {
	Shift int    `json:"shift"`
	Text  string `json:"text"`
}

// FrequencyInput defines the input schema for the frequency tool.
type FrequencyInput struct {
	Text string `json:"text" jsonschema:"Text to analyze"`
}

// FrequencyResult is the response from the frequency tool.
type FrequencyResult struct {
	Letters int               `json:"letters"`
	Entries []frequency.Entry `json:"entries"`
}

// NewEncryptHandler creates the encrypt tool handler.
func NewEncryptHandler(deps *Dependencies) mcp.ToolHandlerFor[ShiftInput, any] {
	return newShiftHandler(deps, "encrypt", deps.Cipher.EncryptText)
}

// NewDecryptHandler creates the decrypt tool handler.
func NewDecryptHandler(deps *Dependencies) mcp.ToolHandlerFor[ShiftInput, any] {
	return newShiftHandler(deps, "decrypt", deps.Cipher.DecryptText)
}

func newShiftHandler(deps *Dependencies, name string, fn func(string, int) (string, error)) mcp.ToolHandlerFor[ShiftInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input ShiftInput) (*mcp.CallToolResult, any, error) {
		if !cipher.ValidShift(input.Shift) {
			return ErrorResult(
				fmt.Sprintf("Shift %d is out of range", input.Shift),
				fmt.Sprintf("Use a shift between %d and %d", cipher.MinShift, cipher.MaxShift),
			), nil, nil
		}

		out, err := fn(input.Text, input.Shift)
		if err != nil {
			deps.Logger.Error(name+" failed", "error", err)
			return ServiceErrorResult(name, err), nil, nil
		}

		deps.Logger.Debug(name+" tool called", "shift", input.Shift, "bytes", len(input.Text))
		return JSONResult(ShiftResult{Shift: input.Shift, Text: out}), nil, nil
	}
}

// NewFrequencyHandler creates the frequency tool handler.
func NewFrequencyHandler(deps *Dependencies) mcp.ToolHandlerFor[FrequencyInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input FrequencyInput) (*mcp.CallToolResult, any, error) {
		entries := deps.Cipher.Frequency(input.Text)

		letters := 0
		for _, e := range entries {
			letters += e.Count
		}
		return JSONResult(FrequencyResult{Letters: letters, Entries: entries}), nil, nil
	}
}
