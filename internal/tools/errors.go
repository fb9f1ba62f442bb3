package tools

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/raphaelgruber/shiftcrack/internal/cipher"
	"github.com/raphaelgruber/shiftcrack/internal/service"
)

// ErrorResult creates a tool error result with optional recovery hint.
// If hint is non-empty, formats as "{msg}. {hint}".
// IsError lets the calling model see the failure and retry.
func ErrorResult(msg, hint string) *mcp.CallToolResult {
	text := msg
	if hint != "" {
		text = msg + ". " + hint
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
		IsError: true,
	}
}

// ServiceErrorResult turns a service error into a tool error with a hint
// for the sentinel errors callers can fix.
func ServiceErrorResult(op string, err error) *mcp.CallToolResult {
	switch {
	case errors.Is(err, service.ErrInvalidShift):
		return ErrorResult(fmt.Sprintf("%s failed: %v", op, err),
			fmt.Sprintf("Use a shift between %d and %d", cipher.MinShift, cipher.MaxShift))
	case errors.Is(err, service.ErrNoSelection):
		return ErrorResult("Key recovery failed: no valid shift selected",
			"Call crack without a reference, then select_shift with one of the listed shifts")
	default:
		return ErrorResult(op+" failed", err.Error())
	}
}

// TextResult creates a success result with text content.
func TextResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}
}

// JSONResult renders v as indented JSON.
func JSONResult(v any) *mcp.CallToolResult {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return ErrorResult("Failed to encode result", err.Error())
	}
	return TextResult(string(data))
}
