package tools

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Count is the number of tools RegisterAll adds.
const Count = 6

// RegisterAll registers all tools with the MCP server.
// This is called from main after server creation but before Run().
func RegisterAll(server *mcp.Server, deps *Dependencies) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "encrypt",
		Description: "Encrypt Cyrillic text with a shift cipher (shift -31..31)",
	}, NewEncryptHandler(deps))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "decrypt",
		Description: "Decrypt Cyrillic shift-cipher text with a known shift (-31..31)",
	}, NewDecryptHandler(deps))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "frequency",
		Description: "Letter frequency distribution of Cyrillic text, case-insensitive",
	}, NewFrequencyHandler(deps))

	// Crack with a reference picks the key; without one it lists all
	// candidates and select_shift completes the recovery.
	mcp.AddTool(server, &mcp.Tool{
		Name:        "crack",
		Description: "Recover the shift key of ciphertext by brute force, scored against a reference text or listed for selection",
	}, NewCrackHandler(deps))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "select_shift",
		Description: "Complete interactive key recovery by choosing one of the candidate shifts",
	}, NewSelectShiftHandler(deps))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "stats",
		Description: "Runtime statistics for cipher operations",
	}, NewStatsHandler(deps))
}
