package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/raphaelgruber/shiftcrack/internal/metrics"
)

// StatsInput defines the (empty) input schema for the stats tool.
type StatsInput struct{}

// NewStatsHandler creates the stats tool handler.
func NewStatsHandler(deps *Dependencies) mcp.ToolHandlerFor[StatsInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input StatsInput) (*mcp.CallToolResult, any, error) {
		collector := deps.Cipher.Metrics()
		if collector == nil {
			return JSONResult(metrics.Snapshot{}), nil, nil
		}
		return JSONResult(collector.Snapshot()), nil, nil
	}
}
