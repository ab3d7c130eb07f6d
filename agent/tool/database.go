package tool

import (
	"context"

	contractx "github.com/tanpawarit/Chinook-Music-Store-Supervisor/agent/contract"
)

type DatabaseSearchOutput struct {
	Query string  `json:"query"`
	Rows  [][]any `json:"rows"`
}

func (g *Gateway) executeDatabaseSearch(ctx context.Context, tool string, args map[string]any) (contractx.ToolResult, error) {
	rawQuery, ok := args["query"]
	if !ok {
		return contractx.ToolResult{Tool: tool, Error: "query is required"}, nil
	}
	query, err := coerceString(rawQuery)
	if err != nil {
		return contractx.ToolResult{Tool: tool, Error: "query must be a string"}, nil
	}

	rows, err := g.store.AdHocQuery(ctx, query)
	if err != nil {
		return contractx.ToolResult{Tool: tool, Error: err.Error()}, nil
	}

	return contractx.ToolResult{
		Tool: tool,
		Result: DatabaseSearchOutput{
			Query: query,
			Rows:  rows,
		},
	}, nil
}
