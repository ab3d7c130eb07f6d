package tool

import (
	"context"
	"strings"

	contractx "github.com/tanpawarit/Chinook-Music-Store-Supervisor/agent/contract"
)

type CatalogSearchOutput struct {
	Genre  string               `json:"genre"`
	Tracks []contractx.TrackHit `json:"tracks"`
}

func (g *Gateway) executeCatalogSearch(ctx context.Context, tool string, args map[string]any) (contractx.ToolResult, error) {
	rawGenre, ok := args["genre"]
	if !ok {
		return contractx.ToolResult{Tool: tool, Error: "genre is required"}, nil
	}
	genre, err := coerceString(rawGenre)
	if err != nil {
		return contractx.ToolResult{Tool: tool, Error: "genre must be a string"}, nil
	}
	genre = strings.TrimSpace(genre)

	hits, err := g.store.CatalogSearch(ctx, genre)
	if err != nil {
		return contractx.ToolResult{Tool: tool, Error: err.Error()}, nil
	}

	return contractx.ToolResult{
		Tool: tool,
		Result: CatalogSearchOutput{
			Genre:  genre,
			Tracks: hits,
		},
	}, nil
}
