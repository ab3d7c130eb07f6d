package store

import (
	"context"
	"fmt"
	"strings"

	contractx "github.com/tanpawarit/Chinook-Music-Store-Supervisor/agent/contract"
)

// CatalogSearch returns up to 5 (TrackId, Name) pairs whose genre name
// matches exactly (case-sensitive). Results are ordered ascending by TrackId
// so repeated calls are stable. A genre with no tracks yields an empty slice,
// not an error.
func (s *Store) CatalogSearch(ctx context.Context, genre string) ([]contractx.TrackHit, error) {
	if strings.TrimSpace(genre) == "" {
		return nil, fmt.Errorf("%w: genre must be a non-empty string", contractx.ErrInvalidArgument)
	}

	var tracks []Track
	err := s.db.NewSelect().
		Model(&tracks).
		ColumnExpr(`t."TrackId", t."Name"`).
		Join(`JOIN "Genre" AS g ON g."GenreId" = t."GenreId"`).
		Where(`g."Name" = ?`, genre).
		OrderExpr(`t."TrackId" ASC`).
		Limit(catalogResultLimit).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: catalog search: %v", contractx.ErrStore, err)
	}

	hits := make([]contractx.TrackHit, 0, len(tracks))
	for _, t := range tracks {
		hits = append(hits, contractx.TrackHit{
			TrackID: t.TrackID,
			Name:    t.Name,
		})
	}
	return hits, nil
}
