// ABOUTME: Ranking shared by backends for similarity search results
// ABOUTME: Collapses per-embedding candidates to distinct notes, best first
package storage

import (
	"sort"

	"github.com/harper/ideanotes/internal/models"
)

// Rank takes one candidate per stored embedding and produces the final
// result order: distinct notes, each keeping its smallest distance,
// sorted by ascending distance with ties broken by updated_at
// descending, truncated to limit. A nil/empty input yields an empty
// slice, never nil, so callers can range and marshal it uniformly.
func Rank(candidates []models.SearchResult, limit int) []models.SearchResult {
	best := make(map[string]models.SearchResult, len(candidates))
	for _, c := range candidates {
		prev, ok := best[c.Note.ID]
		if !ok || c.Distance < prev.Distance {
			best[c.Note.ID] = c
		}
	}

	results := make([]models.SearchResult, 0, len(best))
	for _, r := range best {
		results = append(results, r)
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Distance != results[j].Distance {
			return results[i].Distance < results[j].Distance
		}
		return results[i].Note.UpdatedAt > results[j].Note.UpdatedAt
	})

	if limit >= 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}
