package postgres

import (
	"context"
	"fmt"
	"strings"

	"grimoire/internal/record"
	"grimoire/internal/store"
)

func (c *Client) Search(ctx context.Context, query string, kind record.Kind) ([]store.SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("query must not be empty")
	}

	sql := `
SELECT kind, name, source,
    ts_rank(search_vector, websearch_to_tsquery('english', $1)) AS score,
    ts_headline('english', coalesce(fields->>'description', ''), websearch_to_tsquery('english', $1),
        'MaxFragments=2, MaxWords=40, MinWords=10, StartSel=**, StopSel=**') AS snippet
FROM records
WHERE search_vector @@ websearch_to_tsquery('english', $1)
  AND ($2 = '' OR kind = $2)
ORDER BY score DESC, name_normalized ASC
LIMIT 50
`

	rows, err := c.pool.Query(ctx, sql, query, string(kind))
	if err != nil {
		return nil, fmt.Errorf("searching records: %w", err)
	}
	defer rows.Close()

	results := []store.SearchResult{}
	for rows.Next() {
		var r store.SearchResult
		if err := rows.Scan(&r.Kind, &r.Name, &r.Source, &r.Score, &r.Snippet); err != nil {
			return nil, fmt.Errorf("scanning search result: %w", err)
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating search results: %w", err)
	}
	return results, nil
}
