package sqlite

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

	sqlQuery := `
	SELECT r.kind, r.name, r.source,
		   bm25(records_fts, 10.0, 1.0) AS score,
		   snippet(records_fts, 1, '**', '**', '...', 40) AS snippet
	FROM records_fts
	JOIN records r ON records_fts.rowid = r.id
	WHERE records_fts MATCH ?
	  AND (? = '' OR r.kind = ?)
	ORDER BY score ASC, r.name_normalized ASC
	LIMIT 50
	`

	rows, err := c.db.QueryContext(ctx, sqlQuery, toFTSQuery(query), string(kind), string(kind))
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

// toFTSQuery turns a freeform query into an FTS5 expression: quoted
// phrases are preserved, bare terms are quoted and joined with AND.
func toFTSQuery(query string) string {
	var terms []string
	fields := strings.FieldsFunc(query, func(r rune) bool { return r == ' ' || r == '\t' })
	var phrase []string
	inPhrase := false
	for _, f := range fields {
		switch {
		case strings.HasPrefix(f, `"`) && strings.HasSuffix(f, `"`) && len(f) > 1:
			terms = append(terms, f)
		case strings.HasPrefix(f, `"`):
			inPhrase = true
			phrase = []string{strings.TrimPrefix(f, `"`)}
		case inPhrase && strings.HasSuffix(f, `"`):
			inPhrase = false
			phrase = append(phrase, strings.TrimSuffix(f, `"`))
			terms = append(terms, `"`+strings.Join(phrase, " ")+`"`)
		case inPhrase:
			phrase = append(phrase, f)
		default:
			terms = append(terms, `"`+strings.ReplaceAll(f, `"`, "")+`"`)
		}
	}
	if inPhrase {
		terms = append(terms, `"`+strings.Join(phrase, " ")+`"`)
	}
	return strings.Join(terms, " AND ")
}
