package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"grimoire/internal/record"
	"grimoire/internal/store"
)

func (c *Client) UpsertRecord(ctx context.Context, in store.RecordInput) error {
	fieldsJSON, err := json.Marshal(in.Fields)
	if err != nil {
		return fmt.Errorf("marshaling fields: %w", err)
	}

	sql := `
INSERT INTO records (kind, name, name_normalized, source, source_normalized, fields, last_loaded)
VALUES ($1, $2, $3, $4, $5, $6, now())
ON CONFLICT (kind, name_normalized, source_normalized) DO UPDATE SET
    name = EXCLUDED.name,
    source = EXCLUDED.source,
    fields = EXCLUDED.fields,
    last_loaded = now()
`

	_, err = c.pool.Exec(ctx, sql,
		string(in.Kind),
		in.Name,
		strings.ToLower(in.Name),
		in.Source,
		strings.ToLower(in.Source),
		fieldsJSON,
	)
	if err != nil {
		return fmt.Errorf("upserting record: %w", err)
	}
	return nil
}

func (c *Client) GetRecord(ctx context.Context, kind record.Kind, name, source string) (*store.StoredRecord, error) {
	sql := `
SELECT kind, name, source, fields
FROM records
WHERE kind = $1 AND name_normalized = $2
  AND ($3 = '' OR source_normalized = $3)
LIMIT 1
`

	row := c.pool.QueryRow(ctx, sql, string(kind), strings.ToLower(name), strings.ToLower(source))

	var rec store.StoredRecord
	var fieldsBytes []byte
	if err := row.Scan(&rec.Kind, &rec.Name, &rec.Source, &fieldsBytes); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("getting record: %w", err)
	}
	if len(fieldsBytes) > 0 {
		if err := json.Unmarshal(fieldsBytes, &rec.Fields); err != nil {
			return nil, fmt.Errorf("unmarshaling fields: %w", err)
		}
	}
	if rec.Fields == nil {
		rec.Fields = map[string]any{}
	}
	return &rec, nil
}

func (c *Client) ListRecords(ctx context.Context, kind record.Kind, source string) ([]store.RecordSummary, error) {
	sql := `
SELECT kind, name, source
FROM records
WHERE ($1 = '' OR kind = $1)
  AND ($2 = '' OR source_normalized = $2)
ORDER BY kind, name_normalized
`

	rows, err := c.pool.Query(ctx, sql, string(kind), strings.ToLower(source))
	if err != nil {
		return nil, fmt.Errorf("listing records: %w", err)
	}
	defer rows.Close()

	summaries := []store.RecordSummary{}
	for rows.Next() {
		var s store.RecordSummary
		if err := rows.Scan(&s.Kind, &s.Name, &s.Source); err != nil {
			return nil, fmt.Errorf("scanning record summary: %w", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating record rows: %w", err)
	}
	return summaries, nil
}

func (c *Client) CountByKind(ctx context.Context) (map[record.Kind]int, error) {
	rows, err := c.pool.Query(ctx, `SELECT kind, COUNT(*) FROM records GROUP BY kind`)
	if err != nil {
		return nil, fmt.Errorf("counting records: %w", err)
	}
	defer rows.Close()

	counts := make(map[record.Kind]int)
	for rows.Next() {
		var kind string
		var n int64
		if err := rows.Scan(&kind, &n); err != nil {
			return nil, fmt.Errorf("scanning count: %w", err)
		}
		counts[record.Kind(kind)] = int(n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating counts: %w", err)
	}
	return counts, nil
}
