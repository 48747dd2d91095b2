package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"grimoire/internal/record"
	"grimoire/internal/store"
)

func (c *Client) UpsertRecord(ctx context.Context, in store.RecordInput) error {
	fieldsJSON, err := json.Marshal(in.Fields)
	if err != nil {
		return fmt.Errorf("marshaling fields: %w", err)
	}

	query := `
	INSERT INTO records (kind, name, name_normalized, source, source_normalized, fields, last_loaded)
	VALUES (?, ?, ?, ?, ?, ?, datetime('now'))
	ON CONFLICT (kind, name_normalized, source_normalized) DO UPDATE SET
		name = excluded.name,
		source = excluded.source,
		fields = excluded.fields,
		last_loaded = datetime('now')
	`

	_, err = c.db.ExecContext(ctx, query,
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
	query := `
	SELECT kind, name, source, fields
	FROM records
	WHERE kind = ? AND name_normalized = ?
	  AND (? = '' OR source_normalized = ?)
	LIMIT 1
	`

	sourceNorm := strings.ToLower(source)
	row := c.db.QueryRowContext(ctx, query, string(kind), strings.ToLower(name), sourceNorm, sourceNorm)

	var rec store.StoredRecord
	var fieldsBytes []byte
	if err := row.Scan(&rec.Kind, &rec.Name, &rec.Source, &fieldsBytes); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
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
	query := `
	SELECT kind, name, source
	FROM records
	WHERE (? = '' OR kind = ?)
	  AND (? = '' OR source_normalized = ?)
	ORDER BY kind, name_normalized
	`

	sourceNorm := strings.ToLower(source)
	rows, err := c.db.QueryContext(ctx, query, string(kind), string(kind), sourceNorm, sourceNorm)
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
	rows, err := c.db.QueryContext(ctx, `SELECT kind, COUNT(*) FROM records GROUP BY kind`)
	if err != nil {
		return nil, fmt.Errorf("counting records: %w", err)
	}
	defer rows.Close()

	counts := make(map[record.Kind]int)
	for rows.Next() {
		var kind string
		var n int
		if err := rows.Scan(&kind, &n); err != nil {
			return nil, fmt.Errorf("scanning count: %w", err)
		}
		counts[record.Kind(kind)] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating counts: %w", err)
	}
	return counts, nil
}
