package postgres

import (
	"context"
	"fmt"
)

func (c *Client) EnsureSchema(ctx context.Context) error {
	// Single DDL batch; "IF NOT EXISTS" keeps repeated loads idempotent.
	ddl := `
CREATE TABLE IF NOT EXISTS records (
    id                BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
    kind              TEXT NOT NULL,
    name              TEXT NOT NULL,
    name_normalized   TEXT NOT NULL,
    source            TEXT NOT NULL,
    source_normalized TEXT NOT NULL,
    fields            JSONB DEFAULT '{}',
    last_loaded       TIMESTAMPTZ DEFAULT now(),
    CONSTRAINT uq_record_kind_name_source UNIQUE (kind, name_normalized, source_normalized)
);

ALTER TABLE records ADD COLUMN IF NOT EXISTS search_vector TSVECTOR
    GENERATED ALWAYS AS (to_tsvector('english', name || ' ' || coalesce(fields::text, ''))) STORED;

CREATE INDEX IF NOT EXISTS idx_records_kind ON records (kind);
CREATE INDEX IF NOT EXISTS idx_records_source ON records (source_normalized);
CREATE INDEX IF NOT EXISTS idx_records_name ON records (name_normalized);
CREATE INDEX IF NOT EXISTS idx_records_search ON records USING GIN (search_vector);
`

	if _, err := c.pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("ensuring postgres schema: %w", err)
	}
	return nil
}
