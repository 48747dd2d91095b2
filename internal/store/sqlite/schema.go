package sqlite

import (
	"context"
	"fmt"
)

func (c *Client) EnsureSchema(ctx context.Context) error {
	ddl := `
	CREATE TABLE IF NOT EXISTS records (
		id                INTEGER PRIMARY KEY AUTOINCREMENT,
		kind              TEXT NOT NULL,
		name              TEXT NOT NULL,
		name_normalized   TEXT NOT NULL,
		source            TEXT NOT NULL,
		source_normalized TEXT NOT NULL,
		fields            TEXT DEFAULT '{}',
		last_loaded       TEXT DEFAULT (datetime('now')),
		CONSTRAINT uq_record_kind_name_source UNIQUE (kind, name_normalized, source_normalized)
	);

	CREATE INDEX IF NOT EXISTS idx_records_kind ON records (kind);
	CREATE INDEX IF NOT EXISTS idx_records_source ON records (source_normalized);
	CREATE INDEX IF NOT EXISTS idx_records_name ON records (name_normalized);

	CREATE VIRTUAL TABLE IF NOT EXISTS records_fts USING fts5(
		name, fields,
		content='records',
		content_rowid='id'
	);

	CREATE TRIGGER IF NOT EXISTS records_ai AFTER INSERT ON records BEGIN
		INSERT INTO records_fts(rowid, name, fields)
		VALUES (new.id, new.name, new.fields);
	END;
	CREATE TRIGGER IF NOT EXISTS records_ad AFTER DELETE ON records BEGIN
		INSERT INTO records_fts(records_fts, rowid, name, fields)
		VALUES ('delete', old.id, old.name, old.fields);
	END;
	CREATE TRIGGER IF NOT EXISTS records_au AFTER UPDATE ON records BEGIN
		INSERT INTO records_fts(records_fts, rowid, name, fields)
		VALUES ('delete', old.id, old.name, old.fields);
		INSERT INTO records_fts(rowid, name, fields)
		VALUES (new.id, new.name, new.fields);
	END;
	`

	if _, err := c.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("ensuring sqlite schema: %w", err)
	}
	return nil
}
