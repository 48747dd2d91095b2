// Package store defines the persistence interface downstream of the
// extraction pipeline. The pipeline itself never touches a store; the
// load/serve commands use one to upsert and query extracted records
// keyed by (name, source).
package store

import (
	"context"

	"grimoire/internal/record"
)

type Store interface {
	Close(ctx context.Context) error
	EnsureSchema(ctx context.Context) error

	UpsertRecord(ctx context.Context, in RecordInput) error
	GetRecord(ctx context.Context, kind record.Kind, name, source string) (*StoredRecord, error)
	ListRecords(ctx context.Context, kind record.Kind, source string) ([]RecordSummary, error)
	Search(ctx context.Context, query string, kind record.Kind) ([]SearchResult, error)
	CountByKind(ctx context.Context) (map[record.Kind]int, error)
}
