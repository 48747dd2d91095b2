package mcp

import (
	"context"
	"testing"

	"grimoire/internal/record"
	"grimoire/internal/store"
)

type mockStore struct {
	getResult    *store.StoredRecord
	getErr       error
	listResult   []store.RecordSummary
	listErr      error
	searchResult []store.SearchResult
	searchErr    error
	counts       map[record.Kind]int

	lastGetKind     record.Kind
	lastGetName     string
	lastGetSource   string
	lastListKind    record.Kind
	lastListSource  string
	lastSearchQuery string
	lastSearchKind  record.Kind
}

func (m *mockStore) Close(ctx context.Context) error        { return nil }
func (m *mockStore) EnsureSchema(ctx context.Context) error { return nil }

func (m *mockStore) UpsertRecord(ctx context.Context, in store.RecordInput) error { return nil }

func (m *mockStore) GetRecord(ctx context.Context, kind record.Kind, name, source string) (*store.StoredRecord, error) {
	m.lastGetKind = kind
	m.lastGetName = name
	m.lastGetSource = source
	return m.getResult, m.getErr
}

func (m *mockStore) ListRecords(ctx context.Context, kind record.Kind, source string) ([]store.RecordSummary, error) {
	m.lastListKind = kind
	m.lastListSource = source
	return m.listResult, m.listErr
}

func (m *mockStore) Search(ctx context.Context, query string, kind record.Kind) ([]store.SearchResult, error) {
	m.lastSearchQuery = query
	m.lastSearchKind = kind
	return m.searchResult, m.searchErr
}

func (m *mockStore) CountByKind(ctx context.Context) (map[record.Kind]int, error) {
	return m.counts, nil
}

func TestGetRecord_NotFound(t *testing.T) {
	server := NewServer(&mockStore{}, "test")

	_, _, err := server.handleGetRecord(context.Background(), nil, GetRecordInput{Kind: "spell", Name: "Missing"})
	if err == nil {
		t.Fatalf("expected error")
	}
}

func TestGetRecord_MissingArguments(t *testing.T) {
	server := NewServer(&mockStore{}, "test")

	if _, _, err := server.handleGetRecord(context.Background(), nil, GetRecordInput{Kind: "spell"}); err == nil {
		t.Fatalf("expected error for missing name")
	}
	if _, _, err := server.handleGetRecord(context.Background(), nil, GetRecordInput{Name: "Fireball"}); err == nil {
		t.Fatalf("expected error for missing kind")
	}
}

func TestGetRecord(t *testing.T) {
	db := &mockStore{
		getResult: &store.StoredRecord{
			Kind:   record.KindSpell,
			Name:   "Fireball",
			Source: "phb",
			Fields: map[string]any{"level": float64(3)},
		},
	}
	server := NewServer(db, "test")

	_, output, err := server.handleGetRecord(context.Background(), nil, GetRecordInput{Kind: "spell", Name: "Fireball", Source: "phb"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if output.Name != "Fireball" || output.Kind != "spell" {
		t.Fatalf("unexpected output: %+v", output)
	}
	if output.Fields["level"] != float64(3) {
		t.Fatalf("unexpected fields: %#v", output.Fields)
	}
	if db.lastGetKind != record.KindSpell || db.lastGetName != "Fireball" || db.lastGetSource != "phb" {
		t.Fatalf("unexpected get params")
	}
}

func TestSearchContent(t *testing.T) {
	db := &mockStore{
		searchResult: []store.SearchResult{
			{Kind: record.KindMonster, Name: "Goblin", Source: "mm", Score: 1.5, Snippet: "a **goblin** lurks"},
		},
	}
	server := NewServer(db, "test")

	_, output, err := server.handleSearchContent(context.Background(), nil, SearchContentInput{Query: "goblin", Kind: "monster"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(output.Results) != 1 || output.Results[0].Name != "Goblin" {
		t.Fatalf("unexpected search output: %+v", output)
	}
	if db.lastSearchQuery != "goblin" || db.lastSearchKind != record.KindMonster {
		t.Fatalf("unexpected search params")
	}
}

func TestSearchContent_EmptyQuery(t *testing.T) {
	server := NewServer(&mockStore{}, "test")

	if _, _, err := server.handleSearchContent(context.Background(), nil, SearchContentInput{}); err == nil {
		t.Fatalf("expected error")
	}
}

func TestListRecords(t *testing.T) {
	db := &mockStore{
		listResult: []store.RecordSummary{{Kind: record.KindItem, Name: "Longsword", Source: "phb"}},
	}
	server := NewServer(db, "test")

	_, output, err := server.handleListRecords(context.Background(), nil, ListRecordsInput{Kind: "item", Source: "phb"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(output.Records) != 1 || output.Records[0].Name != "Longsword" {
		t.Fatalf("unexpected list output: %+v", output)
	}
	if db.lastListKind != record.KindItem || db.lastListSource != "phb" {
		t.Fatalf("unexpected list params")
	}
}

func TestGetStats(t *testing.T) {
	db := &mockStore{
		counts: map[record.Kind]int{record.KindSpell: 2, record.KindTrap: 1},
	}
	server := NewServer(db, "test")

	_, output, err := server.handleGetStats(context.Background(), nil, GetStatsInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if output.Total != 3 {
		t.Fatalf("expected total 3, got %d", output.Total)
	}
	if output.Counts["spell"] != 2 || output.Counts["trap"] != 1 {
		t.Fatalf("unexpected counts: %#v", output.Counts)
	}
}
