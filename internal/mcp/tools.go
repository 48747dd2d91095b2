package mcp

import (
	"context"
	"fmt"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"grimoire/internal/record"
)

type SearchContentInput struct {
	Query string `json:"query" jsonschema:"search terms"`
	Kind  string `json:"kind,omitempty" jsonschema:"restrict to a content kind (spell, item, monster, ...)"`
}

type GetRecordInput struct {
	Kind   string `json:"kind" jsonschema:"content kind"`
	Name   string `json:"name" jsonschema:"record name"`
	Source string `json:"source,omitempty" jsonschema:"optional source filter"`
}

type ListRecordsInput struct {
	Kind   string `json:"kind,omitempty" jsonschema:"content kind filter"`
	Source string `json:"source,omitempty" jsonschema:"source filter"`
}

type GetStatsInput struct{}

type RecordOutput struct {
	Kind   string         `json:"kind"`
	Name   string         `json:"name"`
	Source string         `json:"source"`
	Fields map[string]any `json:"fields"`
}

type RecordSummaryOutput struct {
	Kind   string `json:"kind"`
	Name   string `json:"name"`
	Source string `json:"source"`
}

type SearchResultOutput struct {
	Kind    string  `json:"kind"`
	Name    string  `json:"name"`
	Source  string  `json:"source"`
	Score   float64 `json:"score"`
	Snippet string  `json:"snippet,omitempty"`
}

type SearchContentOutput struct {
	Results []SearchResultOutput `json:"results"`
}

type ListRecordsOutput struct {
	Records []RecordSummaryOutput `json:"records"`
}

type GetStatsOutput struct {
	Counts map[string]int `json:"counts"`
	Total  int            `json:"total"`
}

func (s *Server) registerTools() {
	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "search_content",
		Description: "Search extracted rulebook records by name and text",
	}, s.handleSearchContent)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "get_record",
		Description: "Retrieve one extracted record with all its fields",
	}, s.handleGetRecord)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "list_records",
		Description: "List extracted records with optional kind and source filters",
	}, s.handleListRecords)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "get_stats",
		Description: "Return per-kind record counts",
	}, s.handleGetStats)
}

func (s *Server) handleSearchContent(ctx context.Context, req *sdk.CallToolRequest, input SearchContentInput) (*sdk.CallToolResult, SearchContentOutput, error) {
	if input.Query == "" {
		return nil, SearchContentOutput{}, fmt.Errorf("query is required")
	}
	results, err := s.db.Search(ctx, input.Query, record.Kind(input.Kind))
	if err != nil {
		return nil, SearchContentOutput{}, err
	}

	output := make([]SearchResultOutput, 0, len(results))
	for _, result := range results {
		output = append(output, SearchResultOutput{
			Kind:    string(result.Kind),
			Name:    result.Name,
			Source:  result.Source,
			Score:   result.Score,
			Snippet: result.Snippet,
		})
	}
	return nil, SearchContentOutput{Results: output}, nil
}

func (s *Server) handleGetRecord(ctx context.Context, req *sdk.CallToolRequest, input GetRecordInput) (*sdk.CallToolResult, RecordOutput, error) {
	if input.Name == "" {
		return nil, RecordOutput{}, fmt.Errorf("name is required")
	}
	if input.Kind == "" {
		return nil, RecordOutput{}, fmt.Errorf("kind is required")
	}
	rec, err := s.db.GetRecord(ctx, record.Kind(input.Kind), input.Name, input.Source)
	if err != nil {
		return nil, RecordOutput{}, err
	}
	if rec == nil {
		return nil, RecordOutput{}, fmt.Errorf("record not found")
	}
	return nil, RecordOutput{
		Kind:   string(rec.Kind),
		Name:   rec.Name,
		Source: rec.Source,
		Fields: rec.Fields,
	}, nil
}

func (s *Server) handleListRecords(ctx context.Context, req *sdk.CallToolRequest, input ListRecordsInput) (*sdk.CallToolResult, ListRecordsOutput, error) {
	items, err := s.db.ListRecords(ctx, record.Kind(input.Kind), input.Source)
	if err != nil {
		return nil, ListRecordsOutput{}, err
	}

	output := make([]RecordSummaryOutput, 0, len(items))
	for _, item := range items {
		output = append(output, RecordSummaryOutput{
			Kind:   string(item.Kind),
			Name:   item.Name,
			Source: item.Source,
		})
	}
	return nil, ListRecordsOutput{Records: output}, nil
}

func (s *Server) handleGetStats(ctx context.Context, req *sdk.CallToolRequest, input GetStatsInput) (*sdk.CallToolResult, GetStatsOutput, error) {
	counts, err := s.db.CountByKind(ctx)
	if err != nil {
		return nil, GetStatsOutput{}, err
	}
	out := GetStatsOutput{Counts: make(map[string]int, len(counts))}
	for kind, n := range counts {
		out.Counts[string(kind)] = n
		out.Total += n
	}
	return nil, out, nil
}
