package store

import (
	"encoding/json"
	"fmt"

	"grimoire/internal/record"
)

type RecordInput struct {
	Kind   record.Kind
	Name   string
	Source string
	Fields map[string]any
}

type StoredRecord struct {
	Kind   record.Kind
	Name   string
	Source string
	Fields map[string]any
}

type RecordSummary struct {
	Kind   record.Kind
	Name   string
	Source string
}

type SearchResult struct {
	Kind    record.Kind
	Name    string
	Source  string
	Score   float64
	Snippet string
}

// Inputs flattens a collection into upsertable rows, preserving each
// record's full JSON shape in Fields.
func Inputs(c *record.Collection) ([]RecordInput, error) {
	var inputs []RecordInput
	add := func(r record.Record) error {
		fields, err := toFields(r)
		if err != nil {
			return fmt.Errorf("encoding %s %q: %w", r.RecordKind(), r.RecordName(), err)
		}
		inputs = append(inputs, RecordInput{
			Kind:   r.RecordKind(),
			Name:   r.RecordName(),
			Source: r.RecordSource(),
			Fields: fields,
		})
		return nil
	}
	for _, s := range c.Spells {
		if err := add(s); err != nil {
			return nil, err
		}
	}
	for _, i := range c.Items {
		if err := add(i); err != nil {
			return nil, err
		}
	}
	for _, m := range c.Monsters {
		if err := add(m); err != nil {
			return nil, err
		}
	}
	for _, cl := range c.Classes {
		if err := add(cl); err != nil {
			return nil, err
		}
	}
	for _, s := range c.Subclasses {
		if err := add(s); err != nil {
			return nil, err
		}
	}
	for _, r := range c.Races {
		if err := add(r); err != nil {
			return nil, err
		}
	}
	for _, f := range c.Feats {
		if err := add(f); err != nil {
			return nil, err
		}
	}
	for _, t := range c.Traps {
		if err := add(t); err != nil {
			return nil, err
		}
	}
	for _, p := range c.Puzzles {
		if err := add(p); err != nil {
			return nil, err
		}
	}
	return inputs, nil
}

func toFields(r record.Record) (map[string]any, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, err
	}
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}
