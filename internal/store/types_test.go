package store

import (
	"testing"

	"grimoire/internal/record"
)

func TestInputs(t *testing.T) {
	c := record.Collection{
		Spells: []record.Spell{
			{Name: "Fireball", Source: "phb", Level: 3, School: "evocation"},
		},
		Items: []record.Item{
			{Name: "Longsword", Source: "phb", Kind: "weapon", CostGP: 15},
		},
	}

	inputs, err := Inputs(&c)
	if err != nil {
		t.Fatalf("inputs: %v", err)
	}
	if len(inputs) != 2 {
		t.Fatalf("expected 2 inputs, got %d", len(inputs))
	}

	spell := inputs[0]
	if spell.Kind != record.KindSpell || spell.Name != "Fireball" || spell.Source != "phb" {
		t.Fatalf("unexpected spell input: %+v", spell)
	}
	if spell.Fields["school"] != "evocation" {
		t.Fatalf("expected school in fields, got %#v", spell.Fields)
	}
	// JSON round trip renders numbers as float64.
	if spell.Fields["level"] != float64(3) {
		t.Fatalf("expected level 3, got %#v", spell.Fields["level"])
	}

	item := inputs[1]
	if item.Kind != record.KindItem {
		t.Fatalf("unexpected item kind: %q", item.Kind)
	}
	if item.Fields["cost_gp"] != float64(15) {
		t.Fatalf("expected cost in fields, got %#v", item.Fields["cost_gp"])
	}
}
