package dedupe

import (
	"reflect"
	"testing"

	"grimoire/internal/record"
)

func TestRecords(t *testing.T) {
	t.Run("first record per key wins", func(t *testing.T) {
		items := []record.Item{
			{Name: "Dagger", Source: "phb", Description: "A simple blade."},
			{Name: "dagger", Source: "PHB", Description: "A much richer description that still loses."},
			{Name: "Dagger", Source: "dmg", Description: "Different source, kept."},
		}
		got := Records(items)
		if len(got) != 2 {
			t.Fatalf("expected 2 items, got %d", len(got))
		}
		if got[0].Description != "A simple blade." {
			t.Fatalf("first occurrence must win, got %q", got[0].Description)
		}
		if got[1].Source != "dmg" {
			t.Fatalf("unexpected second item: %+v", got[1])
		}
	})

	t.Run("order preserved", func(t *testing.T) {
		spells := []record.Spell{
			{Name: "Bless", Source: "phb"},
			{Name: "Aid", Source: "phb"},
			{Name: "Bless", Source: "phb"},
		}
		got := Records(spells)
		names := []string{got[0].Name, got[1].Name}
		if !reflect.DeepEqual(names, []string{"Bless", "Aid"}) {
			t.Fatalf("unexpected order: %#v", names)
		}
	})
}

func TestMerge(t *testing.T) {
	primary := []record.Item{
		{Name: "Dagger", Source: "phb", CostGP: 2},
	}
	secondary := []record.Item{
		{Name: "Dagger", Source: "phb", CostGP: 999},
		{Name: "Rope", Source: "phb", CostGP: 1},
	}
	got := Merge(primary, secondary)
	if len(got) != 2 {
		t.Fatalf("expected 2 items, got %d", len(got))
	}
	if got[0].CostGP != 2 {
		t.Fatalf("primary must win on conflict, got %v", got[0].CostGP)
	}
	if got[1].Name != "Rope" {
		t.Fatalf("unexpected merged item: %+v", got[1])
	}
}

func TestCollection(t *testing.T) {
	c := record.Collection{
		Spells: []record.Spell{
			{Name: "Bless", Source: "phb"},
			{Name: "BLESS", Source: "phb"},
		},
		Items: []record.Item{
			{Name: "Rope", Source: "phb"},
		},
	}
	dropped := Collection(&c)
	if dropped != 1 {
		t.Fatalf("expected 1 dropped, got %d", dropped)
	}
	if len(c.Spells) != 1 || len(c.Items) != 1 {
		t.Fatalf("unexpected collection: %d spells %d items", len(c.Spells), len(c.Items))
	}
}
