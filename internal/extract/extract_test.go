package extract

import (
	"reflect"
	"testing"

	"grimoire/internal/record"
)

func TestRejectName(t *testing.T) {
	cases := []struct {
		name   string
		reject bool
	}{
		{"Fireball", false},
		{"Table of Contents", true},
		{"Chapter Three", true},
		{"Appendix A", true},
		{"Index", true},
		{"The", true},
		{"Ab", true},
		{"42", true},
		{"Potion of Healing", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := rejectName(tc.name, 3); got != tc.reject {
				t.Fatalf("rejectName(%q) = %v, want %v", tc.name, got, tc.reject)
			}
		})
	}
}

func TestParseFeatures(t *testing.T) {
	t.Run("named sub-blocks", func(t *testing.T) {
		body := "**Darkvision.** You can see in dim light within 60 feet of you as if it were bright light.\n**Keen Smell.** The wolf has advantage on Wisdom (Perception) checks that rely on smell.\n\nTrailing prose that belongs to no feature.\n"
		features := parseFeatures(body)
		if len(features) != 2 {
			t.Fatalf("expected 2 features, got %d", len(features))
		}
		if features[0].Name != "Darkvision" {
			t.Fatalf("unexpected first name: %q", features[0].Name)
		}
		if features[1].Name != "Keen Smell" {
			t.Fatalf("unexpected second name: %q", features[1].Name)
		}
	})

	t.Run("description stops at blank line", func(t *testing.T) {
		body := "**Rage.** While raging you gain several benefits.\n\nUnrelated paragraph after the gap.\n"
		features := parseFeatures(body)
		if len(features) != 1 {
			t.Fatalf("expected 1 feature, got %d", len(features))
		}
		if features[0].Description != "While raging you gain several benefits." {
			t.Fatalf("unexpected description: %q", features[0].Description)
		}
	})

	t.Run("no features", func(t *testing.T) {
		if features := parseFeatures("Plain prose only."); len(features) != 0 {
			t.Fatalf("expected none, got %#v", features)
		}
	})
}

func TestGuard(t *testing.T) {
	if ok := guard(func() {}); !ok {
		t.Fatalf("expected clean run to report ok")
	}
	if ok := guard(func() { panic("boom") }); ok {
		t.Fatalf("expected panic to report not ok")
	}
}

func TestAll(t *testing.T) {
	text := fireballDoc + "\n" + longswordDoc + "\n" + goblinDoc
	res := All(text, "srd")
	if len(res.Records.Spells) != 1 {
		t.Fatalf("expected 1 spell, got %d", len(res.Records.Spells))
	}
	if len(res.Records.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(res.Records.Items))
	}
	if len(res.Records.Monsters) != 1 {
		t.Fatalf("expected 1 monster, got %d", len(res.Records.Monsters))
	}
	for _, r := range []record.Record{res.Records.Spells[0], res.Records.Items[0], res.Records.Monsters[0]} {
		if r.RecordSource() != "srd" {
			t.Fatalf("unexpected source: %q", r.RecordSource())
		}
	}
	if got := res.Records.Count(); got != 3 {
		t.Fatalf("expected 3 records total, got %d", got)
	}
}

func TestCleanName(t *testing.T) {
	cases := []struct{ in, want string }{
		{"**Fireball**", "Fireball"},
		{"  Ring of Jumping", "Ring of Jumping"},
		{"## Goblin", "Goblin"},
		{"Frost   Giant", "Frost Giant"},
	}
	for _, tc := range cases {
		if got := cleanName(tc.in); got != tc.want {
			t.Fatalf("cleanName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSectionBetween(t *testing.T) {
	body := "intro\nActions\n\n**Bite.** Chomp.\n\nReactions\n\n**Parry.** Deflect.\n"
	got := sectionBetween(body, actionsHeadingRE, reactionsHeadingRE, legendaryHeadingRE, lairHeadingRE)
	if !reflect.DeepEqual(parseFeatures(got), []record.Feature{{Name: "Bite", Description: "Chomp."}}) {
		t.Fatalf("unexpected section: %q", got)
	}
	if sectionBetween(body, lairHeadingRE, actionsHeadingRE) != "" {
		t.Fatalf("expected empty section for missing heading")
	}
}
