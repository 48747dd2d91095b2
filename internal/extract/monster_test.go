package extract

import (
	"reflect"
	"testing"
)

const goblinDoc = `Goblin
Small humanoid, neutral evil
Armor Class: 15
Hit Points: 7 (2d6)
Speed: 30 ft.
STR 8 DEX 14 CON 10 INT 10 WIS 8 CHA 8
Challenge: 1/4

**Nimble Escape.** The goblin can take the Disengage or Hide action as a bonus action on each of its turns.

Actions

**Scimitar.** Melee Weapon Attack: +4 to hit, reach 5 ft., one target.
`

func TestMonsters(t *testing.T) {
	t.Run("full stat block", func(t *testing.T) {
		monsters, rejected := Monsters(goblinDoc, "mm")
		if len(monsters) != 1 {
			t.Fatalf("expected 1 monster, got %d", len(monsters))
		}
		if rejected != 0 {
			t.Fatalf("expected no rejections, got %d", rejected)
		}
		m := monsters[0]
		if m.Name != "Goblin" {
			t.Fatalf("expected Goblin, got %q", m.Name)
		}
		if m.Size != "Small" || m.Type != "humanoid" || m.Alignment != "neutral evil" {
			t.Fatalf("unexpected size line: %q %q %q", m.Size, m.Type, m.Alignment)
		}
		if m.ArmorClass != 15 || m.HitPoints != 7 || m.Speed != 30 {
			t.Fatalf("unexpected numbers: AC=%d HP=%d speed=%d", m.ArmorClass, m.HitPoints, m.Speed)
		}
		if m.HitDice != "2d6" {
			t.Fatalf("unexpected hit dice: %q", m.HitDice)
		}
		if m.Stats.Str != 8 || m.Stats.Dex != 14 || m.Stats.Cha != 8 {
			t.Fatalf("unexpected stats: %+v", m.Stats)
		}
		if m.ChallengeRating != 0.25 {
			t.Fatalf("expected CR 0.25, got %v", m.ChallengeRating)
		}
		if len(m.Assumed) != 0 {
			t.Fatalf("nothing should be assumed: %#v", m.Assumed)
		}
		if len(m.Traits) != 1 || m.Traits[0].Name != "Nimble Escape" {
			t.Fatalf("unexpected traits: %#v", m.Traits)
		}
		if len(m.Actions) != 1 || m.Actions[0].Name != "Scimitar" {
			t.Fatalf("unexpected actions: %#v", m.Actions)
		}
		if len(m.LegendaryActions) != 0 || len(m.Reactions) != 0 || len(m.LairActions) != 0 {
			t.Fatalf("expected empty optional sections")
		}
	})

	t.Run("missing fields default and are recorded as assumed", func(t *testing.T) {
		text := "Shadow Wisp\nMedium undead\nChallenge: 1\n\nA flickering shade that drifts through walls and saps the resolve of the living.\n"
		monsters, _ := Monsters(text, "mm")
		if len(monsters) != 1 {
			t.Fatalf("expected 1 monster, got %d", len(monsters))
		}
		m := monsters[0]
		if m.ArmorClass != 10 || m.HitPoints != 10 || m.Speed != 30 {
			t.Fatalf("unexpected defaults: AC=%d HP=%d speed=%d", m.ArmorClass, m.HitPoints, m.Speed)
		}
		if m.Stats.Str != 10 || m.Stats.Cha != 10 {
			t.Fatalf("unexpected default stats: %+v", m.Stats)
		}
		want := []string{"armor_class", "hit_points", "speed", "str", "dex", "con", "int", "wis", "cha"}
		if !reflect.DeepEqual(m.Assumed, want) {
			t.Fatalf("unexpected assumed list: %#v", m.Assumed)
		}
	})

	t.Run("fractional challenge rating", func(t *testing.T) {
		if got := parseCR("1/8"); got != 0.125 {
			t.Fatalf("expected 0.125, got %v", got)
		}
		if got := parseCR("5"); got != 5 {
			t.Fatalf("expected 5, got %v", got)
		}
		if got := parseCR("1/0"); got != 0 {
			t.Fatalf("expected 0 for zero denominator, got %v", got)
		}
	})

	t.Run("short description rejected", func(t *testing.T) {
		text := "Rat King\nLarge beast\nArmor Class: 12\nHit Points: 30\nSpeed: 20 ft.\nChallenge: 2\nBig.\n"
		monsters, rejected := Monsters(text, "mm")
		if len(monsters) != 0 {
			t.Fatalf("expected no monsters, got %d", len(monsters))
		}
		if rejected != 1 {
			t.Fatalf("expected 1 rejection, got %d", rejected)
		}
	})

	t.Run("legendary actions section", func(t *testing.T) {
		text := "Ancient Wyrm\nGargantuan dragon, chaotic evil\nArmor Class: 22\nHit Points: 546\nSpeed: 40 ft.\nChallenge: 24\n\nThe oldest of its kind, feared across every kingdom it has ever burned.\n\nActions\n\n**Bite.** Melee Weapon Attack: +17 to hit, reach 15 ft., one target.\n\nLegendary Actions\n\n**Detect.** The dragon makes a Wisdom (Perception) check.\n"
		monsters, _ := Monsters(text, "mm")
		if len(monsters) != 1 {
			t.Fatalf("expected 1 monster, got %d", len(monsters))
		}
		m := monsters[0]
		if len(m.Actions) != 1 || m.Actions[0].Name != "Bite" {
			t.Fatalf("unexpected actions: %#v", m.Actions)
		}
		if len(m.LegendaryActions) != 1 || m.LegendaryActions[0].Name != "Detect" {
			t.Fatalf("unexpected legendary actions: %#v", m.LegendaryActions)
		}
	})
}
