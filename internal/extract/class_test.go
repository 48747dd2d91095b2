package extract

import (
	"reflect"
	"testing"
)

const fighterDoc = `# Classes

## Fighter
Hit Dice: 1d10
Primary Ability: Strength
Saving Throws: Strength, Constitution

**Fighting Style.** You adopt a particular style of fighting as your specialty.

A master of martial combat, skilled with a variety of weapons and armor.
`

func TestClasses(t *testing.T) {
	t.Run("class with hit dice and saves", func(t *testing.T) {
		classes, rejected := Classes(fighterDoc, "phb")
		if len(classes) != 1 {
			t.Fatalf("expected 1 class, got %d", len(classes))
		}
		if rejected != 0 {
			t.Fatalf("expected no rejections, got %d", rejected)
		}
		c := classes[0]
		if c.Name != "Fighter" {
			t.Fatalf("expected Fighter, got %q", c.Name)
		}
		if c.HitDice != "1d10" {
			t.Fatalf("unexpected hit dice: %q", c.HitDice)
		}
		if c.PrimaryStat != "Strength" {
			t.Fatalf("unexpected primary stat: %q", c.PrimaryStat)
		}
		if !reflect.DeepEqual(c.SavingThrows, []string{"Strength", "Constitution"}) {
			t.Fatalf("unexpected saving throws: %#v", c.SavingThrows)
		}
		if len(c.Features) != 1 || c.Features[0].Name != "Fighting Style" {
			t.Fatalf("unexpected features: %#v", c.Features)
		}
	})

	t.Run("hit dice without context is rejected", func(t *testing.T) {
		text := "Ancient Relic\nHit Dice: 1d8\n\nA curious artifact description that has nothing to do with character options at all.\n"
		classes, rejected := Classes(text, "phb")
		if len(classes) != 0 {
			t.Fatalf("expected no classes, got %d", len(classes))
		}
		if rejected != 1 {
			t.Fatalf("expected 1 rejection, got %d", rejected)
		}
	})
}

func TestSubclasses(t *testing.T) {
	t.Run("parent inferred from preceding text", func(t *testing.T) {
		text := "The Barbarian class channels rage in battle.\n\nPath of the Berserker\nFor some barbarians, rage is a means to an end, and that end is violence against everything nearby.\n"
		subs, rejected := Subclasses(text, "phb")
		if len(subs) != 1 {
			t.Fatalf("expected 1 subclass, got %d", len(subs))
		}
		if rejected != 0 {
			t.Fatalf("expected no rejections, got %d", rejected)
		}
		if subs[0].Name != "Path of the Berserker" {
			t.Fatalf("unexpected name: %q", subs[0].Name)
		}
		if subs[0].ParentClass != "Barbarian" {
			t.Fatalf("unexpected parent: %q", subs[0].ParentClass)
		}
	})

	t.Run("nearest class mention wins", func(t *testing.T) {
		text := "Fighters hit things. Wizards study magic in their towers for decades.\n\nSchool of Evocation\nYou focus your study on magic that creates powerful elemental effects such as bitter cold or searing flame.\n"
		subs, _ := Subclasses(text, "phb")
		if len(subs) != 1 {
			t.Fatalf("expected 1 subclass, got %d", len(subs))
		}
		if subs[0].ParentClass != "Wizard" {
			t.Fatalf("expected Wizard, got %q", subs[0].ParentClass)
		}
	})

	t.Run("suffix form", func(t *testing.T) {
		text := "Every rogue picks an archetype at third level.\n\nArcane Trickster Archetype\nSome rogues enhance their fine-honed skills of stealth and agility with spells of illusion.\n"
		subs, _ := Subclasses(text, "phb")
		if len(subs) != 1 {
			t.Fatalf("expected 1 subclass, got %d", len(subs))
		}
		if subs[0].ParentClass != "Rogue" {
			t.Fatalf("expected Rogue, got %q", subs[0].ParentClass)
		}
	})

	t.Run("no plausible parent is rejected", func(t *testing.T) {
		text := "Path of the Unknown\nA mysterious tradition whose origins no sage has ever managed to trace back to anything.\n"
		subs, rejected := Subclasses(text, "phb")
		if len(subs) != 0 {
			t.Fatalf("expected no subclasses, got %d", len(subs))
		}
		if rejected != 1 {
			t.Fatalf("expected 1 rejection, got %d", rejected)
		}
	})
}
