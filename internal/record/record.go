// Package record defines the typed records produced by the extraction
// pipeline. Every record carries a non-empty name and the standardized
// identifier of the document it came from; together they form the natural
// key used for deduplication and storage.
package record

import "strings"

type Kind string

const (
	KindSpell    Kind = "spell"
	KindItem     Kind = "item"
	KindMonster  Kind = "monster"
	KindClass    Kind = "class"
	KindSubclass Kind = "subclass"
	KindRace     Kind = "race"
	KindFeat     Kind = "feat"
	KindTrap     Kind = "trap"
	KindPuzzle   Kind = "puzzle"
)

// Kinds lists every content kind in output order.
var Kinds = []Kind{
	KindSpell, KindItem, KindMonster, KindClass, KindSubclass,
	KindRace, KindFeat, KindTrap, KindPuzzle,
}

// Record is implemented by all nine extracted record shapes.
type Record interface {
	RecordName() string
	RecordSource() string
	RecordKind() Kind
}

// Key computes the case-insensitive natural key for a (name, source) pair.
func Key(name, source string) string {
	return strings.ToLower(strings.TrimSpace(name)) + "|" + strings.ToLower(strings.TrimSpace(source))
}

// Spell schools, sizes and the other closed sets used by extraction gates
// and validation.
var (
	Schools = []string{
		"abjuration", "conjuration", "divination", "enchantment",
		"evocation", "illusion", "necromancy", "transmutation",
	}
	Sizes      = []string{"Tiny", "Small", "Medium", "Large", "Huge", "Gargantuan"}
	Rarities   = []string{"common", "uncommon", "rare", "very_rare", "legendary", "artifact"}
	ItemKinds  = []string{"weapon", "armor", "tool", "consumable", "magic_item", "other"}
	Threats    = []string{"setback", "dangerous", "deadly"}
	Difficulty = []string{"easy", "medium", "hard", "deadly"}
)

type Spell struct {
	Name               string   `json:"name"`
	Source             string   `json:"source"`
	Level              int      `json:"level"`
	School             string   `json:"school"`
	CastingTime        string   `json:"casting_time"`
	Range              string   `json:"range"`
	Components         []string `json:"components"`
	MaterialComponents string   `json:"material_components,omitempty"`
	Duration           string   `json:"duration"`
	Ritual             bool     `json:"ritual"`
	Concentration      bool     `json:"concentration"`
	Classes            []string `json:"classes,omitempty"`
	Description        string   `json:"description"`
}

func (s Spell) RecordName() string   { return s.Name }
func (s Spell) RecordSource() string { return s.Source }
func (s Spell) RecordKind() Kind     { return KindSpell }

// CostBreakdown splits a gold-piece value into coin denominations.
type CostBreakdown struct {
	CP int `json:"cp"`
	SP int `json:"sp"`
	GP int `json:"gp"`
	PP int `json:"pp"`
}

type Item struct {
	Name        string  `json:"name"`
	Source      string  `json:"source"`
	Kind        string  `json:"kind"`
	Description string  `json:"description"`
	Rarity      string  `json:"rarity,omitempty"`
	Attunement  bool    `json:"attunement,omitempty"`
	CostRaw     string  `json:"cost_raw,omitempty"`
	CostGP      float64 `json:"cost_gp"`
	// CostExtracted is false when CostGP came from lookup tables or kind
	// defaults rather than the source text.
	CostExtracted         bool          `json:"cost_extracted"`
	CostBreakdown         CostBreakdown `json:"cost_breakdown"`
	WeightLB              *float64      `json:"weight_lb"`
	WeightKG              *float64      `json:"weight_kg"`
	EstimatedRealWeightKG float64       `json:"estimated_real_weight_kg"`
	VolumeCategory        string        `json:"volume_category"`
	Properties            []string      `json:"properties,omitempty"`
	ExtractionConfidence  int           `json:"extraction_confidence_score"`
}

func (i Item) RecordName() string   { return i.Name }
func (i Item) RecordSource() string { return i.Source }
func (i Item) RecordKind() Kind     { return KindItem }

// Stats holds the six ability scores.
type Stats struct {
	Str int `json:"str"`
	Dex int `json:"dex"`
	Con int `json:"con"`
	Int int `json:"int"`
	Wis int `json:"wis"`
	Cha int `json:"cha"`
}

// Feature is a named sub-block of a monster, class, race or subclass
// (trait, action, class feature, racial trait, ...).
type Feature struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type Monster struct {
	Name             string    `json:"name"`
	Source           string    `json:"source"`
	Size             string    `json:"size"`
	Type             string    `json:"type"`
	Alignment        string    `json:"alignment,omitempty"`
	ArmorClass       int       `json:"armor_class"`
	HitPoints        int       `json:"hit_points"`
	HitDice          string    `json:"hit_dice,omitempty"`
	Speed            int       `json:"speed"`
	Stats            Stats     `json:"stats"`
	ChallengeRating  float64   `json:"challenge_rating"`
	Traits           []Feature `json:"traits"`
	Actions          []Feature `json:"actions"`
	LegendaryActions []Feature `json:"legendary_actions"`
	Reactions        []Feature `json:"reactions"`
	LairActions      []Feature `json:"lair_actions"`
	Description      string    `json:"description"`
	// Assumed lists the fields that were filled with documented defaults
	// because the source text did not state them.
	Assumed []string `json:"assumed_fields,omitempty"`
}

func (m Monster) RecordName() string   { return m.Name }
func (m Monster) RecordSource() string { return m.Source }
func (m Monster) RecordKind() Kind     { return KindMonster }

type Class struct {
	Name         string    `json:"name"`
	Source       string    `json:"source"`
	HitDice      string    `json:"hit_dice"`
	PrimaryStat  string    `json:"primary_stat,omitempty"`
	SavingThrows []string  `json:"saving_throws,omitempty"`
	Features     []Feature `json:"features"`
	Description  string    `json:"description"`
}

func (c Class) RecordName() string   { return c.Name }
func (c Class) RecordSource() string { return c.Source }
func (c Class) RecordKind() Kind     { return KindClass }

type Subclass struct {
	Name        string    `json:"name"`
	Source      string    `json:"source"`
	ParentClass string    `json:"parent_class"`
	Features    []Feature `json:"features"`
	Description string    `json:"description"`
}

func (s Subclass) RecordName() string   { return s.Name }
func (s Subclass) RecordSource() string { return s.Source }
func (s Subclass) RecordKind() Kind     { return KindSubclass }

type Race struct {
	Name           string    `json:"name"`
	Source         string    `json:"source"`
	Size           string    `json:"size"`
	Speed          int       `json:"speed"`
	AbilityBonuses string    `json:"ability_bonuses,omitempty"`
	Traits         []Feature `json:"traits"`
	Description    string    `json:"description"`
	Assumed        []string  `json:"assumed_fields,omitempty"`
}

func (r Race) RecordName() string   { return r.Name }
func (r Race) RecordSource() string { return r.Source }
func (r Race) RecordKind() Kind     { return KindRace }

type Feat struct {
	Name         string `json:"name"`
	Source       string `json:"source"`
	Prerequisite string `json:"prerequisite,omitempty"`
	Description  string `json:"description"`
}

func (f Feat) RecordName() string   { return f.Name }
func (f Feat) RecordSource() string { return f.Source }
func (f Feat) RecordKind() Kind     { return KindFeat }

type Trap struct {
	Name        string `json:"name"`
	Source      string `json:"source"`
	Threat      string `json:"threat"`
	Trigger     string `json:"trigger,omitempty"`
	Effect      string `json:"effect,omitempty"`
	SaveDC      int    `json:"save_dc,omitempty"`
	Description string `json:"description"`
}

func (t Trap) RecordName() string   { return t.Name }
func (t Trap) RecordSource() string { return t.Source }
func (t Trap) RecordKind() Kind     { return KindTrap }

type Puzzle struct {
	Name        string   `json:"name"`
	Source      string   `json:"source"`
	Difficulty  string   `json:"difficulty"`
	Solution    string   `json:"solution,omitempty"`
	Hints       []string `json:"hints,omitempty"`
	Description string   `json:"description"`
}

func (p Puzzle) RecordName() string   { return p.Name }
func (p Puzzle) RecordSource() string { return p.Source }
func (p Puzzle) RecordKind() Kind     { return KindPuzzle }

// Collection aggregates every extracted record of one batch run.
type Collection struct {
	Spells     []Spell    `json:"spells"`
	Items      []Item     `json:"items"`
	Monsters   []Monster  `json:"monsters"`
	Classes    []Class    `json:"classes"`
	Subclasses []Subclass `json:"subclasses"`
	Races      []Race     `json:"races"`
	Feats      []Feat     `json:"feats"`
	Traps      []Trap     `json:"traps"`
	Puzzles    []Puzzle   `json:"puzzles"`
}

// Append merges other into c, preserving order.
func (c *Collection) Append(other Collection) {
	c.Spells = append(c.Spells, other.Spells...)
	c.Items = append(c.Items, other.Items...)
	c.Monsters = append(c.Monsters, other.Monsters...)
	c.Classes = append(c.Classes, other.Classes...)
	c.Subclasses = append(c.Subclasses, other.Subclasses...)
	c.Races = append(c.Races, other.Races...)
	c.Feats = append(c.Feats, other.Feats...)
	c.Traps = append(c.Traps, other.Traps...)
	c.Puzzles = append(c.Puzzles, other.Puzzles...)
}

// Count returns the total number of records across all kinds.
func (c *Collection) Count() int {
	return len(c.Spells) + len(c.Items) + len(c.Monsters) + len(c.Classes) +
		len(c.Subclasses) + len(c.Races) + len(c.Feats) + len(c.Traps) + len(c.Puzzles)
}
