// Package validate runs schema and domain-range checks over extracted
// records. Each check deducts points from a 100 baseline: missing
// required fields are errors with large deductions, out-of-range values
// and unknown enum members are warnings with small ones. A record with
// zero errors is valid regardless of its score; the score is an
// independent triage signal and is never reconciled with the extraction
// confidence computed during normalization.
package validate

import (
	"fmt"
	"strings"

	"grimoire/internal/record"
)

type Result struct {
	RecordType record.Kind `json:"record_type"`
	Name       string      `json:"name"`
	Source     string      `json:"source"`
	Errors     []string    `json:"errors"`
	Warnings   []string    `json:"warnings"`
	Score      int         `json:"score"`
}

// Valid reports whether the record passed every hard check.
func (r *Result) Valid() bool { return len(r.Errors) == 0 }

// checker accumulates deductions for one record.
type checker struct {
	result Result
}

func newChecker(kind record.Kind, name, source string) *checker {
	return &checker{result: Result{
		RecordType: kind,
		Name:       name,
		Source:     source,
		Errors:     []string{},
		Warnings:   []string{},
		Score:      100,
	}}
}

func (c *checker) fail(points int, format string, args ...any) {
	c.result.Errors = append(c.result.Errors, fmt.Sprintf(format, args...))
	c.deduct(points)
}

func (c *checker) warn(points int, format string, args ...any) {
	c.result.Warnings = append(c.result.Warnings, fmt.Sprintf(format, args...))
	c.deduct(points)
}

func (c *checker) deduct(points int) {
	c.result.Score -= points
	if c.result.Score < 0 {
		c.result.Score = 0
	}
}

func (c *checker) requireName(name string) {
	if strings.TrimSpace(name) == "" {
		c.fail(50, "missing required field: name")
	}
}

func (c *checker) requireSource(source string) {
	if strings.TrimSpace(source) == "" {
		c.fail(30, "missing required field: source")
	}
}

func (c *checker) checkRange(field string, value, lo, hi float64) {
	if value < lo || value > hi {
		c.warn(3, "%s %g outside documented range %g-%g", field, value, lo, hi)
	}
}

func (c *checker) checkEnum(field, value string, known []string) {
	if value == "" {
		return
	}
	for _, k := range known {
		if strings.EqualFold(k, value) {
			return
		}
	}
	c.warn(3, "unknown %s: %q", field, value)
}

func (c *checker) checkDescription(desc string, floor int) {
	if len(desc) < floor {
		c.warn(5, "description shorter than %d characters", floor)
	}
	trimmed := strings.TrimSpace(desc)
	if strings.HasSuffix(trimmed, "...") || strings.HasSuffix(trimmed, "…") || strings.HasSuffix(trimmed, "[truncated]") {
		c.warn(2, "description appears truncated")
	}
}

func (c *checker) done() *Result { return &c.result }

func Spell(s record.Spell) *Result {
	c := newChecker(record.KindSpell, s.Name, s.Source)
	c.requireName(s.Name)
	c.requireSource(s.Source)
	if s.School == "" {
		c.fail(20, "missing required field: school")
	} else {
		c.checkEnum("school", s.School, record.Schools)
	}
	c.checkRange("spell level", float64(s.Level), 0, 9)
	if s.CastingTime == "" {
		c.warn(4, "missing casting time")
	}
	if s.Duration == "" {
		c.warn(4, "missing duration")
	}
	if len(s.Components) == 0 {
		c.warn(3, "missing components")
	}
	c.checkDescription(s.Description, 20)
	return c.done()
}

func Item(i record.Item) *Result {
	c := newChecker(record.KindItem, i.Name, i.Source)
	c.requireName(i.Name)
	c.requireSource(i.Source)
	if i.Kind == "" {
		c.fail(15, "missing required field: kind")
	} else {
		c.checkEnum("item kind", i.Kind, record.ItemKinds)
	}
	c.checkEnum("rarity", i.Rarity, record.Rarities)
	if i.CostGP < 0 {
		c.warn(3, "negative cost: %g gp", i.CostGP)
	}
	if i.WeightLB != nil {
		c.checkRange("weight_lb", *i.WeightLB, 0, 10000)
	}
	if i.VolumeCategory == "" {
		c.warn(2, "missing volume category")
	}
	c.checkRange("extraction confidence", float64(i.ExtractionConfidence), 0, 100)
	c.checkDescription(i.Description, 15)
	return c.done()
}

func Monster(m record.Monster) *Result {
	c := newChecker(record.KindMonster, m.Name, m.Source)
	c.requireName(m.Name)
	c.requireSource(m.Source)
	if m.Size == "" {
		c.fail(15, "missing required field: size")
	} else {
		c.checkEnum("size", m.Size, record.Sizes)
	}
	if m.Type == "" {
		c.fail(15, "missing required field: type")
	}
	c.checkRange("armor class", float64(m.ArmorClass), 1, 30)
	c.checkRange("challenge rating", m.ChallengeRating, 0, 30)
	if m.HitPoints < 1 {
		c.warn(3, "hit points below 1")
	}
	for _, ability := range []struct {
		name  string
		score int
	}{
		{"str", m.Stats.Str}, {"dex", m.Stats.Dex}, {"con", m.Stats.Con},
		{"int", m.Stats.Int}, {"wis", m.Stats.Wis}, {"cha", m.Stats.Cha},
	} {
		c.checkRange(ability.name, float64(ability.score), 1, 30)
	}
	c.checkDescription(m.Description, 30)
	return c.done()
}

func Class(cl record.Class) *Result {
	c := newChecker(record.KindClass, cl.Name, cl.Source)
	c.requireName(cl.Name)
	c.requireSource(cl.Source)
	if cl.HitDice == "" {
		c.fail(20, "missing required field: hit_dice")
	}
	if len(cl.Features) == 0 {
		c.warn(4, "no class features extracted")
	}
	c.checkDescription(cl.Description, 40)
	return c.done()
}

func Subclass(s record.Subclass) *Result {
	c := newChecker(record.KindSubclass, s.Name, s.Source)
	c.requireName(s.Name)
	c.requireSource(s.Source)
	if s.ParentClass == "" {
		c.fail(25, "missing required field: parent_class")
	}
	c.checkDescription(s.Description, 30)
	return c.done()
}

func Race(r record.Race) *Result {
	c := newChecker(record.KindRace, r.Name, r.Source)
	c.requireName(r.Name)
	c.requireSource(r.Source)
	if r.Size == "" {
		c.fail(15, "missing required field: size")
	} else {
		c.checkEnum("size", r.Size, record.Sizes)
	}
	c.checkRange("speed", float64(r.Speed), 0, 120)
	c.checkDescription(r.Description, 30)
	return c.done()
}

func Feat(f record.Feat) *Result {
	c := newChecker(record.KindFeat, f.Name, f.Source)
	c.requireName(f.Name)
	c.requireSource(f.Source)
	c.checkDescription(f.Description, 20)
	return c.done()
}

func Trap(t record.Trap) *Result {
	c := newChecker(record.KindTrap, t.Name, t.Source)
	c.requireName(t.Name)
	c.requireSource(t.Source)
	if t.Threat == "" {
		c.fail(15, "missing required field: threat")
	} else {
		c.checkEnum("threat", t.Threat, record.Threats)
	}
	if t.SaveDC != 0 {
		c.checkRange("save DC", float64(t.SaveDC), 5, 30)
	}
	c.checkDescription(t.Description, 25)
	return c.done()
}

func Puzzle(p record.Puzzle) *Result {
	c := newChecker(record.KindPuzzle, p.Name, p.Source)
	c.requireName(p.Name)
	c.requireSource(p.Source)
	if p.Difficulty == "" {
		c.fail(15, "missing required field: difficulty")
	} else {
		c.checkEnum("difficulty", p.Difficulty, record.Difficulty)
	}
	if p.Solution == "" {
		c.warn(4, "missing solution")
	}
	c.checkDescription(p.Description, 25)
	return c.done()
}

// Report aggregates validation results for a whole batch run.
type Report struct {
	Results  []*Result
	ByKind   map[record.Kind]int
	Invalid  int
	Warnings int
}

// Collection validates every record in c.
func Collection(c *record.Collection) *Report {
	report := &Report{ByKind: make(map[record.Kind]int)}
	add := func(r *Result) {
		report.Results = append(report.Results, r)
		report.ByKind[r.RecordType]++
		if !r.Valid() {
			report.Invalid++
		}
		report.Warnings += len(r.Warnings)
	}
	for _, s := range c.Spells {
		add(Spell(s))
	}
	for _, i := range c.Items {
		add(Item(i))
	}
	for _, m := range c.Monsters {
		add(Monster(m))
	}
	for _, cl := range c.Classes {
		add(Class(cl))
	}
	for _, s := range c.Subclasses {
		add(Subclass(s))
	}
	for _, r := range c.Races {
		add(Race(r))
	}
	for _, f := range c.Feats {
		add(Feat(f))
	}
	for _, t := range c.Traps {
		add(Trap(t))
	}
	for _, p := range c.Puzzles {
		add(Puzzle(p))
	}
	return report
}
