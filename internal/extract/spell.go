package extract

import (
	"regexp"
	"strings"

	"grimoire/internal/record"
)

const spellMinDesc = 20

var spellHeader = headerSpec{
	re:      regexp.MustCompile(`(?m)^ *#{0,4} *\*{0,2}([A-Z][A-Za-z'’\- ]{2,60}?)\*{0,2} *\n+\s*\*?(?:\d(?:st|nd|rd|th)[- ]level +[A-Za-z]+(?: +\(ritual\))?|[A-Za-z]+ +cantrip)\*?\s*$`),
	minName: 3,
	window:  3000,
	minDesc: spellMinDesc,
}

var (
	spellLevelRE         = regexp.MustCompile(`(?i)(\d)(?:st|nd|rd|th)[- ]level +([A-Za-z]+)`)
	spellCantripRE       = regexp.MustCompile(`(?i)^\s*\*?([A-Za-z]+) +cantrip`)
	spellRitualRE        = regexp.MustCompile(`(?i)\(ritual\)`)
	spellCastingTimeRE   = regexp.MustCompile(`(?i)casting time:? *([^\n]+)`)
	spellRangeRE         = regexp.MustCompile(`(?i)range:? *([^\n]+)`)
	spellComponentsRE    = regexp.MustCompile(`(?i)components:? *([VSM, ]+)(?:\(([^)]+)\))?`)
	spellDurationRE      = regexp.MustCompile(`(?i)duration:? *([^\n]+)`)
	spellClassesRE       = regexp.MustCompile(`(?i)classes:? *([^\n]+)`)
	spellConcentrationRE = regexp.MustCompile(`(?i)concentration`)
)

// Spells extracts spell records. A candidate is anchored by a name line
// followed by a "3rd-level evocation" or "Evocation cantrip" line; the
// school must belong to the eight known schools.
func Spells(text, source string) ([]record.Spell, int) {
	var spells []record.Spell
	blocks, rejected := scanBlocks(text, spellHeader)

	for _, b := range blocks {
		b := b
		ok := guard(func() {
			spell, accepted := parseSpell(b, source)
			if !accepted {
				rejected++
				return
			}
			spells = append(spells, spell)
		})
		if !ok {
			rejected++
		}
	}
	return spells, rejected
}

func parseSpell(b block, source string) (record.Spell, bool) {
	spell := record.Spell{Name: b.name, Source: source}

	if m := spellLevelRE.FindStringSubmatch(b.body); m != nil {
		spell.Level = intOr(m[1], 0)
		spell.School = strings.ToLower(m[2])
	} else if m := spellCantripRE.FindStringSubmatch(b.body); m != nil {
		spell.Level = 0
		spell.School = strings.ToLower(m[1])
	} else {
		return spell, false
	}
	if !knownSchool(spell.School) {
		return spell, false
	}
	spell.Ritual = spellRitualRE.MatchString(firstLines(b.body, 2))

	spell.CastingTime = firstGroup(spellCastingTimeRE, b.body)
	spell.Range = firstGroup(spellRangeRE, b.body)
	spell.Duration = firstGroup(spellDurationRE, b.body)
	spell.Concentration = spellConcentrationRE.MatchString(spell.Duration)

	if m := spellComponentsRE.FindStringSubmatch(b.body); m != nil {
		for _, c := range strings.Split(m[1], ",") {
			c = strings.TrimSpace(c)
			if c == "V" || c == "S" || c == "M" {
				spell.Components = append(spell.Components, c)
			}
		}
		spell.MaterialComponents = strings.TrimSpace(m[2])
	}

	if classes := firstGroup(spellClassesRE, b.body); classes != "" {
		for _, c := range strings.Split(classes, ",") {
			if c = strings.TrimSpace(c); c != "" {
				spell.Classes = append(spell.Classes, c)
			}
		}
	}

	spell.Description = spellDescription(b.body)
	if len(spell.Description) < spellMinDesc {
		return spell, false
	}
	return spell, true
}

// spellDescription takes everything after the last labeled stat line.
func spellDescription(body string) string {
	idx := 0
	for _, re := range []*regexp.Regexp{spellCastingTimeRE, spellRangeRE, spellComponentsRE, spellDurationRE, spellClassesRE} {
		if loc := re.FindStringIndex(body); loc != nil && loc[1] > idx {
			idx = loc[1]
		}
	}
	return collapseWS(body[idx:])
}

func knownSchool(school string) bool {
	for _, s := range record.Schools {
		if s == school {
			return true
		}
	}
	return false
}

// firstLines returns the first n lines of s.
func firstLines(s string, n int) string {
	lines := strings.SplitN(s, "\n", n+1)
	if len(lines) > n {
		lines = lines[:n]
	}
	return strings.Join(lines, "\n")
}
