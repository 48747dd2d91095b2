package extract

import (
	"regexp"
	"strings"

	"grimoire/internal/record"
)

const monsterMinDesc = 30

var monsterHeader = headerSpec{
	re:      regexp.MustCompile(`(?m)^ *#{0,4} *\*{0,2}([A-Z][A-Za-z'’\- ,()]{2,60}?)\*{0,2} *\n+\*?(?i:Tiny|Small|Medium|Large|Huge|Gargantuan) +[a-z]`),
	minName: 3,
	window:  5000,
	minDesc: monsterMinDesc,
}

var (
	monsterSizeTypeRE = regexp.MustCompile(`(?im)^\s*\*?(tiny|small|medium|large|huge|gargantuan) +([a-z][a-z ()]*?)(?:, *([a-z\- ]+))?\*? *$`)
	monsterACRE       = regexp.MustCompile(`(?i)armor class:? *(\d+)`)
	monsterHPRE       = regexp.MustCompile(`(?i)hit points:? *(\d+)(?: *\(([^)]+)\))?`)
	monsterSpeedRE    = regexp.MustCompile(`(?i)speed:? *(\d+) *ft`)
	monsterCRRE       = regexp.MustCompile(`(?i)challenge:? *(\d+(?:/\d+)?)`)

	actionsHeadingRE   = regexp.MustCompile(`(?im)^ *#{0,4} *\*{0,2}actions\*{0,2} *$`)
	legendaryHeadingRE = regexp.MustCompile(`(?im)^ *#{0,4} *\*{0,2}legendary actions\*{0,2} *$`)
	reactionsHeadingRE = regexp.MustCompile(`(?im)^ *#{0,4} *\*{0,2}reactions\*{0,2} *$`)
	lairHeadingRE      = regexp.MustCompile(`(?im)^ *#{0,4} *\*{0,2}lair actions\*{0,2} *$`)
)

var abilityREs = map[string]*regexp.Regexp{
	"str": regexp.MustCompile(`(?i)\bSTR\b[^0-9]{0,20}(\d+)`),
	"dex": regexp.MustCompile(`(?i)\bDEX\b[^0-9]{0,20}(\d+)`),
	"con": regexp.MustCompile(`(?i)\bCON\b[^0-9]{0,20}(\d+)`),
	"int": regexp.MustCompile(`(?i)\bINT\b[^0-9]{0,20}(\d+)`),
	"wis": regexp.MustCompile(`(?i)\bWIS\b[^0-9]{0,20}(\d+)`),
	"cha": regexp.MustCompile(`(?i)\bCHA\b[^0-9]{0,20}(\d+)`),
}

// Monsters extracts stat blocks. Candidates are anchored by a name line
// followed by a "<Size> <type>" line; absent numeric fields fall back to
// documented defaults (AC 10, HP 10, speed 30, abilities 10) and the
// defaulted field names are listed in Assumed.
func Monsters(text, source string) ([]record.Monster, int) {
	var monsters []record.Monster
	blocks, rejected := scanBlocks(text, monsterHeader)

	for _, b := range blocks {
		b := b
		ok := guard(func() {
			monster, accepted := parseMonster(b, source)
			if !accepted {
				rejected++
				return
			}
			monsters = append(monsters, monster)
		})
		if !ok {
			rejected++
		}
	}
	return monsters, rejected
}

func parseMonster(b block, source string) (record.Monster, bool) {
	m := record.Monster{
		Name:             b.name,
		Source:           source,
		Traits:           []record.Feature{},
		Actions:          []record.Feature{},
		LegendaryActions: []record.Feature{},
		Reactions:        []record.Feature{},
		LairActions:      []record.Feature{},
	}

	st := monsterSizeTypeRE.FindStringSubmatch(b.body)
	if st == nil {
		return m, false
	}
	m.Size = canonicalSize(st[1])
	m.Type = strings.TrimSpace(st[2])
	m.Alignment = strings.TrimSpace(st[3])
	if !knownSize(m.Size) {
		return m, false
	}

	if v := firstGroup(monsterACRE, b.body); v != "" {
		m.ArmorClass = intOr(v, 10)
	} else {
		m.ArmorClass = 10
		m.Assumed = append(m.Assumed, "armor_class")
	}
	if hp := monsterHPRE.FindStringSubmatch(b.body); hp != nil {
		m.HitPoints = intOr(hp[1], 10)
		m.HitDice = strings.TrimSpace(hp[2])
	} else {
		m.HitPoints = 10
		m.Assumed = append(m.Assumed, "hit_points")
	}
	if v := firstGroup(monsterSpeedRE, b.body); v != "" {
		m.Speed = intOr(v, 30)
	} else {
		m.Speed = 30
		m.Assumed = append(m.Assumed, "speed")
	}

	m.Stats = parseStats(b.body, &m.Assumed)

	if cr := firstGroup(monsterCRRE, b.body); cr != "" {
		m.ChallengeRating = parseCR(cr)
	} else {
		m.Assumed = append(m.Assumed, "challenge_rating")
	}

	// Everything after the Challenge line belongs to traits and the
	// named action sections; absent sections yield empty arrays.
	narrative := b.body
	if loc := monsterCRRE.FindStringIndex(b.body); loc != nil {
		narrative = b.body[loc[1]:]
	}
	traitText := narrative
	if loc := firstHeading(narrative); loc >= 0 {
		traitText = narrative[:loc]
	}
	m.Traits = parseFeatures(traitText)
	m.Actions = parseFeatures(sectionBetween(narrative, actionsHeadingRE, legendaryHeadingRE, reactionsHeadingRE, lairHeadingRE))
	m.LegendaryActions = parseFeatures(sectionBetween(narrative, legendaryHeadingRE, actionsHeadingRE, reactionsHeadingRE, lairHeadingRE))
	m.Reactions = parseFeatures(sectionBetween(narrative, reactionsHeadingRE, actionsHeadingRE, legendaryHeadingRE, lairHeadingRE))
	m.LairActions = parseFeatures(sectionBetween(narrative, lairHeadingRE, actionsHeadingRE, legendaryHeadingRE, reactionsHeadingRE))

	m.Description = collapseWS(narrative)
	if len(m.Description) < monsterMinDesc {
		return m, false
	}
	return m, true
}

func parseStats(body string, assumed *[]string) record.Stats {
	stats := record.Stats{Str: 10, Dex: 10, Con: 10, Int: 10, Wis: 10, Cha: 10}
	set := func(field *int, name string) {
		if v := firstGroup(abilityREs[name], body); v != "" {
			*field = intOr(v, 10)
		} else {
			*assumed = append(*assumed, name)
		}
	}
	set(&stats.Str, "str")
	set(&stats.Dex, "dex")
	set(&stats.Con, "con")
	set(&stats.Int, "int")
	set(&stats.Wis, "wis")
	set(&stats.Cha, "cha")
	return stats
}

// parseCR handles whole and fractional challenge ratings ("1/8", "5").
func parseCR(raw string) float64 {
	if num, den, ok := strings.Cut(raw, "/"); ok {
		n := floatOr(num, 0)
		d := floatOr(den, 1)
		if d == 0 {
			return 0
		}
		return n / d
	}
	return floatOr(raw, 0)
}

// firstHeading returns the offset of the first action-section heading in
// s, or -1.
func firstHeading(s string) int {
	first := -1
	for _, re := range []*regexp.Regexp{actionsHeadingRE, legendaryHeadingRE, reactionsHeadingRE, lairHeadingRE} {
		if loc := re.FindStringIndex(s); loc != nil && (first < 0 || loc[0] < first) {
			first = loc[0]
		}
	}
	return first
}

func canonicalSize(raw string) string {
	if raw == "" {
		return ""
	}
	return strings.ToUpper(raw[:1]) + strings.ToLower(raw[1:])
}

func knownSize(size string) bool {
	for _, s := range record.Sizes {
		if s == size {
			return true
		}
	}
	return false
}
