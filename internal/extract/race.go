package extract

import (
	"regexp"
	"strings"

	"grimoire/internal/record"
)

const (
	raceMinDesc    = 30
	raceBackWindow = 4000
)

var raceHeader = headerSpec{
	re:      regexp.MustCompile(`(?m)^ *#{0,4} *\*{0,2}([A-Z][A-Za-z'’\- ]{2,40}?)\*{0,2} *\n(?:[^\n]*\n){0,4}?[^\n]{0,60}(?i:ability score increase)`),
	minName: 3,
	window:  4000,
	minDesc: raceMinDesc,
}

var (
	raceBonusesRE = regexp.MustCompile(`(?i)ability score increase[.:]? *\*{0,2}([^\n*]+)`)
	raceSizeRE    = regexp.MustCompile(`(?i)size[.:]? *[^\n]*?\b(tiny|small|medium|large)\b`)
	raceSpeedRE   = regexp.MustCompile(`(?i)speed[.:]? *[^\n]*?(\d+) *(?:feet|ft)`)
	raceContextRE = regexp.MustCompile(`(?i)\brac(?:e|es|ial)\b|\bancestr|\blineage`)
)

// Races extracts playable races. Candidates are anchored by a name line
// with an "Ability Score Increase" trait nearby, and need race context
// in the preceding window; the size must be one of the playable sizes.
func Races(text, source string) ([]record.Race, int) {
	var races []record.Race
	blocks, rejected := scanBlocks(text, raceHeader)

	for _, b := range blocks {
		b := b
		ok := guard(func() {
			if !backwardContext(text, b.start, raceBackWindow, raceContextRE) {
				rejected++
				return
			}
			race, accepted := parseRace(b, source)
			if !accepted {
				rejected++
				return
			}
			races = append(races, race)
		})
		if !ok {
			rejected++
		}
	}
	return races, rejected
}

func parseRace(b block, source string) (record.Race, bool) {
	race := record.Race{Name: b.name, Source: source, Traits: []record.Feature{}}

	race.AbilityBonuses = firstGroup(raceBonusesRE, b.body)

	if m := raceSizeRE.FindStringSubmatch(b.body); m != nil {
		race.Size = canonicalSize(strings.ToLower(m[1]))
	} else {
		race.Size = "Medium"
		race.Assumed = append(race.Assumed, "size")
	}
	if !knownSize(race.Size) {
		return race, false
	}

	if v := firstGroup(raceSpeedRE, b.body); v != "" {
		race.Speed = intOr(v, 30)
	} else {
		race.Speed = 30
		race.Assumed = append(race.Assumed, "speed")
	}

	race.Traits = parseFeatures(b.body)
	race.Description = collapseWS(b.body)
	if len(race.Description) < raceMinDesc {
		return race, false
	}
	return race, true
}
