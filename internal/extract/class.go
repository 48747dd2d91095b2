package extract

import (
	"regexp"
	"strings"

	"grimoire/internal/record"
)

const (
	classMinDesc    = 40
	subclassMinDesc = 30
	classBackWindow = 5000
)

var classHeader = headerSpec{
	re:      regexp.MustCompile(`(?m)^ *#{0,4} *\*{0,2}([A-Z][A-Za-z'’ ]{2,40}?)\*{0,2} *\n(?:[^\n]*\n){0,6}?[^\n]{0,40}(?i:hit dice|hit die):`),
	minName: 3,
	window:  5000,
	minDesc: classMinDesc,
}

var subclassHeader = headerSpec{
	re:      regexp.MustCompile(`(?m)^ *#{0,4} *\*{0,2}((?:Path|College|Circle|Oath|Way|School|Domain) of (?:the )?[A-Z][A-Za-z'’ ]{2,40}?|[A-Z][A-Za-z'’ ]{2,40}? (?:Archetype|Tradition|Domain|Conclave|Patron))\*{0,2} *$`),
	minName: 3,
	window:  4000,
	minDesc: subclassMinDesc,
}

var (
	classHitDiceRE = regexp.MustCompile(`(?i)hit (?:dice|die):? *\*{0,2}1?(d\d+)`)
	classPrimaryRE = regexp.MustCompile(`(?i)primary (?:ability|stat):? *\*{0,2}([^\n*]+)`)
	classSavesRE   = regexp.MustCompile(`(?i)saving throws?(?: proficiencies)?:? *\*{0,2}([^\n*]+)`)
	classContextRE = regexp.MustCompile(`(?i)\bclass(?:es)?\b`)
	classLabelRE   = regexp.MustCompile(`(?im)^[^\n]{0,60}(?:hit dice|hit die|primary ability|primary stat|saving throws?|proficienc)[^\n]*$`)
)

// parentClasses are the class names a subclass may attach to.
var parentClasses = []string{
	"Artificer", "Barbarian", "Bard", "Cleric", "Druid", "Fighter",
	"Monk", "Paladin", "Ranger", "Rogue", "Sorcerer", "Warlock", "Wizard",
}

// Classes extracts character classes. A candidate needs a Hit Dice label
// near its name and the word "class" somewhere in the preceding context
// window; without that context it is rejected as a likely stray heading.
func Classes(text, source string) ([]record.Class, int) {
	var classes []record.Class
	blocks, rejected := scanBlocks(text, classHeader)

	for _, b := range blocks {
		b := b
		ok := guard(func() {
			if !backwardContext(text, b.start, classBackWindow, classContextRE) {
				rejected++
				return
			}
			class, accepted := parseClass(b, source)
			if !accepted {
				rejected++
				return
			}
			classes = append(classes, class)
		})
		if !ok {
			rejected++
		}
	}
	return classes, rejected
}

func parseClass(b block, source string) (record.Class, bool) {
	class := record.Class{Name: b.name, Source: source, Features: []record.Feature{}}

	if m := classHitDiceRE.FindStringSubmatch(b.body); m != nil {
		class.HitDice = "1" + strings.ToLower(m[1])
	} else {
		return class, false
	}
	class.PrimaryStat = firstGroup(classPrimaryRE, b.body)
	if saves := firstGroup(classSavesRE, b.body); saves != "" {
		for _, s := range strings.Split(saves, ",") {
			if s = strings.TrimSpace(s); s != "" {
				class.SavingThrows = append(class.SavingThrows, s)
			}
		}
	}
	class.Features = parseFeatures(b.body)

	class.Description = collapseWS(classLabelRE.ReplaceAllString(b.body, ""))
	if len(class.Description) < classMinDesc {
		return class, false
	}
	return class, true
}

// Subclasses extracts subclass records. Candidates look like "Path of
// the Berserker" or "Arcane Tradition"; the parent class is inferred by
// scanning backward through the preceding context window, and candidates
// with no plausible parent are rejected.
func Subclasses(text, source string) ([]record.Subclass, int) {
	var subclasses []record.Subclass
	blocks, rejected := scanBlocks(text, subclassHeader)

	for _, b := range blocks {
		b := b
		ok := guard(func() {
			parent := inferParentClass(text, b.start, subclassHeader.window)
			if parent == "" {
				rejected++
				return
			}
			sub, accepted := parseSubclass(b, source, parent)
			if !accepted {
				rejected++
				return
			}
			subclasses = append(subclasses, sub)
		})
		if !ok {
			rejected++
		}
	}
	return subclasses, rejected
}

func parseSubclass(b block, source, parent string) (record.Subclass, bool) {
	sub := record.Subclass{
		Name:        b.name,
		Source:      source,
		ParentClass: parent,
		Features:    []record.Feature{},
	}
	sub.Features = parseFeatures(b.body)
	sub.Description = collapseWS(b.body)
	if len(sub.Description) < subclassMinDesc {
		return sub, false
	}
	return sub, true
}

// inferParentClass finds the class name mentioned closest before offset,
// searching at most window characters back.
func inferParentClass(text string, offset, window int) string {
	start := offset - window
	if start < 0 {
		start = 0
	}
	context := text[start:offset]

	best := ""
	bestPos := -1
	for _, class := range parentClasses {
		re := regexp.MustCompile(`(?i)\b` + class + `s?\b`)
		locs := re.FindAllStringIndex(context, -1)
		if len(locs) == 0 {
			continue
		}
		last := locs[len(locs)-1][0]
		if last > bestPos {
			bestPos = last
			best = class
		}
	}
	return best
}

// backwardContext reports whether re matches within the window chars
// preceding offset.
func backwardContext(text string, offset, window int, re *regexp.Regexp) bool {
	start := offset - window
	if start < 0 {
		start = 0
	}
	return re.MatchString(text[start:offset])
}
