// Package extract scans rulebook text for structural markers and emits
// typed candidate records. Each content kind declares a header spec
// (anchored pattern, name floor, block window, description floor) and a
// table of field rules applied inside the block window; candidates that
// fail a quality gate are dropped silently and counted.
package extract

import (
	"regexp"
	"strconv"
	"strings"

	"grimoire/internal/record"
)

// headerSpec bounds candidate discovery for one content kind.
type headerSpec struct {
	re      *regexp.Regexp // multiline; group 1 captures the candidate name
	minName int
	window  int // max block size when no next header is found
	minDesc int
}

// block is one candidate: the matched name and its block window.
type block struct {
	name  string
	body  string
	start int
}

// denylist holds names that recur in rulebooks without ever being
// entities: layout words, section labels, function words.
var denylist = map[string]struct{}{
	"table": {}, "chapter": {}, "appendix": {}, "contents": {},
	"table of contents": {}, "index": {}, "introduction": {},
	"credits": {}, "preface": {}, "foreword": {}, "glossary": {},
	"part": {}, "section": {}, "page": {}, "note": {}, "notes": {},
	"example": {}, "sidebar": {}, "variant": {}, "optional rule": {},
	"the": {}, "and": {}, "for": {}, "with": {}, "new": {},
}

// rejectName reports whether a candidate name fails the false-positive
// checks: denylisted, too short, a stray single letter, or all digits.
func rejectName(name string, minLen int) bool {
	trimmed := strings.TrimSpace(name)
	if len(trimmed) < minLen {
		return true
	}
	lower := strings.ToLower(trimmed)
	if _, ok := denylist[lower]; ok {
		return true
	}
	for _, word := range strings.Fields(lower) {
		if word == "table" || word == "chapter" || word == "appendix" {
			return true
		}
	}
	if regexp.MustCompile(`^\d+$`).MatchString(trimmed) {
		return true
	}
	return false
}

// scanBlocks finds every candidate header in text and computes each
// block window: up to the next header of the same kind, or spec.window
// characters when none follows in range. The second return value counts
// candidates dropped by the name checks.
func scanBlocks(text string, spec headerSpec) ([]block, int) {
	matches := spec.re.FindAllStringSubmatchIndex(text, -1)
	blocks := make([]block, 0, len(matches))
	rejected := 0
	for i, m := range matches {
		name := cleanName(text[m[2]:m[3]])
		if rejectName(name, spec.minName) {
			rejected++
			continue
		}
		// The window opens right after the name so anchor context (the
		// level line, the Cost: label) stays visible to field rules.
		start := m[3]
		end := start + spec.window
		if i+1 < len(matches) && matches[i+1][0] < end {
			end = matches[i+1][0]
		}
		if end > len(text) {
			end = len(text)
		}
		blocks = append(blocks, block{name: name, body: text[start:end], start: m[0]})
	}
	return blocks, rejected
}

func cleanName(s string) string {
	s = strings.Trim(s, "*# \t")
	return strings.Join(strings.Fields(s), " ")
}

// firstGroup returns the first capture group of re in body, trimmed, or
// "" when nothing matches.
func firstGroup(re *regexp.Regexp, body string) string {
	m := re.FindStringSubmatch(body)
	if m == nil {
		return ""
	}
	for _, g := range m[1:] {
		if g != "" {
			return strings.TrimSpace(g)
		}
	}
	return ""
}

// intOr parses s as an integer, returning fallback when it is empty or
// malformed.
func intOr(s string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fallback
	}
	return n
}

func floatOr(s string, fallback float64) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return fallback
	}
	return f
}

var featureRE = regexp.MustCompile(`(?m)^\*{2,3}([A-Z][^*\n]{1,80})[.:]?\*{2,3}\.?\s*(.+)$`)

// parseFeatures extracts `**Name.** description` sub-blocks from body.
// Descriptions run to the next feature or a blank line.
func parseFeatures(body string) []record.Feature {
	matches := featureRE.FindAllStringSubmatchIndex(body, -1)
	features := make([]record.Feature, 0, len(matches))
	for i, m := range matches {
		name := strings.TrimRight(strings.TrimSpace(body[m[2]:m[3]]), ".:")
		descStart := m[4]
		descEnd := len(body)
		if i+1 < len(matches) {
			descEnd = matches[i+1][0]
		}
		if gap := strings.Index(body[descStart:descEnd], "\n\n"); gap >= 0 {
			descEnd = descStart + gap
		}
		desc := strings.Join(strings.Fields(body[descStart:descEnd]), " ")
		if name == "" || desc == "" {
			continue
		}
		features = append(features, record.Feature{Name: name, Description: desc})
	}
	return features
}

// sectionBetween returns the text between the first occurrence of a
// heading matching startRE and the next heading matching any of nextREs
// (or end of body).
func sectionBetween(body string, startRE *regexp.Regexp, nextREs ...*regexp.Regexp) string {
	loc := startRE.FindStringIndex(body)
	if loc == nil {
		return ""
	}
	section := body[loc[1]:]
	end := len(section)
	for _, re := range nextREs {
		if next := re.FindStringIndex(section); next != nil && next[0] < end {
			end = next[0]
		}
	}
	return section[:end]
}

// collapseWS joins any whitespace runs in s into single spaces.
func collapseWS(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Result bundles every record extracted from one text blob.
type Result struct {
	Records  record.Collection
	Rejected int
}

// All runs the nine extractors over text. A panic while processing one
// candidate never escapes an extractor, so a malformed block cannot
// abort the scan.
func All(text, source string) Result {
	var res Result
	var n int

	res.Records.Spells, n = Spells(text, source)
	res.Rejected += n
	res.Records.Items, n = Items(text, source)
	res.Rejected += n
	res.Records.Monsters, n = Monsters(text, source)
	res.Rejected += n
	res.Records.Classes, n = Classes(text, source)
	res.Rejected += n
	res.Records.Subclasses, n = Subclasses(text, source)
	res.Rejected += n
	res.Records.Races, n = Races(text, source)
	res.Rejected += n
	res.Records.Feats, n = Feats(text, source)
	res.Rejected += n
	res.Records.Traps, n = Traps(text, source)
	res.Rejected += n
	res.Records.Puzzles, n = Puzzles(text, source)
	res.Rejected += n

	return res
}

// guard runs fn and swallows any panic, reporting whether fn completed.
// Extractors wrap per-candidate work in guard so one pathological block
// only costs that candidate.
func guard(fn func()) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			ok = false
		}
	}()
	fn()
	return true
}
