package extract

import (
	"regexp"
	"strings"

	"grimoire/internal/record"
)

const (
	featMinDesc    = 20
	featBackWindow = 3000
)

var featHeader = headerSpec{
	re:      regexp.MustCompile(`(?m)^ *#{0,4} *\*{0,2}([A-Z][A-Za-z'’\- ]{2,40}?)\*{0,2} *\n(?:[^\n]*\n){0,2}?[^\n]{0,40}(?i:prerequisite)`),
	minName: 3,
	window:  2000,
	minDesc: featMinDesc,
}

var (
	featPrereqRE  = regexp.MustCompile(`(?i)prerequisites?[.:]? *\*{0,2}([^\n*]+)`)
	featContextRE = regexp.MustCompile(`(?i)\bfeats?\b`)
	featLabelRE   = regexp.MustCompile(`(?im)^[^\n]{0,40}prerequisites?[.:][^\n]*$`)
)

// Feats extracts feats. Candidates are anchored by a name line followed
// by a Prerequisite label and need the word "feat" in the preceding
// context window.
func Feats(text, source string) ([]record.Feat, int) {
	var feats []record.Feat
	blocks, rejected := scanBlocks(text, featHeader)

	for _, b := range blocks {
		b := b
		ok := guard(func() {
			if !backwardContext(text, b.start, featBackWindow, featContextRE) {
				rejected++
				return
			}
			feat, accepted := parseFeat(b, source)
			if !accepted {
				rejected++
				return
			}
			feats = append(feats, feat)
		})
		if !ok {
			rejected++
		}
	}
	return feats, rejected
}

func parseFeat(b block, source string) (record.Feat, bool) {
	feat := record.Feat{Name: b.name, Source: source}

	prereq := firstGroup(featPrereqRE, b.body)
	if !strings.EqualFold(prereq, "none") {
		feat.Prerequisite = prereq
	}

	feat.Description = collapseWS(featLabelRE.ReplaceAllString(b.body, ""))
	if len(feat.Description) < featMinDesc {
		return feat, false
	}
	return feat, true
}
