package extract

import (
	"regexp"
	"strings"

	"grimoire/internal/record"
)

const (
	trapMinDesc   = 25
	puzzleMinDesc = 25
)

var trapHeader = headerSpec{
	re:      regexp.MustCompile(`(?m)^ *#{0,4} *\*{0,2}([A-Z][A-Za-z'’\- ]{2,50}?)\*{0,2} *\n(?:[^\n]*\n){0,2}?[^\n]{0,80}(?i:mechanical trap|magic trap|trap\b)`),
	minName: 3,
	window:  2500,
	minDesc: trapMinDesc,
}

var puzzleHeader = headerSpec{
	re:      regexp.MustCompile(`(?m)^ *#{0,4} *\*{0,2}([A-Z][A-Za-z'’\- ]{2,50}?)\*{0,2} *\n(?:[^\n]*\n){0,2}?[^\n]{0,80}(?i:puzzle)`),
	minName: 3,
	window:  2500,
	minDesc: puzzleMinDesc,
}

var (
	trapThreatRE  = regexp.MustCompile(`(?i)\b(setback|dangerous|deadly)\b`)
	trapTriggerRE = regexp.MustCompile(`(?i)trigger[.:]? *\*{0,2}([^\n*]+)`)
	trapEffectRE  = regexp.MustCompile(`(?i)effect[.:]? *\*{0,2}([^\n*]+)`)
	trapDCRE      = regexp.MustCompile(`(?i)\bDC *(\d+)`)
	puzzleDiffRE  = regexp.MustCompile(`(?i)difficulty[.:]? *\*{0,2}(easy|medium|hard|deadly)`)
	puzzleSolRE   = regexp.MustCompile(`(?i)solution[.:]? *\*{0,2}([^\n*]+)`)
	puzzleHintRE  = regexp.MustCompile(`(?im)^ *\*{0,2}hints? *\d*[.:]\*{0,2} *([^\n]+)`)
)

// Traps extracts traps. The threat level must belong to the closed
// setback/dangerous/deadly set or the candidate is dropped.
func Traps(text, source string) ([]record.Trap, int) {
	var traps []record.Trap
	blocks, rejected := scanBlocks(text, trapHeader)

	for _, b := range blocks {
		b := b
		ok := guard(func() {
			trap, accepted := parseTrap(b, source)
			if !accepted {
				rejected++
				return
			}
			traps = append(traps, trap)
		})
		if !ok {
			rejected++
		}
	}
	return traps, rejected
}

func parseTrap(b block, source string) (record.Trap, bool) {
	trap := record.Trap{Name: b.name, Source: source}

	trap.Threat = strings.ToLower(firstGroup(trapThreatRE, firstLines(b.body, 4)))
	if !knownThreat(trap.Threat) {
		return trap, false
	}
	trap.Trigger = firstGroup(trapTriggerRE, b.body)
	trap.Effect = firstGroup(trapEffectRE, b.body)
	trap.SaveDC = intOr(firstGroup(trapDCRE, b.body), 0)

	trap.Description = collapseWS(b.body)
	if len(trap.Description) < trapMinDesc {
		return trap, false
	}
	return trap, true
}

// Puzzles extracts puzzles. The difficulty must belong to the closed
// easy/medium/hard/deadly set.
func Puzzles(text, source string) ([]record.Puzzle, int) {
	var puzzles []record.Puzzle
	blocks, rejected := scanBlocks(text, puzzleHeader)

	for _, b := range blocks {
		b := b
		ok := guard(func() {
			puzzle, accepted := parsePuzzle(b, source)
			if !accepted {
				rejected++
				return
			}
			puzzles = append(puzzles, puzzle)
		})
		if !ok {
			rejected++
		}
	}
	return puzzles, rejected
}

func parsePuzzle(b block, source string) (record.Puzzle, bool) {
	puzzle := record.Puzzle{Name: b.name, Source: source}

	puzzle.Difficulty = strings.ToLower(firstGroup(puzzleDiffRE, b.body))
	if !knownDifficulty(puzzle.Difficulty) {
		return puzzle, false
	}
	puzzle.Solution = firstGroup(puzzleSolRE, b.body)
	for _, m := range puzzleHintRE.FindAllStringSubmatch(b.body, -1) {
		if hint := strings.TrimSpace(m[1]); hint != "" {
			puzzle.Hints = append(puzzle.Hints, hint)
		}
	}

	puzzle.Description = collapseWS(b.body)
	if len(puzzle.Description) < puzzleMinDesc {
		return puzzle, false
	}
	return puzzle, true
}

func knownThreat(threat string) bool {
	for _, t := range record.Threats {
		if t == threat {
			return true
		}
	}
	return false
}

func knownDifficulty(difficulty string) bool {
	for _, d := range record.Difficulty {
		if d == difficulty {
			return true
		}
	}
	return false
}
