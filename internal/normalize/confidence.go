package normalize

// ConfidenceInput names the completeness signals that feed the
// extraction-confidence score.
type ConfidenceInput struct {
	HasWeight         bool
	HasCost           bool
	HasDescription    bool
	DescriptionLength int
	HasStructuredData bool
	Kind              string
}

// Confidence computes the heuristic 0..100 completeness score. Additive:
// +20 weight, +20 cost, +20 description (+10 beyond 50 chars, +10 more
// beyond 100), +10 structured sub-data, +10 for a classified kind.
// Advisory only; it estimates completeness, not correctness.
func Confidence(in ConfidenceInput) int {
	score := 0
	if in.HasWeight {
		score += 20
	}
	if in.HasCost {
		score += 20
	}
	if in.HasDescription {
		score += 20
		if in.DescriptionLength > 50 {
			score += 10
		}
		if in.DescriptionLength > 100 {
			score += 10
		}
	}
	if in.HasStructuredData {
		score += 10
	}
	if in.Kind != "" && in.Kind != "other" {
		score += 10
	}
	if score > 100 {
		score = 100
	}
	return score
}
