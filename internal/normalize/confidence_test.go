package normalize

import "testing"

func TestConfidence(t *testing.T) {
	cases := []struct {
		name  string
		in    ConfidenceInput
		score int
	}{
		{"empty", ConfidenceInput{}, 0},
		{"weight only", ConfidenceInput{HasWeight: true}, 20},
		{"short description", ConfidenceInput{HasDescription: true, DescriptionLength: 30}, 20},
		{"medium description", ConfidenceInput{HasDescription: true, DescriptionLength: 80}, 30},
		{"long description", ConfidenceInput{HasDescription: true, DescriptionLength: 200}, 40},
		{"unclassified kind scores nothing", ConfidenceInput{Kind: "other"}, 0},
		{"classified kind", ConfidenceInput{Kind: "weapon"}, 10},
		{
			"everything",
			ConfidenceInput{
				HasWeight:         true,
				HasCost:           true,
				HasDescription:    true,
				DescriptionLength: 500,
				HasStructuredData: true,
				Kind:              "armor",
			},
			100,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Confidence(tc.in)
			if got != tc.score {
				t.Fatalf("Confidence(%+v) = %d, want %d", tc.in, got, tc.score)
			}
			if got < 0 || got > 100 {
				t.Fatalf("score out of range: %d", got)
			}
		})
	}
}
