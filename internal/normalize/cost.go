// Package normalize converts freeform cost and weight strings into
// canonical numeric and categorical forms, and computes the heuristic
// extraction-confidence score from record completeness.
package normalize

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"grimoire/internal/record"
)

// Coin ratios relative to one gold piece.
const (
	CopperToGP   = 0.01
	SilverToGP   = 0.1
	PlatinumToGP = 10.0
)

var costPattern = regexp.MustCompile(`(?i)([\d,]+(?:\.\d+)?)\s*(cp|sp|gp|pp|copper|silver|gold|platinum)?`)

var unitRatios = map[string]float64{
	"cp": CopperToGP, "copper": CopperToGP,
	"sp": SilverToGP, "silver": SilverToGP,
	"gp": 1, "gold": 1,
	"pp": PlatinumToGP, "platinum": PlatinumToGP,
}

// knownCosts maps name substrings to book prices in gp. Checked before
// any rarity estimate so staple gear keeps its listed price.
var knownCosts = []struct {
	substr string
	gp     float64
}{
	{"potion of healing", 50},
	{"potion of greater healing", 150},
	{"spell scroll", 100},
	{"holy water", 25},
	{"antitoxin", 50},
	{"acid", 25},
	{"alchemist's fire", 50},
	{"healer's kit", 5},
	{"thieves' tools", 25},
	{"longsword", 15},
	{"shortsword", 10},
	{"greatsword", 50},
	{"dagger", 2},
	{"shortbow", 25},
	{"longbow", 50},
	{"crossbow", 25},
	{"shield", 10},
	{"chain mail", 75},
	{"plate", 1500},
	{"leather armor", 10},
	{"studded leather", 45},
	{"rope", 1},
	{"torch", 0.01},
	{"lantern", 5},
	{"rations", 0.5},
	{"waterskin", 0.2},
	{"bedroll", 1},
	{"backpack", 2},
}

// rarityEstimates gives ballpark prices per rarity tier for items with no
// listed cost.
var rarityEstimates = map[string]float64{
	"common":    75,
	"uncommon":  300,
	"rare":      2500,
	"very_rare": 25000,
	"legendary": 250000,
	"artifact":  5000000,
}

// kindMultipliers adjust rarity estimates per item kind.
var kindMultipliers = map[string]float64{
	"armor":      1.2,
	"consumable": 0.5,
	"tool":       0.8,
}

// kindDefaults are the last-resort prices when nothing else applies.
var kindDefaults = map[string]float64{
	"weapon":     15,
	"armor":      50,
	"tool":       10,
	"consumable": 25,
}

// ParseCost converts a freeform cost string such as "150 gp", "25 silver"
// or a bare number (assumed gp) into gold pieces. Returns false when the
// string holds no parseable amount.
func ParseCost(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	m := costPattern.FindStringSubmatch(raw)
	if m == nil {
		return 0, false
	}
	amount, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
	if err != nil {
		return 0, false
	}
	ratio := 1.0
	if m[2] != "" {
		ratio = unitRatios[strings.ToLower(m[2])]
	}
	return amount * ratio, true
}

// ItemCost resolves an item's canonical gp cost. Order: the raw cost
// string from the source, then the known-cost table by name substring,
// then a rarity-tier estimate scaled by kind, then a kind-only default.
// The boolean reports whether the cost came from the source text.
func ItemCost(raw, name, kind, rarity string) (float64, bool) {
	if gp, ok := ParseCost(raw); ok {
		return gp, true
	}
	lower := strings.ToLower(name)
	for _, known := range knownCosts {
		if strings.Contains(lower, known.substr) {
			return known.gp, false
		}
	}
	if estimate, ok := rarityEstimates[strings.ToLower(rarity)]; ok {
		if mult, ok := kindMultipliers[kind]; ok {
			estimate *= mult
		}
		return estimate, false
	}
	if fallback, ok := kindDefaults[kind]; ok {
		return fallback, false
	}
	return 10, false
}

// Breakdown splits a gp value into platinum, gold, silver and copper
// coins. Sub-copper remainders round to the nearest copper.
func Breakdown(gp float64) record.CostBreakdown {
	if gp < 0 {
		gp = 0
	}
	copper := int(math.Round(gp * 100))
	b := record.CostBreakdown{}
	b.PP = copper / 1000
	copper -= b.PP * 1000
	b.GP = copper / 100
	copper -= b.GP * 100
	b.SP = copper / 10
	copper -= b.SP * 10
	b.CP = copper
	return b
}

// BreakdownGP recombines a coin breakdown into gold pieces.
func BreakdownGP(b record.CostBreakdown) float64 {
	return float64(b.PP)*10 + float64(b.GP) + float64(b.SP)*0.1 + float64(b.CP)*0.01
}
