package normalize

import "regexp"

// PoundsToKG is the fixed conversion factor applied to listed weights.
const PoundsToKG = 0.453592

// Volume categories ordered from smallest carry slot to "does not carry".
const (
	VolumePouch  = "pouch"
	VolumeSheath = "sheath/quiver"
	VolumeHeld   = "held"
	VolumeBag    = "bag"
	VolumePack   = "backpack"
	VolumeWagon  = "wagon"
	VolumeTooBig = "too big"
)

// weightRule assigns a typical real-world weight and carry category when
// an item's name or description matches. Rules are checked in order; the
// first match wins, so specific subtypes precede broad categories.
type weightRule struct {
	pattern *regexp.Regexp
	kg      float64
	volume  string
}

var weightRules = []weightRule{
	// Weapon subtypes.
	{regexp.MustCompile(`(?i)\b(dagger|knife|dirk|stiletto)\b`), 0.4, VolumeSheath},
	{regexp.MustCompile(`(?i)\b(shortsword|short sword|scimitar|rapier)\b`), 1.0, VolumeSheath},
	{regexp.MustCompile(`(?i)\b(longsword|long sword|bastard sword|battleaxe|battle axe|warhammer|war hammer|mace|flail)\b`), 1.5, VolumeSheath},
	{regexp.MustCompile(`(?i)\b(greatsword|great sword|greataxe|great axe|maul|halberd|glaive|pike)\b`), 3.0, VolumeHeld},
	{regexp.MustCompile(`(?i)\b(shortbow|short bow|hand crossbow)\b`), 1.0, VolumeSheath},
	{regexp.MustCompile(`(?i)\b(longbow|long bow|heavy crossbow)\b`), 1.5, VolumeHeld},
	{regexp.MustCompile(`(?i)\b(sling|dart|blowgun)\b`), 0.1, VolumePouch},
	{regexp.MustCompile(`(?i)\b(quarterstaff|staff|spear|javelin|trident)\b`), 1.8, VolumeHeld},
	// Armor subtypes.
	{regexp.MustCompile(`(?i)\b(plate|full plate)\b`), 29.0, VolumeTooBig},
	{regexp.MustCompile(`(?i)\b(chain mail|chainmail|splint|ring mail)\b`), 25.0, VolumePack},
	{regexp.MustCompile(`(?i)\b(half plate|breastplate|scale mail)\b`), 18.0, VolumePack},
	{regexp.MustCompile(`(?i)\b(hide armor|chain shirt)\b`), 9.0, VolumePack},
	{regexp.MustCompile(`(?i)\b(leather armor|studded leather|padded)\b`), 5.0, VolumeBag},
	{regexp.MustCompile(`(?i)\bshield\b`), 2.7, VolumeHeld},
	{regexp.MustCompile(`(?i)\b(helm|helmet|gauntlet|bracer|greave)\b`), 1.5, VolumeBag},
	// Consumables and small trinkets.
	{regexp.MustCompile(`(?i)\b(potion|vial|elixir|philter|flask of)\b`), 0.25, VolumePouch},
	{regexp.MustCompile(`(?i)\b(scroll|parchment|letter|map)\b`), 0.05, VolumePouch},
	{regexp.MustCompile(`(?i)\b(ring|amulet|necklace|brooch|talisman|pendant|earring)\b`), 0.05, VolumePouch},
	{regexp.MustCompile(`(?i)\b(wand|rod)\b`), 0.5, VolumeSheath},
	{regexp.MustCompile(`(?i)\b(gem|gemstone|diamond|ruby|emerald|sapphire|pearl)\b`), 0.02, VolumePouch},
	{regexp.MustCompile(`(?i)\b(book|tome|grimoire|spellbook|manual)\b`), 1.5, VolumeBag},
	{regexp.MustCompile(`(?i)\b(cloak|robe|cape|mantle)\b`), 1.0, VolumeBag},
	{regexp.MustCompile(`(?i)\b(boots|shoes|slippers)\b`), 1.0, VolumeBag},
	// Large containers and furniture.
	{regexp.MustCompile(`(?i)\b(chest|coffer|strongbox)\b`), 12.0, VolumePack},
	{regexp.MustCompile(`(?i)\b(barrel|cask|keg)\b`), 30.0, VolumeWagon},
	{regexp.MustCompile(`(?i)\b(anvil|forge|loom|altar|statue|throne)\b`), 60.0, VolumeTooBig},
	{regexp.MustCompile(`(?i)\b(cart|wagon|carriage|boat|canoe)\b`), 200.0, VolumeTooBig},
	{regexp.MustCompile(`(?i)\b(tent|pavilion)\b`), 9.0, VolumePack},
	{regexp.MustCompile(`(?i)\b(rope|chain)\b`), 4.5, VolumeBag},
}

// kindWeightDefaults cover items no rule recognizes.
var kindWeightDefaults = map[string]float64{
	"weapon":     1.4,
	"armor":      9.0,
	"tool":       1.0,
	"consumable": 0.25,
	"magic_item": 0.5,
}

// WeightEstimate is the result of weight and volume normalization.
type WeightEstimate struct {
	WeightKG       *float64
	RealWeightKG   float64
	VolumeCategory string
	FromSource     bool
}

// ItemWeight converts a listed pound weight to kilograms, or estimates a
// plausible weight from the name and description against the rule list,
// falling back to a kind default. Volume is chosen by the matched rule
// first, then by weight thresholds.
func ItemWeight(name, kind, description string, weightLB *float64) WeightEstimate {
	var est WeightEstimate

	var ruleKG float64
	var ruleVolume string
	haystack := name + " " + description
	for _, rule := range weightRules {
		if rule.pattern.MatchString(haystack) {
			ruleKG = rule.kg
			ruleVolume = rule.volume
			break
		}
	}

	switch {
	case weightLB != nil:
		kg := *weightLB * PoundsToKG
		est.WeightKG = &kg
		est.RealWeightKG = kg
		est.FromSource = true
	case ruleVolume != "":
		est.RealWeightKG = ruleKG
	default:
		if kg, ok := kindWeightDefaults[kind]; ok {
			est.RealWeightKG = kg
		} else {
			est.RealWeightKG = 0.5
		}
	}

	if ruleVolume != "" {
		est.VolumeCategory = ruleVolume
	} else {
		est.VolumeCategory = volumeFromWeight(est.RealWeightKG, kind)
	}
	return est
}

func volumeFromWeight(kg float64, kind string) string {
	switch {
	case kg <= 2:
		return VolumePouch
	case kg <= 5:
		if kind == "weapon" {
			return VolumeSheath
		}
		return VolumeHeld
	case kg <= 10:
		return VolumeBag
	case kg <= 30:
		return VolumePack
	case kg <= 500:
		return VolumeWagon
	default:
		return VolumeTooBig
	}
}
