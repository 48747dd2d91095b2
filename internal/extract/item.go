package extract

import (
	"regexp"
	"strconv"
	"strings"

	"grimoire/internal/normalize"
	"grimoire/internal/record"
)

const itemMinDesc = 15

var itemHeader = headerSpec{
	re:      regexp.MustCompile(`(?m)^ *#{0,4} *\*{0,2}([A-Z][A-Za-z'’\- ,()]{2,60}?)\*{0,2} *\n(?:[^\n]*\n){0,4}?[^\n]{0,40}(?i:cost|price|rarity|weight):`),
	minName: 3,
	window:  1500,
	minDesc: itemMinDesc,
}

var (
	itemCostRE       = regexp.MustCompile(`(?i)(?:cost|price):? *\*{0,2}([^\n*]+)`)
	itemWeightRE     = regexp.MustCompile(`(?i)weight:? *\*{0,2}([\d.,]+) *(?:lbs?\.?|pounds?)`)
	itemRarityRE     = regexp.MustCompile(`(?i)\b(very rare|common|uncommon|rare|legendary|artifact)\b`)
	itemAttunementRE = regexp.MustCompile(`(?i)requires attunement`)
	itemPropertiesRE = regexp.MustCompile(`(?i)properties:? *([^\n]+)`)
	itemLabelRE      = regexp.MustCompile(`(?im)^[^\n]{0,40}(?:cost|price|rarity|weight|type|properties):[^\n]*$`)
)

// itemKindRules classify an item by name and nearby text. First match
// wins, so the magic-item markers come before mundane categories.
var itemKindRules = []struct {
	pattern *regexp.Regexp
	kind    string
}{
	{regexp.MustCompile(`(?i)\b(wondrous item|ring of|rod of|staff of|wand of|requires attunement)\b`), "magic_item"},
	{regexp.MustCompile(`(?i)\b(potion|elixir|philter|scroll|oil of|dust of|bead of|rations|antitoxin)\b`), "consumable"},
	{regexp.MustCompile(`(?i)\b(sword|longsword|shortsword|greatsword|dagger|axe|battleaxe|greataxe|handaxe|bow|longbow|shortbow|crossbow|mace|hammer|warhammer|flail|spear|javelin|staff|club|sling|whip|trident|pike|halberd|glaive|scimitar|rapier|maul|lance)\b`), "weapon"},
	{regexp.MustCompile(`(?i)\b(armor|shield|mail|chainmail|plate|breastplate|leather|padded|helm|gauntlet)\b`), "armor"},
	{regexp.MustCompile(`(?i)\b(tools?|kit|supplies|instrument|tinderbox|crowbar|grappling hook|spyglass)\b`), "tool"},
}

// Items extracts item records. Candidates are anchored by a name line
// with a Cost/Price/Rarity/Weight label in the next few lines; cost,
// weight, volume and confidence are filled in by the normalizers.
func Items(text, source string) ([]record.Item, int) {
	var items []record.Item
	blocks, rejected := scanBlocks(text, itemHeader)

	for _, b := range blocks {
		b := b
		ok := guard(func() {
			item, accepted := parseItem(b, source)
			if !accepted {
				rejected++
				return
			}
			items = append(items, item)
		})
		if !ok {
			rejected++
		}
	}
	return items, rejected
}

func parseItem(b block, source string) (record.Item, bool) {
	item := record.Item{Name: b.name, Source: source}

	item.CostRaw = firstGroup(itemCostRE, b.body)
	item.Rarity = canonicalRarity(firstGroup(itemRarityRE, firstLines(b.body, 6)))
	item.Attunement = itemAttunementRE.MatchString(b.body)
	item.Kind = classifyItemKind(b.name, firstLines(b.body, 6))

	if m := itemWeightRE.FindStringSubmatch(b.body); m != nil {
		if lb, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64); err == nil {
			item.WeightLB = &lb
		}
	}

	if props := firstGroup(itemPropertiesRE, b.body); props != "" {
		for _, p := range strings.Split(props, ",") {
			if p = strings.TrimSpace(p); p != "" {
				item.Properties = append(item.Properties, p)
			}
		}
	}

	item.Description = itemDescription(b.body)
	if len(item.Description) < itemMinDesc {
		return item, false
	}
	if !knownItemKind(item.Kind) {
		return item, false
	}

	item.CostGP, item.CostExtracted = normalize.ItemCost(item.CostRaw, item.Name, item.Kind, item.Rarity)
	item.CostBreakdown = normalize.Breakdown(item.CostGP)

	est := normalize.ItemWeight(item.Name, item.Kind, item.Description, item.WeightLB)
	item.WeightKG = est.WeightKG
	item.EstimatedRealWeightKG = est.RealWeightKG
	item.VolumeCategory = est.VolumeCategory

	item.ExtractionConfidence = normalize.Confidence(normalize.ConfidenceInput{
		HasWeight:         item.WeightLB != nil,
		HasCost:           item.CostExtracted,
		HasDescription:    item.Description != "",
		DescriptionLength: len(item.Description),
		HasStructuredData: len(item.Properties) > 0,
		Kind:              item.Kind,
	})
	return item, true
}

// itemDescription strips the labeled stat lines and returns what remains.
func itemDescription(body string) string {
	return collapseWS(itemLabelRE.ReplaceAllString(body, ""))
}

func classifyItemKind(name, context string) string {
	haystack := name + " " + context
	for _, rule := range itemKindRules {
		if rule.pattern.MatchString(haystack) {
			return rule.kind
		}
	}
	return "other"
}

func canonicalRarity(raw string) string {
	r := strings.ToLower(strings.TrimSpace(raw))
	return strings.ReplaceAll(r, " ", "_")
}

func knownItemKind(kind string) bool {
	for _, k := range record.ItemKinds {
		if k == kind {
			return true
		}
	}
	return false
}
