// Package dedupe collapses extracted records that share a natural key.
// The key is the case-insensitive (name, source) pair; within one pass
// the first record observed wins, and a secondary pass only contributes
// records whose key is absent from the primary pass. The primary pass
// always wins on conflict even when the secondary record is richer;
// that is deliberate and keeps merge results reproducible.
package dedupe

import "grimoire/internal/record"

// Records keeps the first record per natural key, preserving input order.
func Records[T record.Record](records []T) []T {
	seen := make(map[string]struct{}, len(records))
	out := make([]T, 0, len(records))
	for _, r := range records {
		key := record.Key(r.RecordName(), r.RecordSource())
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, r)
	}
	return out
}

// Merge appends the records from secondary whose keys are absent from
// primary. Both inputs are deduplicated first.
func Merge[T record.Record](primary, secondary []T) []T {
	out := Records(primary)
	keys := make(map[string]struct{}, len(out))
	for _, r := range out {
		keys[record.Key(r.RecordName(), r.RecordSource())] = struct{}{}
	}
	for _, r := range Records(secondary) {
		key := record.Key(r.RecordName(), r.RecordSource())
		if _, dup := keys[key]; dup {
			continue
		}
		keys[key] = struct{}{}
		out = append(out, r)
	}
	return out
}

// Collection deduplicates every kind in c, returning the number of
// records dropped.
func Collection(c *record.Collection) int {
	before := c.Count()
	c.Spells = Records(c.Spells)
	c.Items = Records(c.Items)
	c.Monsters = Records(c.Monsters)
	c.Classes = Records(c.Classes)
	c.Subclasses = Records(c.Subclasses)
	c.Races = Records(c.Races)
	c.Feats = Records(c.Feats)
	c.Traps = Records(c.Traps)
	c.Puzzles = Records(c.Puzzles)
	return before - c.Count()
}
