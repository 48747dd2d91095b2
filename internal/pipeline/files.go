package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"grimoire/internal/record"
)

// ReadCollections loads the per-kind JSON arrays a previous extract run
// wrote to dir. Missing files are treated as empty kinds so partial
// output directories stay loadable.
func ReadCollections(dir string) (*record.Collection, error) {
	var c record.Collection
	reads := []struct {
		name string
		dest any
	}{
		{kindFiles[record.KindSpell], &c.Spells},
		{kindFiles[record.KindItem], &c.Items},
		{kindFiles[record.KindMonster], &c.Monsters},
		{kindFiles[record.KindClass], &c.Classes},
		{kindFiles[record.KindSubclass], &c.Subclasses},
		{kindFiles[record.KindRace], &c.Races},
		{kindFiles[record.KindFeat], &c.Feats},
		{kindFiles[record.KindTrap], &c.Traps},
		{kindFiles[record.KindPuzzle], &c.Puzzles},
	}
	for _, r := range reads {
		data, err := os.ReadFile(filepath.Join(dir, r.name))
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("reading %s: %w", r.name, err)
		}
		// A stray byte-order mark breaks json.Unmarshal.
		data = stripBOMBytes(data)
		if err := json.Unmarshal(data, r.dest); err != nil {
			return nil, fmt.Errorf("decoding %s: %w", r.name, err)
		}
	}
	return &c, nil
}

func stripBOMBytes(data []byte) []byte {
	if len(data) >= 3 && data[0] == 0xEF && data[1] == 0xBB && data[2] == 0xBF {
		return data[3:]
	}
	return data
}
