// Package pipeline is the batch driver: it walks the input tree,
// extracts records from each file, merges the per-file results at a
// single gather point, deduplicates, validates and writes one JSON
// array per content kind.
package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"grimoire/internal/dedupe"
	"grimoire/internal/extract"
	"grimoire/internal/extracttext"
	"grimoire/internal/record"
	"grimoire/internal/validate"
)

// DefaultExcludes are the path substrings skipped during the walk:
// already-processed exports, print layouts and map/handout material.
var DefaultExcludes = []string{
	"Processed", "Individual Cards", "Character Sheets", "Pregen", "Map",
}

var textExtensions = map[string]struct{}{
	".pdf": {}, ".md": {}, ".txt": {}, ".html": {}, ".htm": {},
}

type Options struct {
	Roots       []string
	Exclude     []string
	OutDir      string
	Workers     int
	FileTimeout time.Duration
	Logger      *zap.Logger
}

// Summary is the run report printed after a batch completes.
type Summary struct {
	FilesProcessed     int
	FilesSkipped       int
	FilesFailed        int
	CandidatesRejected int
	DuplicatesDropped  int
	RecordCounts       map[record.Kind]int
	InvalidRecords     int
	ValidationWarnings int
}

type fileResult struct {
	records  record.Collection
	rejected int
	skipped  bool
	failed   bool
}

// Run executes one batch over opts.Roots. A single file's failure never
// aborts the rest of the batch; failures and skips are only counted and
// logged.
func Run(ctx context.Context, opts Options) (*Summary, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Workers < 1 {
		opts.Workers = 4
	}

	files, err := walkInputFiles(opts.Roots, append(append([]string{}, DefaultExcludes...), opts.Exclude...))
	if err != nil {
		return nil, fmt.Errorf("walking input files: %w", err)
	}
	logger.Info("batch started",
		zap.Int("files", len(files)),
		zap.Int("workers", opts.Workers))

	// Extraction is pure per file, so files are processed in parallel
	// and gathered into a slice indexed by walk order. Aggregation
	// happens once below; no shared state is mutated during scanning.
	results := make([]fileResult, len(files))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(opts.Workers)
	for i, path := range files {
		i, path := i, path
		group.Go(func() error {
			results[i] = processFile(groupCtx, path, opts.FileTimeout, logger)
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	summary := &Summary{RecordCounts: make(map[record.Kind]int)}
	var all record.Collection
	for _, res := range results {
		switch {
		case res.skipped:
			summary.FilesSkipped++
		case res.failed:
			summary.FilesFailed++
		default:
			summary.FilesProcessed++
			summary.CandidatesRejected += res.rejected
			all.Append(res.records)
		}
	}

	summary.DuplicatesDropped = dedupe.Collection(&all)
	sortCollection(&all)

	report := validate.Collection(&all)
	summary.InvalidRecords = report.Invalid
	summary.ValidationWarnings = report.Warnings

	summary.RecordCounts[record.KindSpell] = len(all.Spells)
	summary.RecordCounts[record.KindItem] = len(all.Items)
	summary.RecordCounts[record.KindMonster] = len(all.Monsters)
	summary.RecordCounts[record.KindClass] = len(all.Classes)
	summary.RecordCounts[record.KindSubclass] = len(all.Subclasses)
	summary.RecordCounts[record.KindRace] = len(all.Races)
	summary.RecordCounts[record.KindFeat] = len(all.Feats)
	summary.RecordCounts[record.KindTrap] = len(all.Traps)
	summary.RecordCounts[record.KindPuzzle] = len(all.Puzzles)

	if err := writeCollections(opts.OutDir, &all); err != nil {
		return nil, err
	}

	logger.Info("batch finished",
		zap.Int("processed", summary.FilesProcessed),
		zap.Int("skipped", summary.FilesSkipped),
		zap.Int("failed", summary.FilesFailed),
		zap.Int("records", all.Count()))
	return summary, nil
}

// processFile acquires text and runs every extractor, bounded by a
// wall-clock guard so one pathological input cannot stall the batch.
func processFile(ctx context.Context, path string, timeout time.Duration, logger *zap.Logger) fileResult {
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	done := make(chan fileResult, 1)
	go func() {
		doc, err := extracttext.FromFile(path)
		if err != nil {
			if errors.Is(err, extracttext.ErrUnsupportedFormat) {
				logger.Warn("skipping file", zap.String("path", path), zap.Error(err))
				done <- fileResult{skipped: true}
				return
			}
			logger.Warn("extraction failed", zap.String("path", path), zap.Error(err))
			done <- fileResult{failed: true}
			return
		}
		res := extract.All(doc.Text, doc.Source)
		done <- fileResult{records: res.Records, rejected: res.Rejected}
	}()

	select {
	case res := <-done:
		return res
	case <-ctx.Done():
		logger.Warn("file timed out", zap.String("path", path))
		return fileResult{failed: true}
	}
}

// walkInputFiles collects extractable files under roots in a stable
// order, skipping excluded path substrings.
func walkInputFiles(roots, excludes []string) ([]string, error) {
	var files []string
	for _, root := range roots {
		if root == "" {
			continue
		}
		root = filepath.Clean(root)
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if containsAny(path, excludes) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if d.IsDir() {
				return nil
			}
			if _, ok := textExtensions[strings.ToLower(filepath.Ext(path))]; !ok {
				return nil
			}
			files = append(files, path)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	sort.Strings(files)
	return files, nil
}

func containsAny(path string, substrings []string) bool {
	for _, s := range substrings {
		if s != "" && strings.Contains(path, s) {
			return true
		}
	}
	return false
}

// sortCollection orders every kind by natural key so repeated runs over
// unchanged input produce byte-identical output files.
func sortCollection(c *record.Collection) {
	sortByKey(c.Spells)
	sortByKey(c.Items)
	sortByKey(c.Monsters)
	sortByKey(c.Classes)
	sortByKey(c.Subclasses)
	sortByKey(c.Races)
	sortByKey(c.Feats)
	sortByKey(c.Traps)
	sortByKey(c.Puzzles)
}

func sortByKey[T record.Record](records []T) {
	sort.SliceStable(records, func(i, j int) bool {
		return record.Key(records[i].RecordName(), records[i].RecordSource()) <
			record.Key(records[j].RecordName(), records[j].RecordSource())
	})
}

// kindFiles names the output file for each content kind.
var kindFiles = map[record.Kind]string{
	record.KindSpell:    "spells-extracted.json",
	record.KindItem:     "items-extracted.json",
	record.KindMonster:  "monsters-extracted.json",
	record.KindClass:    "classes-extracted.json",
	record.KindSubclass: "subclasses-extracted.json",
	record.KindRace:     "races-extracted.json",
	record.KindFeat:     "feats-extracted.json",
	record.KindTrap:     "traps-extracted.json",
	record.KindPuzzle:   "puzzles-extracted.json",
}

// FileName returns the JSON file one kind's records are written to.
func FileName(kind record.Kind) string { return kindFiles[kind] }

// writeCollections writes one pretty-printed JSON array per kind.
func writeCollections(outDir string, c *record.Collection) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}
	writes := []struct {
		name string
		data any
	}{
		{kindFiles[record.KindSpell], emptyIfNil(c.Spells)},
		{kindFiles[record.KindItem], emptyIfNil(c.Items)},
		{kindFiles[record.KindMonster], emptyIfNil(c.Monsters)},
		{kindFiles[record.KindClass], emptyIfNil(c.Classes)},
		{kindFiles[record.KindSubclass], emptyIfNil(c.Subclasses)},
		{kindFiles[record.KindRace], emptyIfNil(c.Races)},
		{kindFiles[record.KindFeat], emptyIfNil(c.Feats)},
		{kindFiles[record.KindTrap], emptyIfNil(c.Traps)},
		{kindFiles[record.KindPuzzle], emptyIfNil(c.Puzzles)},
	}
	for _, w := range writes {
		payload, err := json.MarshalIndent(w.data, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding %s: %w", w.name, err)
		}
		payload = append(payload, '\n')
		if err := os.WriteFile(filepath.Join(outDir, w.name), payload, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", w.name, err)
		}
	}
	return nil
}

// emptyIfNil keeps absent kinds as [] in the output instead of null.
func emptyIfNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
