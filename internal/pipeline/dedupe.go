package pipeline

import (
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/esports-predictor/internal/models"
)

// Deduplication strategies.
const (
	DedupeFirst  = "first"
	DedupeLatest = "latest"
)

// Deduplicate returns matches with one record per match ID. The first
// strategy keeps the earliest occurrence in input order; the latest
// strategy keeps the most recent by date, with undated records losing to
// dated ones. The input slice is not modified.
func Deduplicate(matches []models.Match, strategy string) ([]models.Match, int, error) {
	if strategy != DedupeFirst && strategy != DedupeLatest {
		return nil, 0, fmt.Errorf("unknown deduplication strategy %q", strategy)
	}

	ordered := make([]models.Match, len(matches))
	copy(ordered, matches)

	if strategy == DedupeLatest {
		// Most recent first; undated records sort last.
		sort.SliceStable(ordered, func(i, j int) bool {
			di, dj := ordered[i].Date, ordered[j].Date
			if di == nil {
				return false
			}
			if dj == nil {
				return true
			}
			return di.After(*dj)
		})
	}

	seen := make(map[string]bool, len(ordered))
	clean := make([]models.Match, 0, len(ordered))
	for i := range ordered {
		id := ordered[i].MatchID
		if seen[id] {
			continue
		}
		seen[id] = true
		clean = append(clean, ordered[i])
	}

	return clean, len(matches) - len(clean), nil
}

// DedupePipeline reads the raw match table, removes duplicate match IDs
// and writes the clean table. The raw table is left untouched.
type DedupePipeline struct {
	store TournamentStore
	log   *logrus.Logger
}

// NewDedupePipeline creates a deduplication pipeline.
func NewDedupePipeline(store TournamentStore, log *logrus.Logger) *DedupePipeline {
	return &DedupePipeline{store: store, log: log}
}

// Run deduplicates inputPath into outputPath with the given strategy.
func (p *DedupePipeline) Run(inputPath, outputPath, strategy string) error {
	matches, err := p.store.LoadMatches(inputPath)
	if err != nil {
		return fmt.Errorf("failed to load raw matches: %w", err)
	}

	clean, removed, err := Deduplicate(matches, strategy)
	if err != nil {
		return err
	}

	if err := p.store.SaveMatches(outputPath, clean); err != nil {
		return err
	}

	p.log.WithFields(logrus.Fields{
		"component": "dedupe",
		"strategy":  strategy,
		"raw":       len(matches),
		"removed":   removed,
		"clean":     len(clean),
	}).Info("Deduplication complete")
	return nil
}
