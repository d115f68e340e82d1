// Package store persists datasets as CSV files under the configured
// data directories. Matches and tournaments round-trip losslessly; the
// feature matrix is write-only output for model training.
package store

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gocarina/gocsv"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/esports-predictor/internal/features"
	"github.com/yourusername/esports-predictor/internal/models"
)

const csvDateLayout = "2006-01-02"

// CSVStore reads and writes the predictor's datasets.
type CSVStore struct {
	logger *logrus.Entry
}

// NewCSVStore creates a store logging through the given logger.
func NewCSVStore(log *logrus.Logger) *CSVStore {
	return &CSVStore{logger: log.WithField("component", "store")}
}

// createFile creates path, making parent directories as needed.
func createFile(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", path, err)
	}
	return file, nil
}

// SaveMatches writes match records to path.
func (s *CSVStore) SaveMatches(path string, matches []models.Match) error {
	file, err := createFile(path)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := gocsv.MarshalFile(&matches, file); err != nil {
		return fmt.Errorf("failed to write matches to %s: %w", path, err)
	}
	s.logger.WithFields(logrus.Fields{"path": path, "count": len(matches)}).Info("Saved matches")
	return nil
}

// LoadMatches reads match records from path.
func (s *CSVStore) LoadMatches(path string) ([]models.Match, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	var matches []models.Match
	if err := gocsv.UnmarshalFile(file, &matches); err != nil {
		return nil, fmt.Errorf("failed to read matches from %s: %w", path, err)
	}
	return matches, nil
}

// SaveTournaments writes tournament records to path.
func (s *CSVStore) SaveTournaments(path string, tournaments []models.Tournament) error {
	file, err := createFile(path)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := gocsv.MarshalFile(&tournaments, file); err != nil {
		return fmt.Errorf("failed to write tournaments to %s: %w", path, err)
	}
	s.logger.WithFields(logrus.Fields{"path": path, "count": len(tournaments)}).Info("Saved tournaments")
	return nil
}

// LoadTournaments reads tournament records from path.
func (s *CSVStore) LoadTournaments(path string) ([]models.Tournament, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	var tournaments []models.Tournament
	if err := gocsv.UnmarshalFile(file, &tournaments); err != nil {
		return nil, fmt.Errorf("failed to read tournaments from %s: %w", path, err)
	}
	return tournaments, nil
}

// featureMatrixHeader is the training matrix column order: feature
// columns first, then the label and identifier columns.
func featureMatrixHeader() []string {
	header := make([]string, 0, len(features.FeatureColumns)+3)
	header = append(header, features.FeatureColumns...)
	header = append(header, "team1_win", "date", "match_id")
	return header
}

// SaveFeatureMatrix writes filled feature rows as the training matrix.
// Rows must have been through FillDefaults; Vector enforces it.
func (s *CSVStore) SaveFeatureMatrix(path string, rows []*features.FeatureRow) error {
	file, err := createFile(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(featureMatrixHeader()); err != nil {
		return fmt.Errorf("failed to write feature matrix header: %w", err)
	}

	record := make([]string, 0, len(features.FeatureColumns)+3)
	for _, row := range rows {
		record = record[:0]
		for _, value := range row.Vector() {
			record = append(record, strconv.FormatFloat(value, 'f', -1, 64))
		}
		label := "0"
		if row.Team1Win {
			label = "1"
		}
		record = append(record, label, row.Date.Format(csvDateLayout), row.MatchID)
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write feature matrix row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush feature matrix: %w", err)
	}
	s.logger.WithFields(logrus.Fields{"path": path, "rows": len(rows)}).Info("Saved feature matrix")
	return nil
}
