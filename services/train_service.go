package services

import (
	"encoding/json"
	"errors"
	"os"
	"strings"

	"go.uber.org/zap"

	"train-status-live/models"
)

const maxSearchResults = 10

// TrainIndex is the read-only reference list behind autocomplete
type TrainIndex struct {
	trains []models.TrainRef
}

// NewTrainIndex builds an index over a copy of trains
func NewTrainIndex(trains []models.TrainRef) *TrainIndex {
	return &TrainIndex{trains: append([]models.TrainRef(nil), trains...)}
}

// LoadTrainIndex reads the reference list from a JSON file. A missing or
// unreadable file leaves search disabled instead of failing startup.
func LoadTrainIndex(path string, logger *zap.SugaredLogger) *TrainIndex {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Warnw("train list not found, search will not work", "path", path)
		} else {
			logger.Warnw("failed to read train list, search will not work", "path", path, "error", err)
		}
		return NewTrainIndex(nil)
	}

	var trains []models.TrainRef
	if err := json.Unmarshal(data, &trains); err != nil {
		logger.Warnw("failed to parse train list, search will not work", "path", path, "error", err)
		return NewTrainIndex(nil)
	}

	logger.Infow("loaded train list", "path", path, "trains", len(trains))
	return NewTrainIndex(trains)
}

// Len returns the number of reference entries
func (idx *TrainIndex) Len() int {
	return len(idx.trains)
}

// Search returns up to ten trains whose name contains term case-insensitively
// or whose number contains it, in list order
func (idx *TrainIndex) Search(term string) []models.TrainRef {
	matches := make([]models.TrainRef, 0, maxSearchResults)

	term = strings.ToLower(term)
	if term == "" {
		return matches
	}

	for _, train := range idx.trains {
		if strings.Contains(strings.ToLower(train.TrainName), term) || strings.Contains(train.TrainNumber, term) {
			matches = append(matches, train)
			if len(matches) == maxSearchResults {
				break
			}
		}
	}

	return matches
}
