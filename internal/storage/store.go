package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"
)

const summaryFile = "summary.json"

var ErrRunNotFound = errors.New("storage: run not found")

// Store keeps one directory per headless run under baseDir. Only the
// summary is written; sequences are never persisted.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunSummary struct {
	ID          string    `json:"id"`
	Timestamp   time.Time `json:"timestamp"`
	Seed        int64     `json:"seed"`
	Size        int       `json:"size"`
	Pattern     string    `json:"pattern"`
	Comparisons int       `json:"comparisons"`
	Swaps       int       `json:"swaps"`
	Steps       int       `json:"steps"`
	ElapsedMS   float64   `json:"elapsed_ms"`
	Sorted      bool      `json:"sorted"`
}

// Save writes sum under a new run directory and returns its ID. A zero
// Timestamp is set to now.
func (s *Store) Save(sum RunSummary) (string, error) {
	if sum.Timestamp.IsZero() {
		sum.Timestamp = time.Now()
	}
	runID := fmt.Sprintf("%s_%d_%d", sum.Pattern, sum.Size, sum.Timestamp.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}
	sum.ID = runID

	f, err := os.Create(filepath.Join(runDir, summaryFile))
	if err != nil {
		return "", err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(sum); err != nil {
		return "", fmt.Errorf("write summary %s: %w", runID, err)
	}
	return runID, nil
}

// List returns every readable summary, oldest first. Directories without a
// valid summary are skipped.
func (s *Store) List() ([]RunSummary, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunSummary{}, nil
		}
		return nil, err
	}

	runs := make([]RunSummary, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		sum, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *sum)
	}

	sort.Slice(runs, func(i, j int) bool {
		if runs[i].Timestamp.Equal(runs[j].Timestamp) {
			return runs[i].ID < runs[j].ID
		}
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunSummary, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, summaryFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var sum RunSummary
	if err := json.Unmarshal(data, &sum); err != nil {
		return nil, fmt.Errorf("parse summary %s: %w", runID, err)
	}
	return &sum, nil
}
