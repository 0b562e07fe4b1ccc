package storage

import (
	"encoding/json"
	"io"
	"os"
)

// ExportJSON writes the summary of runID to w as indented JSON.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	sum, err := s.Load(runID)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(sum)
}

// ExportFile writes the summary of runID to path.
func (s *Store) ExportFile(path, runID string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := s.ExportJSON(f, runID); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
