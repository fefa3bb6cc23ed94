package repositories

import (
	"encoding/json"
	"fmt"
	"github.com/maxaizer/hh-analytics/internal/domain/models"
	"os"
	"path/filepath"
)

// Snapshot keeps the last fetched batch of raw listings in a JSON file,
// so a load can be repeated without fetching again.
type Snapshot struct {
	path string
}

func NewSnapshot(path string) *Snapshot {
	return &Snapshot{path: path}
}

func (s *Snapshot) Path() string {
	return s.path
}

// Write replaces the snapshot file. The previous file stays intact if writing fails.
func (s *Snapshot) Write(listings []models.RawListing) error {
	if listings == nil {
		listings = []models.RawListing{}
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create snapshot directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create snapshot file: %w", err)
	}
	defer os.Remove(tmp.Name())

	encoder := json.NewEncoder(tmp)
	encoder.SetEscapeHTML(false)
	if err = encoder.Encode(listings); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close snapshot file: %w", err)
	}

	if err = os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to replace snapshot file: %w", err)
	}
	return nil
}

func (s *Snapshot) Read() ([]models.RawListing, error) {
	file, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot: %w", err)
	}
	defer file.Close()

	var listings []models.RawListing
	if err = json.NewDecoder(file).Decode(&listings); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot %s: %w", s.path, err)
	}

	return listings, nil
}
