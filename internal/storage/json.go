package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"pws/internal/config"
	"pws/internal/domain"
)

// JSONStorage keeps the run history in a JSON file under the project
type JSONStorage struct {
	path  string
	limit int
}

// NewJSONStorage returns a Storage backed by the config's history path
func NewJSONStorage(cfg *config.Config) *JSONStorage {
	return &JSONStorage{path: cfg.GetHistoryPath(), limit: cfg.Storage.Limit}
}

// Save appends a record and keeps only the newest limit entries (0 keeps everything)
func (s *JSONStorage) Save(record domain.RunRecord) error {
	records, err := s.Load()
	if err != nil {
		return err
	}
	records = append(records, record)
	if s.limit > 0 && len(records) > s.limit {
		records = records[len(records)-s.limit:]
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal history: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("create history dir: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("write history: %w", err)
	}
	return nil
}

// Load reads the history file. A missing file is an empty history.
func (s *JSONStorage) Load() ([]domain.RunRecord, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read history file: %w", err)
	}
	var records []domain.RunRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse history: %w", err)
	}
	return records, nil
}

func (s *JSONStorage) Close() error { return nil }
