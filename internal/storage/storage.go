package storage

import (
	"pws/internal/config"
	"pws/internal/domain"
)

// Storage persists the run history shown by the history command
type Storage interface {
	Save(record domain.RunRecord) error
	// Load returns the stored runs, oldest first
	Load() ([]domain.RunRecord, error)
	Close() error
}

// New returns the MySQL store when storage.dsn is configured, else the JSON file store
func New(cfg *config.Config) (Storage, error) {
	if cfg.Storage.DSN != "" {
		return NewMySQLStorage(cfg.Storage.DSN, cfg.Storage.Table, cfg.Storage.Limit)
	}
	return NewJSONStorage(cfg), nil
}
