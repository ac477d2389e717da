package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
)

// DatabaseConfig holds the sqlite settings used to open the store.
type DatabaseConfig struct {
	Path string `json:"path"`
	// BusyTimeout is how long a writer waits on a locked database, in milliseconds.
	BusyTimeout int `json:"busyTimeout"`
	// WAL enables write-ahead logging. Disabled for throwaway databases in tests.
	WAL bool `json:"wal"`
}

// GetDefaultDatabaseConfig returns the configuration derived from the environment.
func GetDefaultDatabaseConfig() *DatabaseConfig {
	return &DatabaseConfig{
		Path:        GetDBPath(),
		BusyTimeout: 5000,
		WAL:         true,
	}
}

// GetDSN returns the data source name for the sqlite driver. Pragmas are passed
// in the DSN so that every pooled connection enforces foreign keys.
func (c *DatabaseConfig) GetDSN() string {
	q := url.Values{}
	q.Set("_foreign_keys", "on")
	if c.BusyTimeout > 0 {
		q.Set("_busy_timeout", strconv.Itoa(c.BusyTimeout))
	}
	if c.WAL {
		q.Set("_journal_mode", "WAL")
		q.Set("_synchronous", "NORMAL")
	}
	return c.Path + "?" + q.Encode()
}

// ValidateConfig validates the database configuration.
func (c *DatabaseConfig) ValidateConfig() error {
	if c.Path == "" {
		return fmt.Errorf("sqlite path cannot be empty")
	}
	if c.BusyTimeout < 0 {
		return fmt.Errorf("busy timeout cannot be negative: %d", c.BusyTimeout)
	}
	return nil
}

// EnsureDirectoryExists creates the directory holding the database file.
func (c *DatabaseConfig) EnsureDirectoryExists() error {
	return os.MkdirAll(filepath.Dir(c.Path), 0o755)
}
