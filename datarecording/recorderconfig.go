package datarecording

import (
	"context"
	"fmt"
)

// Backends that NewWithConfig can create.
const (
	BackendSQLite     = "sqlite"
	BackendClickHouse = "clickhouse"
	BackendPostgres   = "postgres"
)

// RecorderConfig selects and configures a recording backend.
type RecorderConfig struct {
	// Backend is BackendSQLite (the default), BackendClickHouse or
	// BackendPostgres.
	Backend string `yaml:"backend"`

	// Path is the SQLite file name without the .sqlite3 extension.
	Path string `yaml:"path"`

	// DSN is the connection string of a database server.
	DSN string `yaml:"dsn"`

	// BatchSize is the number of entries buffered before a flush.
	BatchSize int `yaml:"batchSize"`
}

// NewWithConfig creates the recorder that the config describes.
func NewWithConfig(c RecorderConfig) (DataRecorder, error) {
	switch c.Backend {
	case "", BackendSQLite:
		return newSQLite(c.Path, c.BatchSize), nil
	case BackendClickHouse:
		if c.DSN == "" {
			return nil, fmt.Errorf("clickhouse recorder needs a dsn")
		}

		return NewClickHouse(c.DSN, c.BatchSize)
	case BackendPostgres:
		if c.DSN == "" {
			return nil, fmt.Errorf("postgres recorder needs a dsn")
		}

		return NewPostgres(context.Background(), c.DSN, c.BatchSize)
	default:
		return nil, fmt.Errorf("unknown recording backend %q", c.Backend)
	}
}
