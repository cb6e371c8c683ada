package persist

import (
	"context"
	"fmt"
	"path/filepath"
)

// Storage backend names.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// Options selects and configures a Store backend.
type Options struct {
	Backend     string
	DataDir     string
	SQLitePath  string // defaults to {DataDir}/cerebro.db
	RedisURL    string
	RedisPrefix string
}

// Open creates the Store named by opts.Backend. An empty backend means file.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Backend {
	case BackendFile, "":
		fs, err := NewFileStore(filepath.Join(opts.DataDir, "state"))
		if err != nil {
			return nil, err
		}
		return fs, nil
	case BackendSQLite:
		path := opts.SQLitePath
		if path == "" {
			path = filepath.Join(opts.DataDir, "cerebro.db")
		}
		db, err := NewSQLiteStore(path)
		if err != nil {
			return nil, err
		}
		return db, nil
	case BackendRedis:
		prefix := opts.RedisPrefix
		if prefix == "" {
			prefix = DefaultRedisPrefix
		}
		rs, err := DialRedis(ctx, opts.RedisURL, prefix)
		if err != nil {
			return nil, err
		}
		return rs, nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q (valid: file, sqlite, redis)", opts.Backend)
	}
}
