// Package storage provides the key-value stores that back the console state and the typed
// repositories layered on top of them.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned by Get when a key has never been written.
var ErrNotFound = errors.New("key not found")

// Driver identifies a concrete KVStore implementation.
type Driver string

const (
	DriverMemory   Driver = "memory"   // process lifetime only (tests / demos)
	DriverFile     Driver = "file"     // one JSON file per key under a directory
	DriverSQLite   Driver = "sqlite"   // embedded sqlite file
	DriverPostgres Driver = "postgres" // PostgreSQL through gorm
	DriverS3       Driver = "s3"       // S3-compatible object storage
)

// KVStore is a synchronous string-keyed store of opaque byte values.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Driver() Driver
	Close() error
}

func validateKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("empty key")
	}
	if strings.ContainsAny(key, `/\`) || strings.Contains(key, "..") {
		return fmt.Errorf("invalid key %q", key)
	}
	return nil
}
