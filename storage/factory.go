package storage

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"streamdesk-backend/config"
)

// Open builds the KVStore selected by cfg.Driver.
func Open(ctx context.Context, cfg config.StorageConfig) (KVStore, error) {
	var (
		store KVStore
		err   error
	)
	switch Driver(cfg.Driver) {
	case DriverMemory:
		store = NewMemoryStore()
	case DriverFile, "":
		store, err = NewFileStore(cfg.DataDir)
	case DriverSQLite:
		store, err = NewSQLiteStore(cfg.SQLitePath)
	case DriverPostgres:
		db, dbErr := config.ConnectDB(cfg.PostgresDSN)
		if dbErr != nil {
			return nil, dbErr
		}
		store, err = openGormStore(db)
	case DriverS3:
		store, err = NewS3Store(ctx, S3Config{
			Bucket:    cfg.S3.Bucket,
			Region:    cfg.S3.Region,
			Endpoint:  cfg.S3.Endpoint,
			Prefix:    cfg.S3.Prefix,
			PathStyle: cfg.S3.PathStyle,
		})
	default:
		return nil, fmt.Errorf("unknown storage driver %s", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}
	log.Info().Str("driver", string(store.Driver())).Msg("storage opened")
	return store, nil
}

// openGormStore closes the connection pool of db when the store cannot be set up on it.
func openGormStore(db *gorm.DB) (KVStore, error) {
	store, err := NewGormStore(db)
	if err != nil {
		if sqlDB, dbErr := db.DB(); dbErr == nil {
			_ = sqlDB.Close()
		}
		return nil, err
	}
	return store, nil
}
