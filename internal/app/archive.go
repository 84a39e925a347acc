package app

import (
	"fmt"

	"job104-crawler/internal/config"
	"job104-crawler/internal/observability"
	"job104-crawler/internal/storage"
	"job104-crawler/internal/storage/mssql"
	"job104-crawler/internal/storage/sqlite"
)

// OpenArchive returns the configured run archive, or nil when storage.driver is empty.
func OpenArchive(cfg *config.Config, logger *observability.Logger) (storage.Repository, error) {
	switch cfg.Storage.Driver {
	case "":
		return nil, nil
	case "sqlite":
		repo, err := sqlite.NewRepository(cfg.Storage.DSN, cfg.GetCommandTimeout(), logger)
		if err != nil {
			return nil, err
		}
		return repo, nil
	case "mssql":
		repo, err := mssql.NewRepository(cfg.Storage.DSN, cfg.GetCommandTimeout(), logger)
		if err != nil {
			return nil, err
		}
		return repo, nil
	default:
		return nil, fmt.Errorf("unsupported storage driver: %s", cfg.Storage.Driver)
	}
}
