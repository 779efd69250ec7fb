package store

import (
	"context"
	"fmt"

	"solrock/internal/config"
	"solrock/internal/sheets"
	"solrock/internal/store/csvfile"
	"solrock/internal/store/sqlite"
)

// Backend hands out one Table per resource name.
type Backend struct {
	kind  string
	open  func(name string) Table
	close func() error
}

func (b *Backend) Kind() string           { return b.kind }
func (b *Backend) Table(name string) Table { return b.open(name) }
func (b *Backend) Close() error            { return b.close() }

func NewBackend(ctx context.Context, cfg config.Config) (*Backend, error) {
	switch cfg.Storage {
	case config.StorageCSV:
		dir := csvfile.NewDir(cfg.DataDir)
		return &Backend{
			kind:  cfg.Storage,
			open:  func(name string) Table { return dir.Table(name) },
			close: func() error { return nil },
		}, nil
	case config.StorageSQLite:
		db, err := sqlite.Open(cfg.SQLiteFile())
		if err != nil {
			return nil, err
		}
		return &Backend{
			kind:  cfg.Storage,
			open:  func(name string) Table { return db.Table(name) },
			close: db.Close,
		}, nil
	case config.StorageSheets:
		c, err := sheets.New(ctx, cfg.GoogleServiceAccountJSON, cfg.SpreadsheetID)
		if err != nil {
			return nil, fmt.Errorf("sheets: %w", err)
		}
		return &Backend{
			kind:  cfg.Storage,
			open:  func(name string) Table { return c.Table(name) },
			close: func() error { return nil },
		}, nil
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", cfg.Storage)
	}
}
