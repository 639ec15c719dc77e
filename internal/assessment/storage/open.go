package storage

import (
	"context"
	"time"

	"github.com/spf13/afero"

	"maturity-assessment/internal/common/config"
	"maturity-assessment/internal/common/database"
	"maturity-assessment/internal/common/errors"
)

// Backend is an opened Storage plus the function that releases it.
type Backend struct {
	Storage Storage
	Name    string
	close   func() error
}

func (b *Backend) Close() error {
	if b.close == nil {
		return nil
	}
	return b.close()
}

// Open connects the backend selected by cfg.Storage. fs is used by the file
// backend only. A STORAGE_UNAVAILABLE error means the caller should fall back
// to NewMemory.
func Open(ctx context.Context, cfg *config.Config, fs afero.Fs) (*Backend, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	switch cfg.Storage.Backend {
	case config.StorageRedis:
		client, err := database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return nil, errors.NewStorageUnavailableError(config.StorageRedis, err)
		}
		if err := client.Ping(ctx); err != nil {
			_ = client.Close()
			return nil, errors.NewStorageUnavailableError(config.StorageRedis, err)
		}
		return &Backend{
			Storage: NewRedis(client.GetClient(), cfg.Storage.SessionTTLDuration()),
			Name:    config.StorageRedis,
			close:   client.Close,
		}, nil

	case config.StoragePostgres:
		client, err := database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return nil, errors.NewStorageUnavailableError(config.StoragePostgres, err)
		}
		if err := client.Ping(ctx); err != nil {
			_ = client.Close()
			return nil, errors.NewStorageUnavailableError(config.StoragePostgres, err)
		}
		pg, err := NewPostgres(client.GetDB(), cfg.Storage.Table)
		if err == nil {
			err = pg.EnsureSchema(ctx)
		}
		if err != nil {
			_ = client.Close()
			return nil, errors.NewStorageUnavailableError(config.StoragePostgres, err)
		}
		return &Backend{Storage: pg, Name: config.StoragePostgres, close: client.Close}, nil

	case config.StorageFile:
		if fs == nil {
			fs = afero.NewOsFs()
		}
		return &Backend{Storage: NewFile(fs, cfg.Storage.FileDir), Name: config.StorageFile}, nil

	default:
		return &Backend{Storage: NewMemory(), Name: config.StorageMemory}, nil
	}
}
