package storage

import (
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/jrsteele09/go-marketplace-client/internal/config"
	perrors "github.com/jrsteele09/go-marketplace-client/internal/errors"
)

// Driver identifiers.
const (
	DriverMemory = "memory"
	DriverFile   = "file"
	DriverRedis  = "redis"
	DriverSQLite = "sqlite"
)

// Dependencies are optional pre-built handles. When nil the driver opens its own.
type Dependencies struct {
	SQLiteDB    *gorm.DB
	RedisClient *redis.Client
}

// ConfigFrom maps the environment backed storage settings onto Config.
func ConfigFrom(cfg config.StorageConfig) Config {
	return Config{
		Driver:     cfg.GetStorageDriver(),
		FilePath:   cfg.GetStorageFilePath(),
		Passphrase: cfg.GetStoragePassphrase(),
		Redis: RedisConfig{
			Addr:     cfg.GetRedisAddr(),
			Username: cfg.GetRedisUsername(),
			Password: cfg.GetRedisPassword(),
			DB:       cfg.GetRedisDB(),
			Prefix:   cfg.GetRedisPrefix(),
			TTL:      cfg.GetRedisTTL(),
		},
		SQLiteDSN: cfg.GetSQLiteDSN(),
	}
}

// New creates the repo named by cfg.Driver. An empty driver means memory.
func New(cfg Config, deps Dependencies) (Repo, error) {
	switch cfg.Driver {
	case "", DriverMemory:
		return NewMemory(), nil
	case DriverFile:
		repo, err := NewFile(cfg.FilePath, cfg.Passphrase)
		if err != nil {
			return nil, err
		}
		return repo, nil
	case DriverRedis:
		if deps.RedisClient != nil {
			return NewRedisWithClient(deps.RedisClient, cfg.Redis), nil
		}
		repo, err := NewRedis(cfg.Redis)
		if err != nil {
			return nil, err
		}
		return repo, nil
	case DriverSQLite:
		if deps.SQLiteDB != nil {
			repo, err := NewSQLite(deps.SQLiteDB)
			if err != nil {
				return nil, err
			}
			return repo, nil
		}
		if cfg.SQLiteDSN == "" {
			return nil, errors.New("[storage.New] sqlite driver requires a DSN or database handle")
		}
		db, err := gorm.Open(sqlite.Open(cfg.SQLiteDSN), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
		if err != nil {
			return nil, errors.Wrap(err, "[storage.New] open sqlite")
		}
		repo, err := NewSQLite(db)
		if err != nil {
			return nil, err
		}
		repo.owned = true
		return repo, nil
	default:
		return nil, perrors.Wrapf(perrors.ErrUnsupported, "storage driver %q", cfg.Driver)
	}
}
