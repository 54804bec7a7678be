package config

import (
	"path/filepath"
	"time"
)

type StorageConfig interface {
	GetStorageDriver() string
	GetStorageFilePath() string
	GetStoragePassphrase() string
	GetRedisAddr() string
	GetRedisUsername() string
	GetRedisPassword() string
	GetRedisDB() int
	GetRedisPrefix() string
	GetRedisTTL() time.Duration
	GetSQLiteDSN() string
}

type Storage struct{}

var _ StorageConfig = Storage{}

func (Storage) GetStorageDriver() string {
	return GetEnv("PORTAL_STORAGE_DRIVER", "file")
}

func (Storage) GetStorageFilePath() string {
	return GetEnv("PORTAL_STORAGE_FILE", filepath.Join(EnvVars{}.GetDataFolder(), "session.enc"))
}

func (Storage) GetStoragePassphrase() string {
	return GetEnv("PORTAL_STORAGE_PASSPHRASE", "")
}

func (Storage) GetRedisAddr() string {
	return GetEnv("PORTAL_REDIS_ADDR", "localhost:6379")
}

func (Storage) GetRedisUsername() string {
	return GetEnv("PORTAL_REDIS_USERNAME", "")
}

func (Storage) GetRedisPassword() string {
	return GetEnv("PORTAL_REDIS_PASSWORD", "")
}

func (Storage) GetRedisDB() int {
	return parseIntOrDefault("PORTAL_REDIS_DB", 0)
}

func (Storage) GetRedisPrefix() string {
	return GetEnv("PORTAL_REDIS_PREFIX", "portal:session:")
}

// GetRedisTTL of zero keeps the slots until logout.
func (Storage) GetRedisTTL() time.Duration {
	return parseDurationOrDefault("PORTAL_REDIS_TTL", 0)
}

func (Storage) GetSQLiteDSN() string {
	return GetEnv("PORTAL_SQLITE_DSN", filepath.Join(EnvVars{}.GetDataFolder(), "session.db"))
}
