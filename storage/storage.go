package storage

import (
	"context"
	"time"
)

// Slot keys. The values mirror the browser storage keys of the web portal so
// an exported session can be read by either client.
const (
	KeyAccessToken  = "accessToken"
	KeyRefreshToken = "refreshToken"
	KeyUser         = "user"
)

// Repo is durable storage for the session slots.
// Get returns errors.ErrStorageKeyNotFound for a missing key.
type Repo interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
	Close() error
}

// Config selects and tunes a driver.
type Config struct {
	Driver string

	// File driver
	FilePath   string
	Passphrase string

	// Redis driver
	Redis RedisConfig

	// SQLite driver, used when Dependencies.SQLiteDB is nil
	SQLiteDSN string
}

type RedisConfig struct {
	Addr     string
	Username string
	Password string
	DB       int
	Prefix   string
	TTL      time.Duration
}
